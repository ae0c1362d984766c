package combinator

import (
	"testing"

	"github.com/pontaoski/wisp/diag"
)

func digit() Parser[rune, rune] {
	return NextIf(func(r rune) (rune, bool) {
		return r, r >= '0' && r <= '9'
	})
}

func TestPureConsumesNothing(t *testing.T) {
	rest, o := Pure[rune, int](7)(Cursor[rune]("abc"))
	if !o.IsOk() || o.Value != 7 {
		t.Fatalf("Pure(7) = %v, %v", rest, o)
	}
	if len(rest) != 3 {
		t.Errorf("Pure must not consume input, got remainder %q", string(rest))
	}
}

func TestNextIfSucceedsAndFails(t *testing.T) {
	rest, o := digit()(Cursor[rune]("1a"))
	if !o.IsOk() || o.Value != '1' {
		t.Fatalf("digit() on \"1a\" = %v, %v", rest, o)
	}
	if string(rest) != "a" {
		t.Errorf("remainder = %q, want \"a\"", string(rest))
	}

	rest, o = digit()(Cursor[rune]("a1"))
	if o.IsOk() || !diag.IsUnbound(o.Errs[0]) {
		t.Fatalf("digit() on \"a1\" should fail unbound, got %v", o)
	}
	if len(rest) != 2 {
		t.Errorf("a failed NextIf must not consume input")
	}
}

func TestMapTransformsSuccessOnly(t *testing.T) {
	doubled := Map(digit(), func(r rune) rune { return r + 1 })
	_, o := doubled(Cursor[rune]("1"))
	if !o.IsOk() || o.Value != '2' {
		t.Fatalf("Map result = %v", o)
	}

	_, o = doubled(Cursor[rune]("a"))
	if o.IsOk() {
		t.Fatal("Map over a failing parser must still fail")
	}
}

func TestZeroOrMoreStopsOnNonConsumingFailure(t *testing.T) {
	rest, o := ZeroOrMore(digit())(Cursor[rune]("123a"))
	if !o.IsOk() {
		t.Fatalf("ZeroOrMore failed: %v", o)
	}
	if string(o.Value) != "123" {
		t.Errorf("ZeroOrMore collected %q, want \"123\"", string(o.Value))
	}
	if string(rest) != "a" {
		t.Errorf("remainder = %q, want \"a\"", string(rest))
	}
}

func TestZeroOrOne(t *testing.T) {
	_, o := ZeroOrOne(digit())(Cursor[rune]("1a"))
	if !o.IsOk() || o.Value == nil || *o.Value != '1' {
		t.Fatalf("ZeroOrOne present case = %v", o)
	}

	_, o = ZeroOrOne(digit())(Cursor[rune]("a"))
	if !o.IsOk() || o.Value != nil {
		t.Fatalf("ZeroOrOne absent case = %v, want a nil success", o)
	}
}

func TestAltPrefersFirstSuccessAndFallsBackOnlyWithoutConsumption(t *testing.T) {
	letter := NextIf(func(r rune) (rune, bool) { return r, r == 'x' })
	alt := Alt(digit(), letter)

	_, o := alt(Cursor[rune]("1"))
	if !o.IsOk() || o.Value != '1' {
		t.Fatalf("Alt should take the first matching branch: %v", o)
	}

	_, o = alt(Cursor[rune]("x"))
	if !o.IsOk() || o.Value != 'x' {
		t.Fatalf("Alt should fall back to the second branch: %v", o)
	}

	_, o = alt(Cursor[rune]("y"))
	if o.IsOk() {
		t.Fatal("Alt should fail when neither branch matches")
	}
}

func TestRunToEndRejectsTrailingInput(t *testing.T) {
	o := RunToEnd[rune, rune](digit(), []rune("1a"))
	if o.IsOk() || !diag.IsUnbound(o.Errs[0]) {
		t.Fatalf("RunToEnd with leftover input should be the unbound sentinel, got %v", o)
	}
}

func TestRunToEndAcceptsExactConsumption(t *testing.T) {
	o := RunToEnd[rune, []rune](ZeroOrMore(digit()), []rune("123"))
	if !o.IsOk() || string(o.Value) != "123" {
		t.Fatalf("RunToEnd over full consumption = %v", o)
	}
}

func TestCatchUnboundConvertsSentinelOnly(t *testing.T) {
	sentinel := Fail[int](diag.Unbound())
	converted := CatchUnbound(sentinel, func() diag.Diagnostic {
		return diag.Diagnostic{Kind: diag.ExpectedExpression}
	})
	if converted.IsOk() || converted.Errs[0].Kind != diag.ExpectedExpression {
		t.Fatalf("CatchUnbound should replace the sentinel, got %v", converted)
	}

	real := Fail[int](diag.Diagnostic{Kind: diag.Internal, Text: "boom"})
	passed := CatchUnbound(real, func() diag.Diagnostic {
		t.Fatal("onUnbound must not run for a non-sentinel failure")
		return diag.Diagnostic{}
	})
	if passed.Errs[0].Text != "boom" {
		t.Fatalf("CatchUnbound must pass a real error through unchanged, got %v", passed)
	}
}
