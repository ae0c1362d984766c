package diag

import (
	"strings"
	"testing"

	"github.com/pontaoski/wisp/source"
)

func TestUnboundSentinelIsRecognized(t *testing.T) {
	d := Unbound()
	if !IsUnbound(d) {
		t.Fatal("Unbound() should be recognized by IsUnbound")
	}
	if IsUnbound(Diagnostic{Kind: MismatchedBracket}) {
		t.Error("an ordinary diagnostic must not be mistaken for the unbound sentinel")
	}
}

func TestRangeAccessorDefaultsToZeroValue(t *testing.T) {
	d := Diagnostic{Kind: Internal, Text: "oops"}
	if d.Range() != (source.Range{}) {
		t.Errorf("Range() of a diagnostic with no Ranges = %v, want the zero value", d.Range())
	}
}

func TestErrorMessagesMentionTheirRange(t *testing.T) {
	rng := source.Range{
		From: source.Position{Filename: "f.wisp", Line: 1, Column: 1},
		To:   source.Position{Filename: "f.wisp", Line: 1, Column: 1},
	}
	cases := []Diagnostic{
		{Kind: ExpectedToEndWithSemicolon, Ranges: []source.Range{rng}},
		{Kind: PrintEmptyExpression, Ranges: []source.Range{rng}},
		{Kind: NonAssociativeOperatorChain, Ranges: []source.Range{rng}, Text: "+"},
		{Kind: Internal, Ranges: []source.Range{rng}, Text: "unreachable"},
	}
	for _, d := range cases {
		if !strings.Contains(d.Error(), "f.wisp:1:1") {
			t.Errorf("Error() for kind %v = %q, expected it to mention the range", d.Kind, d.Error())
		}
	}
}

func TestMismatchedBracketUsesBothRanges(t *testing.T) {
	opened := source.Range{From: source.Position{Line: 1, Column: 1}, To: source.Position{Line: 1, Column: 1}}
	closed := source.Range{From: source.Position{Line: 2, Column: 5}, To: source.Position{Line: 2, Column: 5}}
	d := Diagnostic{Kind: MismatchedBracket, Ranges: []source.Range{opened, closed}}
	msg := d.Error()
	if !strings.Contains(msg, "1:1") || !strings.Contains(msg, "2:5") {
		t.Errorf("MismatchedBracket error %q should mention both the open and close ranges", msg)
	}
}
