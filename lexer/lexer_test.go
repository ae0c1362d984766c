package lexer

import (
	"strings"
	"testing"

	"github.com/pontaoski/wisp/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, diags := New(strings.NewReader(src), "test").Tokenize()
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	var out []token.Kind
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	got := kinds(t, "( ) { } ; = == != < <= > >= + - * / % ! : , ->")
	want := []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.Semicolon,
		token.Equals, token.EqualsEquals, token.BangEquals, token.Less, token.LessEquals,
		token.Greater, token.GreaterEquals, token.Plus, token.Minus, token.Star, token.Slash,
		token.Percent, token.Bang, token.Colon, token.Comma, token.Arrow, token.EOF,
	}
	assertKinds(t, got, want)
}

func TestLexerKeywords(t *testing.T) {
	got := kinds(t, "let mut print func if then else return and or")
	want := []token.Kind{
		token.Let, token.Mut, token.Print, token.Func, token.If, token.Then,
		token.Else, token.Return, token.And, token.Or, token.EOF,
	}
	assertKinds(t, got, want)
}

func TestLexerLiterals(t *testing.T) {
	toks, diags := New(strings.NewReader(`1 2.5 true false 'x' "hi" foo`), "test").Tokenize()
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	wantKinds := []token.Kind{
		token.Integer, token.Double, token.Boolean, token.Boolean,
		token.Character, token.String, token.Identifier, token.EOF,
	}
	assertKinds(t, kindsOf(toks), wantKinds)

	wantText := []string{"1", "2.5", "true", "false", "x", "hi", "foo", ""}
	for i, want := range wantText {
		if toks[i].Text != want {
			t.Errorf("token %d: got text %q, want %q", i, toks[i].Text, want)
		}
	}
}

func TestLexerLineComment(t *testing.T) {
	got := kinds(t, "let x = 1; // a trailing comment\nlet y = 2;")
	want := []token.Kind{
		token.Let, token.Identifier, token.Equals, token.Integer, token.Semicolon,
		token.Let, token.Identifier, token.Equals, token.Integer, token.Semicolon,
		token.EOF,
	}
	assertKinds(t, got, want)
}

func TestLexerUnterminatedStringReportsDiagnostic(t *testing.T) {
	_, diags := New(strings.NewReader(`"unterminated`), "test").Tokenize()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
}

func kindsOf(toks []token.Token) []token.Kind {
	var out []token.Kind
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func assertKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
