package section

import (
	"testing"

	"github.com/pontaoski/wisp/diag"
	"github.com/pontaoski/wisp/source"
	"github.com/pontaoski/wisp/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Range: source.Single(source.Position{Offset: 0})}
}

func TestFlatAtomsPassThrough(t *testing.T) {
	toks := []token.Token{tok(token.Identifier), tok(token.Semicolon)}
	sections, diags := Run(toks)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(sections) != 2 || sections[0].Kind != Atom || sections[1].Kind != Atom {
		t.Fatalf("expected two atom sections, got %+v", sections)
	}
}

func TestBalancedParenNests(t *testing.T) {
	toks := []token.Token{tok(token.LParen), tok(token.Identifier), tok(token.RParen)}
	sections, diags := Run(toks)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(sections) != 1 || sections[0].Kind != Paren {
		t.Fatalf("expected a single Paren section, got %+v", sections)
	}
	if len(sections[0].Children) != 1 || sections[0].Children[0].Kind != Atom {
		t.Fatalf("expected one atom child, got %+v", sections[0].Children)
	}
}

func TestNestedBraceInParen(t *testing.T) {
	toks := []token.Token{
		tok(token.LParen), tok(token.LBrace), tok(token.Identifier), tok(token.RBrace), tok(token.RParen),
	}
	sections, diags := Run(toks)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(sections) != 1 || sections[0].Kind != Paren {
		t.Fatalf("expected outer Paren, got %+v", sections)
	}
	inner := sections[0].Children
	if len(inner) != 1 || inner[0].Kind != Brace {
		t.Fatalf("expected one nested Brace child, got %+v", inner)
	}
}

func TestMismatchedBracketReportsAndRecovers(t *testing.T) {
	toks := []token.Token{tok(token.LParen), tok(token.Identifier), tok(token.RBrace)}
	sections, diags := Run(toks)
	if len(diags) != 1 || diags[0].Kind != diag.MismatchedBracket {
		t.Fatalf("expected one MismatchedBracket diagnostic, got %v", diags)
	}
	if len(sections) != 1 || sections[0].Kind != Paren {
		t.Fatalf("a mismatched closer should still close whatever is open: %+v", sections)
	}
}

func TestUnclosedBracketIsSynthesizedShut(t *testing.T) {
	toks := []token.Token{tok(token.LParen), tok(token.Identifier)}
	sections, diags := Run(toks)
	if len(diags) != 1 || diags[0].Kind != diag.UnclosedBracket {
		t.Fatalf("expected one UnclosedBracket diagnostic, got %v", diags)
	}
	if len(sections) != 1 || sections[0].Kind != Paren {
		t.Fatalf("expected the unclosed paren to still produce a well-nested section: %+v", sections)
	}
}

func TestStrayCloserWithNothingOpenIsDropped(t *testing.T) {
	toks := []token.Token{tok(token.RParen), tok(token.Identifier)}
	sections, diags := Run(toks)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic for the stray closer, got %v", diags)
	}
	if len(sections) != 1 || sections[0].Kind != Atom {
		t.Fatalf("the stray closer must not appear in the section tree: %+v", sections)
	}
}
