// Package section implements the sectioning pass (spec §4.2): a
// bracket-matching sweep that promotes a flat token sequence into a
// nested tree of sections, matching '(' with ')' and '{' with '}' and
// passing every other token through as an atomic section. The lexer's EOF
// marker does not become a section.
package section

import (
	"github.com/pontaoski/wisp/diag"
	"github.com/pontaoski/wisp/source"
	"github.com/pontaoski/wisp/token"
)

// Kind tags a Section's variant.
type Kind int

const (
	Atom Kind = iota
	Paren
	Brace
)

// Section is a token or a balanced bracket group over tokens: the
// intermediate representation between the lexer and the parser.
type Section struct {
	Kind     Kind
	Range    source.Range
	Token    token.Token // valid when Kind == Atom
	Children []Section   // valid when Kind == Paren or Kind == Brace
}

func atomSection(t token.Token) Section {
	return Section{Kind: Atom, Range: t.Range, Token: t}
}

// frameKind distinguishes the three stack-frame shapes the sectioning
// algorithm pushes: the implicit file-level root, and the two bracket
// kinds.
type frameKind int

const (
	rootFrame frameKind = iota
	parenFrame
	braceFrame
)

type frame struct {
	kind        frameKind
	openerRange source.Range
	children    []Section
}

func sectionKindOf(k frameKind) Kind {
	if k == braceFrame {
		return Brace
	}
	return Paren
}

// Run sections tokens, returning the top-level sequence of sections and
// any bracket diagnostics encountered. The returned tree is always
// well-nested (spec §8 property 1) even when diagnostics are non-empty:
// mismatched closers are treated as closing whatever is currently open,
// and unclosed openers are synthesized shut at end of input.
func Run(tokens []token.Token) ([]Section, []diag.Diagnostic) {
	stack := []frame{{kind: rootFrame}}
	var diags []diag.Diagnostic

	push := func(k frameKind, openerRange source.Range) {
		stack = append(stack, frame{kind: k, openerRange: openerRange})
	}

	appendChild := func(s Section) {
		top := &stack[len(stack)-1]
		top.children = append(top.children, s)
	}

	closeTop := func(closerTok token.Token, expected frameKind) {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.kind == rootFrame {
			// A stray closer with nothing open: there is no opener range
			// to pair it with, so report it against itself and drop it —
			// it cannot become a section without an opener.
			stack = append(stack, top) // undo the pop, root never closes
			diags = append(diags, diag.Diagnostic{
				Kind:   diag.MismatchedBracket,
				Ranges: []source.Range{closerTok.Range, closerTok.Range},
			})
			return
		}

		if top.kind != expected {
			diags = append(diags, diag.Diagnostic{
				Kind:   diag.MismatchedBracket,
				Ranges: []source.Range{top.openerRange, closerTok.Range},
			})
		}

		rng := top.openerRange.Union(closerTok.Range)
		sec := Section{Kind: sectionKindOf(top.kind), Range: rng, Children: top.children}
		appendChild(sec)
	}

	var lastRange source.Range
	haveLast := false

	for _, tok := range tokens {
		lastRange = tok.Range
		haveLast = true
		switch {
		case tok.Kind == token.LParen:
			push(parenFrame, tok.Range)
		case tok.Kind == token.LBrace:
			push(braceFrame, tok.Range)
		case tok.Kind == token.RParen:
			closeTop(tok, parenFrame)
		case tok.Kind == token.RBrace:
			closeTop(tok, braceFrame)
		case tok.Kind == token.EOF:
			// end-of-input marker, not part of the program text
		default:
			appendChild(atomSection(tok))
		}
	}

	// Anything left open at EOF is unclosed: synthesize a closing section
	// spanning from the opener to EOF so the tree stays well-nested.
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		diags = append(diags, diag.Diagnostic{
			Kind:   diag.UnclosedBracket,
			Ranges: []source.Range{top.openerRange},
		})

		rng := top.openerRange
		if haveLast {
			rng = rng.Union(lastRange)
		}
		sec := Section{Kind: sectionKindOf(top.kind), Range: rng, Children: top.children}
		stack[len(stack)-1].children = append(stack[len(stack)-1].children, sec)
	}

	return stack[0].children, diags
}
