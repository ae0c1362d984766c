// Shared binary/unary operator-recognition and fold helpers for the
// precedence cascade (spec §4.4, §4.5). Each binary level is classified
// by a pure Section → Option<BinaryCtor> function: only an Atom whose
// token matches the level's operator set is accepted, anything else is
// rejected non-consumingly so the level's repetition terminates cleanly.
package parser

import (
	"github.com/pontaoski/wisp/ast"
	"github.com/pontaoski/wisp/combinator"
	"github.com/pontaoski/wisp/diag"
	"github.com/pontaoski/wisp/section"
	"github.com/pontaoski/wisp/source"
	"github.com/pontaoski/wisp/token"
)

type exprParser = combinator.Parser[section.Section, ast.Expression]
type exprCursor = combinator.Cursor[section.Section]
type exprOutcome = combinator.Outcome[ast.Expression]

func matchOp(ops map[token.Kind]ast.BinaryOp) combinator.Parser[section.Section, ast.BinaryOp] {
	return combinator.NextIf(func(s section.Section) (ast.BinaryOp, bool) {
		if s.Kind != section.Atom {
			return 0, false
		}
		op, ok := ops[s.Token.Kind]
		return op, ok
	})
}

type unaryOpTok struct {
	op  ast.UnaryOp
	rng source.Range
}

func matchUnaryOp() combinator.Parser[section.Section, unaryOpTok] {
	return combinator.NextIf(func(s section.Section) (unaryOpTok, bool) {
		if s.Kind != section.Atom {
			return unaryOpTok{}, false
		}
		switch s.Token.Kind {
		case token.Minus:
			return unaryOpTok{ast.OpNeg, s.Range}, true
		case token.Bang:
			return unaryOpTok{ast.OpNot, s.Range}, true
		}
		return unaryOpTok{}, false
	})
}

// leftAssoc parses next, then greedily consumes (op, rhs) pairs from the
// given level's operator set and left-folds them into nested Binary
// nodes (spec §4.4's left-associative-level procedure).
func leftAssoc(next exprParser, ops map[token.Kind]ast.BinaryOp) exprParser {
	return func(in exprCursor) (exprCursor, exprOutcome) {
		cur, o := next(in)
		if !o.IsOk() {
			return cur, o
		}
		lhs := o.Value

		for {
			opRest, opOutcome := matchOp(ops)(cur)
			if !opOutcome.IsOk() {
				// NextIf never consumes on failure, so this is always the
				// clean, non-consuming end of the repetition.
				return cur, combinator.Ok(lhs)
			}

			rhsRest, rhsOutcome := next(opRest)
			if !rhsOutcome.IsOk() {
				return rhsRest, rhsOutcome
			}
			rhs := rhsOutcome.Value
			lhs = ast.Binary{Op: opOutcome.Value, Left: lhs, Right: rhs, Rng: lhs.Range().Union(rhs.Range())}
			cur = rhsRest
		}
	}
}

// nonAssoc parses next, then consumes at most one (op, rhs) pair. A
// second operator of the same level immediately following is a hard
// parse error (spec §8 property 5: "a == b == c fails with a parse
// error").
func nonAssoc(next exprParser, ops map[token.Kind]ast.BinaryOp) exprParser {
	return func(in exprCursor) (exprCursor, exprOutcome) {
		cur, o := next(in)
		if !o.IsOk() {
			return cur, o
		}
		lhs := o.Value

		opRest, opOutcome := matchOp(ops)(cur)
		if !opOutcome.IsOk() {
			return cur, combinator.Ok(lhs)
		}

		rhsRest, rhsOutcome := next(opRest)
		if !rhsOutcome.IsOk() {
			return rhsRest, rhsOutcome
		}
		rhs := rhsOutcome.Value
		combined := ast.Binary{Op: opOutcome.Value, Left: lhs, Right: rhs, Rng: lhs.Range().Union(rhs.Range())}

		if _, chainOutcome := matchOp(ops)(rhsRest); chainOutcome.IsOk() {
			return rhsRest, combinator.Fail[ast.Expression](diag.Diagnostic{
				Kind:   diag.NonAssociativeOperatorChain,
				Ranges: []source.Range{combined.Rng},
				Text:   chainOutcome.Value.String(),
			})
		}

		return rhsRest, combinator.Ok[ast.Expression](combined)
	}
}
