// Package diag implements the fixed taxonomy of structured parse
// diagnostics (spec §3, §7): a single Diagnostic type tagged by its Kind,
// carrying the ranges needed to highlight the offending region and, where
// relevant, a string payload.
package diag

import (
	"fmt"

	"github.com/pontaoski/wisp/source"
)

// Kind identifies a diagnostic's variant without needing a type switch.
type Kind int

const (
	// sectioning (C4)
	MismatchedBracket Kind = iota
	UnclosedBracket

	// statement grouping (C5a)
	ExpectedToEndWithSemicolon

	// per-form "empty expression after a keyword"
	PrintEmptyExpression
	LetEmptyExpression
	MutEmptyExpression
	ReturnEmptyExpression

	// per-form "invalid expression in context"
	PrintInvalidExpression
	LetInvalidExpression
	MutInvalidExpression
	ReturnInvalidExpression
	ExpectedExpressionInParens

	// per-form "malformed declaration" (shape mismatch)
	PrintMalformed
	LetMalformed
	MutMalformed
	FuncMalformed
	IfMalformed
	ReturnMalformed

	// expressions
	UnexpectedTrailingSections
	ExpectedExpression
	NonAssociativeOperatorChain

	// internal invariant violations — never a crash, always a diagnostic
	Internal
)

// Diagnostic is a parse-time error: a kind, the range(s) it applies to,
// and, for kinds that need one, a free-text payload (an identifier's
// name, or an internal-error message).
type Diagnostic struct {
	Kind   Kind
	Ranges []source.Range
	Text   string
}

// Range is a convenience accessor for the common single-range case.
func (d Diagnostic) Range() source.Range {
	if len(d.Ranges) == 0 {
		return source.Range{}
	}
	return d.Ranges[0]
}

func (d Diagnostic) Error() string {
	switch d.Kind {
	case MismatchedBracket:
		return fmt.Sprintf("mismatched bracket: opened at %s, closed at %s", d.Ranges[0], d.Ranges[1])
	case UnclosedBracket:
		return fmt.Sprintf("unclosed bracket opened at %s", d.Range())
	case ExpectedToEndWithSemicolon:
		return fmt.Sprintf("expected ';' to end statement at %s", d.Range())
	case PrintEmptyExpression:
		return fmt.Sprintf("'print' has no expression at %s", d.Range())
	case LetEmptyExpression:
		return fmt.Sprintf("'let' has no expression at %s", d.Range())
	case MutEmptyExpression:
		return fmt.Sprintf("'mut' has no expression at %s", d.Range())
	case ReturnEmptyExpression:
		return fmt.Sprintf("'return' has no expression at %s", d.Range())
	case PrintInvalidExpression:
		return fmt.Sprintf("invalid expression in 'print' at %s", d.Range())
	case LetInvalidExpression:
		return fmt.Sprintf("invalid expression in 'let' at %s", d.Range())
	case MutInvalidExpression:
		return fmt.Sprintf("invalid expression in 'mut' at %s", d.Range())
	case ReturnInvalidExpression:
		return fmt.Sprintf("invalid expression in 'return' at %s", d.Range())
	case ExpectedExpressionInParens:
		return fmt.Sprintf("expected an expression inside parentheses at %s", d.Range())
	case PrintMalformed:
		return fmt.Sprintf("malformed 'print' statement at %s", d.Range())
	case LetMalformed:
		return fmt.Sprintf("malformed 'let' declaration at %s", d.Range())
	case MutMalformed:
		return fmt.Sprintf("malformed 'mut' assignment at %s", d.Range())
	case FuncMalformed:
		return fmt.Sprintf("malformed 'func' declaration at %s", d.Range())
	case IfMalformed:
		return fmt.Sprintf("malformed 'if' at %s", d.Range())
	case ReturnMalformed:
		return fmt.Sprintf("malformed 'return' at %s", d.Range())
	case UnexpectedTrailingSections:
		return fmt.Sprintf("unexpected trailing input after a complete expression at %s", d.Range())
	case ExpectedExpression:
		return fmt.Sprintf("expected an expression at %s", d.Range())
	case NonAssociativeOperatorChain:
		return fmt.Sprintf("operator %q does not associate, chain at %s", d.Text, d.Range())
	case Internal:
		return fmt.Sprintf("internal error: %s at %s", d.Text, d.Range())
	default:
		return fmt.Sprintf("unbound parse error at %s", d.Range())
	}
}

// unboundKind is the sentinel kind for combinator.UnboundParseError. It
// must never appear in a Diagnostic batch returned to a caller outside
// the core — every entry point wraps with combinator.CatchUnbound.
const unboundKind Kind = -1

// Unbound constructs the UnboundParseError sentinel described in spec
// §4.1 and the GLOSSARY: "this combinator did not match here". It carries
// no useful range and exists only to be recognized and replaced by
// CatchUnbound.
func Unbound() Diagnostic {
	return Diagnostic{Kind: unboundKind}
}

// IsUnbound reports whether d is the sentinel produced by Unbound.
func IsUnbound(d Diagnostic) bool {
	return d.Kind == unboundKind
}
