// Expression parsing (spec §4.4): the precedence cascade from logical
// down through primary, built out of the combinator substrate
// instantiated at E = section.Section. Grounded on the teacher's
// parser.go recursive-descent shape and, for the accumulating-diagnostic
// precedence table itself, on other_examples/duhaifeng-light-lang's
// binding-power parser.
package parser

import (
	"strconv"

	"github.com/pontaoski/wisp/ast"
	"github.com/pontaoski/wisp/combinator"
	"github.com/pontaoski/wisp/diag"
	"github.com/pontaoski/wisp/section"
	"github.com/pontaoski/wisp/source"
	"github.com/pontaoski/wisp/token"
)

var multiplicativeOps = map[token.Kind]ast.BinaryOp{
	token.Star:    ast.OpMul,
	token.Slash:   ast.OpDiv,
	token.Percent: ast.OpMod,
}

var additiveOps = map[token.Kind]ast.BinaryOp{
	token.Plus:  ast.OpAdd,
	token.Minus: ast.OpSub,
}

var comparisonOps = map[token.Kind]ast.BinaryOp{
	token.Less:         ast.OpLt,
	token.LessEquals:   ast.OpLte,
	token.Greater:      ast.OpGt,
	token.GreaterEquals: ast.OpGte,
}

var equalityOps = map[token.Kind]ast.BinaryOp{
	token.EqualsEquals: ast.OpEq,
	token.BangEquals:   ast.OpNeq,
}

var logicalOps = map[token.Kind]ast.BinaryOp{
	token.And: ast.OpAnd,
	token.Or:  ast.OpOr,
}

func expression() exprParser {
	return logicalLevel()
}

func logicalLevel() exprParser      { return leftAssoc(equalityLevel(), logicalOps) }
func equalityLevel() exprParser     { return nonAssoc(comparisonLevel(), equalityOps) }
func comparisonLevel() exprParser   { return nonAssoc(additiveLevel(), comparisonOps) }
func additiveLevel() exprParser     { return leftAssoc(multiplicativeLevel(), additiveOps) }
func multiplicativeLevel() exprParser { return leftAssoc(unaryLevel(), multiplicativeOps) }

// unaryLevel greedily consumes prefix operators, parses a primary, then
// right-folds the operators around it so the textually leftmost operator
// ends up outermost (spec §4.4).
func unaryLevel() exprParser {
	return func(in exprCursor) (exprCursor, exprOutcome) {
		var ops []unaryOpTok
		cur := in
		for {
			rest, o := matchUnaryOp()(cur)
			if !o.IsOk() {
				break
			}
			ops = append(ops, o.Value)
			cur = rest
		}

		rest, o := primaryLevel()(cur)
		if !o.IsOk() {
			return rest, o
		}
		expr := o.Value
		for i := len(ops) - 1; i >= 0; i-- {
			expr = ast.Unary{Op: ops[i].op, Operand: expr, Rng: ops[i].rng.Union(expr.Range())}
		}
		return rest, combinator.Ok(expr)
	}
}

// primaryLevel tries the literal-or-variable shape first; on non-
// consuming failure, tries a function literal, then an if-expression,
// then a parenthesized expression (spec §4.4). Any of those, once
// matched, may be followed by one or more call-argument Paren sections,
// composing left-to-right for chained calls.
func primaryLevel() exprParser {
	basic := combinator.Alt(literalOrVariable(),
		combinator.Alt(funcLiteral(),
			combinator.Alt(ifPrimary(), parenExpr())))

	return func(in exprCursor) (exprCursor, exprOutcome) {
		cur, o := basic(in)
		if !o.IsOk() {
			return cur, o
		}
		expr := o.Value

		for len(cur) > 0 && cur[0].Kind == section.Paren {
			args, argDiags := parseCallArgs(cur[0])
			if len(argDiags) > 0 {
				return cur[1:], combinator.Fail[ast.Expression](argDiags...)
			}
			expr = ast.Call{Callee: expr, Args: args, Rng: expr.Range().Union(cur[0].Range)}
			cur = cur[1:]
		}
		return cur, combinator.Ok(expr)
	}
}

func literalOrVariable() exprParser {
	return combinator.NextIf(func(s section.Section) (ast.Expression, bool) {
		if s.Kind != section.Atom {
			return nil, false
		}
		switch s.Token.Kind {
		case token.Integer:
			v, _ := strconv.ParseInt(s.Token.Text, 10, 64)
			return ast.IntegerLiteral{Value: v, Rng: s.Range}, true
		case token.Double:
			v, _ := strconv.ParseFloat(s.Token.Text, 64)
			return ast.DoubleLiteral{Value: v, Rng: s.Range}, true
		case token.Boolean:
			return ast.BooleanLiteral{Value: s.Token.Text == "true", Rng: s.Range}, true
		case token.Character:
			runes := []rune(s.Token.Text)
			var c rune
			if len(runes) > 0 {
				c = runes[0]
			}
			return ast.CharacterLiteral{Value: c, Rng: s.Range}, true
		case token.String:
			return ast.StringLiteral{Value: s.Token.Text, Rng: s.Range}, true
		case token.Identifier:
			return ast.Variable{Name: s.Token.Text, Rng: s.Range}, true
		}
		return nil, false
	})
}

// parenExpr parses `( expr )`: a Paren section whose children are parsed
// as a single expression via run_to_end (spec §4.4).
func parenExpr() exprParser {
	return func(in exprCursor) (exprCursor, exprOutcome) {
		if len(in) == 0 || in[0].Kind != section.Paren {
			return in, combinator.Fail[ast.Expression](diag.Unbound())
		}
		paren := in[0]
		inner, diags := parseExpressionTail(paren.Children, diag.ExpectedExpressionInParens)
		if inner == nil {
			return in[1:], combinator.Fail[ast.Expression](diags...)
		}
		return in[1:], combinator.Ok[ast.Expression](ast.Paren{Inner: inner, Rng: paren.Range})
	}
}

// funcLiteral parses `(params) : RetType -> body` or `(params) : RetType
// -> { statements }`. It only commits once it has seen a Paren section
// immediately followed by ':' — any other shape is rejected without
// consuming input, so Alt falls through to the other primaries.
func funcLiteral() exprParser {
	return func(in exprCursor) (exprCursor, exprOutcome) {
		if len(in) == 0 || in[0].Kind != section.Paren {
			return in, combinator.Fail[ast.Expression](diag.Unbound())
		}
		paren := in[0]
		rest := in[1:]
		if len(rest) == 0 || !isAtomKind(rest[0], token.Colon) {
			return in, combinator.Fail[ast.Expression](diag.Unbound())
		}

		// Committed: only a function literal has this shape from here on.
		rest = rest[1:]
		if len(rest) == 0 || rest[0].Kind != section.Atom || rest[0].Token.Kind != token.Identifier {
			return rest, combinator.Fail[ast.Expression](diag.Diagnostic{Kind: diag.ExpectedExpression, Ranges: []source.Range{paren.Range}})
		}
		retType := ast.NamedType{Name: rest[0].Token.Text, Rng: rest[0].Range}
		rest = rest[1:]

		if len(rest) == 0 || !isAtomKind(rest[0], token.Arrow) {
			return rest, combinator.Fail[ast.Expression](diag.Diagnostic{Kind: diag.ExpectedExpression, Ranges: []source.Range{paren.Range}})
		}
		arrow := rest[0]
		rest = rest[1:]

		params, paramDiags := parseParams(paren)
		if len(paramDiags) > 0 {
			return nil, combinator.Fail[ast.Expression](paramDiags...)
		}

		if len(rest) == 1 && rest[0].Kind == section.Brace {
			body, bodyDiags := parseGroups(rest[0].Children)
			if len(bodyDiags) > 0 {
				return nil, combinator.Fail[ast.Expression](bodyDiags...)
			}
			block := ast.Block{Statements: body, Rng: rest[0].Range}
			return nil, combinator.Ok[ast.Expression](ast.FuncLiteral{
				Params: params,
				Ret:    retType,
				Body:   block,
				Rng:    paren.Range.Union(rest[0].Range),
			})
		}

		body, bodyDiags := parseExpressionTail(rest, diag.ExpectedExpression)
		if body == nil {
			return nil, combinator.Fail[ast.Expression](bodyDiags...)
		}
		return nil, combinator.Ok[ast.Expression](ast.FuncLiteral{
			Params: params,
			Ret:    retType,
			Body:   body,
			Rng:    paren.Range.Union(arrow.Range).Union(body.Range()),
		})
	}
}

// ifPrimary admits `if` in expression position (spec §9 Open Question
// (b)): condition, then-expression and else-expression are each a plain
// expression rather than a full statement GROUP, and the construct
// consumes the rest of its enclosing cursor — the same simplification
// statement-position `if` does not need, since there the GROUP boundary
// is unambiguous.
func ifPrimary() exprParser {
	return func(in exprCursor) (exprCursor, exprOutcome) {
		if len(in) == 0 || !isAtomKind(in[0], token.If) {
			return in, combinator.Fail[ast.Expression](diag.Unbound())
		}
		rng := rangeOfGroup(in)
		rest := in[1:]

		thenIdx := indexOfAtomKind(rest, token.Then)
		if thenIdx < 0 {
			return nil, combinator.Fail[ast.Expression](diag.Diagnostic{Kind: diag.IfMalformed, Ranges: []source.Range{rng}})
		}
		condSections := rest[:thenIdx]
		if len(condSections) == 0 {
			return nil, combinator.Fail[ast.Expression](diag.Diagnostic{Kind: diag.IfMalformed, Ranges: []source.Range{rng}})
		}

		afterThen := rest[thenIdx+1:]
		elseIdx := indexOfAtomKind(afterThen, token.Else)
		hasElse := elseIdx >= 0

		var thenSections, elseSections []section.Section
		if hasElse {
			thenSections, elseSections = afterThen[:elseIdx], afterThen[elseIdx+1:]
		} else {
			thenSections = afterThen
		}
		if len(thenSections) == 0 || (hasElse && len(elseSections) == 0) {
			return nil, combinator.Fail[ast.Expression](diag.Diagnostic{Kind: diag.IfMalformed, Ranges: []source.Range{rng}})
		}

		condExpr, condDiags := parseExpressionTail(condSections, diag.IfMalformed)
		if condExpr == nil {
			return nil, combinator.Fail[ast.Expression](condDiags...)
		}
		thenExpr, thenDiags := parseExpressionTail(thenSections, diag.IfMalformed)
		if thenExpr == nil {
			return nil, combinator.Fail[ast.Expression](thenDiags...)
		}

		var elseStmt ast.Statement
		if hasElse {
			elseExpr, elseDiags := parseExpressionTail(elseSections, diag.IfMalformed)
			if elseExpr == nil {
				return nil, combinator.Fail[ast.Expression](elseDiags...)
			}
			elseStmt = ast.ExprStmt{Value: elseExpr, Rng: elseExpr.Range()}
		}

		node := ast.If{
			Cond: condExpr,
			Then: ast.ExprStmt{Value: thenExpr, Rng: thenExpr.Range()},
			Else: elseStmt,
			Rng:  rng,
		}
		return nil, combinator.Ok[ast.Expression](node)
	}
}

// parseExpressionTail parses sections as a complete expression (spec's
// run_to_end + catch_unbound discipline) and converts the Unbound
// sentinel into onUnbound, carrying the whole tail's range.
func parseExpressionTail(sections []section.Section, onUnbound diag.Kind) (ast.Expression, []diag.Diagnostic) {
	outcome := combinator.RunToEnd(expression(), sections)
	rng := source.Range{}
	if len(sections) > 0 {
		rng = rangeOfGroup(sections)
	}
	outcome = combinator.CatchUnbound(outcome, func() diag.Diagnostic {
		return diag.Diagnostic{Kind: onUnbound, Ranges: []source.Range{rng}}
	})
	if !outcome.IsOk() {
		return nil, outcome.Errs
	}
	return outcome.Value, nil
}

// parseParams splits a function literal's parameter Paren section on
// top-level commas into `ident : type` entries (spec §4.4).
func parseParams(paren section.Section) ([]ast.Param, []diag.Diagnostic) {
	segments := splitOnComma(paren.Children)
	var params []ast.Param
	var diags []diag.Diagnostic

	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if len(seg) != 3 || seg[0].Kind != section.Atom || seg[0].Token.Kind != token.Identifier ||
			!isAtomKind(seg[1], token.Colon) ||
			seg[2].Kind != section.Atom || seg[2].Token.Kind != token.Identifier {
			diags = append(diags, diag.Diagnostic{Kind: diag.ExpectedExpression, Ranges: []source.Range{rangeOfGroup(seg)}})
			continue
		}
		params = append(params, ast.Param{
			Name: seg[0].Token.Text,
			Type: ast.NamedType{Name: seg[2].Token.Text, Rng: seg[2].Range},
			Rng:  seg[0].Range.Union(seg[2].Range),
		})
	}
	return params, diags
}

// parseCallArgs splits a call's argument Paren section on top-level
// commas and parses each segment as an expression.
func parseCallArgs(paren section.Section) ([]ast.Expression, []diag.Diagnostic) {
	segments := splitOnComma(paren.Children)
	var args []ast.Expression
	var diags []diag.Diagnostic

	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		expr, exprDiags := parseExpressionTail(seg, diag.ExpectedExpression)
		if expr == nil {
			diags = append(diags, exprDiags...)
			continue
		}
		args = append(args, expr)
	}
	return args, diags
}

func splitOnComma(sections []section.Section) [][]section.Section {
	if len(sections) == 0 {
		return nil
	}
	var groups [][]section.Section
	var cur []section.Section
	for _, s := range sections {
		if isAtomKind(s, token.Comma) {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, s)
	}
	groups = append(groups, cur)
	return groups
}

