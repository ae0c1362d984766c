// Statement-level parsing (spec §4.3): splitting a section sequence into
// semicolon-delimited groups and dispatching each group to a per-form
// parser by its first section's shape. Grounded on the teacher's
// parser.go keyword-dispatch switch, generalized from panic/recover into
// diagnostic accumulation across sibling groups.
package parser

import (
	"github.com/pontaoski/wisp/ast"
	"github.com/pontaoski/wisp/diag"
	"github.com/pontaoski/wisp/section"
	"github.com/pontaoski/wisp/source"
	"github.com/pontaoski/wisp/token"
)

// ParseFile parses the top-level section sequence of a file into the
// FileScope downstream passes consume (spec §6).
func ParseFile(sections []section.Section) (ast.File, []diag.Diagnostic) {
	stmts, diags := parseGroups(sections)
	return ast.File{Statements: stmts}, diags
}

// parseGroups splits sections at top-level ';' atoms (spec §4.3 steps
// 1-2) and parses each group independently: errors from sibling groups
// are collected, never short-circuited (spec §7's between-statements
// accumulation policy).
func parseGroups(sections []section.Section) ([]ast.Statement, []diag.Diagnostic) {
	var groups [][]section.Section
	var terminated []bool
	var cur []section.Section

	for _, s := range sections {
		if isAtomKind(s, token.Semicolon) {
			groups = append(groups, cur)
			terminated = append(terminated, true)
			cur = nil
			continue
		}
		cur = append(cur, s)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
		terminated = append(terminated, false)
	}

	var stmts []ast.Statement
	var diags []diag.Diagnostic

	for i, group := range groups {
		if len(group) == 0 {
			continue
		}
		if !terminated[i] {
			diags = append(diags, diag.Diagnostic{
				Kind:   diag.ExpectedToEndWithSemicolon,
				Ranges: []source.Range{rangeOfGroup(group)},
			})
			continue
		}
		stmt, groupDiags := parseGroup(group)
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		diags = append(diags, groupDiags...)
	}

	return stmts, diags
}

// parseGroup parses the section subsequence of a single GROUP (spec
// GLOSSARY) into one statement. A lone brace section is recursively
// expanded into a Block of its own statement sequence (spec §8's
// nested-scope seed scenario); otherwise the first section's shape
// selects the form (spec §4.3's table).
func parseGroup(group []section.Section) (ast.Statement, []diag.Diagnostic) {
	if len(group) == 1 && group[0].Kind == section.Brace {
		inner, diags := parseGroups(group[0].Children)
		return ast.Block{Statements: inner, Rng: group[0].Range}, diags
	}

	first := group[0]
	if first.Kind == section.Atom {
		switch first.Token.Kind {
		case token.Print:
			return parsePrintGroup(group)
		case token.Let:
			return parseLetGroup(group)
		case token.Mut:
			return parseMutGroup(group)
		case token.Func:
			return parseFuncGroup(group)
		case token.Return:
			return parseReturnGroup(group)
		case token.If:
			return parseIfGroup(group)
		}
	}

	return parseExprStmtGroup(group)
}

func parsePrintGroup(group []section.Section) (ast.Statement, []diag.Diagnostic) {
	keyword := group[0]
	tail := group[1:]
	rng := rangeOfGroup(group)

	if len(tail) == 0 {
		return nil, []diag.Diagnostic{{Kind: diag.PrintEmptyExpression, Ranges: []source.Range{keyword.Range}}}
	}

	expr, diags := parseExpressionTail(tail, diag.PrintInvalidExpression)
	if expr == nil {
		return nil, diags
	}
	return ast.Print{Value: expr, Rng: rng}, diags
}

func parseLetGroup(group []section.Section) (ast.Statement, []diag.Diagnostic) {
	keyword := group[0]
	tail := group[1:]
	rng := rangeOfGroup(group)
	malformed := []diag.Diagnostic{{Kind: diag.LetMalformed, Ranges: []source.Range{rng}}}

	if len(tail) == 0 || tail[0].Kind != section.Atom || tail[0].Token.Kind != token.Identifier {
		return nil, malformed
	}
	name := tail[0].Token.Text
	rest := tail[1:]

	var varType ast.Type
	if len(rest) >= 2 && isAtomKind(rest[0], token.Colon) && rest[1].Kind == section.Atom && rest[1].Token.Kind == token.Identifier {
		varType = ast.NamedType{Name: rest[1].Token.Text, Rng: rest[1].Range}
		rest = rest[2:]
	}

	if len(rest) == 0 || !isAtomKind(rest[0], token.Equals) {
		return nil, malformed
	}
	equals := rest[0]
	exprSections := rest[1:]

	if len(exprSections) == 0 {
		return nil, []diag.Diagnostic{{Kind: diag.LetEmptyExpression, Ranges: []source.Range{keyword.Range.Union(equals.Range)}}}
	}

	expr, diags := parseExpressionTail(exprSections, diag.LetInvalidExpression)
	if expr == nil {
		return nil, diags
	}
	return ast.LetDecl{Name: name, Type: varType, Value: expr, Rng: rng}, diags
}

func parseMutGroup(group []section.Section) (ast.Statement, []diag.Diagnostic) {
	keyword := group[0]
	tail := group[1:]
	rng := rangeOfGroup(group)
	malformed := []diag.Diagnostic{{Kind: diag.MutMalformed, Ranges: []source.Range{rng}}}

	if len(tail) < 2 || tail[0].Kind != section.Atom || tail[0].Token.Kind != token.Identifier {
		return nil, malformed
	}
	name := tail[0].Token.Text
	if !isAtomKind(tail[1], token.Equals) {
		return nil, malformed
	}
	equals := tail[1]
	exprSections := tail[2:]

	if len(exprSections) == 0 {
		return nil, []diag.Diagnostic{{Kind: diag.MutEmptyExpression, Ranges: []source.Range{keyword.Range.Union(equals.Range)}}}
	}

	expr, diags := parseExpressionTail(exprSections, diag.MutInvalidExpression)
	if expr == nil {
		return nil, diags
	}
	return ast.MutAssign{Name: name, Value: expr, Rng: rng}, diags
}

func parseFuncGroup(group []section.Section) (ast.Statement, []diag.Diagnostic) {
	tail := group[1:]
	rng := rangeOfGroup(group)
	malformed := []diag.Diagnostic{{Kind: diag.FuncMalformed, Ranges: []source.Range{rng}}}

	if len(tail) < 2 || tail[0].Kind != section.Atom || tail[0].Token.Kind != token.Identifier {
		return nil, malformed
	}
	name := tail[0].Token.Text
	if !isAtomKind(tail[1], token.Equals) {
		return nil, malformed
	}
	exprSections := tail[2:]
	if len(exprSections) == 0 {
		return nil, malformed
	}

	expr, diags := parseExpressionTail(exprSections, diag.FuncMalformed)
	if expr == nil {
		return nil, diags
	}
	lit, ok := expr.(ast.FuncLiteral)
	if !ok {
		return nil, append(diags, malformed...)
	}
	return ast.FuncDecl{Name: name, Literal: lit, Rng: rng}, diags
}

func parseReturnGroup(group []section.Section) (ast.Statement, []diag.Diagnostic) {
	keyword := group[0]
	tail := group[1:]
	rng := rangeOfGroup(group)

	if len(tail) == 0 {
		return ast.Return{Value: nil, Rng: keyword.Range}, nil
	}

	expr, diags := parseExpressionTail(tail, diag.ReturnInvalidExpression)
	if expr == nil {
		return nil, diags
	}
	return ast.Return{Value: expr, Rng: rng}, diags
}

func parseIfGroup(group []section.Section) (ast.Statement, []diag.Diagnostic) {
	rng := rangeOfGroup(group)
	malformed := []diag.Diagnostic{{Kind: diag.IfMalformed, Ranges: []source.Range{rng}}}

	stmt, diags, ok := parseIfShape(group)
	if !ok {
		return nil, malformed
	}
	return stmt, diags
}

// parseIfShape parses a statement-position `if` (spec §9 Open Question
// (b)); the expression-position form is parsed separately by ifPrimary.
// It locates the top-level `then`/`else` atoms, parses the condition as
// an expression and the branches as single GROUPs.
func parseIfShape(group []section.Section) (ast.If, []diag.Diagnostic, bool) {
	rng := rangeOfGroup(group)
	tail := group[1:]

	thenIdx := indexOfAtomKind(tail, token.Then)
	if thenIdx < 0 {
		return ast.If{}, nil, false
	}
	condSections := tail[:thenIdx]
	if len(condSections) == 0 {
		return ast.If{}, nil, false
	}

	afterThen := tail[thenIdx+1:]
	elseIdx := indexOfAtomKind(afterThen, token.Else)

	var thenSections, elseSections []section.Section
	if elseIdx >= 0 {
		thenSections = afterThen[:elseIdx]
		elseSections = afterThen[elseIdx+1:]
	} else {
		thenSections = afterThen
	}
	if len(thenSections) == 0 {
		return ast.If{}, nil, false
	}

	var diags []diag.Diagnostic

	cond, condDiags := parseExpressionTail(condSections, diag.IfMalformed)
	diags = append(diags, condDiags...)
	if cond == nil {
		return ast.If{}, diags, false
	}

	thenStmt, thenDiags := parseGroup(thenSections)
	diags = append(diags, thenDiags...)

	var elseStmt ast.Statement
	if elseIdx >= 0 {
		if len(elseSections) == 0 {
			diags = append(diags, diag.Diagnostic{Kind: diag.IfMalformed, Ranges: []source.Range{rng}})
		} else {
			var elseDiags []diag.Diagnostic
			elseStmt, elseDiags = parseGroup(elseSections)
			diags = append(diags, elseDiags...)
		}
	}

	return ast.If{Cond: cond, Then: thenStmt, Else: elseStmt, Rng: rng}, diags, true
}

func parseExprStmtGroup(group []section.Section) (ast.Statement, []diag.Diagnostic) {
	rng := rangeOfGroup(group)
	expr, diags := parseExpressionTail(group, diag.UnexpectedTrailingSections)
	if expr == nil {
		return nil, diags
	}
	return ast.ExprStmt{Value: expr, Rng: rng}, diags
}

// --- shared helpers -----------------------------------------------------

func isAtomKind(s section.Section, k token.Kind) bool {
	return s.Kind == section.Atom && s.Token.Kind == k
}

func indexOfAtomKind(sections []section.Section, k token.Kind) int {
	for i, s := range sections {
		if isAtomKind(s, k) {
			return i
		}
	}
	return -1
}

func rangeOfGroup(group []section.Section) source.Range {
	rng := group[0].Range
	for _, s := range group[1:] {
		rng = rng.Union(s.Range)
	}
	return rng
}
