package codegen

import (
	"strings"
	"testing"

	"github.com/pontaoski/wisp/ast"
	"github.com/pontaoski/wisp/source"
)

func rng() source.Range { return source.Range{} }

func TestGeneratePrintIntegerLiteral(t *testing.T) {
	file := ast.File{Statements: []ast.Statement{
		ast.Print{Value: ast.IntegerLiteral{Value: 42, Rng: rng()}, Rng: rng()},
	}}

	m, err := Generate(file)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ir := m.String()
	if !strings.Contains(ir, "_wisp_main") {
		t.Errorf("expected an entry function in module:\n%s", ir)
	}
	if !strings.Contains(ir, "wisp_print_int") {
		t.Errorf("expected a call to the int print extern:\n%s", ir)
	}
}

func TestGenerateFuncDeclAndCall(t *testing.T) {
	intType := ast.NamedType{Name: "Int", Rng: rng()}
	add := ast.FuncDecl{
		Name: "add",
		Literal: ast.FuncLiteral{
			Params: []ast.Param{
				{Name: "a", Type: intType, Rng: rng()},
				{Name: "b", Type: intType, Rng: rng()},
			},
			Ret: intType,
			Body: ast.Binary{
				Op:    ast.OpAdd,
				Left:  ast.Variable{Name: "a", Rng: rng()},
				Right: ast.Variable{Name: "b", Rng: rng()},
				Rng:   rng(),
			},
			Rng: rng(),
		},
		Rng: rng(),
	}
	call := ast.ExprStmt{
		Value: ast.Call{
			Callee: ast.Variable{Name: "add", Rng: rng()},
			Args:   []ast.Expression{ast.IntegerLiteral{Value: 1, Rng: rng()}, ast.IntegerLiteral{Value: 2, Rng: rng()}},
			Rng:    rng(),
		},
		Rng: rng(),
	}

	m, err := Generate(ast.File{Statements: []ast.Statement{add, call}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ir := m.String()
	if !strings.Contains(ir, "define i64 @add") {
		t.Errorf("expected a defined add function:\n%s", ir)
	}
	if !strings.Contains(ir, "call i64 @add") {
		t.Errorf("expected a call to add:\n%s", ir)
	}
}

func TestGenerateUnboundVariableIsAnError(t *testing.T) {
	file := ast.File{Statements: []ast.Statement{
		ast.Print{Value: ast.Variable{Name: "nope", Rng: rng()}, Rng: rng()},
	}}
	if _, err := Generate(file); err == nil {
		t.Fatal("expected an error for an unbound variable")
	}
}

func TestGenerateIfExpression(t *testing.T) {
	boolLit := ast.BooleanLiteral{Value: true, Rng: rng()}
	ifExpr := ast.If{
		Cond: boolLit,
		Then: ast.ExprStmt{Value: ast.IntegerLiteral{Value: 1, Rng: rng()}, Rng: rng()},
		Else: ast.ExprStmt{Value: ast.IntegerLiteral{Value: 2, Rng: rng()}, Rng: rng()},
		Rng:  rng(),
	}
	file := ast.File{Statements: []ast.Statement{
		ast.LetDecl{Name: "x", Value: ifExpr, Rng: rng()},
		ast.Print{Value: ast.Variable{Name: "x", Rng: rng()}, Rng: rng()},
	}}

	m, err := Generate(file)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(m.String(), "phi") {
		t.Errorf("expected a phi merging the if-expression's branches:\n%s", m.String())
	}
}
