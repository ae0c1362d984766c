package ast

import (
	"testing"

	"github.com/pontaoski/wisp/source"
)

func rng(from, to int) source.Range {
	return source.Range{From: source.Position{Offset: from}, To: source.Position{Offset: to}}
}

// TestBlockAndIfAreBothStatementAndExpression pins the one deliberate
// dual-interface exception the DSL generator (tool/) can't express: the
// corpus uses both in statement and expression position (spec §9 Open
// Question b).
func TestBlockAndIfAreBothStatementAndExpression(t *testing.T) {
	var _ Statement = Block{}
	var _ Expression = Block{}
	var _ Statement = If{}
	var _ Expression = If{}
}

func TestRangeAccessorsReturnTheNodesOwnRange(t *testing.T) {
	r := rng(0, 5)
	nodes := []interface{ Range() source.Range }{
		Print{Rng: r},
		LetDecl{Rng: r},
		MutAssign{Rng: r},
		FuncDecl{Rng: r},
		Return{Rng: r},
		ExprStmt{Rng: r},
		Block{Rng: r},
		If{Rng: r},
		IntegerLiteral{Rng: r},
		Variable{Rng: r},
		Binary{Rng: r},
		Paren{Rng: r},
		Call{Rng: r},
		NamedType{Rng: r},
	}
	for _, n := range nodes {
		if n.Range() != r {
			t.Errorf("%T.Range() = %v, want %v", n, n.Range(), r)
		}
	}
}

func TestBinaryOpString(t *testing.T) {
	cases := map[BinaryOp]string{
		OpAnd: "and", OpAdd: "+", OpEq: "==", OpGte: ">=",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("BinaryOp(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestUnaryOpString(t *testing.T) {
	if OpNeg.String() != "-" {
		t.Errorf("OpNeg.String() = %q, want \"-\"", OpNeg.String())
	}
	if OpNot.String() != "!" {
		t.Errorf("OpNot.String() = %q, want \"!\"", OpNot.String())
	}
}

func TestParenWrapsInner(t *testing.T) {
	inner := IntegerLiteral{Value: 1, Rng: rng(1, 2)}
	p := Paren{Inner: inner, Rng: rng(0, 3)}
	if p.Inner.(IntegerLiteral).Value != 1 {
		t.Fatal("Paren.Inner should carry the wrapped expression through unchanged")
	}
	if p.Range() == p.Inner.Range() {
		t.Error("Paren's own range should include the parentheses, differing from its Inner's")
	}
}
