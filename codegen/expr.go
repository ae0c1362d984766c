package codegen

import (
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pontaoski/wisp/ast"
)

// genExpr emits expr into block, returning the SSA value it produces.
// Unlike genStatement, an expression never changes which block is
// "current" except inside an if-expression, which is restricted to
// genIfExpr's own internal blocks and always resolves to a single phi
// value before returning.
func (c *ctx) genExpr(fn *ir.Func, block *ir.Block, expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case ast.IntegerLiteral:
		return constant.NewInt(types.I64, e.Value), nil
	case ast.DoubleLiteral:
		return constant.NewFloat(types.Double, e.Value), nil
	case ast.BooleanLiteral:
		if e.Value {
			return constant.True, nil
		}
		return constant.False, nil
	case ast.CharacterLiteral:
		return constant.NewInt(types.I8, int64(e.Value)), nil
	case ast.StringLiteral:
		return c.genStringLiteral(block, e), nil
	case ast.Variable:
		b, ok := c.lookup(e.Name)
		if !ok {
			return nil, fmt.Errorf("codegen: unbound variable %q at %s", e.Name, e.Rng)
		}
		if b.mutable {
			return block.NewLoad(b.val.Type().(*types.PointerType).ElemType, b.val), nil
		}
		return b.val, nil
	case ast.Paren:
		return c.genExpr(fn, block, e.Inner)
	case ast.Unary:
		return c.genUnary(fn, block, e)
	case ast.Binary:
		return c.genBinary(fn, block, e)
	case ast.Call:
		return c.genCall(fn, block, e)
	case ast.FuncLiteral:
		return c.genAnonFunc(e)
	case ast.Block:
		return c.genBlockExpr(fn, block, e)
	case ast.If:
		return c.genIfExpr(fn, block, e)
	default:
		return nil, fmt.Errorf("codegen: unsupported expression %T", expr)
	}
}

func (c *ctx) genStringLiteral(block *ir.Block, e ast.StringLiteral) value.Value {
	name := "_wisp_str_" + strconv.Itoa(c.anonCounter)
	c.anonCounter++
	data := c.module.NewGlobalDef(name, constant.NewCharArrayFromString(e.Value+"\x00"))
	return block.NewBitCast(data, types.NewPointer(types.I8))
}

func (c *ctx) genUnary(fn *ir.Func, block *ir.Block, e ast.Unary) (value.Value, error) {
	operand, err := c.genExpr(fn, block, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpNeg:
		if isFloat(operand.Type()) {
			return block.NewFSub(constant.NewFloat(operand.Type().(*types.FloatType), 0), operand), nil
		}
		return block.NewSub(constant.NewInt(operand.Type().(*types.IntType), 0), operand), nil
	case ast.OpNot:
		return block.NewXor(operand, constant.True), nil
	default:
		return nil, fmt.Errorf("codegen: unsupported unary operator %s", e.Op)
	}
}

// genBinary dispatches on the operand's actual LLVM type rather than a
// separately type-checked static type, since codegen runs with no type
// checker upstream (spec's Non-goals exclude one) — the same duck-typed
// discipline the teacher's codegenExpression used for its field/struct
// accesses.
func (c *ctx) genBinary(fn *ir.Func, block *ir.Block, e ast.Binary) (value.Value, error) {
	lhs, err := c.genExpr(fn, block, e.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := c.genExpr(fn, block, e.Right)
	if err != nil {
		return nil, err
	}

	if e.Op == ast.OpAnd {
		return block.NewAnd(lhs, rhs), nil
	}
	if e.Op == ast.OpOr {
		return block.NewOr(lhs, rhs), nil
	}

	float := isFloat(lhs.Type())
	switch e.Op {
	case ast.OpAdd:
		if float {
			return block.NewFAdd(lhs, rhs), nil
		}
		return block.NewAdd(lhs, rhs), nil
	case ast.OpSub:
		if float {
			return block.NewFSub(lhs, rhs), nil
		}
		return block.NewSub(lhs, rhs), nil
	case ast.OpMul:
		if float {
			return block.NewFMul(lhs, rhs), nil
		}
		return block.NewMul(lhs, rhs), nil
	case ast.OpDiv:
		if float {
			return block.NewFDiv(lhs, rhs), nil
		}
		return block.NewSDiv(lhs, rhs), nil
	case ast.OpMod:
		if float {
			return block.NewFRem(lhs, rhs), nil
		}
		return block.NewSRem(lhs, rhs), nil
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return c.genCompare(block, e.Op, lhs, rhs, float), nil
	default:
		return nil, fmt.Errorf("codegen: unsupported binary operator %s", e.Op)
	}
}

func (c *ctx) genCompare(block *ir.Block, op ast.BinaryOp, lhs, rhs value.Value, float bool) value.Value {
	if float {
		pred := map[ast.BinaryOp]enum.FPred{
			ast.OpEq: enum.FPredOEQ, ast.OpNeq: enum.FPredONE,
			ast.OpLt: enum.FPredOLT, ast.OpLte: enum.FPredOLE,
			ast.OpGt: enum.FPredOGT, ast.OpGte: enum.FPredOGE,
		}[op]
		return block.NewFCmp(pred, lhs, rhs)
	}
	pred := map[ast.BinaryOp]enum.IPred{
		ast.OpEq: enum.IPredEQ, ast.OpNeq: enum.IPredNE,
		ast.OpLt: enum.IPredSLT, ast.OpLte: enum.IPredSLE,
		ast.OpGt: enum.IPredSGT, ast.OpGte: enum.IPredSGE,
	}[op]
	return block.NewICmp(pred, lhs, rhs)
}

func (c *ctx) genCall(fn *ir.Func, block *ir.Block, e ast.Call) (value.Value, error) {
	callee, err := c.genExpr(fn, block, e.Callee)
	if err != nil {
		return nil, err
	}
	var args []value.Value
	for _, a := range e.Args {
		v, err := c.genExpr(fn, block, a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	calleeFn, ok := callee.(*ir.Func)
	if !ok {
		return nil, fmt.Errorf("codegen: callee at %s is not a function", e.Callee.Range())
	}
	return block.NewCall(calleeFn, args...), nil
}

// genAnonFunc emits a function literal used in expression position (not
// bound by a top-level FuncDecl) as its own module-level function with a
// synthesized name. It only sees its own parameters plus the top-level
// function bindings: wisp's codegen excludes closures (spec's codegen
// Non-goal), so a reference to any other name from an enclosing scope
// fails the same unbound-variable check a top-level function's body would.
func (c *ctx) genAnonFunc(lit ast.FuncLiteral) (value.Value, error) {
	retType, paramTypes, err := c.funcSignature(lit)
	if err != nil {
		return nil, err
	}
	var params []*ir.Param
	for i, p := range lit.Params {
		params = append(params, ir.NewParam(p.Name, paramTypes[i]))
	}
	name := "_wisp_fn_" + strconv.Itoa(c.anonCounter)
	c.anonCounter++
	fn := c.module.NewFunc(name, retType, params...)

	block := fn.NewBlock("entry")
	paramScope := map[string]binding{}
	for i, p := range lit.Params {
		paramScope[p.Name] = binding{val: fn.Params[i]}
	}
	globals := map[string]binding{}
	for name, b := range c.scopes[0] {
		if _, ok := b.val.(*ir.Func); ok {
			globals[name] = b
		}
	}
	saved := c.scopes
	c.scopes = []map[string]binding{globals, paramScope}
	err = c.genFuncBody(fn, block, lit.Body)
	c.scopes = saved
	if err != nil {
		return nil, err
	}
	return fn, nil
}

func (c *ctx) genBlockExpr(fn *ir.Func, block *ir.Block, b ast.Block) (value.Value, error) {
	c.pushScope()
	defer c.popScope()

	var last value.Value
	for i, stmt := range b.Statements {
		if i == len(b.Statements)-1 {
			if es, ok := stmt.(ast.ExprStmt); ok {
				v, err := c.genExpr(fn, block, es.Value)
				if err != nil {
					return nil, err
				}
				last = v
				continue
			}
		}
		next, term, err := c.genStatement(fn, block, stmt)
		if err != nil {
			return nil, err
		}
		block = next
		if term {
			break
		}
	}
	if last == nil {
		return nil, fmt.Errorf("codegen: block at %s does not produce a value", b.Rng)
	}
	return last, nil
}

// genIfExpr builds the three-block diamond (spec's codegen domain-stack
// entry), phi-merging the then/else values exactly as the teacher's
// codegenExpression did for its If case.
func (c *ctx) genIfExpr(fn *ir.Func, block *ir.Block, e ast.If) (value.Value, error) {
	cond, err := c.genExpr(fn, block, e.Cond)
	if err != nil {
		return nil, err
	}

	thenBlock := fn.NewBlock("ifexpr.then")
	elseBlock := fn.NewBlock("ifexpr.else")
	mergeBlock := fn.NewBlock("ifexpr.cont")
	block.NewCondBr(cond, thenBlock, elseBlock)

	thenVal, err := c.genExprStmtValue(fn, thenBlock, e.Then)
	if err != nil {
		return nil, err
	}
	thenBlock.NewBr(mergeBlock)

	if e.Else == nil {
		return nil, fmt.Errorf("codegen: if-expression at %s has no else branch", e.Rng)
	}
	elseVal, err := c.genExprStmtValue(fn, elseBlock, e.Else)
	if err != nil {
		return nil, err
	}
	elseBlock.NewBr(mergeBlock)

	return mergeBlock.NewPhi(ir.NewIncoming(thenVal, thenBlock), ir.NewIncoming(elseVal, elseBlock)), nil
}

func (c *ctx) genExprStmtValue(fn *ir.Func, block *ir.Block, stmt ast.Statement) (value.Value, error) {
	es, ok := stmt.(ast.ExprStmt)
	if !ok {
		return nil, fmt.Errorf("codegen: if-expression branch at %s must be an expression", stmt.Range())
	}
	return c.genExpr(fn, block, es.Value)
}
