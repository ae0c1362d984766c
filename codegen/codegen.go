// Package codegen is a minimal illustrative downstream consumer of the
// parse tree, emitting LLVM IR for the expression/statement forms the
// parser produces. It is explicitly not a complete backend (spec's
// codegen Non-goal): no closures, no structs, no stack-safety analysis —
// it exists to give the parse tree a concrete consumer and to exercise
// github.com/llir/llvm the way the teacher's codegen.go did.
//
// Grounded on the teacher's codegen.go: the scope-stack ctx, the
// lookup/assign/pushScope/popScope shape, and the two-pass
// forward-declare-then-define handling of top-level functions (mutual
// recursion). Generalized from the teacher's panic-everywhere style to
// ordinary Go error returns, since this package does not share the
// core's accumulate-every-diagnostic discipline — a codegen invariant
// violation halts generation rather than continuing past bad IR.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pontaoski/wisp/ast"
	"github.com/pontaoski/wisp/modinfo"
)

// binding is one name's value in scope: either an immutable SSA value
// (let, function parameters, function names) or a mutable stack slot
// (mut) that must be loaded to read and stored to update.
type binding struct {
	val     value.Value
	mutable bool
}

type ctx struct {
	scopes      []map[string]binding
	externs     externs
	sigs        map[string]string // for modinfo.TypeInfo: FuncDecl name -> rendered signature
	module      *ir.Module
	anonCounter int
}

func newCtx(m *ir.Module, ext externs) *ctx {
	return &ctx{scopes: []map[string]binding{{}}, externs: ext, sigs: map[string]string{}, module: m}
}

func (c *ctx) pushScope() { c.scopes = append(c.scopes, map[string]binding{}) }
func (c *ctx) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *ctx) top() map[string]binding { return c.scopes[len(c.scopes)-1] }

func (c *ctx) lookup(name string) (binding, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if b, ok := c.scopes[i][name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

// Generate compiles file into an LLVM module. Top-level FuncDecls are
// forward-declared before any body is emitted so mutual recursion and
// forward references work; every other top-level statement runs in
// source order inside a synthesized entry function, "_wisp_main",
// mirroring the teacher's "_tawa_main" trampoline.
func Generate(file ast.File) (*ir.Module, error) {
	m := ir.NewModule()
	ext := declareExterns(m)
	c := newCtx(m, ext)

	funcs := map[string]*ir.Func{}
	for _, stmt := range file.Statements {
		fd, ok := stmt.(ast.FuncDecl)
		if !ok {
			continue
		}
		fn, err := c.forwardDeclareFunc(m, fd)
		if err != nil {
			return nil, err
		}
		funcs[fd.Name] = fn
		c.top()[fd.Name] = binding{val: fn}
	}

	entry := m.NewFunc("_wisp_main", types.Void)
	block := entry.NewBlock("entry")

	for _, fd := range file.Statements {
		decl, ok := fd.(ast.FuncDecl)
		if !ok {
			continue
		}
		if err := c.defineFunc(funcs[decl.Name], decl); err != nil {
			return nil, err
		}
	}

	for _, stmt := range file.Statements {
		if _, ok := stmt.(ast.FuncDecl); ok {
			continue // already emitted above
		}
		next, terminated, err := c.genStatement(entry, block, stmt)
		if err != nil {
			return nil, err
		}
		block = next
		if terminated {
			break
		}
	}
	if block.Term == nil {
		block.NewRet(nil)
	}

	if len(c.sigs) > 0 {
		info := modinfo.TypeInfo{Functions: c.sigs}
		data, err := info.Encode()
		if err != nil {
			return nil, err
		}
		g := m.NewGlobalDef(modinfo.SymbolName, constant.NewCharArray(data))
		g.Immutable = true
	}

	return m, nil
}

func (c *ctx) forwardDeclareFunc(m *ir.Module, fd ast.FuncDecl) (*ir.Func, error) {
	retType, paramTypes, err := c.funcSignature(fd.Literal)
	if err != nil {
		return nil, err
	}
	var params []*ir.Param
	for i, p := range fd.Literal.Params {
		params = append(params, ir.NewParam(p.Name, paramTypes[i]))
	}
	fn := m.NewFunc(fd.Name, retType, params...)
	c.sigs[fd.Name] = renderSignature(fd.Literal)
	return fn, nil
}

func (c *ctx) funcSignature(lit ast.FuncLiteral) (types.Type, []types.Type, error) {
	var retType types.Type = types.Void
	if lit.Ret != nil {
		t, err := resolveType(lit.Ret)
		if err != nil {
			return nil, nil, err
		}
		retType = t
	}
	paramTypes := make([]types.Type, len(lit.Params))
	for i, p := range lit.Params {
		t, err := resolveType(p.Type)
		if err != nil {
			return nil, nil, err
		}
		paramTypes[i] = t
	}
	return retType, paramTypes, nil
}

func renderSignature(lit ast.FuncLiteral) string {
	ret := "Void"
	if lit.Ret != nil {
		if named, ok := lit.Ret.(ast.NamedType); ok {
			ret = named.Name
		}
	}
	s := "("
	for i, p := range lit.Params {
		if i > 0 {
			s += ", "
		}
		if named, ok := p.Type.(ast.NamedType); ok {
			s += named.Name
		}
	}
	return s + ") -> " + ret
}

// defineFunc emits fd's body in an isolated scope containing only its own
// parameters plus the top-level function bindings (so mutual recursion
// works, matching the teacher's two-pass forward declaration) — never
// the enclosing _wisp_main locals. wisp's codegen excludes closures
// (spec's codegen Non-goal): a reference to any other name fails as an
// unbound variable rather than silently capturing a stack slot that
// belongs to a different LLVM function.
func (c *ctx) defineFunc(fn *ir.Func, fd ast.FuncDecl) error {
	block := fn.NewBlock("entry")
	params := map[string]binding{}
	for i, p := range fd.Literal.Params {
		params[p.Name] = binding{val: fn.Params[i]}
	}
	saved := c.scopes
	c.scopes = []map[string]binding{c.scopes[0], params}
	err := c.genFuncBody(fn, block, fd.Literal.Body)
	c.scopes = saved
	return err
}

// genFuncBody emits body into block, terminating it with a return. A
// brace body returns via its explicit `return` statements (spec's
// Return form); a bare-expression body returns that expression's value,
// the `(params): Ret -> expr` shorthand.
func (c *ctx) genFuncBody(fn *ir.Func, block *ir.Block, body ast.Expression) error {
	if blk, ok := body.(ast.Block); ok {
		cur := block
		terminated := false
		c.pushScope()
		for _, stmt := range blk.Statements {
			next, term, err := c.genStatement(fn, cur, stmt)
			if err != nil {
				c.popScope()
				return err
			}
			cur = next
			if term {
				terminated = true
				break
			}
		}
		c.popScope()
		if !terminated {
			cur.NewRet(nil)
		}
		return nil
	}

	val, err := c.genExpr(fn, block, body)
	if err != nil {
		return err
	}
	block.NewRet(val)
	return nil
}

// genStatement emits stmt starting at block, returning the block
// subsequent statements should continue emitting into (control-flow
// forms like `if` introduce a merge block) and whether stmt terminated
// its block with a `return` (so the caller must stop emitting there).
func (c *ctx) genStatement(fn *ir.Func, block *ir.Block, stmt ast.Statement) (*ir.Block, bool, error) {
	switch s := stmt.(type) {
	case ast.Print:
		val, err := c.genExpr(fn, block, s.Value)
		if err != nil {
			return nil, false, err
		}
		if err := c.genPrint(block, val); err != nil {
			return nil, false, err
		}
		return block, false, nil

	case ast.LetDecl:
		val, err := c.genExpr(fn, block, s.Value)
		if err != nil {
			return nil, false, err
		}
		c.top()[s.Name] = binding{val: val}
		return block, false, nil

	case ast.MutAssign:
		val, err := c.genExpr(fn, block, s.Value)
		if err != nil {
			return nil, false, err
		}
		if b, ok := c.lookup(s.Name); ok {
			if !b.mutable {
				return nil, false, fmt.Errorf("codegen: %s is not mutable at %s", s.Name, s.Rng)
			}
			block.NewStore(val, b.val)
			return block, false, nil
		}
		// First `mut` of this name in scope declares its slot.
		alloca := block.NewAlloca(val.Type())
		block.NewStore(val, alloca)
		c.top()[s.Name] = binding{val: alloca, mutable: true}
		return block, false, nil

	case ast.Return:
		if s.Value == nil {
			block.NewRet(nil)
			return block, true, nil
		}
		val, err := c.genExpr(fn, block, s.Value)
		if err != nil {
			return nil, false, err
		}
		block.NewRet(val)
		return block, true, nil

	case ast.ExprStmt:
		if _, err := c.genExpr(fn, block, s.Value); err != nil {
			return nil, false, err
		}
		return block, false, nil

	case ast.Block:
		c.pushScope()
		defer c.popScope()
		cur := block
		for _, inner := range s.Statements {
			next, term, err := c.genStatement(fn, cur, inner)
			if err != nil {
				return nil, false, err
			}
			cur = next
			if term {
				return cur, true, nil
			}
		}
		return cur, false, nil

	case ast.If:
		return c.genIfStatement(fn, block, s)

	default:
		return nil, false, fmt.Errorf("codegen: unsupported statement %T", stmt)
	}
}

func (c *ctx) genIfStatement(fn *ir.Func, block *ir.Block, s ast.If) (*ir.Block, bool, error) {
	cond, err := c.genExpr(fn, block, s.Cond)
	if err != nil {
		return nil, false, err
	}

	thenBlock := fn.NewBlock("if.then")
	mergeBlock := fn.NewBlock("if.cont")

	elseBlock := mergeBlock
	hasElse := s.Else != nil
	if hasElse {
		elseBlock = fn.NewBlock("if.else")
	}
	block.NewCondBr(cond, thenBlock, elseBlock)

	thenEnd, thenTerm, err := c.genStatement(fn, thenBlock, s.Then)
	if err != nil {
		return nil, false, err
	}
	if !thenTerm {
		thenEnd.NewBr(mergeBlock)
	}

	if hasElse {
		elseEnd, elseTerm, err := c.genStatement(fn, elseBlock, s.Else)
		if err != nil {
			return nil, false, err
		}
		if !elseTerm {
			elseEnd.NewBr(mergeBlock)
		}
		if thenTerm && elseTerm {
			return mergeBlock, true, nil
		}
	}

	return mergeBlock, false, nil
}

func (c *ctx) genPrint(block *ir.Block, val value.Value) error {
	switch t := val.Type().(type) {
	case *types.IntType:
		if t.BitSize == 1 {
			block.NewCall(c.externs.printBool, val)
		} else {
			block.NewCall(c.externs.printInt, val)
		}
	case *types.FloatType:
		block.NewCall(c.externs.printDouble, val)
	case *types.PointerType:
		block.NewCall(c.externs.printString, val)
	default:
		return fmt.Errorf("codegen: don't know how to print a %s", val.Type())
	}
	return nil
}
