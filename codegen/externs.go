package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// declareExterns declares the small runtime support library `print`
// delegates to, standing in for the teacher's hand-rolled inline-asm
// syscall in builtins.go. wisp's codegen is explicitly a minimal
// illustrative consumer (spec's codegen Non-goal), so it leaves the
// actual I/O implementation to a linked runtime rather than emitting
// raw syscalls itself.
type externs struct {
	printInt    *ir.Func
	printDouble *ir.Func
	printBool   *ir.Func
	printString *ir.Func
}

func declareExterns(m *ir.Module) externs {
	return externs{
		printInt:    m.NewFunc("wisp_print_int", types.Void, ir.NewParam("v", types.I64)),
		printDouble: m.NewFunc("wisp_print_double", types.Void, ir.NewParam("v", types.Double)),
		printBool:   m.NewFunc("wisp_print_bool", types.Void, ir.NewParam("v", types.I1)),
		printString: m.NewFunc("wisp_print_string", types.Void, ir.NewParam("v", types.NewPointer(types.I8))),
	}
}
