package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir/types"

	"github.com/pontaoski/wisp/ast"
)

// builtinTypes maps every NamedType the parse tree can produce to its
// LLVM representation. Unlike the teacher's tawa_types.go, which built a
// rich user-extensible type registry (structs, multiple integer widths),
// wisp's codegen is the minimal illustrative downstream consumer the
// spec calls for: one fixed width per kind.
var builtinTypes = map[string]types.Type{
	"Int":    types.I64,
	"Double": types.Double,
	"Bool":   types.I1,
	"Char":   types.I8,
	"String": types.NewPointer(types.I8),
}

func resolveType(t ast.Type) (types.Type, error) {
	named, ok := t.(ast.NamedType)
	if !ok {
		return nil, fmt.Errorf("codegen: unsupported type node %T", t)
	}
	llType, ok := builtinTypes[named.Name]
	if !ok {
		return nil, fmt.Errorf("codegen: unknown type %q at %s", named.Name, named.Range())
	}
	return llType, nil
}

func isFloat(t types.Type) bool {
	_, ok := t.(*types.FloatType)
	return ok
}
