package modinfo

/*
#include <stdlib.h>
*/
import "C"

import "github.com/coreos/pkg/dlopen"

// ReadTypeInfo opens the shared object at path and reads its embedded
// SymbolName global back out as a TypeInfo, letting one wisp module
// discover another's function signatures without re-parsing its source.
// Grounded on the teacher's reader/reader.go, generalized from returning
// the raw JSON string to returning the decoded TypeInfo directly.
func ReadTypeInfo(path string) (TypeInfo, error) {
	handle, err := dlopen.GetHandle([]string{path})
	if err != nil {
		return TypeInfo{}, err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(SymbolName)
	if err != nil {
		return TypeInfo{}, err
	}

	str := C.GoString((*C.char)(sym))
	return decodeTypeInfo(str)
}
