package modinfo

import "encoding/json"

// TypeInfo is the function-signature table codegen embeds into every
// compiled module under the SymbolName global, and that ReadTypeInfo
// reads back out of a compiled module elsewhere on disk. Signatures are
// rendered as plain strings (e.g. "(Int, Int) -> Int") rather than a
// richer structure, matching the teacher's typeInfo.Functions shape.
type TypeInfo struct {
	Functions map[string]string
}

// SymbolName is the name of the global the type table is embedded under,
// renamed from the teacher's "__tawa_types".
const SymbolName = "__wisp_types"

// Encode marshals t to the JSON bytes codegen embeds as SymbolName's
// initializer, NUL-terminated so ReadTypeInfo can treat the symbol as a
// C string.
func (t TypeInfo) Encode() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return append(data, 0), nil
}

func decodeTypeInfo(data string) (TypeInfo, error) {
	var t TypeInfo
	err := json.Unmarshal([]byte(data), &t)
	return t, err
}
