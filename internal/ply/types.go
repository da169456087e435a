// Package ply implements the PLY schema model (component B) and the
// header-driven loader (component C): an in-memory representation of
// one PLY file's elements and typed property columns, and the decoder
// that fills them from ASCII or binary input.
package ply

import "github.com/ecopia-map/plyraster/internal/perrors"

// ScalarType is one of the eight scalar types the PLY format supports,
// with a stable ordinal used to index per-type dispatch tables.
type ScalarType int

const (
	Int8 ScalarType = iota
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Float32
	Float64
	numScalarTypes
)

// scalarNames maps the canonical PLY type name (and its common aliases)
// to a ScalarType ordinal.
var scalarNames = map[string]ScalarType{
	"char":   Int8,
	"int8":   Int8,
	"uchar":  UInt8,
	"uint8":  UInt8,
	"short":  Int16,
	"int16":  Int16,
	"ushort": UInt16,
	"uint16": UInt16,
	"int":    Int32,
	"int32":  Int32,
	"uint":   UInt32,
	"uint32": UInt32,
	"float":  Float32,
	"float32": Float32,
	"double": Float64,
	"float64": Float64,
}

// ByteSize returns the binary width of the scalar type in bytes.
func (t ScalarType) ByteSize() int {
	switch t {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

func (t ScalarType) String() string {
	switch t {
	case Int8:
		return "char"
	case UInt8:
		return "uchar"
	case Int16:
		return "short"
	case UInt16:
		return "ushort"
	case Int32:
		return "int"
	case UInt32:
		return "uint"
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		return "invalid"
	}
}

// ParseScalarType resolves one of the eight documented type names.
func ParseScalarType(name string) (ScalarType, error) {
	t, ok := scalarNames[name]
	if !ok {
		return 0, perrors.New(perrors.Schema, "unknown scalar type %q", name)
	}
	return t, nil
}
