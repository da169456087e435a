package ply

import (
	"fmt"

	"github.com/ecopia-map/plyraster/internal/perrors"
)

// Shape distinguishes a plain scalar column from a variable-length list
// column.
type Shape int

const (
	ScalarShape Shape = iota
	ListShape
)

// Column is a single named property's storage for one element: either a
// dense typed vector (Scalar) or a dense vector of typed sub-vectors
// (List). Properties are stored column-wise; the loader never
// materializes whole records.
type Column struct {
	name      string
	shape     Shape
	elemType  ScalarType
	countType ScalarType // only meaningful when shape == ListShape

	scalar scalarStorage
	list   listStorage
}

func (c *Column) Name() string       { return c.name }
func (c *Column) Shape() Shape       { return c.shape }
func (c *Column) Type() ScalarType   { return c.elemType }
func (c *Column) IsList() bool       { return c.shape == ListShape }
func (c *Column) CountType() ScalarType {
	return c.countType
}

// Len returns element.count: the number of rows in this column.
func (c *Column) Len() int {
	if c.shape == ListShape {
		return c.list.len()
	}
	return c.scalar.len()
}

// scalarStorage holds exactly one of the eight scalar slices, indexed by
// ScalarType ordinal; only the slot matching elemType is non-nil.
type scalarStorage struct {
	i8  []int8
	u8  []uint8
	i16 []int16
	u16 []uint16
	i32 []int32
	u32 []uint32
	f32 []float32
	f64 []float64
}

func (s *scalarStorage) len() int {
	switch {
	case s.i8 != nil:
		return len(s.i8)
	case s.u8 != nil:
		return len(s.u8)
	case s.i16 != nil:
		return len(s.i16)
	case s.u16 != nil:
		return len(s.u16)
	case s.i32 != nil:
		return len(s.i32)
	case s.u32 != nil:
		return len(s.u32)
	case s.f32 != nil:
		return len(s.f32)
	case s.f64 != nil:
		return len(s.f64)
	default:
		return 0
	}
}

// listStorage holds exactly one of the eight per-row-slice kinds.
type listStorage struct {
	i8  [][]int8
	u8  [][]uint8
	i16 [][]int16
	u16 [][]uint16
	i32 [][]int32
	u32 [][]uint32
	f32 [][]float32
	f64 [][]float64
}

func (s *listStorage) len() int {
	switch {
	case s.i8 != nil:
		return len(s.i8)
	case s.u8 != nil:
		return len(s.u8)
	case s.i16 != nil:
		return len(s.i16)
	case s.u16 != nil:
		return len(s.u16)
	case s.i32 != nil:
		return len(s.i32)
	case s.u32 != nil:
		return len(s.u32)
	case s.f32 != nil:
		return len(s.f32)
	case s.f64 != nil:
		return len(s.f64)
	default:
		return 0
	}
}

// scalarAllocators is the constructor table the loader precompiles
// against: one function per type ordinal that allocates a column's
// backing slice of the given length.
var scalarAllocators = [numScalarTypes]func(*scalarStorage, int){
	Int8:    func(s *scalarStorage, n int) { s.i8 = make([]int8, n) },
	UInt8:   func(s *scalarStorage, n int) { s.u8 = make([]uint8, n) },
	Int16:   func(s *scalarStorage, n int) { s.i16 = make([]int16, n) },
	UInt16:  func(s *scalarStorage, n int) { s.u16 = make([]uint16, n) },
	Int32:   func(s *scalarStorage, n int) { s.i32 = make([]int32, n) },
	UInt32:  func(s *scalarStorage, n int) { s.u32 = make([]uint32, n) },
	Float32: func(s *scalarStorage, n int) { s.f32 = make([]float32, n) },
	Float64: func(s *scalarStorage, n int) { s.f64 = make([]float64, n) },
}

var listAllocators = [numScalarTypes]func(*listStorage, int){
	Int8:    func(s *listStorage, n int) { s.i8 = make([][]int8, n) },
	UInt8:   func(s *listStorage, n int) { s.u8 = make([][]uint8, n) },
	Int16:   func(s *listStorage, n int) { s.i16 = make([][]int16, n) },
	UInt16:  func(s *listStorage, n int) { s.u16 = make([][]uint16, n) },
	Int32:   func(s *listStorage, n int) { s.i32 = make([][]int32, n) },
	UInt32:  func(s *listStorage, n int) { s.u32 = make([][]uint32, n) },
	Float32: func(s *listStorage, n int) { s.f32 = make([][]float32, n) },
	Float64: func(s *listStorage, n int) { s.f64 = make([][]float64, n) },
}

// NewScalarColumn allocates a scalar column of the given type and
// length, using the constructor table for t.
func NewScalarColumn(name string, t ScalarType, count int) *Column {
	c := &Column{name: name, shape: ScalarShape, elemType: t}
	scalarAllocators[t](&c.scalar, count)
	return c
}

// NewListColumn allocates a list column whose rows are filled in later
// as each row's count becomes known during decoding.
func NewListColumn(name string, countType, elemType ScalarType, count int) *Column {
	c := &Column{name: name, shape: ListShape, elemType: elemType, countType: countType}
	listAllocators[elemType](&c.list, count)
	return c
}

func typeMismatch(col *Column, want ScalarType) error {
	return perrors.New(perrors.TypeMismatch, "column %q is %s, not %s", col.name, col.elemType, want)
}

func notScalar(col *Column) error {
	return perrors.New(perrors.TypeMismatch, "column %q is a list, not a scalar", col.name)
}

func notList(col *Column) error {
	return perrors.New(perrors.TypeMismatch, "column %q is a scalar, not a list", col.name)
}

// Float64At reads row i as a float64 regardless of its declared scalar
// type, the accessor point extraction (component D) uses to cast stored
// values before applying the (v + pre) * scale + post transform. It
// fails only if the column is a list.
func (c *Column) Float64At(i int) (float64, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	switch c.elemType {
	case Int8:
		return float64(c.scalar.i8[i]), nil
	case UInt8:
		return float64(c.scalar.u8[i]), nil
	case Int16:
		return float64(c.scalar.i16[i]), nil
	case UInt16:
		return float64(c.scalar.u16[i]), nil
	case Int32:
		return float64(c.scalar.i32[i]), nil
	case UInt32:
		return float64(c.scalar.u32[i]), nil
	case Float32:
		return float64(c.scalar.f32[i]), nil
	case Float64:
		return c.scalar.f64[i], nil
	default:
		return 0, fmt.Errorf("ply: unreachable scalar type %v", c.elemType)
	}
}

// Int32At and the rest of the typed accessors below throw (return a
// TypeMismatch error) rather than silently returning a zero value when
// the stored type does not match, per the documented requirement that
// a mistyped access must fail loudly and never hand back an
// uninitialized result.

func (c *Column) Int8At(i int) (int8, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	if c.elemType != Int8 {
		return 0, typeMismatch(c, Int8)
	}
	return c.scalar.i8[i], nil
}

func (c *Column) UInt8At(i int) (uint8, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	if c.elemType != UInt8 {
		return 0, typeMismatch(c, UInt8)
	}
	return c.scalar.u8[i], nil
}

func (c *Column) Int16At(i int) (int16, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	if c.elemType != Int16 {
		return 0, typeMismatch(c, Int16)
	}
	return c.scalar.i16[i], nil
}

func (c *Column) UInt16At(i int) (uint16, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	if c.elemType != UInt16 {
		return 0, typeMismatch(c, UInt16)
	}
	return c.scalar.u16[i], nil
}

func (c *Column) Int32At(i int) (int32, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	if c.elemType != Int32 {
		return 0, typeMismatch(c, Int32)
	}
	return c.scalar.i32[i], nil
}

func (c *Column) UInt32At(i int) (uint32, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	if c.elemType != UInt32 {
		return 0, typeMismatch(c, UInt32)
	}
	return c.scalar.u32[i], nil
}

func (c *Column) Float32At(i int) (float32, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	if c.elemType != Float32 {
		return 0, typeMismatch(c, Float32)
	}
	return c.scalar.f32[i], nil
}

func (c *Column) Float64StrictAt(i int) (float64, error) {
	if c.shape == ListShape {
		return 0, notScalar(c)
	}
	if c.elemType != Float64 {
		return 0, typeMismatch(c, Float64)
	}
	return c.scalar.f64[i], nil
}

// The set* functions assign row i of a scalar column during decoding.
// They trust the caller (the decoders' per-type switches) to pass a
// value of the column's own type.
func (c *Column) setInt8(i int, v int8)     { c.scalar.i8[i] = v }
func (c *Column) setUInt8(i int, v uint8)   { c.scalar.u8[i] = v }
func (c *Column) setInt16(i int, v int16)   { c.scalar.i16[i] = v }
func (c *Column) setUInt16(i int, v uint16) { c.scalar.u16[i] = v }
func (c *Column) setInt32(i int, v int32)   { c.scalar.i32[i] = v }
func (c *Column) setUInt32(i int, v uint32) { c.scalar.u32[i] = v }
func (c *Column) setFloat32(i int, v float32) { c.scalar.f32[i] = v }
func (c *Column) setFloat64(i int, v float64) { c.scalar.f64[i] = v }

// ListLen returns the length of row i of a list column.
func (c *Column) ListLen(i int) (int, error) {
	if c.shape != ListShape {
		return 0, notList(c)
	}
	switch c.elemType {
	case Int8:
		return len(c.list.i8[i]), nil
	case UInt8:
		return len(c.list.u8[i]), nil
	case Int16:
		return len(c.list.i16[i]), nil
	case UInt16:
		return len(c.list.u16[i]), nil
	case Int32:
		return len(c.list.i32[i]), nil
	case UInt32:
		return len(c.list.u32[i]), nil
	case Float32:
		return len(c.list.f32[i]), nil
	case Float64:
		return len(c.list.f64[i]), nil
	default:
		return 0, fmt.Errorf("ply: unreachable scalar type %v", c.elemType)
	}
}

// ListRowFloat64 materializes row i of a list column as a []float64,
// widening every element regardless of its stored type.
func (c *Column) ListRowFloat64(i int) ([]float64, error) {
	if c.shape != ListShape {
		return nil, notList(c)
	}
	switch c.elemType {
	case Int8:
		row := c.list.i8[i]
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = float64(v)
		}
		return out, nil
	case UInt8:
		row := c.list.u8[i]
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = float64(v)
		}
		return out, nil
	case Int16:
		row := c.list.i16[i]
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = float64(v)
		}
		return out, nil
	case UInt16:
		row := c.list.u16[i]
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = float64(v)
		}
		return out, nil
	case Int32:
		row := c.list.i32[i]
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = float64(v)
		}
		return out, nil
	case UInt32:
		row := c.list.u32[i]
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = float64(v)
		}
		return out, nil
	case Float32:
		row := c.list.f32[i]
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = float64(v)
		}
		return out, nil
	case Float64:
		row := append([]float64(nil), c.list.f64[i]...)
		return row, nil
	default:
		return nil, fmt.Errorf("ply: unreachable scalar type %v", c.elemType)
	}
}

func (c *Column) setListRowLen(i int, n int) {
	switch c.elemType {
	case Int8:
		c.list.i8[i] = make([]int8, n)
	case UInt8:
		c.list.u8[i] = make([]uint8, n)
	case Int16:
		c.list.i16[i] = make([]int16, n)
	case UInt16:
		c.list.u16[i] = make([]uint16, n)
	case Int32:
		c.list.i32[i] = make([]int32, n)
	case UInt32:
		c.list.u32[i] = make([]uint32, n)
	case Float32:
		c.list.f32[i] = make([]float32, n)
	case Float64:
		c.list.f64[i] = make([]float64, n)
	}
}

func (c *Column) setListInt8(i, j int, v int8)     { c.list.i8[i][j] = v }
func (c *Column) setListUInt8(i, j int, v uint8)   { c.list.u8[i][j] = v }
func (c *Column) setListInt16(i, j int, v int16)   { c.list.i16[i][j] = v }
func (c *Column) setListUInt16(i, j int, v uint16) { c.list.u16[i][j] = v }
func (c *Column) setListInt32(i, j int, v int32)   { c.list.i32[i][j] = v }
func (c *Column) setListUInt32(i, j int, v uint32) { c.list.u32[i][j] = v }
func (c *Column) setListFloat32(i, j int, v float32) { c.list.f32[i][j] = v }
func (c *Column) setListFloat64(i, j int, v float64) { c.list.f64[i][j] = v }
