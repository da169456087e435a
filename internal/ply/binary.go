package ply

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/ecopia-map/plyraster/internal/perrors"
	"github.com/ecopia-map/plyraster/internal/progress"
)

// decodeBinary reads count records per element, in declaration order,
// with no line boundaries: for each record, for each property in
// order, fixed-width bytes are read in the declared endianness and
// reinterpreted. List columns read their count first, in the declared
// count type, then that many elements. rep is ticked once per decoded
// row and is never called for a zero-count element.
func decodeBinary(r *bufio.Reader, file *File, order binary.ByteOrder, rep progress.Reporter) error {
	for _, elem := range file.Elements() {
		if elem.Count() > 0 {
			rep.Begin(elem.Name(), elem.Count())
		}
		for row := 0; row < elem.Count(); row++ {
			for _, col := range elem.Columns() {
				if col.IsList() {
					count, err := readBinaryCount(r, col.CountType(), order)
					if err != nil {
						return err
					}
					col.setListRowLen(row, int(count))
					for j := int64(0); j < count; j++ {
						if err := readBinaryListValue(r, col, row, int(j), order); err != nil {
							return err
						}
					}
				} else {
					if err := readBinaryScalarValue(r, col, row, order); err != nil {
						return err
					}
				}
			}
			rep.Tick()
		}
		if elem.Count() > 0 {
			rep.End()
		}
	}
	return nil
}

func readExact(r *bufio.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, perrors.InBinary(perrors.IO, "short read: %v", err)
	}
	return buf, nil
}

func readBinaryCount(r *bufio.Reader, t ScalarType, order binary.ByteOrder) (int64, error) {
	buf, err := readExact(r, t.ByteSize())
	if err != nil {
		return 0, err
	}
	switch t {
	case Int8:
		v := int8(buf[0])
		if v < 0 {
			return 0, perrors.InBinary(perrors.Range, "list count is negative")
		}
		return int64(v), nil
	case UInt8:
		return int64(buf[0]), nil
	case Int16:
		v := int16(order.Uint16(buf))
		if v < 0 {
			return 0, perrors.InBinary(perrors.Range, "list count is negative")
		}
		return int64(v), nil
	case UInt16:
		return int64(order.Uint16(buf)), nil
	case Int32:
		v := int32(order.Uint32(buf))
		if v < 0 {
			return 0, perrors.InBinary(perrors.Range, "list count is negative")
		}
		return int64(v), nil
	case UInt32:
		return int64(order.Uint32(buf)), nil
	case Float32:
		f := float64(math.Float32frombits(order.Uint32(buf)))
		if f != math.Trunc(f) || f < 0 {
			return 0, perrors.InBinary(perrors.Range, "list count is not a non-negative integer")
		}
		return int64(f), nil
	case Float64:
		f := math.Float64frombits(order.Uint64(buf))
		if f != math.Trunc(f) || f < 0 {
			return 0, perrors.InBinary(perrors.Range, "list count is not a non-negative integer")
		}
		return int64(f), nil
	default:
		return 0, perrors.InBinary(perrors.Schema, "invalid count type")
	}
}

func readBinaryScalarValue(r *bufio.Reader, col *Column, row int, order binary.ByteOrder) error {
	buf, err := readExact(r, col.Type().ByteSize())
	if err != nil {
		return err
	}
	switch col.Type() {
	case Int8:
		col.setInt8(row, int8(buf[0]))
	case UInt8:
		col.setUInt8(row, buf[0])
	case Int16:
		col.setInt16(row, int16(order.Uint16(buf)))
	case UInt16:
		col.setUInt16(row, order.Uint16(buf))
	case Int32:
		col.setInt32(row, int32(order.Uint32(buf)))
	case UInt32:
		col.setUInt32(row, order.Uint32(buf))
	case Float32:
		col.setFloat32(row, math.Float32frombits(order.Uint32(buf)))
	case Float64:
		col.setFloat64(row, math.Float64frombits(order.Uint64(buf)))
	}
	return nil
}

func readBinaryListValue(r *bufio.Reader, col *Column, row, j int, order binary.ByteOrder) error {
	buf, err := readExact(r, col.Type().ByteSize())
	if err != nil {
		return err
	}
	switch col.Type() {
	case Int8:
		col.setListInt8(row, j, int8(buf[0]))
	case UInt8:
		col.setListUInt8(row, j, buf[0])
	case Int16:
		col.setListInt16(row, j, int16(order.Uint16(buf)))
	case UInt16:
		col.setListUInt16(row, j, order.Uint16(buf))
	case Int32:
		col.setListInt32(row, j, int32(order.Uint32(buf)))
	case UInt32:
		col.setListUInt32(row, j, order.Uint32(buf))
	case Float32:
		col.setListFloat32(row, j, math.Float32frombits(order.Uint32(buf)))
	case Float64:
		col.setListFloat64(row, j, math.Float64frombits(order.Uint64(buf)))
	}
	return nil
}
