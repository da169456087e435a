package ply

import (
	"bufio"

	"github.com/ecopia-map/plyraster/internal/perrors"
	"github.com/ecopia-map/plyraster/internal/plytext"
	"github.com/ecopia-map/plyraster/internal/progress"
)

// decodeASCII reads count lines per element, in declaration order, each
// line tokenized and consumed property-by-property: a scalar consumes
// one token, a list consumes a count token followed by that many value
// tokens. Extra trailing tokens on a line are an error. rep is ticked
// once per decoded row and is never called for a zero-count element.
func decodeASCII(r *bufio.Reader, file *File, startLine int, rep progress.Reporter) error {
	lineNo := startLine
	for _, elem := range file.Elements() {
		if elem.Count() > 0 {
			rep.Begin(elem.Name(), elem.Count())
		}
		for row := 0; row < elem.Count(); row++ {
			raw, n, err := nextRawLine(r, lineNo)
			if err != nil {
				return err
			}
			lineNo = n
			fields := plytext.Fields(plytext.Trim(raw))
			pos := 0
			for _, col := range elem.Columns() {
				if col.IsList() {
					if pos >= len(fields) {
						return perrors.AtLine(perrors.IO, lineNo, "short record: missing list count for %q", col.Name())
					}
					count, err := parseCountToken(col.CountType(), fields[pos])
					if err != nil {
						return perrors.AtLine(perrors.Range, lineNo, "%v", err)
					}
					pos++
					col.setListRowLen(row, int(count))
					for j := int64(0); j < count; j++ {
						if pos >= len(fields) {
							return perrors.AtLine(perrors.IO, lineNo, "short record: missing list element %d for %q", j, col.Name())
						}
						if err := setASCIIListValue(col, row, int(j), fields[pos]); err != nil {
							return perrors.AtLine(perrors.Schema, lineNo, "%v", err)
						}
						pos++
					}
				} else {
					if pos >= len(fields) {
						return perrors.AtLine(perrors.IO, lineNo, "short record: missing value for %q", col.Name())
					}
					if err := setASCIIScalarValue(col, row, fields[pos]); err != nil {
						return perrors.AtLine(perrors.Schema, lineNo, "%v", err)
					}
					pos++
				}
			}
			if pos != len(fields) {
				return perrors.AtLine(perrors.IO, lineNo, "extra trailing tokens in record (%d unconsumed)", len(fields)-pos)
			}
			rep.Tick()
		}
		if elem.Count() > 0 {
			rep.End()
		}
	}
	return nil
}

func parseCountToken(t ScalarType, tok string) (int64, error) {
	switch t {
	case Float32, Float64:
		f, err := plytext.ParseFloat(tok)
		if err != nil {
			return 0, err
		}
		if f != float64(int64(f)) {
			return 0, perrors.New(perrors.Range, "list count %q is not an integer", tok)
		}
		if f < 0 {
			return 0, perrors.New(perrors.Range, "list count %q is negative", tok)
		}
		return int64(f), nil
	default:
		v, err := plytext.ParseInt(tok)
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, perrors.New(perrors.Range, "list count %q is negative", tok)
		}
		return v, nil
	}
}

func setASCIIScalarValue(col *Column, row int, tok string) error {
	switch col.Type() {
	case Int8:
		v, err := plytext.ParseInt(tok)
		if err != nil {
			return err
		}
		col.setInt8(row, int8(v))
	case UInt8:
		v, err := plytext.ParseUint(tok)
		if err != nil {
			return err
		}
		col.setUInt8(row, uint8(v))
	case Int16:
		v, err := plytext.ParseInt(tok)
		if err != nil {
			return err
		}
		col.setInt16(row, int16(v))
	case UInt16:
		v, err := plytext.ParseUint(tok)
		if err != nil {
			return err
		}
		col.setUInt16(row, uint16(v))
	case Int32:
		v, err := plytext.ParseInt(tok)
		if err != nil {
			return err
		}
		col.setInt32(row, int32(v))
	case UInt32:
		v, err := plytext.ParseUint(tok)
		if err != nil {
			return err
		}
		col.setUInt32(row, uint32(v))
	case Float32:
		v, err := plytext.ParseFloat(tok)
		if err != nil {
			return err
		}
		col.setFloat32(row, float32(v))
	case Float64:
		v, err := plytext.ParseFloat(tok)
		if err != nil {
			return err
		}
		col.setFloat64(row, v)
	}
	return nil
}

func setASCIIListValue(col *Column, row, j int, tok string) error {
	switch col.Type() {
	case Int8:
		v, err := plytext.ParseInt(tok)
		if err != nil {
			return err
		}
		col.setListInt8(row, j, int8(v))
	case UInt8:
		v, err := plytext.ParseUint(tok)
		if err != nil {
			return err
		}
		col.setListUInt8(row, j, uint8(v))
	case Int16:
		v, err := plytext.ParseInt(tok)
		if err != nil {
			return err
		}
		col.setListInt16(row, j, int16(v))
	case UInt16:
		v, err := plytext.ParseUint(tok)
		if err != nil {
			return err
		}
		col.setListUInt16(row, j, uint16(v))
	case Int32:
		v, err := plytext.ParseInt(tok)
		if err != nil {
			return err
		}
		col.setListInt32(row, j, int32(v))
	case UInt32:
		v, err := plytext.ParseUint(tok)
		if err != nil {
			return err
		}
		col.setListUInt32(row, j, uint32(v))
	case Float32:
		v, err := plytext.ParseFloat(tok)
		if err != nil {
			return err
		}
		col.setListFloat32(row, j, float32(v))
	case Float64:
		v, err := plytext.ParseFloat(tok)
		if err != nil {
			return err
		}
		col.setListFloat64(row, j, v)
	}
	return nil
}
