package ply

import (
	"bufio"
	"strings"

	"github.com/ecopia-map/plyraster/internal/perrors"
	"github.com/ecopia-map/plyraster/internal/plytext"
)

// headerResult is everything parseHeader extracts before body decoding
// can start: the schema itself, plus the warnings collected along the
// way (duplicate element/property names).
type headerResult struct {
	file     *File
	warnings []Warning
	endLine  int
}

// parseHeader reads header lines from r (tracking 1-based line numbers
// for error messages) up to and including "end_header", and returns the
// schema it declares. r is not wrapped again by the caller: the same
// *bufio.Reader is reused for body decoding so no bytes are lost past
// the header boundary.
func parseHeader(r *bufio.Reader) (*headerResult, error) {
	line, lineNo, err := nextNonEmptyLine(r, 0)
	if err != nil {
		return nil, err
	}
	if plytext.Trim(line) != "ply" {
		return nil, perrors.AtLine(perrors.HeaderSyntax, lineNo, "expected magic line \"ply\", got %q", line)
	}

	line, lineNo, err = nextRawLine(r, lineNo)
	if err != nil {
		return nil, err
	}
	ft, err := parseFormatLine(line, lineNo)
	if err != nil {
		return nil, err
	}

	file := newFile(ft)
	result := &headerResult{file: file}

	var current *Element
	for {
		line, lineNo, err = nextRawLine(r, lineNo)
		if err != nil {
			return nil, err
		}
		trimmed := plytext.Trim(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "end_header" {
			result.endLine = lineNo
			return result, nil
		}

		kw, rest := firstWord(trimmed)
		switch kw {
		case "comment":
			file.Comments = append(file.Comments, commentText(line))
		case "element":
			parts := plytext.SplitFront(plytext.Trim(rest), 2)
			name := parts[0]
			countTok := plytext.Trim(parts[1])
			count, cerr := plytext.ParseUint(countTok)
			if cerr != nil {
				return nil, perrors.AtLine(perrors.HeaderSyntax, lineNo, "bad element count %q", countTok)
			}
			current = newElement(name, int(count))
			if w := file.addElement(current); w != nil {
				result.warnings = append(result.warnings, *w)
			}
		case "property":
			if current == nil {
				return nil, perrors.AtLine(perrors.HeaderSyntax, lineNo, "property declared before any element")
			}
			col, perr := parsePropertyLine(rest, lineNo, current.Count())
			if perr != nil {
				return nil, perr
			}
			if w := current.addColumn(col); w != nil {
				result.warnings = append(result.warnings, *w)
			}
		default:
			return nil, perrors.AtLine(perrors.HeaderSyntax, lineNo, "unrecognized header line %q", line)
		}
	}
}

func parseFormatLine(line string, lineNo int) (FileType, error) {
	parts := plytext.SplitFront(plytext.Trim(line), 3)
	if parts[0] != "format" {
		return 0, perrors.AtLine(perrors.HeaderSyntax, lineNo, "expected \"format\" line, got %q", line)
	}
	version := plytext.Trim(parts[2])
	if version != "1.0" {
		return 0, perrors.AtLine(perrors.HeaderSyntax, lineNo, "unsupported PLY version %q", version)
	}
	switch plytext.Trim(parts[1]) {
	case "ascii":
		return ASCII, nil
	case "binary_big_endian":
		return BinaryBigEndian, nil
	case "binary_little_endian":
		return BinaryLittleEndian, nil
	default:
		return 0, perrors.AtLine(perrors.HeaderSyntax, lineNo, "unknown file_type %q", parts[1])
	}
}

// parsePropertyLine handles both "property <type> <name>" and
// "property list <countType> <type> <name>", rest being everything
// after the "property" keyword.
func parsePropertyLine(rest string, lineNo int, elementCount int) (*Column, error) {
	rest = plytext.Trim(rest)
	kw, afterKw := firstWord(rest)
	if kw == "list" {
		parts := plytext.SplitFront(plytext.Trim(afterKw), 3)
		countType, err := ParseScalarType(parts[0])
		if err != nil {
			return nil, perrors.AtLine(perrors.Schema, lineNo, "%v", err)
		}
		elemType, err := ParseScalarType(parts[1])
		if err != nil {
			return nil, perrors.AtLine(perrors.Schema, lineNo, "%v", err)
		}
		name := plytext.Trim(parts[2])
		if name == "" {
			return nil, perrors.AtLine(perrors.HeaderSyntax, lineNo, "list property missing a name")
		}
		return NewListColumn(name, countType, elemType, elementCount), nil
	}

	parts := plytext.SplitFront(rest, 2)
	elemType, err := ParseScalarType(parts[0])
	if err != nil {
		return nil, perrors.AtLine(perrors.Schema, lineNo, "%v", err)
	}
	name := plytext.Trim(parts[1])
	if name == "" {
		return nil, perrors.AtLine(perrors.HeaderSyntax, lineNo, "scalar property missing a name")
	}
	return NewScalarColumn(name, elemType, elementCount), nil
}

// commentText preserves whitespace after the single separator
// following "comment", keeping internal spacing verbatim.
func commentText(line string) string {
	trimmed := plytext.TrimLeft(line)
	if !strings.HasPrefix(trimmed, "comment") {
		return plytext.Trim(line)
	}
	rest := trimmed[len("comment"):]
	if len(rest) > 0 {
		rest = rest[1:]
	}
	return plytext.TrimRight(rest)
}

func firstWord(s string) (word, rest string) {
	parts := plytext.SplitFront(s, 2)
	return parts[0], parts[1]
}

// nextRawLine reads one line (sans trailing newline) and its 1-based
// line number, including empty ones, failing on an over-long line or
// unexpected EOF. It serves both the header and the ASCII body.
func nextRawLine(r *bufio.Reader, prevLineNo int) (string, int, error) {
	raw, err := r.ReadString('\n')
	if err != nil && raw == "" {
		return "", prevLineNo + 1, perrors.AtLine(perrors.IO, prevLineNo+1, "unexpected end of file")
	}
	if len(raw) > maxHeaderLineLength {
		return "", prevLineNo + 1, perrors.AtLine(perrors.HeaderSyntax, prevLineNo+1, "line too long")
	}
	raw = strings.TrimRight(raw, "\r\n")
	return raw, prevLineNo + 1, nil
}

// nextNonEmptyLine skips blank lines, used for the magic line, which
// must be the first non-empty line. The format line that follows is
// read with nextRawLine and must be the very next line.
func nextNonEmptyLine(r *bufio.Reader, prevLineNo int) (string, int, error) {
	for {
		line, lineNo, err := nextRawLine(r, prevLineNo)
		if err != nil {
			return "", lineNo, err
		}
		prevLineNo = lineNo
		if plytext.Trim(line) != "" {
			return line, lineNo, nil
		}
	}
}

const maxHeaderLineLength = 1 << 16
