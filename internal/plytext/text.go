// Package plytext implements the whitespace trimming, fixed-arity
// tokenizing and locale-independent numeric parsing the PLY header and
// ASCII body decoders are built on. None of it depends on the host
// locale: the parsing routines here are built on strconv, which never
// consults one.
package plytext

import (
	"strconv"
	"strings"
)

// isSpace reports whether r is PLY whitespace: space, form-feed,
// newline, carriage-return, tab or vertical-tab. No other runes count,
// regardless of locale.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\f', '\n', '\r', '\t', '\v':
		return true
	default:
		return false
	}
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return TrimLeft(TrimRight(s))
}

// TrimLeft removes leading whitespace.
func TrimLeft(s string) string {
	i := 0
	for i < len(s) && isSpace(rune(s[i])) {
		i++
	}
	return s[i:]
}

// TrimRight removes trailing whitespace.
func TrimRight(s string) string {
	j := len(s)
	for j > 0 && isSpace(rune(s[j-1])) {
		j--
	}
	return s[:j]
}

// SplitFront returns n slices of line: the first n-1 are successive
// whitespace-delimited tokens (the line is left-trimmed after each
// token is taken; leading whitespace before the first token is not
// skipped, so callers pass an already-trimmed line), and the last is
// whatever remains, left-trimmed, including any internal whitespace.
// Requesting fewer tokens than words exist in line leaves the
// remainder in the final slot.
func SplitFront(line string, n int) []string {
	if n <= 0 {
		panic("plytext: SplitFront requires n > 0")
	}
	result := make([]string, n)
	for i := 0; i < n-1; i++ {
		idx := indexSpace(line)
		if idx < 0 {
			result[i] = line
			line = ""
		} else {
			result[i] = line[:idx]
			line = TrimLeft(line[idx:])
		}
	}
	result[n-1] = line
	return result
}

// SplitBack is the mirror image of SplitFront: it takes tokens from the
// end of line, leaving the untouched remainder in the first slot.
func SplitBack(line string, n int) []string {
	if n <= 0 {
		panic("plytext: SplitBack requires n > 0")
	}
	result := make([]string, n)
	for i := 0; i < n-1; i++ {
		idx := lastIndexSpace(line)
		if idx < 0 {
			result[n-1-i] = line
			line = ""
		} else {
			result[n-1-i] = line[idx+1:]
			line = TrimRight(line[:idx+1])
		}
	}
	result[0] = line
	return result
}

func indexSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if isSpace(rune(s[i])) {
			return i
		}
	}
	return -1
}

func lastIndexSpace(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if isSpace(rune(s[i])) {
			return i
		}
	}
	return -1
}

// ParseInt decodes a locale-independent base-10 signed integer.
func ParseInt(tok string) (int64, error) {
	return strconv.ParseInt(tok, 10, 64)
}

// ParseUint decodes a locale-independent base-10 unsigned integer.
func ParseUint(tok string) (uint64, error) {
	return strconv.ParseUint(tok, 10, 64)
}

// ParseFloat decodes a decimal or exponential floating point literal,
// "C"-locale style (dot as the decimal separator, no digit grouping).
func ParseFloat(tok string) (float64, error) {
	return strconv.ParseFloat(tok, 64)
}

// Fields splits an already-trimmed line into whitespace-separated
// tokens, used by the ASCII body decoder to walk a record's values.
func Fields(line string) []string {
	return strings.FieldsFunc(line, isSpace)
}
