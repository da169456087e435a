// Package perrors defines the error kinds the PLY loader and rasterizer
// can raise, per the kind taxonomy the core must surface: IO, header
// syntax, schema, type mismatch, range, shape, duplicate, usage and
// logic-bug conditions.
package perrors

import "fmt"

// Kind identifies which of the documented error categories a failure
// belongs to, so callers can branch with errors.As without parsing
// message text.
type Kind int

const (
	IO Kind = iota
	HeaderSyntax
	Schema
	TypeMismatch
	Range
	Shape
	Duplicate
	Usage
	LogicBug
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case HeaderSyntax:
		return "header syntax"
	case Schema:
		return "schema"
	case TypeMismatch:
		return "type mismatch"
	case Range:
		return "range"
	case Shape:
		return "shape"
	case Duplicate:
		return "duplicate"
	case Usage:
		return "usage"
	case LogicBug:
		return "logic bug"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by this module's packages.
// Line is the 1-based ASCII line number when known (0 otherwise); when
// Line is 0 and Binary is true, the message already carries a "binary
// file part" marker instead.
type Error struct {
	Kind   Kind
	Msg    string
	Line   int
	Binary bool
	Cause  error
}

func (e *Error) Error() string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf(" (line %d)", e.Line)
	} else if e.Binary {
		loc = " (binary file part)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s%s: %v", e.Kind, e.Msg, loc, e.Cause)
	}
	return fmt.Sprintf("%s: %s%s", e.Kind, e.Msg, loc)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a location-less error of the given kind.
func New(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// AtLine builds an error carrying an ASCII source line number.
func AtLine(kind Kind, line int, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Line: line}
}

// InBinary builds an error carrying the "binary file part" marker.
func InBinary(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Binary: true}
}

// Wrap attaches a cause to an existing error built by this package.
func Wrap(kind Kind, cause error, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Cause: cause}
}
