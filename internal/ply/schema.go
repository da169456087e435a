package ply

import "github.com/ecopia-map/plyraster/internal/perrors"

// Warning is something the loader noticed but tolerated: a duplicate
// element or property name (first one wins). Warnings never abort a
// load.
type Warning struct {
	Msg string
}

// Element is a named, ordered collection of same-schema records: a
// count and an ordered list of property columns.
type Element struct {
	name    string
	count   int
	columns []*Column
	byName  map[string]int
}

func newElement(name string, count int) *Element {
	return &Element{name: name, count: count, byName: map[string]int{}}
}

func (e *Element) Name() string   { return e.name }
func (e *Element) Count() int     { return e.count }
func (e *Element) Columns() []*Column {
	return e.columns
}

// addColumn appends a property column to the element's decode order.
// Body decoding must still walk every declared property in order
// regardless of name collisions, so the column is always appended; a
// duplicate name only reports a warning and is skipped by name lookup
// (the first definition wins there).
func (e *Element) addColumn(c *Column) *Warning {
	var w *Warning
	if _, dup := e.byName[c.name]; dup {
		w = &Warning{Msg: "duplicate property \"" + c.name + "\" in element \"" + e.name + "\", first wins"}
	} else {
		e.byName[c.name] = len(e.columns)
	}
	e.columns = append(e.columns, c)
	return w
}

// Column looks up a property column by name.
func (e *Element) Column(name string) (*Column, error) {
	idx, ok := e.byName[name]
	if !ok {
		return nil, perrors.New(perrors.Schema, "element %q has no property %q", e.name, name)
	}
	return e.columns[idx], nil
}

// ColumnAt looks up a property column by its declared position.
func (e *Element) ColumnAt(i int) *Column {
	return e.columns[i]
}

// File is the fully decoded in-memory representation of one PLY file:
// file type, free-form comments, and an ordered list of elements.
type File struct {
	FileType FileType
	Comments []string

	elements []*Element
	byName   map[string]int
}

// FileType is the on-disk encoding declared by the header's "format"
// line.
type FileType int

const (
	ASCII FileType = iota
	BinaryBigEndian
	BinaryLittleEndian
)

func newFile(ft FileType) *File {
	return &File{FileType: ft, byName: map[string]int{}}
}

// Elements returns the file's elements in declaration order.
func (f *File) Elements() []*Element {
	return f.elements
}

// Element looks up an element by name.
func (f *File) Element(name string) (*Element, error) {
	idx, ok := f.byName[name]
	if !ok {
		return nil, perrors.New(perrors.Schema, "file has no element %q", name)
	}
	return f.elements[idx], nil
}

// addElement appends an element to the file's decode order. Body
// decoding must still walk every declared element in order regardless
// of name collisions, so the element is always appended; a duplicate
// name only reports a warning and is skipped by name lookup (the first
// definition wins there).
func (f *File) addElement(e *Element) *Warning {
	var w *Warning
	if _, dup := f.byName[e.name]; dup {
		w = &Warning{Msg: "duplicate element \"" + e.name + "\", first wins"}
	} else {
		f.byName[e.name] = len(f.elements)
	}
	f.elements = append(f.elements, e)
	return w
}
