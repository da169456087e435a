package ply

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/ecopia-map/plyraster/internal/perrors"
	"github.com/ecopia-map/plyraster/internal/progress"
)

// Load reads the PLY file at path, returning the fully decoded schema
// plus any warnings it tolerated (duplicate element/property names). A
// single bufio.Reader backs both the header and body passes so bytes
// consumed while scanning header lines are never re-read or dropped.
func Load(path string) (*File, []Warning, error) {
	return LoadWithProgress(path, progress.NoOp{})
}

// LoadWithProgress is Load plus a per-element progress reporter, ticked
// once per decoded row during body decoding.
func LoadWithProgress(path string, rep progress.Reporter) (*File, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, perrors.Wrap(perrors.IO, err, "opening %q", path)
	}
	defer f.Close()

	return LoadFromWithProgress(f, rep)
}

// LoadFrom decodes a PLY stream already open for reading. Exposed
// separately from Load so tests and embedders can feed an in-memory
// buffer instead of a file.
func LoadFrom(r io.Reader) (*File, []Warning, error) {
	return LoadFromWithProgress(r, progress.NoOp{})
}

// LoadFromWithProgress is LoadFrom plus a per-element progress
// reporter.
func LoadFromWithProgress(r io.Reader, rep progress.Reporter) (*File, []Warning, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	hr, err := parseHeader(br)
	if err != nil {
		return nil, nil, err
	}

	switch hr.file.FileType {
	case ASCII:
		if err := decodeASCII(br, hr.file, hr.endLine, rep); err != nil {
			return nil, hr.warnings, err
		}
	case BinaryBigEndian:
		if err := decodeBinary(br, hr.file, binary.BigEndian, rep); err != nil {
			return nil, hr.warnings, err
		}
	case BinaryLittleEndian:
		if err := decodeBinary(br, hr.file, binary.LittleEndian, rep); err != nil {
			return nil, hr.warnings, err
		}
	}

	return hr.file, hr.warnings, nil
}
