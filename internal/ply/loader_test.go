package ply

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"
)

func TestLoadASCIIHeaderRoundTrip(t *testing.T) {
	src := "ply\n" +
		"format ascii 1.0\n" +
		"comment generated by test\n" +
		"element vertex 4\n" +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"end_header\n" +
		"0 0 1\n" +
		"1 0 2\n" +
		"0 1 3\n" +
		"1 1 4\n"

	file, warnings, err := LoadFrom(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if file.FileType != ASCII {
		t.Fatalf("expected ASCII, got %v", file.FileType)
	}
	if len(file.Comments) != 1 || file.Comments[0] != "generated by test" {
		t.Fatalf("unexpected comments: %v", file.Comments)
	}
	if len(file.Elements()) != 1 {
		t.Fatalf("expected 1 element, got %d", len(file.Elements()))
	}
	vertex := file.Elements()[0]
	if vertex.Name() != "vertex" || vertex.Count() != 4 {
		t.Fatalf("unexpected element: %s count=%d", vertex.Name(), vertex.Count())
	}
	wantNames := []string{"x", "y", "z"}
	for i, name := range wantNames {
		if vertex.ColumnAt(i).Name() != name {
			t.Fatalf("property %d: want %s got %s", i, name, vertex.ColumnAt(i).Name())
		}
		if vertex.ColumnAt(i).Type() != Float32 {
			t.Fatalf("property %d: want float32", i)
		}
	}

	zCol, err := vertex.Column("z")
	if err != nil {
		t.Fatalf("z column: %v", err)
	}
	want := []float64{1, 2, 3, 4}
	for i, w := range want {
		got, err := zCol.Float64At(i)
		if err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("row %d: want %v got %v", i, w, got)
		}
	}
}

func TestEndiannessEquivalence(t *testing.T) {
	asciiSrc := "ply\nformat ascii 1.0\nelement vertex 3\nproperty int a\nproperty double b\nend_header\n" +
		"1 1.5\n-2 2.5\n3 -3.5\n"

	buildBinary := func(order binary.ByteOrder, name string) string {
		var buf bytes.Buffer
		buf.WriteString("ply\nformat " + name + " 1.0\nelement vertex 3\nproperty int a\nproperty double b\nend_header\n")
		vals := []struct {
			a int32
			b float64
		}{{1, 1.5}, {-2, 2.5}, {3, -3.5}}
		for _, v := range vals {
			var ab [4]byte
			order.PutUint32(ab[:], uint32(v.a))
			buf.Write(ab[:])
			var bb [8]byte
			order.PutUint64(bb[:], math.Float64bits(v.b))
			buf.Write(bb[:])
		}
		return buf.String()
	}

	sources := map[string]string{
		"ascii":  asciiSrc,
		"binary_big_endian":    buildBinary(binary.BigEndian, "binary_big_endian"),
		"binary_little_endian": buildBinary(binary.LittleEndian, "binary_little_endian"),
	}

	type row struct {
		a int64
		b float64
	}
	var reference []row

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			file, _, err := LoadFrom(strings.NewReader(src))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			vertex := file.Elements()[0]
			aCol, _ := vertex.Column("a")
			bCol, _ := vertex.Column("b")
			var got []row
			for i := 0; i < vertex.Count(); i++ {
				av, err := aCol.Float64At(i)
				if err != nil {
					t.Fatal(err)
				}
				bv, err := bCol.Float64At(i)
				if err != nil {
					t.Fatal(err)
				}
				got = append(got, row{int64(av), bv})
			}
			if reference == nil {
				reference = got
				return
			}
			if len(got) != len(reference) {
				t.Fatalf("row count mismatch: %d vs %d", len(got), len(reference))
			}
			for i := range got {
				if got[i] != reference[i] {
					t.Fatalf("row %d mismatch: %+v vs %+v", i, got[i], reference[i])
				}
			}
		})
	}
}

func TestTypeFidelity(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement vertex 1\nproperty int a\nend_header\n42\n"
	file, _, err := LoadFrom(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	col, _ := file.Elements()[0].Column("a")

	if _, err := col.Float32At(0); err == nil {
		t.Fatal("expected TypeMismatch reading int32 column as float32")
	}
	v, err := col.Int32At(0)
	if err != nil {
		t.Fatalf("unexpected error reading correct type: %v", err)
	}
	if v != 42 {
		t.Fatalf("want 42 got %d", v)
	}
}

func TestListCountFidelity(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement face 2\nproperty list uchar int vertex_indices\nend_header\n" +
		"3 0 1 2\n4 3 4 5 6\n"
	file, _, err := LoadFrom(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	col, _ := file.Elements()[0].Column("vertex_indices")
	wantLens := []int{3, 4}
	for i, want := range wantLens {
		n, err := col.ListLen(i)
		if err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Fatalf("row %d: want len %d got %d", i, want, n)
		}
	}
	row1, err := col.ListRowFloat64(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{3, 4, 5, 6}
	for i := range want {
		if row1[i] != want[i] {
			t.Fatalf("row 1[%d]: want %v got %v", i, want[i], row1[i])
		}
	}
}

func TestBinaryScalarAndListScenarioS3(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\nformat binary_little_endian 1.0\n")
	buf.WriteString("element vertex 3\n")
	buf.WriteString("property uchar intensity\n")
	buf.WriteString("property list uchar int neighbors\n")
	buf.WriteString("end_header\n")

	type rec struct {
		intensity byte
		neighbors []int32
	}
	recs := []rec{
		{10, []int32{1, 2}},
		{20, []int32{}},
		{30, []int32{5, 6, 7}},
	}
	for _, r := range recs {
		buf.WriteByte(r.intensity)
		buf.WriteByte(byte(len(r.neighbors)))
		for _, n := range r.neighbors {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(n))
			buf.Write(b[:])
		}
	}

	file, _, err := LoadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vertex := file.Elements()[0]
	intensity, _ := vertex.Column("intensity")
	neighbors, _ := vertex.Column("neighbors")

	for i, r := range recs {
		v, err := intensity.UInt8At(i)
		if err != nil {
			t.Fatal(err)
		}
		if v != r.intensity {
			t.Fatalf("row %d intensity: want %d got %d", i, r.intensity, v)
		}
		row, err := neighbors.ListRowFloat64(i)
		if err != nil {
			t.Fatal(err)
		}
		if len(row) != len(r.neighbors) {
			t.Fatalf("row %d: want %d neighbors got %d", i, len(r.neighbors), len(row))
		}
		for j, want := range r.neighbors {
			if row[j] != float64(want) {
				t.Fatalf("row %d[%d]: want %v got %v", i, j, want, row[j])
			}
		}
	}
}

func TestDuplicatePropertyWarnsFirstWins(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty int x\nend_header\n1.5 7\n"
	file, warnings, err := LoadFrom(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	col, err := file.Elements()[0].Column("x")
	if err != nil {
		t.Fatal(err)
	}
	if col.Type() != Float32 {
		t.Fatalf("expected first definition (float) to win, got %v", col.Type())
	}
}

func TestTrailingTokenIsError(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nend_header\n1.0 2.0\n"
	_, _, err := LoadFrom(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected error for extra trailing token")
	}
}

func TestPropertyBeforeElementIsError(t *testing.T) {
	src := "ply\nformat ascii 1.0\nproperty float x\nend_header\n"
	_, _, err := LoadFrom(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected error for property before element")
	}
}

func TestBadMagicLine(t *testing.T) {
	_, _, err := LoadFrom(strings.NewReader("nope\nformat ascii 1.0\nend_header\n"))
	if err == nil {
		t.Fatal("expected error for bad magic line")
	}
}

func TestUnsupportedVersion(t *testing.T) {
	_, _, err := LoadFrom(strings.NewReader("ply\nformat ascii 2.0\nend_header\n"))
	if err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
