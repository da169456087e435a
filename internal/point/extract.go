package point

import (
	"math"

	"github.com/ecopia-map/plyraster/internal/perrors"
	"github.com/ecopia-map/plyraster/internal/ply"
)

// AxisSelector names one (element, property) pair plus the affine
// transform (v + Pre) * Scale + Post applied to every value read from
// it.
type AxisSelector struct {
	Element  string
	Property string
	Pre      float64
	Scale    float64
	Post     float64
}

// RasterSelector names one (element, property) pair supplying an
// integer raster-grid coordinate; no scaling is applied, the stored
// value must merely be exactly representable as an int64.
type RasterSelector struct {
	Element  string
	Property string
}

// Options bundles every selector the extractor needs: x, y and value
// are required, rx/ry are optional (nil disables raster-aware mode).
type Options struct {
	X, Y, Value AxisSelector
	RX, RY      *RasterSelector
}

// column resolves one selector's backing column, rejecting list-typed
// properties per spec.
func column(file *ply.File, elementName, propName string) (*ply.Column, int, error) {
	elem, err := file.Element(elementName)
	if err != nil {
		return nil, 0, err
	}
	col, err := elem.Column(propName)
	if err != nil {
		return nil, 0, err
	}
	if col.IsList() {
		return nil, 0, perrors.New(perrors.Usage, "property %q of element %q is a list, scalar required", propName, elementName)
	}
	return col, elem.Count(), nil
}

func applyAxis(sel AxisSelector, col *ply.Column, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := col.Float64At(i)
		if err != nil {
			return nil, err
		}
		out[i] = (v+sel.Pre)*sel.Scale + sel.Post
	}
	return out, nil
}

// rasterIndex converts one stored scalar to an exact int64 raster
// coordinate, failing if it is not an exact integer or out of i64
// range.
func rasterIndex(col *ply.Column, i int) (int64, error) {
	switch col.Type() {
	case ply.Float32:
		v, _ := col.Float32At(i)
		f := float64(v)
		if f != math.Trunc(f) {
			return 0, perrors.New(perrors.Range, "raster index %v is not an integer", f)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, perrors.New(perrors.Range, "raster index %v is out of int64 range", f)
		}
		return int64(f), nil
	case ply.Float64:
		v, _ := col.Float64StrictAt(i)
		if v != math.Trunc(v) {
			return 0, perrors.New(perrors.Range, "raster index %v is not an integer", v)
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, perrors.New(perrors.Range, "raster index %v is out of int64 range", v)
		}
		return int64(v), nil
	case ply.UInt32:
		v, _ := col.UInt32At(i)
		return int64(v), nil
	default:
		// every other scalar type (int8/uint8/int16/uint16/int32) fits
		// exactly in an int64 with no range check needed.
		v, err := col.Float64At(i)
		if err != nil {
			return 0, err
		}
		return int64(v), nil
	}
}

func applyRaster(sel RasterSelector, col *ply.Column, n int) ([]int64, error) {
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		v, err := rasterIndex(col, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Extract projects the chosen (element, property) triples through the
// file's columns into point records. All chosen element names must
// refer to elements of equal count, or Extract fails naming which axis
// mismatched. When opts.RX/RY is nil the result has no raster
// coordinates; when non-nil every point also carries one.
func Extract(file *ply.File, opts Options) ([]RasterPoint, bool, error) {
	xCol, n, err := column(file, opts.X.Element, opts.X.Property)
	if err != nil {
		return nil, false, err
	}
	yCol, ny, err := column(file, opts.Y.Element, opts.Y.Property)
	if err != nil {
		return nil, false, err
	}
	if ny != n {
		return nil, false, perrors.New(perrors.Shape, "y axis element %q has count %d, expected %d (from x axis element %q)", opts.Y.Element, ny, n, opts.X.Element)
	}
	vCol, nv, err := column(file, opts.Value.Element, opts.Value.Property)
	if err != nil {
		return nil, false, err
	}
	if nv != n {
		return nil, false, perrors.New(perrors.Shape, "value axis element %q has count %d, expected %d (from x axis element %q)", opts.Value.Element, nv, n, opts.X.Element)
	}

	xs, err := applyAxis(opts.X, xCol, n)
	if err != nil {
		return nil, false, err
	}
	ys, err := applyAxis(opts.Y, yCol, n)
	if err != nil {
		return nil, false, err
	}
	vs, err := applyAxis(opts.Value, vCol, n)
	if err != nil {
		return nil, false, err
	}

	points := make([]RasterPoint, n)
	for i := range points {
		points[i].X, points[i].Y, points[i].V = xs[i], ys[i], vs[i]
	}

	if opts.RX == nil || opts.RY == nil {
		return points, false, nil
	}

	rxCol, nrx, err := column(file, opts.RX.Element, opts.RX.Property)
	if err != nil {
		return nil, false, err
	}
	if nrx != n {
		return nil, false, perrors.New(perrors.Shape, "raster x element %q has count %d, expected %d (from x axis element %q)", opts.RX.Element, nrx, n, opts.X.Element)
	}
	ryCol, nry, err := column(file, opts.RY.Element, opts.RY.Property)
	if err != nil {
		return nil, false, err
	}
	if nry != n {
		return nil, false, perrors.New(perrors.Shape, "raster y element %q has count %d, expected %d (from x axis element %q)", opts.RY.Element, nry, n, opts.X.Element)
	}

	rxs, err := applyRaster(*opts.RX, rxCol, n)
	if err != nil {
		return nil, false, err
	}
	rys, err := applyRaster(*opts.RY, ryCol, n)
	if err != nil {
		return nil, false, err
	}
	for i := range points {
		points[i].RX, points[i].RY = rxs[i], rys[i]
	}

	return points, true, nil
}

// PropertyPresent reports whether the named scalar property exists on
// the named element, used by the driver to decide whether a
// *defaulted* (not explicitly flagged) raster selector should silently
// downgrade to no-raster mode with a warning, versus a user-specified
// one that must hard-fail via the normal column-not-found error.
func PropertyPresent(file *ply.File, elementName, propName string) bool {
	elem, err := file.Element(elementName)
	if err != nil {
		return false
	}
	_, err = elem.Column(propName)
	return err == nil
}
