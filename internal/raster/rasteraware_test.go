package raster

import (
	"math"
	"strings"
	"testing"

	"github.com/ecopia-map/plyraster/internal/point"
)

func TestRasterAwareScenarioS4(t *testing.T) {
	pts := []point.RasterPoint{
		{Point: point.Point{X: 0, Y: 0, V: 1}, RX: 0, RY: 0},
		{Point: point.Point{X: 3, Y: 0, V: 2}, RX: 1, RY: 0},
		{Point: point.Point{X: 0, Y: 3, V: 3}, RX: 0, RY: 1},
		{Point: point.Point{X: 3, Y: 3, V: 4}, RX: 1, RY: 1},
	}
	img, err := RasterAware(pts, 4, 4, FilterNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for y := 0; y <= 3; y++ {
		for x := 0; x <= 3; x++ {
			v := img.At(x, y)
			if math.IsNaN(v) {
				t.Fatalf("pixel (%d,%d): expected a contribution inside the quad's hull, got NaN", x, y)
			}
		}
	}
	if math.Abs(img.At(0, 0)-1) > 1e-9 {
		t.Fatalf("corner pixel (0,0): want ~1 got %v", img.At(0, 0))
	}
	if math.Abs(img.At(3, 3)-4) > 1e-9 {
		t.Fatalf("corner pixel (3,3): want ~4 got %v", img.At(3, 3))
	}
}

func TestRasterAwareDuplicateCellFails(t *testing.T) {
	pts := []point.RasterPoint{
		{Point: point.Point{X: 0, Y: 0, V: 1}, RX: 3, RY: 7},
		{Point: point.Point{X: 1, Y: 0, V: 2}, RX: 4, RY: 7},
		{Point: point.Point{X: 0, Y: 1, V: 3}, RX: 3, RY: 8},
		{Point: point.Point{X: 1, Y: 1, V: 4}, RX: 3, RY: 7},
	}
	_, err := RasterAware(pts, 2, 2, FilterNone)
	if err == nil {
		t.Fatal("expected duplicate raster cell error")
	}
	if !strings.Contains(err.Error(), "raster point 3x7 exists twice") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestRasterAwareGridTooSmallFails(t *testing.T) {
	pts := []point.RasterPoint{
		{Point: point.Point{X: 0, Y: 0, V: 1}, RX: 0, RY: 0},
		{Point: point.Point{X: 1, Y: 0, V: 2}, RX: 1, RY: 0},
	}
	_, err := RasterAware(pts, 2, 2, FilterNone)
	if err == nil {
		t.Fatal("expected shape error for a 2x1 raster grid")
	}
}

func TestBarycentricNormalization(t *testing.T) {
	tr := triangle{
		{Point: point.Point{X: 0, Y: 0, V: 1}},
		{Point: point.Point{X: 4, Y: 0, V: 2}},
		{Point: point.Point{X: 0, Y: 4, V: 3}},
	}
	x0, y0 := tr[0].X, tr[0].Y
	x1, y1 := tr[1].X, tr[1].Y
	x2, y2 := tr[2].X, tr[2].Y
	total2 := signedArea2(x0, y0, x1, y1, x2, y2)

	px, py := 1.0, 1.0
	d0 := signedArea2(x1, y1, x2, y2, px, py)
	d1 := signedArea2(x2, y2, x0, y0, px, py)
	d2 := signedArea2(x0, y0, x1, y1, px, py)
	w0 := math.Abs(d0) / math.Abs(total2)
	w1 := math.Abs(d1) / math.Abs(total2)
	w2 := math.Abs(d2) / math.Abs(total2)
	if math.Abs(w0+w1+w2-1) > 1e-9 {
		t.Fatalf("barycentric weights must sum to 1, got %v", w0+w1+w2)
	}
}

func TestEqualAreaTrianglesProduceEqualWeights(t *testing.T) {
	// Regression test for the documented Heron's-formula defect: two
	// triangles of equal area, evaluated at their own centroid, must
	// produce identical (1/3, 1/3, 1/3) barycentric weights.
	tris := [][3][2]float64{
		{{0, 0}, {6, 0}, {0, 6}},
		{{10, 10}, {16, 10}, {10, 16}},
	}
	for _, tr := range tris {
		x0, y0 := tr[0][0], tr[0][1]
		x1, y1 := tr[1][0], tr[1][1]
		x2, y2 := tr[2][0], tr[2][1]
		cx := (x0 + x1 + x2) / 3
		cy := (y0 + y1 + y2) / 3
		total2 := signedArea2(x0, y0, x1, y1, x2, y2)
		d0 := signedArea2(x1, y1, x2, y2, cx, cy)
		d1 := signedArea2(x2, y2, x0, y0, cx, cy)
		d2 := signedArea2(x0, y0, x1, y1, cx, cy)
		w0 := math.Abs(d0) / math.Abs(total2)
		w1 := math.Abs(d1) / math.Abs(total2)
		w2 := math.Abs(d2) / math.Abs(total2)
		if math.Abs(w0-1.0/3) > 1e-9 || math.Abs(w1-1.0/3) > 1e-9 || math.Abs(w2-1.0/3) > 1e-9 {
			t.Fatalf("centroid weights should each be 1/3, got %v %v %v", w0, w1, w2)
		}
	}
}

func TestFilterLocality(t *testing.T) {
	acc := newAccumulator(1, 1)
	acc.add(0, 0, contribution{weight: 1, value: 1000, rx: 5, ry: 5})
	acc.add(0, 0, contribution{weight: 1, value: 1, rx: 5, ry: 0})
	applyFilter(acc, FilterMin)
	cs := acc.at(0, 0)
	if len(cs) != 1 {
		t.Fatalf("expected the far outlier dropped, got %d contributions", len(cs))
	}
	if cs[0].rx != 5 || cs[0].ry != 0 {
		t.Fatalf("expected surviving contribution at (5,0), got (%d,%d)", cs[0].rx, cs[0].ry)
	}
}
