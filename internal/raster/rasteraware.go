package raster

import (
	"math"

	"github.com/ecopia-map/plyraster/internal/perrors"
	"github.com/ecopia-map/plyraster/internal/point"
	"github.com/ecopia-map/plyraster/internal/progress"
)

// Filter selects which raster-neighbor contributions survive the
// optional post-paint filtering pass.
type Filter int

const (
	FilterMin Filter = iota
	FilterMax
	FilterNone
)

// corner is one occupied cell of the reconstructed raster grid.
type corner struct {
	point.RasterPoint
	present bool
}

// grid is the dense W x H reconstruction of the source's raster
// neighborhood, indexed by (rx - minRX, ry - minRY).
type grid struct {
	minRX, minRY int64
	w, h         int
	cells        []corner
}

func (g *grid) at(ix, iy int) *corner {
	return &g.cells[iy*g.w+ix]
}

// buildGrid computes (min_rx, max_rx, min_ry, max_ry) over the point
// set, requires both spans to be at least 2 wide, and inserts every
// point into its cell, failing loudly on a duplicate.
func buildGrid(points []point.RasterPoint) (*grid, error) {
	if len(points) == 0 {
		return nil, perrors.New(perrors.Shape, "raster mode requires at least one point")
	}
	minRX, maxRX := points[0].RX, points[0].RX
	minRY, maxRY := points[0].RY, points[0].RY
	for _, p := range points[1:] {
		if p.RX < minRX {
			minRX = p.RX
		}
		if p.RX > maxRX {
			maxRX = p.RX
		}
		if p.RY < minRY {
			minRY = p.RY
		}
		if p.RY > maxRY {
			maxRY = p.RY
		}
	}

	w64 := maxRX - minRX + 1
	h64 := maxRY - minRY + 1
	if w64 < 2 || h64 < 2 {
		return nil, perrors.New(perrors.Shape, "raster grid dimensions %dx%d are too small, need at least 2x2", w64, h64)
	}

	g := &grid{minRX: minRX, minRY: minRY, w: int(w64), h: int(h64)}
	g.cells = make([]corner, g.w*g.h)

	for _, p := range points {
		ix := int(p.RX - minRX)
		iy := int(p.RY - minRY)
		c := g.at(ix, iy)
		if c.present {
			return nil, perrors.New(perrors.Duplicate, "raster point %dx%d exists twice", p.RX, p.RY)
		}
		c.RasterPoint = p
		c.present = true
	}
	return g, nil
}

// triangle is three vertices ready for barycentric painting.
type triangle [3]point.RasterPoint

// quadTriangles returns the triangle(s) for one 2x2 block of corners
// gathered in (ix,iy), (ix+1,iy), (ix,iy+1), (ix+1,iy+1) order. Fewer
// than 3 present corners yields no triangles. Exactly 3 present
// corners yields one triangle in gathered order. All 4 present yields
// the four deliberately overlapping rotations p0p1p2, p1p2p3, p2p3p0,
// p3p0p1 (not two disjoint triangles): this biases blending toward
// shared edges and must be preserved.
func quadTriangles(corners [4]corner) []triangle {
	var present []point.RasterPoint
	var mask [4]bool
	for i, c := range corners {
		if c.present {
			present = append(present, c.RasterPoint)
			mask[i] = true
		}
	}
	switch len(present) {
	case 4:
		p0, p1, p2, p3 := corners[0].RasterPoint, corners[1].RasterPoint, corners[2].RasterPoint, corners[3].RasterPoint
		return []triangle{
			{p0, p1, p2},
			{p1, p2, p3},
			{p2, p3, p0},
			{p3, p0, p1},
		}
	case 3:
		var t triangle
		copy(t[:], present)
		return []triangle{t}
	default:
		return nil
	}
}

// signedArea2 returns twice the signed area of the triangle (a, b, c)
// using the numerically robust shoelace form, avoiding the original
// source's Heron's-formula defect (a repeated side term).
func signedArea2(ax, ay, bx, by, cx, cy float64) float64 {
	return ax*(by-cy) + bx*(cy-ay) + cx*(ay-by)
}

// paintTriangle rasterizes one triangle into acc: integer bounding box
// clamped to the target grid, half-plane inside test per pixel,
// abs-signed-area barycentric weights.
func paintTriangle(acc *accumulator, t triangle, width, height int) {
	x0, y0 := t[0].X, t[0].Y
	x1, y1 := t[1].X, t[1].Y
	x2, y2 := t[2].X, t[2].Y

	minX := math.Min(x0, math.Min(x1, x2))
	maxX := math.Max(x0, math.Max(x1, x2))
	minY := math.Min(y0, math.Min(y1, y2))
	maxY := math.Max(y0, math.Max(y1, y2))

	fx := clampInt(int(math.Floor(minX)), 0, width-1)
	tx := clampInt(int(math.Ceil(maxX)), 0, width-1)
	fy := clampInt(int(math.Floor(minY)), 0, height-1)
	ty := clampInt(int(math.Ceil(maxY)), 0, height-1)
	if tx == fx || ty == fy {
		return
	}

	total2 := signedArea2(x0, y0, x1, y1, x2, y2)
	if total2 == 0 {
		return
	}

	for py := fy; py <= ty; py++ {
		for px := fx; px <= tx; px++ {
			x, y := float64(px), float64(py)

			d0 := signedArea2(x1, y1, x2, y2, x, y)
			d1 := signedArea2(x2, y2, x0, y0, x, y)
			d2 := signedArea2(x0, y0, x1, y1, x, y)

			hasNeg := d0 < 0 || d1 < 0 || d2 < 0
			hasPos := d0 > 0 || d1 > 0 || d2 > 0
			if hasNeg && hasPos {
				continue
			}

			w0 := math.Abs(d0) / math.Abs(total2)
			w1 := math.Abs(d1) / math.Abs(total2)
			w2 := math.Abs(d2) / math.Abs(total2)

			value := w0*t[0].V + w1*t[1].V + w2*t[2].V

			k := 0
			maxW := w0
			if w1 > maxW {
				maxW, k = w1, 1
			}
			if w2 > maxW {
				maxW, k = w2, 2
			}

			acc.add(px, py, contribution{
				weight: maxW,
				value:  value,
				rx:     t[k].RX,
				ry:     t[k].RY,
			})
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyFilter drops, per non-empty pixel, every contribution whose
// raster coordinates differ from the chosen reference by more than 1
// in either axis. The reference is the contribution with the smallest
// (FilterMin) or largest (FilterMax) value; FilterNone is a no-op.
func applyFilter(acc *accumulator, filter Filter) {
	if filter == FilterNone {
		return
	}
	for i, cs := range acc.cells {
		if len(cs) == 0 {
			continue
		}
		ref := cs[0]
		for _, c := range cs[1:] {
			if filter == FilterMin && c.value < ref.value {
				ref = c
			}
			if filter == FilterMax && c.value > ref.value {
				ref = c
			}
		}
		kept := cs[:0]
		for _, c := range cs {
			if absInt64(c.rx-ref.rx) > 1 || absInt64(c.ry-ref.ry) > 1 {
				continue
			}
			kept = append(kept, c)
		}
		acc.cells[i] = kept
	}
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// RasterAware reconstructs the source's 2D raster neighborhood,
// triangulates every 2x2 quad into the target image plane, paints
// every covered pixel via barycentric interpolation, optionally
// filters contributions by raster locality, and reduces to an image.
func RasterAware(points []point.RasterPoint, width, height int, filter Filter) (*Image, error) {
	return RasterAwareWithProgress(points, width, height, filter, progress.NoOp{})
}

// RasterAwareWithProgress is RasterAware plus a progress reporter
// ticked once per row of raster-grid quads as that row is painted.
func RasterAwareWithProgress(points []point.RasterPoint, width, height int, filter Filter, rep progress.Reporter) (*Image, error) {
	g, err := buildGrid(points)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator(width, height)
	quadRows := g.h - 1
	if quadRows > 0 {
		rep.Begin("raster-aware rasterize", quadRows)
	}
	for iy := 0; iy < g.h-1; iy++ {
		for ix := 0; ix < g.w-1; ix++ {
			corners := [4]corner{
				*g.at(ix, iy),
				*g.at(ix+1, iy),
				*g.at(ix, iy+1),
				*g.at(ix+1, iy+1),
			}
			for _, t := range quadTriangles(corners) {
				paintTriangle(acc, t, width, height)
			}
		}
		rep.Tick()
	}
	if quadRows > 0 {
		rep.End()
	}

	applyFilter(acc, filter)
	return acc.ToImage(), nil
}
