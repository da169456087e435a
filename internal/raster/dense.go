package raster

import (
	"math"

	"github.com/ecopia-map/plyraster/internal/point"
	"github.com/ecopia-map/plyraster/internal/progress"
)

// Dense distributes every point's value bilinearly across its (at
// most four) surrounding target pixels and reduces the result to a
// width x height image. Points outside [0, width) x [0, height) in
// either axis simply contribute nothing to any in-bounds corner, and a
// corner whose bilinear weight is exactly zero receives no contribution.
func Dense(points []point.Point, width, height int) *Image {
	return DenseWithProgress(points, width, height, progress.NoOp{})
}

// DenseWithProgress is Dense plus a progress reporter ticked once per
// point.
func DenseWithProgress(points []point.Point, width, height int, rep progress.Reporter) *Image {
	acc := newAccumulator(width, height)
	if len(points) > 0 {
		rep.Begin("dense rasterize", len(points))
	}
	for _, p := range points {
		ix := int(math.Floor(p.X))
		iy := int(math.Floor(p.Y))
		fx := p.X - math.Floor(p.X)
		fy := p.Y - math.Floor(p.Y)

		for dy := 0; dy <= 1; dy++ {
			wy := fy
			if dy == 0 {
				wy = 1 - fy
			}
			for dx := 0; dx <= 1; dx++ {
				wx := fx
				if dx == 0 {
					wx = 1 - fx
				}
				w := wx * wy
				if w == 0 {
					continue
				}
				acc.add(ix+dx, iy+dy, contribution{weight: w, value: p.V})
			}
		}
		rep.Tick()
	}
	if len(points) > 0 {
		rep.End()
	}
	return acc.ToImage()
}
