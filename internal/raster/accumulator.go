package raster

import (
	"math"

	"github.com/ecopia-map/plyraster/internal/perrors"
)

// contribution is one accumulator-cell entry. rx/ry are only meaningful
// for raster-mode output; dense mode leaves them at zero and never
// reads them back (no filter pass runs over dense output).
type contribution struct {
	weight, value float64
	rx, ry        int64
}

// accumulator holds, per pixel, the list of contributions painted into
// it. Cells live only for the duration of one rasterization pass.
type accumulator struct {
	w, h  int
	cells [][]contribution
}

func newAccumulator(w, h int) *accumulator {
	return &accumulator{w: w, h: h, cells: make([][]contribution, w*h)}
}

func (a *accumulator) add(x, y int, c contribution) {
	if x < 0 || x >= a.w || y < 0 || y >= a.h {
		return
	}
	if c.weight < 0 {
		panic(perrors.New(perrors.LogicBug, "negative weight %v contributed to pixel (%d,%d)", c.weight, x, y))
	}
	a.cells[y*a.w+x] = append(a.cells[y*a.w+x], c)
}

func (a *accumulator) at(x, y int) []contribution {
	return a.cells[y*a.w+x]
}

// ToImage reduces every pixel's contribution list to a single value:
// empty -> NaN, single -> that value, multiple -> the weight-normalized
// mean, NaN if the total weight is zero.
func (a *accumulator) ToImage() *Image {
	img := NewImage(a.w, a.h)
	for y := 0; y < a.h; y++ {
		for x := 0; x < a.w; x++ {
			cs := a.at(x, y)
			switch len(cs) {
			case 0:
				continue
			case 1:
				img.Set(x, y, cs[0].value)
			default:
				var sumW, sumWV float64
				for _, c := range cs {
					sumW += c.weight
					sumWV += c.weight * c.value
				}
				if sumW == 0 {
					img.Set(x, y, math.NaN())
					continue
				}
				img.Set(x, y, sumWV/sumW)
			}
		}
	}
	return img
}
