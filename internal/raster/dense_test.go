package raster

import (
	"math"
	"testing"

	"github.com/ecopia-map/plyraster/internal/point"
)

func TestDenseScenarioS1(t *testing.T) {
	pts := []point.Point{
		{X: 0, Y: 0, V: 1},
		{X: 1, Y: 0, V: 2},
		{X: 0, Y: 1, V: 3},
		{X: 1, Y: 1, V: 4},
	}
	img := Dense(pts, 2, 2)
	want := []float64{1, 2, 3, 4}
	got := []float64{img.At(0, 0), img.At(1, 0), img.At(0, 1), img.At(1, 1)}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pixel %d: want %v got %v", i, want[i], got[i])
		}
	}
}

func TestDenseScenarioS2(t *testing.T) {
	pts := []point.Point{
		{X: 0, Y: 0, V: 1},
		{X: 1, Y: 0, V: 2},
		{X: 0, Y: 1, V: 3},
		{X: 1, Y: 1, V: 4},
		{X: 0.5, Y: 0.5, V: 10},
	}
	img := Dense(pts, 2, 2)
	want00 := (1*1 + 10*0.25) / 1.25
	if math.Abs(img.At(0, 0)-want00) > 1e-9 {
		t.Fatalf("pixel (0,0): want %v got %v", want00, img.At(0, 0))
	}
}

func TestDenseBilinearCorrectnessAtIntegerPoint(t *testing.T) {
	// A point exactly on an integer coordinate has bilinear weight 1 at
	// its own pixel and 0 at the other three corners; zero-weight
	// corners receive no contribution, so only (1,1) is painted and
	// every other pixel stays NaN.
	pts := []point.Point{{X: 1, Y: 1, V: 42}}
	img := Dense(pts, 3, 3)
	painted := map[[2]int]bool{{1, 1}: true}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			v := img.At(x, y)
			if painted[[2]int{x, y}] {
				if v != 42 {
					t.Fatalf("pixel (%d,%d): want 42 got %v", x, y, v)
				}
				continue
			}
			if !math.IsNaN(v) {
				t.Fatalf("pixel (%d,%d): want NaN got %v", x, y, v)
			}
		}
	}
}

func TestDensePartitionOfUnity(t *testing.T) {
	acc := newAccumulator(4, 4)
	p := point.Point{X: 1.3, Y: 2.7, V: 5}
	ix := int(math.Floor(p.X))
	iy := int(math.Floor(p.Y))
	fx := p.X - math.Floor(p.X)
	fy := p.Y - math.Floor(p.Y)
	var total float64
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
			total += w
			acc.add(ix+dx, iy+dy, contribution{weight: w, value: p.V})
		}
	}
	if math.Abs(total-1.0) > 1e-12 {
		t.Fatalf("weights must sum to 1, got %v", total)
	}
}

func TestDenseOutOfBoundsContributesNothing(t *testing.T) {
	pts := []point.Point{{X: -5, Y: -5, V: 1}}
	img := Dense(pts, 2, 2)
	img.Each(func(x, y int, v float64) {
		if !math.IsNaN(v) {
			t.Fatalf("pixel (%d,%d): expected NaN for fully out-of-bounds point, got %v", x, y, v)
		}
	})
}
