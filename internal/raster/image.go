// Package raster implements the point-to-raster rasterization stage
// (components E, F and G): dense bilinear distribution, raster-aware
// triangulated painting, and accumulator-to-image reduction.
package raster

import "math"

// Image is a row-major w x h grid of float64 values. Empty pixels carry
// the IEEE-754 quiet NaN sentinel. It is the out-of-core handoff to the
// raw writer and PNG bridge, so it is kept deliberately minimal: random
// access plus row-major iteration, nothing else.
type Image struct {
	w, h int
	data []float64
}

// NewImage allocates a w x h image with every pixel set to NaN.
func NewImage(w, h int) *Image {
	data := make([]float64, w*h)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Image{w: w, h: h, data: data}
}

func (img *Image) Width() int  { return img.w }
func (img *Image) Height() int { return img.h }

// At returns the value at (x, y), x being the column and y the row.
func (img *Image) At(x, y int) float64 {
	return img.data[y*img.w+x]
}

// Set writes the value at (x, y).
func (img *Image) Set(x, y int, v float64) {
	img.data[y*img.w+x] = v
}

// Each calls fn once per pixel in row-major order with its coordinates
// and value.
func (img *Image) Each(fn func(x, y int, v float64)) {
	for y := 0; y < img.h; y++ {
		for x := 0; x < img.w; x++ {
			fn(x, y, img.data[y*img.w+x])
		}
	}
}

// Raw exposes the backing row-major slice, used by the raw binary
// writer to stream pixels without a copy.
func (img *Image) Raw() []float64 {
	return img.data
}
