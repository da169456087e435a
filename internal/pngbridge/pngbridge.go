// Package pngbridge converts a float64 image with a NaN sentinel into
// the 16-bit gray + alpha sample pairs a PNG encoder consumes
// (component H). Encoding itself is an external collaborator; this
// package only performs the value conversion contract.
package pngbridge

import (
	"image"
	"image/color"
	"math"

	"github.com/ecopia-map/plyraster/internal/perrors"
	rasterpkg "github.com/ecopia-map/plyraster/internal/raster"
)

// maxDimension bounds both width and height: dimensions beyond it
// cannot be encoded by the PNG path. The original source's
// corresponding check compared height against itself twice; both axes
// are bounded here.
const maxDimension = 1<<31 - 1

// Sample is one converted pixel: Value is the 16-bit gray level, Masked
// marks a NaN source pixel (no valid contribution).
type Sample struct {
	Value  uint16
	Masked bool
}

// Convert maps a source image's NaN sentinel to {0, masked=true} and
// every finite value v to {round(clamp(v, 0, 65535)), masked=false}.
func Convert(img *rasterpkg.Image) ([][]Sample, error) {
	w, h := img.Width(), img.Height()
	if w > maxDimension || h > maxDimension {
		return nil, perrors.New(perrors.Usage, "image dimensions %dx%d exceed the PNG encoder's %d limit", w, h, maxDimension)
	}

	rows := make([][]Sample, h)
	for y := 0; y < h; y++ {
		row := make([]Sample, w)
		for x := 0; x < w; x++ {
			v := img.At(x, y)
			if math.IsNaN(v) {
				row[x] = Sample{Value: 0, Masked: true}
				continue
			}
			clamped := math.Max(0, math.Min(65535, v))
			row[x] = Sample{Value: uint16(math.Round(clamped)), Masked: false}
		}
		rows[y] = row
	}
	return rows, nil
}

// ToGrayAlpha renders the converted samples into an image.NRGBA64 with
// R=G=B=Value, ready to be handed to image/png.Encode by the driver.
// The stdlib png encoder has no PNG color-type-4 (gray+alpha) output
// path, only truecolor-with-alpha; replicating the gray level across
// channels is the closest stdlib rendition of the 16-bit gray+alpha
// contract. The stdlib png.Encode has no Adam7 interlaced-output path
// (it only decodes interlaced PNGs), so the PNG the driver writes is
// not interlaced.
func ToGrayAlpha(rows [][]Sample) *image.NRGBA64 {
	h := len(rows)
	if h == 0 {
		return image.NewNRGBA64(image.Rect(0, 0, 0, 0))
	}
	w := len(rows[0])
	out := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for y, row := range rows {
		for x, s := range row {
			a := uint16(0xffff)
			if s.Masked {
				a = 0
			}
			out.SetNRGBA64(x, y, color.NRGBA64{R: s.Value, G: s.Value, B: s.Value, A: a})
		}
	}
	return out
}
