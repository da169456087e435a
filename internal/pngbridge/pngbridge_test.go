package pngbridge

import (
	"math"
	"testing"

	"github.com/ecopia-map/plyraster/internal/raster"
)

func TestConvertMapsSentinelAndClamps(t *testing.T) {
	img := raster.NewImage(3, 1)
	img.Set(0, 0, math.NaN())
	img.Set(1, 0, 100)
	img.Set(2, 0, 1e9)

	rows, err := Convert(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rows[0][0].Masked {
		t.Fatal("expected NaN pixel to be masked")
	}
	if rows[0][0].Value != 0 {
		t.Fatalf("masked pixel should carry value 0, got %d", rows[0][0].Value)
	}
	if rows[0][1].Masked || rows[0][1].Value != 100 {
		t.Fatalf("unexpected conversion for finite pixel: %+v", rows[0][1])
	}
	if rows[0][2].Masked || rows[0][2].Value != 65535 {
		t.Fatalf("expected clamp to 65535, got %+v", rows[0][2])
	}
}

func TestToGrayAlphaRoundTrip(t *testing.T) {
	rows := [][]Sample{
		{{Value: 0, Masked: true}, {Value: 300, Masked: false}},
	}
	img := ToGrayAlpha(rows)
	r, g, b, a := img.At(0, 0).RGBA()
	if a != 0 {
		t.Fatalf("masked pixel should be fully transparent, got alpha=%d", a)
	}
	_ = r
	_ = g
	_ = b
	r2, _, _, a2 := img.At(1, 0).RGBA()
	if a2 == 0 {
		t.Fatal("unmasked pixel should not be transparent")
	}
	if r2>>8 != 300>>8 {
		t.Fatalf("unexpected gray value encoded, r=%d", r2)
	}
}
