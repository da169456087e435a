package rawwriter

import (
	"bytes"
	"math"
	"testing"

	"github.com/ecopia-map/plyraster/internal/raster"
)

func TestWriteHeaderAndPixels(t *testing.T) {
	img := raster.NewImage(2, 1)
	img.Set(0, 0, 1.5)
	img.Set(1, 0, math.NaN())

	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.Bytes()
	if len(out) != 24+2*8 {
		t.Fatalf("unexpected output length %d", len(out))
	}

	w := int64(hostOrder.Uint64(out[0:8]))
	h := int64(hostOrder.Uint64(out[8:16]))
	reserved := hostOrder.Uint64(out[16:24])
	if w != 2 || h != 1 || reserved != 0 {
		t.Fatalf("unexpected header: w=%d h=%d reserved=%d", w, h, reserved)
	}

	v0 := math.Float64frombits(hostOrder.Uint64(out[24:32]))
	v1 := math.Float64frombits(hostOrder.Uint64(out[32:40]))
	if v0 != 1.5 {
		t.Fatalf("pixel 0: want 1.5 got %v", v0)
	}
	if !math.IsNaN(v1) {
		t.Fatalf("pixel 1: want NaN got %v", v1)
	}
}
