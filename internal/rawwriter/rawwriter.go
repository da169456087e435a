// Package rawwriter implements the raw binary image output format: a
// 24-byte header followed by row-major float64 pixel values in host
// byte order.
package rawwriter

import (
	"encoding/binary"
	"io"
	"math"
	"unsafe"

	"github.com/ecopia-map/plyraster/internal/perrors"
	"github.com/ecopia-map/plyraster/internal/raster"
)

// hostOrder matches the host's native byte order, since the raw format
// is explicitly documented as host-byte-order rather than a fixed
// endianness.
var hostOrder = nativeByteOrder()

func nativeByteOrder() binary.ByteOrder {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	if b[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Write emits the 24-byte header (width, height, reserved, each an
// int64) followed by w*h float64 values in row-major order.
func Write(w io.Writer, img *raster.Image) error {
	header := make([]byte, 24)
	hostOrder.PutUint64(header[0:8], uint64(int64(img.Width())))
	hostOrder.PutUint64(header[8:16], uint64(int64(img.Height())))
	hostOrder.PutUint64(header[16:24], 0)
	if _, err := w.Write(header); err != nil {
		return perrors.Wrap(perrors.IO, err, "writing raw image header")
	}

	raw := img.Raw()
	buf := make([]byte, 8*len(raw))
	for i, v := range raw {
		hostOrder.PutUint64(buf[i*8:i*8+8], math.Float64bits(v))
	}
	if _, err := w.Write(buf); err != nil {
		return perrors.Wrap(perrors.IO, err, "writing raw image pixels")
	}
	return nil
}
