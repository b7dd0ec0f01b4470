package pixel

import (
	"errors"
	"fmt"
)

// Storage indices of the three channels inside a Pixel.
//
// Buffers arrive from the host in blue, green, red order. Every operation
// that packs a Pixel reads the channels from index 2 down to 0, so the
// packed value always comes out as (R<<16)|(G<<8)|B.
const (
	Blue  = 0
	Green = 1
	Red   = 2
)

// Pixel is one 8-bit sample per channel in B, G, R storage order.
type Pixel [3]uint8

// Packed is a 24-bit color stored as (R<<16)|(G<<8)|B.
type Packed uint32

// Black and White are the two packed colors produced by binarization.
const (
	Black Packed = 0x000000
	White Packed = 0xFFFFFF
)

// ErrInvalidDimensions is returned when a buffer length does not match
// width*height or a dimension is zero.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// ErrInvalidColor is returned for packed values with bits above 0xFFFFFF.
var ErrInvalidColor = errors.New("invalid color")

// RGB packs three channel values.
func RGB(r, g, b uint8) Packed {
	return Packed(r)<<16 | Packed(g)<<8 | Packed(b)
}

// Gray packs v into all three channels.
func Gray(v uint8) Packed {
	return RGB(v, v, v)
}

// Pack converts a stored pixel to its packed color, reading the channels
// in reverse storage order.
func Pack(p Pixel) Packed {
	return RGB(p[Red], p[Green], p[Blue])
}

// Unpack is the inverse of Pack.
func Unpack(c Packed) Pixel {
	return Pixel{uint8(c), uint8(c >> 8), uint8(c >> 16)}
}

// Channels returns the red, green and blue components of c.
func (c Packed) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Luminance is the rounded unweighted mean of the three channels.
func Luminance(p Pixel) uint8 {
	sum := int(p[0]) + int(p[1]) + int(p[2])
	// sum/3 never lands on .5, so adding 1 before dividing rounds to nearest.
	return uint8((sum + 1) / 3)
}

// CheckDimensions verifies that a buffer of length n describes a
// width x height grid.
func CheckDimensions(n, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	// n/height avoids the overflow of width*height for huge dimensions.
	if n%height != 0 || n/height != width {
		return fmt.Errorf("%w: buffer has %d samples for a %dx%d grid",
			ErrInvalidDimensions, n, width, height)
	}
	return nil
}

// Valid reports whether c fits in 24 bits.
func (c Packed) Valid() bool {
	return c <= White
}

// PackAll packs every pixel of img.
func PackAll(img []Pixel) []Packed {
	out := make([]Packed, len(img))
	for i, p := range img {
		out[i] = Pack(p)
	}
	return out
}
