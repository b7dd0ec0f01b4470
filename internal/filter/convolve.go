package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/kayn/internal/pixel"
)

// ErrInvalidKernel is returned for kernels that are not a perfect square and
// for windows whose excluded border consumes the whole image.
var ErrInvalidKernel = errors.New("invalid kernel")

// window is the valid output region of a side×side filter.
type window struct {
	side, half int
	x0, x1     int
	y0, y1     int
}

func newWindow(side, width, height int) (window, error) {
	half := side / 2
	w := window{
		side: side,
		half: half,
		x0:   half,
		x1:   width - half,
		y0:   half,
		y1:   height - half,
	}
	if w.x1 <= w.x0 || w.y1 <= w.y0 {
		return window{}, fmt.Errorf("%w: %dx%d window leaves no valid region in a %dx%d image",
			ErrInvalidKernel, side, side, width, height)
	}
	return w, nil
}

// size is the number of output pixels.
func (w window) size() int {
	return (w.x1 - w.x0) * (w.y1 - w.y0)
}

// OutputSize returns the dimensions of the valid region left by a
// side×side window over a width×height image. Either value is <= 0 when
// the window does not fit.
func OutputSize(side, width, height int) (int, int) {
	half := side / 2
	return width - 2*half, height - 2*half
}

// offset returns the buffer index of window cell i around (x, y).
func (w window) offset(i, x, y, width int) int {
	return (y+i/w.side-w.half)*width + x + i%w.side - w.half
}

// KernelSide returns the side of a square kernel with n weights.
func KernelSide(n int) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: empty kernel", ErrInvalidKernel)
	}
	side := int(math.Round(math.Sqrt(float64(n))))
	if side*side != n {
		return 0, fmt.Errorf("%w: %d weights is not a perfect square", ErrInvalidKernel, n)
	}
	return side, nil
}

// Convolve applies an N×N kernel to every pixel of the valid region.
//
// Parameters:
//   - img: Row-major pixels, len(img) must equal width*height.
//   - kernel: N*N weights in row-major order. Weight i covers window cell
//     (i%N, i/N) relative to the window's top-left corner.
//   - width, height: Image dimensions.
//
// Returns:
//   - []pixel.Packed: The filtered valid region, row-major.
//   - error: ErrInvalidKernel or pixel.ErrInvalidDimensions.
//
// # Algorithm
//
// Each output channel is the weighted sum Σ kernel[i]*sample[i] over the
// window, with stored channels visited from index 2 down to 0. Sums are
// accumulated in float64 and truncated toward zero when packed; values
// outside [0,255] saturate.
func Convolve(img []pixel.Pixel, kernel []float32, width, height int) ([]pixel.Packed, error) {
	if err := pixel.CheckDimensions(len(img), width, height); err != nil {
		return nil, err
	}
	side, err := KernelSide(len(kernel))
	if err != nil {
		return nil, err
	}
	w, err := newWindow(side, width, height)
	if err != nil {
		return nil, err
	}

	out := make([]pixel.Packed, 0, w.size())
	for y := w.y0; y < w.y1; y++ {
		for x := w.x0; x < w.x1; x++ {
			var acc [3]float64
			for i, k := range kernel {
				src := img[w.offset(i, x, y, width)]
				for ch := range acc {
					acc[ch] += float64(src[2-ch]) * float64(k)
				}
			}
			out = append(out, pixel.RGB(saturate(acc[0]), saturate(acc[1]), saturate(acc[2])))
		}
	}
	return out, nil
}

// saturate truncates v toward zero and clamps it to a channel value.
func saturate(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
