package filter

import (
	"math"

	"github.com/ironsheep/kayn/internal/pixel"
)

// Sobel computes the gradient magnitude of the luminance plane.
//
// The 3x3 SobelX and SobelY kernels are applied to pixel.Luminance of each
// window, and the magnitude sqrt(gx²+gy²) is truncated, saturated to 255 and
// packed as gray. The output covers the same valid region as a 3x3 Convolve.
func Sobel(img []pixel.Pixel, width, height int) ([]pixel.Packed, error) {
	if err := pixel.CheckDimensions(len(img), width, height); err != nil {
		return nil, err
	}
	w, err := newWindow(3, width, height)
	if err != nil {
		return nil, err
	}

	lum := make([]float64, len(img))
	for i, p := range img {
		lum[i] = float64(pixel.Luminance(p))
	}
	kx, ky := SobelX(), SobelY()

	out := make([]pixel.Packed, 0, w.size())
	for y := w.y0; y < w.y1; y++ {
		for x := w.x0; x < w.x1; x++ {
			var gx, gy float64
			for i := range kx {
				v := lum[w.offset(i, x, y, width)]
				gx += v * float64(kx[i])
				gy += v * float64(ky[i])
			}
			out = append(out, pixel.Gray(saturate(math.Sqrt(gx*gx+gy*gy))))
		}
	}
	return out, nil
}
