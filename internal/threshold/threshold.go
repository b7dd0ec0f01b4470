package threshold

import (
	"github.com/ironsheep/kayn/internal/pixel"
)

// Histogram counts pixels per luminance level.
func Histogram(img []pixel.Pixel) [256]int {
	var hist [256]int
	for _, p := range img {
		hist[pixel.Luminance(p)]++
	}
	return hist
}

// Otsu computes a threshold that maximizes the inter-class variance of the
// luminance histogram.
//
// Parameters:
//   - img: Row-major pixels, len(img) must equal width*height.
//   - width, height: Image dimensions.
//
// Returns:
//   - uint8: The threshold t. Class 0 holds luminance <= t.
//   - error: pixel.ErrInvalidDimensions on a buffer/dimension mismatch.
//
// # Algorithm
//
// For every candidate t in [0,255] the between-class variance is
//
//	σ²(t) = w0(t) * w1(t) * (μ0(t) - μ1(t))²
//
// with w0, w1 the class probabilities and μ0, μ1 the class means. Candidates
// with an empty class score 0. When several consecutive candidates share the
// maximum, which happens when no pixels fall between two modes, the midpoint
// of the first such run is returned; an isolated maximum is returned as is,
// so separate ties resolve to the smallest t.
//
// # Degenerate Images
//
// A single-valued image has no candidate with a positive score and yields 0.
func Otsu(img []pixel.Pixel, width, height int) (uint8, error) {
	if err := pixel.CheckDimensions(len(img), width, height); err != nil {
		return 0, err
	}
	return otsu(Histogram(img), len(img)), nil
}

func otsu(hist [256]int, total int) uint8 {
	var sumAll float64
	for level, n := range hist {
		sumAll += float64(level * n)
	}

	var best, sum0 float64
	var count0 int
	first, last := -1, -1
	for t := 0; t < 256; t++ {
		count0 += hist[t]
		sum0 += float64(t * hist[t])
		count1 := total - count0
		if count0 == 0 || count1 == 0 {
			continue
		}

		w0 := float64(count0) / float64(total)
		w1 := float64(count1) / float64(total)
		mu0 := sum0 / float64(count0)
		mu1 := (sumAll - sum0) / float64(count1)
		variance := w0 * w1 * (mu0 - mu1) * (mu0 - mu1)

		switch {
		case variance > best:
			best, first, last = variance, t, t
		case variance == best && last == t-1 && first >= 0:
			last = t
		}
	}

	if first < 0 {
		return 0
	}
	return uint8((first + last) / 2)
}

// Binarize maps pixels above threshold to white and the rest to black.
func Binarize(img []pixel.Pixel, threshold uint8) []pixel.Packed {
	out := make([]pixel.Packed, len(img))
	for i, p := range img {
		if pixel.Luminance(p) > threshold {
			out[i] = pixel.White
		} else {
			out[i] = pixel.Black
		}
	}
	return out
}

// Limiarize keeps pixels above threshold and blacks out the rest.
func Limiarize(img []pixel.Pixel, threshold uint8) []pixel.Packed {
	out := make([]pixel.Packed, len(img))
	for i, p := range img {
		if pixel.Luminance(p) > threshold {
			out[i] = pixel.Pack(p)
		}
	}
	return out
}

// Auto binarizes img with its Otsu threshold and returns both.
func Auto(img []pixel.Pixel, width, height int) ([]pixel.Packed, uint8, error) {
	t, err := Otsu(img, width, height)
	if err != nil {
		return nil, 0, err
	}
	return Binarize(img, t), t, nil
}
