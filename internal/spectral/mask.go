package spectral

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/kayn/internal/pixel"
)

// ErrInvalidRadius is returned for a negative mask radius.
var ErrInvalidRadius = errors.New("invalid radius")

// LowPass keeps the coefficients within radius of the DC term and zeroes the
// rest.
//
// Coefficient (u,v) is inside the circle when u²+v² <= radius². A radius of
// 0 keeps only the DC term; a radius of at least max(width, height) keeps
// the whole grid.
func LowPass(coeffs []float32, width, height, radius int) (*Result, error) {
	return applyMask(coeffs, width, height, radius, true)
}

// HighPass is the complement of LowPass: it zeroes the coefficients within
// radius of the DC term. A radius of at least max(width, height) zeroes
// every coefficient.
func HighPass(coeffs []float32, width, height, radius int) (*Result, error) {
	return applyMask(coeffs, width, height, radius, false)
}

func applyMask(coeffs []float32, width, height, radius int, keepInside bool) (*Result, error) {
	if err := pixel.CheckDimensions(len(coeffs), width, height); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}

	all := radius >= max(width, height)
	r2 := radius * radius

	out := make([]float32, len(coeffs))
	for v := 0; v < height; v++ {
		for u := 0; u < width; u++ {
			inside := all || u*u+v*v <= r2
			if inside == keepInside {
				out[v*width+u] = coeffs[v*width+u]
			}
		}
	}
	return &Result{
		Visual:       Normalize(out),
		Coefficients: out,
	}, nil
}

// Normalize linearly maps coefficients onto [0,255] so the smallest becomes
// black and the largest white. A spectrum whose coefficients are all equal
// maps to black.
func Normalize(coeffs []float32) []pixel.Packed {
	out := make([]pixel.Packed, len(coeffs))
	if len(coeffs) == 0 {
		return out
	}

	lo, hi := coeffs[0], coeffs[0]
	for _, c := range coeffs[1:] {
		lo = min(lo, c)
		hi = max(hi, c)
	}
	if hi == lo {
		return out
	}

	span := float64(hi) - float64(lo)
	for i, c := range coeffs {
		out[i] = pixel.Gray(uint8(math.Round((float64(c) - float64(lo)) / span * 255)))
	}
	return out
}
