package spectral

import (
	"math"

	"github.com/ironsheep/kayn/internal/pixel"
)

// Result pairs a displayable rendition of a spectrum with its raw
// coefficients.
type Result struct {
	// Visual is Normalize(Coefficients), one packed gray per coefficient.
	Visual []pixel.Packed

	// Coefficients are the raw DCT coefficients, row-major, DC first.
	Coefficients []float32
}

// basis returns the n×n orthonormal DCT-II matrix with
// basis[k*n+i] = c(k) * cos(π k (2i+1) / 2n).
func basis(n int) []float64 {
	b := make([]float64, n*n)
	c0 := math.Sqrt(1 / float64(n))
	ck := math.Sqrt(2 / float64(n))
	for k := 0; k < n; k++ {
		scale := ck
		if k == 0 {
			scale = c0
		}
		for i := 0; i < n; i++ {
			b[k*n+i] = scale * math.Cos(math.Pi*float64(k)*float64(2*i+1)/(2*float64(n)))
		}
	}
	return b
}

// DCT computes the 2D DCT-II of the luminance plane of img.
//
// Parameters:
//   - img: Row-major pixels, len(img) must equal width*height.
//   - width, height: Image dimensions.
//   - opts: Optional WithWorkers.
//
// Returns:
//   - *Result: Raw coefficients and their normalized rendition.
//   - error: pixel.ErrInvalidDimensions or ErrWorkerFailed.
func DCT(img []pixel.Pixel, width, height int, opts ...Option) (*Result, error) {
	if err := pixel.CheckDimensions(len(img), width, height); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	plane := make([]float64, len(img))
	for i, p := range img {
		plane[i] = float64(pixel.Luminance(p))
	}

	bw, bh := basis(width), basis(height)

	// Row pass: tmp(u, y) = Σx f(x, y) bw(u, x).
	tmp := make([]float64, len(plane))
	err := parallelRows(height, o.workers, func(start, end int) {
		for y := start; y < end; y++ {
			src := plane[y*width : (y+1)*width]
			dst := tmp[y*width : (y+1)*width]
			for u := 0; u < width; u++ {
				row := bw[u*width : (u+1)*width]
				var sum float64
				for x, f := range src {
					sum += f * row[x]
				}
				dst[u] = sum
			}
		}
	})
	if err != nil {
		return nil, err
	}

	// Column pass: F(u, v) = Σy tmp(u, y) bh(v, y).
	coeffs := make([]float32, len(plane))
	err = parallelRows(height, o.workers, func(start, end int) {
		for v := start; v < end; v++ {
			col := bh[v*height : (v+1)*height]
			dst := coeffs[v*width : (v+1)*width]
			for u := 0; u < width; u++ {
				var sum float64
				for y, b := range col {
					sum += tmp[y*width+u] * b
				}
				dst[u] = float32(sum)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Visual:       Normalize(coeffs),
		Coefficients: coeffs,
	}, nil
}

// IDCT reconstructs a gray image from DCT-II coefficients.
//
// Samples are rounded to the nearest integer, clamped to [0,255] and packed
// as gray. The partitioning matches DCT.
func IDCT(coeffs []float32, width, height int, opts ...Option) ([]pixel.Packed, error) {
	if err := pixel.CheckDimensions(len(coeffs), width, height); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	bw, bh := basis(width), basis(height)

	// Column pass: tmp(u, y) = Σv F(u, v) bh(v, y).
	tmp := make([]float64, len(coeffs))
	err := parallelRows(height, o.workers, func(start, end int) {
		for y := start; y < end; y++ {
			dst := tmp[y*width : (y+1)*width]
			for v := 0; v < height; v++ {
				b := bh[v*height+y]
				src := coeffs[v*width : (v+1)*width]
				for u, c := range src {
					dst[u] += float64(c) * b
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}

	// Row pass: f(x, y) = Σu tmp(u, y) bw(u, x).
	out := make([]pixel.Packed, len(coeffs))
	err = parallelRows(height, o.workers, func(start, end int) {
		for y := start; y < end; y++ {
			src := tmp[y*width : (y+1)*width]
			for x := 0; x < width; x++ {
				var sum float64
				for u, t := range src {
					sum += t * bw[u*width+x]
				}
				out[y*width+x] = pixel.Gray(clampRound(sum))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func clampRound(v float64) uint8 {
	v = math.Round(v)
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
