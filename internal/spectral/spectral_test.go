package spectral

import (
	"math"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/kayn/internal/pixel"
)

// createRandomImage returns a seeded random image. Gray images carry the
// same value in every channel.
func createRandomImage(width, height int, seed int64, gray bool) []pixel.Pixel {
	rng := rand.New(rand.NewSource(seed))
	img := make([]pixel.Pixel, width*height)
	for i := range img {
		if gray {
			v := uint8(rng.Intn(256))
			img[i] = pixel.Pixel{v, v, v}
			continue
		}
		img[i] = pixel.Pixel{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
	}
	return img
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestDCT_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		workers int
		gray    bool
	}{
		{"1x1", 1, 1, 4, true},
		{"8x8 single worker", 8, 8, 1, true},
		{"7x5 odd", 7, 5, 3, true},
		{"33x17 many workers", 33, 17, 8, true},
		{"64x48 default workers", 64, 48, 0, true},
		{"color 16x9", 16, 9, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createRandomImage(tt.w, tt.h, int64(tt.w*1000+tt.h), tt.gray)

			res, err := DCT(img, tt.w, tt.h, WithWorkers(tt.workers))
			require.NoError(t, err)
			require.Len(t, res.Coefficients, tt.w*tt.h)
			require.Len(t, res.Visual, tt.w*tt.h)

			out, err := IDCT(res.Coefficients, tt.w, tt.h, WithWorkers(tt.workers))
			require.NoError(t, err)
			require.Len(t, out, tt.w*tt.h)

			for i, p := range img {
				want := pixel.Luminance(p)
				r, g, b := out[i].Channels()
				require.Equal(t, r, g)
				require.Equal(t, g, b)
				if d := absDiff(r, want); d > 1 {
					t.Fatalf("pixel %d: got %d, want %d±1", i, r, want)
				}
			}
		})
	}
}

func TestDCT_ConstantImage(t *testing.T) {
	const w, h, c = 6, 4, 50
	img := make([]pixel.Pixel, w*h)
	for i := range img {
		img[i] = pixel.Pixel{c, c, c}
	}

	res, err := DCT(img, w, h)
	require.NoError(t, err)

	// Each 1D pass scales a constant by sqrt(N), so F(0,0) = c*sqrt(W*H).
	assert.InDelta(t, c*math.Sqrt(w*h), float64(res.Coefficients[0]), 1e-3)
	for i, v := range res.Coefficients[1:] {
		assert.InDelta(t, 0, float64(v), 1e-3, "coefficient %d", i+1)
	}
}

func TestDCT_WorkerCountDoesNotChangeResult(t *testing.T) {
	img := createRandomImage(23, 19, 7, false)

	ref, err := DCT(img, 23, 19, WithWorkers(1))
	require.NoError(t, err)

	for _, n := range []int{2, 5, 19, 64} {
		res, err := DCT(img, 23, 19, WithWorkers(n))
		require.NoError(t, err)
		assert.Equal(t, ref.Coefficients, res.Coefficients, "workers=%d", n)
	}
}

func TestDCT_InvalidDimensions(t *testing.T) {
	_, err := DCT(make([]pixel.Pixel, 5), 2, 2)
	assert.ErrorIs(t, err, pixel.ErrInvalidDimensions)

	_, err = IDCT(make([]float32, 5), 2, 2)
	assert.ErrorIs(t, err, pixel.ErrInvalidDimensions)

	_, err = DCT(nil, 0, 0)
	assert.ErrorIs(t, err, pixel.ErrInvalidDimensions)

	// 2^32 x 2^32 wraps to zero samples.
	_, err = DCT(nil, 1<<32, 1<<32)
	assert.ErrorIs(t, err, pixel.ErrInvalidDimensions)

	_, err = IDCT(nil, 1<<32, 1<<32)
	assert.ErrorIs(t, err, pixel.ErrInvalidDimensions)

	_, err = LowPass(nil, 1<<32, 1<<32, 1)
	assert.ErrorIs(t, err, pixel.ErrInvalidDimensions)
}

func TestLowPass_DCOnlyReconstructsMean(t *testing.T) {
	const w, h = 8, 6
	img := createRandomImage(w, h, 3, true)

	var sum float64
	for _, p := range img {
		sum += float64(pixel.Luminance(p))
	}
	mean := sum / float64(w*h)

	res, err := DCT(img, w, h)
	require.NoError(t, err)

	low, err := LowPass(res.Coefficients, w, h, 0)
	require.NoError(t, err)
	for i, c := range low.Coefficients[1:] {
		require.Zero(t, c, "coefficient %d", i+1)
	}

	out, err := IDCT(low.Coefficients, w, h)
	require.NoError(t, err)

	first := out[0]
	r, _, _ := first.Channels()
	assert.InDelta(t, mean, float64(r), 1)
	for _, c := range out {
		assert.Equal(t, first, c)
	}
}

func TestMasks(t *testing.T) {
	const w, h = 5, 4
	coeffs := make([]float32, w*h)
	for i := range coeffs {
		coeffs[i] = float32(i + 1)
	}
	orig := append([]float32(nil), coeffs...)

	t.Run("lowpass radius 1 keeps DC and direct neighbours", func(t *testing.T) {
		res, err := LowPass(coeffs, w, h, 1)
		require.NoError(t, err)
		for v := 0; v < h; v++ {
			for u := 0; u < w; u++ {
				i := v*w + u
				if u*u+v*v <= 1 {
					assert.Equal(t, coeffs[i], res.Coefficients[i])
				} else {
					assert.Zero(t, res.Coefficients[i])
				}
			}
		}
	})

	t.Run("highpass radius 0 removes only DC", func(t *testing.T) {
		res, err := HighPass(coeffs, w, h, 0)
		require.NoError(t, err)
		assert.Zero(t, res.Coefficients[0])
		assert.Equal(t, coeffs[1:], res.Coefficients[1:])
	})

	t.Run("low and high are complementary", func(t *testing.T) {
		for _, r := range []int{0, 1, 2, 3, 4} {
			low, err := LowPass(coeffs, w, h, r)
			require.NoError(t, err)
			high, err := HighPass(coeffs, w, h, r)
			require.NoError(t, err)
			for i := range coeffs {
				assert.Equal(t, coeffs[i], low.Coefficients[i]+high.Coefficients[i])
			}
		}
	})

	t.Run("large radius covers the grid", func(t *testing.T) {
		high, err := HighPass(coeffs, w, h, 5)
		require.NoError(t, err)
		for _, c := range high.Coefficients {
			assert.Zero(t, c)
		}
		low, err := LowPass(coeffs, w, h, 100)
		require.NoError(t, err)
		assert.Equal(t, coeffs, low.Coefficients)
	})

	t.Run("input is not modified", func(t *testing.T) {
		_, err := LowPass(coeffs, w, h, 0)
		require.NoError(t, err)
		_, err = HighPass(coeffs, w, h, 2)
		require.NoError(t, err)
		assert.Equal(t, orig, coeffs)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := LowPass(coeffs, w, h, -1)
		assert.ErrorIs(t, err, ErrInvalidRadius)
		_, err = HighPass(coeffs, 3, 3, 1)
		assert.ErrorIs(t, err, pixel.ErrInvalidDimensions)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("min-max rescale", func(t *testing.T) {
		got := Normalize([]float32{-100, 0, 100, 300})
		assert.Equal(t, []pixel.Packed{
			pixel.Gray(0),
			pixel.Gray(64), // 100/400*255 = 63.75
			pixel.Gray(128),
			pixel.Gray(255),
		}, got)
	})

	t.Run("flat spectrum maps to black", func(t *testing.T) {
		got := Normalize([]float32{42, 42, 42})
		assert.Equal(t, []pixel.Packed{pixel.Black, pixel.Black, pixel.Black}, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})
}

func TestParallelRows(t *testing.T) {
	t.Run("covers every row once", func(t *testing.T) {
		for _, workers := range []int{1, 3, 7, 100} {
			seen := make([]int32, 50)
			err := parallelRows(len(seen), workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&seen[i], 1)
				}
			})
			require.NoError(t, err)
			for i, n := range seen {
				assert.Equal(t, int32(1), n, "row %d with %d workers", i, workers)
			}
		}
	})

	t.Run("worker panic aborts the call", func(t *testing.T) {
		err := parallelRows(10, 4, func(start, end int) {
			if start == 0 {
				panic("boom")
			}
		})
		assert.ErrorIs(t, err, ErrWorkerFailed)
	})

	t.Run("no rows", func(t *testing.T) {
		called := false
		err := parallelRows(0, 4, func(start, end int) { called = true })
		assert.NoError(t, err)
		assert.False(t, called)
	})
}
