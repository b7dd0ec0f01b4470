// Package spectral implements the frequency-domain side of the engine: a
// multithreaded orthonormal 2D DCT and its inverse, ideal circular low- and
// high-pass masks, and min-max normalization of coefficients for display.
//
// # Transform
//
// The forward transform is the separable DCT-II
//
//	F(u,v) = c(u) c(v) Σx Σy f(x,y) cos(π u (2x+1) / 2W) cos(π v (2y+1) / 2H)
//	c(0) = sqrt(1/N), c(k>0) = sqrt(2/N)
//
// computed as a row pass followed by a column pass over the luminance plane
// of the input. The inverse applies the DCT-III with the same scaling, so a
// forward/inverse round trip reproduces the luminance within rounding.
//
// # Concurrency
//
// Each pass is split into contiguous blocks of output rows, one per worker,
// and every worker writes only its own rows. The pass returns once every
// worker has finished; nothing is locked and no goroutine outlives the
// call. A panicking worker is reported as ErrWorkerFailed and the call
// returns no output.
//
// The worker count defaults to runtime.GOMAXPROCS(0) and can be set per call
// with WithWorkers. It never affects the numeric result.
//
// # Spectra
//
// Coefficients are float32, row-major, with the DC term at index 0. Masks
// and normalization never modify the slice they are given.
package spectral
