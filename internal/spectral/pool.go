package spectral

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerFailed is returned when a transform worker panics.
var ErrWorkerFailed = errors.New("spectral worker failed")

type options struct {
	workers int
}

// Option configures a single transform call.
type Option func(*options)

// WithWorkers sets the number of workers used by DCT and IDCT.
// Values <= 0 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// parallelRows runs fn over [0, rows) split into at most workers contiguous
// blocks of ceil(rows/workers) rows and waits for all of them.
func parallelRows(rows, workers int, fn func(start, end int)) error {
	if rows <= 0 {
		return nil
	}
	workers = max(1, min(workers, rows))
	chunk := (rows + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < rows; start += chunk {
		end := min(start+chunk, rows)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: rows [%d,%d): %v", ErrWorkerFailed, start, end, r)
				}
			}()
			fn(start, end)
			return nil
		})
	}
	return g.Wait()
}
