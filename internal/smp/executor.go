package smp

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Executor partitions index ranges into chunks and processes them on a
// bounded number of goroutines.
type Executor struct {
	ctrl  *Controller
	grain int
}

// NewExecutor returns an executor drawing workers from ctrl. Chunks hold at
// least grain indices.
func NewExecutor(ctrl *Controller, grain int) *Executor {
	if grain < 1 {
		grain = 1
	}
	return &Executor{ctrl: ctrl, grain: grain}
}

// Chunks returns the number of chunks For splits n indices into.
func (e *Executor) Chunks(n int) int {
	if n <= 0 {
		return 0
	}
	chunks := min(e.ctrl.MaxWorkers(), (n+e.grain-1)/e.grain)
	return max(chunks, 1)
}

// For calls fn for disjoint ranges [lo, hi) covering [0, n). It returns the
// first error reported by fn, or ctx's error if ctx is canceled first.
func (e *Executor) For(ctx context.Context, n int, fn func(lo, hi int) error) error {
	chunks := e.Chunks(n)
	if chunks == 0 {
		return nil
	}
	if chunks == 1 {
		return fn(0, n)
	}

	size := (n + chunks - 1) / chunks

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.ctrl.MaxWorkers())

	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			if err := e.ctrl.AcquireWorker(gctx); err != nil {
				return err
			}
			defer e.ctrl.ReleaseWorker()
			return fn(lo, hi)
		})
	}

	return g.Wait()
}
