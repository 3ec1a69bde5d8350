package smp

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Config holds the limits of a Controller.
type Config struct {
	// MaxWorkers is the maximum number of chunks processed concurrently
	// across all parallel assignments sharing the controller.
	// If 0, defaults to GOMAXPROCS.
	MaxWorkers int64

	// ScratchLimitBytes is the hard limit for temporaries materialized
	// before a parallel assignment. If 0, usage is only tracked.
	ScratchLimitBytes int64
}

// Controller is the worker and scratch memory budget shared by parallel
// assignments.
type Controller struct {
	cfg Config

	workers *semaphore.Weighted

	scratchSem  *semaphore.Weighted // nil if unlimited
	scratchUsed atomic.Int64
	busy        atomic.Int64
}

// NewController creates a new controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = int64(runtime.GOMAXPROCS(0))
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.ScratchLimitBytes > 0 {
		c.scratchSem = semaphore.NewWeighted(cfg.ScratchLimitBytes)
	}

	return c
}

// MaxWorkers returns the worker limit.
func (c *Controller) MaxWorkers() int {
	return int(c.cfg.MaxWorkers)
}

// AcquireWorker reserves a worker slot, blocking until one is free or ctx
// is canceled.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if err := c.workers.Acquire(ctx, 1); err != nil {
		return err
	}
	c.busy.Add(1)
	return nil
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	c.busy.Add(-1)
	c.workers.Release(1)
}

// BusyWorkers returns the number of reserved worker slots.
func (c *Controller) BusyWorkers() int64 {
	return c.busy.Load()
}

// AcquireScratch reserves bytes of scratch memory.
// If a hard limit is configured and usage would exceed it, this blocks
// until memory is available or ctx is canceled.
func (c *Controller) AcquireScratch(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.scratchSem != nil {
		if err := c.scratchSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.scratchUsed.Add(bytes)
	return nil
}

// ReleaseScratch releases reserved scratch memory.
func (c *Controller) ReleaseScratch(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.scratchSem != nil {
		c.scratchSem.Release(bytes)
	}
	c.scratchUsed.Add(-bytes)
}

// ScratchUsage returns the current scratch usage in bytes.
func (c *Controller) ScratchUsage() int64 {
	return c.scratchUsed.Load()
}
