package smp

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Scratch(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2, ScratchLimitBytes: 100})

	require.NoError(t, c.AcquireScratch(context.Background(), 60))
	assert.Equal(t, int64(60), c.ScratchUsage())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := c.AcquireScratch(ctx, 50)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseScratch(60)
	assert.Equal(t, int64(0), c.ScratchUsage())
	require.NoError(t, c.AcquireScratch(context.Background(), 100))
}

func TestController_UnlimitedScratch(t *testing.T) {
	c := NewController(Config{})
	assert.Positive(t, c.MaxWorkers())

	require.NoError(t, c.AcquireScratch(context.Background(), 1<<30))
	assert.Equal(t, int64(1<<30), c.ScratchUsage())
	c.ReleaseScratch(1 << 30)
	assert.Equal(t, int64(0), c.ScratchUsage())
}

func TestController_Workers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})

	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.Equal(t, int64(1), c.BusyWorkers())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireWorker(ctx), context.DeadlineExceeded)

	c.ReleaseWorker()
	assert.Equal(t, int64(0), c.BusyWorkers())
}

func TestExecutor_For(t *testing.T) {
	e := NewExecutor(NewController(Config{MaxWorkers: 4}), 10)

	assert.Equal(t, 0, e.Chunks(0))
	assert.Equal(t, 1, e.Chunks(7))
	assert.Equal(t, 3, e.Chunks(25))
	assert.Equal(t, 4, e.Chunks(1000))

	var (
		mu      sync.Mutex
		covered = make([]int, 1000)
	)
	err := e.For(context.Background(), len(covered), func(lo, hi int) error {
		mu.Lock()
		defer mu.Unlock()
		for i := lo; i < hi; i++ {
			covered[i]++
		}
		return nil
	})
	require.NoError(t, err)
	for i, n := range covered {
		assert.Equal(t, 1, n, "index %d", i)
	}
}

func TestExecutor_ForError(t *testing.T) {
	e := NewExecutor(NewController(Config{MaxWorkers: 4}), 1)
	boom := errors.New("boom")

	var calls atomic.Int32
	err := e.For(context.Background(), 8, func(lo, _ int) error {
		calls.Add(1)
		if lo == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Positive(t, calls.Load())
}

func TestExecutor_ForCanceled(t *testing.T) {
	e := NewExecutor(NewController(Config{MaxWorkers: 2}), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.For(ctx, 16, func(int, int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
