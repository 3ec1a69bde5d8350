package mathtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/lazymat/model"
	"github.com/hupe1980/lazymat/testutil"
)

// Result is the outcome of one test.
type Result struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Rows        int           `json:"rows"`
	Columns     int           `json:"columns"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
}

// Report collects the results of a run.
type Report struct {
	Seed    int64    `json:"seed"`
	Results []Result `json:"results"`
	Failed  int      `json:"failed"`
}

// Runner executes tests, prints their progress and collects a report.
type Runner struct {
	out      io.Writer
	logger   *slog.Logger
	rng      *testutil.RNG
	progress rate.Sometimes
	failFast bool
	report   Report
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput sets the writer test names and error diagnostics are printed to.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the logger receiving progress records.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithProgressInterval throttles progress records to one per interval.
func WithProgressInterval(d time.Duration) RunnerOption {
	return func(r *Runner) { r.progress = rate.Sometimes{First: 1, Interval: d} }
}

// WithFailFast stops a run at its first failure.
func WithFailFast(enabled bool) RunnerOption {
	return func(r *Runner) { r.failFast = enabled }
}

// NewRunner returns a runner drawing operands from a generator seeded
// with seed.
func NewRunner(seed int64, optFns ...RunnerOption) *Runner {
	r := &Runner{
		out:      io.Discard,
		logger:   slog.New(slog.DiscardHandler),
		rng:      testutil.NewRNG(seed),
		progress: rate.Sometimes{First: 1, Interval: time.Second},
	}
	for _, fn := range optFns {
		fn(r)
	}
	r.report.Seed = seed
	return r
}

// Report returns the results collected so far.
func (r *Runner) Report() Report {
	return r.report
}

// Run executes tests on r. It prints "Running '<name>'..." before the
// first test of every name and returns the first failure, or ctx's error
// if ctx is canceled. Unless fail-fast is enabled, every test runs and
// the first failure is returned at the end.
func Run[T model.Number](ctx context.Context, r *Runner, tests []Test[T]) error {
	var first error
	last := ""
	typ := fmt.Sprintf("%T", *new(T))

	for i, t := range tests {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := t.Name()
		if name != last {
			fmt.Fprintf(r.out, "   Running '%s'...\n", name)
			last = name
		}

		start := time.Now()
		err := t.Run(ctx, r.rng)
		res := Result{
			Name:        name,
			Description: t.Description(),
			Type:        typ,
			Rows:        t.Left.Rows(),
			Columns:     t.Left.Columns(),
			Duration:    time.Since(start),
		}

		if err != nil {
			res.Error = err.Error()
			r.report.Failed++
			fmt.Fprintf(r.out, "\n\n ERROR DETECTED during %s:\n%v\n", t.Description(), err)
			r.logger.ErrorContext(ctx, "test failed", "test", name, "type", typ, "error", err)
			if first == nil {
				first = err
			}
		}
		r.report.Results = append(r.report.Results, res)

		if first != nil && r.failFast {
			return first
		}

		r.progress.Do(func() {
			r.logger.InfoContext(ctx, "progress", "type", typ, "done", i+1, "total", len(tests), "failed", r.report.Failed)
		})
	}
	return first
}
