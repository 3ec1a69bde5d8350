package lazymat

import (
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/hupe1980/lazymat/internal/smp"
)

// DefaultSMPThreshold is the result size above which an axis reduction
// is eligible for parallel assignment even when its operand is not.
const DefaultSMPThreshold = 330

// EnvSMPWorkers caps the number of parallel assignment workers when set
// to a positive integer.
const EnvSMPWorkers = "LAZYMAT_SMP_WORKERS"

// minChunk is the smallest number of result elements a parallel
// assignment hands to one worker.
const minChunk = 16

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	smpThreshold     int
	maxWorkers       int
	smp              bool
}

// Option configures the package-wide evaluation settings.
type Option func(*options)

// WithLogger configures structured logging of dispatch decisions.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	lazymat.Configure(lazymat.WithLogger(lazymat.NewJSONLogger(slog.LevelDebug)))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// reductions and assignments. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lazymat.BasicMetricsCollector{}
//	lazymat.Configure(lazymat.WithMetricsCollector(metrics))
//	// ... reduce ...
//	stats := metrics.Stats()
//	fmt.Printf("Reductions: %d, batched: %d\n", stats.ReduceCount, stats.ReduceBatched)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithSMPThreshold sets the result size above which an axis reduction can
// be assigned in parallel. Negative values are ignored.
func WithSMPThreshold(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.smpThreshold = n
		}
	}
}

// WithMaxWorkers caps the number of parallel assignment workers.
// If n <= 0, GOMAXPROCS is used.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.maxWorkers = n
	}
}

// WithSMP enables or disables parallel assignment. When disabled, the SMP
// variants behave like their serial counterparts.
func WithSMP(enabled bool) Option {
	return func(o *options) {
		o.smp = enabled
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		smpThreshold:     DefaultSMPThreshold,
		smp:              true,
	}
	if v, err := strconv.Atoi(os.Getenv(EnvSMPWorkers)); err == nil && v > 0 {
		o.maxWorkers = v
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Config is a snapshot of the active settings.
type Config struct {
	SMP          bool
	SMPThreshold int
	MaxWorkers   int
}

type environment struct {
	options
	exec *smp.Executor
	ctrl *smp.Controller
}

var active atomic.Pointer[environment]

func init() {
	Configure()
}

// Configure replaces the package-wide settings. Options not given take
// their defaults. Reductions already being consumed keep the settings
// they started with.
func Configure(optFns ...Option) {
	o := applyOptions(optFns)
	ctrl := smp.NewController(smp.Config{MaxWorkers: int64(o.maxWorkers)})
	active.Store(&environment{
		options: o,
		ctrl:    ctrl,
		exec:    smp.NewExecutor(ctrl, minChunk),
	})
}

// CurrentConfig returns the active settings.
func CurrentConfig() Config {
	env := active.Load()
	return Config{
		SMP:          env.smp,
		SMPThreshold: env.smpThreshold,
		MaxWorkers:   env.ctrl.MaxWorkers(),
	}
}

func current() *environment {
	return active.Load()
}
