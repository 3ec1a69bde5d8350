package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/lazymat"
	"github.com/hupe1980/lazymat/internal/mathtest"
	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/model"
	"github.com/hupe1980/lazymat/prommetrics"
)

type options struct {
	seed         int64
	types        []string
	suites       []string
	maxDim       int
	large        bool
	isa          string
	smpThreshold int
	workers      int
	failFast     bool
	report       string
	metrics      string
	logLevel     string
	progress     time.Duration
}

var errFailed = errors.New("mathtest: tests failed")

// NewMathTestCommand returns the root command of the harness. Test output
// goes to out, log records to errOut.
func NewMathTestCommand(out, errOut io.Writer) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:           "mathtest [flags]",
		Short:         "Run the lazymat reduction regression harness",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o, out, errOut)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.StringSliceVar(&o.types, "types", []string{"int", "float64"}, "element types: int, int32, uint8, float32, float64")
	f.StringSliceVar(&o.suites, "suites", []string{"operand", "elementwise", "mult"}, "suites to run")
	f.IntVar(&o.maxDim, "max-dim", mathtest.DefaultSuiteConfig.MaxDim, "largest swept row and column count")
	f.BoolVar(&o.large, "large", mathtest.DefaultSuiteConfig.Large, "add large operands")
	f.StringVar(&o.isa, "simd", "", "force an instruction set: generic, neon, sve2, avx2, avx512")
	f.IntVar(&o.smpThreshold, "smp-threshold", lazymat.DefaultSMPThreshold, "result size above which assignments run in parallel")
	f.IntVar(&o.workers, "workers", 0, "parallel assignment workers (0 uses GOMAXPROCS)")
	f.BoolVar(&o.failFast, "fail-fast", false, "stop at the first failure")
	f.StringVar(&o.report, "report", "", "write a JSON report to this file (zstd-compressed for .zst)")
	f.StringVar(&o.metrics, "metrics", "", "write Prometheus metrics in text format to this file")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.DurationVar(&o.progress, "progress", 5*time.Second, "interval between progress records")

	cmd.AddCommand(newReportCommand(out))
	return cmd
}

func newReportCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "report <file>",
		Short: "Summarize a report written by --report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			report, err := readReport(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "seed %d: %d tests, %d failed\n", report.Seed, len(report.Results), report.Failed)
			for _, res := range report.Results {
				if res.Error != "" {
					fmt.Fprintf(out, "\n%s (%s, %s, %dx%d):\n%s\n", res.Name, res.Description, res.Type, res.Rows, res.Columns, res.Error)
				}
			}
			if report.Failed > 0 {
				return errFailed
			}
			return nil
		},
	}
}

func run(ctx context.Context, o *options, out, errOut io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	if o.isa != "" {
		isa, ok := simd.ParseISA(o.isa)
		if !ok {
			return fmt.Errorf("unknown instruction set %q", o.isa)
		}
		if !simd.Detected().Supports(isa) {
			// The kernels are portable; only the tiling width is forced.
			logger.WarnContext(ctx, "instruction set not supported by this CPU", "simd", isa.String())
		}
		defer simd.Override(isa)()
	}

	reg := prometheus.NewRegistry()
	collector, err := prommetrics.New(reg, "lazymat")
	if err != nil {
		return err
	}
	lazymat.Configure(
		lazymat.WithSMPThreshold(o.smpThreshold),
		lazymat.WithMaxWorkers(o.workers),
		lazymat.WithMetricsCollector(collector),
		lazymat.WithLogger(lazymat.NewLogger(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelWarn}))),
	)
	defer lazymat.Configure()

	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}
	runner := mathtest.NewRunner(o.seed,
		mathtest.WithOutput(out),
		mathtest.WithLogger(logger),
		mathtest.WithProgressInterval(o.progress),
		mathtest.WithFailFast(o.failFast),
	)

	logger.InfoContext(ctx, "starting", "seed", o.seed, "simd", simd.ActiveISA().String(), "workers", lazymat.CurrentConfig().MaxWorkers)

	cfg := mathtest.SuiteConfig{MaxDim: o.maxDim, Large: o.large}
	var failed error
	for _, typ := range o.types {
		err := runType(ctx, runner, strings.TrimSpace(typ), o.suites, cfg)
		if err != nil && !isTestFailure(err) {
			return err
		}
		if err != nil {
			failed = errFailed
			if o.failFast {
				break
			}
		}
	}

	report := runner.Report()
	if o.report != "" {
		if err := writeReport(o.report, report); err != nil {
			return err
		}
	}
	if o.metrics != "" {
		if err := prometheus.WriteToTextfile(o.metrics, reg); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "finished", "tests", len(report.Results), "failed", report.Failed)
	return failed
}

func isTestFailure(err error) bool {
	var te *mathtest.Error
	return errors.As(err, &te)
}

func runType(ctx context.Context, r *mathtest.Runner, typ string, suites []string, cfg mathtest.SuiteConfig) error {
	switch typ {
	case "int":
		return runSuites[int](ctx, r, suites, cfg)
	case "int32":
		return runSuites[int32](ctx, r, suites, cfg)
	case "uint8":
		return runSuites[uint8](ctx, r, suites, cfg)
	case "float32":
		return runSuites[float32](ctx, r, suites, cfg)
	case "float64":
		return runSuites[float64](ctx, r, suites, cfg)
	default:
		return fmt.Errorf("unsupported element type %q", typ)
	}
}

func runSuites[T model.Number](ctx context.Context, r *mathtest.Runner, suites []string, cfg mathtest.SuiteConfig) error {
	var tests []mathtest.Test[T]
	for _, s := range suites {
		switch strings.TrimSpace(s) {
		case "operand":
			tests = append(tests, mathtest.OperandSuite[T](cfg)...)
		case "elementwise":
			tests = append(tests, mathtest.ElementwiseSuite[T](cfg)...)
		case "mult":
			tests = append(tests, mathtest.MultSuite[T](cfg)...)
		default:
			return fmt.Errorf("unknown suite %q", s)
		}
	}
	return mathtest.Run(ctx, r, tests)
}
