package lazymat

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

func TestConfigureDefaults(t *testing.T) {
	t.Setenv(EnvSMPWorkers, "")
	Configure()
	t.Cleanup(func() { Configure() })

	cfg := CurrentConfig()
	assert.True(t, cfg.SMP)
	assert.Equal(t, DefaultSMPThreshold, cfg.SMPThreshold)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.MaxWorkers)
}

func TestConfigureOptions(t *testing.T) {
	Configure(
		WithSMP(false),
		WithSMPThreshold(10),
		WithSMPThreshold(-1),
		WithMaxWorkers(3),
		WithLogger(nil),
		WithMetricsCollector(nil),
		nil,
	)
	t.Cleanup(func() { Configure() })

	cfg := CurrentConfig()
	assert.False(t, cfg.SMP)
	assert.Equal(t, 10, cfg.SMPThreshold)
	assert.Equal(t, 3, cfg.MaxWorkers)
	assert.IsType(t, NoopMetricsCollector{}, current().metricsCollector)
}

func TestConfigureEnvWorkers(t *testing.T) {
	t.Setenv(EnvSMPWorkers, "5")
	Configure()
	t.Cleanup(func() { Configure() })
	assert.Equal(t, 5, CurrentConfig().MaxWorkers)

	Configure(WithMaxWorkers(2))
	assert.Equal(t, 2, CurrentConfig().MaxWorkers)

	t.Setenv(EnvSMPWorkers, "bogus")
	Configure()
	assert.Equal(t, runtime.GOMAXPROCS(0), CurrentConfig().MaxWorkers)
}

func TestLoggerRecordsDecisions(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Configure(WithLogger(logger))
	t.Cleanup(func() { Configure() })

	m, err := matrix.NewDenseFrom([][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)

	Sum[int](m)
	v := matrix.NewDenseVector[int](2, model.RowVector)
	require.NoError(t, Assign[int](v, ReduceColumns[int](m, functor.Add[int]{})))
	require.Error(t, Assign[int](matrix.NewDenseVector[int](3, model.RowVector), ReduceColumns[int](m, functor.Add[int]{})))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "reduce completed", rec["msg"])
	assert.EqualValues(t, 2, rec["rows"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "assign completed", rec["msg"])
	assert.Equal(t, "rows", rec["path"])
	assert.Equal(t, "assign", rec["mode"])
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, nil)).WithShape(2, 3).WithBackend(BackendSum).WithMode(ModeDiv)

	logger.LogAssign(t.Context(), ModeDiv, PathEvaluate, 3, ErrDivideByZero)

	out := buf.String()
	assert.Contains(t, out, "assign failed")
	assert.Contains(t, out, "rows=2")
	assert.Contains(t, out, "backend=sum")
	assert.Contains(t, out, "path=evaluate")
	assert.Contains(t, out, "division by zero")

	buf.Reset()
	logger.LogReduce(t.Context(), BackendScalar, 1, 1, 0)
	assert.Empty(t, buf.String())

	NoopLogger().LogSMP(t.Context(), ModeAdd, 4, ErrDivideByZero)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "scalar", BackendScalar.String())
	assert.Equal(t, "batched", BackendBatched.String())
	assert.Equal(t, "sum", BackendSum.String())
	assert.Equal(t, "Backend(9)", Backend(9).String())

	for p, want := range map[Path]string{
		PathReset: "reset", PathNoop: "noop", PathRows: "rows", PathEvaluate: "evaluate",
		PathElements: "elements", PathOperand: "operand", PathParallel: "parallel", Path(42): "Path(42)",
	} {
		assert.Equal(t, want, p.String())
	}
	assert.True(t, PathOperand.Evaluates())
	assert.False(t, PathRows.Evaluates())
}

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	mc.RecordReduce(BackendBatched, 3, 4, 10)
	mc.RecordReduce(BackendScalar, 1, 2, 30)
	mc.RecordAssign(ModeAdd, PathParallel, 4, 8, nil)
	mc.RecordSMP(4, 5)

	stats := mc.Stats()
	assert.Equal(t, int64(2), stats.ReduceCount)
	assert.Equal(t, int64(1), stats.ReduceBatched)
	assert.Equal(t, int64(1), stats.ReduceScalar)
	assert.Equal(t, int64(14), stats.ReduceElements)
	assert.Equal(t, int64(20), stats.ReduceAvgNanos)
	assert.Equal(t, int64(8), stats.AssignAvgNanos)
	assert.Equal(t, int64(4), stats.SMPChunks)
}
