package prommetrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymat"
	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "lazymat")
	require.NoError(t, err)

	lazymat.Configure(lazymat.WithMetricsCollector(c), lazymat.WithSMPThreshold(0), lazymat.WithMaxWorkers(2))
	t.Cleanup(func() { lazymat.Configure() })

	m := matrix.NewUniform(4, 64, 2, model.RowMajor)
	lazymat.Reduce[int](m, functor.NewFunc(func(a, b int) int { return a + b }))

	v := matrix.NewDenseVector[int](64, model.RowVector)
	require.NoError(t, lazymat.Assign[int](v, lazymat.ReduceColumns[int](m, functor.Add[int]{})))
	require.Error(t, lazymat.DivAssign[int](v, lazymat.ReduceColumns[int](matrix.NewUniform(4, 64, 0, model.RowMajor), functor.Add[int]{})))
	require.NoError(t, lazymat.SMPAddAssign[int](context.Background(), v, lazymat.ReduceColumns[int](m, functor.Max[int]{})))

	assert.InDelta(t, 256, promtest.ToFloat64(c.reduceElements.WithLabelValues("scalar")), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(c.assignErrors.WithLabelValues("div")), 0)
	assert.Equal(t, 1, promtest.CollectAndCount(c.smpChunks))
	assert.Equal(t, 3, promtest.CollectAndCount(c.assignLatency))
	assert.Equal(t, []int{10}, v.Values()[:1])
}

func TestNewDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustNew(reg, "lazymat")

	_, err := New(reg, "lazymat")
	require.Error(t, err)
	assert.Panics(t, func() { MustNew(reg, "lazymat") })
}
