package lazymat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
	"github.com/hupe1980/lazymat/testutil"
)

func smpFunc[T model.Number](mode Mode) func(context.Context, matrix.Target[T], Reduction[T]) error {
	switch mode {
	case ModeAdd:
		return SMPAddAssign[T]
	case ModeSub:
		return SMPSubAssign[T]
	case ModeMult:
		return SMPMultAssign[T]
	case ModeDiv:
		return SMPDivAssign[T]
	default:
		return SMPAssign[T]
	}
}

func TestSMPAssignMatchesSerial(t *testing.T) {
	mc := withMetrics(t, WithSMPThreshold(0), WithMaxWorkers(4))
	rng := testutil.NewRNG(21)

	operands := map[string]matrix.Matrix[int]{
		"row major":    testutil.Dense[int](rng, 70, 90, 1, 4),
		"column major": testutil.Dense[int](rng, 70, 90, 1, 4, matrix.WithColumnMajor()),
	}
	ops := []functor.Op[int]{functor.Add[int]{}, functor.Max[int]{}}

	calls := int64(0)
	for name, m := range operands {
		for _, op := range ops {
			for _, mode := range modes {
				for _, r := range []Reduction[int]{ReduceColumns(m, op), ReduceRows(m, op)} {
					target := testutil.Values[int](rng, 1, r.Size(), 1, 1000)[0]
					serial := matrix.NewDenseVectorFrom(target, r.Orientation())
					parallel := matrix.NewDenseVectorFrom(target, r.Orientation())

					require.NoError(t, consumeFunc[int](mode)(serial, r))
					require.NoError(t, smpFunc[int](mode)(context.Background(), parallel, r))
					assert.Equal(t, serial.Values(), parallel.Values(), "%s %s", name, mode)
					calls++
				}
			}
		}
	}

	stats := mc.Stats()
	assert.Equal(t, calls, stats.SMPCount)
	assert.Greater(t, stats.SMPChunks, calls)
}

func TestSMPAssignFallback(t *testing.T) {
	m := dense(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	r := ReduceColumns[int](m, functor.Add[int]{})

	t.Run("disabled", func(t *testing.T) {
		mc := withMetrics(t, WithSMP(false), WithSMPThreshold(0))
		v := matrix.NewDenseVector[int](3, model.RowVector)

		require.NoError(t, SMPAssign[int](context.Background(), v, r))
		assert.Equal(t, []int{5, 7, 9}, v.Values())
		assert.Zero(t, mc.Stats().SMPCount)
		assert.Equal(t, int64(1), mc.Stats().AssignCount)
	})

	t.Run("below threshold", func(t *testing.T) {
		mc := withMetrics(t)
		v := matrix.NewDenseVectorFrom([]int{1, 1, 1}, model.RowVector)

		require.NoError(t, SMPAddAssign[int](context.Background(), v, r))
		assert.Equal(t, []int{6, 8, 10}, v.Values())
		assert.Zero(t, mc.Stats().SMPCount)
	})

	t.Run("sparse target", func(t *testing.T) {
		mc := withMetrics(t, WithSMPThreshold(0))
		v := matrix.NewSparseVector[int](3, model.RowVector)

		require.NoError(t, SMPAssign[int](context.Background(), v, r))
		assert.Equal(t, []int{5, 7, 9}, testutil.VectorValues[int](v))
		assert.Zero(t, mc.Stats().SMPCount)
		assert.Equal(t, int64(1), mc.Stats().AssignEvaluated)
	})

	t.Run("aliased target", func(t *testing.T) {
		mc := withMetrics(t, WithSMPThreshold(0))
		v := aliasTarget[int]{matrix.NewDenseVector[int](3, model.RowVector), ptr(m.Line(0))}

		require.NoError(t, SMPAssign[int](context.Background(), v, r))
		assert.Equal(t, []int{5, 7, 9}, v.Values())
		assert.Zero(t, mc.Stats().SMPCount)
	})
}

func TestSMPAssignEvaluatesOperand(t *testing.T) {
	mc := withMetrics(t, WithSMPThreshold(0), WithMaxWorkers(2))
	rng := testutil.NewRNG(22)

	u := matrix.NewUniform(40, 8, 2, model.RowMajor)
	d := testutil.Dense[int](rng, 8, 50, -3, 4)
	prod, err := matrix.Mul[int](u, d)
	require.NoError(t, err)
	require.False(t, prod.SMPAssignable())
	require.True(t, prod.RequiresEvaluation())

	for _, r := range []Reduction[int]{
		ReduceColumns[int](prod, functor.Add[int]{}),
		ReduceRows[int](prod, functor.Max[int]{}),
	} {
		serial := matrix.NewDenseVector[int](r.Size(), r.Orientation())
		parallel := matrix.NewDenseVector[int](r.Size(), r.Orientation())

		require.NoError(t, Assign[int](serial, r))
		require.NoError(t, SMPAssign[int](context.Background(), parallel, r))
		assert.Equal(t, serial.Values(), parallel.Values())
	}

	assert.Equal(t, int64(2), mc.Stats().SMPCount)
	assert.Zero(t, current().ctrl.ScratchUsage())
}

func TestSMPAssignCanceled(t *testing.T) {
	withMetrics(t, WithSMPThreshold(0), WithMaxWorkers(4))
	m := matrix.NewUniform(3, 256, 1, model.RowMajor)
	v := matrix.NewDenseVector[int](256, model.RowVector)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := SMPAssign[int](ctx, v, ReduceColumns[int](m, functor.Add[int]{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSMPAssignErrors(t *testing.T) {
	withMetrics(t, WithSMPThreshold(0), WithMaxWorkers(4))
	ctx := context.Background()

	m := matrix.NewUniform(2, 64, 1, model.RowMajor)
	r := ReduceColumns[int](m, functor.Add[int]{})

	err := SMPAssign[int](ctx, matrix.NewDenseVector[int](63, model.RowVector), r)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.ErrorIs(t, SMPAssign[int](ctx, nil, r), ErrNilMatrix)
	assert.ErrorIs(t, SMPAssign[int](ctx, matrix.NewDenseVector[int](64, model.RowVector), nil), ErrNilMatrix)

	zero := matrix.NewUniform(2, 64, 0, model.RowMajor)
	v := matrix.NewDenseVector[int](64, model.RowVector)
	err = SMPDivAssign[int](ctx, v, ReduceColumns[int](zero, functor.Add[int]{}))
	assert.ErrorIs(t, err, ErrDivideByZero)
}
