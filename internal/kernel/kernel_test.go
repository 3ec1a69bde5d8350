package kernel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
	"github.com/hupe1980/lazymat/testutil"
)

// counting wraps an operation and records how often it is applied.
type counting[T model.Number] struct {
	functor.Op[T]
	calls int
}

func (c *counting[T]) Apply(a, b T) T {
	c.calls++
	return c.Op.Apply(a, b)
}

var shapes = [][2]int{
	{0, 0}, {0, 3}, {3, 0}, {1, 1}, {1, 7}, {2, 2}, {3, 3}, {4, 4},
	{5, 3}, {6, 6}, {7, 13}, {9, 17}, {16, 8}, {31, 5}, {33, 64},
}

var laneCounts = []int{2, 4, 8, 16}

func TestReduceScalarEdges(t *testing.T) {
	op := &counting[int]{Op: functor.Add[int]{}}

	assert.Equal(t, 0, ReduceScalar[int](matrix.NewDense[int](0, 5), op))
	assert.Equal(t, 0, ReduceScalar[int](matrix.NewDense[int](5, 0), op))

	one, err := matrix.NewDenseFrom([][]int{{42}})
	require.NoError(t, err)
	assert.Equal(t, 42, ReduceScalar[int](one, op))
	assert.Equal(t, 0, op.calls)

	m, err := matrix.NewDenseFrom([][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, 10, ReduceScalar[int](m, functor.Add[int]{}))
	assert.Equal(t, 24, ReduceScalar[int](m, functor.Mult[int]{}))
}

func TestReduceScalarGrouping(t *testing.T) {
	// A non-associative operation exposes the fold tree: the first row,
	// then rows (1,2) combined as a pair, then the odd row 3.
	concat := functor.NewFunc(func(a, b int) int { return a*10 + b })
	m, err := matrix.NewDenseFrom([][]int{{1}, {2}, {3}, {4}})
	require.NoError(t, err)

	assert.Equal(t, 334, ReduceScalar[int](m, concat))
}

func TestReduceScalarSparse(t *testing.T) {
	rng := testutil.NewRNG(7)
	s := testutil.Sparse[int](rng, 9, 11, 30, 1, 5, model.RowMajor)

	assert.Equal(t, testutil.Fold[int](s, add), ReduceScalar[int](s, functor.Add[int]{}))
}

func add(a, b int) int { return a + b }

func TestReduceBatchedMatchesScalar(t *testing.T) {
	defer simd.Override(simd.AVX512)()

	rng := testutil.NewRNG(4711)
	ops := []functor.BatchOp[int]{functor.Add[int]{}, functor.Mult[int]{}, functor.Max[int]{}, functor.Min[int]{}}

	for _, shape := range shapes {
		for _, padded := range []bool{false, true} {
			var opts []matrix.DenseOption
			if padded {
				opts = append(opts, matrix.WithPadding())
			}
			m := testutil.Dense[int](rng, shape[0], shape[1], -4, 5, opts...)

			for _, op := range ops {
				want := ReduceScalar[int](m, op)
				for _, lanes := range laneCounts {
					name := fmt.Sprintf("%dx%d/padded=%t/%s/lanes=%d", shape[0], shape[1], padded, functor.KindOf[int](op), lanes)
					t.Run(name, func(t *testing.T) {
						assert.Equal(t, want, ReduceBatched[int](m, op, lanes))
						if functor.KindOf[int](op) == functor.KindAdd {
							assert.Equal(t, want, SumBatched[int](m, lanes))
						}
					})
				}
			}
		}
	}
}

func TestReduceBatchedFloat(t *testing.T) {
	defer simd.Override(simd.AVX2)()

	rng := testutil.NewRNG(99)
	for _, shape := range shapes {
		m := testutil.Dense[float64](rng, shape[0], shape[1], -1, 1, matrix.WithPadding())
		want := testutil.Fold[float64](m, func(a, b float64) float64 { return a + b })
		eps := testutil.Epsilon[float64](shape[0] * shape[1])

		for _, lanes := range laneCounts {
			assert.InDelta(t, want, ReduceBatched[float64](m, functor.Add[float64]{}, lanes), eps)
			assert.InDelta(t, want, SumBatched[float64](m, lanes), eps)
		}
	}
}

func TestReduceBatchedColumnMajor(t *testing.T) {
	rng := testutil.NewRNG(3)
	m := testutil.Dense[int](rng, 13, 7, -3, 4, matrix.WithColumnMajor(), matrix.WithPadding())
	src, ok := matrix.Trans[int](m).(BatchSource[int])
	require.True(t, ok)

	want := testutil.Fold[int](m, add)
	assert.Equal(t, want, ReduceScalar[int](src, functor.Add[int]{}))
	assert.Equal(t, want, ReduceBatched[int](src, functor.Add[int]{}, 4))
	assert.Equal(t, want, SumBatched[int](src, 4))
}

func TestReduceBatchedUniform(t *testing.T) {
	u := matrix.NewUniform(5, 9, 2, model.RowMajor)
	assert.Equal(t, 90, ReduceBatched[int](u, functor.Add[int]{}, 4))
	assert.Equal(t, 90, SumBatched[int](u, 4))
	assert.Equal(t, 1<<45, ReduceBatched[int](u, functor.Mult[int]{}, 8))
}

func TestReduceBatchedNarrow(t *testing.T) {
	// Fewer columns than lanes takes the row-by-row fold.
	m, err := matrix.NewDenseFrom([][]int{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	assert.Equal(t, 720, ReduceBatched[int](m, functor.Mult[int]{}, 8))
	assert.Equal(t, 21, SumBatched[int](m, 8))
}

func TestReduceBatchedDoesNotModifySource(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]int{{1, 2, 3, 4}, {5, 6, 7, 8}})
	require.NoError(t, err)

	assert.Equal(t, 36, ReduceBatched[int](m, functor.Add[int]{}, 4))
	assert.Equal(t, []int{1, 2, 3, 4}, m.Line(0))
	assert.Equal(t, []int{5, 6, 7, 8}, m.Line(1))
}
