package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymat/model"
)

func TestDenseVectorApply(t *testing.T) {
	tests := []struct {
		mode AssignMode
		want []float64
	}{
		{ModeAssign, []float64{2, 4, 8}},
		{ModeAdd, []float64{3, 6, 11}},
		{ModeSub, []float64{-1, -2, -5}},
		{ModeMult, []float64{2, 8, 24}},
		{ModeDiv, []float64{0.5, 0.5, 0.375}},
	}
	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			v := NewDenseVectorFrom([]float64{1, 2, 3}, model.ColumnVector)
			src := NewDenseVectorFrom([]float64{2, 4, 8}, model.ColumnVector)
			require.NoError(t, v.Apply(tc.mode, src))
			assert.Equal(t, tc.want, v.Values())

			// The same through a non-contiguous source.
			w := NewDenseVectorFrom([]float64{1, 2, 3}, model.ColumnVector)
			require.NoError(t, w.Apply(tc.mode, TransVector[float64](src)))
			assert.Equal(t, tc.want, w.Values())
		})
	}
}

func TestDenseVectorSizeMismatch(t *testing.T) {
	v := NewDenseVector[int](3, model.ColumnVector)
	err := v.Apply(ModeAssign, NewDenseVector[int](2, model.ColumnVector))

	var sizeErr *SizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 3, sizeErr.Expected)
	assert.Equal(t, 2, sizeErr.Actual)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestDenseVectorIntegerDivideByZero(t *testing.T) {
	v := NewDenseVectorFrom([]int{4, 6, 8}, model.ColumnVector)
	err := v.Apply(ModeDiv, NewDenseVectorFrom([]int{2, 0, 2}, model.ColumnVector))
	assert.ErrorIs(t, err, ErrDivideByZero)
	assert.Equal(t, []int{4, 6, 8}, v.Values(), "target is left untouched")
}

func TestDenseVectorApplyRange(t *testing.T) {
	v := NewDenseVectorFrom([]int{1, 1, 1, 1}, model.RowVector)
	src := NewDenseVectorFrom([]int{5, 6, 7, 8}, model.RowVector)
	require.NoError(t, v.ApplyRange(ModeAdd, 1, 3, src))
	assert.Equal(t, []int{1, 7, 8, 1}, v.Values())

	assert.ErrorIs(t, v.ApplyRange(ModeAdd, 3, 5, src), ErrOutOfRange)
}

func TestDenseVectorMapAndReset(t *testing.T) {
	v := NewDenseVectorFrom([]int{1, 5, 3}, model.ColumnVector)
	require.NoError(t, v.Map(NewDenseVectorFrom([]int{4, 2, 3}, model.ColumnVector), func(a, b int) int {
		return max(a, b)
	}))
	assert.Equal(t, []int{4, 5, 3}, v.Values())
	assert.Equal(t, "(4 5 3)", v.String())

	v.Reset()
	assert.Equal(t, []int{0, 0, 0}, v.Values())

	_, err := v.CheckedAt(3)
	var idxErr *IndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, "invalid vector access index: 3 (size 3)", idxErr.Error())
}

func TestSparseVectorApply(t *testing.T) {
	v := NewSparseVector[int](4, model.RowVector)
	require.NoError(t, v.Set(1, 3))

	src := NewDenseVectorFrom([]int{0, 2, 5, 0}, model.RowVector)
	require.NoError(t, v.Apply(ModeAdd, src))
	assert.Equal(t, 2, v.NonZeros())
	assert.Equal(t, 5, v.At(1))
	assert.Equal(t, 5, v.At(2))

	require.NoError(t, v.Apply(ModeSub, NewDenseVectorFrom([]int{0, 5, 0, 0}, model.RowVector)))
	assert.Equal(t, 1, v.NonZeros())

	require.NoError(t, v.Apply(ModeMult, NewDenseVectorFrom([]int{9, 9, 2, 9}, model.RowVector)))
	assert.Equal(t, 10, v.At(2))
	assert.Equal(t, 0, v.At(0))

	err := v.Apply(ModeDiv, NewDenseVectorFrom([]int{1, 1, 0, 1}, model.RowVector))
	assert.ErrorIs(t, err, ErrDivideByZero)

	require.NoError(t, v.Apply(ModeAssign, src))
	var idx []int
	v.ForEach(func(i, _ int) { idx = append(idx, i) })
	assert.Equal(t, []int{1, 2}, idx)

	v.Reset()
	assert.Equal(t, 0, v.NonZeros())
}
