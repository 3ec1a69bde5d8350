package matrix

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/model"
)

func TestNewDenseFrom(t *testing.T) {
	m, err := NewDenseFrom([][]int{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Columns())
	assert.Equal(t, 6, m.At(1, 2))
	assert.Equal(t, model.RowMajor, m.Order())
	assert.Equal(t, model.Dense, m.Kind())

	_, err = NewDenseFrom([][]int{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestDenseColumnMajor(t *testing.T) {
	m, err := NewDenseFrom([][]int{{1, 2, 3}, {4, 5, 6}}, WithColumnMajor())
	require.NoError(t, err)
	assert.Equal(t, model.ColumnMajor, m.Order())
	assert.Equal(t, []int{1, 4}, m.Line(0))
	assert.Equal(t, []int{3, 6}, m.Line(2))
	assert.Equal(t, []int{2, 5}, m.Load(0, 1, 2))
	assert.Equal(t, 5, m.At(1, 1))
}

func TestDensePadding(t *testing.T) {
	defer simd.Override(simd.AVX2)()

	m := NewDense[float64](3, 5, WithPadding())
	require.NoError(t, m.Set(0, 4, 7))
	assert.True(t, m.IsPadded())
	assert.True(t, m.IsAligned())
	assert.Len(t, m.Line(1), 5)
	// Loads may run into the zero padding.
	assert.Equal(t, []float64{7, 0, 0, 0}, m.Load(0, 4, 4))

	unpadded := NewDense[float64](3, 5)
	assert.False(t, unpadded.IsPadded())
}

func TestDensePaddingWiderISA(t *testing.T) {
	restore := simd.Override(simd.Generic)
	m := NewDense[float32](2, 3, WithPadding())
	restore()

	defer simd.Override(simd.AVX512)()
	assert.False(t, m.IsPadded(), "padding for a narrower register does not count")
}

func TestDenseChecked(t *testing.T) {
	m := NewDense[int](2, 2)
	require.NoError(t, m.Set(1, 1, 9))

	v, err := m.CheckedAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	_, err = m.CheckedAt(2, 0)
	var cellErr *CellError
	require.ErrorAs(t, err, &cellErr)
	assert.Equal(t, 2, cellErr.Row)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.ErrorIs(t, m.Set(0, -1, 1), ErrOutOfRange)
}

func TestDenseEmptyAndNegative(t *testing.T) {
	m := NewDense[int](0, 4)
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 4, m.Columns())

	assert.Panics(t, func() { NewDense[int](-1, 2) })
}

func TestDenseAliasAndClone(t *testing.T) {
	m, err := NewDenseFrom([][]int{{1, 2}, {3, 4}})
	require.NoError(t, err)

	assert.True(t, m.IsAliased(unsafe.Pointer(m)))
	assert.True(t, m.IsAliased(unsafe.Pointer(&m.Line(1)[1])))

	c := m.Clone()
	assert.False(t, m.IsAliased(unsafe.Pointer(&c.Line(0)[0])))
	require.NoError(t, c.Set(0, 0, 42))
	assert.Equal(t, 1, m.At(0, 0))
	assert.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

func TestDenseSMPProperties(t *testing.T) {
	small := NewDense[float64](4, 4)
	assert.True(t, small.SMPAssignable())
	assert.False(t, small.CanSMPAssign())
	assert.False(t, small.RequiresEvaluation())

	large := NewDense[float64](48, 48)
	assert.True(t, large.CanSMPAssign())
}

func TestUniform(t *testing.T) {
	u := NewUniform(3, 4, 2.5, model.RowMajor)
	assert.Equal(t, 2.5, u.At(2, 3))
	assert.Equal(t, model.Uniform, u.Kind())
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, u.Load(0, 0, 4))
	assert.False(t, u.IsPadded())
	assert.False(t, u.SMPAssignable())
	assert.False(t, u.CanSMPAssign())
}
