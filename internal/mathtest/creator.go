package mathtest

import (
	"fmt"

	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
	"github.com/hupe1980/lazymat/testutil"
)

// Tag selects the storage order of a created operand: 'a' operands are
// row-major, 'b' operands column-major.
type Tag byte

const (
	TagA Tag = 'a'
	TagB Tag = 'b'
)

func (t Tag) order() model.Order {
	if t == TagB {
		return model.ColumnMajor
	}
	return model.RowMajor
}

// Creator builds operands of one storage flavor and shape.
type Creator[T model.Number] struct {
	name       string
	flavor     byte
	tag        Tag
	rows, cols int
	create     func(r *testutil.RNG) matrix.Matrix[T]
}

// Name returns the short name of the operand flavor, e.g. "M3x3a" or "MCb".
func (c Creator[T]) Name() string { return c.name }

// Rows returns the row count of created operands.
func (c Creator[T]) Rows() int { return c.rows }

// Columns returns the column count of created operands.
func (c Creator[T]) Columns() int { return c.cols }

// Create returns a new operand filled from r.
func (c Creator[T]) Create(r *testutil.RNG) matrix.Matrix[T] { return c.create(r) }

// Static creates padded dense operands of a fixed shape.
func Static[T model.Number](rows, cols int, tag Tag) Creator[T] {
	return Creator[T]{
		name:   fmt.Sprintf("M%dx%d%c", rows, cols, tag),
		flavor: 'S',
		tag:    tag,
		rows:   rows,
		cols:   cols,
		create: func(r *testutil.RNG) matrix.Matrix[T] {
			lo, hi := valueRange[T]()
			return testutil.Dense(r, rows, cols, lo, hi, matrix.WithOrder(tag.order()), matrix.WithPadding())
		},
	}
}

// Dynamic creates unpadded dense operands.
func Dynamic[T model.Number](rows, cols int, tag Tag) Creator[T] {
	return Creator[T]{
		name:   fmt.Sprintf("MD%c", tag),
		flavor: 'D',
		tag:    tag,
		rows:   rows,
		cols:   cols,
		create: func(r *testutil.RNG) matrix.Matrix[T] {
			lo, hi := valueRange[T]()
			return testutil.Dense(r, rows, cols, lo, hi, matrix.WithOrder(tag.order()))
		},
	}
}

// Compressed creates sparse operands holding at most nonZeros elements.
func Compressed[T model.Number](rows, cols, nonZeros int, tag Tag) Creator[T] {
	return Creator[T]{
		name:   fmt.Sprintf("MC%c", tag),
		flavor: 'C',
		tag:    tag,
		rows:   rows,
		cols:   cols,
		create: func(r *testutil.RNG) matrix.Matrix[T] {
			lo, hi := valueRange[T]()
			return testutil.Sparse(r, rows, cols, nonZeros, lo, hi, tag.order())
		},
	}
}

// Uniform creates operands whose elements all share one random value.
func Uniform[T model.Number](rows, cols int, tag Tag) Creator[T] {
	return Creator[T]{
		name:   fmt.Sprintf("MU%c", tag),
		flavor: 'U',
		tag:    tag,
		rows:   rows,
		cols:   cols,
		create: func(r *testutil.RNG) matrix.Matrix[T] {
			lo, hi := valueRange[T]()
			v := make([]T, 1)
			testutil.Fill(r, v, lo, hi)
			return matrix.NewUniform(rows, cols, v[0], tag.order())
		},
	}
}

// Resize returns a creator of the same flavor with another shape. Static
// creators keep their shape.
func (c Creator[T]) Resize(rows, cols int) Creator[T] {
	switch c.flavor {
	case 'D':
		return Dynamic[T](rows, cols, c.tag)
	case 'C':
		return Compressed[T](rows, cols, (rows*cols+2)/3, c.tag)
	case 'U':
		return Uniform[T](rows, cols, c.tag)
	default:
		return c
	}
}

// valueRange returns the half-open range element values are drawn from.
// Floating-point values are non-negative so that sums do not cancel.
func valueRange[T model.Number]() (lo, hi T) {
	if !model.IsInteger[T]() {
		return 0, 1
	}
	var x T
	if x--; x > 0 {
		return 0, 10
	}
	neg := -5
	return T(neg), 6
}
