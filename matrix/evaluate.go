package matrix

import "github.com/hupe1980/lazymat/model"

type evaluator[T model.Number] interface {
	evaluateInto(d *Dense[T])
}

// Evaluate materializes m into a new padded Dense matrix with the same
// storage order. Sparse matrices and products are evaluated without going
// through element access for every cell.
func Evaluate[T model.Number](m Matrix[T]) *Dense[T] {
	d := NewDense[T](m.Rows(), m.Columns(), WithOrder(m.Order()), WithPadding())

	switch x := m.(type) {
	case *Sparse[T]:
		x.ForEachNonZero(d.set)
		return d
	case evaluator[T]:
		x.evaluateInto(d)
		return d
	}

	if m.Order() == model.RowMajor {
		for i := 0; i < d.rows; i++ {
			for j := 0; j < d.cols; j++ {
				d.set(i, j, m.At(i, j))
			}
		}
		return d
	}
	for j := 0; j < d.cols; j++ {
		for i := 0; i < d.rows; i++ {
			d.set(i, j, m.At(i, j))
		}
	}
	return d
}
