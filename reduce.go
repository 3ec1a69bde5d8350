package lazymat

import (
	"context"
	"time"

	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/internal/kernel"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

// Reduce folds every element of m with op and returns the result.
//
// Matrices without elements yield the zero value and a 1×1 matrix yields
// its element without invoking op. Column-major matrices are reduced
// through their row-major transpose. The fold order is unspecified: op must
// be associative and commutative for the result to be independent of the
// selected backend.
func Reduce[T model.Number](m matrix.Matrix[T], op functor.Op[T]) T {
	var zero T
	if m == nil || m.Rows() == 0 || m.Columns() == 0 {
		return zero
	}
	if m.Order() == model.ColumnMajor {
		m = matrix.Trans(m)
	}

	start := time.Now()
	src := matrix.Composite(m)
	backend := selectBackend(src, op)

	var redux T
	switch backend {
	case BackendSum:
		redux = kernel.SumBatched(src.(kernel.BatchSource[T]), lanes[T]())
	case BackendBatched:
		redux = kernel.ReduceBatched(src.(kernel.BatchSource[T]), op.(functor.BatchOp[T]), lanes[T]())
	default:
		redux = kernel.ReduceScalar[T](src, op)
	}

	env := current()
	elapsed := time.Since(start)
	env.metricsCollector.RecordReduce(backend, src.Rows(), src.Columns(), elapsed)
	env.logger.LogReduce(context.Background(), backend, src.Rows(), src.Columns(), elapsed)

	return redux
}

// Sum returns the sum of all elements of m.
func Sum[T model.Number](m matrix.Matrix[T]) T {
	return Reduce[T](m, functor.Add[T]{})
}

// Prod returns the product of all elements of m.
func Prod[T model.Number](m matrix.Matrix[T]) T {
	return Reduce[T](m, functor.Mult[T]{})
}

// ReduceColumns returns the lazy column-wise (axis 0) reduction of m:
// element j is the fold of column j.
func ReduceColumns[T model.Number](m matrix.Matrix[T], op functor.Op[T]) *ColumnReduction[T] {
	return &ColumnReduction[T]{newReduction(m, op, 0)}
}

// ReduceRows returns the lazy row-wise (axis 1) reduction of m: element i
// is the fold of row i.
func ReduceRows[T model.Number](m matrix.Matrix[T], op functor.Op[T]) *RowReduction[T] {
	return &RowReduction[T]{newReduction(m, op, 1)}
}

// ReduceAxis returns the lazy reduction of m along axis A:
//
//	cols := lazymat.ReduceAxis[lazymat.Axis0, float64](m, functor.Max[float64]{})
func ReduceAxis[A Axis, T model.Number](m matrix.Matrix[T], op functor.Op[T]) Reduction[T] {
	var a A
	if a.index() == 0 {
		return ReduceColumns(m, op)
	}
	return ReduceRows(m, op)
}

// SumAxis returns the lazy sum of m along axis A.
func SumAxis[A Axis, T model.Number](m matrix.Matrix[T]) Reduction[T] {
	return ReduceAxis[A](m, functor.Op[T](functor.Add[T]{}))
}

// ProdAxis returns the lazy product of m along axis A.
func ProdAxis[A Axis, T model.Number](m matrix.Matrix[T]) Reduction[T] {
	return ReduceAxis[A](m, functor.Op[T](functor.Mult[T]{}))
}
