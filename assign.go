package lazymat

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

// Assign stores the reduction r in target.
func Assign[T model.Number](target matrix.Target[T], r Reduction[T]) error {
	return consumeReduction(target, r, ModeAssign)
}

// AddAssign adds the reduction r to target.
func AddAssign[T model.Number](target matrix.Target[T], r Reduction[T]) error {
	return consumeReduction(target, r, ModeAdd)
}

// SubAssign subtracts the reduction r from target.
func SubAssign[T model.Number](target matrix.Target[T], r Reduction[T]) error {
	return consumeReduction(target, r, ModeSub)
}

// MultAssign multiplies target element-wise by the reduction r.
//
// Multiplying by the column-wise reduction of a matrix without rows resets
// the target to zero.
func MultAssign[T model.Number](target matrix.Target[T], r Reduction[T]) error {
	return consumeReduction(target, r, ModeMult)
}

// DivAssign divides target element-wise by the reduction r. The reduction
// is always materialized first. Integer division by a zero element returns
// ErrDivideByZero and leaves target unchanged.
func DivAssign[T model.Number](target matrix.Target[T], r Reduction[T]) error {
	return consumeReduction(target, r, ModeDiv)
}

// Evaluate materializes the reduction r into a new dense vector.
func Evaluate[T model.Number](r Reduction[T]) *matrix.DenseVector[T] {
	return evaluate(r.base())
}

func consumeReduction[T model.Number](target matrix.Target[T], r Reduction[T], mode Mode) error {
	if target == nil || r == nil {
		return ErrNilMatrix
	}
	return consume(target, r.base(), mode)
}

func consume[T model.Number](target matrix.Target[T], r *reduction[T], mode Mode) error {
	if target.Size() != r.Size() {
		return &SizeError{Expected: target.Size(), Actual: r.Size()}
	}

	start := time.Now()
	path := selectPath(target, r, mode)
	err := apply(target, r, mode, path)

	env := current()
	env.metricsCollector.RecordAssign(mode, path, r.Size(), time.Since(start), err)
	env.logger.LogAssign(context.Background(), mode, path, r.Size(), err)

	return err
}

func apply[T model.Number](target matrix.Target[T], r *reduction[T], mode Mode, path Path) error {
	switch path {
	case PathReset:
		target.Reset()
		return nil
	case PathNoop:
		return nil
	case PathRows:
		return applyRows(target.(matrix.DenseTarget[T]), r, mode)
	case PathEvaluate:
		return target.Apply(mode, evaluate(r))
	case PathOperand:
		return target.Apply(mode, r.over(matrix.Evaluate(r.src)))
	default:
		return target.Apply(mode, r)
	}
}

// applyRows consumes a column-wise reduction one operand row at a time.
// Assignment seeds the target with the first row and folds every further
// row into it; the compound modes combine every row into the target.
func applyRows[T model.Number](target matrix.DenseTarget[T], r *reduction[T], mode Mode) error {
	tmp := matrix.Composite(r.src)

	if mode == ModeAssign {
		if err := target.Apply(ModeAssign, matrix.Row(tmp, 0)); err != nil {
			return err
		}
		for i := 1; i < tmp.Rows(); i++ {
			if err := target.Map(matrix.Row(tmp, i), r.op.Apply); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; i < tmp.Rows(); i++ {
		if err := target.Apply(mode, matrix.Row(tmp, i)); err != nil {
			return err
		}
	}
	return nil
}

func evaluate[T model.Number](r *reduction[T]) *matrix.DenseVector[T] {
	v := matrix.NewDenseVector[T](r.Size(), r.orient)
	// A fresh dense target of the reduction's size only fails on a broken
	// invariant.
	if err := apply(v, r, ModeAssign, selectPath(v, r, ModeAssign)); err != nil {
		panic(fmt.Sprintf("lazymat: evaluate axis %d reduction: %v", r.pub, err))
	}
	return v
}

// over returns the same reduction over tmp, a materialized copy of src.
func (r *reduction[T]) over(tmp matrix.Matrix[T]) *reduction[T] {
	nr := newReduction(tmp, r.op, r.axis)
	nr.orient = r.orient
	return &nr
}
