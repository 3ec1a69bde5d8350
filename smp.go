package lazymat

import (
	"context"
	"time"
	"unsafe"

	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

// SMPAssign stores the reduction r in target, splitting the work across
// workers when both allow it.
//
// Parallel assignment always applies the whole reduction element by
// element over disjoint target ranges. When the operand cannot be consumed
// in parallel and requires evaluation, it is materialized once up front.
// Targets that are not dense, reductions below the SMP threshold and
// disabled SMP fall back to Assign.
func SMPAssign[T model.Number](ctx context.Context, target matrix.Target[T], r Reduction[T]) error {
	return consumeSMP(ctx, target, r, ModeAssign)
}

// SMPAddAssign is the parallel variant of AddAssign.
func SMPAddAssign[T model.Number](ctx context.Context, target matrix.Target[T], r Reduction[T]) error {
	return consumeSMP(ctx, target, r, ModeAdd)
}

// SMPSubAssign is the parallel variant of SubAssign.
func SMPSubAssign[T model.Number](ctx context.Context, target matrix.Target[T], r Reduction[T]) error {
	return consumeSMP(ctx, target, r, ModeSub)
}

// SMPMultAssign is the parallel variant of MultAssign.
func SMPMultAssign[T model.Number](ctx context.Context, target matrix.Target[T], r Reduction[T]) error {
	return consumeSMP(ctx, target, r, ModeMult)
}

// SMPDivAssign is the parallel variant of DivAssign. With integer elements
// a zero divisor fails the range containing it; other ranges may already
// have been divided.
func SMPDivAssign[T model.Number](ctx context.Context, target matrix.Target[T], r Reduction[T]) error {
	return consumeSMP(ctx, target, r, ModeDiv)
}

func consumeSMP[T model.Number](ctx context.Context, target matrix.Target[T], r Reduction[T], mode Mode) error {
	if target == nil || r == nil {
		return ErrNilMatrix
	}
	base := r.base()
	if target.Size() != base.Size() {
		return &SizeError{Expected: target.Size(), Actual: base.Size()}
	}

	env := current()

	if !base.src.SMPAssignable() && base.src.RequiresEvaluation() {
		var zero T
		bytes := int64(base.src.Rows()) * int64(base.src.Columns()) * int64(unsafe.Sizeof(zero))
		if err := env.ctrl.AcquireScratch(ctx, bytes); err != nil {
			return err
		}
		defer env.ctrl.ReleaseScratch(bytes)

		base = base.over(matrix.Evaluate(base.src))
	}

	return smpApply(ctx, env, target, base, mode)
}

func smpApply[T model.Number](ctx context.Context, env *environment, target matrix.Target[T], r *reduction[T], mode Mode) error {
	dt, ok := target.(matrix.DenseTarget[T])
	if !env.smp || !ok || target.Kind() != model.Dense || !r.CanSMPAssign() || aliased(target, r) {
		return consume(target, r, mode)
	}

	start := time.Now()
	n := r.Size()
	chunks := env.exec.Chunks(n)

	err := env.exec.For(ctx, n, func(lo, hi int) error {
		return dt.ApplyRange(mode, lo, hi, r)
	})

	elapsed := time.Since(start)
	env.metricsCollector.RecordSMP(chunks, elapsed)
	env.metricsCollector.RecordAssign(mode, PathParallel, n, elapsed, err)
	env.logger.LogSMP(ctx, mode, chunks, err)

	return err
}
