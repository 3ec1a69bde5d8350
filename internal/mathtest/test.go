package mathtest

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/lazymat"
	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
	"github.com/hupe1980/lazymat/testutil"
)

// Operation combines the two operands of a test into the reduced matrix.
type Operation uint8

const (
	// OpOperand reduces the left operand; the right one is ignored.
	OpOperand Operation = iota
	// OpAdd reduces left + right.
	OpAdd
	// OpSub reduces left - right.
	OpSub
	// OpMult reduces the matrix product left * right.
	OpMult
)

// String returns a string representation of the Operation.
func (o Operation) String() string {
	switch o {
	case OpOperand:
		return "operand"
	case OpAdd:
		return "addition"
	case OpSub:
		return "subtraction"
	case OpMult:
		return "multiplication"
	default:
		return fmt.Sprintf("Operation(%d)", o)
	}
}

// Test is a single harness case.
type Test[T model.Number] struct {
	Op          Operation
	Left, Right Creator[T]
}

// Name returns the case name, e.g. "M3x3aMDb" or "MCa" for operand tests.
func (t Test[T]) Name() string {
	if t.Op == OpOperand {
		return t.Left.Name()
	}
	return t.Left.Name() + t.Right.Name()
}

// Description names the operation and operand storage, e.g.
// "dense matrix/sparse matrix addition".
func (t Test[T]) Description() string {
	if t.Op == OpOperand {
		return storage(t.Left) + " reduction"
	}
	return storage(t.Left) + "/" + storage(t.Right) + " " + t.Op.String()
}

func storage[T model.Number](c Creator[T]) string {
	switch c.flavor {
	case 'C':
		return "sparse matrix"
	case 'U':
		return "uniform matrix"
	default:
		return "dense matrix"
	}
}

// Error describes a result that differs from the reference.
type Error struct {
	Test      string
	Operation string
	Detail    string
	Seed      int64
}

func (e *Error) Error() string {
	return fmt.Sprintf(" Test: %s\n Error: %s\n Details:\n   Random seed = %d\n   %s", e.Test, e.Operation, e.Seed, e.Detail)
}

// operand builds the matrix the case reduces.
func (t Test[T]) operand(r *testutil.RNG) (matrix.Matrix[T], error) {
	left := t.Left.Create(r)
	switch t.Op {
	case OpOperand:
		return left, nil
	case OpAdd:
		return matrix.Add(left, t.Right.Create(r))
	case OpSub:
		return matrix.Sub(left, t.Right.Create(r))
	case OpMult:
		return matrix.Mul(left, t.Right.Create(r))
	default:
		return nil, fmt.Errorf("mathtest: unknown operation %d", t.Op)
	}
}

type namedOp[T model.Number] struct {
	name string
	op   functor.Op[T]
}

func reductionOps[T model.Number]() []namedOp[T] {
	return []namedOp[T]{
		{"sum", functor.Add[T]{}},
		{"product", functor.Mult[T]{}},
		{"max", functor.Max[T]{}},
		{"min", functor.Min[T]{}},
		{"custom", functor.NewFunc(func(a, b T) T { return a + b })},
	}
}

var modes = []lazymat.Mode{lazymat.ModeAssign, lazymat.ModeAdd, lazymat.ModeSub, lazymat.ModeMult, lazymat.ModeDiv}

// Run builds the operand of t from r and checks every reduction of it.
func (t Test[T]) Run(ctx context.Context, r *testutil.RNG) error {
	m, err := t.operand(r)
	if err != nil {
		return &Error{Test: t.Name(), Operation: "operand construction", Detail: err.Error(), Seed: r.Seed()}
	}

	c := &checker[T]{name: t.Name(), rng: r, m: m, ref: matrix.Evaluate(m)}
	for _, op := range reductionOps[T]() {
		if err := c.check(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

type checker[T model.Number] struct {
	name string
	rng  *testutil.RNG
	m    matrix.Matrix[T]
	ref  *matrix.Dense[T]
}

func (c *checker[T]) fail(operation, format string, args ...any) error {
	return &Error{Test: c.name, Operation: operation, Detail: fmt.Sprintf(format, args...), Seed: c.rng.Seed()}
}

func (c *checker[T]) check(ctx context.Context, nop namedOp[T]) error {
	f := nop.op.Apply
	n := c.m.Rows() * c.m.Columns()

	want := testutil.Fold[T](c.ref, f)
	if got := lazymat.Reduce(c.m, nop.op); !equal(got, want, n) {
		return c.fail(nop.name+" reduction", "result = %v, expected = %v", got, want)
	}
	if got := lazymat.Reduce(matrix.Trans(c.m), nop.op); !equal(got, want, n) {
		return c.fail("transpose "+nop.name+" reduction", "result = %v, expected = %v", got, want)
	}

	cols := lazymat.ReduceColumns(c.m, nop.op)
	if err := c.compare("column-wise "+nop.name+" reduction", cols, testutil.FoldColumns[T](c.ref, f), c.m.Rows()); err != nil {
		return err
	}
	rows := lazymat.ReduceRows(c.m, nop.op)
	if err := c.compare("row-wise "+nop.name+" reduction", rows, testutil.FoldRows[T](c.ref, f), c.m.Columns()); err != nil {
		return err
	}
	if err := c.iterate(nop.name, rows); err != nil {
		return err
	}

	for _, r := range []lazymat.Reduction[T]{cols, rows} {
		if err := c.consume(ctx, nop.name, r); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker[T]) compare(operation string, r lazymat.Reduction[T], want []T, n int) error {
	if r.Size() != len(want) {
		return c.fail(operation, "size = %d, expected = %d", r.Size(), len(want))
	}
	for i, w := range want {
		if got, err := r.CheckedAt(i); err != nil || !equal(got, w, n) {
			return c.fail(operation, "element %d = %v (%v), expected = %v", i, got, err, w)
		}
	}
	if _, err := r.CheckedAt(len(want)); !errors.Is(err, lazymat.ErrOutOfRange) {
		return c.fail(operation, "access past the end returned %v", err)
	}
	got := lazymat.Evaluate(r).Values()
	for i, w := range want {
		if !equal(got[i], w, n) {
			return c.fail("evaluated "+operation, "element %d = %v, expected = %v", i, got[i], w)
		}
	}
	return nil
}

func (c *checker[T]) iterate(name string, rows *lazymat.RowReduction[T]) error {
	operation := "row-wise " + name + " iteration"
	if d := rows.End().Distance(rows.Begin()); d != rows.Size() {
		return c.fail(operation, "distance = %d, expected = %d", d, rows.Size())
	}
	next := 0
	for i, v := range rows.All() {
		if i != next || v != rows.At(i) {
			return c.fail(operation, "element %d = %v, expected index %d value %v", i, v, next, rows.At(i))
		}
		next++
	}
	if next != rows.Size() {
		return c.fail(operation, "visited %d of %d elements", next, rows.Size())
	}
	return nil
}

// consume checks every consumption mode, serially and in parallel, against
// the element-wise combination of the target with the reduction.
func (c *checker[T]) consume(ctx context.Context, name string, r lazymat.Reduction[T]) error {
	values := lazymat.Evaluate(r).Values()
	divZero := false
	for _, v := range values {
		divZero = divZero || v == 0
	}

	for _, mode := range modes {
		for _, parallel := range []bool{false, true} {
			operation := fmt.Sprintf("%s %s assignment", name, mode)
			if parallel {
				operation = "parallel " + operation
			}

			init := make([]T, r.Size())
			testutil.Fill(c.rng, init, 1, 10)
			target := matrix.NewDenseVectorFrom(init, r.Orientation())

			var err error
			if parallel {
				err = smpConsume(ctx, mode, target, r)
			} else {
				err = serialConsume(mode, target, r)
			}

			if mode == lazymat.ModeDiv && divZero && model.IsInteger[T]() {
				if !errors.Is(err, lazymat.ErrDivideByZero) {
					return c.fail(operation, "division by a zero element returned %v", err)
				}
				continue
			}
			if err != nil {
				return c.fail(operation, "unexpected error: %v", err)
			}

			for i, got := range target.Values() {
				if mode == lazymat.ModeDiv && ill(values[i]) {
					continue
				}
				if want := combine(mode, init[i], values[i]); !equal(got, want, len(values)) {
					return c.fail(operation, "element %d = %v, expected = %v", i, got, want)
				}
			}
		}
	}
	return nil
}

func serialConsume[T model.Number](mode lazymat.Mode, target matrix.Target[T], r lazymat.Reduction[T]) error {
	switch mode {
	case lazymat.ModeAdd:
		return lazymat.AddAssign(target, r)
	case lazymat.ModeSub:
		return lazymat.SubAssign(target, r)
	case lazymat.ModeMult:
		return lazymat.MultAssign(target, r)
	case lazymat.ModeDiv:
		return lazymat.DivAssign(target, r)
	default:
		return lazymat.Assign(target, r)
	}
}

func smpConsume[T model.Number](ctx context.Context, mode lazymat.Mode, target matrix.Target[T], r lazymat.Reduction[T]) error {
	switch mode {
	case lazymat.ModeAdd:
		return lazymat.SMPAddAssign(ctx, target, r)
	case lazymat.ModeSub:
		return lazymat.SMPSubAssign(ctx, target, r)
	case lazymat.ModeMult:
		return lazymat.SMPMultAssign(ctx, target, r)
	case lazymat.ModeDiv:
		return lazymat.SMPDivAssign(ctx, target, r)
	default:
		return lazymat.SMPAssign(ctx, target, r)
	}
}

func combine[T model.Number](mode lazymat.Mode, t, r T) T {
	switch mode {
	case lazymat.ModeAdd:
		return t + r
	case lazymat.ModeSub:
		return t - r
	case lazymat.ModeMult:
		return t * r
	case lazymat.ModeDiv:
		return t / r
	default:
		return r
	}
}

// ill reports whether a floating-point divisor is too close to zero for
// quotients of differently ordered folds to be comparable.
func ill[T model.Number](v T) bool {
	return !model.IsInteger[T]() && math.Abs(float64(v)) < 1e-6
}

// equal compares results of folds over n elements. Integers compare
// exactly, floating-point values within the element type's accumulated
// epsilon relative to their magnitude.
func equal[T model.Number](a, b T, n int) bool {
	if a == b || model.IsInteger[T]() {
		return a == b
	}
	x, y := float64(a), float64(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.IsNaN(x) && math.IsNaN(y)
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return false
	}
	scale := max(1, math.Abs(x), math.Abs(y))
	return math.Abs(x-y) <= testutil.Epsilon[T](n)*scale
}
