package matrix

import (
	"unsafe"

	"github.com/hupe1980/lazymat/model"
)

func checkSameShape[T model.Number](op string, a, b Matrix[T]) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if !SameShape(a, b) {
		return &ShapeError{Op: op, LeftRows: a.Rows(), LeftCols: a.Columns(), RightRows: b.Rows(), RightCols: b.Columns()}
	}
	return nil
}

// binary carries the operand-derived properties shared by element-wise
// expressions.
type binary[T model.Number] struct {
	a, b Matrix[T]
}

// Rows returns the row count shared by both operands.
func (e *binary[T]) Rows() int { return e.a.Rows() }

// Columns returns the column count shared by both operands.
func (e *binary[T]) Columns() int { return e.a.Columns() }

// Order returns the order of the left operand.
func (e *binary[T]) Order() model.Order { return e.a.Order() }

// Kind returns model.Expression.
func (e *binary[T]) Kind() model.StorageKind { return model.Expression }

// IsAliased reports whether either operand references p.
func (e *binary[T]) IsAliased(p unsafe.Pointer) bool {
	return e.a.IsAliased(p) || e.b.IsAliased(p)
}

// SMPAssignable reports whether both operands support parallel consumption.
func (e *binary[T]) SMPAssignable() bool {
	return e.a.SMPAssignable() && e.b.SMPAssignable()
}

// CanSMPAssign reports whether either operand is large enough for parallel
// consumption.
func (e *binary[T]) CanSMPAssign() bool {
	return e.a.CanSMPAssign() || e.b.CanSMPAssign()
}

// RequiresEvaluation reports whether either operand requires evaluation.
func (e *binary[T]) RequiresEvaluation() bool {
	return e.a.RequiresEvaluation() || e.b.RequiresEvaluation()
}

// SIMDEnabled returns false.
func (e *binary[T]) SIMDEnabled() bool { return false }

// Operands returns the left and right operand.
func (e *binary[T]) Operands() (left, right Matrix[T]) { return e.a, e.b }

// AddExpr is the lazy element-wise sum of two matrices.
type AddExpr[T model.Number] struct {
	binary[T]
}

// Add returns the lazy sum a + b.
func Add[T model.Number](a, b Matrix[T]) (*AddExpr[T], error) {
	if err := checkSameShape("add", a, b); err != nil {
		return nil, err
	}
	return &AddExpr[T]{binary[T]{a: a, b: b}}, nil
}

// At returns a(i, j) + b(i, j).
func (e *AddExpr[T]) At(i, j int) T { return e.a.At(i, j) + e.b.At(i, j) }

// SubExpr is the lazy element-wise difference of two matrices.
type SubExpr[T model.Number] struct {
	binary[T]
}

// Sub returns the lazy difference a - b.
func Sub[T model.Number](a, b Matrix[T]) (*SubExpr[T], error) {
	if err := checkSameShape("sub", a, b); err != nil {
		return nil, err
	}
	return &SubExpr[T]{binary[T]{a: a, b: b}}, nil
}

// At returns a(i, j) - b(i, j).
func (e *SubExpr[T]) At(i, j int) T { return e.a.At(i, j) - e.b.At(i, j) }

// ScaleExpr is the lazy product of a matrix and a scalar.
type ScaleExpr[T model.Number] struct {
	m Matrix[T]
	s T
}

// Scale returns the lazy product m * s.
func Scale[T model.Number](m Matrix[T], s T) *ScaleExpr[T] {
	return &ScaleExpr[T]{m: m, s: s}
}

// Operand returns the scaled matrix.
func (e *ScaleExpr[T]) Operand() Matrix[T] { return e.m }

// Scalar returns the scale factor.
func (e *ScaleExpr[T]) Scalar() T { return e.s }

func (e *ScaleExpr[T]) Rows() int                       { return e.m.Rows() }
func (e *ScaleExpr[T]) Columns() int                    { return e.m.Columns() }
func (e *ScaleExpr[T]) At(i, j int) T                   { return e.m.At(i, j) * e.s }
func (e *ScaleExpr[T]) Order() model.Order              { return e.m.Order() }
func (e *ScaleExpr[T]) Kind() model.StorageKind         { return model.Expression }
func (e *ScaleExpr[T]) IsAliased(p unsafe.Pointer) bool { return e.m.IsAliased(p) }
func (e *ScaleExpr[T]) SMPAssignable() bool             { return e.m.SMPAssignable() }
func (e *ScaleExpr[T]) CanSMPAssign() bool              { return e.m.CanSMPAssign() }
func (e *ScaleExpr[T]) RequiresEvaluation() bool        { return e.m.RequiresEvaluation() }
func (e *ScaleExpr[T]) SIMDEnabled() bool               { return false }

// MulExpr is the lazy matrix product of an M×K and a K×N matrix. Element
// access costs K multiplications, so consumers evaluate it first.
type MulExpr[T model.Number] struct {
	a, b Matrix[T]
}

// Mul returns the lazy matrix product a * b.
func Mul[T model.Number](a, b Matrix[T]) (*MulExpr[T], error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.Columns() != b.Rows() {
		return nil, &ShapeError{Op: "mul", LeftRows: a.Rows(), LeftCols: a.Columns(), RightRows: b.Rows(), RightCols: b.Columns()}
	}
	return &MulExpr[T]{a: a, b: b}, nil
}

// Operands returns the left and right factor.
func (e *MulExpr[T]) Operands() (left, right Matrix[T]) { return e.a, e.b }

// Rows returns the row count of the left factor.
func (e *MulExpr[T]) Rows() int { return e.a.Rows() }

// Columns returns the column count of the right factor.
func (e *MulExpr[T]) Columns() int { return e.b.Columns() }

// At returns the dot product of row i of a and column j of b.
func (e *MulExpr[T]) At(i, j int) T {
	var sum T
	for k := 0; k < e.a.Columns(); k++ {
		sum += e.a.At(i, k) * e.b.At(k, j)
	}
	return sum
}

// Order returns the order of the left factor.
func (e *MulExpr[T]) Order() model.Order { return e.a.Order() }

// Kind returns model.Expression.
func (e *MulExpr[T]) Kind() model.StorageKind { return model.Expression }

// IsAliased reports whether either factor references p.
func (e *MulExpr[T]) IsAliased(p unsafe.Pointer) bool {
	return e.a.IsAliased(p) || e.b.IsAliased(p)
}

// SMPAssignable reports whether both factors support parallel consumption
// without prior evaluation.
func (e *MulExpr[T]) SMPAssignable() bool {
	return e.a.SMPAssignable() && e.b.SMPAssignable() &&
		!e.a.RequiresEvaluation() && !e.b.RequiresEvaluation()
}

// CanSMPAssign reports whether the product is large enough for parallel
// consumption.
func (e *MulExpr[T]) CanSMPAssign() bool {
	return e.Rows()*e.Columns() >= SMPAssignThreshold
}

// RequiresEvaluation returns true.
func (e *MulExpr[T]) RequiresEvaluation() bool { return true }

// SIMDEnabled returns false.
func (e *MulExpr[T]) SIMDEnabled() bool { return false }

func (e *MulExpr[T]) evaluateInto(d *Dense[T]) {
	a, b := Composite(e.a), Composite(e.b)
	for i := 0; i < d.rows; i++ {
		for k := 0; k < a.Columns(); k++ {
			aik := a.At(i, k)
			for j := 0; j < d.cols; j++ {
				d.data[d.offset(i, j)] += aik * b.At(k, j)
			}
		}
	}
}
