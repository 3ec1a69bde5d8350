package matrix

import (
	"unsafe"

	"github.com/hupe1980/lazymat/model"
)

// Transposed is a zero-copy view exchanging the rows and columns of its
// operand. Transposing a column-major matrix yields a row-major view over
// the same storage, which is how column-major operands reach the row-major
// reduction kernels.
type Transposed[T model.Number] struct {
	m Matrix[T]
}

// Trans returns the transpose of m without copying data.
//
// Trans(Trans(m)) returns m, and the transpose of a matrix/scalar product
// is the product of the transposed matrix with the same scalar.
func Trans[T model.Number](m Matrix[T]) Matrix[T] {
	switch x := m.(type) {
	case *Transposed[T]:
		return x.m
	case *ScaleExpr[T]:
		return Scale(Trans(x.m), x.s)
	}
	return &Transposed[T]{m: m}
}

// Operand returns the matrix being transposed.
func (t *Transposed[T]) Operand() Matrix[T] { return t.m }

// Rows returns the operand's column count.
func (t *Transposed[T]) Rows() int { return t.m.Columns() }

// Columns returns the operand's row count.
func (t *Transposed[T]) Columns() int { return t.m.Rows() }

// At returns operand element (j, i).
func (t *Transposed[T]) At(i, j int) T { return t.m.At(j, i) }

// Order returns the flipped operand order.
func (t *Transposed[T]) Order() model.Order { return t.m.Order().Flip() }

// Kind returns the operand kind.
func (t *Transposed[T]) Kind() model.StorageKind { return t.m.Kind() }

// Load implements Loader by loading along the operand's contiguous direction.
// It panics if the operand is not a Loader; check SIMDEnabled first.
func (t *Transposed[T]) Load(i, j, n int) []T {
	return t.m.(Loader[T]).Load(j, i, n)
}

// IsPadded implements Loader.
func (t *Transposed[T]) IsPadded() bool {
	l, ok := t.m.(Loader[T])
	return ok && l.IsPadded()
}

// IsAliased delegates to the operand.
func (t *Transposed[T]) IsAliased(p unsafe.Pointer) bool { return t.m.IsAliased(p) }

// SMPAssignable delegates to the operand.
func (t *Transposed[T]) SMPAssignable() bool { return t.m.SMPAssignable() }

// CanSMPAssign delegates to the operand.
func (t *Transposed[T]) CanSMPAssign() bool { return t.m.CanSMPAssign() }

// RequiresEvaluation delegates to the operand.
func (t *Transposed[T]) RequiresEvaluation() bool { return t.m.RequiresEvaluation() }

// SIMDEnabled reports whether the operand supports loads.
func (t *Transposed[T]) SIMDEnabled() bool {
	_, ok := t.m.(Loader[T])
	return ok && t.m.SIMDEnabled()
}
