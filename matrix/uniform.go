package matrix

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/model"
)

// Uniform is a matrix whose every element aliases one stored value.
type Uniform[T model.Number] struct {
	rows, cols int
	order      model.Order
	value      T
	lanes      [simd.MaxLanes]T // broadcast register served by Load
}

// NewUniform returns a rows×cols matrix with every element equal to value.
// It panics if a dimension is negative.
func NewUniform[T model.Number](rows, cols int, value T, order model.Order) *Uniform[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions %dx%d", rows, cols))
	}
	u := &Uniform[T]{rows: rows, cols: cols, order: order, value: value}
	for k := range u.lanes {
		u.lanes[k] = value
	}
	return u
}

// Rows returns the number of rows.
func (u *Uniform[T]) Rows() int { return u.rows }

// Columns returns the number of columns.
func (u *Uniform[T]) Columns() int { return u.cols }

// Order returns the storage order.
func (u *Uniform[T]) Order() model.Order { return u.order }

// Kind returns model.Uniform.
func (u *Uniform[T]) Kind() model.StorageKind { return model.Uniform }

// At returns the stored value.
func (u *Uniform[T]) At(int, int) T { return u.value }

// Value returns the stored value.
func (u *Uniform[T]) Value() T { return u.value }

// Load implements Loader by returning a broadcast of the stored value.
func (u *Uniform[T]) Load(_, _, n int) []T { return u.lanes[:n:n] }

// IsPadded returns false: loads past the last column would not read zeros.
func (u *Uniform[T]) IsPadded() bool { return false }

// IsAliased reports whether p is the matrix itself.
func (u *Uniform[T]) IsAliased(p unsafe.Pointer) bool {
	return p == unsafe.Pointer(u) //nolint:gosec // identity comparison
}

// SMPAssignable returns false; uniform operands are always consumed serially.
func (u *Uniform[T]) SMPAssignable() bool { return false }

// CanSMPAssign returns false.
func (u *Uniform[T]) CanSMPAssign() bool { return false }

// RequiresEvaluation returns false.
func (u *Uniform[T]) RequiresEvaluation() bool { return false }

// SIMDEnabled returns true.
func (u *Uniform[T]) SIMDEnabled() bool { return true }
