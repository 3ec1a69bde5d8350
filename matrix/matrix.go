package matrix

import (
	"unsafe"

	"github.com/hupe1980/lazymat/model"
)

// SMPAssignThreshold is the element count from which a dense matrix
// reports that it can take part in parallel assignment.
const SMPAssignThreshold = 48 * 48

type shaped interface {
	Rows() int
	Columns() int
}

// Matrix is a read-only two-dimensional operand: a concrete container or
// a lazily evaluated expression over containers.
type Matrix[T model.Number] interface {
	// Rows returns the number of rows.
	Rows() int
	// Columns returns the number of columns.
	Columns() int
	// At returns element (i, j) without bounds checking beyond what the
	// underlying storage enforces.
	At(i, j int) T
	// Order returns the storage order.
	Order() model.Order
	// Kind returns the storage kind.
	Kind() model.StorageKind
	// IsAliased reports whether the operand references the memory at p.
	IsAliased(p unsafe.Pointer) bool
	// SMPAssignable reports whether the operand type supports parallel
	// consumption at all.
	SMPAssignable() bool
	// CanSMPAssign reports whether this operand instance is large enough to
	// benefit from parallel consumption.
	CanSMPAssign() bool
	// RequiresEvaluation reports whether the operand must be materialized
	// before it is consumed element by element.
	RequiresEvaluation() bool
	// SIMDEnabled reports whether the operand supports register-width loads
	// through Loader.
	SIMDEnabled() bool
}

// Loader is implemented by operands that can hand out register-width runs
// of elements along their contiguous storage direction.
type Loader[T model.Number] interface {
	// Load returns n consecutive elements starting at (i, j): along row i
	// for row-major operands, along column j for column-major operands.
	// The returned slice aliases the operand and must not be modified.
	Load(i, j, n int) []T
	// IsPadded reports whether every line is padded with zeros up to a
	// multiple of the active lane count, so loads may run past the last
	// column (row-major) or row (column-major).
	IsPadded() bool
}

// Vector is a read-only one-dimensional operand.
type Vector[T model.Number] interface {
	Size() int
	At(i int) T
	Orientation() model.Orientation
}

// Contiguous is implemented by vectors that are backed by one contiguous run
// of memory.
type Contiguous[T model.Number] interface {
	Values() []T
}

// AssignMode selects how a source is combined into an assignment target.
type AssignMode uint8

const (
	// ModeAssign overwrites the target.
	ModeAssign AssignMode = iota
	// ModeAdd adds the source to the target.
	ModeAdd
	// ModeSub subtracts the source from the target.
	ModeSub
	// ModeMult multiplies the target by the source element-wise.
	ModeMult
	// ModeDiv divides the target by the source element-wise.
	ModeDiv
)

// String returns a string representation of the AssignMode.
func (m AssignMode) String() string {
	switch m {
	case ModeAssign:
		return "assign"
	case ModeAdd:
		return "add"
	case ModeSub:
		return "sub"
	case ModeMult:
		return "mult"
	case ModeDiv:
		return "div"
	default:
		return "unknown"
	}
}

// Target is an assignment target (consumer) for one-dimensional sources.
type Target[T model.Number] interface {
	Size() int
	Kind() model.StorageKind
	// Reset restores every element to its default (zero) value.
	Reset()
	// Apply combines src into the target according to mode.
	Apply(mode AssignMode, src Vector[T]) error
}

// DenseTarget is a Target with contiguous element storage.
type DenseTarget[T model.Number] interface {
	Target[T]
	// ApplyRange combines src[lo:hi] into target[lo:hi]. Disjoint ranges
	// may be applied concurrently.
	ApplyRange(mode AssignMode, lo, hi int, src Vector[T]) error
	// Map replaces every element t[i] with f(t[i], src.At(i)).
	Map(src Vector[T], f func(a, b T) T) error
}

// Composite returns the form in which m is held by an enclosing expression:
// m itself when it can be consumed lazily, or a materialized copy when it
// requires evaluation.
func Composite[T model.Number](m Matrix[T]) Matrix[T] {
	if m.RequiresEvaluation() {
		return Evaluate(m)
	}
	return m
}

// SameShape reports whether a and b have identical dimensions.
func SameShape[T model.Number](a, b Matrix[T]) bool {
	return a.Rows() == b.Rows() && a.Columns() == b.Columns()
}

func pointerIn[T model.Number](p unsafe.Pointer, data []T) bool {
	if p == nil || len(data) == 0 {
		return false
	}
	var zero T
	start := uintptr(unsafe.Pointer(&data[0])) //nolint:gosec // address comparison only
	end := start + uintptr(len(data))*unsafe.Sizeof(zero)
	addr := uintptr(p)
	return addr >= start && addr < end
}
