package matrix

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/hupe1980/lazymat/internal/mem"
	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/model"
)

// DenseVector is a dense vector backed by a 64-byte aligned slice. It is
// the default assignment target for reductions.
type DenseVector[T model.Number] struct {
	orient model.Orientation
	data   []T
}

// NewDenseVector returns a zeroed vector of size n.
// It panics if n is negative.
func NewDenseVector[T model.Number](n int, orient model.Orientation) *DenseVector[T] {
	if n < 0 {
		panic(fmt.Sprintf("matrix: negative vector size %d", n))
	}
	return &DenseVector[T]{orient: orient, data: mem.Alloc[T](n)}
}

// NewDenseVectorFrom returns a vector holding a copy of values.
func NewDenseVectorFrom[T model.Number](values []T, orient model.Orientation) *DenseVector[T] {
	v := NewDenseVector[T](len(values), orient)
	copy(v.data, values)
	return v
}

// Size returns the number of elements.
func (v *DenseVector[T]) Size() int { return len(v.data) }

// At returns element i.
func (v *DenseVector[T]) At(i int) T { return v.data[i] }

// CheckedAt returns element i or an *IndexError.
func (v *DenseVector[T]) CheckedAt(i int) (T, error) {
	if err := checkIndex(i, len(v.data)); err != nil {
		var zero T
		return zero, err
	}
	return v.data[i], nil
}

// Set stores x at index i.
func (v *DenseVector[T]) Set(i int, x T) error {
	if err := checkIndex(i, len(v.data)); err != nil {
		return err
	}
	v.data[i] = x
	return nil
}

// Values returns the backing storage.
func (v *DenseVector[T]) Values() []T { return v.data }

// Orientation returns the vector orientation.
func (v *DenseVector[T]) Orientation() model.Orientation { return v.orient }

// Kind returns model.Dense.
func (v *DenseVector[T]) Kind() model.StorageKind { return model.Dense }

// Pointer returns the address of the first element, or nil for an empty
// vector. It is used for alias checks against matrix operands.
func (v *DenseVector[T]) Pointer() unsafe.Pointer {
	if len(v.data) == 0 {
		return nil
	}
	return unsafe.Pointer(&v.data[0])
}

// Reset zeroes every element.
func (v *DenseVector[T]) Reset() {
	clear(v.data)
}

// Clone returns a deep copy.
func (v *DenseVector[T]) Clone() *DenseVector[T] {
	return NewDenseVectorFrom(v.data, v.orient)
}

// Apply combines src into v according to mode.
func (v *DenseVector[T]) Apply(mode AssignMode, src Vector[T]) error {
	if src.Size() != len(v.data) {
		return &SizeError{Expected: len(v.data), Actual: src.Size()}
	}
	return v.ApplyRange(mode, 0, len(v.data), src)
}

// ApplyRange combines src[lo:hi] into v[lo:hi] according to mode. Integer
// division by a zero element fails with ErrDivideByZero before any element
// of the range is modified.
func (v *DenseVector[T]) ApplyRange(mode AssignMode, lo, hi int, src Vector[T]) error {
	if src.Size() != len(v.data) {
		return &SizeError{Expected: len(v.data), Actual: src.Size()}
	}
	if lo < 0 || hi > len(v.data) || lo > hi {
		return fmt.Errorf("range [%d:%d] of %d elements: %w", lo, hi, len(v.data), ErrOutOfRange)
	}

	dst := v.data[lo:hi]

	if c, ok := src.(Contiguous[T]); ok && c.Values() != nil {
		s := c.Values()[lo:hi]
		switch mode {
		case ModeAssign:
			copy(dst, s)
			return nil
		case ModeAdd:
			simd.AddInto(dst, s)
			return nil
		case ModeMult:
			simd.MulInto(dst, s)
			return nil
		}
	}

	if mode == ModeDiv && model.IsInteger[T]() {
		for i := lo; i < hi; i++ {
			if src.At(i) == 0 {
				return fmt.Errorf("element %d: %w", i, ErrDivideByZero)
			}
		}
	}

	switch mode {
	case ModeAssign:
		for i := range dst {
			dst[i] = src.At(lo + i)
		}
	case ModeAdd:
		for i := range dst {
			dst[i] += src.At(lo + i)
		}
	case ModeSub:
		for i := range dst {
			dst[i] -= src.At(lo + i)
		}
	case ModeMult:
		for i := range dst {
			dst[i] *= src.At(lo + i)
		}
	case ModeDiv:
		for i := range dst {
			dst[i] /= src.At(lo + i)
		}
	default:
		return fmt.Errorf("matrix: unknown assign mode %d", mode)
	}
	return nil
}

// Map replaces every element v[i] with f(v[i], src.At(i)).
func (v *DenseVector[T]) Map(src Vector[T], f func(a, b T) T) error {
	if src.Size() != len(v.data) {
		return &SizeError{Expected: len(v.data), Actual: src.Size()}
	}
	for i := range v.data {
		v.data[i] = f(v.data[i], src.At(i))
	}
	return nil
}

// String returns a string representation of the vector.
func (v *DenseVector[T]) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, x := range v.data {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%v", x)
	}
	sb.WriteString(")")
	if v.orient == model.RowVector {
		sb.WriteString("^T")
	}
	return sb.String()
}
