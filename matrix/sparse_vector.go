package matrix

import (
	"fmt"
	"sort"

	"github.com/hupe1980/lazymat/model"
)

// SparseVector is a compressed vector holding sorted (index, value) pairs
// for its non-zero elements.
type SparseVector[T model.Number] struct {
	size   int
	orient model.Orientation
	idx    []int
	val    []T
}

// NewSparseVector returns an empty sparse vector of size n.
// It panics if n is negative.
func NewSparseVector[T model.Number](n int, orient model.Orientation) *SparseVector[T] {
	if n < 0 {
		panic(fmt.Sprintf("matrix: negative vector size %d", n))
	}
	return &SparseVector[T]{size: n, orient: orient}
}

// Size returns the number of elements, stored or not.
func (v *SparseVector[T]) Size() int { return v.size }

// NonZeros returns the number of stored elements.
func (v *SparseVector[T]) NonZeros() int { return len(v.idx) }

// Orientation returns the vector orientation.
func (v *SparseVector[T]) Orientation() model.Orientation { return v.orient }

// Kind returns model.Sparse.
func (v *SparseVector[T]) Kind() model.StorageKind { return model.Sparse }

func (v *SparseVector[T]) find(i int) (int, bool) {
	pos := sort.SearchInts(v.idx, i)
	return pos, pos < len(v.idx) && v.idx[pos] == i
}

// At returns element i; elements that are not stored are zero.
func (v *SparseVector[T]) At(i int) T {
	if pos, ok := v.find(i); ok {
		return v.val[pos]
	}
	var zero T
	return zero
}

// Set stores x at index i. Storing zero erases the element.
func (v *SparseVector[T]) Set(i int, x T) error {
	if err := checkIndex(i, v.size); err != nil {
		return err
	}
	pos, ok := v.find(i)
	switch {
	case ok && x == 0:
		v.idx = append(v.idx[:pos], v.idx[pos+1:]...)
		v.val = append(v.val[:pos], v.val[pos+1:]...)
	case ok:
		v.val[pos] = x
	case x != 0:
		v.idx = append(v.idx, 0)
		v.val = append(v.val, 0)
		copy(v.idx[pos+1:], v.idx[pos:])
		copy(v.val[pos+1:], v.val[pos:])
		v.idx[pos] = i
		v.val[pos] = x
	}
	return nil
}

// ForEach calls fn for every stored element in index order.
func (v *SparseVector[T]) ForEach(fn func(i int, x T)) {
	for k, i := range v.idx {
		fn(i, v.val[k])
	}
}

// Reset erases every element.
func (v *SparseVector[T]) Reset() {
	v.idx = v.idx[:0]
	v.val = v.val[:0]
}

// Apply combines src into v according to mode. The result keeps only
// non-zero elements.
func (v *SparseVector[T]) Apply(mode AssignMode, src Vector[T]) error {
	if src.Size() != v.size {
		return &SizeError{Expected: v.size, Actual: src.Size()}
	}

	if mode == ModeDiv && model.IsInteger[T]() {
		for i := 0; i < v.size; i++ {
			if src.At(i) == 0 {
				return fmt.Errorf("element %d: %w", i, ErrDivideByZero)
			}
		}
	}

	if mode == ModeMult {
		// Only stored elements can stay non-zero.
		idx, val := v.idx[:0], v.val[:0]
		for k, i := range v.idx {
			if x := v.val[k] * src.At(i); x != 0 {
				idx = append(idx, i)
				val = append(val, x)
			}
		}
		v.idx, v.val = idx, val
		return nil
	}

	idx := make([]int, 0, len(v.idx))
	val := make([]T, 0, len(v.val))
	for i := 0; i < v.size; i++ {
		var x T
		switch mode {
		case ModeAssign:
			x = src.At(i)
		case ModeAdd:
			x = v.At(i) + src.At(i)
		case ModeSub:
			x = v.At(i) - src.At(i)
		case ModeDiv:
			x = v.At(i) / src.At(i)
		default:
			return fmt.Errorf("matrix: unknown assign mode %d", mode)
		}
		if x != 0 {
			idx = append(idx, i)
			val = append(val, x)
		}
	}
	v.idx, v.val = idx, val
	return nil
}
