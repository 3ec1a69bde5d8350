package matrix

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lazymat/model"
)

// sparseLine holds the non-zero elements of one row (row-major) or one
// column (column-major), sorted by index.
type sparseLine[T model.Number] struct {
	idx []int
	val []T
}

func (l *sparseLine[T]) find(k int) (int, bool) {
	pos := sort.SearchInts(l.idx, k)
	return pos, pos < len(l.idx) && l.idx[pos] == k
}

// Sparse is a compressed matrix: every storage line keeps a sorted list of
// (index, value) pairs. A roaring bitmap tracks which lines hold at least
// one element so materialization can skip empty lines.
type Sparse[T model.Number] struct {
	rows, cols int
	order      model.Order
	lines      []sparseLine[T]
	occupied   *roaring.Bitmap
	nnz        int
}

// NewSparse returns an empty rows×cols sparse matrix.
// It panics if a dimension is negative.
func NewSparse[T model.Number](rows, cols int, order model.Order) *Sparse[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions %dx%d", rows, cols))
	}
	major := rows
	if order == model.ColumnMajor {
		major = cols
	}
	return &Sparse[T]{
		rows:     rows,
		cols:     cols,
		order:    order,
		lines:    make([]sparseLine[T], major),
		occupied: roaring.New(),
	}
}

// Rows returns the number of rows.
func (s *Sparse[T]) Rows() int { return s.rows }

// Columns returns the number of columns.
func (s *Sparse[T]) Columns() int { return s.cols }

// Order returns the storage order.
func (s *Sparse[T]) Order() model.Order { return s.order }

// Kind returns model.Sparse.
func (s *Sparse[T]) Kind() model.StorageKind { return model.Sparse }

func (s *Sparse[T]) split(i, j int) (line, k int) {
	if s.order == model.RowMajor {
		return i, j
	}
	return j, i
}

// At returns element (i, j); elements that are not stored are zero.
func (s *Sparse[T]) At(i, j int) T {
	line, k := s.split(i, j)
	l := &s.lines[line]
	if pos, ok := l.find(k); ok {
		return l.val[pos]
	}
	var zero T
	return zero
}

// Set stores v at (i, j). Storing zero erases the element.
func (s *Sparse[T]) Set(i, j int, v T) error {
	if err := checkCell(s, i, j); err != nil {
		return err
	}
	line, k := s.split(i, j)
	l := &s.lines[line]
	pos, ok := l.find(k)

	var zero T
	switch {
	case ok && v == zero:
		l.idx = append(l.idx[:pos], l.idx[pos+1:]...)
		l.val = append(l.val[:pos], l.val[pos+1:]...)
		s.nnz--
		if len(l.idx) == 0 {
			s.occupied.Remove(uint32(line))
		}
	case ok:
		l.val[pos] = v
	case v != zero:
		l.idx = append(l.idx, 0)
		copy(l.idx[pos+1:], l.idx[pos:])
		l.idx[pos] = k
		l.val = append(l.val, zero)
		copy(l.val[pos+1:], l.val[pos:])
		l.val[pos] = v
		s.nnz++
		s.occupied.Add(uint32(line))
	}
	return nil
}

// NonZeros returns the number of stored elements.
func (s *Sparse[T]) NonZeros() int { return s.nnz }

// OccupiedLines returns the indices of storage lines holding at least one
// element, in ascending order.
func (s *Sparse[T]) OccupiedLines() []uint32 {
	return s.occupied.ToArray()
}

// ForEachNonZero calls fn for every stored element, line by line.
func (s *Sparse[T]) ForEachNonZero(fn func(i, j int, v T)) {
	s.occupied.Iterate(func(x uint32) bool {
		line := int(x)
		l := &s.lines[line]
		for p, k := range l.idx {
			if s.order == model.RowMajor {
				fn(line, k, l.val[p])
			} else {
				fn(k, line, l.val[p])
			}
		}
		return true
	})
}

// IsAliased reports whether p is the matrix itself or points into any line.
func (s *Sparse[T]) IsAliased(p unsafe.Pointer) bool {
	if p == unsafe.Pointer(s) { //nolint:gosec // identity comparison
		return true
	}
	for k := range s.lines {
		if pointerIn(p, s.lines[k].val) {
			return true
		}
	}
	return false
}

// SMPAssignable returns true.
func (s *Sparse[T]) SMPAssignable() bool { return true }

// CanSMPAssign reports whether the matrix stores at least SMPAssignThreshold elements.
func (s *Sparse[T]) CanSMPAssign() bool { return s.nnz >= SMPAssignThreshold }

// RequiresEvaluation returns false.
func (s *Sparse[T]) RequiresEvaluation() bool { return false }

// SIMDEnabled returns false; sparse lines have no register-width loads.
func (s *Sparse[T]) SIMDEnabled() bool { return false }
