package lazymat

import (
	"iter"
	"unsafe"

	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/internal/kernel"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

// Axis selects the dimension an axis reduction collapses. It is
// implemented by Axis0 and Axis1 only, so any other axis is rejected at
// compile time.
type Axis interface {
	index() int
}

// Axis0 collapses the rows of a matrix: one result element per column.
type Axis0 struct{}

func (Axis0) index() int { return 0 }

// Axis1 collapses the columns of a matrix: one result element per row.
type Axis1 struct{}

func (Axis1) index() int { return 1 }

// Ownership tells how a reduction holds its operand.
type Ownership uint8

const (
	// Borrowed reductions reference a concrete container owned by the caller.
	Borrowed Ownership = iota
	// Owned reductions hold an expression node of their own. Consumers that
	// need its elements materialize it into a private copy first.
	Owned
)

// String returns a string representation of the Ownership.
func (o Ownership) String() string {
	if o == Owned {
		return "owned"
	}
	return "borrowed"
}

// Reduction is a lazily evaluated axis reduction. Nothing is computed until
// an element is read or the reduction is consumed by a target.
//
// Reduction is implemented by *ColumnReduction and *RowReduction.
type Reduction[T model.Number] interface {
	matrix.Vector[T]

	// CheckedAt returns element i or an *IndexError if i >= Size().
	CheckedAt(i int) (T, error)
	// Operand returns the reduced matrix.
	Operand() matrix.Matrix[T]
	// Operation returns the fold operation.
	Operation() functor.Op[T]
	// Ownership reports whether the operand is borrowed or owned.
	Ownership() Ownership
	// CanAlias reports whether the reduction can alias p.
	CanAlias(p unsafe.Pointer) bool
	// IsAliased reports whether the reduction is aliased with p.
	IsAliased(p unsafe.Pointer) bool
	// IsAligned returns false: results are computed, not stored.
	IsAligned() bool
	// SMPAssignable reports whether the operand supports parallel consumption.
	SMPAssignable() bool
	// CanSMPAssign reports whether this reduction is worth assigning in parallel.
	CanSMPAssign() bool

	base() *reduction[T]
}

// reduction is the state shared by both axes.
type reduction[T model.Number] struct {
	m      matrix.Matrix[T] // operand as given
	op     functor.Op[T]
	own    Ownership
	orient model.Orientation
	axis   int              // axis relative to src
	src    matrix.Matrix[T] // row-major view of m
	pub    int              // axis relative to m
	lanes  int
}

func newReduction[T model.Number](m matrix.Matrix[T], op functor.Op[T], axis int) reduction[T] {
	r := reduction[T]{
		m:      m,
		op:     op,
		pub:    axis,
		axis:   axis,
		src:    m,
		lanes:  lanes[T](),
		orient: model.RowVector,
	}
	if axis == 1 {
		r.orient = model.ColumnVector
	}
	if m.Kind() == model.Expression {
		r.own = Owned
	}
	if m.Order() == model.ColumnMajor {
		r.src = matrix.Trans(m)
		r.axis = 1 - axis
	}
	return r
}

func (r *reduction[T]) base() *reduction[T] { return r }

// Size returns the number of result elements: the column count for axis 0
// and the row count for axis 1.
func (r *reduction[T]) Size() int {
	if r.pub == 0 {
		return r.m.Columns()
	}
	return r.m.Rows()
}

// At returns result element i: the fold of column i (axis 0) or row i
// (axis 1). The index is not checked.
func (r *reduction[T]) At(i int) T {
	if r.pub == 0 {
		return kernel.FoldVector[T](matrix.Column(r.m, i), r.op, r.lanes)
	}
	return kernel.FoldVector[T](matrix.Row(r.m, i), r.op, r.lanes)
}

// CheckedAt returns result element i or an *IndexError.
func (r *reduction[T]) CheckedAt(i int) (T, error) {
	if i < 0 || i >= r.Size() {
		var zero T
		return zero, &matrix.IndexError{Index: i, Size: r.Size()}
	}
	return r.At(i), nil
}

// Orientation returns model.RowVector for axis 0 and model.ColumnVector
// for axis 1.
func (r *reduction[T]) Orientation() model.Orientation { return r.orient }

// Operand returns the reduced matrix.
func (r *reduction[T]) Operand() matrix.Matrix[T] { return r.m }

// Operation returns the fold operation.
func (r *reduction[T]) Operation() functor.Op[T] { return r.op }

// Ownership reports whether the operand is borrowed or owned.
func (r *reduction[T]) Ownership() Ownership { return r.own }

// CanAlias delegates to the operand. It is the same conservative check as
// IsAliased: any overlap with the operand counts as a possible alias.
func (r *reduction[T]) CanAlias(p unsafe.Pointer) bool { return r.m.IsAliased(p) }

// IsAliased delegates to the operand.
func (r *reduction[T]) IsAliased(p unsafe.Pointer) bool { return r.m.IsAliased(p) }

// IsAligned returns false.
func (r *reduction[T]) IsAligned() bool { return false }

// SMPAssignable delegates to the operand.
func (r *reduction[T]) SMPAssignable() bool { return r.m.SMPAssignable() }

// CanSMPAssign reports whether the operand can be consumed in parallel or
// the result is larger than the configured threshold.
func (r *reduction[T]) CanSMPAssign() bool {
	return r.m.CanSMPAssign() || r.Size() > current().smpThreshold
}

// ColumnReduction is the column-wise (axis 0) reduction of a matrix. Its
// result is a row vector with one element per column.
type ColumnReduction[T model.Number] struct {
	reduction[T]
}

// RowReduction is the row-wise (axis 1) reduction of a matrix. Its result
// is a column vector with one element per row.
//
// Each element folds one row independently, so a RowReduction can also be
// traversed with an iterator.
type RowReduction[T model.Number] struct {
	reduction[T]
}

// Begin returns an iterator to the first element.
func (r *RowReduction[T]) Begin() ConstIterator[T] {
	return ConstIterator[T]{r: &r.reduction}
}

// End returns an iterator one past the last element.
func (r *RowReduction[T]) End() ConstIterator[T] {
	return ConstIterator[T]{r: &r.reduction, index: r.Size()}
}

// All returns a sequence over index/value pairs. Every value is folded on
// demand.
func (r *RowReduction[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for it, end := r.Begin(), r.End(); it.Less(end); it = it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}

// ConstIterator is a read-only random-access iterator over a RowReduction.
// Moving it only changes an index; dereferencing folds one row.
type ConstIterator[T model.Number] struct {
	r     *reduction[T]
	index int
}

// Index returns the current position.
func (it ConstIterator[T]) Index() int { return it.index }

// Value folds the row at the current position.
func (it ConstIterator[T]) Value() T { return it.r.At(it.index) }

// Add returns an iterator moved forward by n.
func (it ConstIterator[T]) Add(n int) ConstIterator[T] {
	it.index += n
	return it
}

// Sub returns an iterator moved backward by n.
func (it ConstIterator[T]) Sub(n int) ConstIterator[T] {
	it.index -= n
	return it
}

// Next returns an iterator to the following element.
func (it ConstIterator[T]) Next() ConstIterator[T] { return it.Add(1) }

// Prev returns an iterator to the preceding element.
func (it ConstIterator[T]) Prev() ConstIterator[T] { return it.Sub(1) }

// Distance returns the number of elements from o to it.
func (it ConstIterator[T]) Distance(o ConstIterator[T]) int { return it.index - o.index }

// Equal reports whether both iterators point at the same element.
func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool { return it.index == o.index }

// Less reports whether it points before o.
func (it ConstIterator[T]) Less(o ConstIterator[T]) bool { return it.index < o.index }
