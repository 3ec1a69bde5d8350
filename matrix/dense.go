package matrix

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/hupe1980/lazymat/internal/mem"
	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/model"
)

// Dense is a dense matrix stored line by line (rows for row-major, columns
// for column-major) in one 64-byte aligned allocation.
//
// A padded Dense rounds every line up to a multiple of the register lane
// count that was active at construction; the padding is always zero.
type Dense[T model.Number] struct {
	rows, cols int
	order      model.Order
	stride     int // distance between consecutive lines
	padLanes   int // lane count the stride was aligned to; 0 if unpadded
	data       []T
}

type denseOptions struct {
	order  model.Order
	padded bool
}

// DenseOption configures a Dense matrix.
type DenseOption func(*denseOptions)

// WithColumnMajor stores the matrix column by column.
func WithColumnMajor() DenseOption {
	return func(o *denseOptions) {
		o.order = model.ColumnMajor
	}
}

// WithOrder sets the storage order.
func WithOrder(order model.Order) DenseOption {
	return func(o *denseOptions) {
		o.order = order
	}
}

// WithPadding pads every line to a multiple of the active lane count.
func WithPadding() DenseOption {
	return func(o *denseOptions) {
		o.padded = true
	}
}

// NewDense returns a zeroed rows×cols matrix. Either dimension may be zero.
// It panics if a dimension is negative, like make does for negative lengths.
func NewDense[T model.Number](rows, cols int, optFns ...DenseOption) *Dense[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions %dx%d", rows, cols))
	}

	o := denseOptions{order: model.RowMajor}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	major, minor := rows, cols
	if o.order == model.ColumnMajor {
		major, minor = cols, rows
	}

	d := &Dense[T]{
		rows:   rows,
		cols:   cols,
		order:  o.order,
		stride: minor,
	}
	if o.padded {
		d.padLanes = simd.Lanes[T]()
		d.stride = simd.Align(minor, d.padLanes)
	}
	d.data = mem.Alloc[T](major * d.stride)

	return d
}

// NewDenseFrom builds a matrix from row slices. All rows must have the same
// length; otherwise ErrInvalidShape is returned.
func NewDenseFrom[T model.Number](values [][]T, optFns ...DenseOption) (*Dense[T], error) {
	rows := len(values)
	cols := 0
	if rows > 0 {
		cols = len(values[0])
	}
	for i, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), cols, ErrInvalidShape)
		}
	}

	d := NewDense[T](rows, cols, optFns...)
	for i, row := range values {
		for j, v := range row {
			d.set(i, j, v)
		}
	}
	return d, nil
}

// Rows returns the number of rows.
func (d *Dense[T]) Rows() int { return d.rows }

// Columns returns the number of columns.
func (d *Dense[T]) Columns() int { return d.cols }

// Order returns the storage order.
func (d *Dense[T]) Order() model.Order { return d.order }

// Kind returns model.Dense.
func (d *Dense[T]) Kind() model.StorageKind { return model.Dense }

func (d *Dense[T]) offset(i, j int) int {
	if d.order == model.RowMajor {
		return i*d.stride + j
	}
	return j*d.stride + i
}

// At returns element (i, j).
func (d *Dense[T]) At(i, j int) T {
	return d.data[d.offset(i, j)]
}

// CheckedAt returns element (i, j) or a *CellError.
func (d *Dense[T]) CheckedAt(i, j int) (T, error) {
	if err := checkCell(d, i, j); err != nil {
		var zero T
		return zero, err
	}
	return d.At(i, j), nil
}

// Set assigns v to element (i, j) or returns a *CellError.
func (d *Dense[T]) Set(i, j int, v T) error {
	if err := checkCell(d, i, j); err != nil {
		return err
	}
	d.set(i, j, v)
	return nil
}

func (d *Dense[T]) set(i, j int, v T) {
	d.data[d.offset(i, j)] = v
}

// Load implements Loader.
func (d *Dense[T]) Load(i, j, n int) []T {
	off := d.offset(i, j)
	return d.data[off : off+n : off+n]
}

// IsPadded implements Loader. Padding only counts while the active lane
// count does not exceed the one the matrix was aligned for.
func (d *Dense[T]) IsPadded() bool {
	return d.padLanes > 0 && simd.Lanes[T]() <= d.padLanes
}

// Line returns the k-th storage line (row k for row-major, column k for
// column-major) without its padding.
func (d *Dense[T]) Line(k int) []T {
	n := d.cols
	if d.order == model.ColumnMajor {
		n = d.rows
	}
	off := k * d.stride
	return d.data[off : off+n : off+n]
}

// IsAliased reports whether p is the matrix itself or points into its storage.
func (d *Dense[T]) IsAliased(p unsafe.Pointer) bool {
	return p == unsafe.Pointer(d) || pointerIn(p, d.data) //nolint:gosec // identity comparison
}

// IsAligned reports whether the storage starts on a register boundary.
func (d *Dense[T]) IsAligned() bool {
	return mem.IsAligned(d.data)
}

// SMPAssignable returns true.
func (d *Dense[T]) SMPAssignable() bool { return true }

// CanSMPAssign reports whether the matrix holds at least SMPAssignThreshold elements.
func (d *Dense[T]) CanSMPAssign() bool {
	return d.rows*d.cols >= SMPAssignThreshold
}

// RequiresEvaluation returns false.
func (d *Dense[T]) RequiresEvaluation() bool { return false }

// SIMDEnabled returns true.
func (d *Dense[T]) SIMDEnabled() bool { return true }

// Clone returns a deep copy with the same order and padding.
func (d *Dense[T]) Clone() *Dense[T] {
	c := *d
	c.data = mem.Alloc[T](len(d.data))
	copy(c.data, d.data)
	return &c
}

// String implements fmt.Stringer.
func (d *Dense[T]) String() string {
	var sb strings.Builder
	for i := 0; i < d.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < d.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%v", d.At(i, j))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
