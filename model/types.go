package model

import (
	"fmt"
)

// Integer is the set of built-in integer element types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of built-in floating-point element types.
type Float interface {
	~float32 | ~float64
}

// Number is the element type constraint for every container and expression.
type Number interface {
	Integer | Float
}

// IsInteger reports whether T is an integer type.
func IsInteger[T Number]() bool {
	var one T = 1
	return one/2 == 0
}

// Order is the storage order of a two-dimensional container.
type Order uint8

const (
	// RowMajor stores each row contiguously.
	RowMajor Order = iota
	// ColumnMajor stores each column contiguously.
	ColumnMajor
)

// Flip returns the opposite storage order.
func (o Order) Flip() Order {
	if o == RowMajor {
		return ColumnMajor
	}
	return RowMajor
}

// String returns a string representation of the Order.
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return fmt.Sprintf("Order(%d)", o)
	}
}

// Orientation distinguishes row vectors from column vectors.
type Orientation uint8

const (
	// ColumnVector is the default vector orientation.
	ColumnVector Orientation = iota
	// RowVector is the orientation of a column-wise (axis 0) reduction result.
	RowVector
)

// Flip returns the transposed orientation.
func (o Orientation) Flip() Orientation {
	if o == ColumnVector {
		return RowVector
	}
	return ColumnVector
}

// String returns a string representation of the Orientation.
func (o Orientation) String() string {
	switch o {
	case ColumnVector:
		return "column"
	case RowVector:
		return "row"
	default:
		return fmt.Sprintf("Orientation(%d)", o)
	}
}

// StorageKind describes how a container stores its elements.
type StorageKind uint8

const (
	// Dense containers store every element.
	Dense StorageKind = iota
	// Sparse containers store (index, value) pairs of non-zero elements.
	Sparse
	// Uniform containers alias every element to a single stored value.
	Uniform
	// Expression marks a lazily evaluated operand without storage of its own.
	Expression
)

// String returns a string representation of the StorageKind.
func (k StorageKind) String() string {
	switch k {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	case Uniform:
		return "uniform"
	case Expression:
		return "expression"
	default:
		return fmt.Sprintf("StorageKind(%d)", k)
	}
}
