package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates that an index is outside the valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand or target sizes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidShape indicates a negative or ragged shape.
	ErrInvalidShape = errors.New("matrix: invalid shape")

	// ErrDivideByZero is returned when an integer division assignment
	// encounters a zero divisor.
	ErrDivideByZero = errors.New("matrix: integer division by zero")

	// ErrNilMatrix indicates that a nil operand was used.
	ErrNilMatrix = errors.New("matrix: nil operand")
)

// IndexError reports a bounds-checked access at or beyond Size.
//
// It unwraps to ErrOutOfRange.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid vector access index: %d (size %d)", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrOutOfRange }

// CellError reports a bounds-checked matrix access outside the shape.
//
// It unwraps to ErrOutOfRange.
type CellError struct {
	Row, Column   int
	Rows, Columns int
}

func (e *CellError) Error() string {
	return fmt.Sprintf("invalid matrix access index: (%d,%d) (shape %dx%d)", e.Row, e.Column, e.Rows, e.Columns)
}

func (e *CellError) Unwrap() error { return ErrOutOfRange }

// SizeError reports a size mismatch between an assignment target and its
// source, or between the operands of an expression.
//
// It unwraps to ErrDimensionMismatch.
type SizeError struct {
	Expected int
	Actual   int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("invalid vector sizes: expected %d, got %d", e.Expected, e.Actual)
}

func (e *SizeError) Unwrap() error { return ErrDimensionMismatch }

// ShapeError reports incompatible matrix operand shapes.
//
// It unwraps to ErrDimensionMismatch.
type ShapeError struct {
	Op                   string
	LeftRows, LeftCols   int
	RightRows, RightCols int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("matrix %s: incompatible shapes %dx%d and %dx%d",
		e.Op, e.LeftRows, e.LeftCols, e.RightRows, e.RightCols)
}

func (e *ShapeError) Unwrap() error { return ErrDimensionMismatch }

func checkIndex(index, size int) error {
	if index < 0 || index >= size {
		return &IndexError{Index: index, Size: size}
	}
	return nil
}

func checkCell(m shaped, i, j int) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Columns() {
		return &CellError{Row: i, Column: j, Rows: m.Rows(), Columns: m.Columns()}
	}
	return nil
}
