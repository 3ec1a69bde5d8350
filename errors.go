package lazymat

import "github.com/hupe1980/lazymat/matrix"

var (
	// ErrOutOfRange is returned by bounds-checked accessors.
	ErrOutOfRange = matrix.ErrOutOfRange

	// ErrDimensionMismatch is returned when a target and a reduction differ in size.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch

	// ErrDivideByZero is returned when an integer division assignment
	// meets a zero divisor.
	ErrDivideByZero = matrix.ErrDivideByZero

	// ErrNilMatrix is returned when a nil operand or target is consumed.
	ErrNilMatrix = matrix.ErrNilMatrix
)

// IndexError reports a bounds-checked access at or beyond the size.
type IndexError = matrix.IndexError

// SizeError reports a size mismatch between a target and a reduction.
type SizeError = matrix.SizeError
