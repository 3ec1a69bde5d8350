package mem

import (
	"unsafe"

	"github.com/hupe1980/lazymat/model"
)

// Alignment is the widest vector register in bytes (AVX-512).
const Alignment = 64

// Alloc returns a zeroed slice of n elements whose first element sits on an
// Alignment boundary. It returns nil for n <= 0.
func Alloc[T model.Number](n int) []T {
	if n <= 0 {
		return nil
	}

	var zero T
	width := int(unsafe.Sizeof(zero))

	// Over-allocate by one register so the start can be shifted forward.
	// Number types hold no pointers, so a byte backing array is GC-safe.
	raw := make([]byte, n*width+Alignment)
	base := unsafe.Pointer(&raw[0]) //nolint:gosec // alignment arithmetic
	shift := Alignment - int(uintptr(base)&(Alignment-1))
	if shift == Alignment {
		shift = 0
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&raw[shift])), n) //nolint:gosec // alignment arithmetic
}

// IsAligned reports whether s starts on an Alignment boundary. Empty slices
// are never aligned.
func IsAligned[T model.Number](s []T) bool {
	if len(s) == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&s[0]))%Alignment == 0 //nolint:gosec // address inspection only
}
