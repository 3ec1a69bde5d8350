package simd

import (
	"unsafe"

	"github.com/hupe1980/lazymat/model"
)

// MaxLanes is the largest lane count of any supported register/element pair
// (64 one-byte lanes in a 512-bit register).
const MaxLanes = 64

// Lanes returns the number of T elements held by one register of the
// active ISA. It is always at least 1.
func Lanes[T model.Number]() int {
	return LanesFor[T](ActiveISA())
}

// LanesFor returns the number of T elements held by one register of isa.
func LanesFor[T model.Number](isa ISA) int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	n := isa.RegisterBytes() / size
	if n < 1 {
		return 1
	}
	return n
}

// Align rounds n up to the next multiple of lanes.
func Align(n, lanes int) int {
	if lanes <= 1 {
		return n
	}
	return (n + lanes - 1) / lanes * lanes
}
