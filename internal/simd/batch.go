package simd

import (
	"github.com/ajroetker/go-highway/hwy"

	"github.com/hupe1980/lazymat/model"
)

// A register of the batched kernels is a run of Lanes[T]() elements. The
// helpers below load such runs into hwy vectors for float32, float64, int32
// and int64 and fall back to plain lane loops for the other element types
// and for the elements past the last full hwy vector.

type vecOp uint8

const (
	vecAdd vecOp = iota
	vecMul
	vecMax
	vecMin
)

func combine[E hwy.Lanes](op vecOp, a, b hwy.Vec[E]) hwy.Vec[E] {
	switch op {
	case vecMul:
		return hwy.Mul(a, b)
	case vecMax:
		return hwy.Max(a, b)
	case vecMin:
		return hwy.Min(a, b)
	default:
		return hwy.Add(a, b)
	}
}

// lanewise applies op to whole hwy vectors of dst and src and returns how
// many leading elements it covered.
func lanewise[E hwy.Lanes](op vecOp, dst, src []E) int {
	n := hwy.Zero[E]().NumLanes()
	k := 0
	for ; k+n <= len(dst); k += n {
		hwy.Store(combine(op, hwy.Load(dst[k:]), hwy.Load(src[k:])), dst[k:])
	}
	return k
}

// vectorize dispatches lanewise on the element type. Types hwy does not
// vectorize report zero covered elements.
func vectorize[T model.Number](op vecOp, dst, src []T) int {
	switch d := any(dst).(type) {
	case []float32:
		return lanewise(op, d, any(src).([]float32))
	case []float64:
		return lanewise(op, d, any(src).([]float64))
	case []int32:
		return lanewise(op, d, any(src).([]int32))
	case []int64:
		return lanewise(op, d, any(src).([]int64))
	default:
		return 0
	}
}

// AddInto computes dst[k] += src[k] for every lane. src must be at least as
// long as dst.
func AddInto[T model.Number](dst, src []T) {
	src = src[:len(dst)]
	for k := vectorize(vecAdd, dst, src); k < len(dst); k++ {
		dst[k] += src[k]
	}
}

// MulInto computes dst[k] *= src[k] for every lane.
func MulInto[T model.Number](dst, src []T) {
	src = src[:len(dst)]
	for k := vectorize(vecMul, dst, src); k < len(dst); k++ {
		dst[k] *= src[k]
	}
}

// MaxInto computes dst[k] = max(dst[k], src[k]) for every lane.
func MaxInto[T model.Number](dst, src []T) {
	src = src[:len(dst)]
	for k := vectorize(vecMax, dst, src); k < len(dst); k++ {
		dst[k] = max(dst[k], src[k])
	}
}

// MinInto computes dst[k] = min(dst[k], src[k]) for every lane.
func MinInto[T model.Number](dst, src []T) {
	src = src[:len(dst)]
	for k := vectorize(vecMin, dst, src); k < len(dst); k++ {
		dst[k] = min(dst[k], src[k])
	}
}

// fold accumulates whole hwy vectors of v with op and reduces the
// accumulator horizontally. It returns the partial result and how many
// leading elements it covered; zero covered means v is shorter than one
// vector.
func fold[E hwy.Lanes](op vecOp, v []E) (E, int) {
	var redux E

	n := hwy.Zero[E]().NumLanes()
	if len(v) < n {
		return redux, 0
	}

	acc := hwy.Load(v)
	k := n
	for ; k+n <= len(v); k += n {
		acc = combine(op, acc, hwy.Load(v[k:]))
	}

	switch op {
	case vecMax:
		return hwy.ReduceMax(acc), k
	case vecMin:
		return hwy.ReduceMin(acc), k
	case vecMul:
		buf := make([]E, n)
		hwy.Store(acc, buf)
		redux = buf[0]
		for _, x := range buf[1:] {
			redux *= x
		}
		return redux, k
	default:
		return hwy.ReduceSum(acc), k
	}
}

// horizontal dispatches fold on the element type.
func horizontal[T model.Number](op vecOp, v []T) (T, int) {
	var (
		redux any
		k     int
	)
	switch s := any(v).(type) {
	case []float32:
		redux, k = fold(op, s)
	case []float64:
		redux, k = fold(op, s)
	case []int32:
		redux, k = fold(op, s)
	case []int64:
		redux, k = fold(op, s)
	default:
		var zero T
		return zero, 0
	}
	return redux.(T), k
}

// reduceWith folds v horizontally with op, finishing the elements past the
// last full hwy vector with apply. v must not be empty.
func reduceWith[T model.Number](op vecOp, v []T, apply func(a, b T) T) T {
	redux, k := horizontal(op, v)
	if k == 0 {
		redux, k = v[0], 1
	}
	for ; k < len(v); k++ {
		redux = apply(redux, v[k])
	}
	return redux
}

// ReduceSum horizontally adds all lanes of v. Float results may differ from
// a left-to-right sweep by reassociation rounding. An empty v yields zero.
func ReduceSum[T model.Number](v []T) T {
	if len(v) == 0 {
		var zero T
		return zero
	}
	return reduceWith(vecAdd, v, func(a, b T) T { return a + b })
}

// ReduceProd horizontally multiplies all lanes of v. An empty v yields zero.
func ReduceProd[T model.Number](v []T) T {
	if len(v) == 0 {
		var zero T
		return zero
	}
	return reduceWith(vecMul, v, func(a, b T) T { return a * b })
}

// ReduceMax returns the largest lane of v. v must not be empty.
func ReduceMax[T model.Number](v []T) T {
	return reduceWith(vecMax, v, func(a, b T) T { return max(a, b) })
}

// ReduceMin returns the smallest lane of v. v must not be empty.
func ReduceMin[T model.Number](v []T) T {
	return reduceWith(vecMin, v, func(a, b T) T { return min(a, b) })
}

// Reduce sweeps the lanes of v left to right with f. Custom operations have
// no vector form. v must not be empty.
func Reduce[T model.Number](v []T, f func(a, b T) T) T {
	redux := v[0]
	for k := 1; k < len(v); k++ {
		redux = f(redux, v[k])
	}
	return redux
}
