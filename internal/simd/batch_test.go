package simd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaneWise(t *testing.T) {
	dst := []int{1, 5, -2, 7}
	AddInto(dst, []int{1, 1, 1, 1, 99})
	assert.Equal(t, []int{2, 6, -1, 8}, dst)

	MulInto(dst, []int{2, 0, 3, 1})
	assert.Equal(t, []int{4, 0, -3, 8}, dst)

	MaxInto(dst, []int{5, -1, -4, 8})
	assert.Equal(t, []int{5, 0, -3, 8}, dst)

	MinInto(dst, []int{0, 0, 0, 0})
	assert.Equal(t, []int{0, 0, -3, 0}, dst)
}

func TestReduceSum(t *testing.T) {
	tests := []struct {
		name     string
		in       []int64
		expected int64
	}{
		{"empty", nil, 0},
		{"single", []int64{7}, 7},
		{"pair", []int64{3, 4}, 7},
		{"odd (size 3)", []int64{1, 2, 3}, 6},
		{"odd (size 5)", []int64{1, 2, 3, 4, 5}, 15},
		{"size 8", []int64{1, 2, 3, 4, 5, 6, 7, 8}, 36},
		{"size 64", make64(1), 64},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ReduceSum(tc.in))
		})
	}
}

func TestReduceProd(t *testing.T) {
	assert.Equal(t, int64(0), ReduceProd[int64](nil))
	assert.Equal(t, int64(5), ReduceProd([]int64{5}))
	assert.Equal(t, int64(120), ReduceProd([]int64{1, 2, 3, 4, 5}))
	assert.Equal(t, int64(-24), ReduceProd([]int64{-1, 2, 3, 4}))
}

func TestReduceMatchesSweep(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 4, 7, 8, 16, 33, 64} {
		v := make([]float64, n)
		for i := range v {
			v[i] = rng.Float64()*2 - 1
		}
		sweep := Reduce(v, func(a, b float64) float64 { return a + b })
		assert.InDelta(t, sweep, ReduceSum(v), 1e-12, "n=%d", n)
	}
}

func make64(v int64) []int64 {
	out := make([]int64, 64)
	for i := range out {
		out[i] = v
	}
	return out
}

type celsius float64

func TestLaneWiseVectorTypes(t *testing.T) {
	// Long enough for several hwy vectors of any width plus a tail.
	const n = 67

	f32, i32, i64 := make([]float32, n), make([]int32, n), make([]int64, n)
	ones32, onesI32, twosI64 := make([]float32, n), make([]int32, n), make([]int64, n)
	for k := range n {
		f32[k], i32[k], i64[k] = float32(k), int32(k), int64(k)
		ones32[k], onesI32[k], twosI64[k] = 1, -1, 2
	}

	AddInto(f32, ones32)
	AddInto(i32, onesI32)
	MulInto(i64, twosI64)
	for k := range n {
		assert.Equal(t, float32(k+1), f32[k])
		assert.Equal(t, int32(k-1), i32[k])
		assert.Equal(t, int64(2*k), i64[k])
	}

	MaxInto(i32, make([]int32, n))
	MinInto(f32, ones32)
	assert.Equal(t, int32(0), i32[0])
	assert.Equal(t, int32(65), i32[n-1])
	for k := range n {
		assert.Equal(t, float32(1), f32[k])
	}
}

func TestLaneWiseNamedType(t *testing.T) {
	dst := []celsius{1, 2, 3}
	AddInto(dst, []celsius{0.5, 0.5, 0.5})
	assert.Equal(t, []celsius{1.5, 2.5, 3.5}, dst)
	assert.InDelta(t, 7.5, float64(ReduceSum(dst)), 1e-12)
}

func TestReduceMaxMin(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range []int{1, 3, 8, 17, 64, 129} {
		f := make([]float64, n)
		i := make([]int32, n)
		u := make([]uint16, n)
		for k := range f {
			f[k] = rng.Float64()*20 - 10
			i[k] = int32(rng.Intn(2001) - 1000)
			u[k] = uint16(rng.Intn(5000))
		}
		assert.Equal(t, Reduce(f, func(a, b float64) float64 { return max(a, b) }), ReduceMax(f), "n=%d", n)
		assert.Equal(t, Reduce(f, func(a, b float64) float64 { return min(a, b) }), ReduceMin(f), "n=%d", n)
		assert.Equal(t, Reduce(i, func(a, b int32) int32 { return max(a, b) }), ReduceMax(i), "n=%d", n)
		assert.Equal(t, Reduce(i, func(a, b int32) int32 { return min(a, b) }), ReduceMin(i), "n=%d", n)
		assert.Equal(t, Reduce(u, func(a, b uint16) uint16 { return max(a, b) }), ReduceMax(u), "n=%d", n)
	}
}

func TestReduceLongVectors(t *testing.T) {
	v := make([]int64, 200)
	w := make([]float32, 200)
	for k := range v {
		v[k] = int64(k + 1)
		w[k] = 0.5
	}
	assert.Equal(t, int64(200*201/2), ReduceSum(v))
	assert.InDelta(t, 100, float64(ReduceSum(w)), 1e-4)

	p := []int32{1, 2, 1, 1, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1}
	assert.Equal(t, int32(12), ReduceProd(p))
}
