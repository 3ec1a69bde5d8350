package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Fill fills dst with random values in range [minVal, maxVal).
// Integer element types draw whole numbers from the same range.
// Locks only once per call.
func Fill[T model.Number](r *RNG, dst []T, minVal, maxVal T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := float64(maxVal) - float64(minVal)
	for i := range dst {
		x := float64(minVal) + r.rand.Float64()*span
		if model.IsInteger[T]() {
			x = math.Floor(x)
		}
		dst[i] = T(x)
	}
}

// Values generates rows×cols random values in range [minVal, maxVal).
// Uses a single backing array.
func Values[T model.Number](r *RNG, rows, cols int, minVal, maxVal T) [][]T {
	data := make([]T, rows*cols)
	Fill(r, data, minVal, maxVal)

	values := make([][]T, rows)
	for i := range rows {
		values[i] = data[i*cols : (i+1)*cols]
	}
	return values
}

// Dense generates a random dense matrix with values in range [minVal, maxVal).
func Dense[T model.Number](r *RNG, rows, cols int, minVal, maxVal T, opts ...matrix.DenseOption) *matrix.Dense[T] {
	m := matrix.NewDense[T](rows, cols, opts...)
	values := Values(r, rows, cols, minVal, maxVal)
	for i, row := range values {
		for j, v := range row {
			_ = m.Set(i, j, v)
		}
	}
	return m
}

// Sparse generates a random sparse matrix holding roughly nonZeros elements
// with values in range [minVal, maxVal). Zero draws are skipped.
func Sparse[T model.Number](r *RNG, rows, cols, nonZeros int, minVal, maxVal T, order model.Order) *matrix.Sparse[T] {
	m := matrix.NewSparse[T](rows, cols, order)
	if rows == 0 || cols == 0 {
		return m
	}
	v := make([]T, 1)
	for range nonZeros {
		i, j := r.Intn(rows), r.Intn(cols)
		Fill(r, v, minVal, maxVal)
		_ = m.Set(i, j, v[0])
	}
	return m
}

// Fold folds every element of m in row order with f. It is the reference
// the reduction backends are checked against.
func Fold[T model.Number](m matrix.Matrix[T], f func(a, b T) T) T {
	var redux T
	first := true
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Columns(); j++ {
			if first {
				redux, first = m.At(i, j), false
				continue
			}
			redux = f(redux, m.At(i, j))
		}
	}
	return redux
}

// FoldColumns folds every column of m in row order with f.
func FoldColumns[T model.Number](m matrix.Matrix[T], f func(a, b T) T) []T {
	out := make([]T, m.Columns())
	for j := range out {
		for i := 0; i < m.Rows(); i++ {
			if i == 0 {
				out[j] = m.At(0, j)
				continue
			}
			out[j] = f(out[j], m.At(i, j))
		}
	}
	return out
}

// FoldRows folds every row of m in column order with f.
func FoldRows[T model.Number](m matrix.Matrix[T], f func(a, b T) T) []T {
	out := make([]T, m.Rows())
	for i := range out {
		for j := 0; j < m.Columns(); j++ {
			if j == 0 {
				out[i] = m.At(i, 0)
				continue
			}
			out[i] = f(out[i], m.At(i, j))
		}
	}
	return out
}

// VectorValues copies the elements of v into a slice.
func VectorValues[T model.Number](v matrix.Vector[T]) []T {
	out := make([]T, v.Size())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// Epsilon returns the tolerance, per unit of magnitude, used when comparing
// float results of differently ordered folds over n accumulated elements.
// Single precision types (including named ones) get the float32 tolerance.
func Epsilon[T model.Number](n int) float64 {
	if model.IsInteger[T]() {
		return 0
	}
	// 2^24+1 is the smallest integer a float32 cannot hold.
	f := 16777217.0
	if float64(T(f)) != f {
		return 1e-5 * float64(max(n, 1))
	}
	return 1e-12 * float64(max(n, 1))
}
