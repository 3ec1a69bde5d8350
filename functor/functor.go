package functor

import (
	"fmt"

	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/model"
)

// Op is an associative binary operation used to fold elements.
//
// Reductions may reassociate the fold into partial results (per row pair,
// per register lane), so Apply must be associative and commutative for the
// result to be independent of the selected backend. This is not checked.
type Op[T model.Number] interface {
	Apply(a, b T) T
}

// BatchOp is implemented by operations that can fold whole registers.
// ApplyBatch computes dst[k] = Apply(dst[k], src[k]) for every lane of dst.
type BatchOp[T model.Number] interface {
	Op[T]
	SIMDEnabled() bool
	ApplyBatch(dst, src []T)
}

// Kind identifies the library operations the evaluation strategy treats
// specially.
type Kind uint8

const (
	// KindCustom is any operation without a specialized path.
	KindCustom Kind = iota
	// KindAdd is Add.
	KindAdd
	// KindMult is Mult.
	KindMult
	// KindMax is Max.
	KindMax
	// KindMin is Min.
	KindMin
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindAdd:
		return "add"
	case KindMult:
		return "mult"
	case KindMax:
		return "max"
	case KindMin:
		return "min"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// KindOf returns the Kind of op. Only the exact library types are
// recognized; wrappers and closures are KindCustom.
func KindOf[T model.Number](op Op[T]) Kind {
	switch op.(type) {
	case Add[T], *Add[T]:
		return KindAdd
	case Mult[T], *Mult[T]:
		return KindMult
	case Max[T], *Max[T]:
		return KindMax
	case Min[T], *Min[T]:
		return KindMin
	default:
		return KindCustom
	}
}

// Vectorizable reports whether op can fold whole registers.
func Vectorizable[T model.Number](op Op[T]) bool {
	b, ok := op.(BatchOp[T])
	return ok && b.SIMDEnabled()
}

// Add is the addition operation.
type Add[T model.Number] struct{}

// Apply returns a + b.
func (Add[T]) Apply(a, b T) T { return a + b }

// SIMDEnabled implements BatchOp.
func (Add[T]) SIMDEnabled() bool { return true }

// ApplyBatch implements BatchOp.
func (Add[T]) ApplyBatch(dst, src []T) { simd.AddInto(dst, src) }

// Mult is the multiplication operation.
type Mult[T model.Number] struct{}

// Apply returns a * b.
func (Mult[T]) Apply(a, b T) T { return a * b }

// SIMDEnabled implements BatchOp.
func (Mult[T]) SIMDEnabled() bool { return true }

// ApplyBatch implements BatchOp.
func (Mult[T]) ApplyBatch(dst, src []T) { simd.MulInto(dst, src) }

// Max selects the larger operand.
type Max[T model.Number] struct{}

// Apply returns max(a, b).
func (Max[T]) Apply(a, b T) T { return max(a, b) }

// SIMDEnabled implements BatchOp.
func (Max[T]) SIMDEnabled() bool { return true }

// ApplyBatch implements BatchOp.
func (Max[T]) ApplyBatch(dst, src []T) { simd.MaxInto(dst, src) }

// Min selects the smaller operand.
type Min[T model.Number] struct{}

// Apply returns min(a, b).
func (Min[T]) Apply(a, b T) T { return min(a, b) }

// SIMDEnabled implements BatchOp.
func (Min[T]) SIMDEnabled() bool { return true }

// ApplyBatch implements BatchOp.
func (Min[T]) ApplyBatch(dst, src []T) { simd.MinInto(dst, src) }

// Func adapts a plain function to Op. Batch is optional; when set the
// operation is vectorizable and Batch must agree with F lane by lane.
type Func[T model.Number] struct {
	F     func(a, b T) T
	Batch func(dst, src []T)
}

// NewFunc returns a scalar-only operation backed by f.
func NewFunc[T model.Number](f func(a, b T) T) Func[T] {
	return Func[T]{F: f}
}

// Apply returns F(a, b).
func (f Func[T]) Apply(a, b T) T { return f.F(a, b) }

// SIMDEnabled implements BatchOp.
func (f Func[T]) SIMDEnabled() bool { return f.Batch != nil }

// ApplyBatch implements BatchOp. It falls back to lane-wise F when Batch is nil.
func (f Func[T]) ApplyBatch(dst, src []T) {
	if f.Batch != nil {
		f.Batch(dst, src)
		return
	}
	for k := range dst {
		dst[k] = f.F(dst[k], src[k])
	}
}
