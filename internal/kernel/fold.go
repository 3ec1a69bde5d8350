package kernel

import (
	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

// FoldVector folds the elements of v with op. Contiguous vectors are folded
// lanes elements at a time when op is vectorizable; lanes <= 1 forces the
// scalar loop. An empty vector yields the zero value.
func FoldVector[T model.Number](v matrix.Vector[T], op functor.Op[T], lanes int) T {
	if c, ok := v.(matrix.Contiguous[T]); ok {
		if s := c.Values(); s != nil {
			return FoldSlice(s, op, lanes)
		}
	}

	var redux T
	n := v.Size()
	if n == 0 {
		return redux
	}
	redux = v.At(0)
	for i := 1; i < n; i++ {
		redux = op.Apply(redux, v.At(i))
	}
	return redux
}

// FoldSlice folds s with op, lanes elements at a time when op is
// vectorizable and s holds at least one full register.
func FoldSlice[T model.Number](s []T, op functor.Op[T], lanes int) T {
	var redux T
	if len(s) == 0 {
		return redux
	}

	bop, ok := op.(functor.BatchOp[T])
	if !ok || !bop.SIMDEnabled() || lanes <= 1 || len(s) < lanes || lanes > simd.MaxLanes {
		redux = s[0]
		for _, x := range s[1:] {
			redux = op.Apply(redux, x)
		}
		return redux
	}

	var buf [simd.MaxLanes]T
	xmm := buf[:lanes:lanes]
	copy(xmm, s[:lanes])

	jpos := len(s) - len(s)%lanes
	j := lanes
	for ; j < jpos; j += lanes {
		bop.ApplyBatch(xmm, s[j:j+lanes])
	}
	for ; j < len(s); j++ {
		xmm[0] = op.Apply(xmm[0], s[j])
	}

	return horizontal(xmm, op)
}
