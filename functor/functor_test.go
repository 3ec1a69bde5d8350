package functor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	assert.Equal(t, 7, Add[int]{}.Apply(3, 4))
	assert.Equal(t, 12, Mult[int]{}.Apply(3, 4))
	assert.Equal(t, 4, Max[int]{}.Apply(3, 4))
	assert.Equal(t, 3, Min[int]{}.Apply(3, 4))
	assert.Equal(t, 1.5, NewFunc(func(a, b float64) float64 { return (a + b) / 2 }).Apply(1, 2))
}

func TestApplyBatch(t *testing.T) {
	dst := []int{1, 2, 3}
	Add[int]{}.ApplyBatch(dst, []int{1, 1, 1})
	assert.Equal(t, []int{2, 3, 4}, dst)

	Mult[int]{}.ApplyBatch(dst, []int{2, 2, 2})
	assert.Equal(t, []int{4, 6, 8}, dst)

	Max[int]{}.ApplyBatch(dst, []int{5, 5, 5})
	assert.Equal(t, []int{5, 6, 8}, dst)

	Min[int]{}.ApplyBatch(dst, []int{6, 6, 6})
	assert.Equal(t, []int{5, 6, 6}, dst)

	f := NewFunc(func(a, b int) int { return a - b })
	f.ApplyBatch(dst, []int{1, 1, 1})
	assert.Equal(t, []int{4, 5, 5}, dst)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		op   Op[float64]
		want Kind
	}{
		{"add", Add[float64]{}, KindAdd},
		{"add pointer", &Add[float64]{}, KindAdd},
		{"mult", Mult[float64]{}, KindMult},
		{"max", Max[float64]{}, KindMax},
		{"min", Min[float64]{}, KindMin},
		{"func", NewFunc(func(a, b float64) float64 { return a + b }), KindCustom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.op))
		})
	}
}

func TestVectorizable(t *testing.T) {
	assert.True(t, Vectorizable[int](Add[int]{}))
	assert.True(t, Vectorizable[int](Mult[int]{}))
	assert.False(t, Vectorizable[int](NewFunc(func(a, b int) int { return a + b })))
	assert.True(t, Vectorizable[int](Func[int]{
		F:     func(a, b int) int { return a ^ b },
		Batch: func(dst, src []int) {},
	}))
	assert.False(t, Vectorizable[int](scalarOnly{}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "add", KindAdd.String())
	assert.Equal(t, "custom", KindCustom.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

type scalarOnly struct{}

func (scalarOnly) Apply(a, b int) int { return a | b }
