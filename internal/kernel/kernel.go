package kernel

import (
	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

// Source is a row-major operand of the scalar kernel.
type Source[T model.Number] interface {
	Rows() int
	Columns() int
	At(i, j int) T
}

// BatchSource is a row-major operand of the batched kernels.
type BatchSource[T model.Number] interface {
	Source[T]
	matrix.Loader[T]
}

// ReduceScalar folds every element of m with op.
//
// The first row is folded into the result, the remaining rows are folded
// in pairs and a trailing odd row on its own. A matrix without elements
// yields the zero value and a 1×1 matrix yields its element without
// invoking op.
func ReduceScalar[T model.Number](m Source[T], op functor.Op[T]) T {
	rows, cols := m.Rows(), m.Columns()

	if rows == 0 || cols == 0 {
		var zero T
		return zero
	}
	if rows == 1 && cols == 1 {
		return m.At(0, 0)
	}

	redux0 := m.At(0, 0)
	for j := 1; j < cols; j++ {
		redux0 = op.Apply(redux0, m.At(0, j))
	}

	i := 1
	for ; i+2 <= rows; i += 2 {
		redux1 := m.At(i, 0)
		redux2 := m.At(i+1, 0)
		for j := 1; j < cols; j++ {
			redux1 = op.Apply(redux1, m.At(i, j))
			redux2 = op.Apply(redux2, m.At(i+1, j))
		}
		redux1 = op.Apply(redux1, redux2)
		redux0 = op.Apply(redux0, redux1)
	}

	if i < rows {
		redux1 := m.At(i, 0)
		for j := 1; j < cols; j++ {
			redux1 = op.Apply(redux1, m.At(i, j))
		}
		redux0 = op.Apply(redux0, redux1)
	}

	return redux0
}

// tile holds the four register-width accumulators of a row tile. The
// accumulators are combined through the simd helpers, which run them as hwy
// vectors for the element types hwy supports.
type tile[T model.Number] struct {
	buf [4 * simd.MaxLanes]T
}

func (t *tile[T]) reg(k, lanes int) []T {
	return t.buf[k*lanes : (k+1)*lanes : (k+1)*lanes]
}

// horizontal reduces the accumulator xmm to a scalar with the hwy
// reduction matching op, or a left-to-right sweep for custom operations.
func horizontal[T model.Number](xmm []T, op functor.Op[T]) T {
	switch functor.KindOf(op) {
	case functor.KindAdd:
		return simd.ReduceSum(xmm)
	case functor.KindMult:
		return simd.ReduceProd(xmm)
	case functor.KindMax:
		return simd.ReduceMax(xmm)
	case functor.KindMin:
		return simd.ReduceMin(xmm)
	default:
		return simd.Reduce(xmm, op.Apply)
	}
}

// load copies a register-width run of m starting at (i, j) into dst.
func load[T model.Number](dst []T, m BatchSource[T], i, j int) []T {
	copy(dst, m.Load(i, j, len(dst)))
	return dst
}

// ReduceBatched folds every element of m with op, lanes elements at a time.
//
// Rows are processed in register tiles of four, then two, then one row.
// Columns beyond the last full register are folded into lane 0. The final
// register is reduced horizontally with the hwy reduction of op, or a
// left-to-right sweep for custom operations. Matrices narrower than one register fall
// back to a plain row-by-row fold.
func ReduceBatched[T model.Number](m BatchSource[T], op functor.BatchOp[T], lanes int) T {
	rows, cols := m.Rows(), m.Columns()

	var redux T
	if rows == 0 || cols == 0 {
		return redux
	}

	if cols < lanes || lanes < 1 || lanes > simd.MaxLanes {
		redux = m.At(0, 0)
		for j := 1; j < cols; j++ {
			redux = op.Apply(redux, m.At(0, j))
		}
		for i := 1; i < rows; i++ {
			for j := 0; j < cols; j++ {
				redux = op.Apply(redux, m.At(i, j))
			}
		}
		return redux
	}

	jpos := cols - cols%lanes

	var r tile[T]
	xmm1 := load(r.reg(0, lanes), m, 0, 0)
	xmm2, xmm3, xmm4 := r.reg(1, lanes), r.reg(2, lanes), r.reg(3, lanes)

	j := lanes
	for ; j < jpos; j += lanes {
		op.ApplyBatch(xmm1, m.Load(0, j, lanes))
	}
	for ; j < cols; j++ {
		xmm1[0] = op.Apply(xmm1[0], m.At(0, j))
	}

	i := 1
	for ; i+4 <= rows; i += 4 {
		op.ApplyBatch(xmm1, m.Load(i, 0, lanes))
		load(xmm2, m, i+1, 0)
		load(xmm3, m, i+2, 0)
		load(xmm4, m, i+3, 0)

		j := lanes
		for ; j < jpos; j += lanes {
			op.ApplyBatch(xmm1, m.Load(i, j, lanes))
			op.ApplyBatch(xmm2, m.Load(i+1, j, lanes))
			op.ApplyBatch(xmm3, m.Load(i+2, j, lanes))
			op.ApplyBatch(xmm4, m.Load(i+3, j, lanes))
		}
		for ; j < cols; j++ {
			xmm1[0] = op.Apply(xmm1[0], m.At(i, j))
			xmm2[0] = op.Apply(xmm2[0], m.At(i+1, j))
			xmm3[0] = op.Apply(xmm3[0], m.At(i+2, j))
			xmm4[0] = op.Apply(xmm4[0], m.At(i+3, j))
		}

		op.ApplyBatch(xmm1, xmm2)
		op.ApplyBatch(xmm3, xmm4)
		op.ApplyBatch(xmm1, xmm3)
	}

	if i+2 <= rows {
		op.ApplyBatch(xmm1, m.Load(i, 0, lanes))
		load(xmm2, m, i+1, 0)

		j := lanes
		for ; j < jpos; j += lanes {
			op.ApplyBatch(xmm1, m.Load(i, j, lanes))
			op.ApplyBatch(xmm2, m.Load(i+1, j, lanes))
		}
		for ; j < cols; j++ {
			xmm1[0] = op.Apply(xmm1[0], m.At(i, j))
			xmm2[0] = op.Apply(xmm2[0], m.At(i+1, j))
		}

		op.ApplyBatch(xmm1, xmm2)
		i += 2
	}

	if i < rows {
		op.ApplyBatch(xmm1, m.Load(i, 0, lanes))

		j := lanes
		for ; j < jpos; j += lanes {
			op.ApplyBatch(xmm1, m.Load(i, j, lanes))
		}
		for ; j < cols; j++ {
			xmm1[0] = op.Apply(xmm1[0], m.At(i, j))
		}
	}

	return horizontal[T](xmm1, op)
}

// SumBatched adds every element of m, lanes elements at a time.
//
// Registers start at zero and accumulate running sums. When m is padded
// for the requested lane count, loads run over the zero padding and no
// remainder is needed; otherwise columns beyond the last full register are
// summed into a scalar that is added to the horizontal sum at the end.
func SumBatched[T model.Number](m BatchSource[T], lanes int) T {
	rows, cols := m.Rows(), m.Columns()

	var redux T
	if rows == 0 || cols == 0 {
		return redux
	}

	remainder := !m.IsPadded() || lanes > simd.Lanes[T]()

	if lanes < 1 || lanes > simd.MaxLanes || (remainder && cols < lanes) {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				redux += m.At(i, j)
			}
		}
		return redux
	}

	jpos := cols
	if remainder {
		jpos = cols - cols%lanes
	}

	var r tile[T]
	xmm1 := r.reg(0, lanes)
	xmm2, xmm3, xmm4 := r.reg(1, lanes), r.reg(2, lanes), r.reg(3, lanes)

	i := 0
	for ; i+4 <= rows; i += 4 {
		simd.AddInto(xmm1, m.Load(i, 0, lanes))
		load(xmm2, m, i+1, 0)
		load(xmm3, m, i+2, 0)
		load(xmm4, m, i+3, 0)

		j := lanes
		for ; j < jpos; j += lanes {
			simd.AddInto(xmm1, m.Load(i, j, lanes))
			simd.AddInto(xmm2, m.Load(i+1, j, lanes))
			simd.AddInto(xmm3, m.Load(i+2, j, lanes))
			simd.AddInto(xmm4, m.Load(i+3, j, lanes))
		}
		for ; remainder && j < cols; j++ {
			redux += m.At(i, j)
			redux += m.At(i+1, j)
			redux += m.At(i+2, j)
			redux += m.At(i+3, j)
		}

		simd.AddInto(xmm1, xmm2)
		simd.AddInto(xmm3, xmm4)
		simd.AddInto(xmm1, xmm3)
	}

	if i+2 <= rows {
		simd.AddInto(xmm1, m.Load(i, 0, lanes))
		load(xmm2, m, i+1, 0)

		j := lanes
		for ; j < jpos; j += lanes {
			simd.AddInto(xmm1, m.Load(i, j, lanes))
			simd.AddInto(xmm2, m.Load(i+1, j, lanes))
		}
		for ; remainder && j < cols; j++ {
			redux += m.At(i, j)
			redux += m.At(i+1, j)
		}

		simd.AddInto(xmm1, xmm2)
		i += 2
	}

	if i < rows {
		simd.AddInto(xmm1, m.Load(i, 0, lanes))

		j := lanes
		for ; j < jpos; j += lanes {
			simd.AddInto(xmm1, m.Load(i, j, lanes))
		}
		for ; remainder && j < cols; j++ {
			redux += m.At(i, j)
		}
	}

	return redux + simd.ReduceSum(xmm1)
}
