package lazymat

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/lazymat/functor"
	"github.com/hupe1980/lazymat/internal/kernel"
	"github.com/hupe1980/lazymat/internal/simd"
	"github.com/hupe1980/lazymat/matrix"
	"github.com/hupe1980/lazymat/model"
)

// Mode selects how a reduction is combined into its target.
type Mode = matrix.AssignMode

// Consumption modes.
const (
	ModeAssign = matrix.ModeAssign
	ModeAdd    = matrix.ModeAdd
	ModeSub    = matrix.ModeSub
	ModeMult   = matrix.ModeMult
	ModeDiv    = matrix.ModeDiv
)

// Backend identifies the fold kernel a full reduction runs on.
type Backend uint8

const (
	// BackendScalar is the row-pairing scalar fold.
	BackendScalar Backend = iota
	// BackendBatched is the register-tiled fold with a remainder tail.
	BackendBatched
	// BackendSum is the running-sum specialization for addition.
	BackendSum
)

// String returns a string representation of the Backend.
func (b Backend) String() string {
	switch b {
	case BackendScalar:
		return "scalar"
	case BackendBatched:
		return "batched"
	case BackendSum:
		return "sum"
	default:
		return fmt.Sprintf("Backend(%d)", b)
	}
}

// Path identifies how an axis reduction was consumed by its target.
type Path uint8

const (
	// PathReset reset the target because the operand had no rows to fold.
	PathReset Path = iota
	// PathNoop left the target untouched.
	PathNoop
	// PathRows folded the operand into the target one row at a time.
	PathRows
	// PathEvaluate materialized the whole reduction before applying it.
	PathEvaluate
	// PathElements applied the reduction element by element.
	PathElements
	// PathOperand materialized the operand and applied the reduction of
	// the concrete result element by element.
	PathOperand
	// PathParallel applied the reduction in disjoint ranges on several workers.
	PathParallel
)

// String returns a string representation of the Path.
func (p Path) String() string {
	switch p {
	case PathReset:
		return "reset"
	case PathNoop:
		return "noop"
	case PathRows:
		return "rows"
	case PathEvaluate:
		return "evaluate"
	case PathElements:
		return "elements"
	case PathOperand:
		return "operand"
	case PathParallel:
		return "parallel"
	default:
		return fmt.Sprintf("Path(%d)", p)
	}
}

// Evaluates reports whether the path materializes a temporary.
func (p Path) Evaluates() bool {
	return p == PathEvaluate || p == PathOperand
}

// lanes returns the register width used for batched folds of T, or 1 when
// no vector ISA is active.
func lanes[T model.Number]() int {
	if !simd.Enabled() {
		return 1
	}
	return simd.Lanes[T]()
}

// selectBackend picks the full-reduction kernel for a row-major source.
// Batched kernels require a vector ISA, an operand with register loads and
// a vectorizable operation.
func selectBackend[T model.Number](src matrix.Matrix[T], op functor.Op[T]) Backend {
	if !simd.Enabled() || !src.SIMDEnabled() || !functor.Vectorizable(op) {
		return BackendScalar
	}
	if _, ok := src.(kernel.BatchSource[T]); !ok {
		return BackendScalar
	}
	if functor.KindOf(op) == functor.KindAdd {
		return BackendSum
	}
	return BackendBatched
}

// selectPath picks how r is consumed by a target in mode.
//
// Column-wise folds of a row-major source (axis 0 after transposition) have
// specialized paths: an empty operand resets the target for assignment
// and multiplication and leaves it alone for addition and subtraction;
// assignment folds row by row; addition, subtraction and multiplication
// fold row by row when the operation is the matching one; everything else
// materializes the reduction first.
//
// Row-wise folds (axis 1) are applied element by element, after
// materializing the operand when it requires evaluation.
//
// Sparse targets and targets aliased with the operand always receive a
// materialized reduction.
func selectPath[T model.Number](target matrix.Target[T], r *reduction[T], mode Mode) Path {
	if _, ok := target.(matrix.DenseTarget[T]); !ok || target.Kind() != model.Dense {
		return PathEvaluate
	}
	if aliased(target, r) {
		return PathEvaluate
	}

	if r.axis == 1 {
		if r.src.RequiresEvaluation() {
			return PathOperand
		}
		return PathElements
	}

	kind := functor.KindOf(r.op)
	empty := r.src.Rows() == 0

	switch mode {
	case ModeAssign:
		if empty {
			return PathReset
		}
		return PathRows
	case ModeAdd, ModeSub:
		if empty {
			return PathNoop
		}
		if kind == functor.KindAdd {
			return PathRows
		}
		return PathEvaluate
	case ModeMult:
		if empty {
			return PathReset
		}
		if kind == functor.KindMult {
			return PathRows
		}
		return PathEvaluate
	default:
		return PathEvaluate
	}
}

// pointerer is implemented by targets that can report their storage address.
type pointerer interface {
	Pointer() unsafe.Pointer
}

func aliased[T model.Number](target matrix.Target[T], r *reduction[T]) bool {
	p, ok := target.(pointerer)
	return ok && r.CanAlias(p.Pointer())
}
