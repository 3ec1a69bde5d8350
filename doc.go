// Package lazymat provides lazily evaluated reductions over numeric matrices.
//
// A reduction folds a matrix with an associative operation, either to a
// single value or along one axis to a vector. Axis reductions are
// expressions: building one computes nothing, and the fold runs when an
// element is read or the reduction is consumed by a target.
//
// # Quick Start
//
//	m, _ := matrix.NewDenseFrom([][]int{{1, 0, 2}, {1, 3, 4}})
//
//	lazymat.Sum[int](m)                              // 11
//	cols := lazymat.SumAxis[lazymat.Axis0, int](m)   // (2 3 6)
//	rows := lazymat.ReduceRows[int](m, functor.Max[int]{})
//
//	v := matrix.NewDenseVector[int](2, model.ColumnVector)
//	_ = lazymat.AddAssign[int](v, rows)              // v += (2 4)
//
// # Backends
//
// Full reductions run on one of three kernels, chosen per call:
//
//	scalar   any operand or operation
//	batched  vector ISA active, operand supports register loads, operation is vectorizable
//	sum      like batched, for addition; skips the remainder loop on padded operands
//
// Column-major operands are reduced through a zero-copy transpose.
//
// # Consumption
//
// Assign, AddAssign, SubAssign, MultAssign and DivAssign combine an axis
// reduction into a target. Column-wise reductions fold row by row into
// dense targets where the operation allows it and are materialized first
// otherwise. The SMP variants split the target into ranges processed on
// several goroutines once the reduction is larger than the SMP threshold.
//
// # Configuration
//
//	lazymat.Configure(
//	    lazymat.WithLogLevel(slog.LevelDebug),
//	    lazymat.WithMetricsCollector(&lazymat.BasicMetricsCollector{}),
//	    lazymat.WithMaxWorkers(4),
//	)
//
// The environment variables LAZYMAT_SIMD and LAZYMAT_SMP_WORKERS override
// the detected instruction set and the worker count.
package lazymat
