// Package testutil provides testing utilities for lazymat.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random matrices and naive reference
// folds to compare reduction backends against.
//
// # Random Matrices
//
//	rng := testutil.NewRNG(seed)
//	m := testutil.Dense[float64](rng, 7, 13, -1, 1, matrix.WithPadding())
//	s := testutil.Sparse[int](rng, 16, 8, 20, -5, 5, model.RowMajor)
//
// # Reference Folds
//
//	want := testutil.FoldColumns[int](m, func(a, b int) int { return a + b })
package testutil
