// Package model defines core types used throughout lazymat.
//
// # Element Types
//
//   - Number: every built-in integer and floating-point type
//   - Integer, Float: the two halves of Number
//
// # Layout Types
//
//   - Order: RowMajor or ColumnMajor storage of a matrix
//   - Orientation: RowVector or ColumnVector
//   - StorageKind: Dense, Sparse, Uniform or Expression
package model
