// Package matrix provides the containers, views and lazy expressions that
// reductions consume.
//
// Dense, Sparse and Uniform are concrete containers. Add, Sub, Scale and Mul
// build lazy expressions over them, and Trans returns a zero-copy transpose.
// DenseVector and SparseVector are the assignment targets: reductions write
// into them through the Target and DenseTarget interfaces.
package matrix
