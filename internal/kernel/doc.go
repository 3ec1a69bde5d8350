// Package kernel implements the numeric fold loops behind reductions: a
// scalar fallback, a register-tiled batched fold with a remainder tail, and
// a running-sum specialization for addition.
//
// All kernels expect a row-major source. Column-major operands are handed
// in through a zero-copy transpose.
package kernel
