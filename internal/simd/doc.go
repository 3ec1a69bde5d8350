// Package simd provides the register model used by the batched fold kernels.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2
//   - ARM64: NEON, SVE2
//
// Runtime CPU feature detection selects the register width. Set
// LAZYMAT_SIMD=generic to force the scalar fallback everywhere.
//
// # Operations
//
//   - Lanes: register width divided by the element size
//   - Lane-wise: AddInto, MulInto, MaxInto, MinInto
//   - Horizontal: ReduceSum, ReduceProd, Reduce
package simd
