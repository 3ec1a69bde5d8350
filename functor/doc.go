// Package functor provides the binary operations used by reductions.
//
// # Operations
//
//   - Add, Mult: sum and product; both have specialized reduction paths
//   - Max, Min: element selection
//   - Func: user-supplied function with an optional lane-wise batch form
//
// Every operation must be associative, and commutative when the result
// has to be identical across backends.
//
// # Usage
//
//	total := lazymat.Reduce(m, functor.Add[float64]{})
//	gcd := lazymat.Reduce(m, functor.NewFunc(gcdInt))
package functor
