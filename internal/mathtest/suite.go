package mathtest

import "github.com/hupe1980/lazymat/model"

// SuiteConfig bounds the dimension sweeps of a suite.
type SuiteConfig struct {
	// MaxDim is the largest row and column count of swept operands.
	MaxDim int
	// Large adds one case per flavor with operands large enough to be
	// split across parallel workers.
	Large bool
}

// DefaultSuiteConfig is the sweep used by the command-line driver.
var DefaultSuiteConfig = SuiteConfig{MaxDim: 6, Large: true}

// OperandSuite returns reduction tests of single operands of every flavor.
func OperandSuite[T model.Number](cfg SuiteConfig) []Test[T] {
	var tests []Test[T]
	add := func(c Creator[T]) { tests = append(tests, Test[T]{Op: OpOperand, Left: c}) }

	for _, tag := range []Tag{TagA, TagB} {
		add(Static[T](3, 3, tag))
		add(Static[T](5, 17, tag))
		add(Static[T](16, 8, tag))
	}
	for _, tag := range []Tag{TagA, TagB} {
		sweep(cfg.MaxDim, func(i, j int) { add(Dynamic[T](i, j, tag)) })
		sweep(cfg.MaxDim, func(i, j int) {
			for nnz := 0; nnz <= i*j; nnz += max(1, i*j/3) {
				add(Compressed[T](i, j, nnz, tag))
			}
		})
		sweep(cfg.MaxDim, func(i, j int) { add(Uniform[T](i, j, tag)) })
		if cfg.Large {
			add(Dynamic[T](67, 127, tag))
			add(Compressed[T](67, 127, 1000, tag))
			add(Uniform[T](67, 127, tag))
		}
	}
	return tests
}

// ElementwiseSuite returns addition and subtraction tests of operand
// pairs of every flavor.
func ElementwiseSuite[T model.Number](cfg SuiteConfig) []Test[T] {
	var tests []Test[T]
	creators := pairCreators[T]()

	for _, op := range []Operation{OpAdd, OpSub} {
		tests = append(tests,
			Test[T]{Op: op, Left: Static[T](3, 3, TagA), Right: Dynamic[T](3, 3, TagB)},
			Test[T]{Op: op, Left: Static[T](16, 8, TagB), Right: Compressed[T](16, 8, 40, TagA)},
		)
		for _, l := range creators {
			for _, r := range creators {
				sweep(cfg.MaxDim, func(i, j int) {
					tests = append(tests, Test[T]{Op: op, Left: l.Resize(i, j), Right: r.Resize(i, j)})
				})
				if cfg.Large {
					tests = append(tests, Test[T]{Op: op, Left: l.Resize(67, 127), Right: r.Resize(67, 127)})
				}
			}
		}
	}
	return tests
}

// MultSuite returns matrix product tests of operand pairs of every flavor.
func MultSuite[T model.Number](cfg SuiteConfig) []Test[T] {
	var tests []Test[T]
	creators := pairCreators[T]()
	dim := min(cfg.MaxDim, 4)

	tests = append(tests,
		Test[T]{Op: OpMult, Left: Static[T](3, 3, TagA), Right: Dynamic[T](3, 5, TagB)},
		Test[T]{Op: OpMult, Left: Dynamic[T](7, 3, TagB), Right: Static[T](3, 3, TagA)},
	)
	for _, l := range creators {
		for _, r := range creators {
			for k := 0; k <= dim; k++ {
				sweep(dim, func(i, j int) {
					tests = append(tests, Test[T]{Op: OpMult, Left: l.Resize(i, k), Right: r.Resize(k, j)})
				})
			}
			if cfg.Large {
				tests = append(tests, Test[T]{Op: OpMult, Left: l.Resize(50, 9), Right: r.Resize(9, 70)})
			}
		}
	}
	return tests
}

// Suite returns every test of the harness.
func Suite[T model.Number](cfg SuiteConfig) []Test[T] {
	tests := OperandSuite[T](cfg)
	tests = append(tests, ElementwiseSuite[T](cfg)...)
	return append(tests, MultSuite[T](cfg)...)
}

func pairCreators[T model.Number]() []Creator[T] {
	return []Creator[T]{
		Dynamic[T](0, 0, TagA),
		Dynamic[T](0, 0, TagB),
		Compressed[T](0, 0, 0, TagA),
		Uniform[T](0, 0, TagB),
	}
}

func sweep(n int, fn func(i, j int)) {
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			fn(i, j)
		}
	}
}
