// Package mathtest is a regression harness for reductions over operands and
// operand expressions of every storage flavor.
//
// A Test combines a left and a right operand Creator with an Operation and
// is named after both creators, e.g. "M3x3aMDb" for a static 3x3 row-major
// matrix combined with a dynamic column-major one. Running a test reduces
// the resulting expression in every supported way (full, column-wise,
// row-wise, evaluated, iterated and consumed by a target in every mode,
// serially and in parallel) and compares each result with a plain
// reference fold of the materialized expression.
package mathtest
