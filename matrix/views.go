package matrix

import "github.com/hupe1980/lazymat/model"

type liner[T model.Number] interface {
	Line(k int) []T
}

// RowView is row i of a matrix seen as a row vector.
type RowView[T model.Number] struct {
	m Matrix[T]
	i int
}

// Row returns row i of m. The index is not checked; see CheckedRow.
func Row[T model.Number](m Matrix[T], i int) *RowView[T] {
	return &RowView[T]{m: m, i: i}
}

// CheckedRow returns row i of m or an *IndexError.
func CheckedRow[T model.Number](m Matrix[T], i int) (*RowView[T], error) {
	if err := checkIndex(i, m.Rows()); err != nil {
		return nil, err
	}
	return Row(m, i), nil
}

// Size returns the number of columns.
func (r *RowView[T]) Size() int { return r.m.Columns() }

// At returns element (i, j) of the matrix.
func (r *RowView[T]) At(j int) T { return r.m.At(r.i, j) }

// Orientation returns model.RowVector.
func (r *RowView[T]) Orientation() model.Orientation { return model.RowVector }

// Values returns the backing storage of the row when the matrix is a
// row-major Dense matrix, or nil otherwise.
func (r *RowView[T]) Values() []T {
	if l, ok := r.m.(liner[T]); ok && r.m.Order() == model.RowMajor {
		return l.Line(r.i)
	}
	return nil
}

// ColumnView is column j of a matrix seen as a column vector.
type ColumnView[T model.Number] struct {
	m Matrix[T]
	j int
}

// Column returns column j of m. The index is not checked; see CheckedColumn.
func Column[T model.Number](m Matrix[T], j int) *ColumnView[T] {
	return &ColumnView[T]{m: m, j: j}
}

// CheckedColumn returns column j of m or an *IndexError.
func CheckedColumn[T model.Number](m Matrix[T], j int) (*ColumnView[T], error) {
	if err := checkIndex(j, m.Columns()); err != nil {
		return nil, err
	}
	return Column(m, j), nil
}

// Size returns the number of rows.
func (c *ColumnView[T]) Size() int { return c.m.Rows() }

// At returns element (i, j) of the matrix.
func (c *ColumnView[T]) At(i int) T { return c.m.At(i, c.j) }

// Orientation returns model.ColumnVector.
func (c *ColumnView[T]) Orientation() model.Orientation { return model.ColumnVector }

// Values returns the backing storage of the column when the matrix is a
// column-major Dense matrix, or nil otherwise.
func (c *ColumnView[T]) Values() []T {
	if l, ok := c.m.(liner[T]); ok && c.m.Order() == model.ColumnMajor {
		return l.Line(c.j)
	}
	return nil
}

// TransposedVector is a view of a vector with flipped orientation.
type TransposedVector[T model.Number] struct {
	v Vector[T]
}

// TransVector returns v with flipped orientation, without copying.
func TransVector[T model.Number](v Vector[T]) Vector[T] {
	if t, ok := v.(*TransposedVector[T]); ok {
		return t.v
	}
	return &TransposedVector[T]{v: v}
}

// Size returns the operand size.
func (t *TransposedVector[T]) Size() int { return t.v.Size() }

// At returns operand element i.
func (t *TransposedVector[T]) At(i int) T { return t.v.At(i) }

// Orientation returns the flipped operand orientation.
func (t *TransposedVector[T]) Orientation() model.Orientation { return t.v.Orientation().Flip() }
