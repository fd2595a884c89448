package lazy

import (
	"iter"
	"slices"
)

// Column names of a [Table], in order.
var Columns = [...]string{"name", "envir", "expr", "value"}

// Deparse is a table column whose cells are rendered for humans with
// [DeparseValue] rather than printed raw.
type Deparse []any

// Class returns [ClassDeparse].
func (Deparse) Class() string { return ClassDeparse }

// Strings renders every cell with [DeparseValue].
func (d Deparse) Strings() []string {
	s := make([]string, len(d))
	for i, v := range d {
		s[i] = DeparseValue(v)
	}

	return s
}

// Table is a read-only, point-in-time projection of a [List]: one row per
// entry describing the entry after chain resolution. All columns have the
// same length and the row names equal the Name column.
type Table struct {
	Name  []string
	Envir Deparse // Env, or nil when the promise has none
	Expr  Deparse
	Value Deparse // cached value, or nil when unforced
}

// Row is a single row of a [Table].
type Row struct {
	Name  string
	Envir Env
	Expr  Expr
	Value Value
}

// Class returns [ClassTable].
func (*Table) Class() string { return ClassTable }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Name) }

// RowNames returns the row labels, which equal the Name column.
func (t *Table) RowNames() []string { return slices.Clone(t.Name) }

// Row returns row i.
func (t *Table) Row(i int) Row {
	env, _ := t.Envir[i].(Env)

	return Row{
		Name:  t.Name[i],
		Envir: env,
		Expr:  t.Expr[i],
		Value: t.Value[i],
	}
}

// Rows returns an iterator over index/row pairs.
func (t *Table) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := range t.Name {
			if !yield(i, t.Row(i)) {
				return
			}
		}
	}
}

// subset returns a new table holding the rows at the given indices.
func (t *Table) subset(index []int) *Table {
	s := makeTable(len(index))

	for _, i := range index {
		s.Name = append(s.Name, t.Name[i])
		s.Envir = append(s.Envir, t.Envir[i])
		s.Expr = append(s.Expr, t.Expr[i])
		s.Value = append(s.Value, t.Value[i])
	}

	return s
}

func makeTable(n int) *Table {
	return &Table{
		Name:  make([]string, 0, n),
		Envir: make(Deparse, 0, n),
		Expr:  make(Deparse, 0, n),
		Value: make(Deparse, 0, n),
	}
}
