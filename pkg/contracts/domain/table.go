package domain

import "strings"

// ColumnKind is the empirical type of a column, decided once before imputation
type ColumnKind string

const (
	// ColumnNumeric has at least one present value and every present value is a number
	ColumnNumeric ColumnKind = "numeric"
	// ColumnText has at least one present text value
	ColumnText ColumnKind = "text"
	// ColumnEmpty has no present values at all
	ColumnEmpty ColumnKind = "empty"
)

// Table is an ordered set of rows sharing one header.
// Every row holds exactly len(Columns) values.
type Table struct {
	Columns []string
	Rows    [][]Value
}

// NewTable creates an empty table with the given header
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// AppendRow adds a row. Short rows are padded with missing values.
func (t *Table) AppendRow(row []Value) {
	r := make([]Value, len(t.Columns))
	copy(r, row)
	for i := len(row); i < len(r); i++ {
		r[i] = Missing()
	}
	t.Rows = append(t.Rows, r)
}

// Clone returns a deep copy so stages never edit their input
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns)
	out.Rows = make([][]Value, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]Value, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

// ColumnIndex returns the position of the named column or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column with the exact name exists
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns the values of the column at idx, top to bottom
func (t *Table) Column(idx int) []Value {
	vals := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = row[idx]
	}
	return vals
}

// DropColumn returns a copy without the named column. The second result is
// false when the column was not present, in which case the copy is unchanged.
func (t *Table) DropColumn(name string) (*Table, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return t.Clone(), false
	}

	cols := make([]string, 0, len(t.Columns)-1)
	cols = append(cols, t.Columns[:idx]...)
	cols = append(cols, t.Columns[idx+1:]...)

	out := &Table{Columns: cols, Rows: make([][]Value, len(t.Rows))}
	for i, row := range t.Rows {
		r := make([]Value, 0, len(row)-1)
		r = append(r, row[:idx]...)
		r = append(r, row[idx+1:]...)
		out.Rows[i] = r
	}
	return out, true
}

// MissingCount returns the number of missing values in the column at idx
func (t *Table) MissingCount(idx int) int {
	n := 0
	for _, row := range t.Rows {
		if row[idx].IsMissing() {
			n++
		}
	}
	return n
}

// RowKey joins the value keys of a row. Rows with equal keys are equal in
// every column.
func RowKey(row []Value) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(v.Key())
	}
	return b.String()
}

// RowsEqual reports whether two rows match in every column
func RowsEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ClassifyColumn decides the kind of a column from its values. Missing values
// are ignored; a single text value makes the column text.
func ClassifyColumn(values []Value) ColumnKind {
	present := 0
	for _, v := range values {
		switch v.Kind {
		case KindText:
			return ColumnText
		case KindNumber:
			present++
		}
	}
	if present == 0 {
		return ColumnEmpty
	}
	return ColumnNumeric
}

// ColumnKind classifies the column at idx
func (t *Table) ColumnKind(idx int) ColumnKind {
	return ClassifyColumn(t.Column(idx))
}
