package grid

import "strings"

// Cell is a nullable text value.
//
// The zero value is Absent. A present cell may hold the empty string, but
// readers never produce one: empty input fields become Absent so that "no
// value" has exactly one representation.
type Cell struct {
	Value string
	Valid bool
}

// Absent is the "no value" cell.
var Absent Cell

// Text returns a present cell holding s.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// IsAbsent reports whether the cell holds no value.
func (c Cell) IsAbsent() bool {
	return !c.Valid
}

// String returns the cell text, or "<nil>" for an absent cell.
func (c Cell) String() string {
	if !c.Valid {
		return "<nil>"
	}
	return c.Value
}

// Row is an ordered sequence of cells. Rows in a grid may have different lengths.
type Row []Cell

// Strings builds a row of present cells.
func Strings(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r)
}

// At returns the cell at i, or Absent if i is out of bounds.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Absent
	}
	return r[i]
}

// Clone returns a copy of the row that shares no storage with r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Texts returns the cell values with absent cells mapped to "".
func (r Row) Texts() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Value
	}
	return out
}

// String renders the row as "[a b <nil>]".
func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range r {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}
