// Package grid provides the raw in-memory store behind every table: an ordered
// list of rows, each an independently sized list of nullable text cells.
//
// A Grid knows nothing about columns, headers or data types. Every operation is
// total over all integer inputs: out-of-range reads return Absent or an empty
// row, and out-of-range writes either extend the grid or do nothing. Input
// files are frequently ragged and reading them must never fault.
//
// A Grid is not safe for concurrent use; callers serialize access.
package grid

import (
	"slices"
	"strings"
)

// extendThreshold is the number of cells a row may grow by in place. A write
// further past the end than this reallocates the row with spare capacity.
const extendThreshold = 10

// Grid is a mutable, growable 2-D text store. The zero value is an empty grid.
type Grid struct {
	rows []Row
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{}
}

// FromRows returns a grid holding a deep copy of rows.
func FromRows(rows []Row) *Grid {
	g := &Grid{rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		g.rows = append(g.rows, r.Clone())
	}
	return g
}

// FromStrings returns a grid holding data, every string as a present cell.
func FromStrings(data [][]string) *Grid {
	g := &Grid{rows: make([]Row, 0, len(data))}
	for _, r := range data {
		g.rows = append(g.rows, Strings(r...))
	}
	return g
}

// Size returns the number of rows.
func (g *Grid) Size() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// Row returns a copy of the row at i, or an empty row if i is out of bounds.
func (g *Grid) Row(i int) Row {
	if g == nil || i < 0 || i >= len(g.rows) {
		return Row{}
	}
	return g.rows[i].Clone()
}

// Rows returns a copy of all rows.
func (g *Grid) Rows() []Row {
	if g == nil {
		return nil
	}
	out := make([]Row, len(g.rows))
	for i, r := range g.rows {
		out[i] = r.Clone()
	}
	return out
}

// Value returns the cell at (row, col), or Absent if either index is out of
// bounds. It never extends the grid.
func (g *Grid) Value(row, col int) Cell {
	if g == nil || row < 0 || row >= len(g.rows) {
		return Absent
	}
	return g.rows[row].At(col)
}

// SetValue stores value at (row, col) and returns the previous cell.
//
// Writing a present value past the end of the grid appends empty rows until
// row exists; writing past the end of a row pads it with absent cells up to
// col. Writing Absent never allocates: out of bounds it is a no-op that
// returns Absent.
func (g *Grid) SetValue(row, col int, value Cell) Cell {
	if row < 0 || col < 0 {
		return Absent
	}

	if row >= len(g.rows) {
		if !value.Valid {
			return Absent
		}
		g.padRows(row + 1)
	}

	r := g.rows[row]
	if col >= len(r) {
		if !value.Valid {
			return Absent
		}
		r = extend(r, col)
		g.rows[row] = r
	}

	prev := r[col]
	r[col] = value
	return prev
}

// extend pads r with absent cells so that col is a valid index.
func extend(r Row, col int) Row {
	if col-len(r) > extendThreshold {
		grown := make(Row, len(r), max(col+1, extendThreshold))
		copy(grown, r)
		r = grown
	}
	for len(r) <= col {
		r = append(r, Absent)
	}
	return r
}

// padRows appends empty rows until the grid holds n rows.
func (g *Grid) padRows(n int) {
	for len(g.rows) < n {
		g.rows = append(g.rows, Row{})
	}
}

// Add appends a copy of row. A nil row is stored as an empty row.
func (g *Grid) Add(row Row) *Grid {
	g.rows = append(g.rows, ownRow(row))
	return g
}

// InsertBefore inserts a copy of row so that it ends up at index i.
//
// A negative index inserts at the front. An index past the end pads the grid
// with empty rows first.
func (g *Grid) InsertBefore(i int, row Row) *Grid {
	pos := max(0, i)
	if pos > len(g.rows) {
		g.padRows(pos)
	}
	g.rows = slices.Insert(g.rows, pos, ownRow(row))
	return g
}

// InsertAfter inserts a copy of row right after index i.
func (g *Grid) InsertAfter(i int, row Row) *Grid {
	return g.InsertBefore(i+1, row)
}

// Remove deletes the row at i, shifting later rows up. Out of bounds is a no-op.
func (g *Grid) Remove(i int) *Grid {
	if i < 0 || i >= len(g.rows) {
		return g
	}
	g.rows = slices.Delete(g.rows, i, i+1)
	return g
}

// Clear drops all rows.
func (g *Grid) Clear() *Grid {
	g.rows = nil
	return g
}

// String renders the grid as "[[a b] [c]]".
func (g *Grid) String() string {
	if g == nil {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range g.rows {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.String())
	}
	b.WriteByte(']')
	return b.String()
}

func ownRow(row Row) Row {
	if row == nil {
		return Row{}
	}
	return row.Clone()
}
