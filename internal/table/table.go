// Package table provides named-column views over a grid.Grid.
//
// A Table never copies the grid it wraps. It translates logical row and column
// positions into grid coordinates on every call, so changes to the grid or to
// the table's configuration are visible immediately. Like the grid itself,
// every accessor is total: invalid positions yield grid.Absent, an empty row
// or NotFound.
package table

import "github.com/JonMunkholm/gridbook/internal/grid"

// NotFound is returned by column lookups that do not match.
const NotFound = -1

// Table is a read-mostly view with named columns and logical data rows.
type Table interface {
	// Columns returns a copy of the column row, empty if there is none.
	Columns() grid.Row
	// Column returns the name at position i. ok is false when i is out of
	// range or the column has no name.
	Column(i int) (name string, ok bool)
	// IndexOf returns the first position whose name matches case-insensitively,
	// or NotFound.
	IndexOf(name string) int
	// SetColumn renames an existing column and returns i, or NotFound if the
	// column does not exist. It never extends the column row.
	SetColumn(i int, name string) int

	// Row returns a copy of logical data row i, empty if out of range.
	Row(i int) grid.Row
	// Value returns the cell at logical (row, col).
	Value(row, col int) grid.Cell
	// ValueByName resolves column with IndexOf and returns the cell at row.
	ValueByName(column string, row int) grid.Cell
	// Size returns the number of logical data rows.
	Size() int
	// Data returns a copy of every logical data row.
	Data() []grid.Row

	// Parameters returns the configuration needed to recreate the table
	// through Create.
	Parameters() Parameters
}
