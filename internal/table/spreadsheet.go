package table

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/gridbook/internal/grid"
)

// SpreadsheetClass is the registry name of the Spreadsheet layout.
const SpreadsheetClass = "Spreadsheet"

// Spreadsheet is the layout of a typical exported sheet:
//
//	skipHeader rows of preamble
//	one column row
//	skipTrailer rows between the column row and the data
//	data rows
//	skipFooter rows at the end
//
// All positions are derived from the skip counts and the current grid size on
// each call. A nil grid behaves as an empty one.
type Spreadsheet struct {
	grid        *grid.Grid
	skipHeader  int
	skipTrailer int
	skipFooter  int
}

// NewSpreadsheet returns a Spreadsheet over g with all skip counts zero.
func NewSpreadsheet(g *grid.Grid) *Spreadsheet {
	return &Spreadsheet{grid: g}
}

// Grid returns the wrapped grid.
func (s *Spreadsheet) Grid() *grid.Grid { return s.grid }

// SetGrid replaces the wrapped grid.
func (s *Spreadsheet) SetGrid(g *grid.Grid) *Spreadsheet {
	s.grid = g
	return s
}

func (s *Spreadsheet) SkipHeader() int  { return s.skipHeader }
func (s *Spreadsheet) SkipTrailer() int { return s.skipTrailer }
func (s *Spreadsheet) SkipFooter() int  { return s.skipFooter }

// SetSkipHeader sets the number of rows above the column row. Negative
// values are clamped to 0.
func (s *Spreadsheet) SetSkipHeader(n int) *Spreadsheet {
	s.skipHeader = max(0, n)
	return s
}

// SetSkipTrailer sets the number of rows between the column row and the data.
// Negative values are clamped to 0.
func (s *Spreadsheet) SetSkipTrailer(n int) *Spreadsheet {
	s.skipTrailer = max(0, n)
	return s
}

// SetSkipFooter sets the number of rows after the data. Negative values are
// clamped to 0.
func (s *Spreadsheet) SetSkipFooter(n int) *Spreadsheet {
	s.skipFooter = max(0, n)
	return s
}

// columnRow returns the grid index of the column row, or NotFound.
func (s *Spreadsheet) columnRow() int {
	if s.grid.Size() > s.skipHeader {
		return s.skipHeader
	}
	return NotFound
}

// dataRowStart is only meaningful when Size() > 0; callers check first so
// the sum stays below the grid size.
func (s *Spreadsheet) dataRowStart() int {
	return 1 + s.skipHeader + s.skipTrailer
}

func (s *Spreadsheet) Columns() grid.Row {
	cr := s.columnRow()
	if cr == NotFound {
		return grid.Row{}
	}
	return s.grid.Row(cr)
}

func (s *Spreadsheet) Column(i int) (string, bool) {
	cr := s.columnRow()
	if cr == NotFound {
		return "", false
	}
	c := s.grid.Value(cr, i)
	return c.Value, c.Valid
}

func (s *Spreadsheet) IndexOf(name string) int {
	if name == "" {
		return NotFound
	}
	for i, c := range s.Columns() {
		if c.Valid && strings.EqualFold(c.Value, name) {
			return i
		}
	}
	return NotFound
}

func (s *Spreadsheet) SetColumn(i int, name string) int {
	cr := s.columnRow()
	if cr == NotFound || i < 0 || i >= s.grid.Row(cr).Len() {
		return NotFound
	}
	value := grid.Absent
	if name != "" {
		value = grid.Text(name)
	}
	s.grid.SetValue(cr, i, value)
	return i
}

func (s *Spreadsheet) Row(i int) grid.Row {
	if i < 0 || i >= s.Size() {
		return grid.Row{}
	}
	return s.grid.Row(s.dataRowStart() + i)
}

func (s *Spreadsheet) Value(row, col int) grid.Cell {
	if row < 0 || row >= s.Size() {
		return grid.Absent
	}
	return s.grid.Value(s.dataRowStart()+row, col)
}

func (s *Spreadsheet) ValueByName(column string, row int) grid.Cell {
	col := s.IndexOf(column)
	if col == NotFound {
		return grid.Absent
	}
	return s.Value(row, col)
}

func (s *Spreadsheet) Size() int {
	n := s.grid.Size()
	// every skip count is below n before summing, so the sum cannot overflow
	if s.skipHeader >= n || s.skipTrailer >= n || s.skipFooter >= n {
		return 0
	}
	return max(0, n-(s.skipHeader+s.skipTrailer+s.skipFooter+1))
}

func (s *Spreadsheet) Data() []grid.Row {
	size := s.Size()
	if size == 0 {
		return []grid.Row{}
	}
	start := s.dataRowStart()
	out := make([]grid.Row, 0, size)
	for i := range size {
		out = append(out, s.grid.Row(start+i))
	}
	return out
}

func (s *Spreadsheet) Parameters() Parameters {
	return Parameters{
		ParamHeader:  strconv.Itoa(s.skipHeader),
		ParamTrailer: strconv.Itoa(s.skipTrailer),
		ParamFooter:  strconv.Itoa(s.skipFooter),
		ParamClass:   SpreadsheetClass,
	}
}

// String renders the table as "[columns], [data rows]".
func (s *Spreadsheet) String() string {
	if s.grid == nil {
		return "[], []"
	}
	data := s.Data()
	parts := make([]string, len(data))
	for i, r := range data {
		parts[i] = r.String()
	}
	return s.Columns().String() + ", [" + strings.Join(parts, " ") + "]"
}
