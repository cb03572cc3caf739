package table

import (
	"math"
	"strconv"
	"testing"

	"github.com/JonMunkholm/gridbook/internal/grid"
)

// layoutGrid holds every part of a spreadsheet layout, one cell per row.
func layoutGrid() *grid.Grid {
	return grid.FromStrings([][]string{
		{"header"},
		{"header"},
		{"column"},
		{"trailer"},
		{"data"},
		{"moreData"},
		{"footer"},
	})
}

func TestSpreadsheet_Window(t *testing.T) {
	s := NewSpreadsheet(layoutGrid()).
		SetSkipHeader(2).
		SetSkipTrailer(1).
		SetSkipFooter(1)

	if got := s.Columns().String(); got != "[column]" {
		t.Errorf("Columns() = %s, want [column]", got)
	}
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
	if got := s.Row(0).String(); got != "[data]" {
		t.Errorf("Row(0) = %s, want [data]", got)
	}
	if got := s.Row(1).String(); got != "[moreData]" {
		t.Errorf("Row(1) = %s, want [moreData]", got)
	}
	if got := s.Value(0, 0); got != grid.Text("data") {
		t.Errorf("Value(0, 0) = %v, want data", got)
	}
	if got := s.ValueByName("COLUMN", 1); got != grid.Text("moreData") {
		t.Errorf("ValueByName(COLUMN, 1) = %v, want moreData", got)
	}

	// the footer is outside the window
	if got := s.Row(2); got.Len() != 0 {
		t.Errorf("Row(2) = %v, want empty", got)
	}
	if got := s.Value(2, 0); !got.IsAbsent() {
		t.Errorf("Value(2, 0) = %v, want absent", got)
	}
	if got := s.Value(-1, 0); !got.IsAbsent() {
		t.Errorf("Value(-1, 0) = %v, want absent", got)
	}

	data := s.Data()
	if len(data) != s.Size() {
		t.Fatalf("len(Data()) = %d, want %d", len(data), s.Size())
	}
	if data[1].At(0) != grid.Text("moreData") {
		t.Errorf("Data()[1] = %v, want [moreData]", data[1])
	}
}

func TestSpreadsheet_WindowTooLarge(t *testing.T) {
	s := NewSpreadsheet(layoutGrid()).
		SetSkipHeader(4).
		SetSkipTrailer(4).
		SetSkipFooter(4)

	if s.Size() != 0 {
		t.Errorf("Size() = %d, want 0", s.Size())
	}
	if got := s.Row(0); got.Len() != 0 {
		t.Errorf("Row(0) = %v, want empty", got)
	}
	if got := s.Data(); len(got) != 0 {
		t.Errorf("Data() = %v, want empty", got)
	}
}

func TestSpreadsheet_HugeSkipCounts(t *testing.T) {
	tests := []struct {
		name                    string
		header, trailer, footer int
	}{
		{"header and trailer", math.MaxInt, math.MaxInt, 0},
		{"all three", math.MaxInt, math.MaxInt, math.MaxInt},
		{"trailer and footer", 0, math.MaxInt, math.MaxInt},
		{"trailer only", 0, math.MaxInt, 0},
		{"footer only", 0, 0, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpreadsheet(grid.FromStrings([][]string{{"col"}, {"a"}, {"b"}})).
				SetSkipHeader(tt.header).
				SetSkipTrailer(tt.trailer).
				SetSkipFooter(tt.footer)

			if s.Size() != 0 {
				t.Errorf("Size() = %d, want 0", s.Size())
			}
			if got := s.Data(); len(got) != 0 {
				t.Errorf("Data() = %v, want empty", got)
			}
			if got := s.Row(0); got.Len() != 0 {
				t.Errorf("Row(0) = %v, want empty", got)
			}
			if got := s.Value(0, 0); got != grid.Absent {
				t.Errorf("Value(0, 0) = %v, want absent", got)
			}
		})
	}

	// the same limits reached through factory parameters
	huge := strconv.Itoa(math.MaxInt)
	tbl := Create(grid.FromStrings([][]string{{"col"}, {"a"}, {"b"}}), Parameters{
		ParamHeader:  huge,
		ParamTrailer: huge,
	})
	if tbl.Size() != 0 || len(tbl.Data()) != 0 || tbl.Columns().Len() != 0 {
		t.Errorf("Create with huge skips: Size() = %d, Data() = %v, Columns() = %v",
			tbl.Size(), tbl.Data(), tbl.Columns())
	}
}

func TestSpreadsheet_Defaults(t *testing.T) {
	g := grid.FromStrings([][]string{
		{"Name", "Amount"},
		{"a", "1"},
		{"b", "2"},
	})
	s := NewSpreadsheet(g)

	if s.Size() != 2 {
		t.Errorf("Size() = %d, want 2", s.Size())
	}
	if got := s.Value(1, 1); got != grid.Text("2") {
		t.Errorf("Value(1, 1) = %v, want 2", got)
	}
	if got := s.String(); got != "[Name Amount], [[a 1] [b 2]]" {
		t.Errorf("String() = %q", got)
	}
}

func TestSpreadsheet_SkipCountsReflectedImmediately(t *testing.T) {
	s := NewSpreadsheet(layoutGrid())
	if s.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", s.Size())
	}

	s.SetSkipHeader(2)
	if got, _ := s.Column(0); got != "column" {
		t.Errorf("Column(0) = %q, want column", got)
	}
	if s.Size() != 4 {
		t.Errorf("Size() = %d, want 4", s.Size())
	}

	s.Grid().Add(grid.Strings("appended"))
	if s.Size() != 5 {
		t.Errorf("Size() after grid Add = %d, want 5", s.Size())
	}
}

func TestSpreadsheet_NegativeSkipsClamp(t *testing.T) {
	s := NewSpreadsheet(layoutGrid()).
		SetSkipHeader(-3).
		SetSkipTrailer(-1).
		SetSkipFooter(-100)

	if s.SkipHeader() != 0 || s.SkipTrailer() != 0 || s.SkipFooter() != 0 {
		t.Errorf("skips = %d/%d/%d, want 0/0/0", s.SkipHeader(), s.SkipTrailer(), s.SkipFooter())
	}
	if s.Size() != 6 {
		t.Errorf("Size() = %d, want 6", s.Size())
	}
}

func TestSpreadsheet_IndexOf(t *testing.T) {
	g := grid.New().Add(grid.Row{grid.Text("Column"), grid.Absent, grid.Text("Other"), grid.Text("COLUMN")})
	s := NewSpreadsheet(g)

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"exact", "Column", 0},
		{"lower case", "column", 0},
		{"upper case returns first match", "COLUMN", 0},
		{"later column", "other", 2},
		{"unknown", "nope", NotFound},
		{"empty name", "", NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IndexOf(tt.in); got != tt.want {
				t.Errorf("IndexOf(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSpreadsheet_Column(t *testing.T) {
	g := grid.New().Add(grid.Row{grid.Text("A"), grid.Absent})
	s := NewSpreadsheet(g)

	tests := []struct {
		i      int
		want   string
		wantOK bool
	}{
		{0, "A", true},
		{1, "", false},
		{2, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		got, ok := s.Column(tt.i)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Column(%d) = (%q, %v), want (%q, %v)", tt.i, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSpreadsheet_SetColumn(t *testing.T) {
	g := grid.FromStrings([][]string{{"a", "b"}, {"1", "2"}})
	s := NewSpreadsheet(g)

	if got := s.SetColumn(1, "renamed"); got != 1 {
		t.Errorf("SetColumn(1) = %d, want 1", got)
	}
	if got := s.IndexOf("RENAMED"); got != 1 {
		t.Errorf("IndexOf(RENAMED) = %d, want 1", got)
	}
	if got := g.Value(0, 1); got != grid.Text("renamed") {
		t.Errorf("grid column cell = %v, want renamed", got)
	}

	// never extends the column row
	if got := s.SetColumn(2, "new"); got != NotFound {
		t.Errorf("SetColumn(2) = %d, want NotFound", got)
	}
	if s.Columns().Len() != 2 {
		t.Errorf("Columns().Len() = %d, want 2", s.Columns().Len())
	}
	if got := s.SetColumn(-1, "x"); got != NotFound {
		t.Errorf("SetColumn(-1) = %d, want NotFound", got)
	}

	s.SetSkipHeader(5)
	if got := s.SetColumn(0, "x"); got != NotFound {
		t.Errorf("SetColumn without column row = %d, want NotFound", got)
	}
}

func TestSpreadsheet_NilGrid(t *testing.T) {
	s := NewSpreadsheet(nil)

	if s.Size() != 0 {
		t.Errorf("Size() = %d, want 0", s.Size())
	}
	if s.Columns().Len() != 0 {
		t.Errorf("Columns() = %v, want empty", s.Columns())
	}
	if s.IndexOf("a") != NotFound {
		t.Error("IndexOf on nil grid should be NotFound")
	}
	if s.SetColumn(0, "a") != NotFound {
		t.Error("SetColumn on nil grid should be NotFound")
	}
	if !s.Value(0, 0).IsAbsent() {
		t.Error("Value on nil grid should be absent")
	}
	if s.String() != "[], []" {
		t.Errorf("String() = %q, want %q", s.String(), "[], []")
	}
}

func TestSpreadsheet_RowDoesNotAlias(t *testing.T) {
	g := grid.FromStrings([][]string{{"c"}, {"v"}})
	s := NewSpreadsheet(g)

	r := s.Row(0)
	r[0] = grid.Text("changed")
	if got := s.Value(0, 0); got != grid.Text("v") {
		t.Errorf("Value(0, 0) = %v, want v", got)
	}
}

func TestSpreadsheet_Parameters(t *testing.T) {
	s := NewSpreadsheet(nil).SetSkipHeader(2).SetSkipTrailer(1).SetSkipFooter(3)
	p := s.Parameters()

	want := map[string]string{
		ParamHeader:  "2",
		ParamTrailer: "1",
		ParamFooter:  "3",
		ParamClass:   SpreadsheetClass,
	}
	for k, v := range want {
		if p[k] != v {
			t.Errorf("Parameters()[%q] = %q, want %q", k, p[k], v)
		}
	}
}
