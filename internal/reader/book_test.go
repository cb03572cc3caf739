package reader

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"testing"

	"github.com/JonMunkholm/gridbook/internal/table"
)

func TestBookReader_Files(t *testing.T) {
	dir := t.TempDir()
	simple := writeFile(t, dir, "simple.csv", simpleCSV)
	other := writeFile(t, dir, "Other.txt", "x,y\n1,2\n")
	missing := filepath.Join(dir, "missing.csv")

	r := &BookReader{
		Name:  "test",
		Files: []string{simple, missing, other},
	}
	book, ok := r.Read(context.Background())
	if !ok {
		t.Fatal("Read() returned no book")
	}
	if book.Name != "test" {
		t.Errorf("Name = %q, want test", book.Name)
	}
	if got := book.Names(); !slices.Equal(got, []string{"simple", "Other"}) {
		t.Fatalf("sheets = %v, want [simple Other]", got)
	}

	s := book.Sheet("SIMPLE")
	if s == nil {
		t.Fatal("Sheet(SIMPLE) = nil")
	}
	if s.Table.Size() != 4 {
		t.Errorf("simple Size() = %d, want 4", s.Table.Size())
	}
	if got := s.Table.ValueByName("c", 0).Value; got != "c1, e1" {
		t.Errorf("ValueByName(c, 0) = %q, want %q", got, "c1, e1")
	}
}

func TestBookReader_Params(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.csv", "Report\n\nid,name\n--\n1,a\n2,b\ntotal\n")

	r := &BookReader{
		Files: []string{path},
		Params: table.Parameters{
			table.ParamHeader:  "2",
			table.ParamTrailer: "1",
			table.ParamFooter:  "1",
		},
	}
	book, _ := r.Read(context.Background())
	tbl := book.Sheet("report").Table

	if tbl.Size() != 2 {
		t.Errorf("Size() = %d, want 2", tbl.Size())
	}
	if got := tbl.ValueByName("NAME", 1).Value; got != "b" {
		t.Errorf("ValueByName(NAME, 1) = %q, want b", got)
	}
}

func TestBookReader_Dir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "h\n1\n")
	writeFile(t, dir, "a.csv", "h\n1\n")
	writeFile(t, dir, "nested/c.csv", "h\n1\n")
	writeFile(t, dir, "notes.md", "# ignored\n")

	book, ok := (&BookReader{Dir: dir}).Read(context.Background())
	if !ok {
		t.Fatal("Read() returned no book")
	}
	if got := book.Names(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("sheets = %v, want [a b c]", got)
	}

	book, _ = (&BookReader{Dir: dir, Pattern: "*.md"}).Read(context.Background())
	if got := book.Names(); !slices.Equal(got, []string{"notes"}) {
		t.Errorf("sheets = %v, want [notes]", got)
	}
}

func TestBookReader_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/data.csv", "h\n1\n")
	writeFile(t, dir, "b/data.csv", "h\n2\n")
	writeFile(t, dir, "c/DATA.csv", "h\n3\n")

	book, ok := (&BookReader{Dir: dir}).Read(context.Background())
	if !ok {
		t.Fatal("Read() returned no book")
	}
	want := []string{"data", "data#2", "DATA#3"}
	if got := book.Names(); !slices.Equal(got, want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i, name := range want {
		wantValue := strconv.Itoa(i + 1)
		if got := book.Sheet(name).Table.Value(0, 0).Value; got != wantValue {
			t.Errorf("%s Value(0, 0) = %q, want %q", name, got, wantValue)
		}
	}
}

func TestBookReader_NoBook(t *testing.T) {
	tests := []struct {
		name   string
		reader *BookReader
	}{
		{"missing dir", &BookReader{Dir: filepath.Join(t.TempDir(), "nope")}},
		{"bad pattern", &BookReader{Dir: t.TempDir(), Pattern: "[a-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if b, ok := tt.reader.Read(context.Background()); ok || b != nil {
				t.Errorf("Read() = (%v, %v), want (nil, false)", b, ok)
			}
		})
	}
}

func TestBookReader_AllSourcesFail(t *testing.T) {
	r := &BookReader{
		Files: []string{"a.csv", "b.csv"},
		Open: func(string) (io.ReadCloser, error) {
			return nil, errors.New("permission denied")
		},
	}

	book, ok := r.Read(context.Background())
	if !ok {
		t.Fatal("Read() returned no book")
	}
	if book.Len() != 0 {
		t.Errorf("Len() = %d, want 0", book.Len())
	}
}

func TestBookReader_Workbook(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.xlsx")
	writeWorkbook(t, single, map[string][][]any{
		"Data": {{"k"}, {"v"}},
	}, "Data")
	multi := filepath.Join(dir, "multi.xlsx")
	writeWorkbook(t, multi, map[string][][]any{
		"One": {{"k"}, {"1"}},
		"Two": {{"k"}, {"2"}},
	}, "One", "Two")

	book, ok := (&BookReader{Files: []string{single, multi}}).Read(context.Background())
	if !ok {
		t.Fatal("Read() returned no book")
	}
	want := []string{"single", "multi/One", "multi/Two"}
	if got := book.Names(); !slices.Equal(got, want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	if got := book.Sheet("multi/two").Table.Value(0, 0).Value; got != "2" {
		t.Errorf("multi/Two Value(0, 0) = %q, want 2", got)
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/orders.csv", "orders"},
		{"orders", "orders"},
		{"dir/archive.2024.csv", "archive.2024"},
		{"book.XLSX", "book"},
	}
	for _, tt := range tests {
		if got := SheetName(tt.path); got != tt.want {
			t.Errorf("SheetName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
