package grid

import (
	"testing"
)

var (
	testColumns = Strings("A", "B", "C")
	testRows    = []Row{
		Strings("a1", "b1", "c1"),
		Strings("a2", "b2", "c2"),
		{Text("a3"), Absent, Text("c3")},
	}
)

func newTestGrid() *Grid {
	g := New().Add(testColumns)
	for _, r := range testRows {
		g.Add(r)
	}
	return g
}

func assertCell(t *testing.T, g *Grid, row, col int, want Cell) {
	t.Helper()
	if got := g.Value(row, col); got != want {
		t.Errorf("Value(%d, %d) = %v, want %v", row, col, got, want)
	}
}

func TestNew(t *testing.T) {
	g := New()
	if g.Size() != 0 {
		t.Errorf("Size() = %d, want 0", g.Size())
	}

	var nilGrid *Grid
	if nilGrid.Size() != 0 {
		t.Errorf("nil grid Size() = %d, want 0", nilGrid.Size())
	}
	if !nilGrid.Value(0, 0).IsAbsent() {
		t.Error("nil grid Value(0, 0) should be absent")
	}
}

func TestFromRows_Copies(t *testing.T) {
	src := []Row{Strings("a", "b")}
	g := FromRows(src)

	src[0][0] = Text("changed")
	assertCell(t, g, 0, 0, Text("a"))

	if g.Size() != 1 {
		t.Errorf("Size() = %d, want 1", g.Size())
	}
}

func TestFromStrings(t *testing.T) {
	g := FromStrings([][]string{{"a", ""}, {"b"}})

	assertCell(t, g, 0, 0, Text("a"))
	assertCell(t, g, 0, 1, Text(""))
	assertCell(t, g, 1, 0, Text("b"))
	assertCell(t, g, 1, 1, Absent)
}

func TestRow(t *testing.T) {
	g := New()

	if r := g.Row(0); r.Len() != 0 {
		t.Errorf("Row(0) on empty grid has %d cells, want 0", r.Len())
	}
	if r := g.Row(4); r.Len() != 0 {
		t.Errorf("Row(4) on empty grid has %d cells, want 0", r.Len())
	}

	g = newTestGrid()
	r := g.Row(0)
	if r.Len() != 3 {
		t.Fatalf("Row(0) has %d cells, want 3", r.Len())
	}
	if r.At(0) != Text("A") || r.At(2) != Text("C") {
		t.Errorf("Row(0) = %v, want [A B C]", r)
	}

	last := g.Row(len(testRows))
	if last.At(1) != Absent {
		t.Errorf("Row(%d).At(1) = %v, want absent", len(testRows), last.At(1))
	}
}

func TestRow_DoesNotAlias(t *testing.T) {
	g := newTestGrid()

	r := g.Row(1)
	r[0] = Text("mutated")

	assertCell(t, g, 1, 0, Text("a1"))
}

func TestAdd(t *testing.T) {
	g := New()
	g.Add(testColumns)
	g.Add(testRows[0])
	g.Add(nil)

	if g.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", g.Size())
	}
	assertCell(t, g, 0, 0, Text("A"))
	assertCell(t, g, 1, 0, Text("a1"))
	if g.Row(2).Len() != 0 {
		t.Errorf("Row(2) should be empty, got %v", g.Row(2))
	}
}

func TestInsertBefore(t *testing.T) {
	g := New().Add(testRows[0])

	// before existing row
	g.InsertBefore(0, testColumns)
	if g.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", g.Size())
	}
	assertCell(t, g, 0, 0, Text("A"))
	assertCell(t, g, 1, 0, Text("a1"))

	// negative index goes to the front
	g.InsertBefore(-1, testRows[1])
	assertCell(t, g, 0, 0, Text("a2"))
	assertCell(t, g, 1, 0, Text("A"))
	assertCell(t, g, 2, 0, Text("a1"))

	// at size appends
	g.InsertBefore(g.Size(), testRows[2])
	if g.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", g.Size())
	}
	assertCell(t, g, 3, 0, Text("a3"))

	// past the end pads with empty rows
	g.InsertBefore(7, testRows[2])
	if g.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", g.Size())
	}
	assertCell(t, g, 7, 0, Text("a3"))
	for i := 4; i < 7; i++ {
		if g.Row(i).Len() != 0 {
			t.Errorf("padding Row(%d) = %v, want empty", i, g.Row(i))
		}
	}

	// in between
	g.InsertBefore(1, testColumns)
	if g.Size() != 9 {
		t.Fatalf("Size() = %d, want 9", g.Size())
	}
	assertCell(t, g, 1, 0, Text("A"))
	assertCell(t, g, 2, 0, Text("A"))
}

func TestInsertBefore_EmptyGridPastEnd(t *testing.T) {
	g := New().InsertBefore(1, Strings("x"))

	if g.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", g.Size())
	}
	assertCell(t, g, 0, 0, Absent)
	assertCell(t, g, 1, 0, Text("x"))
}

func TestInsertAfter(t *testing.T) {
	g := New().Add(testColumns)

	g.InsertAfter(0, testRows[0])
	assertCell(t, g, 0, 0, Text("A"))
	assertCell(t, g, 1, 0, Text("a1"))

	g.InsertAfter(-1, testRows[1])
	assertCell(t, g, 0, 0, Text("a2"))
	assertCell(t, g, 1, 0, Text("A"))
	assertCell(t, g, 2, 0, Text("a1"))

	// after the last index leaves one empty row in between
	g.InsertAfter(g.Size(), testRows[2])
	if g.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", g.Size())
	}
	assertCell(t, g, 3, 0, Absent)
	assertCell(t, g, 4, 0, Text("a3"))
}

func TestRemove(t *testing.T) {
	g := newTestGrid()

	g.Remove(0)
	if g.Size() != len(testRows) {
		t.Fatalf("Size() = %d, want %d", g.Size(), len(testRows))
	}
	assertCell(t, g, 0, 0, Text("a1"))

	g.Remove(1)
	assertCell(t, g, 0, 0, Text("a1"))
	assertCell(t, g, 1, 0, Text("a3"))

	g.Remove(5)
	g.Remove(-1)
	if g.Size() != 2 {
		t.Errorf("Size() = %d after out of bounds removes, want 2", g.Size())
	}

	g.Remove(g.Size() - 1)
	if g.Size() != 1 {
		t.Errorf("Size() = %d, want 1", g.Size())
	}

	g.Clear()
	g.Remove(0)
	if g.Size() != 0 {
		t.Errorf("Size() = %d, want 0", g.Size())
	}
}

func TestValue(t *testing.T) {
	g := New()
	assertCell(t, g, 18, 18, Absent)
	if g.Size() != 0 {
		t.Errorf("Value() extended the grid to %d rows", g.Size())
	}

	g = newTestGrid()
	tests := []struct {
		name     string
		row, col int
		want     Cell
	}{
		{"first cell", 0, 0, Text("A")},
		{"data cell", 1, 2, Text("c1")},
		{"middle", 2, 1, Text("b2")},
		{"last", 3, 2, Text("c3")},
		{"stored absent", 3, 1, Absent},
		{"column past end", 0, 4, Absent},
		{"negative row", -1, 0, Absent},
		{"negative column", 0, -1, Absent},
		{"row past end", 9, 0, Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCell(t, g, tt.row, tt.col, tt.want)
		})
	}
}

func TestSetValue(t *testing.T) {
	g := New()

	if prev := g.SetValue(1, 1, Text("test")); prev != Absent {
		t.Errorf("SetValue on empty grid returned %v, want absent", prev)
	}
	if g.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", g.Size())
	}
	if g.Row(0).Len() != 0 {
		t.Errorf("padding row should be empty, got %v", g.Row(0))
	}

	if prev := g.SetValue(1, 1, Text("test2")); prev != Text("test") {
		t.Errorf("SetValue returned %v, want test", prev)
	}
	assertCell(t, g, 1, 1, Text("test2"))

	// absent past the end never extends
	g.SetValue(4, 0, Absent)
	if g.Size() != 2 {
		t.Errorf("Size() = %d after absent write, want 2", g.Size())
	}

	g.SetValue(1, 3, Text("test"))
	assertCell(t, g, 1, 3, Text("test"))
	if g.Row(1).Len() != 4 {
		t.Errorf("Row(1).Len() = %d, want 4", g.Row(1).Len())
	}

	// beyond the reallocation threshold
	col := g.Row(1).Len() + extendThreshold + 1
	if prev := g.SetValue(1, col, Text("far")); prev != Absent {
		t.Errorf("SetValue far returned %v, want absent", prev)
	}
	assertCell(t, g, 1, col, Text("far"))
	if g.Row(1).Len() != col+1 {
		t.Errorf("Row(1).Len() = %d, want %d", g.Row(1).Len(), col+1)
	}
	assertCell(t, g, 1, 3, Text("test"))

	// row exists, column does not
	if prev := g.SetValue(0, 4, Absent); prev != Absent {
		t.Errorf("SetValue returned %v, want absent", prev)
	}
	if g.Row(0).Len() != 0 {
		t.Errorf("Row(0).Len() = %d, want 0", g.Row(0).Len())
	}

	// clearing an existing cell returns the old value
	if prev := g.SetValue(1, 3, Absent); prev != Text("test") {
		t.Errorf("SetValue(Absent) returned %v, want test", prev)
	}
	assertCell(t, g, 1, 3, Absent)
}

func TestSetValue_InvalidIndices(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		value    Cell
	}{
		{"negative row absent", -1, 0, Absent},
		{"negative row present", -1, 0, Text("test")},
		{"negative column absent", 0, -10, Absent},
		{"negative column present", 0, -10, Text("test")},
		{"both negative absent", -1, -1, Absent},
		{"both negative present", -1, -1, Text("test")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			if prev := g.SetValue(tt.row, tt.col, tt.value); prev != Absent {
				t.Errorf("SetValue returned %v, want absent", prev)
			}
			if g.Size() != 0 {
				t.Errorf("Size() = %d, want 0", g.Size())
			}
		})
	}
}

func TestSetValue_RoundTrip(t *testing.T) {
	g := newTestGrid()
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Row(row).Len(); col++ {
			want := Text("x")
			g.SetValue(row, col, want)
			assertCell(t, g, row, col, want)
		}
	}
}

func TestClear(t *testing.T) {
	g := New().Add(testColumns)
	if g.Clear().Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", g.Size())
	}
}

func TestString(t *testing.T) {
	g := New().Add(Strings("a", "b")).Add(Row{Text("c"), Absent})
	want := "[[a b] [c <nil>]]"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
