package sheet

import (
	"slices"
	"testing"

	"github.com/JonMunkholm/gridbook/internal/grid"
	"github.com/JonMunkholm/gridbook/internal/table"
)

func newSheet(name string) *Sheet {
	g := grid.FromStrings([][]string{{"col"}, {name}})
	return New(name, table.NewSpreadsheet(g))
}

func TestBook_AddAndLookup(t *testing.T) {
	b := NewBook("book")
	b.Add(newSheet("Orders")).Add(newSheet("Customers")).Add(nil)

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}

	tests := []struct {
		name   string
		lookup string
		found  bool
	}{
		{"exact", "Orders", true},
		{"lower case", "orders", true},
		{"upper case", "CUSTOMERS", true},
		{"missing", "Invoices", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Sheet(tt.lookup)
			if (got != nil) != tt.found {
				t.Errorf("Sheet(%q) = %v, want found=%v", tt.lookup, got, tt.found)
			}
		})
	}

	if got := b.Names(); !slices.Equal(got, []string{"Orders", "Customers"}) {
		t.Errorf("Names() = %v, want [Orders Customers]", got)
	}
}

func TestBook_AddReplacesSameName(t *testing.T) {
	b := NewBook("book").Add(newSheet("a")).Add(newSheet("b"))

	replacement := newSheet("A")
	b.Add(replacement)

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if b.Sheet("a") != replacement {
		t.Error("Sheet(a) is not the replacement")
	}
	if b.Sheets()[0] != replacement {
		t.Error("replacement did not keep the original position")
	}
}

func TestBook_Remove(t *testing.T) {
	b := NewBook("book").Add(newSheet("a")).Add(newSheet("b"))

	if !b.Remove("B") {
		t.Error("Remove(B) = false, want true")
	}
	if b.Remove("b") {
		t.Error("second Remove(b) = true, want false")
	}
	if b.Len() != 1 || b.Sheet("a") == nil {
		t.Errorf("remaining sheets = %v, want [a]", b.Names())
	}
}

func TestBook_SheetsIsCopy(t *testing.T) {
	b := NewBook("book").Add(newSheet("a"))
	sheets := b.Sheets()
	sheets[0] = nil

	if b.Sheet("a") == nil {
		t.Error("mutating Sheets() result changed the book")
	}
}

func TestBook_NilLen(t *testing.T) {
	var b *Book
	if b.Len() != 0 {
		t.Errorf("nil book Len() = %d, want 0", b.Len())
	}
}
