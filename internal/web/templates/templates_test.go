package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/JonMunkholm/gridbook/internal/catalog"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func TestIndex(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	out := render(t, Index([]catalog.Entry{
		{ID: id, Name: "q1 <report>", Sheets: []string{"sales", "book/Sheet1"}, Source: "dir"},
	}))

	for _, want := range []string{
		"q1 &lt;report&gt;",
		`href="/books/00000000-0000-0000-0000-000000000001/sheets/sales"`,
		`/sheets/book%2FSheet1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Index output missing %q:\n%s", want, out)
		}
	}
}

func TestIndex_Empty(t *testing.T) {
	if out := render(t, Index(nil)); !strings.Contains(out, "No books loaded.") {
		t.Errorf("empty index = %q", out)
	}
}

func TestSheetPage(t *testing.T) {
	a, b := "a", "<b>"
	out := render(t, SheetPage(SheetView{
		Book:    "book",
		Name:    "sheet",
		Columns: []*string{&a, nil},
		Rows:    [][]*string{{&b}},
		Total:   1,
	}))

	for _, want := range []string{
		"<th>a</th>",
		`<th class="null">null</th>`,
		"<td>&lt;b&gt;</td>",
		`<td class="null">null</td>`,
		"rows 1-1 of 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SheetPage output missing %q:\n%s", want, out)
		}
	}
}
