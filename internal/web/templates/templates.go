// Package templates renders the HTML pages of the web server as templ
// components.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/gridbook/internal/catalog"
)

const styles = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse}th,td{border:1px solid #ccc;padding:.25rem .5rem;text-align:left}
th{background:#4ecca3}td.null{color:#555;font-style:italic}.dim{color:#555}`

// Layout wraps body in the page skeleton.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>",
			templ.EscapeString(title), styles); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// Index lists the books of the catalog with links to their sheets.
func Index(books []catalog.Entry) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>gridbook</h1>"); err != nil {
			return err
		}
		if len(books) == 0 {
			_, err := io.WriteString(w, `<p class="dim">No books loaded.</p>`)
			return err
		}
		for _, b := range books {
			if _, err := fmt.Fprintf(w, "<h2>%s <span class=\"dim\">%s</span></h2><ul>",
				templ.EscapeString(b.Name), templ.EscapeString(b.Source)); err != nil {
				return err
			}
			for _, name := range b.Sheets {
				href := SheetURL(b.ID.String(), name)
				if _, err := fmt.Fprintf(w, "<li><a href=\"%s\">%s</a></li>",
					templ.EscapeString(href), templ.EscapeString(name)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul>"); err != nil {
				return err
			}
		}
		return nil
	})
	return Layout("gridbook", body)
}

// SheetView is the data shown on a sheet page. Absent cells are nil.
type SheetView struct {
	Book    string
	Name    string
	Columns []*string
	Rows    [][]*string
	Total   int
	Offset  int
}

// SheetPage renders one window of a sheet as an HTML table.
func SheetPage(v SheetView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<p><a href=\"/\">books</a> / %s</p><h1>%s</h1><table><thead><tr>",
			templ.EscapeString(v.Book), templ.EscapeString(v.Name)); err != nil {
			return err
		}
		for _, c := range v.Columns {
			if err := cell(w, "th", c); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr></thead><tbody>"); err != nil {
			return err
		}
		for _, row := range v.Rows {
			if _, err := io.WriteString(w, "<tr>"); err != nil {
				return err
			}
			for i := range v.Columns {
				var c *string
				if i < len(row) {
					c = row[i]
				}
				if err := cell(w, "td", c); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</tr>"); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "</tbody></table><p class=\"dim\">rows %d-%d of %d</p>",
			min(v.Offset+1, v.Total), v.Offset+len(v.Rows), v.Total)
		return err
	})
	return Layout(v.Name, body)
}

func cell(w io.Writer, tag string, c *string) error {
	if c == nil {
		_, err := fmt.Fprintf(w, "<%s class=\"null\">null</%s>", tag, tag)
		return err
	}
	_, err := fmt.Fprintf(w, "<%s>%s</%s>", tag, templ.EscapeString(*c), tag)
	return err
}

// SheetURL returns the page URL of a sheet.
func SheetURL(bookID, sheet string) string {
	return "/books/" + bookID + "/sheets/" + url.PathEscape(sheet)
}
