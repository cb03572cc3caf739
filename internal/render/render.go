// Package render writes tables and validation results as plain text for the
// command line.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/JonMunkholm/gridbook/internal/grid"
	"github.com/JonMunkholm/gridbook/internal/message"
	"github.com/JonMunkholm/gridbook/internal/sheet"
	"github.com/JonMunkholm/gridbook/internal/table"
)

var (
	colorAccent  = lipgloss.Color("#4ecca3")
	colorDim     = lipgloss.Color("#555555")
	colorError   = lipgloss.Color("#e94560")
	colorWarning = lipgloss.Color("#f0a500")

	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
)

// Options controls table output.
type Options struct {
	// Null is printed for absent cells.
	Null string
	// Limit caps the number of data rows printed; 0 prints all.
	Limit int
}

// Title writes a heading line.
func Title(w io.Writer, title string) error {
	_, err := fmt.Fprintln(w, titleStyle.Render(title))
	return err
}

// Sheet writes the sheet name followed by its table.
func Sheet(w io.Writer, s *sheet.Sheet, opts Options) error {
	if err := Title(w, s.Name); err != nil {
		return err
	}
	return Table(w, s.Table, opts)
}

// Table writes t as a bordered text table. Rows are padded to the widest row
// so ragged input lines up under its columns.
func Table(w io.Writer, t table.Table, opts Options) error {
	cols := t.Columns()
	data := t.Data()
	if opts.Limit > 0 && len(data) > opts.Limit {
		data = data[:opts.Limit]
	}

	width := cols.Len()
	for _, r := range data {
		width = max(width, r.Len())
	}
	if width == 0 {
		_, err := fmt.Fprintln(w, dimStyle.Render("(empty)"))
		return err
	}

	tbl := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
	tbl.Header(texts(cols, width, ""))

	rows := make([][]string, len(data))
	for i, r := range data {
		rows[i] = texts(r, width, opts.Null)
	}
	if err := tbl.Bulk(rows); err != nil {
		return fmt.Errorf("render rows: %w", err)
	}
	if err := tbl.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	if shown := len(data); shown < t.Size() {
		_, err := fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d of %d rows", shown, t.Size())))
		return err
	}
	return nil
}

// Columns writes the position and name of every column.
func Columns(w io.Writer, t table.Table) error {
	cols := t.Columns()

	tbl := tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))
	tbl.Header([]string{"#", "column"})
	for i, c := range cols {
		name := c.Value
		if c.IsAbsent() {
			name = ""
		}
		if err := tbl.Append([]string{strconv.Itoa(i), name}); err != nil {
			return fmt.Errorf("render columns: %w", err)
		}
	}
	return tbl.Render()
}

// Messages writes every leaf of l, one per line, prefixed by its kind.
func Messages(w io.Writer, l *message.List) error {
	for _, leaf := range l.Flatten() {
		if _, err := fmt.Fprintf(w, "%s %s\n", kindLabel(leaf.Kind), leaf.Message); err != nil {
			return err
		}
	}
	return nil
}

func kindLabel(k message.Kind) string {
	label := k.String() + ":"
	switch k {
	case message.Error:
		return errorStyle.Render(label)
	case message.Warning:
		return warningStyle.Render(label)
	default:
		return dimStyle.Render(label)
	}
}

// texts converts r to exactly width strings.
func texts(r grid.Row, width int, null string) []string {
	out := make([]string, width)
	for i := range out {
		c := r.At(i)
		if c.IsAbsent() {
			out[i] = null
			continue
		}
		out[i] = c.Value
	}
	return out
}
