// Package ui is the interactive terminal viewer for books.
package ui

import (
	"fmt"
	"strings"

	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JonMunkholm/gridbook/internal/grid"
	"github.com/JonMunkholm/gridbook/internal/sheet"
)

const (
	minColumnWidth = 3
	maxColumnWidth = 32

	// chrome is the number of lines used around the table: tabs, border, status.
	chrome = 5
)

// Model shows one sheet of a book at a time as a scrollable table.
type Model struct {
	sheets  []*sheet.Sheet
	current int
	table   btable.Model
	null    string
	width   int
	height  int
}

// New returns a viewer over sheets. Absent cells are shown as null.
func New(sheets []*sheet.Sheet, null string) Model {
	m := Model{
		sheets: sheets,
		null:   null,
		table: btable.New(
			btable.WithFocused(true),
			btable.WithHeight(20),
		),
	}
	styles := btable.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorDim).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1a1a1a")).
		Background(ColorAccent)
	m.table.SetStyles(styles)
	m.load()
	return m
}

// Current returns the sheet on screen, nil when there are none.
func (m Model) Current() *sheet.Sheet {
	if len(m.sheets) == 0 {
		return nil
	}
	return m.sheets[m.current]
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(1, msg.Height-chrome))
		m.table.SetWidth(max(1, msg.Width-2))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.switchSheet(1)
			return m, nil
		case "shift+tab", "left", "h":
			m.switchSheet(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.sheets) == 0 {
		return DimText.Render("No sheets to display.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(BorderStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

func (m Model) tabs() string {
	parts := make([]string, len(m.sheets))
	for i, s := range m.sheets {
		if i == m.current {
			parts[i] = ActiveTabStyle.Render(s.Name)
		} else {
			parts[i] = TabStyle.Render(s.Name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) status() string {
	s := m.Current()
	size := s.Table.Size()
	row := 0
	if size > 0 {
		row = m.table.Cursor() + 1
	}
	return DimText.Render(fmt.Sprintf("row %d/%d  •  %d columns  •  tab: next sheet  q: quit",
		row, size, s.Table.Columns().Len()))
}

func (m *Model) switchSheet(delta int) {
	if len(m.sheets) < 2 {
		return
	}
	m.current = (m.current + delta + len(m.sheets)) % len(m.sheets)
	m.load()
}

// load fills the bubbles table from the current sheet.
func (m *Model) load() {
	s := m.Current()
	if s == nil {
		return
	}

	columns, rows := Matrix(s, m.null)
	// clear rows first so no old row is rendered against the new columns
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Matrix converts a sheet into bubbles table columns and rows. Rows are padded
// or cut to the widest of the column row and the data rows.
func Matrix(s *sheet.Sheet, null string) ([]btable.Column, []btable.Row) {
	cols := s.Table.Columns()
	data := s.Table.Data()

	width := cols.Len()
	for _, r := range data {
		width = max(width, r.Len())
	}

	columns := make([]btable.Column, width)
	for i := range columns {
		title := cols.At(i).Value
		columns[i] = btable.Column{Title: title, Width: clampWidth(len(title))}
	}

	rows := make([]btable.Row, len(data))
	for i, r := range data {
		rows[i] = cells(r, width, null)
		for j, v := range rows[i] {
			columns[j].Width = max(columns[j].Width, clampWidth(len(v)))
		}
	}
	return columns, rows
}

func cells(r grid.Row, width int, null string) btable.Row {
	out := make(btable.Row, width)
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

func clampWidth(n int) int {
	return min(maxColumnWidth, max(minColumnWidth, n))
}

// Run starts the viewer and blocks until the user quits.
func Run(sheets []*sheet.Sheet, null string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(New(sheets, null), opts...).Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
