// Package sheet groups named tables into books.
package sheet

import (
	"slices"
	"strings"

	"github.com/JonMunkholm/gridbook/internal/table"
)

// Sheet is a named table.
type Sheet struct {
	Name  string
	Table table.Table
}

// New returns a sheet named name wrapping t.
func New(name string, t table.Table) *Sheet {
	return &Sheet{Name: name, Table: t}
}

// Is reports whether the sheet is called name, ignoring case.
func (s *Sheet) Is(name string) bool {
	return strings.EqualFold(s.Name, name)
}

// Book is an ordered collection of sheets. Sheet names are compared
// case-insensitively; adding a sheet whose name is taken replaces it in place.
//
// A Book is not safe for concurrent use.
type Book struct {
	Name   string
	sheets []*Sheet
}

// NewBook returns an empty book.
func NewBook(name string) *Book {
	return &Book{Name: name}
}

// Add appends s, or replaces the sheet with the same name. Nil is ignored.
func (b *Book) Add(s *Sheet) *Book {
	if s == nil {
		return b
	}
	if i := b.index(s.Name); i >= 0 {
		b.sheets[i] = s
		return b
	}
	b.sheets = append(b.sheets, s)
	return b
}

// Sheet returns the sheet called name, or nil.
func (b *Book) Sheet(name string) *Sheet {
	if i := b.index(name); i >= 0 {
		return b.sheets[i]
	}
	return nil
}

// Sheets returns the sheets in insertion order.
func (b *Book) Sheets() []*Sheet {
	return slices.Clone(b.sheets)
}

// Names returns the sheet names in insertion order.
func (b *Book) Names() []string {
	names := make([]string, len(b.sheets))
	for i, s := range b.sheets {
		names[i] = s.Name
	}
	return names
}

// Remove deletes the sheet called name and reports whether it existed.
func (b *Book) Remove(name string) bool {
	i := b.index(name)
	if i < 0 {
		return false
	}
	b.sheets = slices.Delete(b.sheets, i, i+1)
	return true
}

// Len returns the number of sheets.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.sheets)
}

func (b *Book) index(name string) int {
	return slices.IndexFunc(b.sheets, func(s *Sheet) bool { return s.Is(name) })
}
