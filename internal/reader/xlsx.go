package reader

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/gridbook/internal/grid"
	"github.com/JonMunkholm/gridbook/internal/logging"
)

// NamedGrid is a grid read from one worksheet.
type NamedGrid struct {
	Name string
	Grid *grid.Grid
}

// XLSXBookReader reads every worksheet of an Excel workbook.
//
// Cells are read as their formatted text. Empty cells are absent and rows are
// not padded to a common width.
type XLSXBookReader struct {
	Path string
	// Open opens Path. Nil uses OpenFile.
	Open Opener
}

// Read returns one grid per worksheet in workbook order. A worksheet that
// fails to read is skipped. ok is false when the workbook itself cannot be
// opened.
func (r *XLSXBookReader) Read(ctx context.Context) ([]NamedGrid, bool) {
	if r.Path == "" {
		return nil, false
	}

	logger := logging.WithFields(ctx, "path", r.Path)

	rc, err := opener(r.Open)(r.Path)
	if err != nil {
		logger.Warn("cannot open workbook", "error", err)
		return nil, false
	}
	defer rc.Close()

	f, err := excelize.OpenReader(rc)
	if err != nil {
		logger.Warn("cannot parse workbook", "error", err)
		return nil, false
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Debug("closing workbook", "error", err)
		}
	}()

	logger.Info("reading workbook")

	var out []NamedGrid
	for _, name := range f.GetSheetList() {
		g, ok := readWorksheet(ctx, f, name)
		if !ok {
			continue
		}
		out = append(out, NamedGrid{Name: name, Grid: g})
	}

	logger.Info("workbook read complete", "sheets", len(out))
	return out, true
}

func readWorksheet(ctx context.Context, f *excelize.File, name string) (*grid.Grid, bool) {
	logger := logging.FromContext(ctx).With("worksheet", name)

	rows, err := f.Rows(name)
	if err != nil {
		logger.Warn("cannot open worksheet", "error", err)
		return nil, false
	}
	defer rows.Close()

	g := grid.New()
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			logger.Warn("worksheet read aborted", "row", g.Size()+1, "error", err)
			return nil, false
		}
		g.Add(cellsOf(cols))
	}
	if err := rows.Error(); err != nil {
		logger.Warn("worksheet read aborted", "row", g.Size()+1, "error", err)
		return nil, false
	}
	return g, true
}

func cellsOf(values []string) grid.Row {
	row := make(grid.Row, len(values))
	for i, v := range values {
		if v != "" {
			row[i] = grid.Text(v)
		}
	}
	return row
}
