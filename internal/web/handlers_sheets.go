package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/gridbook/internal/message"
	"github.com/JonMunkholm/gridbook/internal/sheet"
	"github.com/JonMunkholm/gridbook/internal/table"
)

// SheetInfo describes the shape of a sheet.
type SheetInfo struct {
	Name       string            `json:"name"`
	Columns    []*string         `json:"columns"`
	Rows       int               `json:"rows"`
	Parameters map[string]string `json:"parameters"`
}

// RowsPage is one window of data rows.
type RowsPage struct {
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
	Total  int         `json:"total"`
	Rows   [][]*string `json:"rows"`
}

// CellValue is a single cell addressed by data row and column.
type CellValue struct {
	Row    int     `json:"row"`
	Column int     `json:"column"`
	Value  *string `json:"value"`
}

// ValidationReport lists the notices raised for a sheet.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func describeSheet(sh *sheet.Sheet) SheetInfo {
	return SheetInfo{
		Name:       sh.Name,
		Columns:    rowJSON(sh.Table.Columns()),
		Rows:       sh.Table.Size(),
		Parameters: sh.Table.Parameters(),
	}
}

// viewSheet builds a response from the sheet addressed by the request path
// and writes it once the catalog lock is released.
func viewSheet[T any](s *Server, w http.ResponseWriter, r *http.Request, fn func(*sheet.Sheet) (T, error)) {
	id, err := bookID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var out T
	err = s.catalog.View(id, sheetName(r), func(sh *sheet.Sheet) error {
		var err error
		out, err = fn(sh)
		return err
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, out)
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	viewSheet(s, w, r, func(sh *sheet.Sheet) (SheetInfo, error) {
		return describeSheet(sh), nil
	})
}

// handleSheetRows returns data rows [offset, offset+limit).
func (s *Server) handleSheetRows(w http.ResponseWriter, r *http.Request) {
	offset := parseIntParam(r, "offset", 0)
	limit := rowLimit(r)

	viewSheet(s, w, r, func(sh *sheet.Sheet) (RowsPage, error) {
		total := sh.Table.Size()
		page := RowsPage{Offset: offset, Limit: limit, Total: total, Rows: [][]*string{}}
		for i := offset; i < total && i < offset+limit; i++ {
			page.Rows = append(page.Rows, rowJSON(sh.Table.Row(i)))
		}
		return page, nil
	})
}

// handleSheetValue returns one cell. "column" is a column name or a
// zero-based index; "row" is a zero-based data row.
func (s *Server) handleSheetValue(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(r.URL.Query().Get("row"))
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: row must be an integer", errBadRequest))
		return
	}
	column := r.URL.Query().Get("column")
	if column == "" {
		respondError(w, r, fmt.Errorf("%w: column is required", errBadRequest))
		return
	}

	viewSheet(s, w, r, func(sh *sheet.Sheet) (CellValue, error) {
		col, err := columnIndex(sh.Table, column)
		if err != nil {
			return CellValue{}, err
		}
		return CellValue{
			Row:    row,
			Column: col,
			Value:  cellJSON(sh.Table.Value(row, col)),
		}, nil
	})
}

// columnIndex resolves a column given by name, falling back to a numeric
// index when no column has that name.
func columnIndex(t table.Table, column string) (int, error) {
	if col := t.IndexOf(column); col != table.NotFound {
		return col, nil
	}
	if col, err := strconv.Atoi(column); err == nil && col >= 0 {
		return col, nil
	}
	return table.NotFound, fmt.Errorf("%w: %q", errNoSuchColumn, column)
}

func (s *Server) handleValidateSheet(w http.ResponseWriter, r *http.Request) {
	viewSheet(s, w, r, func(sh *sheet.Sheet) (ValidationReport, error) {
		var msgs message.List
		table.Validate(sh.Table, &msgs)
		return ValidationReport{
			Valid:    !msgs.HasErrors(),
			Errors:   nonNil(msgs.Of(message.Error)),
			Warnings: nonNil(msgs.Of(message.Warning)),
		}, nil
	})
}

type renameRequest struct {
	Name string `json:"name"`
}

// handleRenameColumn sets the name of an existing column. An empty name
// clears it.
func (s *Server) handleRenameColumn(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: column index must be an integer", errBadRequest))
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: invalid JSON body", errBadRequest))
		return
	}

	var info SheetInfo
	err = s.catalog.Update(id, sheetName(r), func(sh *sheet.Sheet) error {
		if sh.Table.SetColumn(index, req.Name) == table.NotFound {
			return fmt.Errorf("%w: index %d", errNoSuchColumn, index)
		}
		info = describeSheet(sh)
		return nil
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, info)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
