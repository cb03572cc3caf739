package web

import (
	"net/http"

	"github.com/JonMunkholm/gridbook/internal/logging"
	"github.com/JonMunkholm/gridbook/internal/sheet"
	"github.com/JonMunkholm/gridbook/internal/web/templates"
)

// handleIndex renders the list of books.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Index(s.catalog.List()).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("template render error", "error", err)
	}
}

// handleSheetPage renders one window of a sheet; offset and limit work as
// for the rows API.
func (s *Server) handleSheetPage(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	entry, err := s.catalog.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	offset := parseIntParam(r, "offset", 0)
	limit := rowLimit(r)

	var view templates.SheetView
	err = s.catalog.View(id, sheetName(r), func(sh *sheet.Sheet) error {
		view = templates.SheetView{
			Book:    entry.Name,
			Name:    sh.Name,
			Columns: rowJSON(sh.Table.Columns()),
			Total:   sh.Table.Size(),
			Offset:  offset,
		}
		for i := offset; i < view.Total && i < offset+limit; i++ {
			view.Rows = append(view.Rows, rowJSON(sh.Table.Row(i)))
		}
		return nil
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.SheetPage(view).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("template render error", "error", err)
	}
}
