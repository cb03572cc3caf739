package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/gridbook/internal/grid"
)

const (
	defaultRowLimit = 100
	maxRowLimit     = 1000
)

// parseIntParam parses a non-negative integer query parameter with a default
// value. Malformed or negative values yield the default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

// rowLimit returns the "limit" parameter clamped to (0, maxRowLimit].
func rowLimit(r *http.Request) int {
	limit := parseIntParam(r, "limit", defaultRowLimit)
	if limit == 0 {
		return defaultRowLimit
	}
	return min(limit, maxRowLimit)
}

// bookID parses the {bookID} path parameter.
func bookID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "bookID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid book id %q", errBadRequest, raw)
	}
	return id, nil
}

// sheetName returns the {sheet} path parameter. Workbook sheets contain a
// slash and arrive escaped as %2F.
func sheetName(r *http.Request) string {
	raw := chi.URLParam(r, "sheet")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// cellJSON returns the JSON form of a cell: its text, or nil when absent.
func cellJSON(c grid.Cell) *string {
	if c.IsAbsent() {
		return nil
	}
	v := c.Value
	return &v
}

func rowJSON(r grid.Row) []*string {
	out := make([]*string, len(r))
	for i, c := range r {
		out[i] = cellJSON(c)
	}
	return out
}
