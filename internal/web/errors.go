package web

// errors.go maps handler errors to HTTP responses.
//
// Every error is logged with the request ID. Clients get a JSON body
// {"error": "..."} on API routes and a plain text body elsewhere.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/gridbook/internal/catalog"
	"github.com/JonMunkholm/gridbook/internal/logging"
)

var (
	errBadRequest   = errors.New("bad request")
	errNoDatabase   = errors.New("database not configured")
	errUnreadable   = errors.New("source could not be read")
	errNoSuchColumn = errors.New("column not found")
)

// ErrorResponse is the JSON body of an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor returns the HTTP status for err.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrBookNotFound),
		errors.Is(err, catalog.ErrSheetNotFound),
		errors.Is(err, errNoSuchColumn):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errUnreadable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errNoDatabase):
		return http.StatusServiceUnavailable
	case errors.Is(err, errTooManyImports):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the matching response. Internal errors
// are reported to the client without detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	logging.FromContext(r.Context()).Warn("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}

	if !wantsJSON(r) {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

// writeJSON encodes v as JSON with status 200.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	writeJSONStatus(w, r, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// wantsJSON reports whether the client expects a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
