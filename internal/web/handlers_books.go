package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/gridbook/internal/config"
	"github.com/JonMunkholm/gridbook/internal/logging"
	"github.com/JonMunkholm/gridbook/internal/reader"
	"github.com/JonMunkholm/gridbook/internal/sheet"
	"github.com/JonMunkholm/gridbook/internal/table"
	"github.com/JonMunkholm/gridbook/internal/tokenizer"
)

// importOptions overrides the configured dialect and layout for one import.
// Empty fields keep the configured value.
type importOptions struct {
	Delimiter string    `json:"delimiter"`
	Quote     string    `json:"quote"`
	Encoding  string    `json:"encoding"`
	Header    skipCount `json:"header"`
	Trailer   skipCount `json:"trailer"`
	Footer    skipCount `json:"footer"`
	Class     string    `json:"class"`
}

// skipCount is a row count given in JSON as a number or a numeric string.
type skipCount string

func (c *skipCount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = skipCount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = skipCount(n.String())
	return nil
}

func formOptions(r *http.Request) importOptions {
	return importOptions{
		Delimiter: r.FormValue("delimiter"),
		Quote:     r.FormValue("quote"),
		Encoding:  r.FormValue("encoding"),
		Header:    skipCount(r.FormValue(table.ParamHeader)),
		Trailer:   skipCount(r.FormValue(table.ParamTrailer)),
		Footer:    skipCount(r.FormValue(table.ParamFooter)),
		Class:     r.FormValue(table.ParamClass),
	}
}

// resolve merges o into the reader configuration.
func (o importOptions) resolve(rc config.ReaderConfig) (*tokenizer.Tokenizer, string, table.Parameters, error) {
	if o.Delimiter != "" {
		rc.Delimiter = o.Delimiter
	}
	if o.Quote != "" {
		rc.Quote = o.Quote
	}
	if o.Encoding != "" {
		if _, err := reader.Encoding(o.Encoding); err != nil {
			return nil, "", nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		rc.Encoding = o.Encoding
	}

	params := rc.Params()
	for key, val := range map[string]string{
		table.ParamHeader:  string(o.Header),
		table.ParamTrailer: string(o.Trailer),
		table.ParamFooter:  string(o.Footer),
	} {
		if val == "" {
			continue
		}
		if n, err := strconv.Atoi(val); err != nil || n < 0 {
			return nil, "", nil, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, key)
		}
		params[key] = val
	}
	if o.Class != "" {
		if _, ok := table.Lookup(o.Class); !ok {
			return nil, "", nil, fmt.Errorf("%w: unknown table class %q", errBadRequest, o.Class)
		}
		params[table.ParamClass] = o.Class
	}

	tok := tokenizer.New(
		tokenizer.WithDelimiter(rc.Delimiter),
		tokenizer.WithQuote(rc.QuoteChars()),
	)
	return tok, rc.Encoding, params, nil
}

// handleListBooks returns every book in the catalog.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.catalog.List())
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, r, entry)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.catalog.Remove(id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadBook reads every "file" part of a multipart form into one
// book. Form fields override the configured dialect and layout.
func (s *Server) handleUploadBook(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Catalog.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondError(w, r, fmt.Errorf("%w: file too large or invalid form", errBadRequest))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		respondError(w, r, fmt.Errorf("%w: no file provided", errBadRequest))
		return
	}

	tok, enc, params, err := formOptions(r).resolve(s.cfg.Reader)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.imports.acquire(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	defer s.imports.release()

	uploads := make(map[string]*multipart.FileHeader, len(headers))
	files := make([]string, 0, len(headers))
	for _, h := range headers {
		if _, dup := uploads[h.Filename]; dup {
			continue
		}
		uploads[h.Filename] = h
		files = append(files, h.Filename)
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = reader.SheetName(files[0])
	}

	br := &reader.BookReader{
		Name:      name,
		Files:     files,
		Params:    params,
		Tokenizer: tok,
		Encoding:  enc,
		Open: func(path string) (io.ReadCloser, error) {
			h, ok := uploads[path]
			if !ok {
				return nil, fmt.Errorf("no upload named %q", path)
			}
			return h.Open()
		},
	}

	s.importBook(w, r, br, "upload")
}

// queryRequest is the body of POST /api/books/query.
type queryRequest struct {
	Name string `json:"name"`
	SQL  string `json:"sql"`
	Args []any  `json:"args"`
	importOptions
}

// handleQueryBook imports the result of one SQL query as a single-sheet book.
func (s *Server) handleQueryBook(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		respondError(w, r, errNoDatabase)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: invalid JSON body", errBadRequest))
		return
	}
	if strings.TrimSpace(req.SQL) == "" {
		respondError(w, r, fmt.Errorf("%w: sql is required", errBadRequest))
		return
	}
	if req.Name == "" {
		req.Name = "query"
	}

	_, _, params, err := req.importOptions.resolve(s.cfg.Reader)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.imports.acquire(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	defer s.imports.release()

	ctx := r.Context()
	if timeout := s.cfg.Database.QueryTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	qr := &reader.QueryGridReader{DB: s.db, SQL: req.SQL, Args: req.Args}
	g, ok := qr.Read(ctx)
	if !ok {
		respondError(w, r, fmt.Errorf("%w: query failed", errUnreadable))
		return
	}

	book := sheet.NewBook(req.Name).Add(sheet.New(req.Name, table.Create(g, params)))
	entry := s.catalog.Add(book, "query")
	logging.FromContext(r.Context()).Info("book imported", "book", entry.ID, "source", "query", "rows", g.Size())
	writeJSONStatus(w, r, http.StatusCreated, entry)
}

// importBook reads br and stores the result. A book without sheets is not
// stored.
func (s *Server) importBook(w http.ResponseWriter, r *http.Request, br *reader.BookReader, source string) {
	book, ok := br.Read(r.Context())
	if !ok || book.Len() == 0 {
		respondError(w, r, errUnreadable)
		return
	}

	entry := s.catalog.Add(book, source)
	logging.FromContext(r.Context()).Info("book imported",
		"book", entry.ID,
		"source", source,
		"sheets", book.Len(),
	)
	writeJSONStatus(w, r, http.StatusCreated, entry)
}
