package reader

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/JonMunkholm/gridbook/internal/grid"
	"github.com/JonMunkholm/gridbook/internal/logging"
	"github.com/JonMunkholm/gridbook/internal/sheet"
	"github.com/JonMunkholm/gridbook/internal/table"
	"github.com/JonMunkholm/gridbook/internal/tokenizer"
)

// DefaultPattern selects the files read from a directory when no pattern is set.
const DefaultPattern = "*.csv"

// BookReader reads several files into one book, one sheet per file.
//
// Each file is read independently. A file that cannot be read contributes no
// sheet and does not stop the others. Sheets are named after the file name
// without its extension; a workbook with several worksheets contributes one
// sheet per worksheet named "<file>/<worksheet>". When a name is already taken
// in the book, for example by data.csv in two directories, the later sheet
// gets the first free name of the form "<name>#2", "<name>#3" and so on.
type BookReader struct {
	// Name of the resulting book.
	Name string

	// Files are read in order.
	Files []string

	// Dir, when set, is searched recursively for files whose base name
	// matches Pattern. Matches are read after Files, sorted by path.
	Dir     string
	Pattern string

	// Params configure the table created for each grid.
	Params table.Parameters

	Tokenizer *tokenizer.Tokenizer
	Encoding  string
	Open      Opener
}

// Read builds the book. ok is false only when Dir cannot be searched; a book
// whose sources all fail is returned empty.
func (r *BookReader) Read(ctx context.Context) (*sheet.Book, bool) {
	logger := logging.FromContext(ctx)

	files, err := r.files()
	if err != nil {
		logger.Warn("cannot list book sources", "dir", r.Dir, "pattern", r.pattern(), "error", err)
		return nil, false
	}

	book := sheet.NewBook(r.Name)
	if len(files) == 0 {
		return book, true
	}

	logger.Info("loading book", "book", r.Name, "files", len(files))
	for _, path := range files {
		for _, s := range r.readFile(ctx, path) {
			if name := uniqueName(book, s.Name); name != s.Name {
				logger.Info("renamed duplicate sheet", "path", path, "sheet", s.Name, "as", name)
				s.Name = name
			}
			book.Add(s)
		}
	}
	logger.Info("loaded book", "book", r.Name, "sheets", book.Len())

	return book, true
}

func uniqueName(book *sheet.Book, name string) string {
	if book.Sheet(name) == nil {
		return name
	}
	for n := 2; ; n++ {
		candidate := name + "#" + strconv.Itoa(n)
		if book.Sheet(candidate) == nil {
			return candidate
		}
	}
}

func (r *BookReader) pattern() string {
	if r.Pattern == "" {
		return DefaultPattern
	}
	return r.Pattern
}

func (r *BookReader) files() ([]string, error) {
	files := append([]string(nil), r.Files...)
	if r.Dir == "" {
		return files, nil
	}

	pattern := r.pattern()
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, err
	}

	var found []string
	err := filepath.WalkDir(r.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return append(files, found...), nil
}

func (r *BookReader) readFile(ctx context.Context, path string) []*sheet.Sheet {
	base := SheetName(path)

	if IsWorkbook(path) {
		xr := &XLSXBookReader{Path: path, Open: r.Open}
		grids, ok := xr.Read(ctx)
		if !ok {
			return nil
		}
		sheets := make([]*sheet.Sheet, 0, len(grids))
		for _, ng := range grids {
			name := base
			if len(grids) > 1 {
				name = base + "/" + ng.Name
			}
			sheets = append(sheets, r.newSheet(name, ng.Grid))
		}
		return sheets
	}

	cr := &CSVGridReader{
		Path:      path,
		Tokenizer: r.Tokenizer,
		Encoding:  r.Encoding,
		Open:      r.Open,
	}
	g, ok := cr.Read(ctx)
	if !ok {
		return nil
	}
	return []*sheet.Sheet{r.newSheet(base, g)}
}

func (r *BookReader) newSheet(name string, g *grid.Grid) *sheet.Sheet {
	return sheet.New(name, table.Create(g, r.Params))
}

// SheetName returns the base name of path without its extension.
func SheetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsWorkbook reports whether path names an Excel workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}
