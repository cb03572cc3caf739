package reader

import (
	"context"

	"github.com/JonMunkholm/gridbook/internal/grid"
	"github.com/JonMunkholm/gridbook/internal/logging"
	"github.com/JonMunkholm/gridbook/internal/tokenizer"
)

// CSVGridReader reads a delimited text file into a grid, one row per line.
type CSVGridReader struct {
	// Path of the source. An empty path reads nothing.
	Path string

	// Tokenizer splits lines into cells. Nil uses the default dialect.
	Tokenizer *tokenizer.Tokenizer

	// Encoding of the source, see Encoding. Empty means UTF-8.
	Encoding string

	// Open opens Path. Nil uses OpenFile.
	Open Opener
}

// Read implements GridReader. The source is closed on every path.
func (r *CSVGridReader) Read(ctx context.Context) (*grid.Grid, bool) {
	if r.Path == "" {
		return nil, false
	}

	logger := logging.WithFields(ctx, "path", r.Path)

	rc, err := opener(r.Open)(r.Path)
	if err != nil {
		logger.Warn("cannot open grid source", "error", err)
		return nil, false
	}

	src, err := NewLineSource(rc, Options{Encoding: r.Encoding})
	if err != nil {
		_ = rc.Close()
		logger.Warn("cannot decode grid source", "error", err)
		return nil, false
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Debug("closing grid source", "error", err)
		}
	}()

	logger.Info("reading grid")

	tok := r.Tokenizer
	if tok == nil {
		tok = tokenizer.New()
	}

	g := grid.New()
	for {
		line, ok := src.Next()
		if !ok {
			break
		}
		g.Add(tok.Split(line))
	}

	if err := src.Err(); err != nil {
		logger.Warn("grid read aborted", "line", src.Line()+1, "error", err)
		return nil, false
	}

	logger.Info("grid read complete", "rows", g.Size())
	return g, true
}
