// Package reader builds grids and books from external sources.
//
// Readers never return errors. A source that cannot be opened or fails part
// way through yields no grid: the reason is logged and partial data is
// discarded. Callers that combine several sources treat a missing grid as a
// missing sheet and carry on.
package reader

import (
	"context"
	"io"
	"os"

	"github.com/JonMunkholm/gridbook/internal/grid"
)

// GridReader produces one grid. ok is false when no grid could be read.
type GridReader interface {
	Read(ctx context.Context) (g *grid.Grid, ok bool)
}

// Opener opens the named source for reading.
type Opener func(path string) (io.ReadCloser, error)

// OpenFile is the default Opener.
func OpenFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func opener(open Opener) Opener {
	if open == nil {
		return OpenFile
	}
	return open
}
