package table

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/JonMunkholm/gridbook/internal/grid"
)

// Parameter keys understood by Create.
const (
	ParamHeader  = "header"
	ParamTrailer = "trailer"
	ParamFooter  = "footer"
	ParamClass   = "class"
)

// DefaultClass is used when no class is given or the class is unknown.
const DefaultClass = SpreadsheetClass

// Parameters is the flat configuration of a table.
type Parameters map[string]string

// Class returns the configured class, or "" when unset.
func (p Parameters) Class() string {
	return p[ParamClass]
}

// Int returns the non-negative integer stored under key. Missing or
// unparsable values yield 0; negative values are clamped to 0.
func (p Parameters) Int(key string) int {
	raw, ok := p[key]
	if !ok || raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Debug("ignoring table parameter", "key", key, "value", raw, "error", err)
		return 0
	}
	return max(0, n)
}

// Factory builds a table over g configured by params.
type Factory func(g *grid.Grid, params Parameters) Table

var (
	registry   = make(map[string]Factory)
	registryMu sync.RWMutex
)

func init() {
	Register(SpreadsheetClass, newSpreadsheetFromParams)
}

// Register adds a table factory under class.
// Panics if the class is already registered.
func Register(class string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[class]; exists {
		panic(fmt.Sprintf("table class already registered: %s", class))
	}
	registry[class] = f
}

// Lookup returns the factory registered under class.
func Lookup(class string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[class]
	return f, ok
}

// Classes returns all registered class names, sorted.
func Classes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	classes := make([]string, 0, len(registry))
	for class := range registry {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// Create builds a table over g using the factory named by params' class.
// A missing or unknown class falls back to DefaultClass. Create never
// returns nil.
func Create(g *grid.Grid, params Parameters) Table {
	class := params.Class()
	f, ok := Lookup(class)
	if !ok {
		if class != "" {
			slog.Debug("unknown table class, using default", "class", class, "default", DefaultClass)
		}
		f, _ = Lookup(DefaultClass)
	}
	return f(g, params)
}

func newSpreadsheetFromParams(g *grid.Grid, params Parameters) Table {
	return NewSpreadsheet(g).
		SetSkipHeader(params.Int(ParamHeader)).
		SetSkipTrailer(params.Int(ParamTrailer)).
		SetSkipFooter(params.Int(ParamFooter))
}
