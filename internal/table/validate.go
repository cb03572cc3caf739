package table

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/gridbook/internal/message"
)

// Validate reports structural problems of t to sink: a missing column row is
// an error, an empty data window and repeated column names are warnings.
func Validate(t Table, sink message.Sink) {
	cols := t.Columns()
	if cols.Len() == 0 {
		sink.Add(message.Error, "table has no columns")
	}
	if t.Size() == 0 {
		sink.Add(message.Warning, "table has no data rows")
	}

	seen := make(map[string]int, cols.Len())
	for i, c := range cols {
		if !c.Valid {
			continue
		}
		key := strings.ToLower(c.Value)
		if first, dup := seen[key]; dup {
			sink.Add(message.Warning, fmt.Sprintf("duplicate column %q at %d (first at %d)", c.Value, i, first))
			continue
		}
		seen[key] = i
	}
}
