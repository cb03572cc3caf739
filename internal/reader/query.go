package reader

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/gridbook/internal/grid"
	"github.com/JonMunkholm/gridbook/internal/logging"
)

// Querier runs a query. *pgxpool.Pool, *pgx.Conn and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryGridReader reads the result of a SQL query into a grid. Row 0 holds
// the result column names; every result row follows. NULL becomes absent.
type QueryGridReader struct {
	DB   Querier
	SQL  string
	Args []any
}

// Read implements GridReader. A failing query or row yields no grid.
func (r *QueryGridReader) Read(ctx context.Context) (*grid.Grid, bool) {
	if r.DB == nil || r.SQL == "" {
		return nil, false
	}

	logger := logging.FromContext(ctx)

	rows, err := r.DB.Query(ctx, r.SQL, r.Args...)
	if err != nil {
		logger.Warn("query failed", queryErrorAttrs(err)...)
		return nil, false
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make(grid.Row, len(fields))
	for i, fd := range fields {
		header[i] = grid.Text(fd.Name)
	}

	g := grid.New().Add(header)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			logger.Warn("query read aborted", append(queryErrorAttrs(err), "row", g.Size())...)
			return nil, false
		}
		row := make(grid.Row, len(values))
		for i, v := range values {
			row[i] = cellOf(v)
		}
		g.Add(row)
	}
	if err := rows.Err(); err != nil {
		logger.Warn("query read aborted", append(queryErrorAttrs(err), "row", g.Size())...)
		return nil, false
	}

	logger.Info("query read complete", "rows", g.Size()-1)
	return g, true
}

// queryErrorAttrs returns log attributes for a query error. Server errors
// carry their SQLSTATE and a short reason so an operator can tell a typo in
// the SQL from a lost connection.
func queryErrorAttrs(err error) []any {
	attrs := []any{"error", err}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			attrs = append(attrs, "reason", "timeout")
		}
		return attrs
	}

	reason := "server error"
	switch pgErr.Code[:min(2, len(pgErr.Code))] {
	case "42":
		reason = "syntax error or unknown object"
	case "22":
		reason = "invalid data"
	case "28":
		reason = "authorization failed"
	case "08":
		reason = "connection failure"
	case "57":
		reason = "query cancelled"
	case "53":
		reason = "insufficient resources"
	}
	return append(attrs, "sqlstate", pgErr.Code, "reason", reason)
}

// cellOf renders a decoded column value as text.
func cellOf(v any) grid.Cell {
	switch x := v.(type) {
	case nil:
		return grid.Absent
	case string:
		return textCell(x)
	case []byte:
		return textCell(string(x))
	case [16]byte:
		return grid.Text(uuid.UUID(x).String())
	case time.Time:
		return grid.Text(x.Format(time.RFC3339Nano))
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return grid.Text(fmt.Sprintf("%v", x))
		}
		return cellOf(dv)
	case fmt.Stringer:
		return grid.Text(x.String())
	default:
		return grid.Text(fmt.Sprintf("%v", x))
	}
}

// textCell maps the empty string to Absent, as the file readers do.
func textCell(s string) grid.Cell {
	if s == "" {
		return grid.Absent
	}
	return grid.Text(s)
}
