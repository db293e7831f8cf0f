package edf

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/css-ra/tnrange-cli/internal/model"
)

// SQLiteExecutor implements Executor on a local SQLite file. Intended for
// development against an extracted snapshot of the inventory tables.
type SQLiteExecutor struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path.
func NewSQLite(dsn string) (*SQLiteExecutor, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "edf: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "edf: exec %s", pragma)
		}
	}
	return &SQLiteExecutor{db: db}, nil
}

func (e *SQLiteExecutor) Query(ctx context.Context, query string) (*Result, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{Code: "SQLITE", Message: err.Error()}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Code: "SQLITE", Message: err.Error()}
	}
	for i := range cols {
		cols[i] = strings.ToUpper(cols[i])
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Code: "SQLITE", Message: err.Error()}
		}
		row := make(model.Row, len(cols))
		for i, col := range cols {
			row[col] = stringify(vals[i])
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Code: "SQLITE", Message: err.Error()}
	}
	return res, nil
}

func (e *SQLiteExecutor) PageClause(offset, limit int) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

func (e *SQLiteExecutor) Close() {
	_ = e.db.Close()
}
