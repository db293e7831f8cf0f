package edf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/css-ra/tnrange-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the executor uses. pgxmock satisfies it.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresExecutor implements Executor on a pgx connection pool.
type PostgresExecutor struct {
	pool Pool
}

// NewPostgres connects a pooled executor to the store. The pool is bounded to
// maxConns so concurrent page fetches cannot exhaust connections.
func NewPostgres(ctx context.Context, connString string, maxConns int32) (*PostgresExecutor, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "edf: parse postgres config")
	}

	if maxConns <= 0 {
		maxConns = 20
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "edf: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "edf: ping")
	}
	return &PostgresExecutor{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresFromPool(pool Pool) *PostgresExecutor {
	return &PostgresExecutor{pool: pool}
}

func (e *PostgresExecutor) Query(ctx context.Context, query string) (*Result, error) {
	rows, err := e.pool.Query(ctx, query)
	if err != nil {
		return nil, asQueryError(err)
	}
	defer rows.Close()

	// Postgres folds unquoted aliases to lowercase; row keys are the
	// uppercase alias names the query builders write.
	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, fd := range fields {
		cols[i] = strings.ToUpper(fd.Name)
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, asQueryError(err)
		}
		row := make(model.Row, len(cols))
		for i, col := range cols {
			if i < len(vals) {
				row[col] = stringify(vals[i])
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, asQueryError(err)
	}
	return res, nil
}

func (e *PostgresExecutor) PageClause(offset, limit int) string {
	return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}

func (e *PostgresExecutor) Close() {
	e.pool.Close()
}

// asQueryError maps a pgx error to the structured store error shape.
func asQueryError(err error) *QueryError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &QueryError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return &QueryError{Code: "UNKNOWN", Message: err.Error()}
}
