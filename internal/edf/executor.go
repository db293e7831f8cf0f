// Package edf executes read queries against the EDF inventory store and
// provides offset-based pagination over them.
package edf

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/css-ra/tnrange-cli/internal/model"
)

// Result is the raw outcome of a single query execution.
type Result struct {
	Columns []string
	Rows    []model.Row
}

// QueryError is a structured store-level failure (bad SQL, connection loss).
type QueryError struct {
	Code    string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("edf: query failed (%s): %s", e.Code, e.Message)
}

// Executor runs a single read query against the store. Implementations are
// safe for concurrent use.
type Executor interface {
	// Query executes the given SQL and returns all rows with values
	// stringified. Errors are *QueryError for store-level failures.
	Query(ctx context.Context, query string) (*Result, error)
	// PageClause returns the dialect's pagination suffix for one page.
	PageClause(offset, limit int) string
	Close()
}

// WithRateLimit wraps an executor with a QPS gate. qps <= 0 disables the gate.
func WithRateLimit(exec Executor, qps float64) Executor {
	if qps <= 0 {
		return exec
	}
	return &limitedExecutor{Executor: exec, lim: rate.NewLimiter(rate.Limit(qps), 1)}
}

type limitedExecutor struct {
	Executor
	lim *rate.Limiter
}

func (l *limitedExecutor) Query(ctx context.Context, query string) (*Result, error) {
	if err := l.lim.Wait(ctx); err != nil {
		return nil, &QueryError{Code: "CANCELLED", Message: err.Error()}
	}
	return l.Executor.Query(ctx, query)
}

// stringify renders a scanned column value the way the report layer expects:
// everything is a string, NULLs are empty, dates use the DD-MON-YYYY form the
// deduplicator parses.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return strings.ToUpper(t.Format("02-Jan-2006"))
	default:
		return fmt.Sprintf("%v", t)
	}
}
