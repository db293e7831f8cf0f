package edf

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteExecutor {
	t.Helper()
	// a file-backed database: ":memory:" gives every pooled connection its
	// own empty store
	exec, err := NewSQLite(filepath.Join(t.TempDir(), "edf.db"))
	require.NoError(t, err)
	t.Cleanup(exec.Close)
	return exec
}

func TestSQLiteQueryUppercasesColumns(t *testing.T) {
	exec := newTestSQLite(t)

	res, err := exec.Query(context.Background(), "SELECT 'S1' AS site_id, NULL AS circuit_id")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, []string{"SITE_ID", "CIRCUIT_ID"}, res.Columns)
	assert.Equal(t, "S1", res.Rows[0]["SITE_ID"])
	// NULL stringifies to empty
	assert.Equal(t, "", res.Rows[0]["CIRCUIT_ID"])
}

func TestSQLiteQueryError(t *testing.T) {
	exec := newTestSQLite(t)

	_, err := exec.Query(context.Background(), "SELECT FROM nowhere")
	require.Error(t, err)
	qerr, ok := err.(*QueryError)
	require.True(t, ok)
	assert.Equal(t, "SQLITE", qerr.Code)
}

func TestSQLitePageClause(t *testing.T) {
	exec := newTestSQLite(t)
	assert.Equal(t, "LIMIT 50 OFFSET 100", exec.PageClause(100, 50))
}

func TestSQLitePagination(t *testing.T) {
	exec := newTestSQLite(t)

	_, err := exec.Query(context.Background(), `CREATE TABLE ranges (begin_range TEXT)`)
	require.NoError(t, err)
	for _, v := range []string{"1", "2", "3"} {
		_, err := exec.Query(context.Background(), "INSERT INTO ranges VALUES ('"+v+"')")
		require.NoError(t, err)
	}

	p := NewPaginator(exec, 2, 1)
	rows, err := p.QueryPaged(context.Background(), "SELECT begin_range FROM ranges ORDER BY begin_range")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
