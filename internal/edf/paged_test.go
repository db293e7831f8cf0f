package edf

import (
	"context"
	"fmt"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

const baseQuery = "SELECT SITE_ID FROM RANGES"

func countQuery() string {
	return fmt.Sprintf("SELECT COUNT(*) AS ROW_COUNT FROM (%s)", baseQuery)
}

func pageQuery(offset, limit int) string {
	return fmt.Sprintf("%s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", baseQuery, offset, limit)
}

func TestPaginatorCount(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(countQuery()).
		WillReturnRows(pgxmock.NewRows([]string{"row_count"}).AddRow(int64(42)))

	p := NewPaginator(NewPostgresFromPool(mock), 5000, 10)
	total, err := p.Count(context.Background(), baseQuery)
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginatorQueryPagedAllPages(t *testing.T) {
	mock := newMockPool(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(countQuery()).
		WillReturnRows(pgxmock.NewRows([]string{"row_count"}).AddRow(int64(3)))
	mock.ExpectQuery(pageQuery(0, 2)).
		WillReturnRows(pgxmock.NewRows([]string{"site_id"}).AddRow("S1").AddRow("S2"))
	mock.ExpectQuery(pageQuery(2, 2)).
		WillReturnRows(pgxmock.NewRows([]string{"site_id"}).AddRow("S3"))

	p := NewPaginator(NewPostgresFromPool(mock), 2, 2)
	rows, err := p.QueryPaged(context.Background(), baseQuery)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// column names come back uppercased
	got := map[string]bool{}
	for _, row := range rows {
		got[row["SITE_ID"]] = true
	}
	assert.True(t, got["S1"] && got["S2"] && got["S3"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginatorQueryPagedFailedPageSubstitutesEmpty(t *testing.T) {
	mock := newMockPool(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(countQuery()).
		WillReturnRows(pgxmock.NewRows([]string{"row_count"}).AddRow(int64(4)))
	mock.ExpectQuery(pageQuery(0, 2)).
		WillReturnRows(pgxmock.NewRows([]string{"site_id"}).AddRow("S1").AddRow("S2"))
	mock.ExpectQuery(pageQuery(2, 2)).
		WillReturnError(assert.AnError)

	p := NewPaginator(NewPostgresFromPool(mock), 2, 2)
	rows, err := p.QueryPaged(context.Background(), baseQuery)

	// a failed page contributes zero rows but does not fail the run
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginatorQueryPagedEmptyResult(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(countQuery()).
		WillReturnRows(pgxmock.NewRows([]string{"row_count"}).AddRow(int64(0)))

	p := NewPaginator(NewPostgresFromPool(mock), 2, 2)
	rows, err := p.QueryPaged(context.Background(), baseQuery)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginatorCountError(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(countQuery()).WillReturnError(assert.AnError)

	p := NewPaginator(NewPostgresFromPool(mock), 2, 2)
	_, err := p.QueryPaged(context.Background(), baseQuery)
	assert.Error(t, err)
}
