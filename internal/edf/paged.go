package edf

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/css-ra/tnrange-cli/internal/model"
)

// Paginator runs a base query page by page with bounded concurrency.
type Paginator struct {
	exec          Executor
	pageSize      int
	maxConcurrent int
}

// NewPaginator creates a paginator over the given executor.
func NewPaginator(exec Executor, pageSize, maxConcurrentPages int) *Paginator {
	if pageSize <= 0 {
		pageSize = 5000
	}
	if maxConcurrentPages < 1 {
		maxConcurrentPages = 1
	}
	return &Paginator{exec: exec, pageSize: pageSize, maxConcurrent: maxConcurrentPages}
}

// pageResult is the outcome of a single page fetch. A failed page contributes
// no rows; the reason is logged when the batch is merged.
type pageResult struct {
	offset int
	rows   []model.Row
	err    error
}

// Count wraps the base query in COUNT(*) to learn the total row count.
func (p *Paginator) Count(ctx context.Context, baseQuery string) (int, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) AS ROW_COUNT FROM (%s)", baseQuery)
	res, err := p.exec.Query(ctx, countQuery)
	if err != nil {
		return 0, eris.Wrap(err, "edf: count query")
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	raw, ok := res.Rows[0]["ROW_COUNT"]
	if !ok && len(res.Columns) > 0 {
		raw = res.Rows[0][res.Columns[0]]
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "edf: parse row count %q", raw)
	}
	return n, nil
}

// QueryPaged fetches every page of the base query using the paginator's
// configured concurrency.
func (p *Paginator) QueryPaged(ctx context.Context, baseQuery string) ([]model.Row, error) {
	return p.QueryPagedConcurrency(ctx, baseQuery, p.maxConcurrent)
}

// QueryPagedConcurrency fetches every page of the base query, issuing up to
// maxConcurrentPages fetches at a time and waiting for each batch before
// launching the next. A single failed page is logged and contributes zero
// rows; it never aborts sibling or subsequent fetches. Row order across pages
// is not guaranteed.
func (p *Paginator) QueryPagedConcurrency(ctx context.Context, baseQuery string, maxConcurrentPages int) ([]model.Row, error) {
	total, err := p.Count(ctx, baseQuery)
	if err != nil {
		return nil, err
	}
	totalPages := (total + p.pageSize - 1) / p.pageSize
	zap.L().Info("edf: paged query",
		zap.Int("total_rows", total),
		zap.Int("total_pages", totalPages),
	)
	if maxConcurrentPages < 1 {
		maxConcurrentPages = 1
	}

	var all []model.Row
	offset := 0
	for offset < total {
		g := new(errgroup.Group)
		var mu sync.Mutex
		var results []pageResult

		for i := 0; i < maxConcurrentPages && offset < total; i++ {
			o := offset
			g.Go(func() error {
				paged := fmt.Sprintf("%s %s", baseQuery, p.exec.PageClause(o, p.pageSize))
				res, err := p.exec.Query(ctx, paged)
				pr := pageResult{offset: o, err: err}
				if err == nil {
					pr.rows = res.Rows
				}
				mu.Lock()
				results = append(results, pr)
				mu.Unlock()
				return nil
			})
			offset += p.pageSize
		}
		_ = g.Wait()

		// Merge the batch on the orchestrating goroutine. Failed pages are
		// recorded and treated as empty.
		for _, pr := range results {
			if pr.err != nil {
				zap.L().Warn("edf: page fetch failed, substituting empty page",
					zap.Int("offset", pr.offset),
					zap.Error(pr.err),
				)
				continue
			}
			all = append(all, pr.rows...)
		}

		if err := ctx.Err(); err != nil {
			return all, eris.Wrap(err, "edf: paged query cancelled")
		}
	}

	zap.L().Info("edf: paged query complete", zap.Int("rows_fetched", len(all)))
	return all, nil
}
