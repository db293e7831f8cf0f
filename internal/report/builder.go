package report

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/css-ra/tnrange-cli/internal/edf"
	"github.com/css-ra/tnrange-cli/internal/model"
)

// Options tunes the report builder's fan-out behavior.
type Options struct {
	PageSize          int // rows per page for paged store queries
	PageWorkers       int // concurrent pages for the standard queries
	RemotePageWorkers int // concurrent pages for the remote-range query
	AccountWorkers    int // concurrent account-number lookups
}

// Builder assembles the TN range report for a set of dial plans.
type Builder struct {
	exec  edf.Executor
	pages *edf.Paginator
	opts  Options
}

// NewBuilder returns a Builder that reads from exec.
func NewBuilder(exec edf.Executor, opts Options) *Builder {
	if opts.RemotePageWorkers <= 0 {
		opts.RemotePageWorkers = 20
	}
	if opts.AccountWorkers <= 0 {
		opts.AccountWorkers = 8
	}
	return &Builder{
		exec:  exec,
		pages: edf.NewPaginator(exec, opts.PageSize, opts.PageWorkers),
		opts:  opts,
	}
}

var nonWordChars = regexp.MustCompile(`[^\w]`)

// SanitizeDialPlanID strips everything but word characters from a caller
// supplied dial plan ID.
func SanitizeDialPlanID(id string) string {
	return strings.TrimSpace(nonWordChars.ReplaceAllString(id, ""))
}

// ResolveDialPlans selects the dial plan IDs to report on. Explicit dial plan
// IDs take priority; customer names are only consulted when no IDs were
// given.
func (b *Builder) ResolveDialPlans(ctx context.Context, dialPlanIDs, customerNames []string) ([]model.DialPlanRef, error) {
	ids := make([]string, 0, len(dialPlanIDs))
	for _, raw := range dialPlanIDs {
		ids = append(ids, SanitizeDialPlanID(raw))
	}

	switch {
	case len(ids) > 0 && len(customerNames) > 0:
		zap.L().Info("report: both dial plan IDs and customer names provided, using dial plan IDs",
			zap.Strings("dial_plan_ids", ids))
	case len(ids) > 0:
		zap.L().Info("report: using dial plan IDs directly", zap.Strings("dial_plan_ids", ids))
	}

	if len(ids) > 0 {
		refs := make([]model.DialPlanRef, 0, len(ids))
		for _, id := range ids {
			refs = append(refs, model.DialPlanRef{DialPlanID: id})
		}
		return refs, nil
	}

	zap.L().Info("report: resolving dial plans from customer names",
		zap.Strings("customer_names", customerNames))
	rows, err := b.pages.QueryPaged(ctx, edf.DialPlansByCustomerNames(customerNames))
	if err != nil {
		return nil, eris.Wrap(err, "report: resolve dial plans by customer name")
	}
	refs := make([]model.DialPlanRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, model.DialPlanRef{
			DialPlanID:  row.Get(model.ColResolvedDialPlan),
			CompanyName: row.Get(model.ColCompanyName),
		})
	}
	return refs, nil
}

// Build runs the per-dial-plan pipeline for each dial plan in turn and
// accumulates the results into a single report.
func (b *Builder) Build(ctx context.Context, dialPlanIDs []string) (*Report, error) {
	rep := &Report{}
	for _, dialPlanID := range dialPlanIDs {
		if err := b.buildDialPlan(ctx, dialPlanID, rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

func (b *Builder) buildDialPlan(ctx context.Context, dialPlanID string, rep *Report) error {
	zap.L().Info("report: getting TN ranges for dial plan", zap.String("dial_plan_id", dialPlanID))

	// Hub sites and their TN ranges.
	hubRaw, err := b.pages.QueryPaged(ctx, edf.HubSiteTeleRanges(dialPlanID))
	if err != nil {
		return eris.Wrapf(err, "report: hub ranges for dial plan %s", dialPlanID)
	}
	hubRanges := Deduplicate(hubRaw)

	siteIDs := distinctValues(hubRanges, model.ColSiteID)
	detailIDs := distinctValues(hubRanges, model.ColSiteDetailID)

	// Account-number enrichment for the hub rows.
	accounts := b.fetchAccountNumbers(ctx, detailIDs)
	for _, hub := range hubRanges {
		account, ok := accounts[hub.SiteDetailID()]
		if !ok {
			account = "N/A"
		}
		hub[model.ColMainAccountNum] = account
	}

	// Remote sites attached to the hub sites.
	remoteRaw, err := b.pages.QueryPagedConcurrency(ctx, edf.RemoteSiteTeleRanges(detailIDs), b.opts.RemotePageWorkers)
	if err != nil {
		return eris.Wrapf(err, "report: remote ranges for dial plan %s", dialPlanID)
	}
	remoteRanges := Deduplicate(remoteRaw)

	// Merge: each hub row, then its remote rows layered with the hub's
	// identifying fields.
	for _, detailID := range detailIDs {
		var hubDetails model.Row
		for _, hub := range hubRanges {
			if hub.SiteDetailID() != detailID {
				continue
			}
			if hubDetails == nil {
				hubDetails = hub
			}
			rep.TNRanges = append(rep.TNRanges, hub)
		}
		for _, remote := range remoteRanges {
			if remote.SiteDetailID() != detailID {
				continue
			}
			rep.TNRanges = append(rep.TNRanges, mergeRemote(hubDetails, remote))
		}
	}

	// CNAM records for the hub sites.
	cnam, err := b.pages.QueryPaged(ctx, edf.CnamAndTN(siteIDs))
	if err != nil {
		return eris.Wrapf(err, "report: CNAM for dial plan %s", dialPlanID)
	}
	rep.CNAM = append(rep.CNAM, cnam...)

	// IP toll-free numbers for the dial plan.
	tollFree, err := b.pages.QueryPaged(ctx, edf.IPTollFreeTN(dialPlanID))
	if err != nil {
		return eris.Wrapf(err, "report: toll-free numbers for dial plan %s", dialPlanID)
	}
	rep.TollFree = append(rep.TollFree, tollFree...)

	zap.L().Info("report: dial plan complete",
		zap.String("dial_plan_id", dialPlanID),
		zap.Int("tn_ranges", len(rep.TNRanges)),
		zap.Int("cnam", len(cnam)),
		zap.Int("toll_free", len(tollFree)))
	return nil
}

// fetchAccountNumbers looks up the main account number for each site detail
// ID through a bounded worker pool. A failed lookup, an empty result or a row
// without the account column leaves the ID out; callers fall back to "N/A".
func (b *Builder) fetchAccountNumbers(ctx context.Context, detailIDs []string) map[string]string {
	accounts := make(map[string]string, len(detailIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.AccountWorkers)
	for _, detailID := range detailIDs {
		g.Go(func() error {
			res, err := b.exec.Query(ctx, edf.SiteAccountNumbers(detailID))
			if err != nil {
				zap.L().Warn("report: account number lookup failed",
					zap.String("site_detail_id", detailID), zap.Error(err))
				return nil
			}
			if len(res.Rows) == 0 {
				return nil
			}
			account, ok := res.Rows[0][model.ColMainAccountNum]
			if !ok {
				return nil
			}
			mu.Lock()
			accounts[detailID] = account
			mu.Unlock()
			return nil
		})
	}
	// Workers swallow their own errors.
	_ = g.Wait()
	return accounts
}

// mergeRemote builds the report row for a remote site: the remote row's own
// fields, the hub's SITE_ID and COMPANY_NAME where the remote row has none,
// and the hub's circuit, dial plan, service indicators and account number on
// top. IPTF_SIP_OPTIONS_INDR carries the hub's enhanced-service flag.
func mergeRemote(hub, remote model.Row) model.Row {
	merged := remote.Clone()
	if _, ok := merged[model.ColSiteID]; !ok {
		merged[model.ColSiteID] = hub.Get(model.ColSiteID)
	}
	if _, ok := merged[model.ColCompanyName]; !ok {
		merged[model.ColCompanyName] = hub.Get(model.ColCompanyName)
	}
	merged[model.ColCircuitID] = hub.Get(model.ColCircuitID)
	merged[model.ColDialPlanID] = hub.Get(model.ColDialPlanID)
	merged[model.ColEnhancedSvcInd] = hub.Get(model.ColEnhancedSvcInd)
	merged[model.ColIPTFSIPOptions] = hub.Get(model.ColEnhancedSvcInd)
	merged[model.ColMainAccountNum] = hub.Get(model.ColMainAccountNum)
	return merged
}

// distinctValues returns the distinct values of one column in first-seen
// order.
func distinctValues(rows []model.Row, col string) []string {
	seen := make(map[string]bool, len(rows))
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		v := row.Get(col)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
