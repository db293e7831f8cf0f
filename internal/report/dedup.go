package report

import (
	"strings"
	"time"

	"github.com/css-ra/tnrange-cli/internal/model"
)

// epochFloor stands in for a missing date column so that a record with no
// dates at all still outranks one whose dates failed to parse.
const epochFloor = "01-JAN-70"

var rangeDateLayouts = []string{"02-Jan-06", "02-Jan-2006"}

// ParseRangeDate parses EDF date strings like "07-OCT-20" or "01-SEP-2016".
// Month abbreviations are matched case-insensitively. Unparseable input
// returns the zero time, which sorts before every real date.
func ParseRangeDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, "-"); len(parts) == 3 && parts[1] != "" {
		month := strings.ToLower(parts[1])
		parts[1] = strings.ToUpper(month[:1]) + month[1:]
		s = strings.Join(parts, "-")
	}
	for _, layout := range rangeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Deduplicate collapses TN range rows that share a PBX_BEGIN_RANGE, keeping
// the row whose best date (the later of LAST_UPDATE_DATE and LN_STRT_DT) is
// strictly newest; on ties the first row encountered wins. Remote-branch rows
// without a usable REMOTE_SITE_ID are dropped from the result.
func Deduplicate(ranges []model.Row) []model.Row {
	type candidate struct {
		row  model.Row
		best time.Time
	}
	unique := make(map[string]*candidate, len(ranges))
	order := make([]string, 0, len(ranges))

	for _, rec := range ranges {
		key := rec.PBXBeginRange()
		best := dateOrFloor(rec, model.ColLastUpdateDate)
		if lnStart := dateOrFloor(rec, model.ColLnStartDate); lnStart.After(best) {
			best = lnStart
		}
		cur, ok := unique[key]
		if !ok {
			unique[key] = &candidate{row: rec, best: best}
			order = append(order, key)
			continue
		}
		if best.After(cur.best) {
			cur.row, cur.best = rec, best
		}
	}

	out := make([]model.Row, 0, len(order))
	for _, key := range order {
		rec := unique[key].row
		if rec.IsRemoteBranch() && !rec.HasRemoteSiteID() {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func dateOrFloor(rec model.Row, col string) time.Time {
	raw, ok := rec[col]
	if !ok {
		raw = epochFloor
	}
	return ParseRangeDate(raw)
}
