// Package period orders and deduplicates reporting periods observed across
// the filings being combined, retaining one source filing per period for
// provenance.
package period

import (
	"sort"

	"github.com/sells-group/statements/internal/model"
)

// Observed is one period sighting: the normalized period plus the filing
// that reported it.
type Observed struct {
	Period model.Period
	Filing model.Filing
}

// Column is a resolved period column with its chosen source filing.
type Column struct {
	Period model.Period
	Source model.Filing
}

// MoreRecent orders two filings for source selection when the same period is
// reported by both. The default breaks same-day ties by accession number
// descending; callers with a different sequencing scheme supply their own.
type MoreRecent func(a, b model.Filing) bool

// Recency is the default source ordering: filing date, then accession.
func Recency(a, b model.Filing) bool {
	return a.MoreRecentThan(b)
}

// Resolve deduplicates the observed periods and returns up to max columns,
// most recent end date first. Two periods are the same when their normalized
// keys match: end date for instants, end date plus fiscal framing for
// durations, so a quarterly duration never merges with an annual one even on
// coincident end dates. When a period is reported by more than one filing,
// the most recently filed source wins. max <= 0 returns every column.
func Resolve(observed []Observed, max int) []Column {
	return ResolveWith(observed, max, Recency)
}

// ResolveWith is Resolve with a caller-supplied source ordering.
func ResolveWith(observed []Observed, max int, moreRecent MoreRecent) []Column {
	byKey := make(map[string]Column)
	for _, o := range observed {
		key := o.Period.Key()
		cur, ok := byKey[key]
		if !ok || moreRecent(o.Filing, cur.Source) {
			byKey[key] = Column{Period: o.Period, Source: o.Filing}
		}
	}

	cols := make([]Column, 0, len(byKey))
	for _, c := range byKey {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool {
		// Strictly decreasing by end date; durations ahead of instants on
		// ties so flow columns lead the balance they close to.
		return cols[j].Period.Before(cols[i].Period)
	})

	if max > 0 && len(cols) > max {
		cols = cols[:max]
	}
	return cols
}
