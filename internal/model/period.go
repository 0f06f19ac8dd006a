package model

import (
	"fmt"
	"time"
)

// Framing classifies a period's fiscal scope. Durations with coincident end
// dates but different framings are distinct periods and never merge.
type Framing string

const (
	FramingInstant   Framing = "instant"
	FramingQuarterly Framing = "quarterly"
	FramingAnnual    Framing = "annual"
	FramingYTD       Framing = "ytd" // year-to-date spans between one quarter and one year
)

// Period is the normalized temporal scope of a fact: an instant
// (balance-sheet date) or a duration (start, end).
type Period struct {
	Instant bool      `json:"instant"`
	Start   time.Time `json:"start,omitempty"`
	End     time.Time `json:"end"`
}

// NewInstant returns an instant period at the given date.
func NewInstant(end time.Time) Period {
	return Period{Instant: true, End: end.UTC().Truncate(24 * time.Hour)}
}

// NewDuration returns a duration period spanning start..end.
func NewDuration(start, end time.Time) Period {
	return Period{
		Start: start.UTC().Truncate(24 * time.Hour),
		End:   end.UTC().Truncate(24 * time.Hour),
	}
}

// Framing derives the fiscal framing from the period span.
// Quarterly: up to ~4 months. Annual: ~11 months or more. Anything between
// is treated as year-to-date.
func (p Period) Framing() Framing {
	if p.Instant {
		return FramingInstant
	}
	days := p.End.Sub(p.Start).Hours() / 24
	switch {
	case days <= 120:
		return FramingQuarterly
	case days >= 330:
		return FramingAnnual
	default:
		return FramingYTD
	}
}

// Key returns the deduplication identity for this period. Instants dedup by
// end date alone; durations by end date plus framing, so a quarter is never
// merged with an annual period that happens to share its end date.
func (p Period) Key() string {
	if p.Instant {
		return "I:" + p.End.Format("2006-01-02")
	}
	return fmt.Sprintf("D:%s:%s", p.End.Format("2006-01-02"), p.Framing())
}

// Same reports whether two periods normalize to the same identity.
func (p Period) Same(o Period) bool {
	return p.Key() == o.Key()
}

// Label renders the display label for a period column. Annual durations use
// the "FY 2023" convention, quarterly durations "Q1 2024", instants and
// year-to-date spans the end date.
func (p Period) Label() string {
	if p.Instant {
		return p.End.Format("2006-01-02")
	}
	switch p.Framing() {
	case FramingAnnual:
		return fmt.Sprintf("FY %d", p.FiscalYear())
	case FramingQuarterly:
		return fmt.Sprintf("Q%d %d", p.fiscalQuarter(), p.FiscalYear())
	default:
		return p.End.Format("2006-01-02")
	}
}

// FiscalYear approximates the fiscal year a period reports on. Fiscal years
// ending in January are attributed to the prior calendar year.
func (p Period) FiscalYear() int {
	if p.End.Month() == time.January {
		return p.End.Year() - 1
	}
	return p.End.Year()
}

// fiscalQuarter numbers a quarterly duration by its position after the
// period start within a calendar-ish year.
func (p Period) fiscalQuarter() int {
	q := int(p.End.Month()-1)/3 + 1
	if q < 1 {
		q = 1
	}
	return q
}

// Before orders periods by end date, instants after durations on equal ends
// so balance-sheet dates sort beside the duration they close.
func (p Period) Before(o Period) bool {
	if !p.End.Equal(o.End) {
		return p.End.Before(o.End)
	}
	return !p.Instant && o.Instant
}

// Zero reports whether the period carries no dates at all.
func (p Period) Zero() bool {
	return p.End.IsZero() && p.Start.IsZero()
}
