package model

import (
	"sort"
	"strings"
)

// StatementType tags which financial statement a concept or fact belongs to.
type StatementType string

const (
	StatementBalanceSheet StatementType = "balance_sheet"
	StatementIncome       StatementType = "income_statement"
	StatementCashFlow     StatementType = "cash_flow"
	StatementOther        StatementType = "other"
)

// Dimension qualifies a fact along one axis (e.g. a business segment member).
type Dimension struct {
	Axis   string `json:"axis"`
	Member string `json:"member"`
}

// Fact is one reported value from a filing: a raw concept identifier, the
// value as filed, the reporting period, the unit, and optional dimensional
// qualifiers. Facts are immutable once ingested into a Store.
type Fact struct {
	RawConcept string      `json:"raw_concept"`
	Label      string      `json:"label,omitempty"`
	Value      string      `json:"value"`
	Numeric    *float64    `json:"numeric,omitempty"` // nil for text facts
	Unit       string      `json:"unit,omitempty"`    // e.g. "USD", "shares", "USD/shares", "pure"
	Period     Period      `json:"period"`
	Dimensions []Dimension `json:"dimensions,omitempty"`
	Decimals   *int        `json:"decimals,omitempty"` // signed rounding magnitude, e.g. -6 = millions
	Role       string      `json:"role,omitempty"`     // filing-internal statement grouping
}

// Dimensioned reports whether the fact carries any dimensional qualifiers.
// Undimensioned facts are assumed to be consolidated totals.
func (f Fact) Dimensioned() bool {
	return len(f.Dimensions) > 0
}

// DimensionKey returns a stable identity for the fact's dimension set,
// independent of the order dimensions were reported in.
func (f Fact) DimensionKey() string {
	if len(f.Dimensions) == 0 {
		return ""
	}
	pairs := make([]string, len(f.Dimensions))
	for i, d := range f.Dimensions {
		pairs[i] = d.Axis + "=" + d.Member
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}

// PerShare reports whether the fact's unit is a ratio of currency per share,
// e.g. EPS. Per-share figures are exempt from table scaling.
func (f Fact) PerShare() bool {
	return strings.Contains(f.Unit, "/")
}

// DecimalsOrDefault returns the fact's declared precision, or the lowest
// possible precision when the filer omitted it.
func (f Fact) DecimalsOrDefault() int {
	if f.Decimals == nil {
		return -1 << 30
	}
	return *f.Decimals
}
