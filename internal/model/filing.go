package model

import "time"

// Filing carries the metadata the parsing collaborator hands over with each
// raw fact list.
type Filing struct {
	Accession      string    `json:"accession"`
	CIK            string    `json:"cik"`
	EntityName     string    `json:"entity_name"`
	Form           string    `json:"form,omitempty"` // e.g. "10-K", "10-Q", "10-K/A"
	Filed          time.Time `json:"filed"`
	PeriodOfReport time.Time `json:"period_of_report,omitempty"`
	Industry       string    `json:"industry,omitempty"` // classification tag for mapping-table selection
}

// Amended reports whether the filing is an amendment of an earlier filing.
func (f Filing) Amended() bool {
	return len(f.Form) > 2 && f.Form[len(f.Form)-2:] == "/A"
}

// MoreRecentThan orders filings by filing date, breaking same-day ties by
// accession number so two amendments filed the same day resolve
// deterministically.
func (f Filing) MoreRecentThan(o Filing) bool {
	if !f.Filed.Equal(o.Filed) {
		return f.Filed.After(o.Filed)
	}
	return f.Accession > o.Accession
}
