// Package standardize maps raw, filer-specific concept identifiers onto
// canonical concepts. Resolution order: industry override table first, then
// the generic alias table; filer extension tags are ambiguous against the
// generic taxonomy, so entity/industry-tagged overrides win.
package standardize

import (
	"github.com/sells-group/statements/internal/taxonomy"
)

// Standardizer resolves raw concepts against a loaded taxonomy table.
// It is stateless apart from the read-only table and safe for concurrent use.
type Standardizer struct {
	tax *taxonomy.Table
}

// New returns a Standardizer over the given reference table.
func New(tax *taxonomy.Table) *Standardizer {
	return &Standardizer{tax: tax}
}

// Standardize maps a raw concept to a canonical concept name. The second
// return is false when no alias matches; callers retain the raw concept
// verbatim in that case. Pure lookup: the same raw concept always resolves
// to the same canonical concept.
func (s *Standardizer) Standardize(raw, industry string) (string, bool) {
	if industry != "" {
		if name, ok := s.tax.Industry(industry, raw); ok {
			return name, true
		}
	}
	if name, ok := s.tax.Generic(raw); ok {
		return name, true
	}
	return "", false
}

// Concept returns the canonical concept definition, or nil when unknown.
func (s *Standardizer) Concept(name string) *taxonomy.Concept {
	return s.tax.Concept(name)
}

// AliasesFor lists every raw concept resolving to the canonical name for the
// given industry. Used by fact stores for canonical lookups.
func (s *Standardizer) AliasesFor(name, industry string) []string {
	return s.tax.AliasesFor(name, industry)
}

// Taxonomy exposes the underlying reference table.
func (s *Standardizer) Taxonomy() *taxonomy.Table {
	return s.tax
}
