// Package factstore holds the immutable, queryable set of normalized facts
// for a single filing. Construction validates and deduplicates; everything
// after construction is read-only. Absence is the normal case for
// heterogeneous filers, so queries return empty results rather than errors.
package factstore

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/statements/internal/model"
	"github.com/sells-group/statements/internal/standardize"
)

// Store is one filing's fact collection.
type Store struct {
	filing    model.Filing
	facts     []model.Fact
	byConcept map[string][]int
	byRole    map[string][]int
}

var fold = cases.Fold()

// New validates and indexes a raw fact list. Facts with identical
// (raw concept, period, dimensions) are duplicate reports of the same fact;
// the instance with the highest declared precision is kept. A fact missing
// its raw concept, period, or (for numeric facts) unit is a collaborator
// contract violation and fails construction, the only halting condition in
// the engine.
func New(filing model.Filing, facts []model.Fact) (*Store, error) {
	if filing.Accession == "" {
		return nil, eris.New("factstore: filing missing accession")
	}

	kept := make(map[string]int, len(facts)) // dedup key -> index into s.facts
	s := &Store{
		filing:    filing,
		byConcept: make(map[string][]int),
		byRole:    make(map[string][]int),
	}

	dropped := 0
	for i, f := range facts {
		switch {
		case f.RawConcept == "":
			return nil, eris.Errorf("factstore: %s fact %d: missing raw concept", filing.Accession, i)
		case f.Period.Zero():
			return nil, eris.Errorf("factstore: %s fact %d (%s): missing period", filing.Accession, i, f.RawConcept)
		case f.Numeric != nil && f.Unit == "":
			return nil, eris.Errorf("factstore: %s fact %d (%s): numeric fact missing unit", filing.Accession, i, f.RawConcept)
		}

		key := f.RawConcept + "\x00" + f.Period.Key() + "\x00" + f.DimensionKey()
		if at, ok := kept[key]; ok {
			if f.DecimalsOrDefault() > s.facts[at].DecimalsOrDefault() {
				s.facts[at] = f
			}
			dropped++
			continue
		}
		kept[key] = len(s.facts)
		s.facts = append(s.facts, f)
	}

	for i, f := range s.facts {
		s.byConcept[f.RawConcept] = append(s.byConcept[f.RawConcept], i)
		if f.Role != "" {
			s.byRole[f.Role] = append(s.byRole[f.Role], i)
		}
	}

	if dropped > 0 {
		zap.L().Debug("factstore: dropped duplicate facts",
			zap.String("accession", filing.Accession),
			zap.Int("dropped", dropped),
			zap.Int("kept", len(s.facts)),
		)
	}
	return s, nil
}

// Filing returns the filing metadata this store was built from.
func (s *Store) Filing() model.Filing {
	return s.filing
}

// Len returns the number of facts after deduplication.
func (s *Store) Len() int {
	return len(s.facts)
}

// Facts returns every fact in ingestion order. Callers must not mutate.
func (s *Store) Facts() []model.Fact {
	return s.facts
}

// ByConcept returns all facts reported under the exact raw concept.
func (s *Store) ByConcept(raw string) []model.Fact {
	return s.collect(s.byConcept[raw])
}

// ByRole returns all facts grouped under the filing-internal statement role.
func (s *Store) ByRole(role string) []model.Fact {
	return s.collect(s.byRole[role])
}

// ByCanonical returns all facts whose raw concept standardizes to the given
// canonical concept, using the filing's industry classification for override
// selection.
func (s *Store) ByCanonical(std *standardize.Standardizer, name string) []model.Fact {
	var out []model.Fact
	for _, raw := range std.AliasesFor(name, s.filing.Industry) {
		out = append(out, s.collect(s.byConcept[raw])...)
	}
	return out
}

// SearchLabel performs a case-folded substring search over raw concept
// names, fact labels, and the labels of the canonical concepts facts map to.
func (s *Store) SearchLabel(std *standardize.Standardizer, substr string) []model.Fact {
	needle := fold.String(substr)
	if needle == "" {
		return nil
	}
	var out []model.Fact
	for _, f := range s.facts {
		if strings.Contains(fold.String(f.RawConcept), needle) ||
			strings.Contains(fold.String(f.Label), needle) {
			out = append(out, f)
			continue
		}
		if name, ok := std.Standardize(f.RawConcept, s.filing.Industry); ok {
			if c := std.Concept(name); c != nil && strings.Contains(fold.String(c.Label), needle) {
				out = append(out, f)
			}
		}
	}
	return out
}

// Periods returns the distinct normalized periods observed in this filing,
// most recent first.
func (s *Store) Periods() []model.Period {
	seen := make(map[string]model.Period)
	for _, f := range s.facts {
		seen[f.Period.Key()] = f.Period
	}
	out := make([]model.Period, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Before(out[i]) })
	return out
}

func (s *Store) collect(idx []int) []model.Fact {
	if len(idx) == 0 {
		return nil
	}
	out := make([]model.Fact, len(idx))
	for i, j := range idx {
		out[i] = s.facts[j]
	}
	return out
}
