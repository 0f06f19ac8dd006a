package statement

import (
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/statements/internal/factstore"
	"github.com/sells-group/statements/internal/model"
	"github.com/sells-group/statements/internal/period"
	"github.com/sells-group/statements/internal/standardize"
)

// Assembler builds statement tables from a filing's fact store using loaded
// reference data. Stateless apart from the read-only standardizer; safe for
// concurrent use.
type Assembler struct {
	std *standardize.Standardizer
}

// NewAssembler returns an Assembler over the given standardizer.
func NewAssembler(std *standardize.Standardizer) *Assembler {
	return &Assembler{std: std}
}

var fold = cases.Fold()

// Build produces the statement table of the given type for one filing.
// Facts are selected by statement role when the filing carries role metadata;
// otherwise membership is inferred from the canonical concept's statement tag
// and the table is flagged accordingly. A filing with no facts mappable to
// the target statement yields an empty table, not an error.
func (a *Assembler) Build(store *factstore.Store, target model.StatementType) *Table {
	filing := store.Filing()
	t := &Table{
		Entity: filing.EntityName,
		Type:   target,
		Scale:  ScaleInfo{Factor: 1, Name: "units"},
	}

	hasRoles := false
	for _, f := range store.Facts() {
		if f.Role != "" {
			hasRoles = true
			break
		}
	}
	t.RoleInferred = !hasRoles

	type group struct {
		facts map[string][]model.Fact // period key -> candidate facts
	}
	mapped := make(map[string]*group)   // canonical name
	unmapped := make(map[string]*group) // raw concept (role-selected filings only)
	labels := make(map[string]string)   // raw concept -> reported label
	var observed []period.Observed
	seenPeriod := make(map[string]bool)

	for _, f := range store.Facts() {
		if f.Numeric == nil {
			continue
		}
		name, ok := a.std.Standardize(f.RawConcept, filing.Industry)

		if hasRoles {
			if RoleType(f.Role) != target {
				continue
			}
		} else {
			// No role metadata anywhere: infer membership from the canonical
			// concept's statement tag. Unmapped facts cannot be placed.
			if !ok || a.std.Concept(name).Statement != target {
				continue
			}
		}

		var g *group
		if ok {
			if mapped[name] == nil {
				mapped[name] = &group{facts: make(map[string][]model.Fact)}
			}
			g = mapped[name]
		} else {
			if unmapped[f.RawConcept] == nil {
				unmapped[f.RawConcept] = &group{facts: make(map[string][]model.Fact)}
			}
			g = unmapped[f.RawConcept]
			if f.Label != "" {
				labels[f.RawConcept] = f.Label
			}
		}

		pk := f.Period.Key()
		g.facts[pk] = append(g.facts[pk], f)
		if !seenPeriod[pk] {
			seenPeriod[pk] = true
			observed = append(observed, period.Observed{Period: f.Period, Filing: filing})
		}
	}

	cols := period.Resolve(observed, 0)
	t.Columns = make([]Column, len(cols))
	for i, c := range cols {
		t.Columns[i] = Column{Period: c.Period, Label: c.Period.Label(), Source: c.Source.Accession}
	}

	// Resolve each (concept, period) group to a single value.
	value := func(g *group, pk string) *float64 {
		f, ok := standardize.PreferUndimensioned(g.facts[pk])
		if !ok {
			return nil
		}
		return f.Numeric
	}

	// Direct values for mapped concepts.
	direct := make(map[string]map[string]*float64) // canonical -> period key -> value
	for name, g := range mapped {
		vals := make(map[string]*float64, len(g.facts))
		for pk := range g.facts {
			vals[pk] = value(g, pk)
		}
		direct[name] = vals
	}

	// Child-sum synthesis: a parent with no direct fact for a period takes the
	// sum of its declared children only when every child reported a value.
	synthesized := make(map[string]map[string]bool)
	for _, c := range a.std.Taxonomy().ForStatement(target) {
		if len(c.Children) == 0 {
			continue
		}
		for _, col := range t.Columns {
			pk := col.Period.Key()
			if vals, ok := direct[c.Name]; ok && vals[pk] != nil {
				continue
			}
			childVals := make(map[string]*float64, len(c.Children))
			for _, child := range c.Children {
				if vals, ok := direct[child]; ok {
					childVals[child] = vals[pk]
				}
			}
			if sum := standardize.SynthesizeParent(c, childVals); sum != nil {
				if direct[c.Name] == nil {
					direct[c.Name] = make(map[string]*float64)
				}
				if synthesized[c.Name] == nil {
					synthesized[c.Name] = make(map[string]bool)
				}
				direct[c.Name][pk] = sum
				synthesized[c.Name][pk] = true
			}
		}
	}

	// Mapped rows in canonical presentation order, then unmapped rows by
	// label. Rows with no value in any period are dropped.
	var mappedNames []string
	for name, vals := range direct {
		if anyValue(vals) {
			mappedNames = append(mappedNames, name)
		}
	}
	sort.Slice(mappedNames, func(i, j int) bool {
		ci, cj := a.std.Concept(mappedNames[i]), a.std.Concept(mappedNames[j])
		if ci.Order != cj.Order {
			return ci.Order < cj.Order
		}
		return ci.Name < cj.Name
	})

	var unmappedNames []string
	for raw, g := range unmapped {
		for pk := range g.facts {
			if value(g, pk) != nil {
				unmappedNames = append(unmappedNames, raw)
				break
			}
		}
	}
	sort.Slice(unmappedNames, func(i, j int) bool {
		li, lj := unmappedLabel(labels, unmappedNames[i]), unmappedLabel(labels, unmappedNames[j])
		if !strings.EqualFold(li, lj) {
			return fold.String(li) < fold.String(lj)
		}
		return unmappedNames[i] < unmappedNames[j]
	})

	for _, name := range mappedNames {
		c := a.std.Concept(name)
		t.Rows = append(t.Rows, Row{
			Concept:  name,
			Label:    c.Label,
			Mapped:   true,
			PerShare: c.PerShare,
			Order:    c.Order,
		})
		cells := make([]Cell, len(t.Columns))
		for i, col := range t.Columns {
			pk := col.Period.Key()
			if v := direct[name][pk]; v != nil {
				cells[i] = Cell{Value: v, Source: filing.Accession, Synthesized: synthesized[name][pk]}
			}
		}
		t.Cells = append(t.Cells, cells)
	}

	for _, raw := range unmappedNames {
		t.Rows = append(t.Rows, Row{Concept: raw, Label: unmappedLabel(labels, raw)})
		g := unmapped[raw]
		cells := make([]Cell, len(t.Columns))
		for i, col := range t.Columns {
			if v := value(g, col.Period.Key()); v != nil {
				cells[i] = Cell{Value: v, Source: filing.Accession}
			}
		}
		t.Cells = append(t.Cells, cells)
	}

	zap.L().Debug("statement assembled",
		zap.String("accession", filing.Accession),
		zap.String("type", string(target)),
		zap.Int("rows", len(t.Rows)),
		zap.Int("columns", len(t.Columns)),
		zap.Bool("role_inferred", t.RoleInferred),
	)
	return t
}

// RoleType classifies a filing-internal statement role string. Unrecognized
// roles land in StatementOther.
func RoleType(role string) model.StatementType {
	r := strings.ToLower(role)
	r = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(r)
	switch {
	case strings.Contains(r, "balance"), strings.Contains(r, "financialposition"):
		return model.StatementBalanceSheet
	case strings.Contains(r, "cashflow"):
		return model.StatementCashFlow
	case strings.Contains(r, "income"), strings.Contains(r, "operations"), strings.Contains(r, "earnings"):
		return model.StatementIncome
	default:
		return model.StatementOther
	}
}

func anyValue(vals map[string]*float64) bool {
	for _, v := range vals {
		if v != nil {
			return true
		}
	}
	return false
}

func unmappedLabel(labels map[string]string, raw string) string {
	if l, ok := labels[raw]; ok {
		return l
	}
	return raw
}
