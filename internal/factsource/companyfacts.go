package factsource

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/statements/internal/factstore"
	"github.com/sells-group/statements/internal/model"
)

// CompanyFacts represents the EDGAR company facts JSON structure.
type CompanyFacts struct {
	CIK        int                    `json:"cik"`
	EntityName string                 `json:"entityName"`
	Facts      map[string]NamespaceNS `json:"facts"`
}

// NamespaceNS groups facts by namespace (e.g., "us-gaap", "dei").
type NamespaceNS map[string]ConceptFacts

// ConceptFacts is one tagged concept with its units and data points.
type ConceptFacts struct {
	Label       string                 `json:"label"`
	Description string                 `json:"description"`
	Units       map[string][]DataPoint `json:"units"`
}

// DataPoint is a single reported value for a concept.
type DataPoint struct {
	Start string  `json:"start,omitempty"`
	End   string  `json:"end"`
	Val   float64 `json:"val"`
	Accn  string  `json:"accn"`
	FY    int     `json:"fy"`
	FP    string  `json:"fp"`
	Form  string  `json:"form"`
	Filed string  `json:"filed"`
	Frame string  `json:"frame,omitempty"`
}

// ParseCompanyFacts parses EDGAR company facts JSON from a reader.
func ParseCompanyFacts(r io.Reader) (*CompanyFacts, error) {
	var facts CompanyFacts
	if err := json.NewDecoder(r).Decode(&facts); err != nil {
		return nil, eris.Wrap(err, "factsource: parse company facts")
	}
	return &facts, nil
}

// FilingStores regroups a company-facts document by accession number and
// builds one fact store per filing, most recently filed first. The industry
// tag is caller-supplied; company facts carry no classification. Company
// facts also carry no statement roles, so statement membership is inferred
// downstream from the taxonomy.
func FilingStores(cf *CompanyFacts, industry string) ([]*factstore.Store, error) {
	if cf == nil || len(cf.Facts) == 0 {
		return nil, nil
	}

	type accumulator struct {
		filing model.Filing
		facts  []model.Fact
	}
	byAccession := make(map[string]*accumulator)

	for ns, nsMap := range cf.Facts {
		for concept, cfacts := range nsMap {
			raw := ns + ":" + concept
			for unit, points := range cfacts.Units {
				for _, p := range points {
					if p.End == "" || p.Accn == "" {
						continue
					}
					f, err := pointToFact(raw, cfacts.Label, unit, p)
					if err != nil {
						return nil, err
					}

					acc, ok := byAccession[p.Accn]
					if !ok {
						filed, err := time.Parse(dateFormat, p.Filed)
						if err != nil {
							return nil, eris.Wrapf(err, "factsource: accession %s: bad filed date %q", p.Accn, p.Filed)
						}
						acc = &accumulator{filing: model.Filing{
							Accession:  p.Accn,
							CIK:        fmt.Sprintf("%d", cf.CIK),
							EntityName: cf.EntityName,
							Form:       p.Form,
							Filed:      filed,
							Industry:   industry,
						}}
						byAccession[p.Accn] = acc
					}
					acc.facts = append(acc.facts, f)
				}
			}
		}
	}

	accs := make([]*accumulator, 0, len(byAccession))
	for _, acc := range byAccession {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool {
		return accs[i].filing.MoreRecentThan(accs[j].filing)
	})

	stores := make([]*factstore.Store, 0, len(accs))
	for _, acc := range accs {
		s, err := factstore.New(acc.filing, acc.facts)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, nil
}

func pointToFact(raw, label, unit string, p DataPoint) (model.Fact, error) {
	end, err := time.Parse(dateFormat, p.End)
	if err != nil {
		return model.Fact{}, eris.Wrapf(err, "factsource: %s: bad end date %q", raw, p.End)
	}
	var per model.Period
	if p.Start != "" {
		start, err := time.Parse(dateFormat, p.Start)
		if err != nil {
			return model.Fact{}, eris.Wrapf(err, "factsource: %s: bad start date %q", raw, p.Start)
		}
		per = model.NewDuration(start, end)
	} else {
		per = model.NewInstant(end)
	}

	v := p.Val
	return model.Fact{
		RawConcept: raw,
		Label:      label,
		Value:      fmt.Sprintf("%g", v),
		Numeric:    &v,
		Unit:       unit,
		Period:     per,
	}, nil
}
