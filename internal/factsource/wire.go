// Package factsource adapts collaborator-produced fact data (the raw-facts
// JSON contract, EDGAR company-facts JSON, and a sqlite fact archive) into
// fact stores. Retrieval and markup parsing happen upstream; everything here
// reads already-extracted facts.
package factsource

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/statements/internal/model"
)

const dateFormat = "2006-01-02"

// factJSON is the wire shape of one fact. Periods use date-only strings:
// instant facts set "instant", duration facts set "start" and "end".
type factJSON struct {
	Concept    string          `json:"concept"`
	Label      string          `json:"label,omitempty"`
	Value      string          `json:"value"`
	Unit       string          `json:"unit,omitempty"`
	Instant    string          `json:"instant,omitempty"`
	Start      string          `json:"start,omitempty"`
	End        string          `json:"end,omitempty"`
	Dimensions []dimensionJSON `json:"dimensions,omitempty"`
	Decimals   *int            `json:"decimals,omitempty"`
	Role       string          `json:"role,omitempty"`
}

type dimensionJSON struct {
	Axis   string `json:"axis"`
	Member string `json:"member"`
}

// filingJSON is the wire shape of filing metadata.
type filingJSON struct {
	Accession      string `json:"accession"`
	CIK            string `json:"cik,omitempty"`
	EntityName     string `json:"entity_name,omitempty"`
	Form           string `json:"form,omitempty"`
	Filed          string `json:"filed"`
	PeriodOfReport string `json:"period_of_report,omitempty"`
	Industry       string `json:"industry,omitempty"`
}

func (f factJSON) toModel() (model.Fact, error) {
	out := model.Fact{
		RawConcept: f.Concept,
		Label:      f.Label,
		Value:      f.Value,
		Unit:       f.Unit,
		Decimals:   f.Decimals,
		Role:       f.Role,
	}
	switch {
	case f.Instant != "":
		d, err := time.Parse(dateFormat, f.Instant)
		if err != nil {
			return out, eris.Wrapf(err, "factsource: fact %s: bad instant date %q", f.Concept, f.Instant)
		}
		out.Period = model.NewInstant(d)
	case f.Start != "" && f.End != "":
		start, err := time.Parse(dateFormat, f.Start)
		if err != nil {
			return out, eris.Wrapf(err, "factsource: fact %s: bad start date %q", f.Concept, f.Start)
		}
		end, err := time.Parse(dateFormat, f.End)
		if err != nil {
			return out, eris.Wrapf(err, "factsource: fact %s: bad end date %q", f.Concept, f.End)
		}
		out.Period = model.NewDuration(start, end)
	}
	if n, ok := parseNumeric(f.Value); ok {
		out.Numeric = &n
	}
	for _, d := range f.Dimensions {
		out.Dimensions = append(out.Dimensions, model.Dimension{Axis: d.Axis, Member: d.Member})
	}
	return out, nil
}

func fromModel(f model.Fact) factJSON {
	out := factJSON{
		Concept:  f.RawConcept,
		Label:    f.Label,
		Value:    f.Value,
		Unit:     f.Unit,
		Decimals: f.Decimals,
		Role:     f.Role,
	}
	if f.Period.Instant {
		out.Instant = f.Period.End.Format(dateFormat)
	} else {
		out.Start = f.Period.Start.Format(dateFormat)
		out.End = f.Period.End.Format(dateFormat)
	}
	for _, d := range f.Dimensions {
		out.Dimensions = append(out.Dimensions, dimensionJSON{Axis: d.Axis, Member: d.Member})
	}
	return out
}

func (f filingJSON) toModel() (model.Filing, error) {
	out := model.Filing{
		Accession:  f.Accession,
		CIK:        f.CIK,
		EntityName: f.EntityName,
		Form:       f.Form,
		Industry:   f.Industry,
	}
	if f.Filed != "" {
		d, err := time.Parse(dateFormat, f.Filed)
		if err != nil {
			return out, eris.Wrapf(err, "factsource: filing %s: bad filed date %q", f.Accession, f.Filed)
		}
		out.Filed = d
	}
	if f.PeriodOfReport != "" {
		d, err := time.Parse(dateFormat, f.PeriodOfReport)
		if err != nil {
			return out, eris.Wrapf(err, "factsource: filing %s: bad period of report %q", f.Accession, f.PeriodOfReport)
		}
		out.PeriodOfReport = d
	}
	return out, nil
}

func fromFiling(f model.Filing) filingJSON {
	out := filingJSON{
		Accession:  f.Accession,
		CIK:        f.CIK,
		EntityName: f.EntityName,
		Form:       f.Form,
		Industry:   f.Industry,
	}
	if !f.Filed.IsZero() {
		out.Filed = f.Filed.Format(dateFormat)
	}
	if !f.PeriodOfReport.IsZero() {
		out.PeriodOfReport = f.PeriodOfReport.Format(dateFormat)
	}
	return out
}
