package factsource

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/statements/internal/factstore"
	"github.com/sells-group/statements/internal/model"
)

// rawDocument is the per-filing handoff contract: filing metadata plus the
// flat fact list the parsing collaborator extracted.
type rawDocument struct {
	Filing filingJSON `json:"filing"`
	Facts  []factJSON `json:"facts"`
}

// ParseRawFacts decodes one filing's raw-facts JSON document into a fact
// store. Structural problems (unparseable JSON, bad dates, facts missing
// required fields) are hard errors naming the offending record.
func ParseRawFacts(r io.Reader) (*factstore.Store, error) {
	var doc rawDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "factsource: decode raw facts")
	}

	filing, err := doc.Filing.toModel()
	if err != nil {
		return nil, err
	}

	facts := make([]model.Fact, 0, len(doc.Facts))
	for _, fj := range doc.Facts {
		f, err := fj.toModel()
		if err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}

	return factstore.New(filing, facts)
}
