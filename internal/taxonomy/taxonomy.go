// Package taxonomy holds the canonical concept reference data: the
// taxonomy-independent line items statements are built from, their raw-concept
// aliases, their parent/child hierarchy, and per-industry override tables.
// Reference data is loaded once at startup and read-only thereafter.
package taxonomy

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/statements/internal/model"
)

// Concept is one canonical line item.
type Concept struct {
	Name        string              `yaml:"-"`
	Label       string              `yaml:"label"`
	Statement   model.StatementType `yaml:"statement"`
	Order       int                 `yaml:"order"`
	Aliases     []string            `yaml:"aliases"`
	Children    []string            `yaml:"children"`    // canonical names contributing to this concept
	PerShare    bool                `yaml:"per_share"`   // exempt from table scaling
	ScaleAnchor bool                `yaml:"scale_anchor"` // large-magnitude; votes in scale inference
}

// Table is an indexed, immutable set of canonical concepts plus industry
// override alias tables.
type Table struct {
	concepts map[string]*Concept
	aliases  map[string]string            // raw concept -> canonical name (generic)
	industry map[string]map[string]string // industry tag -> raw concept -> canonical name
	ordered  []*Concept
}

// New indexes a caller-supplied concept set plus industry override tables.
// Most callers want Default or Load instead; New exists for embedders that
// manage their own reference data.
func New(concepts map[string]*Concept, industry map[string]map[string]string) (*Table, error) {
	if industry == nil {
		industry = map[string]map[string]string{}
	}
	return build(concepts, industry)
}

// build indexes a concept set and validates hierarchy references.
func build(concepts map[string]*Concept, industry map[string]map[string]string) (*Table, error) {
	t := &Table{
		concepts: concepts,
		aliases:  make(map[string]string),
		industry: industry,
	}
	for name, c := range concepts {
		c.Name = name
		for _, child := range c.Children {
			if _, ok := concepts[child]; !ok {
				return nil, eris.Errorf("taxonomy: concept %q declares unknown child %q", name, child)
			}
		}
		for _, a := range c.Aliases {
			if prev, ok := t.aliases[a]; ok && prev != name {
				return nil, eris.Errorf("taxonomy: alias %q claimed by both %q and %q", a, prev, name)
			}
			t.aliases[a] = name
		}
		t.ordered = append(t.ordered, c)
	}
	for tag, overrides := range industry {
		for raw, canonical := range overrides {
			if _, ok := concepts[canonical]; !ok {
				return nil, eris.Errorf("taxonomy: industry %q maps %q to unknown concept %q", tag, raw, canonical)
			}
		}
	}
	sort.Slice(t.ordered, func(i, j int) bool {
		if t.ordered[i].Order != t.ordered[j].Order {
			return t.ordered[i].Order < t.ordered[j].Order
		}
		return t.ordered[i].Name < t.ordered[j].Name
	})
	return t, nil
}

// Concept returns the canonical concept with the given name, or nil.
func (t *Table) Concept(name string) *Concept {
	return t.concepts[name]
}

// Generic resolves a raw concept against the generic alias table.
func (t *Table) Generic(raw string) (string, bool) {
	name, ok := t.aliases[raw]
	return name, ok
}

// Industry resolves a raw concept against the override table for the given
// industry tag. Missing industry tables resolve nothing.
func (t *Table) Industry(industry, raw string) (string, bool) {
	overrides, ok := t.industry[industry]
	if !ok {
		return "", false
	}
	name, ok := overrides[raw]
	return name, ok
}

// AliasesFor returns every raw concept that maps to the canonical name,
// industry overrides included when an industry tag is supplied.
func (t *Table) AliasesFor(name, industry string) []string {
	var raws []string
	c := t.concepts[name]
	if c != nil {
		raws = append(raws, c.Aliases...)
	}
	if overrides, ok := t.industry[industry]; ok {
		for raw, canonical := range overrides {
			if canonical == name {
				raws = append(raws, raw)
			}
		}
	}
	sort.Strings(raws)
	return raws
}

// Concepts returns all canonical concepts in presentation order.
func (t *Table) Concepts() []*Concept {
	return t.ordered
}

// ForStatement returns the canonical concepts tagged with the given statement
// type, in presentation order.
func (t *Table) ForStatement(st model.StatementType) []*Concept {
	var out []*Concept
	for _, c := range t.ordered {
		if c.Statement == st {
			out = append(out, c)
		}
	}
	return out
}
