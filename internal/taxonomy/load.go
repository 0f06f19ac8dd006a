package taxonomy

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/statements/internal/model"
)

// file is the on-disk YAML shape of a mapping table:
//
//	concepts:
//	  Automotive Revenue:
//	    label: Automotive revenue
//	    statement: income_statement
//	    order: 201
//	  Revenue:
//	    children: [Automotive Revenue, Energy Revenue]
//	industries:
//	  automotive:
//	    tsla:AutomotiveRevenue: Automotive Revenue
type file struct {
	Concepts   map[string]*Concept          `yaml:"concepts"`
	Industries map[string]map[string]string `yaml:"industries"`
}

// Load reads a mapping-table YAML file and layers it over the built-in
// generic table. File concepts either declare new canonical concepts or
// extend existing ones (extra aliases and children merge; non-zero label,
// statement, order and flags replace). Reference-data failures are hard
// errors: a bad table would silently corrupt every statement built from it.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "taxonomy: read %s", path)
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrapf(err, "taxonomy: parse %s", path)
	}

	concepts := cloneConcepts(defaultConcepts)
	for name, in := range f.Concepts {
		if in == nil {
			in = &Concept{}
		}
		c, ok := concepts[name]
		if !ok {
			c = &Concept{Statement: model.StatementOther}
			concepts[name] = c
		}
		mergeConcept(c, in)
	}

	industries := make(map[string]map[string]string, len(f.Industries))
	for tag, overrides := range f.Industries {
		industries[tag] = overrides
	}

	t, err := build(concepts, industries)
	if err != nil {
		return nil, eris.Wrapf(err, "taxonomy: index %s", path)
	}
	zap.L().Info("taxonomy loaded",
		zap.String("path", path),
		zap.Int("concepts", len(concepts)),
		zap.Int("industries", len(industries)),
	)
	return t, nil
}

func mergeConcept(dst, src *Concept) {
	if src.Label != "" {
		dst.Label = src.Label
	}
	if src.Statement != "" {
		dst.Statement = src.Statement
	}
	if src.Order != 0 {
		dst.Order = src.Order
	}
	if src.PerShare {
		dst.PerShare = true
	}
	if src.ScaleAnchor {
		dst.ScaleAnchor = true
	}
	dst.Aliases = appendMissing(dst.Aliases, src.Aliases)
	dst.Children = appendMissing(dst.Children, src.Children)
}

func appendMissing(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}
