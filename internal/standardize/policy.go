package standardize

import (
	"github.com/sells-group/statements/internal/model"
	"github.com/sells-group/statements/internal/taxonomy"
)

// The functions below are the heuristic policies that absorb real-world filer
// inconsistency. They are deliberately small and free of pipeline state so
// each can be refined and tested on its own.

// PreferUndimensioned picks one fact out of several that standardize to the
// same canonical concept in the same period. An undimensioned fact wins over
// dimensionally-qualified ones, since it is assumed to be the consolidated
// total. Among equals the first reported fact wins, keeping the choice
// deterministic. Values are never averaged or summed here.
func PreferUndimensioned(facts []model.Fact) (model.Fact, bool) {
	if len(facts) == 0 {
		return model.Fact{}, false
	}
	best := facts[0]
	for _, f := range facts[1:] {
		if !f.Dimensioned() && best.Dimensioned() {
			best = f
		}
	}
	return best, true
}

// SynthesizeParent sums a parent concept's value from its declared children
// for one period. The sum is produced only when every declared child has a
// value; a partial child set yields nil rather than a silently wrong total.
// Parents without declared children never synthesize.
func SynthesizeParent(parent *taxonomy.Concept, childValues map[string]*float64) *float64 {
	if parent == nil || len(parent.Children) == 0 {
		return nil
	}
	var sum float64
	for _, child := range parent.Children {
		v, ok := childValues[child]
		if !ok || v == nil {
			return nil
		}
		sum += *v
	}
	return &sum
}
