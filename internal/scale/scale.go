// Package scale infers a display scale for a statement table and applies it
// at the presentation boundary, so stitched values render comparably even
// when the underlying filings used different reporting magnitudes.
package scale

import (
	"go.uber.org/zap"

	"github.com/sells-group/statements/internal/standardize"
	"github.com/sells-group/statements/internal/statement"
)

// DefaultMinAnchors is the minimum number of large-magnitude values needed
// to infer a scale with confidence.
const DefaultMinAnchors = 2

// factors maps bucket index to divisor and display name. Order matters:
// larger factors win bucket-vote ties.
var factors = []struct {
	factor    float64
	name      string
	threshold float64 // a value at or above this magnitude votes for the bucket
}{
	{1e9, "billions", 1e10},
	{1e6, "millions", 1e7},
	{1e3, "thousands", 1e4},
	{1, "units", 0},
}

// Normalizer applies display-scale normalization to statement tables.
type Normalizer struct {
	std        *standardize.Standardizer
	minAnchors int
}

// New returns a Normalizer. minAnchors <= 0 uses DefaultMinAnchors.
func New(std *standardize.Standardizer, minAnchors int) *Normalizer {
	if minAnchors <= 0 {
		minAnchors = DefaultMinAnchors
	}
	return &Normalizer{std: std, minAnchors: minAnchors}
}

// Apply returns a copy of the table with every non-per-share cell divided by
// the inferred display factor. Inference runs per period column over the
// scale-anchor rows (large-magnitude concepts flagged in the taxonomy); the
// table's display scale is the majority vote across columns. Tables without
// enough anchor values keep their face values and are flagged low-confidence
// rather than failing.
func (n *Normalizer) Apply(t *statement.Table) *statement.Table {
	out := n.copyTable(t)

	anchorRows := make([]int, 0, len(t.Rows))
	for i, r := range t.Rows {
		if !r.Mapped {
			continue
		}
		if c := n.std.Concept(r.Concept); c != nil && c.ScaleAnchor {
			anchorRows = append(anchorRows, i)
		}
	}

	total := 0
	colVotes := make([]int, 0, len(t.Columns))
	for col := range t.Columns {
		vote, count := n.inferColumn(t, anchorRows, col)
		total += count
		if count > 0 {
			colVotes = append(colVotes, vote)
		}
	}

	if total < n.minAnchors {
		out.Scale = statement.ScaleInfo{Factor: 1, Name: "units", LowConfidence: true}
		zap.L().Debug("scale inference low confidence",
			zap.String("entity", t.Entity),
			zap.String("type", string(t.Type)),
			zap.Int("anchor_values", total),
		)
		return out
	}

	bucket := majority(colVotes)
	out.Scale = statement.ScaleInfo{Factor: factors[bucket].factor, Name: factors[bucket].name}
	if out.Scale.Factor == 1 {
		return out
	}

	for i, row := range out.Rows {
		if row.PerShare {
			continue // per-share figures always render at face value
		}
		for j := range out.Cells[i] {
			if v := out.Cells[i][j].Value; v != nil {
				scaled := *v / out.Scale.Factor
				out.Cells[i][j].Value = &scaled
			}
		}
	}
	return out
}

// inferColumn votes a scale bucket for one period column. Each anchor value
// votes by magnitude; the bucket with the most votes wins, larger factors
// winning ties. Returns the winning bucket and the number of voting values.
func (n *Normalizer) inferColumn(t *statement.Table, anchorRows []int, col int) (int, int) {
	votes := make([]int, len(factors))
	count := 0
	for _, row := range anchorRows {
		v := t.Cells[row][col].Value
		if v == nil {
			continue
		}
		votes[bucketOf(*v)]++
		count++
	}
	if count == 0 {
		return len(factors) - 1, 0
	}
	best := len(factors) - 1
	for b := len(factors) - 1; b >= 0; b-- {
		if votes[b] >= votes[best] {
			best = b
		}
	}
	return best, count
}

func bucketOf(v float64) int {
	if v < 0 {
		v = -v
	}
	for b, f := range factors {
		if v >= f.threshold {
			return b
		}
	}
	return len(factors) - 1
}

// majority picks the most frequent bucket across column votes, preferring
// the larger factor (lower index) on ties.
func majority(colVotes []int) int {
	counts := make([]int, len(factors))
	for _, b := range colVotes {
		counts[b]++
	}
	best := len(factors) - 1
	for b := len(factors) - 1; b >= 0; b-- {
		if counts[b] >= counts[best] {
			best = b
		}
	}
	return best
}

func (n *Normalizer) copyTable(t *statement.Table) *statement.Table {
	out := *t
	out.Rows = append([]statement.Row(nil), t.Rows...)
	out.Columns = append([]statement.Column(nil), t.Columns...)
	out.Cells = make([][]statement.Cell, len(t.Cells))
	for i, row := range t.Cells {
		out.Cells[i] = append([]statement.Cell(nil), row...)
	}
	return &out
}
