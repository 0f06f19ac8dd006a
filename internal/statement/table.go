// Package statement builds single-filing statement tables: ordered canonical
// line items as rows, reporting periods as columns.
package statement

import (
	"github.com/sells-group/statements/internal/model"
)

// Row is one line item. Mapped rows carry the canonical concept name;
// unmapped rows retain the filer's raw concept verbatim.
type Row struct {
	Concept  string `json:"concept"`
	Label    string `json:"label"`
	Mapped   bool   `json:"mapped"`
	PerShare bool   `json:"per_share,omitempty"`
	Order    int    `json:"order,omitempty"`
}

// Column is one period column with its source filing for auditability.
type Column struct {
	Period model.Period `json:"period"`
	Label  string       `json:"label"`
	Source string       `json:"source"` // accession of the filing this column's data came from
}

// Cell is one value in the grid. A nil Value is "empty", which is distinct
// from zero throughout the engine.
type Cell struct {
	Value       *float64 `json:"value,omitempty"`
	Source      string   `json:"source,omitempty"` // accession
	Synthesized bool     `json:"synthesized,omitempty"`
}

// ScaleInfo records the display scale applied at the presentation boundary.
type ScaleInfo struct {
	Factor        float64 `json:"factor"` // 1, 1e3, 1e6, 1e9
	Name          string  `json:"name"`   // "units", "thousands", "millions", "billions"
	LowConfidence bool    `json:"low_confidence,omitempty"`
}

// Table is a single statement: rows ordered by canonical ordering key,
// columns most recent first. Immutable once returned.
type Table struct {
	Entity       string              `json:"entity"`
	Type         model.StatementType `json:"type"`
	Rows         []Row               `json:"rows"`
	Columns      []Column            `json:"columns"`
	Cells        [][]Cell            `json:"cells"` // Cells[row][col]
	Scale        ScaleInfo           `json:"scale"`
	RoleInferred bool                `json:"role_inferred,omitempty"` // statement membership inferred from taxonomy tags
}

// Empty reports whether the table carries no rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// Cell returns the cell at (row, col). Out-of-range indexes return an empty
// cell rather than panicking, mirroring the engine's absence-is-normal rule.
func (t *Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Cells) || col < 0 || col >= len(t.Cells[row]) {
		return Cell{}
	}
	return t.Cells[row][col]
}

// Value looks a cell up by canonical concept (or raw concept for unmapped
// rows) and period label. Nil when the row, column, or value is absent.
func (t *Table) Value(concept, periodLabel string) *float64 {
	row := t.RowIndex(concept)
	col := t.ColumnIndex(periodLabel)
	if row < 0 || col < 0 {
		return nil
	}
	return t.Cells[row][col].Value
}

// RowIndex returns the index of the row for the given concept, or -1.
func (t *Table) RowIndex(concept string) int {
	for i, r := range t.Rows {
		if r.Concept == concept {
			return i
		}
	}
	return -1
}

// ColumnIndex returns the index of the column with the given label, or -1.
func (t *Table) ColumnIndex(label string) int {
	for i, c := range t.Columns {
		if c.Label == label {
			return i
		}
	}
	return -1
}
