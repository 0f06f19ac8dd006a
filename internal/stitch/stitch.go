// Package stitch merges per-filing statement tables into one wide,
// multi-period comparative table. Stitchers are stateless functions of their
// inputs: a changed filing set means a recomputation, never an in-place
// update.
package stitch

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/statements/internal/factstore"
	"github.com/sells-group/statements/internal/model"
	"github.com/sells-group/statements/internal/period"
	"github.com/sells-group/statements/internal/scale"
	"github.com/sells-group/statements/internal/standardize"
	"github.com/sells-group/statements/internal/statement"
)

// Statement is a stitched, multi-filing comparative table. Immutable after
// construction.
type Statement struct {
	statement.Table
	ID      string         `json:"id"` // correlation id for logs
	Sources []model.Filing `json:"sources"`
}

// Stitcher combines statements across an ordered list of filings.
type Stitcher struct {
	std        *standardize.Standardizer
	asm        *statement.Assembler
	norm       *scale.Normalizer
	moreRecent period.MoreRecent
}

// Option configures a Stitcher.
type Option func(*Stitcher)

// WithTieBreak overrides the ordering used when two filings report the same
// period (the default is filing date, then accession number descending).
func WithTieBreak(mr period.MoreRecent) Option {
	return func(s *Stitcher) { s.moreRecent = mr }
}

// WithMinAnchors overrides the scale-inference confidence floor.
func WithMinAnchors(n int) Option {
	return func(s *Stitcher) { s.norm = scale.New(s.std, n) }
}

// New returns a Stitcher over the given reference data.
func New(std *standardize.Standardizer, opts ...Option) *Stitcher {
	s := &Stitcher{
		std:        std,
		asm:        statement.NewAssembler(std),
		norm:       scale.New(std, 0),
		moreRecent: period.Recency,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Stitch assembles the target statement for each filing, merges the tables
// over a deduplicated period sequence capped at maxPeriods, and scale-
// normalizes the result. Filings must be supplied most-recent-first; for a
// (concept, period) cell reported by several filings, the earliest filing in
// that order wins. Per-filing assembly runs in parallel; inputs are
// immutable and independent until the merge.
func (s *Stitcher) Stitch(ctx context.Context, stores []*factstore.Store, target model.StatementType, maxPeriods int) (*Statement, error) {
	if len(stores) == 0 {
		return nil, eris.New("stitch: no filings supplied")
	}

	tables := make([]*statement.Table, len(stores))
	g, _ := errgroup.WithContext(ctx)
	for i := range stores {
		i := i
		g.Go(func() error {
			tables[i] = s.asm.Build(stores[i], target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var observed []period.Observed
	for i, t := range tables {
		for _, col := range t.Columns {
			observed = append(observed, period.Observed{Period: col.Period, Filing: stores[i].Filing()})
		}
	}
	cols := period.ResolveWith(observed, maxPeriods, s.moreRecent)

	merged := &statement.Table{
		Entity: stores[0].Filing().EntityName,
		Type:   target,
		Scale:  statement.ScaleInfo{Factor: 1, Name: "units"},
	}
	merged.Columns = make([]statement.Column, len(cols))
	for i, c := range cols {
		merged.Columns[i] = statement.Column{Period: c.Period, Label: c.Period.Label(), Source: c.Source.Accession}
	}
	for _, t := range tables {
		if t.RoleInferred {
			merged.RoleInferred = true
		}
	}

	// Per-table lookup indexes.
	type index struct {
		row map[string]int // concept -> row
		col map[string]int // period key -> column
	}
	indexes := make([]index, len(tables))
	for i, t := range tables {
		ix := index{row: make(map[string]int, len(t.Rows)), col: make(map[string]int, len(t.Columns))}
		for r, row := range t.Rows {
			ix.row[row.Concept] = r
		}
		for c, col := range t.Columns {
			ix.col[col.Period.Key()] = c
		}
		indexes[i] = ix
	}

	// Union of rows: any concept present in any contributing filing.
	rowSet := make(map[string]statement.Row)
	for _, t := range tables {
		for _, row := range t.Rows {
			if _, ok := rowSet[row.Concept]; !ok {
				rowSet[row.Concept] = row
			}
		}
	}
	rows := make([]statement.Row, 0, len(rowSet))
	for _, row := range rowSet {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		// Mapped rows in canonical order first, unmapped rows after by label.
		if rows[i].Mapped != rows[j].Mapped {
			return rows[i].Mapped
		}
		if rows[i].Mapped {
			if rows[i].Order != rows[j].Order {
				return rows[i].Order < rows[j].Order
			}
			return rows[i].Concept < rows[j].Concept
		}
		if !strings.EqualFold(rows[i].Label, rows[j].Label) {
			return strings.ToLower(rows[i].Label) < strings.ToLower(rows[j].Label)
		}
		return rows[i].Concept < rows[j].Concept
	})

	// Merge cells: the earliest filing in the caller-supplied order that
	// reports a value wins. Absent cells stay empty; empty is not zero.
	for _, row := range rows {
		cells := make([]statement.Cell, len(merged.Columns))
		filled := false
		for j, col := range merged.Columns {
			pk := col.Period.Key()
			for i, t := range tables {
				r, okR := indexes[i].row[row.Concept]
				c, okC := indexes[i].col[pk]
				if !okR || !okC {
					continue
				}
				if cell := t.Cells[r][c]; cell.Value != nil {
					cells[j] = cell
					filled = true
					break
				}
			}
		}
		if !filled {
			continue // the period cap can leave a row with no surviving cells
		}
		merged.Rows = append(merged.Rows, row)
		merged.Cells = append(merged.Cells, cells)
	}

	result := &Statement{
		Table: *s.norm.Apply(merged),
		ID:    uuid.New().String(),
	}
	for _, st := range stores {
		result.Sources = append(result.Sources, st.Filing())
	}

	zap.L().Debug("statements stitched",
		zap.String("stitch_id", result.ID),
		zap.String("entity", merged.Entity),
		zap.String("type", string(target)),
		zap.Int("filings", len(stores)),
		zap.Int("rows", len(result.Rows)),
		zap.Int("columns", len(result.Columns)),
		zap.Bool("low_confidence_scale", result.Scale.LowConfidence),
	)
	return result, nil
}
