package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/statements/internal/factsource"
	"github.com/sells-group/statements/internal/factstore"
	"github.com/sells-group/statements/internal/model"
	"github.com/sells-group/statements/internal/standardize"
	"github.com/sells-group/statements/internal/statement"
	"github.com/sells-group/statements/internal/taxonomy"
)

// loadStandardizer builds the standardizer from the configured mapping-table
// file, or the built-in generic table when none is configured.
func loadStandardizer() (*standardize.Standardizer, error) {
	if cfg.Taxonomy.Path == "" {
		return standardize.New(taxonomy.Default()), nil
	}
	tax, err := taxonomy.Load(cfg.Taxonomy.Path)
	if err != nil {
		return nil, err
	}
	return standardize.New(tax), nil
}

// loadStores reads fact stores either from raw-facts JSON files given as
// args, or from a sqlite archive when --archive is set.
func loadStores(ctx context.Context, args []string, archivePath, cik string) ([]*factstore.Store, error) {
	if archivePath != "" {
		arch, err := factsource.OpenArchive(archivePath)
		if err != nil {
			return nil, err
		}
		defer arch.Close()

		if cik != "" {
			return arch.LoadEntity(ctx, cik)
		}
		var stores []*factstore.Store
		for _, accession := range args {
			s, err := arch.Load(ctx, accession)
			if err != nil {
				return nil, err
			}
			stores = append(stores, s)
		}
		return stores, nil
	}

	var stores []*factstore.Store
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "open %s", path)
		}
		s, err := factsource.ParseRawFacts(f)
		f.Close()
		if err != nil {
			return nil, eris.Wrapf(err, "parse %s", path)
		}
		stores = append(stores, s)
	}
	return stores, nil
}

func parseStatementType(s string) (model.StatementType, error) {
	switch strings.ToLower(s) {
	case "bs", "balance", "balance_sheet", "balance-sheet":
		return model.StatementBalanceSheet, nil
	case "is", "income", "income_statement", "income-statement":
		return model.StatementIncome, nil
	case "cf", "cashflow", "cash_flow", "cash-flow":
		return model.StatementCashFlow, nil
	default:
		return "", eris.Errorf("unknown statement type %q (want bs, is, or cf)", s)
	}
}

// printTable renders a statement table as plain tab-separated text.
func printTable(t *statement.Table) {
	if t.Empty() {
		fmt.Println("(statement absent: no mappable facts)")
		return
	}

	header := fmt.Sprintf("%s — %s", t.Entity, t.Type)
	if t.Scale.Factor > 1 {
		header += fmt.Sprintf(" (in %s)", t.Scale.Name)
	}
	if t.Scale.LowConfidence {
		header += " [scale: low confidence]"
	}
	if t.RoleInferred {
		header += " [statement membership inferred]"
	}
	fmt.Println(header)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, "")
	for _, c := range t.Columns {
		cols = append(cols, c.Label)
	}
	fmt.Fprintln(w, strings.Join(cols, "\t"))

	for i, row := range t.Rows {
		cells := make([]string, 0, len(t.Columns)+1)
		cells = append(cells, row.Label)
		for j := range t.Columns {
			cell := t.Cell(i, j)
			if cell.Value == nil {
				cells = append(cells, "—")
			} else if row.PerShare {
				cells = append(cells, fmt.Sprintf("%.2f", *cell.Value))
			} else {
				cells = append(cells, fmt.Sprintf("%.1f", *cell.Value))
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}
