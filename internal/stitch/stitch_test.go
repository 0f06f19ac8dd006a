package stitch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/statements/internal/factstore"
	"github.com/sells-group/statements/internal/model"
	"github.com/sells-group/statements/internal/standardize"
	"github.com/sells-group/statements/internal/taxonomy"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func num(v float64) *float64 { return &v }

func annual(year int) model.Period {
	return model.NewDuration(
		time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
	)
}

func fact(raw string, v float64, p model.Period) model.Fact {
	return model.Fact{
		RawConcept: raw,
		Value:      "x",
		Numeric:    num(v),
		Unit:       "USD",
		Period:     p,
		Role:       "StatementsOfOperations",
	}
}

func storeOf(t *testing.T, filing model.Filing, facts ...model.Fact) *factstore.Store {
	t.Helper()
	store, err := factstore.New(filing, facts)
	require.NoError(t, err)
	return store
}

var (
	filing2023 = model.Filing{
		Accession: "0001-23-000001", CIK: "100", EntityName: "Acme Corp",
		Form: "10-K", Filed: date("2023-02-15"),
	}
	filing2024 = model.Filing{
		Accession: "0001-24-000001", CIK: "100", EntityName: "Acme Corp",
		Form: "10-K", Filed: date("2024-02-15"),
	}
)

func defaultStitcher() *Stitcher {
	return New(standardize.New(taxonomy.Default()))
}

func TestStitchNoFilings(t *testing.T) {
	_, err := defaultStitcher().Stitch(context.Background(), nil, model.StatementIncome, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no filings")
}

func TestStitchComparativeColumnsFromLatestFiling(t *testing.T) {
	// The 2023 filing reports FY2022 standalone; the 2024 filing reports
	// FY2023 plus FY2022 as a comparative. Both surviving columns come from
	// the later filing.
	older := storeOf(t, filing2023,
		fact("us-gaap:Revenues", 100, annual(2022)),
		fact("us-gaap:NetIncomeLoss", 10, annual(2022)),
	)
	newer := storeOf(t, filing2024,
		fact("us-gaap:Revenues", 110, annual(2023)),
		fact("us-gaap:NetIncomeLoss", 11, annual(2023)),
		fact("us-gaap:Revenues", 100, annual(2022)),
		fact("us-gaap:NetIncomeLoss", 10, annual(2022)),
	)

	st, err := defaultStitcher().Stitch(context.Background(), []*factstore.Store{newer, older}, model.StatementIncome, 2)
	require.NoError(t, err)

	require.Len(t, st.Columns, 2)
	assert.Equal(t, "FY 2023", st.Columns[0].Label)
	assert.Equal(t, "FY 2022", st.Columns[1].Label)
	assert.Equal(t, filing2024.Accession, st.Columns[0].Source)
	assert.Equal(t, filing2024.Accession, st.Columns[1].Source)

	row := st.RowIndex("Revenue")
	require.GreaterOrEqual(t, row, 0)
	require.NotNil(t, st.Cell(row, 0).Value)
	require.NotNil(t, st.Cell(row, 1).Value)
	assert.Equal(t, float64(110), *st.Cell(row, 0).Value)
	assert.Equal(t, float64(100), *st.Cell(row, 1).Value)
	assert.Equal(t, filing2024.Accession, st.Cell(row, 0).Source)
	assert.Equal(t, filing2024.Accession, st.Cell(row, 1).Source)
}

func TestStitchRestatementWins(t *testing.T) {
	// The later filing restates FY2022 revenue; the stitched table carries
	// the restated figure.
	older := storeOf(t, filing2023,
		fact("us-gaap:Revenues", 100, annual(2022)),
		fact("us-gaap:NetIncomeLoss", 10, annual(2022)),
	)
	newer := storeOf(t, filing2024,
		fact("us-gaap:Revenues", 95, annual(2022)),
		fact("us-gaap:NetIncomeLoss", 9, annual(2022)),
	)

	st, err := defaultStitcher().Stitch(context.Background(), []*factstore.Store{newer, older}, model.StatementIncome, 0)
	require.NoError(t, err)

	row := st.RowIndex("Revenue")
	require.GreaterOrEqual(t, row, 0)
	require.NotNil(t, st.Cell(row, 0).Value)
	assert.Equal(t, float64(95), *st.Cell(row, 0).Value)
	assert.Equal(t, filing2024.Accession, st.Cell(row, 0).Source)
}

func TestStitchUnionRowsLeaveEmptyCells(t *testing.T) {
	// Only the older filing reports net income; its FY2023 cell stays empty.
	older := storeOf(t, filing2023,
		fact("us-gaap:Revenues", 100, annual(2022)),
		fact("us-gaap:NetIncomeLoss", 10, annual(2022)),
	)
	newer := storeOf(t, filing2024,
		fact("us-gaap:Revenues", 110, annual(2023)),
	)

	st, err := defaultStitcher().Stitch(context.Background(), []*factstore.Store{newer, older}, model.StatementIncome, 0)
	require.NoError(t, err)

	require.Len(t, st.Columns, 2)
	ni := st.RowIndex("Net Income")
	require.GreaterOrEqual(t, ni, 0)
	assert.Nil(t, st.Cell(ni, 0).Value, "absence must not become zero")
	require.NotNil(t, st.Cell(ni, 1).Value)
	assert.Equal(t, float64(10), *st.Cell(ni, 1).Value)
	assert.Equal(t, filing2023.Accession, st.Cell(ni, 1).Source)
}

func TestStitchDropsRowsOutsidePeriodWindow(t *testing.T) {
	// A concept reported only in years cut by the period cap disappears.
	older := storeOf(t, filing2023,
		fact("us-gaap:Revenues", 90, annual(2021)),
		fact("us-gaap:OperatingIncomeLoss", 5, annual(2021)),
	)
	newer := storeOf(t, filing2024,
		fact("us-gaap:Revenues", 110, annual(2023)),
		fact("us-gaap:Revenues", 100, annual(2022)),
	)

	st, err := defaultStitcher().Stitch(context.Background(), []*factstore.Store{newer, older}, model.StatementIncome, 2)
	require.NoError(t, err)

	require.Len(t, st.Columns, 2)
	assert.Equal(t, -1, st.RowIndex("Operating Income"))
	assert.GreaterOrEqual(t, st.RowIndex("Revenue"), 0)
}

func TestStitchProvenance(t *testing.T) {
	older := storeOf(t, filing2023, fact("us-gaap:Revenues", 100, annual(2022)))
	newer := storeOf(t, filing2024, fact("us-gaap:Revenues", 110, annual(2023)))

	st, err := defaultStitcher().Stitch(context.Background(), []*factstore.Store{newer, older}, model.StatementIncome, 0)
	require.NoError(t, err)

	assert.NotEmpty(t, st.ID)
	require.Len(t, st.Sources, 2)
	assert.Equal(t, filing2024.Accession, st.Sources[0].Accession)
	assert.Equal(t, filing2023.Accession, st.Sources[1].Accession)
}

func TestStitchRecomputeIsDeterministic(t *testing.T) {
	older := storeOf(t, filing2023,
		fact("us-gaap:Revenues", 100, annual(2022)),
		fact("us-gaap:NetIncomeLoss", 10, annual(2022)),
	)
	newer := storeOf(t, filing2024,
		fact("us-gaap:Revenues", 110, annual(2023)),
		fact("us-gaap:NetIncomeLoss", 11, annual(2023)),
	)
	s := defaultStitcher()

	first, err := s.Stitch(context.Background(), []*factstore.Store{newer, older}, model.StatementIncome, 0)
	require.NoError(t, err)
	second, err := s.Stitch(context.Background(), []*factstore.Store{newer, older}, model.StatementIncome, 0)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Cells, second.Cells)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStitchScaleNormalizesMergedTable(t *testing.T) {
	older := storeOf(t, filing2023,
		fact("us-gaap:Revenues", 90_000_000_000, annual(2022)),
		fact("us-gaap:NetIncomeLoss", 12_000_000_000, annual(2022)),
	)
	newer := storeOf(t, filing2024,
		fact("us-gaap:Revenues", 110_000_000_000, annual(2023)),
		fact("us-gaap:NetIncomeLoss", 14_000_000_000, annual(2023)),
	)

	st, err := defaultStitcher().Stitch(context.Background(), []*factstore.Store{newer, older}, model.StatementIncome, 0)
	require.NoError(t, err)

	assert.Equal(t, "billions", st.Scale.Name)
	row := st.RowIndex("Revenue")
	require.GreaterOrEqual(t, row, 0)
	require.NotNil(t, st.Cell(row, 0).Value)
	assert.InDelta(t, 110, *st.Cell(row, 0).Value, 0.001)
}

func TestStitchMinAnchorsOption(t *testing.T) {
	// A single large value cannot clear the default confidence floor, but a
	// floor of one lets it through.
	solo := storeOf(t, filing2024, fact("us-gaap:Revenues", 110_000_000_000, annual(2023)))
	std := standardize.New(taxonomy.Default())

	st, err := New(std).Stitch(context.Background(), []*factstore.Store{solo}, model.StatementIncome, 0)
	require.NoError(t, err)
	assert.True(t, st.Scale.LowConfidence)
	assert.Equal(t, "units", st.Scale.Name)

	st, err = New(std, WithMinAnchors(1)).Stitch(context.Background(), []*factstore.Store{solo}, model.StatementIncome, 0)
	require.NoError(t, err)
	assert.False(t, st.Scale.LowConfidence)
	assert.Equal(t, "billions", st.Scale.Name)
}
