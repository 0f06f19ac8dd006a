package scale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/statements/internal/model"
	"github.com/sells-group/statements/internal/standardize"
	"github.com/sells-group/statements/internal/statement"
	"github.com/sells-group/statements/internal/taxonomy"
)

func num(v float64) *float64 { return &v }

func annualCol(year int) statement.Column {
	p := model.NewDuration(
		time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	return statement.Column{Period: p, Label: p.Label(), Source: "acc-1"}
}

// tableOf builds a table with one column per value set; rows keyed by
// canonical concept name.
func tableOf(rows map[string][]*float64, cols ...statement.Column) *statement.Table {
	tax := taxonomy.Default()
	t := &statement.Table{Type: model.StatementIncome, Columns: cols, Scale: statement.ScaleInfo{Factor: 1, Name: "units"}}
	for name, values := range rows {
		c := tax.Concept(name)
		t.Rows = append(t.Rows, statement.Row{Concept: name, Label: c.Label, Mapped: true, PerShare: c.PerShare, Order: c.Order})
		cells := make([]statement.Cell, len(cols))
		for i, v := range values {
			if v != nil {
				cells[i] = statement.Cell{Value: v, Source: "acc-1"}
			}
		}
		t.Cells = append(t.Cells, cells)
	}
	return t
}

func value(t *statement.Table, concept string, col int) *float64 {
	row := t.RowIndex(concept)
	if row < 0 {
		return nil
	}
	return t.Cell(row, col).Value
}

func TestApplyInfersBillions(t *testing.T) {
	std := standardize.New(taxonomy.Default())
	in := tableOf(map[string][]*float64{
		"Revenue":                   {num(383_285_000_000)},
		"Net Income":                {num(96_995_000_000)},
		"Earnings Per Share, Basic": {num(6.13)},
	}, annualCol(2023))

	out := New(std, 2).Apply(in)
	assert.Equal(t, "billions", out.Scale.Name)
	assert.False(t, out.Scale.LowConfidence)
	assert.InDelta(t, 383.285, *value(out, "Revenue", 0), 0.001)
	// Per-share rows keep their face value.
	assert.InDelta(t, 6.13, *value(out, "Earnings Per Share, Basic", 0), 0.0001)
	// Input table untouched.
	assert.InDelta(t, 383_285_000_000, *value(in, "Revenue", 0), 1)
}

func TestApplyInfersMillions(t *testing.T) {
	std := standardize.New(taxonomy.Default())
	in := tableOf(map[string][]*float64{
		"Revenue":    {num(520_000_000)},
		"Net Income": {num(48_000_000)},
	}, annualCol(2023))

	out := New(std, 2).Apply(in)
	assert.Equal(t, "millions", out.Scale.Name)
	assert.InDelta(t, 520, *value(out, "Revenue", 0), 0.001)
}

func TestApplyMajorityAcrossColumns(t *testing.T) {
	std := standardize.New(taxonomy.Default())
	// Two columns vote millions, one votes billions.
	in := tableOf(map[string][]*float64{
		"Revenue":    {num(900_000_000), num(700_000_000), num(12_000_000_000)},
		"Net Income": {num(90_000_000), num(70_000_000), num(11_000_000_000)},
	}, annualCol(2023), annualCol(2022), annualCol(2021))

	out := New(std, 2).Apply(in)
	assert.Equal(t, "millions", out.Scale.Name)
}

func TestApplyLowConfidence(t *testing.T) {
	std := standardize.New(taxonomy.Default())
	// A single anchor value is below the confidence floor.
	in := tableOf(map[string][]*float64{
		"Revenue": {num(520_000_000)},
	}, annualCol(2023))

	out := New(std, 2).Apply(in)
	assert.Equal(t, "units", out.Scale.Name)
	assert.Equal(t, float64(1), out.Scale.Factor)
	assert.True(t, out.Scale.LowConfidence)
	// Values left at face value.
	assert.InDelta(t, 520_000_000, *value(out, "Revenue", 0), 1)
}

func TestApplySmallValuesStayUnits(t *testing.T) {
	std := standardize.New(taxonomy.Default())
	in := tableOf(map[string][]*float64{
		"Revenue":    {num(110)},
		"Net Income": {num(10)},
	}, annualCol(2023))

	out := New(std, 2).Apply(in)
	assert.Equal(t, "units", out.Scale.Name)
	assert.False(t, out.Scale.LowConfidence)
	assert.InDelta(t, 110, *value(out, "Revenue", 0), 0.001)
}

func TestApplyEmptyCellsStayEmpty(t *testing.T) {
	std := standardize.New(taxonomy.Default())
	in := tableOf(map[string][]*float64{
		"Revenue":    {num(383_000_000_000), nil},
		"Net Income": {num(96_000_000_000), nil},
	}, annualCol(2023), annualCol(2022))

	out := New(std, 2).Apply(in)
	require.Equal(t, "billions", out.Scale.Name)
	assert.Nil(t, value(out, "Revenue", 1))
}
