package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/statements/internal/model"
)

func TestDefaultTable(t *testing.T) {
	tax := Default()

	name, ok := tax.Generic("us-gaap:Revenues")
	require.True(t, ok)
	assert.Equal(t, "Revenue", name)

	name, ok = tax.Generic("us-gaap:Assets")
	require.True(t, ok)
	assert.Equal(t, "Total Assets", name)

	_, ok = tax.Generic("acme:MadeUpConcept")
	assert.False(t, ok)

	assert.Nil(t, tax.Concept("No Such Concept"))
	require.NotNil(t, tax.Concept("Revenue"))
	assert.True(t, tax.Concept("Revenue").ScaleAnchor)
	assert.True(t, tax.Concept("Earnings Per Share, Basic").PerShare)
}

func TestConceptsOrdered(t *testing.T) {
	tax := Default()
	income := tax.ForStatement(model.StatementIncome)
	require.NotEmpty(t, income)
	for i := 1; i < len(income); i++ {
		assert.LessOrEqual(t, income[i-1].Order, income[i].Order)
		assert.Equal(t, model.StatementIncome, income[i].Statement)
	}
}

func TestNewRejectsUnknownChild(t *testing.T) {
	_, err := New(map[string]*Concept{
		"Revenue": {Label: "Revenue", Statement: model.StatementIncome, Children: []string{"Nope"}},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown child")
}

func TestNewRejectsConflictingAlias(t *testing.T) {
	_, err := New(map[string]*Concept{
		"A": {Statement: model.StatementIncome, Aliases: []string{"us-gaap:X"}},
		"B": {Statement: model.StatementIncome, Aliases: []string{"us-gaap:X"}},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claimed by both")
}

func TestNewRejectsIndustryOverrideToUnknownConcept(t *testing.T) {
	_, err := New(map[string]*Concept{
		"Revenue": {Statement: model.StatementIncome},
	}, map[string]map[string]string{
		"automotive": {"tsla:Whatever": "No Such Concept"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown concept")
}

func TestLoadMergesOverDefaults(t *testing.T) {
	tax, err := Load("testdata/automotive.yaml")
	require.NoError(t, err)

	// New concepts layered in.
	auto := tax.Concept("Automotive Revenue")
	require.NotNil(t, auto)
	assert.Equal(t, model.StatementIncome, auto.Statement)
	assert.Equal(t, 201, auto.Order)

	// Existing concept extended with children, aliases intact.
	rev := tax.Concept("Revenue")
	require.NotNil(t, rev)
	assert.ElementsMatch(t, []string{"Automotive Revenue", "Energy Revenue", "Services Revenue"}, rev.Children)
	_, ok := tax.Generic("us-gaap:Revenues")
	assert.True(t, ok)

	// Industry overrides resolve only under their tag.
	name, ok := tax.Industry("automotive", "tsla:AutomotiveRevenues")
	require.True(t, ok)
	assert.Equal(t, "Automotive Revenue", name)
	_, ok = tax.Industry("banking", "tsla:AutomotiveRevenues")
	assert.False(t, ok)
	_, ok = tax.Generic("tsla:AutomotiveRevenues")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestAliasesFor(t *testing.T) {
	tax, err := Load("testdata/automotive.yaml")
	require.NoError(t, err)

	generic := tax.AliasesFor("Revenue", "")
	assert.Contains(t, generic, "us-gaap:Revenues")

	withOverrides := tax.AliasesFor("Automotive Revenue", "automotive")
	assert.Contains(t, withOverrides, "tsla:AutomotiveRevenues")
	assert.NotContains(t, tax.AliasesFor("Automotive Revenue", ""), "tsla:AutomotiveRevenues")
}
