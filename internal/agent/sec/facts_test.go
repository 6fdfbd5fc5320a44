package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{2_500_000_000, "$2.50B"},
		{-999, "-$999"},
		{1_230_000_000_000, "$1.23T"},
		{45_600_000, "$45.60M"},
		{1_234, "$1,234"},
		{0, "$0"},
		{-3_500_000, "-$3.50M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.value), "value %v", tt.value)
	}
}

func sampleFacts() *companyFacts {
	return &companyFacts{
		Facts: map[string]map[string]conceptFacts{
			"us-gaap": {
				"RevenueFromContractWithCustomerExcludingAssessedTax": {
					Units: map[string][]factEntry{
						"USD": {
							{Accession: "A1", Form: "10-K", Value: floatPtr(2_500_000_000)},
							{Accession: "A2", Form: "10-K", Value: floatPtr(3_000_000_000)},
						},
					},
				},
				"NetIncomeLoss": {
					Units: map[string][]factEntry{
						"USD": {
							{Accession: "A1", Form: "10-Q", Value: floatPtr(1)},
							{Accession: "A1", Form: "10-K", Value: floatPtr(500_000_000)},
						},
					},
				},
				"Assets": {
					Units: map[string][]factEntry{
						"USD": {
							{Accession: "OTHER", Form: "10-K", Value: floatPtr(42)},
						},
					},
				},
			},
		},
	}
}

func TestExtractFinancialsAliasOrderAndFormFilter(t *testing.T) {
	metrics := extractFinancials(sampleFacts(), "A1")
	require.Len(t, metrics, 2)

	// Fixed concept order: revenue before net income.
	assert.Equal(t, "Revenue", metrics[0].Label)
	assert.Equal(t, "$2.50B", metrics[0].Value)
	assert.Equal(t, "Net income", metrics[1].Label)
	assert.Equal(t, "$500.00M", metrics[1].Value)
}

func TestExtractFinancialsMissingData(t *testing.T) {
	assert.Nil(t, extractFinancials(nil, "A1"))
	assert.Nil(t, extractFinancials(sampleFacts(), ""))
	assert.Nil(t, extractFinancials(&companyFacts{}, "A1"))
	assert.Nil(t, extractFinancials(sampleFacts(), "UNSEEN"))
}

func TestComposeSummaryWithMetrics(t *testing.T) {
	reportDate := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	filing := FilingRecord{
		Accession:  "A1",
		FilingDate: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
		ReportDate: &reportDate,
		FiscalYear: 2020,
		Form:       "10-K",
	}

	summary := composeSummary(filing, sampleFacts())
	assert.Equal(t,
		"Form 10-K filed on 2021-02-01. Fiscal year: 2020. Period end: 2020-12-31. "+
			"Revenue: $2.50B, Net income: $500.00M",
		summary)
}

func TestComposeSummaryFallbackSentence(t *testing.T) {
	filing := FilingRecord{
		Accession:  "A9",
		FilingDate: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
		Form:       "10-K",
	}

	summary := composeSummary(filing, nil)
	assert.Equal(t,
		"Form 10-K filed on 2021-02-01. Financial highlights unavailable from XBRL dataset.",
		summary)
}
