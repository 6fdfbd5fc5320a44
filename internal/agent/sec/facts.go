package sec

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// companyFacts is the XBRL-derived facts document: taxonomy -> concept ->
// unit-typed series of time-stamped values.
type companyFacts struct {
	Facts map[string]map[string]conceptFacts `json:"facts"`
}

type conceptFacts struct {
	Units map[string][]factEntry `json:"units"`
}

type factEntry struct {
	Accession string   `json:"accn"`
	Form      string   `json:"form"`
	Value     *float64 `json:"val"`
}

// factConcept is one recognized financial concept with its us-gaap tag
// aliases, tried in order.
type factConcept struct {
	Label string
	Tags  []string
}

// financialConcepts lists the extracted concepts in their fixed summary order.
var financialConcepts = []factConcept{
	{Label: "Revenue", Tags: []string{
		"Revenues",
		"RevenueFromContractWithCustomerExcludingAssessedTax",
		"SalesRevenueNet",
	}},
	{Label: "Net income", Tags: []string{"NetIncomeLoss"}},
	{Label: "Total assets", Tags: []string{"Assets"}},
	{Label: "Total liabilities", Tags: []string{"Liabilities"}},
	{Label: "Cash & cash equivalents", Tags: []string{
		"CashAndCashEquivalentsAtCarryingValue",
		"CashAndCashEquivalentsPeriodIncreaseDecrease",
	}},
}

type financialMetric struct {
	Label string
	Value string
}

// extractFinancials pulls the recognized concept values reported by the
// filing with the given accession number. Missing concepts are omitted;
// partial data is the expected common case.
func extractFinancials(facts *companyFacts, accession string) []financialMetric {
	if facts == nil || accession == "" {
		return nil
	}
	usGAAP, ok := facts.Facts["us-gaap"]
	if !ok {
		return nil
	}
	var metrics []financialMetric
	for _, concept := range financialConcepts {
		if value, ok := findFactValue(usGAAP, concept.Tags, accession); ok {
			metrics = append(metrics, financialMetric{
				Label: concept.Label,
				Value: FormatCurrency(value),
			})
		}
	}
	return metrics
}

// findFactValue returns the first value among the tag aliases whose entry was
// reported by the given annual filing.
func findFactValue(usGAAP map[string]conceptFacts, tags []string, accession string) (float64, bool) {
	for _, tag := range tags {
		concept, ok := usGAAP[tag]
		if !ok {
			continue
		}
		unitNames := make([]string, 0, len(concept.Units))
		for unit := range concept.Units {
			unitNames = append(unitNames, unit)
		}
		sort.Strings(unitNames)
		for _, unit := range unitNames {
			for _, entry := range concept.Units[unit] {
				if entry.Accession == accession && annualForms[entry.Form] && entry.Value != nil {
					return *entry.Value, true
				}
			}
		}
	}
	return 0, false
}

// FormatCurrency renders a value as a signed dollar string with magnitude
// suffixes: trillions, billions, and millions get two decimals; smaller
// values are comma-grouped with no suffix.
func FormatCurrency(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	magnitude := math.Abs(value)
	switch {
	case magnitude >= 1e12:
		return fmt.Sprintf("%s$%.2fT", sign, magnitude/1e12)
	case magnitude >= 1e9:
		return fmt.Sprintf("%s$%.2fB", sign, magnitude/1e9)
	case magnitude >= 1e6:
		return fmt.Sprintf("%s$%.2fM", sign, magnitude/1e6)
	}
	return fmt.Sprintf("%s$%s", sign, humanize.Comma(int64(math.Round(magnitude))))
}

// composeSummary builds the one-paragraph filing summary: form and filing
// date, then fiscal year and period end when known, then the extracted
// metrics or a fallback sentence.
func composeSummary(filing FilingRecord, facts *companyFacts) string {
	parts := []string{
		fmt.Sprintf("Form %s filed on %s.", filing.Form, filing.FilingDate.Format("2006-01-02")),
	}
	if filing.FiscalYear != 0 {
		parts = append(parts, fmt.Sprintf("Fiscal year: %d.", filing.FiscalYear))
	}
	if filing.ReportDate != nil {
		parts = append(parts, fmt.Sprintf("Period end: %s.", filing.ReportDate.Format("2006-01-02")))
	}

	metrics := extractFinancials(facts, filing.Accession)
	if len(metrics) > 0 {
		pairs := make([]string, 0, len(metrics))
		for _, metric := range metrics {
			pairs = append(pairs, fmt.Sprintf("%s: %s", metric.Label, metric.Value))
		}
		parts = append(parts, strings.Join(pairs, ", "))
	} else {
		parts = append(parts, "Financial highlights unavailable from XBRL dataset.")
	}
	return strings.Join(parts, " ")
}
