package sec

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FilingRecord is one merged annual-report filing row.
type FilingRecord struct {
	Accession  string
	FilingDate time.Time
	ReportDate *time.Time
	FiscalYear int
	Form       string
	URL        string
}

// annualForms are the forms kept by the filing collection stage.
var annualForms = map[string]bool{
	"10-K":   true,
	"10-K/A": true,
}

// datasetRecords projects a submissions document into row records. The
// document either nests a columnar "recent" dataset under "filings" (primary
// document) or is itself columnar (supplemental pages).
func datasetRecords(dataset map[string]interface{}) []map[string]interface{} {
	if filings, ok := dataset["filings"].(map[string]interface{}); ok {
		if recent, ok := filings["recent"].(map[string]interface{}); ok {
			return transposeColumns(recent)
		}
	}
	return transposeColumns(dataset)
}

// transposeColumns converts EDGAR's parallel-array format into row maps. The
// "form" column sets the row count; a row simply lacks the keys of any column
// shorter than that.
func transposeColumns(payload map[string]interface{}) []map[string]interface{} {
	forms, ok := payload["form"].([]interface{})
	if !ok {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(forms))
	for idx := range forms {
		row := make(map[string]interface{})
		for key, value := range payload {
			column, ok := value.([]interface{})
			if ok && len(column) > idx {
				row[key] = column[idx]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// supplementalFileNames lists the additional paginated submission documents
// referenced by the primary document.
func supplementalFileNames(submissions map[string]interface{}) []string {
	filings, ok := submissions["filings"].(map[string]interface{})
	if !ok {
		return nil
	}
	files, ok := filings["files"].([]interface{})
	if !ok {
		return nil
	}
	var names []string
	for _, file := range files {
		entry, ok := file.(map[string]interface{})
		if !ok {
			continue
		}
		if name, ok := entry["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// mergeFilingRows folds a set of row datasets into a chronological filing
// list. Rows outside the annual forms, older than cutoff, or missing a
// filing date or accession number are dropped. Duplicate accession numbers
// across datasets keep the first occurrence.
func mergeFilingRows(cik string, rowSets [][]map[string]interface{}, cutoff time.Time) []FilingRecord {
	seen := make(map[string]bool)
	var merged []FilingRecord
	for _, rows := range rowSets {
		for _, row := range rows {
			form, _ := row["form"].(string)
			if !annualForms[form] {
				continue
			}
			filingDate, ok := parseEDGARDate(stringColumn(row, "filingDate"))
			if !ok || filingDate.Before(cutoff) {
				continue
			}
			accession := stringColumn(row, "accessionNumber")
			if accession == "" {
				continue
			}
			if seen[accession] {
				continue
			}
			seen[accession] = true

			record := FilingRecord{
				Accession:  accession,
				FilingDate: filingDate,
				Form:       form,
				URL:        buildFilingURL(cik, accession, stringColumn(row, "primaryDocument")),
			}
			if reportDate, ok := parseEDGARDate(stringColumn(row, "reportDate")); ok {
				record.ReportDate = &reportDate
			}
			record.FiscalYear = intColumn(row, "fy")
			merged = append(merged, record)
		}
	}
	sortFilingsByDateDesc(merged)
	return merged
}

func sortFilingsByDateDesc(filings []FilingRecord) {
	// Stable so merge order breaks ties between equal filing dates.
	sort.SliceStable(filings, func(i, j int) bool {
		return filings[i].FilingDate.After(filings[j].FilingDate)
	})
}

// buildFilingURL composes the public archive URL of a filing document.
func buildFilingURL(cik, accession, primaryDocument string) string {
	strippedCIK := strings.TrimLeft(cik, "0")
	if strippedCIK == "" {
		strippedCIK = "0"
	}
	document := primaryDocument
	if document == "" {
		document = "index.htm"
	}
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/%s",
		strippedCIK, strings.ReplaceAll(accession, "-", ""), document)
}

// parseEDGARDate parses the date shapes EDGAR emits: plain dates and ISO
// timestamps with an optional trailing Z.
func parseEDGARDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	layouts := []string{"2006-01-02"}
	if strings.Contains(value, "T") {
		layouts = []string{time.RFC3339, "2006-01-02T15:04:05"}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stringColumn(row map[string]interface{}, key string) string {
	value, _ := row[key].(string)
	return value
}

func intColumn(row map[string]interface{}, key string) int {
	switch value := row[key].(type) {
	case float64:
		return int(value)
	case string:
		var parsed int
		if _, err := fmt.Sscanf(value, "%d", &parsed); err == nil {
			return parsed
		}
	}
	return 0
}
