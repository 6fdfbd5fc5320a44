package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransposeColumnsRaggedArrays(t *testing.T) {
	payload := map[string]interface{}{
		"form":            []interface{}{"10-K", "8-K", "10-K"},
		"accessionNumber": []interface{}{"A1", "A2"}, // shorter column
		"filingDate":      []interface{}{"2023-01-01", "2022-06-01", "2021-03-01"},
		"notAColumn":      "scalar",
	}

	rows := transposeColumns(payload)
	require.Len(t, rows, 3)

	assert.Equal(t, "A1", rows[0]["accessionNumber"])
	assert.Equal(t, "A2", rows[1]["accessionNumber"])
	_, ok := rows[2]["accessionNumber"]
	assert.False(t, ok, "third row lacks the short column's key")
	for _, row := range rows {
		_, ok := row["notAColumn"]
		assert.False(t, ok)
	}
}

func TestTransposeColumnsMissingFormColumn(t *testing.T) {
	assert.Nil(t, transposeColumns(map[string]interface{}{"other": []interface{}{"x"}}))
}

func TestDatasetRecordsNestedRecent(t *testing.T) {
	dataset := map[string]interface{}{
		"filings": map[string]interface{}{
			"recent": map[string]interface{}{
				"form": []interface{}{"10-K"},
			},
		},
	}
	assert.Len(t, datasetRecords(dataset), 1)

	// Supplemental documents are columnar at the top level.
	flat := map[string]interface{}{"form": []interface{}{"10-K", "10-Q"}}
	assert.Len(t, datasetRecords(flat), 2)
}

func TestSupplementalFileNames(t *testing.T) {
	submissions := map[string]interface{}{
		"filings": map[string]interface{}{
			"files": []interface{}{
				map[string]interface{}{"name": "CIK-001-submissions-001.json"},
				map[string]interface{}{"name": ""},
				"garbage",
			},
		},
	}
	assert.Equal(t, []string{"CIK-001-submissions-001.json"}, supplementalFileNames(submissions))
	assert.Nil(t, supplementalFileNames(map[string]interface{}{}))
}

func filingRows(rows ...map[string]interface{}) []map[string]interface{} {
	return rows
}

func TestMergeFilingRowsFiltersAndSorts(t *testing.T) {
	cutoff := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := filingRows(
		map[string]interface{}{"form": "10-K", "filingDate": "2021-01-01", "accessionNumber": "A1"},
		map[string]interface{}{"form": "10-K", "filingDate": "2022-06-01", "accessionNumber": "A2"},
		map[string]interface{}{"form": "10-Q", "filingDate": "2022-08-01", "accessionNumber": "Q1"},
		map[string]interface{}{"form": "10-K", "filingDate": "2012-01-01", "accessionNumber": "OLD"},
		map[string]interface{}{"form": "10-K", "filingDate": "bogus", "accessionNumber": "BAD"},
		map[string]interface{}{"form": "10-K", "filingDate": "2020-01-01"},
	)

	merged := mergeFilingRows("0000000123", [][]map[string]interface{}{rows}, cutoff)
	require.Len(t, merged, 2)
	assert.Equal(t, "A2", merged[0].Accession)
	assert.Equal(t, "A1", merged[1].Accession)
}

func TestMergeFilingRowsFirstOccurrenceWins(t *testing.T) {
	cutoff := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	primary := filingRows(map[string]interface{}{
		"form":            "10-K",
		"filingDate":      "2021-01-01",
		"accessionNumber": "A1",
		"primaryDocument": "primary.htm",
	})
	supplemental := filingRows(map[string]interface{}{
		"form":            "10-K/A",
		"filingDate":      "2021-02-01",
		"accessionNumber": "A1",
		"primaryDocument": "other.htm",
	})

	merged := mergeFilingRows("0000000123", [][]map[string]interface{}{primary, supplemental}, cutoff)
	require.Len(t, merged, 1)
	assert.Equal(t, "10-K", merged[0].Form)
	assert.Contains(t, merged[0].URL, "primary.htm")
}

func TestMergeFilingRowsOptionalFields(t *testing.T) {
	cutoff := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := filingRows(map[string]interface{}{
		"form":            "10-K",
		"filingDate":      "2021-01-01",
		"reportDate":      "2020-12-31",
		"fy":              float64(2020),
		"accessionNumber": "A1",
	})

	merged := mergeFilingRows("0000000123", [][]map[string]interface{}{rows}, cutoff)
	require.Len(t, merged, 1)
	require.NotNil(t, merged[0].ReportDate)
	assert.Equal(t, "2020-12-31", merged[0].ReportDate.Format("2006-01-02"))
	assert.Equal(t, 2020, merged[0].FiscalYear)
}

func TestBuildFilingURL(t *testing.T) {
	url := buildFilingURL("0000320193", "0000320193-23-000106", "aapl-20230930.htm")
	assert.Equal(t,
		"https://www.sec.gov/Archives/edgar/data/320193/000032019323000106/aapl-20230930.htm",
		url)

	// Missing primary document falls back to the index page.
	url = buildFilingURL("0000000001", "0001-23-000001", "")
	assert.Equal(t,
		"https://www.sec.gov/Archives/edgar/data/1/000123000001/index.htm",
		url)
}

func TestParseEDGARDate(t *testing.T) {
	date, ok := parseEDGARDate("2023-09-30")
	require.True(t, ok)
	assert.Equal(t, 2023, date.Year())

	date, ok = parseEDGARDate("2023-09-30T12:00:00Z")
	require.True(t, ok)
	assert.Equal(t, 30, date.Day())

	_, ok = parseEDGARDate("")
	assert.False(t, ok)
	_, ok = parseEDGARDate("not a date")
	assert.False(t, ok)
}
