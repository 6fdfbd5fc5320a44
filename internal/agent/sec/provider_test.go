package sec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"company-news-agent/internal/agent/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edgarHandler serves a minimal EDGAR-shaped API for one company.
func edgarHandler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"0": {"cik_str": 123, "ticker": "ACME", "title": "Acme Industries Inc."}}`))
	})
	mux.HandleFunc("/submissions/CIK0000000123.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"filings": {
				"recent": {
					"form": ["10-K", "10-Q", "10-K"],
					"filingDate": ["2022-06-01", "2022-08-01", "2021-01-01"],
					"reportDate": ["2022-03-31", "", "2020-12-31"],
					"accessionNumber": ["A2", "Q1", "A1"],
					"primaryDocument": ["acme-2022.htm", "q.htm", "acme-2021.htm"]
				},
				"files": [{"name": "CIK0000000123-submissions-001.json"}]
			}
		}`))
	})
	mux.HandleFunc("/submissions/CIK0000000123-submissions-001.json", func(w http.ResponseWriter, r *http.Request) {
		// Duplicate accession A1 plus one filing past any 10-year cutoff.
		_, _ = w.Write([]byte(`{
			"form": ["10-K", "10-K"],
			"filingDate": ["2021-01-01", "2005-01-01"],
			"accessionNumber": ["A1", "ANCIENT"],
			"primaryDocument": ["duplicate.htm", "old.htm"]
		}`))
	})
	mux.HandleFunc("/api/xbrl/companyfacts/CIK0000000123.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"facts": {
				"us-gaap": {
					"Revenues": {
						"units": {
							"USD": [
								{"accn": "A2", "form": "10-K", "val": 2500000000},
								{"accn": "A1", "form": "10-K", "val": 1800000000}
							]
						}
					}
				}
			}
		}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})
	return mux
}

func newTestProvider(t *testing.T, server *httptest.Server, maxYears int) *Provider {
	t.Helper()
	client := newTestClient(t, server.URL, server.URL+"/files/company_tickers.json")
	return NewProvider(client, testLogger(), maxYears)
}

func TestProviderFetchMergedTimeline(t *testing.T) {
	server := httptest.NewServer(edgarHandler(t))
	defer server.Close()

	provider := newTestProvider(t, server, 10)

	articles, err := provider.Fetch(context.Background(), "ACME", 10, repository.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	// Newest first, A1 present exactly once with the primary dataset's document.
	assert.Equal(t, "Acme Industries Inc. Form 10-K (2022)", articles[0].Title)
	assert.Contains(t, articles[0].URL, "acme-2022.htm")
	assert.Contains(t, articles[0].Content, "Revenue: $2.50B")
	assert.Equal(t, "SEC 10-K FY2022", articles[0].Source)

	assert.Equal(t, "Acme Industries Inc. Form 10-K (2021)", articles[1].Title)
	assert.Contains(t, articles[1].URL, "acme-2021.htm")
	assert.Contains(t, articles[1].Content, "Revenue: $1.80B")

	for _, article := range articles {
		assert.False(t, strings.Contains(article.URL, "old.htm"))
	}
}

func TestProviderFetchRespectsLimit(t *testing.T) {
	server := httptest.NewServer(edgarHandler(t))
	defer server.Close()

	provider := newTestProvider(t, server, 10)

	articles, err := provider.Fetch(context.Background(), "ACME", 1, repository.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Contains(t, articles[0].URL, "acme-2022.htm")
}

func TestProviderUnresolvedQueryYieldsNothing(t *testing.T) {
	server := httptest.NewServer(edgarHandler(t))
	defer server.Close()

	provider := newTestProvider(t, server, 10)

	articles, err := provider.Fetch(context.Background(), "unknown entity", 10, repository.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestProviderDegradedSubmissionsYieldsNothing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"0": {"cik_str": 123, "ticker": "ACME", "title": "Acme Industries Inc."}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	provider := newTestProvider(t, server, 10)

	articles, err := provider.Fetch(context.Background(), "ACME", 10, repository.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestProviderDegradedFactsStillListsFilings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"0": {"cik_str": 123, "ticker": "ACME", "title": "Acme Industries Inc."}}`))
	})
	mux.HandleFunc("/submissions/CIK0000000123.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"filings": {
				"recent": {
					"form": ["10-K"],
					"filingDate": ["2022-06-01"],
					"accessionNumber": ["A2"],
					"primaryDocument": ["acme-2022.htm"]
				}
			}
		}`))
	})
	mux.HandleFunc("/api/xbrl/companyfacts/CIK0000000123.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	provider := newTestProvider(t, server, 10)

	articles, err := provider.Fetch(context.Background(), "ACME", 10, repository.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Contains(t, articles[0].Content, "Financial highlights unavailable")
}
