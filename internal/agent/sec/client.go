// Package sec implements the SEC EDGAR filings extraction engine: entity
// identity resolution, filing dataset merging, and financial fact extraction
// from the XBRL company facts graph.
package sec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"company-news-agent/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the EDGAR structured data host.
	DefaultBaseURL = "https://data.sec.gov"
	// DefaultTickerMapURL is the static ticker-to-CIK mapping document.
	DefaultTickerMapURL = "https://www.sec.gov/files/company_tickers.json"

	tickerMapCacheKey = "ticker_map"
)

// Identity is a resolved filing entity.
type Identity struct {
	CIK   string
	Title string
}

// Client is a rate-limited EDGAR API client. The ticker map is fetched at
// most once per process; a failed fetch is retried on the next call.
type Client struct {
	baseURL        string
	tickerMapURL   string
	userAgent      string
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter

	mu            sync.Mutex
	inmemoryCache *cache.Cache
}

// NewClient creates a new EDGAR client. The user agent must carry a contact
// email per SEC fair-access guidelines; a missing or malformed one is a
// configuration error.
func NewClient(userAgent, baseURL, tickerMapURL string, log *logger.Logger) (*Client, error) {
	if userAgent == "" || !strings.Contains(userAgent, "@") {
		return nil, errors.New("sec: user agent must include a contact email per SEC guidelines")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tickerMapURL == "" {
		tickerMapURL = DefaultTickerMapURL
	}
	return &Client{
		baseURL:      baseURL,
		tickerMapURL: tickerMapURL,
		userAgent:    userAgent,
		log:          log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		// SEC fair-access policy allows at most 10 requests per second.
		requestLimiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
		inmemoryCache:  cache.New(cache.NoExpiration, 0),
	}, nil
}

// GetJSON fetches a path on the EDGAR data host and decodes the payload into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.fetchJSON(ctx, c.baseURL+path, out)
}

func (c *Client) fetchJSON(ctx context.Context, url string, out interface{}) error {
	if err := c.requestLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("sec: failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("sec: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sec: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sec: unexpected status code %d for %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sec: failed to decode response: %w", err)
	}
	return nil
}

type tickerEntry struct {
	Ticker string `json:"ticker"`
	CIK    int64  `json:"cik_str"`
	Title  string `json:"title"`
}

// tickerTable keeps both the exact-match index and the upstream document
// order, which decides substring fallback precedence.
type tickerTable struct {
	byTicker map[string]Identity
	ordered  []Identity
}

// tickerMap returns the memoized ticker-to-identity table, fetching it on
// first use. A failed fetch yields an empty table without populating the
// cache, so a later call can retry.
func (c *Client) tickerMap(ctx context.Context) *tickerTable {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.inmemoryCache.Get(tickerMapCacheKey); ok {
		return cached.(*tickerTable)
	}

	var payload map[string]tickerEntry
	if err := c.fetchJSON(ctx, c.tickerMapURL, &payload); err != nil {
		c.log.Warn("SEC ticker map fetch failed", logger.ErrorField(err))
		return &tickerTable{byTicker: map[string]Identity{}}
	}

	// Keys of the upstream document are array indexes ("0", "1", ...);
	// restore that order so fallback matching stays deterministic.
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		left, errL := strconv.Atoi(keys[i])
		right, errR := strconv.Atoi(keys[j])
		if errL != nil || errR != nil {
			return keys[i] < keys[j]
		}
		return left < right
	})

	table := &tickerTable{byTicker: make(map[string]Identity, len(payload))}
	for _, key := range keys {
		item := payload[key]
		if item.Ticker == "" {
			continue
		}
		title := item.Title
		if title == "" {
			title = strings.ToUpper(item.Ticker)
		}
		identity := Identity{
			CIK:   fmt.Sprintf("%010d", item.CIK),
			Title: title,
		}
		table.byTicker[strings.ToUpper(item.Ticker)] = identity
		table.ordered = append(table.ordered, identity)
	}

	c.inmemoryCache.Set(tickerMapCacheKey, table, cache.NoExpiration)
	return table
}

// ResolveCIK resolves a free-text query (CIK digits, ticker, or company-name
// fragment) to an identity. All-digit queries resolve locally without network
// access. The name-fragment fallback takes the first substring hit in table
// order; it is a deliberate best-effort heuristic. A nil result means the
// query could not be resolved.
func (c *Client) ResolveCIK(ctx context.Context, query string) *Identity {
	normalized := strings.ToUpper(strings.TrimSpace(query))
	if normalized == "" {
		return nil
	}
	if isDigits(normalized) {
		return &Identity{CIK: zeroPadCIK(normalized), Title: normalized}
	}

	table := c.tickerMap(ctx)
	if identity, ok := table.byTicker[normalized]; ok {
		return &identity
	}
	for _, identity := range table.ordered {
		if strings.Contains(strings.ToUpper(identity.Title), normalized) {
			matched := identity
			return &matched
		}
	}
	return nil
}

// CompanySubmissions fetches the per-entity submissions document.
func (c *Client) CompanySubmissions(ctx context.Context, cik string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := c.GetJSON(ctx, fmt.Sprintf("/submissions/CIK%s.json", cik), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SupplementalSubmissions fetches a paginated supplemental submissions document.
func (c *Client) SupplementalSubmissions(ctx context.Context, filename string) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := c.GetJSON(ctx, fmt.Sprintf("/submissions/%s", filename), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CompanyFacts fetches the per-entity XBRL company facts document.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*companyFacts, error) {
	var doc companyFacts
	if err := c.GetJSON(ctx, fmt.Sprintf("/api/xbrl/companyfacts/CIK%s.json", cik), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func zeroPadCIK(s string) string {
	if len(s) >= 10 {
		return s
	}
	return strings.Repeat("0", 10-len(s)) + s
}
