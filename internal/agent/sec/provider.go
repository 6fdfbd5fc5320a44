package sec

import (
	"context"
	"fmt"
	"time"

	"company-news-agent/internal/agent/repository"
	"company-news-agent/internal/entity"
	"company-news-agent/pkg/logger"
)

// DefaultMaxYears is the default filing lookback window.
const DefaultMaxYears = 10

// Provider surfaces annual-report filings as articles. Every failure path
// degrades to an empty yield: an unresolvable query, a degraded upstream, or
// an empty filing set must never fail the aggregation call.
type Provider struct {
	client   *Client
	log      *logger.Logger
	maxYears int
}

// NewProvider creates a new SEC filings provider with the given lookback in
// years (floored at 1).
func NewProvider(client *Client, log *logger.Logger, maxYears int) *Provider {
	if maxYears < 1 {
		maxYears = 1
	}
	return &Provider{
		client:   client,
		log:      log,
		maxYears: maxYears,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "sec"
}

// Fetch resolves the query to a filing entity and returns up to limit filing
// summaries, most recent first.
func (p *Provider) Fetch(ctx context.Context, query string, limit int, _ repository.FetchOptions) ([]entity.RawArticle, error) {
	identity := p.client.ResolveCIK(ctx, query)
	if identity == nil {
		p.log.Debug("SEC identity resolution failed", logger.StringField("query", query))
		return nil, nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -365*p.maxYears)
	filings := p.collectFilings(ctx, identity.CIK, cutoff)
	if len(filings) == 0 {
		return nil, nil
	}
	if limit > 0 && len(filings) > limit {
		filings = filings[:limit]
	}

	facts := p.safeCompanyFacts(ctx, identity.CIK)

	items := make([]entity.RawArticle, 0, len(filings))
	for _, filing := range filings {
		summary := composeSummary(filing, facts)
		fiscalYear := filing.FiscalYear
		if fiscalYear == 0 {
			fiscalYear = filing.FilingDate.Year()
		}
		publishedAt := filing.FilingDate
		items = append(items, entity.RawArticle{
			Title:       fmt.Sprintf("%s Form 10-K (%d)", identity.Title, filing.FilingDate.Year()),
			URL:         filing.URL,
			Source:      fmt.Sprintf("SEC 10-K FY%d", fiscalYear),
			PublishedAt: &publishedAt,
			Content:     summary,
			Description: summary,
		})
	}
	return items, nil
}

// collectFilings merges the primary recent dataset with any supplemental
// paginated datasets into one chronological filing list. A failed primary
// fetch means no filings; a failed supplemental fetch skips that page only.
func (p *Provider) collectFilings(ctx context.Context, cik string, cutoff time.Time) []FilingRecord {
	submissions, err := p.client.CompanySubmissions(ctx, cik)
	if err != nil {
		p.log.Warn("SEC submissions fetch failed",
			logger.StringField("cik", cik),
			logger.ErrorField(err),
		)
		return nil
	}

	rowSets := [][]map[string]interface{}{datasetRecords(submissions)}
	for _, name := range supplementalFileNames(submissions) {
		supplemental, err := p.client.SupplementalSubmissions(ctx, name)
		if err != nil {
			p.log.Warn("SEC supplemental fetch failed",
				logger.StringField("file", name),
				logger.ErrorField(err),
			)
			continue
		}
		rowSets = append(rowSets, datasetRecords(supplemental))
	}

	return mergeFilingRows(cik, rowSets, cutoff)
}

func (p *Provider) safeCompanyFacts(ctx context.Context, cik string) *companyFacts {
	facts, err := p.client.CompanyFacts(ctx, cik)
	if err != nil {
		p.log.Debug("SEC company facts fetch failed",
			logger.StringField("cik", cik),
			logger.ErrorField(err),
		)
		return nil
	}
	return facts
}
