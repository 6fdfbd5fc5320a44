package repository

import (
	"context"
	"fmt"
	"time"

	"company-news-agent/internal/entity"
	"company-news-agent/pkg/utils"
)

// MockRepository returns hard-coded articles for offline development.
type MockRepository struct{}

// NewMockRepository creates a new MockRepository.
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// Name returns the provider name.
func (r *MockRepository) Name() string {
	return "mock"
}

// Fetch returns up to limit canned articles derived from the query.
func (r *MockRepository) Fetch(_ context.Context, query string, limit int, _ FetchOptions) ([]entity.RawArticle, error) {
	now := time.Now().UTC()
	recent := now.Add(-2 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	sample := []entity.RawArticle{
		{
			Title:       fmt.Sprintf("%s expands sustainability efforts", utils.CapitalizeSentence(query)),
			URL:         "https://example.com/sustainability",
			Source:      "Example News",
			PublishedAt: &recent,
			Content: fmt.Sprintf(
				"%s announced new sustainability targets aimed at reducing emissions by 30%% "+
					"over the next five years. The initiative includes investments in renewable energy "+
					"and supply chain transparency.", query),
			Description: "Company targets lower emissions and greener supply chains.",
		},
		{
			Title:       fmt.Sprintf("Analysts debate %s quarterly earnings", query),
			URL:         "https://example.com/earnings",
			Source:      "Market Watchers",
			PublishedAt: &yesterday,
			Content: fmt.Sprintf(
				"Market analysts offered mixed reactions to %s's latest earnings report, citing "+
					"flat revenue growth but improving operating margins. Investor sentiment appears "+
					"cautious heading into the next quarter.", query),
			Description: "Mixed analyst sentiment following the latest results.",
		},
	}
	if limit >= 0 && limit < len(sample) {
		sample = sample[:limit]
	}
	return sample, nil
}
