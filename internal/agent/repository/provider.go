package repository

import (
	"context"

	"company-news-agent/internal/entity"
)

// FetchOptions carries optional provider-specific fetch parameters.
type FetchOptions struct {
	Language string
	SortBy   string
}

// ArticleProvider is implemented by every upstream article source. A provider
// must return an empty slice, not an error, for ordinary "no results"
// conditions; a non-nil error signals a degraded upstream and is treated as
// an empty yield by the aggregation service.
type ArticleProvider interface {
	Name() string
	Fetch(ctx context.Context, query string, limit int, opts FetchOptions) ([]entity.RawArticle, error)
}
