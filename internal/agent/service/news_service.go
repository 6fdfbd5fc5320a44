package service

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"company-news-agent/internal/agent/repository"
	"company-news-agent/internal/entity"
	"company-news-agent/pkg/analysis"
	"company-news-agent/pkg/logger"
	"company-news-agent/pkg/utils"
)

// ErrInvalidQuery is returned when the search query is empty or whitespace-only.
var ErrInvalidQuery = errors.New("query must be provided")

const (
	excerptMaxChars = 280
	dedupeKeyMaxLen = 120
)

var nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)

// NewsService aggregates, deduplicates, and enriches articles from the
// configured providers.
type NewsService interface {
	Search(ctx context.Context, query string, limit int) ([]entity.NewsItem, error)
}

// Options tunes the aggregation behavior.
type Options struct {
	DefaultLimit   int
	PerSourceLimit int
	AllowedDomains []string
}

type newsService struct {
	providers      []repository.ArticleProvider
	log            *logger.Logger
	defaultLimit   int
	perSourceLimit int
	allowedDomains []string
}

// NewNewsService creates a new NewsService over the given providers, queried
// in slice order. At least one provider is required.
func NewNewsService(providers []repository.ArticleProvider, opts Options, log *logger.Logger) (NewsService, error) {
	if len(providers) == 0 {
		return nil, errors.New("no providers configured for news service")
	}
	defaultLimit := opts.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &newsService{
		providers:      providers,
		log:            log,
		defaultLimit:   defaultLimit,
		perSourceLimit: opts.PerSourceLimit,
		allowedDomains: opts.AllowedDomains,
	}, nil
}

// Search fans the query out to the providers in priority order, deduplicates
// and filters their articles, and enriches the survivors. It returns as soon
// as the effective limit is reached; providers past that point are never
// queried. A failing provider is logged and treated as an empty yield.
func (s *newsService) Search(ctx context.Context, query string, limit int) ([]entity.NewsItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	fetchLimit := limit
	if s.perSourceLimit > 0 && s.perSourceLimit < fetchLimit {
		fetchLimit = s.perSourceLimit
	}

	seenURLs := make(map[string]struct{})
	seenKeys := make(map[string]struct{})
	results := make([]entity.NewsItem, 0, limit)

	for _, provider := range s.providers {
		articles, err := provider.Fetch(ctx, query, fetchLimit, repository.FetchOptions{})
		if err != nil {
			s.log.Warn("Provider fetch failed",
				logger.StringField("provider", provider.Name()),
				logger.ErrorField(err),
			)
			continue
		}

		for _, raw := range articles {
			if raw.URL != "" {
				if _, ok := seenURLs[raw.URL]; ok {
					continue
				}
				if !s.isAllowedDomain(raw.URL) {
					continue
				}
				seenURLs[raw.URL] = struct{}{}
			}

			key := dedupeKey(raw)
			if key != "" {
				if _, ok := seenKeys[key]; ok {
					continue
				}
			}

			results = append(results, s.process(raw))
			if key != "" {
				seenKeys[key] = struct{}{}
			}
			if len(results) >= limit {
				return results, nil
			}
		}
	}
	return results, nil
}

// process enriches one raw article with a summary, sentiment, and excerpt.
func (s *newsService) process(raw entity.RawArticle) entity.NewsItem {
	text := raw.Content
	if text == "" {
		text = raw.Description
	}
	summary := analysis.Summarize(text, analysis.DefaultMaxSentences)
	sentiment, score := analysis.ScoreSentiment(text)

	excerpt := raw.Description
	if excerpt == "" {
		excerpt = raw.Content
	}
	excerpt = utils.TruncateWithEllipsis(excerpt, excerptMaxChars)

	return entity.NewsItem{
		Title:          raw.Title,
		URL:            raw.URL,
		Source:         raw.Source,
		PublishedAt:    raw.PublishedAt,
		Summary:        summary,
		Sentiment:      sentiment,
		SentimentScore: score,
		Excerpt:        excerpt,
	}
}

// isAllowedDomain checks the URL host against the configured allow-list. An
// empty allow-list, an unparsable URL, or a URL without a host all pass.
func (s *newsService) isAllowedDomain(rawURL string) bool {
	if len(s.allowedDomains) == 0 {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}
	hostname := strings.ToLower(parsed.Host)
	for _, domain := range s.allowedDomains {
		domain = strings.ToLower(domain)
		if hostname == domain || strings.HasSuffix(hostname, "."+domain) {
			return true
		}
	}
	return false
}

// dedupeKey fingerprints an article by its normalized title, falling back to
// the first chunk of its description or content. An empty key means the
// article cannot be fingerprinted and is never deduplicated by key.
func dedupeKey(raw entity.RawArticle) string {
	title := strings.ToLower(strings.TrimSpace(raw.Title))
	if title != "" {
		if key := nonAlphanumericRe.ReplaceAllString(title, ""); key != "" {
			return key
		}
	}

	excerpt := raw.Description
	if excerpt == "" {
		excerpt = raw.Content
	}
	excerpt = strings.ToLower(strings.TrimSpace(excerpt))
	if excerpt == "" {
		return ""
	}
	runes := []rune(excerpt)
	if len(runes) > dedupeKeyMaxLen {
		runes = runes[:dedupeKeyMaxLen]
	}
	return nonAlphanumericRe.ReplaceAllString(string(runes), "")
}
