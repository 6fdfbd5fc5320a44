package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"company-news-agent/internal/entity"
	"company-news-agent/pkg/logger"
)

// DefaultNewsAPIBaseURL is the production newsapi.org host.
const DefaultNewsAPIBaseURL = "https://newsapi.org"

// NewsAPIRepository fetches articles from the newsapi.org "everything" endpoint.
type NewsAPIRepository struct {
	apiKey     string
	baseURL    string
	log        *logger.Logger
	httpClient *http.Client
}

// NewNewsAPIRepository creates a new NewsAPIRepository. The API key is
// required; an empty key is a configuration error.
func NewNewsAPIRepository(apiKey, baseURL string, log *logger.Logger) (*NewsAPIRepository, error) {
	if apiKey == "" {
		return nil, errors.New("newsapi: API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultNewsAPIBaseURL
	}
	return &NewsAPIRepository{
		apiKey:  apiKey,
		baseURL: baseURL,
		log:     log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Name returns the provider name.
func (r *NewsAPIRepository) Name() string {
	return "newsapi"
}

type newsAPIArticle struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

type newsAPIResponse struct {
	Articles []newsAPIArticle `json:"articles"`
}

// Fetch queries newsapi.org and maps the payload into raw articles.
func (r *NewsAPIRepository) Fetch(ctx context.Context, query string, limit int, opts FetchOptions) ([]entity.RawArticle, error) {
	language := opts.Language
	if language == "" {
		language = "en"
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "publishedAt"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("language", language)
	params.Set("sortBy", sortBy)

	endpoint := fmt.Sprintf("%s/v2/everything?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", r.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: unexpected status code %d", resp.StatusCode)
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("newsapi: failed to decode response: %w", err)
	}

	articles := make([]entity.RawArticle, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		title := article.Title
		if title == "" {
			title = "Untitled"
		}
		source := article.Source.Name
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, entity.RawArticle{
			Title:       title,
			URL:         article.URL,
			Source:      source,
			PublishedAt: parseISOTime(article.PublishedAt),
			Content:     article.Content,
			Description: article.Description,
		})
	}
	return articles, nil
}

// parseISOTime parses an ISO-8601 timestamp, returning nil when absent or
// unparsable.
func parseISOTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
