package entity

import "time"

// RawArticle is the unprocessed article shape produced by a provider.
type RawArticle struct {
	Title       string
	URL         string
	Source      string
	PublishedAt *time.Time
	Content     string
	Description string
}

// NewsItem is the processed, externally visible result unit.
type NewsItem struct {
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Source         string     `json:"source"`
	PublishedAt    *time.Time `json:"published_at"`
	Summary        string     `json:"summary,omitempty"`
	Sentiment      string     `json:"sentiment"`
	SentimentScore float64    `json:"sentiment_score"`
	Excerpt        string     `json:"excerpt,omitempty"`
}
