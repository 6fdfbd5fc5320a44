package repository

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"company-news-agent/internal/entity"
	"company-news-agent/pkg/logger"
	"company-news-agent/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/agext/levenshtein"
	"github.com/mmcdole/gofeed"
)

// similarityThreshold is the minimum token similarity accepted by the fuzzy
// query match.
const similarityThreshold = 0.82

// DefaultRSSSections are the Wired category feeds queried when no sections
// are configured.
var DefaultRSSSections = map[string]string{
	"business": "https://www.wired.com/feed/category/business/latest/rss",
	"science":  "https://www.wired.com/feed/category/science/latest/rss",
}

var tokenSplitRe = regexp.MustCompile(`[^a-z0-9]+`)

// RSSRepository fetches and filters articles from a set of RSS feeds. A feed
// that fails to fetch or parse is skipped; the remaining feeds are still
// consulted.
type RSSRepository struct {
	sections map[string]string
	log      *logger.Logger
	parser   *gofeed.Parser
}

// NewRSSRepository creates a new RSSRepository. A nil or empty sections map
// falls back to the default Wired feeds.
func NewRSSRepository(sections map[string]string, log *logger.Logger) *RSSRepository {
	if len(sections) == 0 {
		sections = DefaultRSSSections
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{
		Timeout: 10 * time.Second,
	}
	return &RSSRepository{
		sections: sections,
		log:      log,
		parser:   parser,
	}
}

// Name returns the provider name.
func (r *RSSRepository) Name() string {
	return "rss"
}

// Fetch parses every configured feed and returns entries matching the query,
// up to limit across all feeds combined.
func (r *RSSRepository) Fetch(ctx context.Context, query string, limit int, _ FetchOptions) ([]entity.RawArticle, error) {
	sections := make([]string, 0, len(r.sections))
	for section := range r.sections {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	var results []entity.RawArticle
	for _, section := range sections {
		feedURL := r.sections[section]
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			r.log.Warn("Failed to parse RSS feed",
				logger.StringField("section", section),
				logger.StringField("url", feedURL),
				logger.ErrorField(err),
			)
			continue
		}

		sectionName := utils.CapitalizeSentence(section)
		for _, item := range feed.Items {
			if !matchesQuery(query, entryText(item)) {
				continue
			}

			title := item.Title
			if title == "" {
				title = fmt.Sprintf("Wired %s Update", sectionName)
			}
			content := item.Content
			if content == "" {
				content = item.Description
			}
			results = append(results, entity.RawArticle{
				Title:       title,
				URL:         item.Link,
				Source:      fmt.Sprintf("Wired %s", sectionName),
				PublishedAt: entryPublished(item),
				Content:     stripHTML(content),
				Description: stripHTML(item.Description),
			})
			if len(results) >= limit {
				return results, nil
			}
		}
	}
	return results, nil
}

// entryText concatenates the searchable text of a feed entry.
func entryText(item *gofeed.Item) string {
	return strings.ToLower(fmt.Sprintf("%s %s %s", item.Title, item.Description, item.Content))
}

func entryPublished(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

// matchesQuery reports whether any query token appears in (or is similar to a
// token of) the entry text. An untokenizable query matches everything.
func matchesQuery(query, text string) bool {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return true
	}
	text = strings.ToLower(text)
	entryTokens := make(map[string]struct{})
	for _, token := range tokenize(text) {
		entryTokens[token] = struct{}{}
	}
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
		if len(token) < 3 {
			continue
		}
		for candidate := range entryTokens {
			if token == candidate || levenshtein.Match(token, candidate, nil) >= similarityThreshold {
				return true
			}
		}
	}
	return false
}

func tokenize(value string) []string {
	var tokens []string
	for _, token := range tokenSplitRe.Split(strings.ToLower(value), -1) {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// stripHTML extracts the plain text of an HTML fragment. Unparsable input is
// returned unchanged.
func stripHTML(s string) string {
	if s == "" {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
