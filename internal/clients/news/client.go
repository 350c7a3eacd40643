package news

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/domain"
)

const (
	newsAPIEndpoint = "https://newsapi.org/v2/everything"
	newsAPIQuery    = "gold OR inflation OR federal reserve"

	// maxItemsPerFeed bounds how much of each feed is considered per poll.
	maxItemsPerFeed = 20
)

// Client fetches candidate articles from RSS feeds and, when a key is
// configured, NewsAPI. Articles are raw input for an external classifier;
// nothing here interprets their text beyond keyword gating.
type Client struct {
	client     *http.Client
	feeds      []string
	newsAPIKey string
	log        zerolog.Logger
}

// NewClient creates a news client polling the default feeds. apiKey may be
// empty, which disables the NewsAPI source.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		feeds:      DefaultFeeds,
		newsAPIKey: apiKey,
		log:        log.With().Str("client", "news").Logger(),
	}
}

// SetFeeds overrides the polled feed list (tests, custom deployments)
func (c *Client) SetFeeds(feeds []string) {
	c.feeds = feeds
}

// FetchAll polls every source, keeps articles younger than maxAge that pass
// the keyword gate, dedupes them by URL, and returns them newest first.
// Individual source failures are logged and skipped.
func (c *Client) FetchAll(maxAge time.Duration) []domain.Article {
	cutoff := time.Now().UTC().Add(-maxAge)

	var all []domain.Article
	for _, feed := range c.feeds {
		articles, err := c.fetchFeed(feed, cutoff)
		if err != nil {
			c.log.Warn().Err(err).Str("feed", feed).Msg("Feed fetch failed")
			continue
		}
		all = append(all, articles...)
	}

	if c.newsAPIKey != "" {
		articles, err := c.fetchNewsAPI(cutoff)
		if err != nil {
			c.log.Warn().Err(err).Msg("NewsAPI fetch failed")
		} else {
			all = append(all, articles...)
		}
	}

	unique := Dedupe(all)
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].PublishedAt > unique[j].PublishedAt
	})

	c.log.Info().Int("articles", len(unique)).Msg("News fetch complete")
	return unique
}

func (c *Client) fetchFeed(feedURL string, cutoff time.Time) ([]domain.Article, error) {
	resp, err := c.client.Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %d", resp.StatusCode)
	}

	var doc rssDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := doc.Channel.Title
	if source == "" {
		source = feedURL
	}

	now := time.Now().UTC()
	var articles []domain.Article
	for i, item := range doc.Channel.Items {
		if i >= maxItemsPerFeed {
			break
		}

		published, ok := parsePubDate(item.PubDate)
		if ok && published.Before(cutoff) {
			continue
		}

		if !MatchesGoldKeywords(item.Title + " " + item.Description) {
			continue
		}

		article := domain.Article{
			Source:    source,
			Title:     strings.TrimSpace(item.Title),
			Summary:   strings.TrimSpace(item.Description),
			URL:       item.Link,
			FetchedAt: now,
		}
		if ok {
			article.PublishedAt = published.Format(time.RFC3339)
		}
		articles = append(articles, article)
	}

	return articles, nil
}

func (c *Client) fetchNewsAPI(cutoff time.Time) ([]domain.Article, error) {
	params := url.Values{}
	params.Set("q", newsAPIQuery)
	params.Set("from", cutoff.Format("2006-01-02"))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "50")
	params.Set("apiKey", c.newsAPIKey)

	resp, err := c.client.Get(newsAPIEndpoint + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch NewsAPI: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsAPI returned %d", resp.StatusCode)
	}

	var parsed newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode NewsAPI response: %w", err)
	}

	now := time.Now().UTC()
	articles := make([]domain.Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		articles = append(articles, domain.Article{
			Source:      a.Source.Name,
			Title:       a.Title,
			Summary:     a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			FetchedAt:   now,
		})
	}

	return articles, nil
}

// pubDateLayouts cover the date formats seen across the polled feeds.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

func parsePubDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// MatchesGoldKeywords reports whether text mentions any gold-relevant term.
func MatchesGoldKeywords(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range goldKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Dedupe drops articles whose URL was already seen, keeping first
// occurrences. Articles without a URL are dropped entirely.
func Dedupe(articles []domain.Article) []domain.Article {
	seen := make(map[string]bool, len(articles))
	unique := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.URL == "" || seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		unique = append(unique, a)
	}
	return unique
}
