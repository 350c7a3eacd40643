package news

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumlens/goldlens/internal/domain"
	"github.com/aurumlens/goldlens/pkg/logger"
)

func TestMatchesGoldKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "gold mention", text: "Gold futures climbed on safe-haven demand", want: true},
		{name: "fed mention", text: "Federal Reserve holds rates steady", want: true},
		{name: "case insensitive", text: "BULLION demand surges in Asia", want: true},
		{name: "irrelevant", text: "Local bakery wins pastry award", want: false},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesGoldKeywords(tt.text))
		})
	}
}

func TestDedupe(t *testing.T) {
	articles := []domain.Article{
		{Title: "first", URL: "https://example.com/a"},
		{Title: "duplicate", URL: "https://example.com/a"},
		{Title: "second", URL: "https://example.com/b"},
		{Title: "no url"},
	}

	unique := Dedupe(articles)
	require.Len(t, unique, 2)
	assert.Equal(t, "first", unique[0].Title)
	assert.Equal(t, "second", unique[1].Title)
}

func TestClient_FetchAllFromFeed(t *testing.T) {
	recent := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC1123Z)
	feed := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Wire</title>
    <item>
      <title>Gold rises on geopolitical tensions</title>
      <link>https://example.com/gold-rises</link>
      <description>Safe-haven demand lifts bullion.</description>
      <pubDate>` + recent + `</pubDate>
    </item>
    <item>
      <title>Celebrity gossip roundup</title>
      <link>https://example.com/gossip</link>
      <description>Nothing about markets here.</description>
      <pubDate>` + recent + `</pubDate>
    </item>
    <item>
      <title>Fed speech from last month</title>
      <link>https://example.com/old-fed</link>
      <description>Monetary policy remarks.</description>
      <pubDate>Mon, 01 Jan 2024 10:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feed))
	}))
	defer server.Close()

	client := NewClient("", logger.New(logger.Config{Level: "error"}))
	client.SetFeeds([]string{server.URL})

	articles := client.FetchAll(48 * time.Hour)
	require.Len(t, articles, 1)
	assert.Equal(t, "Gold rises on geopolitical tensions", articles[0].Title)
	assert.Equal(t, "Test Wire", articles[0].Source)
	assert.Equal(t, "https://example.com/gold-rises", articles[0].URL)
	assert.NotEmpty(t, articles[0].PublishedAt)
}

func TestClient_FetchAllSkipsBrokenFeeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("", logger.New(logger.Config{Level: "error"}))
	client.SetFeeds([]string{server.URL})

	assert.Empty(t, client.FetchAll(48*time.Hour))
}
