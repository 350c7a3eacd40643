package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/clients/news"
	"github.com/aurumlens/goldlens/internal/modules/events"
)

// NewsSyncJob polls the configured news sources and stores new candidate
// articles for the external classifier.
type NewsSyncJob struct {
	client   *news.Client
	articles *events.ArticleRepository
	maxAge   time.Duration
	log      zerolog.Logger
}

// NewNewsSyncJob creates a news sync job keeping articles younger than maxAge.
func NewNewsSyncJob(client *news.Client, articles *events.ArticleRepository, maxAge time.Duration, log zerolog.Logger) *NewsSyncJob {
	return &NewsSyncJob{
		client:   client,
		articles: articles,
		maxAge:   maxAge,
		log:      log.With().Str("job", "news_sync").Logger(),
	}
}

// Name returns the job name
func (j *NewsSyncJob) Name() string {
	return "news_sync"
}

// Run executes the sync
func (j *NewsSyncJob) Run() error {
	fetched := j.client.FetchAll(j.maxAge)
	if len(fetched) == 0 {
		j.log.Info().Msg("No new articles")
		return nil
	}

	inserted, err := j.articles.SaveBatch(fetched)
	if err != nil {
		return fmt.Errorf("article write failed: %w", err)
	}

	j.log.Info().Int("fetched", len(fetched)).Int("new", inserted).Msg("News sync complete")
	return nil
}
