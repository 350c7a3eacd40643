package events

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/domain"
)

// ArticleRepository stores raw fetched articles awaiting classification by
// the external extractor.
type ArticleRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sql.DB, log zerolog.Logger) *ArticleRepository {
	return &ArticleRepository{
		db:  db,
		log: log.With().Str("repo", "articles").Logger(),
	}
}

// SaveBatch inserts fetched articles, ignoring URLs already stored.
// Returns how many rows were new.
func (r *ArticleRepository) SaveBatch(articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT OR IGNORE INTO articles (url, source, title, summary, published_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	inserted := 0
	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		res, err := tx.Exec(query,
			a.URL,
			a.Source,
			a.Title,
			a.Summary,
			nullString(a.PublishedAt),
			a.FetchedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert article: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit articles: %w", err)
	}

	r.log.Info().Int("fetched", len(articles)).Int("new", inserted).Msg("Articles stored")
	return inserted, nil
}

// ListUnclassified returns stored articles not yet handed to the classifier,
// newest first, at most limit rows.
func (r *ArticleRepository) ListUnclassified(limit int) ([]domain.Article, error) {
	query := `
		SELECT url, source, title, summary, published_at, fetched_at
		FROM articles
		WHERE classified = 0
		ORDER BY published_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var (
			a          domain.Article
			published  sql.NullString
			fetchedRaw string
		)
		if err := rows.Scan(&a.URL, &a.Source, &a.Title, &a.Summary, &published, &fetchedRaw); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		a.PublishedAt = published.String
		if fetched, err := time.Parse(time.RFC3339, fetchedRaw); err == nil {
			a.FetchedAt = fetched
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

// MarkClassified flags an article as consumed by the classifier.
func (r *ArticleRepository) MarkClassified(url string) error {
	if _, err := r.db.Exec("UPDATE articles SET classified = 1 WHERE url = ?", url); err != nil {
		return fmt.Errorf("failed to mark article classified: %w", err)
	}
	return nil
}
