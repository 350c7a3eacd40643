package events

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/domain"
)

// Repository handles classified event persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new event repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "events").Logger(),
	}
}

// Create inserts a classified event. An id is assigned when the classifier
// did not supply one.
func (r *Repository) Create(event domain.Event) (string, error) {
	id := strings.TrimSpace(event.ID)
	if id == "" {
		id = "evt_" + uuid.NewString()
	}

	tags, err := json.Marshal(event.FactorTags)
	if err != nil {
		return "", fmt.Errorf("failed to encode factor tags: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO events
		(id, event_type, headline, summary, timestamp_utc, publisher, url, credibility_tier, factor_tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		event.EventType,
		event.Headline,
		event.Summary,
		event.TimestampUTC,
		nullString(event.Source.Publisher),
		nullString(event.Source.URL),
		event.Source.CredibilityTier,
		string(tags),
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	r.log.Info().
		Str("id", id).
		Str("event_type", event.EventType).
		Int("factor_tags", len(event.FactorTags)).
		Msg("Event created")

	return id, nil
}

// ListSince returns events whose raw timestamp sorts on or after the given
// day key (YYYY-MM-DD), oldest first. The comparison is lexicographic, which
// holds for ISO-formatted timestamps; events with unparseable timestamps are
// returned too and left for the aggregator's tolerant date parsing to drop.
func (r *Repository) ListSince(sinceDay string) ([]domain.Event, error) {
	query := `
		SELECT id, event_type, headline, summary, timestamp_utc, publisher, url, credibility_tier, factor_tags, created_at
		FROM events
		WHERE timestamp_utc >= ?
		ORDER BY timestamp_utc ASC
	`

	rows, err := r.db.Query(query, sinceDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// ListAll returns every stored event, oldest first.
func (r *Repository) ListAll() ([]domain.Event, error) {
	query := `
		SELECT id, event_type, headline, summary, timestamp_utc, publisher, url, credibility_tier, factor_tags, created_at
		FROM events
		ORDER BY timestamp_utc ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// Count returns the number of stored events
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *Repository) scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event

	for rows.Next() {
		var (
			event      domain.Event
			headline   sql.NullString
			summary    sql.NullString
			publisher  sql.NullString
			url        sql.NullString
			tagsJSON   string
			createdRaw string
		)

		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&headline,
			&summary,
			&event.TimestampUTC,
			&publisher,
			&url,
			&event.Source.CredibilityTier,
			&tagsJSON,
			&createdRaw,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.Headline = headline.String
		event.Summary = summary.String
		event.Source.Publisher = publisher.String
		event.Source.URL = url.String

		if err := json.Unmarshal([]byte(tagsJSON), &event.FactorTags); err != nil {
			// A single corrupt row must not abort the batch.
			r.log.Warn().Str("id", event.ID).Err(err).Msg("Dropping event with corrupt factor tags")
			continue
		}

		if created, err := time.Parse(time.RFC3339, createdRaw); err == nil {
			event.CreatedAt = created
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
