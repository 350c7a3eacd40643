package prices

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/domain"
)

// Repository handles aligned market snapshot persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new prices repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "prices").Logger(),
	}
}

// UpsertSnapshots writes a batch of aligned daily snapshots, replacing any
// existing rows for the same dates.
func (r *Repository) UpsertSnapshots(snapshots []domain.MarketSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO market_snapshots (date, gold_price, dxy, treasury_yield, vix, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			gold_price = excluded.gold_price,
			dxy = excluded.dxy,
			treasury_yield = excluded.treasury_yield,
			vix = excluded.vix,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	for _, snap := range snapshots {
		if _, err := tx.Exec(query, snap.Date, snap.GoldPrice, snap.DXY, snap.TreasuryYield, snap.VIX, now); err != nil {
			return fmt.Errorf("failed to upsert snapshot %s: %w", snap.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshots: %w", err)
	}

	r.log.Info().Int("rows", len(snapshots)).Msg("Market snapshots stored")
	return nil
}

// GetRange returns snapshots between two day keys inclusive, oldest first.
func (r *Repository) GetRange(startDay, endDay string) ([]domain.MarketSnapshot, error) {
	query := `
		SELECT date, gold_price, dxy, treasury_yield, vix
		FROM market_snapshots
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.MarketSnapshot
	for rows.Next() {
		var (
			snap     domain.MarketSnapshot
			dxy      sql.NullFloat64
			tYield   sql.NullFloat64
			vixValue sql.NullFloat64
		)
		if err := rows.Scan(&snap.Date, &snap.GoldPrice, &dxy, &tYield, &vixValue); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if dxy.Valid {
			snap.DXY = &dxy.Float64
		}
		if tYield.Valid {
			snap.TreasuryYield = &tYield.Float64
		}
		if vixValue.Valid {
			snap.VIX = &vixValue.Float64
		}
		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snapshots, nil
}

// PriceByDay returns the gold price keyed by day for the given range, the
// shape the attribution aligner consumes.
func (r *Repository) PriceByDay(startDay, endDay string) (map[string]float64, error) {
	snapshots, err := r.GetRange(startDay, endDay)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(snapshots))
	for _, snap := range snapshots {
		prices[snap.Date] = snap.GoldPrice
	}
	return prices, nil
}

// Latest returns the most recent n snapshots, oldest first.
func (r *Repository) Latest(n int) ([]domain.MarketSnapshot, error) {
	query := `
		SELECT date FROM market_snapshots ORDER BY date DESC LIMIT 1
	`
	var lastDay string
	err := r.db.QueryRow(query).Scan(&lastDay)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest snapshot: %w", err)
	}

	last, err := time.Parse("2006-01-02", lastDay)
	if err != nil {
		return nil, fmt.Errorf("corrupt snapshot date %q: %w", lastDay, err)
	}

	start := last.AddDate(0, 0, -(n - 1)).Format("2006-01-02")
	return r.GetRange(start, lastDay)
}
