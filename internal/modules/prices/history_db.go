package prices

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"
)

// HistoryDB stores raw per-instrument daily closes, one database file per
// instrument under the history directory. The aligned snapshot table in the
// app database is derived from these; the raw files are kept so the
// alignment can be rebuilt without refetching.
type HistoryDB struct {
	historyDir string
	log        zerolog.Logger
}

// NewHistoryDB creates a new history database accessor
func NewHistoryDB(historyDir string, log zerolog.Logger) *HistoryDB {
	return &HistoryDB{
		historyDir: historyDir,
		log:        log.With().Str("component", "history_db").Logger(),
	}
}

// DailyClose is one raw close for one instrument
type DailyClose struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// SaveDailyCloses upserts raw closes for an instrument
func (h *HistoryDB) SaveDailyCloses(instrument string, closes []DailyClose) error {
	if len(closes) == 0 {
		return nil
	}

	db, err := h.open(instrument)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO daily_closes (date, close)
		VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET close = excluded.close
	`
	for _, c := range closes {
		if _, err := tx.Exec(query, c.Date, c.Close); err != nil {
			return fmt.Errorf("failed to upsert close %s: %w", c.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit closes: %w", err)
	}

	h.log.Debug().Str("instrument", instrument).Int("rows", len(closes)).Msg("History stored")
	return nil
}

// GetDailyCloses fetches the most recent closes for an instrument, oldest
// first, at most limit rows.
func (h *HistoryDB) GetDailyCloses(instrument string, limit int) ([]DailyClose, error) {
	db, err := h.open(instrument)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `
		SELECT date, close FROM (
			SELECT date, close FROM daily_closes ORDER BY date DESC LIMIT ?
		) ORDER BY date ASC
	`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily closes: %w", err)
	}
	defer rows.Close()

	var closes []DailyClose
	for rows.Next() {
		var c DailyClose
		if err := rows.Scan(&c.Date, &c.Close); err != nil {
			return nil, fmt.Errorf("failed to scan daily close: %w", err)
		}
		closes = append(closes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily closes: %w", err)
	}

	return closes, nil
}

func (h *HistoryDB) open(instrument string) (*sql.DB, error) {
	if err := os.MkdirAll(h.historyDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	path := filepath.Join(h.historyDir, sanitizeInstrument(instrument)+".db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS daily_closes (
			date TEXT PRIMARY KEY,
			close REAL NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure history schema: %w", err)
	}

	return db, nil
}

// sanitizeInstrument maps instrument symbols like "GC=F" or "^VIX" to safe
// file names.
func sanitizeInstrument(instrument string) string {
	replacer := strings.NewReplacer("=", "_", "^", "", "/", "_", ".", "_")
	return strings.ToLower(replacer.Replace(instrument))
}
