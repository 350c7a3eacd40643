package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/database"
	"github.com/aurumlens/goldlens/internal/scheduler"
)

// SystemHandlers handles system-wide monitoring and job trigger endpoints
type SystemHandlers struct {
	log          zerolog.Logger
	databasePath string
	historyDir   string
	db           *database.DB
	scheduler    *scheduler.Scheduler
	// Jobs (set after job registration in main.go)
	marketSyncJob scheduler.Job
	newsSyncJob   scheduler.Job
	analysisJob   scheduler.Job
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(
	log zerolog.Logger,
	databasePath string,
	historyDir string,
	db *database.DB,
	sched *scheduler.Scheduler,
) *SystemHandlers {
	return &SystemHandlers{
		log:          log.With().Str("component", "system_handlers").Logger(),
		databasePath: databasePath,
		historyDir:   historyDir,
		db:           db,
		scheduler:    sched,
	}
}

// SetJobs registers job references for manual triggering
// Called after jobs are registered in main.go
func (h *SystemHandlers) SetJobs(marketSync, newsSync, analysis scheduler.Job) {
	h.marketSyncJob = marketSync
	h.newsSyncJob = newsSync
	h.analysisJob = analysis
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	EventCount    int     `json:"event_count"`
	SnapshotCount int     `json:"snapshot_count"`
	ArticleCount  int     `json:"article_count"`
	LatestPrice   string  `json:"latest_price_date,omitempty"`
	LastAnalysis  string  `json:"last_analysis,omitempty"`
	HistoryDBs    int     `json:"history_dbs"`
	DatabaseMB    float64 `json:"database_mb"`
}

// HandleSystemStatus returns comprehensive system status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	response := SystemStatusResponse{}

	if err := h.db.Conn().QueryRow(`SELECT COUNT(*) FROM events`).Scan(&response.EventCount); err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to count events")
	}

	var latest sql.NullString
	err := h.db.Conn().QueryRow(`SELECT COUNT(*), MAX(date) FROM market_snapshots`).
		Scan(&response.SnapshotCount, &latest)
	if err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to count snapshots")
	}
	if latest.Valid {
		response.LatestPrice = latest.String
	}

	if err := h.db.Conn().QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&response.ArticleCount); err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to count articles")
	}

	var lastRun sql.NullString
	err = h.db.Conn().QueryRow(`SELECT MAX(run_at) FROM analysis_runs`).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to query analysis runs")
	}
	if lastRun.Valid {
		if t, err := time.Parse(time.RFC3339, lastRun.String); err == nil {
			response.LastAnalysis = t.Format("2006-01-02 15:04")
		} else {
			response.LastAnalysis = lastRun.String
		}
	}

	// Count per-instrument history databases
	if entries, err := os.ReadDir(h.historyDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && filepath.Ext(entry.Name()) == ".db" {
				response.HistoryDBs++
			}
		}
	}

	if info, err := os.Stat(h.databasePath); err == nil {
		response.DatabaseMB = float64(info.Size()) / 1024 / 1024
	}

	h.writeJSON(w, response)
}

// HandleTriggerMarketSync triggers the market sync job immediately
// POST /api/jobs/market-sync
func (h *SystemHandlers) HandleTriggerMarketSync(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, h.marketSyncJob, "market sync")
}

// HandleTriggerNewsSync triggers the news sync job immediately
// POST /api/jobs/news-sync
func (h *SystemHandlers) HandleTriggerNewsSync(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, h.newsSyncJob, "news sync")
}

// HandleTriggerAnalysis triggers the analysis job immediately
// POST /api/jobs/analysis
func (h *SystemHandlers) HandleTriggerAnalysis(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, h.analysisJob, "analysis")
}

func (h *SystemHandlers) triggerJob(w http.ResponseWriter, job scheduler.Job, label string) {
	if job == nil {
		h.log.Warn().Str("job", label).Msg("Job not registered yet")
		h.writeJSON(w, map[string]string{
			"status":  "error",
			"message": label + " job not registered",
		})
		return
	}

	h.log.Info().Str("job", label).Msg("Manual job triggered")

	if err := h.scheduler.RunNow(job); err != nil {
		h.log.Error().Err(err).Str("job", label).Msg("Failed to trigger job")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{
		"status":  "success",
		"message": label + " triggered successfully",
	})
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
