package briefing

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/config"
	"github.com/aurumlens/goldlens/internal/modules/attribution"
	"github.com/aurumlens/goldlens/internal/modules/events"
	"github.com/aurumlens/goldlens/internal/modules/prices"
)

// snapshotHistoryDays is how much price history the brief loads; enough for
// the day-over-day change and a 14-day RSI.
const snapshotHistoryDays = 30

// Handlers provides HTTP handlers for the briefing module
type Handlers struct {
	service     *Service
	attribution *attribution.Service
	eventsRepo  *events.Repository
	pricesRepo  *prices.Repository
	cfg         *config.Config
	log         zerolog.Logger
}

// NewHandlers creates a new briefing handlers instance
func NewHandlers(service *Service, attr *attribution.Service, eventsRepo *events.Repository, pricesRepo *prices.Repository, cfg *config.Config, log zerolog.Logger) *Handlers {
	return &Handlers{
		service:     service,
		attribution: attr,
		eventsRepo:  eventsRepo,
		pricesRepo:  pricesRepo,
		cfg:         cfg,
		log:         log.With().Str("module", "briefing_handlers").Logger(),
	}
}

// HandleBrief handles GET /api/brief
func (h *Handlers) HandleBrief(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.pricesRepo.Latest(snapshotHistoryDays)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load snapshots")
		h.writeError(w, "Failed to load market data", http.StatusInternalServerError)
		return
	}

	analysis, err := h.attribution.Analyze(attribution.AnalyzeOptions{
		LookbackDays: h.cfg.LookbackDays,
		WindowDays:   h.cfg.WindowDays,
		TopN:         h.cfg.TopFactorCount,
		RecentDays:   h.cfg.WindowDays,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to run analysis for brief")
		h.writeError(w, "Failed to run analysis", http.StatusInternalServerError)
		return
	}

	eventList, err := h.eventsRepo.ListSince(analysis.Start.Format(attribution.DateLayout))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load events")
		h.writeError(w, "Failed to load events", http.StatusInternalServerError)
		return
	}

	brief := h.service.Build(snapshots, eventList, analysis.TopFactors)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(brief); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode brief")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
