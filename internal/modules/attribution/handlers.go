package attribution

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/config"
)

// Handlers provides HTTP handlers for the attribution module
type Handlers struct {
	service *Service
	cfg     *config.Config
	log     zerolog.Logger
}

// NewHandlers creates a new attribution handlers instance
func NewHandlers(service *Service, cfg *config.Config, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		cfg:     cfg,
		log:     log.With().Str("module", "attribution_handlers").Logger(),
	}
}

// HandleAnalyze handles GET /api/analysis
// Query params: days (lookback), window, top, recent — all optional,
// defaulting to the configured analysis knobs.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	opts := AnalyzeOptions{
		LookbackDays: queryInt(r, "days", h.cfg.LookbackDays),
		WindowDays:   queryInt(r, "window", h.cfg.WindowDays),
		TopN:         queryInt(r, "top", h.cfg.TopFactorCount),
		RecentDays:   queryInt(r, "recent", h.cfg.WindowDays),
	}

	if opts.WindowDays < 1 || opts.LookbackDays < 1 {
		h.writeError(w, "days and window must be >= 1", http.StatusBadRequest)
		return
	}

	analysis, err := h.service.Analyze(opts)
	if err != nil {
		h.log.Error().Err(err).Msg("Analysis failed")
		h.writeError(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
}

// HandleTopFactors handles GET /api/factors/top
func (h *Handlers) HandleTopFactors(w http.ResponseWriter, r *http.Request) {
	opts := AnalyzeOptions{
		LookbackDays: queryInt(r, "days", h.cfg.LookbackDays),
		WindowDays:   h.cfg.WindowDays,
		TopN:         queryInt(r, "n", h.cfg.TopFactorCount),
		RecentDays:   queryInt(r, "recent", h.cfg.WindowDays),
	}

	analysis, err := h.service.Analyze(opts)
	if err != nil {
		h.log.Error().Err(err).Msg("Top factor ranking failed")
		h.writeError(w, "Ranking failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, analysis.TopFactors)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, msg string, status int) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
