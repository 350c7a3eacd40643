package events

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/domain"
)

// Handlers provides HTTP handlers for the events module
type Handlers struct {
	repo     *Repository
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandlers creates a new events handlers instance
func NewHandlers(repo *Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo:     repo,
		validate: validator.New(),
		log:      log.With().Str("module", "events_handlers").Logger(),
	}
}

// IngestResponse is returned by the ingest endpoint
type IngestResponse struct {
	Ingested int      `json:"ingested"`
	IDs      []string `json:"ids"`
}

// HandleIngest handles POST /api/events
// Accepts a single classified event or an array of them. Shape validation
// happens here at the boundary; the pipeline itself stays validation-free.
func (h *Handlers) HandleIngest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var batch []domain.Event
	if err := json.Unmarshal(body, &batch); err != nil {
		// Retry as a single object body.
		var single domain.Event
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			h.log.Error().Err(err).Msg("Failed to decode ingest request")
			h.writeError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		batch = []domain.Event{single}
	}

	if len(batch) == 0 {
		h.writeError(w, "No events in request", http.StatusBadRequest)
		return
	}

	ids := make([]string, 0, len(batch))
	for _, event := range batch {
		if err := h.validate.Struct(event); err != nil {
			h.writeError(w, "Invalid event: "+err.Error(), http.StatusBadRequest)
			return
		}

		id, err := h.repo.Create(event)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to store event")
			h.writeError(w, "Failed to store event", http.StatusInternalServerError)
			return
		}
		ids = append(ids, id)
	}

	h.writeJSON(w, http.StatusCreated, IngestResponse{Ingested: len(ids), IDs: ids})
}

// HandleList handles GET /api/events
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	since := r.URL.Query().Get("since") // YYYY-MM-DD, optional

	var (
		list []domain.Event
		err  error
	)
	if since != "" {
		list, err = h.repo.ListSince(since)
	} else {
		list, err = h.repo.ListAll()
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list events")
		h.writeError(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	if list == nil {
		list = []domain.Event{}
	}
	h.writeJSON(w, http.StatusOK, list)
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
