package attribution

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/modules/events"
	"github.com/aurumlens/goldlens/internal/modules/prices"
)

// Service runs the attribution pipeline over the stored events and price
// snapshots and records each run.
type Service struct {
	pipeline   *Pipeline
	eventsRepo *events.Repository
	pricesRepo *prices.Repository
	db         *sql.DB
	log        zerolog.Logger
}

// NewService creates an attribution service
func NewService(pipeline *Pipeline, eventsRepo *events.Repository, pricesRepo *prices.Repository, db *sql.DB, log zerolog.Logger) *Service {
	return &Service{
		pipeline:   pipeline,
		eventsRepo: eventsRepo,
		pricesRepo: pricesRepo,
		db:         db,
		log:        log.With().Str("service", "attribution").Logger(),
	}
}

// AnalyzeOptions control one stored-data analysis.
type AnalyzeOptions struct {
	LookbackDays int
	WindowDays   int
	TopN         int
	RecentDays   int
}

// Analysis is a pipeline result plus the window it was computed over.
type Analysis struct {
	Result
	Start      time.Time `json:"start_date"`
	End        time.Time `json:"end_date"`
	WindowDays int       `json:"window_days"`
	EventCount int       `json:"event_count"`
}

// Analyze loads events and prices for the trailing lookback window, clamps
// the range to the stored price span when one exists (so factors are
// densified exactly over the days prices cover), runs the pipeline, and
// records the run.
func (s *Service) Analyze(opts AnalyzeOptions) (*Analysis, error) {
	end := truncateToDay(time.Now().UTC())
	start := end.AddDate(0, 0, -opts.LookbackDays)

	snapshots, err := s.pricesRepo.GetRange(start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load price snapshots: %w", err)
	}
	if len(snapshots) > 0 {
		if first, err := time.Parse(DateLayout, snapshots[0].Date); err == nil {
			start = first
		}
		if last, err := time.Parse(DateLayout, snapshots[len(snapshots)-1].Date); err == nil {
			end = last
		}
	}

	priceByDay := make(map[string]float64, len(snapshots))
	for _, snap := range snapshots {
		priceByDay[snap.Date] = snap.GoldPrice
	}

	eventList, err := s.eventsRepo.ListSince(start.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	result := s.pipeline.Run(eventList, priceByDay, Params{
		Start:      start,
		End:        end,
		WindowDays: opts.WindowDays,
		TopN:       opts.TopN,
		RecentDays: opts.RecentDays,
	})

	analysis := &Analysis{
		Result:     result,
		Start:      start,
		End:        end,
		WindowDays: opts.WindowDays,
		EventCount: len(eventList),
	}

	if err := s.recordRun(analysis); err != nil {
		// The analysis itself is good; a failed audit row is not fatal.
		s.log.Warn().Err(err).Msg("Failed to record analysis run")
	}

	return analysis, nil
}

func (s *Service) recordRun(a *Analysis) error {
	top, err := json.Marshal(a.TopFactors)
	if err != nil {
		return fmt.Errorf("failed to encode top factors: %w", err)
	}

	query := `
		INSERT INTO analysis_runs (run_at, start_date, end_date, window_days, event_count, curve_points, top_factors)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		time.Now().UTC().Format(time.RFC3339),
		a.Start.Format(DateLayout),
		a.End.Format(DateLayout),
		a.WindowDays,
		a.EventCount,
		len(a.Curve),
		string(top),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return nil
}
