package attribution

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/domain"
	"github.com/aurumlens/goldlens/internal/modules/taxonomy"
)

// Params controls one pipeline run.
type Params struct {
	Start      time.Time
	End        time.Time
	WindowDays int // rolling intensity window
	TopN       int // ranking size
	RecentDays int // ranking lookback
}

// Result is the complete output of one pipeline run. Each stage's table is
// kept so callers can expose intermediate views without re-running.
type Result struct {
	DailyFactors []FactorDayRecord `json:"daily_factors"`
	Aligned      []AlignedRecord   `json:"-"`
	Curve        []InfluenceRecord `json:"influence_curve"`
	TopFactors   []FactorRank      `json:"top_factors"`
}

// Pipeline is the event-to-influence attribution pipeline: aggregate events
// per day and factor, densify over the date range, align with the price
// series, build the influence curve, rank. It is a deterministic in-memory
// batch transform with no I/O; every stage tolerates empty input and returns
// an empty table rather than an error.
type Pipeline struct {
	scorer     *Scorer
	aggregator *Aggregator
	log        zerolog.Logger
}

// NewPipeline creates a pipeline bound to a taxonomy.
func NewPipeline(tax *taxonomy.Taxonomy, log zerolog.Logger) *Pipeline {
	scorer := NewScorer(tax)
	return &Pipeline{
		scorer:     scorer,
		aggregator: NewAggregator(scorer),
		log:        log.With().Str("component", "attribution_pipeline").Logger(),
	}
}

// Scorer exposes the pipeline's impact scorer for display ranking of
// individual events. Scoring is pure, so repeated calls are safe.
func (p *Pipeline) Scorer() *Scorer {
	return p.scorer
}

// Run executes the full pipeline over the given events and price series.
func (p *Pipeline) Run(events []domain.Event, priceByDay map[string]float64, params Params) Result {
	daily := p.aggregator.Aggregate(events)
	dense := Densify(daily, params.Start, params.End)
	aligned := AlignWithPrice(dense, priceByDay)
	curve := InfluenceCurve(aligned, params.WindowDays)
	top := TopFactors(curve, params.TopN, params.RecentDays)

	p.log.Debug().
		Int("events", len(events)).
		Int("factor_days", len(daily)).
		Int("dense_rows", len(dense)).
		Int("curve_points", len(curve)).
		Msg("Pipeline run complete")

	return Result{
		DailyFactors: daily,
		Aligned:      aligned,
		Curve:        curve,
		TopFactors:   top,
	}
}
