package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/config"
	"github.com/aurumlens/goldlens/internal/modules/attribution"
)

// AnalysisJob runs the daily attribution analysis over the stored events and
// prices, so the run history stays fresh even if nobody hits the API.
type AnalysisJob struct {
	service *attribution.Service
	cfg     *config.Config
	log     zerolog.Logger
}

// NewAnalysisJob creates an analysis job
func NewAnalysisJob(service *attribution.Service, cfg *config.Config, log zerolog.Logger) *AnalysisJob {
	return &AnalysisJob{
		service: service,
		cfg:     cfg,
		log:     log.With().Str("job", "analysis").Logger(),
	}
}

// Name returns the job name
func (j *AnalysisJob) Name() string {
	return "analysis"
}

// Run executes the analysis
func (j *AnalysisJob) Run() error {
	analysis, err := j.service.Analyze(attribution.AnalyzeOptions{
		LookbackDays: j.cfg.LookbackDays,
		WindowDays:   j.cfg.WindowDays,
		TopN:         j.cfg.TopFactorCount,
		RecentDays:   j.cfg.WindowDays,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	top := ""
	if len(analysis.TopFactors) > 0 {
		top = analysis.TopFactors[0].FactorCode
	}

	j.log.Info().
		Int("events", analysis.EventCount).
		Int("curve_points", len(analysis.Curve)).
		Str("top_factor", top).
		Msg("Daily analysis complete")

	return nil
}
