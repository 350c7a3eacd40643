package attribution

import (
	"github.com/aurumlens/goldlens/internal/domain"
	"github.com/aurumlens/goldlens/internal/modules/taxonomy"
	"github.com/aurumlens/goldlens/pkg/formulas"
)

// marketVolatilityMultiplier scales event impact by the market environment.
// Held at 1.0 for now; the seam exists so a volatility-index based
// adjustment can slot in without touching the formula.
const marketVolatilityMultiplier = 1.0

// neutralComponent is the fallback for strength/confidence when an event
// carries no factor tags, and for unrecognized event types.
const neutralComponent = 0.5

// Scorer converts one classified event into a scalar impact score.
type Scorer struct {
	tax *taxonomy.Taxonomy
}

// NewScorer creates a scorer bound to a taxonomy.
func NewScorer(tax *taxonomy.Taxonomy) *Scorer {
	return &Scorer{tax: tax}
}

// Score computes the impact score of an event:
//
//	impact = type_importance × max_strength × avg_confidence × volatility_multiplier
//
// rounded to 3 decimal places. Unknown event types and tag-less events fall
// back to 0.5 components, so the result is always defined. Pure function of
// the event and the taxonomy.
func (s *Scorer) Score(event domain.Event) float64 {
	typeImportance := s.tax.TypeImportance(event.EventType)

	maxStrength := neutralComponent
	avgConfidence := neutralComponent
	if len(event.FactorTags) > 0 {
		maxStrength = event.FactorTags[0].Strength
		confidences := make([]float64, len(event.FactorTags))
		for i, tag := range event.FactorTags {
			if tag.Strength > maxStrength {
				maxStrength = tag.Strength
			}
			confidences[i] = tag.Confidence
		}
		avgConfidence = formulas.Mean(confidences)
	}

	impact := typeImportance * maxStrength * avgConfidence * marketVolatilityMultiplier
	return formulas.Round3(impact)
}
