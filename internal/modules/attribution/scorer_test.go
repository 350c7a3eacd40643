package attribution

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aurumlens/goldlens/internal/domain"
	"github.com/aurumlens/goldlens/internal/modules/taxonomy"
)

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(taxonomy.Default())

	tests := []struct {
		name  string
		event domain.Event
		want  float64
	}{
		{
			name: "single tag",
			event: domain.Event{
				EventType: "ETF_FLOW", // importance 0.6
				FactorTags: []domain.FactorTag{
					{Factor: "D1_ETF_FLOWS", Polarity: "+", Strength: 0.8, Confidence: 0.9},
				},
			},
			want: 0.432, // round3(0.6 * 0.8 * 0.9 * 1.0)
		},
		{
			name: "max strength and mean confidence across tags",
			event: domain.Event{
				EventType: "CENTRAL_BANK_DECISION", // importance 0.9
				FactorTags: []domain.FactorTag{
					{Factor: "A1_REAL_YIELD", Polarity: "-", Strength: 0.8, Confidence: 0.9},
					{Factor: "A2_POLICY_PATH", Polarity: "+", Strength: 0.7, Confidence: 0.8},
				},
			},
			want: 0.612, // round3(0.9 * 0.8 * 0.85)
		},
		{
			name: "unknown event type falls back to 0.5",
			event: domain.Event{
				EventType: "ALIEN_LANDING",
				FactorTags: []domain.FactorTag{
					{Factor: "C1_GEOPOLITICAL_RISK", Polarity: "+", Strength: 1.0, Confidence: 1.0},
				},
			},
			want: 0.5,
		},
		{
			name:  "no tags falls back to neutral strength and confidence",
			event: domain.Event{EventType: "CENTRAL_BANK_DECISION"},
			want:  0.225, // round3(0.9 * 0.5 * 0.5)
		},
		{
			name:  "unknown type and no tags",
			event: domain.Event{EventType: "UNKNOWN"},
			want:  0.125, // round3(0.5 * 0.5 * 0.5)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.Score(tt.event))
		})
	}
}

func TestScorer_ScoreIsIdempotent(t *testing.T) {
	scorer := NewScorer(taxonomy.Default())
	event := domain.Event{
		EventType: "MACRO_DATA_RELEASE",
		FactorTags: []domain.FactorTag{
			{Factor: "A3_INFLATION_EXP", Polarity: "+", Strength: 0.9, Confidence: 0.7},
		},
	}

	first := scorer.Score(event)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, scorer.Score(event))
	}
}

func TestScorer_OutOfRangeInputsUsedAsGiven(t *testing.T) {
	scorer := NewScorer(taxonomy.Default())
	event := domain.Event{
		EventType: "ETF_FLOW",
		FactorTags: []domain.FactorTag{
			{Factor: "D1_ETF_FLOWS", Polarity: "+", Strength: 1.5, Confidence: 1.0},
		},
	}

	// No re-clamping: 0.6 * 1.5 * 1.0 = 0.9
	assert.Equal(t, 0.9, scorer.Score(event))
}
