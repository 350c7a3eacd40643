package attribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumlens/goldlens/internal/domain"
	"github.com/aurumlens/goldlens/internal/modules/taxonomy"
	"github.com/aurumlens/goldlens/pkg/logger"
)

func testPipeline() *Pipeline {
	log := logger.New(logger.Config{Level: "error"})
	return NewPipeline(taxonomy.Default(), log)
}

func TestPipeline_SingleDayTwoFactors(t *testing.T) {
	p := testPipeline()

	// Two events of equal impact, opposite polarity, on the same day.
	events := []domain.Event{
		{
			EventType:    "UNKNOWN", // importance 0.5
			TimestampUTC: "2024-01-01T10:00:00Z",
			FactorTags: []domain.FactorTag{
				{Factor: "A1_REAL_YIELD", Polarity: "+", Strength: 0.5, Confidence: 1.0},
			},
		},
		{
			EventType:    "UNKNOWN",
			TimestampUTC: "2024-01-01T11:00:00Z",
			FactorTags: []domain.FactorTag{
				{Factor: "A2_POLICY_PATH", Polarity: "-", Strength: 0.5, Confidence: 1.0},
			},
		},
	}

	result := p.Run(events, map[string]float64{"2024-01-01": 2000.0}, Params{
		Start: day("2024-01-01"), End: day("2024-01-01"),
		WindowDays: 7, TopN: 5, RecentDays: 7,
	})

	require.Len(t, result.DailyFactors, 2)
	byFactor := make(map[string]FactorDayRecord)
	for _, rec := range result.DailyFactors {
		byFactor[rec.FactorCode] = rec
	}

	// impact = round3(0.5*0.5*1.0) = 0.25; signed = ±0.125
	assert.InDelta(t, 0.125, byFactor["A1_REAL_YIELD"].Score, 1e-9)
	assert.InDelta(t, -0.125, byFactor["A2_POLICY_PATH"].Score, 1e-9)
	assert.InDelta(t, byFactor["A1_REAL_YIELD"].Intensity, byFactor["A2_POLICY_PATH"].Intensity, 1e-9)

	// Equal intensity means an equal share of influence.
	require.Len(t, result.Curve, 2)
	for _, rec := range result.Curve {
		assert.InDelta(t, 0.5, rec.NormalizedInfluence, 1e-4)
	}

	require.Len(t, result.TopFactors, 2)
	assert.Equal(t, "A1_REAL_YIELD", result.TopFactors[0].FactorCode)
}

func TestPipeline_Deterministic(t *testing.T) {
	p := testPipeline()

	events := []domain.Event{
		{
			EventType:    "CENTRAL_BANK_DECISION",
			TimestampUTC: "2024-01-02T14:00:00Z",
			FactorTags: []domain.FactorTag{
				{Factor: "A1_REAL_YIELD", Polarity: "-", Strength: 0.8, Confidence: 0.9},
				{Factor: "A2_POLICY_PATH", Polarity: "+", Strength: 0.7, Confidence: 0.8},
			},
		},
		{
			EventType:    "GEOPOLITICAL_ESCALATION",
			TimestampUTC: "2024-01-04T06:00:00Z",
			FactorTags: []domain.FactorTag{
				{Factor: "C1_GEOPOLITICAL_RISK", Polarity: "+", Strength: 0.9, Confidence: 0.85},
			},
		},
	}
	prices := map[string]float64{
		"2024-01-02": 2031.5,
		"2024-01-03": 2040.0,
		"2024-01-05": 2048.25,
	}
	params := Params{
		Start: day("2024-01-01"), End: day("2024-01-07"),
		WindowDays: 3, TopN: 5, RecentDays: 7,
	}

	first := p.Run(events, prices, params)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, p.Run(events, prices, params))
	}

	// 7 days x 3 factors.
	assert.Len(t, first.Aligned, 21)
	assert.Len(t, first.Curve, 21)
}

func TestPipeline_EmptyEvents(t *testing.T) {
	p := testPipeline()

	result := p.Run(nil, map[string]float64{"2024-01-01": 2000.0}, Params{
		Start: day("2024-01-01"), End: day("2024-01-31"),
		WindowDays: 7, TopN: 5, RecentDays: 7,
	})

	assert.Empty(t, result.DailyFactors)
	assert.Empty(t, result.Aligned)
	assert.Empty(t, result.Curve)
	assert.Empty(t, result.TopFactors)
}

func TestPipeline_ZeroEventFactorStaysNeutral(t *testing.T) {
	p := testPipeline()

	// C1 fires once early in the range; A1 fires daily. C1's zero tail must
	// not distort A1's share on later days.
	events := []domain.Event{
		{
			EventType:    "GEOPOLITICAL_ESCALATION",
			TimestampUTC: "2024-01-01T00:00:00Z",
			FactorTags: []domain.FactorTag{
				{Factor: "C1_GEOPOLITICAL_RISK", Polarity: "+", Strength: 0.5, Confidence: 0.5},
			},
		},
		{
			EventType:    "MACRO_DATA_RELEASE",
			TimestampUTC: "2024-01-10T00:00:00Z",
			FactorTags: []domain.FactorTag{
				{Factor: "A1_REAL_YIELD", Polarity: "-", Strength: 0.8, Confidence: 0.9},
			},
		},
	}

	result := p.Run(events, nil, Params{
		Start: day("2024-01-01"), End: day("2024-01-10"),
		WindowDays: 2, TopN: 5, RecentDays: 1,
	})

	// On Jan 10 the C1 rolling window holds only zeros.
	for _, rec := range result.Curve {
		if rec.Day() != "2024-01-10" {
			continue
		}
		switch rec.FactorCode {
		case "A1_REAL_YIELD":
			assert.InDelta(t, 1.0, rec.NormalizedInfluence, 1e-4)
		case "C1_GEOPOLITICAL_RISK":
			assert.Zero(t, rec.NormalizedInfluence)
		}
	}
}
