package briefing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumlens/goldlens/internal/domain"
	"github.com/aurumlens/goldlens/internal/modules/attribution"
	"github.com/aurumlens/goldlens/internal/modules/taxonomy"
	"github.com/aurumlens/goldlens/pkg/logger"
)

func testService() *Service {
	tax := taxonomy.Default()
	log := logger.New(logger.Config{Level: "error"})
	return NewService(tax, attribution.NewScorer(tax), log)
}

func f(v float64) *float64 { return &v }

func TestService_BuildEmpty(t *testing.T) {
	brief := testService().Build(nil, nil, nil)
	assert.Equal(t, "Today in Gold", brief.Title)
	assert.Empty(t, brief.Date)
	assert.Empty(t, brief.WhatHappened)
}

func TestService_BuildPriceSnapshot(t *testing.T) {
	snapshots := []domain.MarketSnapshot{
		{Date: "2024-01-30", GoldPrice: 2000.0, DXY: f(102.567)},
		{Date: "2024-01-31", GoldPrice: 2020.0, DXY: f(103.123), VIX: f(14.15)},
	}

	brief := testService().Build(snapshots, nil, nil)

	assert.Equal(t, "2024-01-31", brief.Date)
	assert.Equal(t, 2020.0, brief.PriceSnapshot.GoldPrice)
	require.NotNil(t, brief.PriceSnapshot.ChangePct)
	assert.InDelta(t, 1.0, *brief.PriceSnapshot.ChangePct, 1e-9)
	require.NotNil(t, brief.PriceSnapshot.DXY)
	assert.Equal(t, 103.12, *brief.PriceSnapshot.DXY)
	require.NotNil(t, brief.PriceSnapshot.VIX)
	assert.Equal(t, 14.15, *brief.PriceSnapshot.VIX)

	// Not enough history for a 14-day RSI.
	assert.Nil(t, brief.PriceSnapshot.RSI14)
}

func TestService_BuildRanksEventsByImpact(t *testing.T) {
	snapshots := []domain.MarketSnapshot{{Date: "2024-01-31", GoldPrice: 2000}}

	events := []domain.Event{
		{
			EventType: "ETF_FLOW", // importance 0.6
			Headline:  "Minor ETF outflow",
			FactorTags: []domain.FactorTag{
				{Factor: "D1_ETF_FLOWS", Polarity: "-", Strength: 0.3, Confidence: 0.5},
			},
		},
		{
			EventType: "CENTRAL_BANK_DECISION", // importance 0.9
			Headline:  "Fed cuts rates",
			FactorTags: []domain.FactorTag{
				{Factor: "A2_POLICY_PATH", Polarity: "+", Strength: 0.9, Confidence: 0.9},
			},
		},
	}

	brief := testService().Build(snapshots, events, nil)
	require.Len(t, brief.WhatHappened, 2)
	assert.Equal(t, "Fed cuts rates", brief.WhatHappened[0].Headline)
	assert.Equal(t, []string{"A2_POLICY_PATH"}, brief.WhatHappened[0].Factors)
	assert.Greater(t, brief.WhatHappened[0].ImpactScore, brief.WhatHappened[1].ImpactScore)
}

func TestService_BuildWhyMatters(t *testing.T) {
	snapshots := []domain.MarketSnapshot{{Date: "2024-01-31", GoldPrice: 2000}}

	events := []domain.Event{
		{
			EventType: "CENTRAL_BANK_DECISION",
			Headline:  "Fed holds rates, signals caution",
			FactorTags: []domain.FactorTag{
				{Factor: "A1_REAL_YIELD", Polarity: "-", Strength: 0.8, Confidence: 0.9},
			},
		},
	}
	topFactors := []attribution.FactorRank{
		{FactorCode: "A1_REAL_YIELD", AvgInfluence: 0.61234},
		{FactorCode: "X9_UNKNOWN", AvgInfluence: 0.2},
	}

	brief := testService().Build(snapshots, events, topFactors)
	require.Len(t, brief.WhyMatters, 2)

	assert.Equal(t, "Real Yield Expectations", brief.WhyMatters[0].FactorName)
	assert.Equal(t, 0.612, brief.WhyMatters[0].InfluenceScore)
	assert.Equal(t, 1, brief.WhyMatters[0].EventCount)
	assert.Equal(t, "Fed holds rates, signals caution", brief.WhyMatters[0].SampleEvent)

	// Unknown factor codes fall back to the code itself.
	assert.Equal(t, "X9_UNKNOWN", brief.WhyMatters[1].FactorName)
	assert.Zero(t, brief.WhyMatters[1].EventCount)
	assert.Empty(t, brief.WhyMatters[1].SampleEvent)
}

func TestService_BuildWatchNext(t *testing.T) {
	snapshots := []domain.MarketSnapshot{{Date: "2024-01-31", GoldPrice: 2000}}
	brief := testService().Build(snapshots, nil, nil)
	require.Len(t, brief.WatchNext, 3)
	assert.Equal(t, "US CPI", brief.WatchNext[0].Name)
}
