package briefing

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/domain"
	"github.com/aurumlens/goldlens/internal/modules/attribution"
	"github.com/aurumlens/goldlens/internal/modules/taxonomy"
	"github.com/aurumlens/goldlens/pkg/formulas"
)

// maxHighlights caps the "what happened" section
const maxHighlights = 5

// maxWatchEntries caps the calendar section
const maxWatchEntries = 3

// Service assembles daily briefs from already-computed data. It holds no
// repositories itself; handlers feed it the latest snapshots, events and
// analysis so Build stays a pure assembly step.
type Service struct {
	tax    *taxonomy.Taxonomy
	scorer *attribution.Scorer
	log    zerolog.Logger
}

// NewService creates a briefing service
func NewService(tax *taxonomy.Taxonomy, scorer *attribution.Scorer, log zerolog.Logger) *Service {
	return &Service{
		tax:    tax,
		scorer: scorer,
		log:    log.With().Str("service", "briefing").Logger(),
	}
}

// Build assembles a brief. snapshots must be ordered oldest first; the last
// one is "today". Returns a zero-value brief when no snapshots exist.
func (s *Service) Build(snapshots []domain.MarketSnapshot, events []domain.Event, topFactors []attribution.FactorRank) Brief {
	brief := Brief{Title: "Today in Gold"}
	if len(snapshots) == 0 {
		return brief
	}

	latest := snapshots[len(snapshots)-1]
	brief.Date = latest.Date
	brief.PriceSnapshot = s.buildPriceSnapshot(snapshots)

	highlights := s.rankEvents(events)
	brief.WhatHappened = highlights
	brief.WhyMatters = s.buildWhyMatters(topFactors, events)
	brief.WatchNext = watchCalendar[:maxWatchEntries]

	return brief
}

func (s *Service) buildPriceSnapshot(snapshots []domain.MarketSnapshot) PriceSnapshot {
	latest := snapshots[len(snapshots)-1]

	snap := PriceSnapshot{
		Date:          latest.Date,
		GoldPrice:     formulas.Round2(latest.GoldPrice),
		DXY:           roundPtr(latest.DXY),
		TreasuryYield: roundPtr(latest.TreasuryYield),
		VIX:           roundPtr(latest.VIX),
	}

	if len(snapshots) > 1 {
		prev := snapshots[len(snapshots)-2]
		if prev.GoldPrice != 0 {
			change := formulas.Round2((latest.GoldPrice - prev.GoldPrice) / prev.GoldPrice * 100)
			snap.ChangePct = &change
		}
	}

	closes := make([]float64, len(snapshots))
	for i, sn := range snapshots {
		closes[i] = sn.GoldPrice
	}
	if rsi := formulas.CalculateRSI(closes, 14); rsi != nil {
		rounded := formulas.Round2(*rsi)
		snap.RSI14 = &rounded
	}

	return snap
}

// rankEvents sorts events by impact score descending and keeps the top few.
// Scoring is pure, so re-scoring here for display is safe.
func (s *Service) rankEvents(events []domain.Event) []EventHighlight {
	type scored struct {
		event domain.Event
		score float64
	}

	ranked := make([]scored, 0, len(events))
	for _, ev := range events {
		ranked = append(ranked, scored{event: ev, score: s.scorer.Score(ev)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > maxHighlights {
		ranked = ranked[:maxHighlights]
	}

	highlights := make([]EventHighlight, 0, len(ranked))
	for _, r := range ranked {
		factors := make([]string, 0, len(r.event.FactorTags))
		for _, tag := range r.event.FactorTags {
			factors = append(factors, tag.Factor)
		}
		highlights = append(highlights, EventHighlight{
			Headline:    r.event.Headline,
			EventType:   r.event.EventType,
			ImpactScore: r.score,
			Factors:     factors,
		})
	}
	return highlights
}

func (s *Service) buildWhyMatters(topFactors []attribution.FactorRank, events []domain.Event) []FactorHighlight {
	highlights := make([]FactorHighlight, 0, len(topFactors))

	for _, rank := range topFactors {
		related := relatedEvents(events, rank.FactorCode)

		h := FactorHighlight{
			FactorCode:     rank.FactorCode,
			FactorName:     s.tax.FactorName(rank.FactorCode),
			InfluenceScore: formulas.Round3(rank.AvgInfluence),
			EventCount:     len(related),
		}
		if len(related) > 0 {
			h.SampleEvent = related[0].Headline
		}
		highlights = append(highlights, h)
	}

	return highlights
}

func relatedEvents(events []domain.Event, factorCode string) []domain.Event {
	var related []domain.Event
	for _, ev := range events {
		for _, tag := range ev.FactorTags {
			if tag.Factor == factorCode {
				related = append(related, ev)
				break
			}
		}
	}
	return related
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	rounded := formulas.Round2(*v)
	return &rounded
}
