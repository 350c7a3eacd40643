package attribution

import (
	"sort"
	"time"

	"github.com/aurumlens/goldlens/internal/domain"
)

// timestampLayouts are tried in order when parsing event timestamps.
// Classifier output is usually RFC3339 but feeds are not uniform about it.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseEventDate parses an event timestamp down to its UTC calendar day.
// The second return is false when no layout matches.
func ParseEventDate(timestamp string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, timestamp)
		if err == nil {
			u := t.UTC()
			return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Aggregator folds classified events into per-day, per-factor records.
type Aggregator struct {
	scorer *Scorer
}

// NewAggregator creates an aggregator using the given scorer.
func NewAggregator(scorer *Scorer) *Aggregator {
	return &Aggregator{scorer: scorer}
}

type dayFactorKey struct {
	day    string
	factor string
}

// Aggregate groups the signed and absolute factor contributions of events by
// (day, factor). An event's impact is scored once and split across its tags:
// polarity "+" contributes impact×strength, "-" contributes −impact×strength,
// and anything else (neutral or unrecognized) contributes zero. Events whose
// timestamp cannot be parsed are skipped so one malformed record never aborts
// the batch. Output is sorted by date then factor code.
func (a *Aggregator) Aggregate(events []domain.Event) []FactorDayRecord {
	grouped := make(map[dayFactorKey]*FactorDayRecord)

	for _, event := range events {
		date, ok := ParseEventDate(event.TimestampUTC)
		if !ok {
			continue
		}

		impact := a.scorer.Score(event)

		for _, tag := range event.FactorTags {
			var signed float64
			switch tag.Polarity {
			case domain.PolarityBullish:
				signed = impact * tag.Strength
			case domain.PolarityBearish:
				signed = -impact * tag.Strength
			default:
				signed = 0
			}

			key := dayFactorKey{day: date.Format(DateLayout), factor: tag.Factor}
			rec, ok := grouped[key]
			if !ok {
				rec = &FactorDayRecord{Date: date, FactorCode: tag.Factor}
				grouped[key] = rec
			}

			rec.Score += signed
			if signed < 0 {
				rec.Intensity -= signed
			} else {
				rec.Intensity += signed
			}
			rec.EventCount++
		}
	}

	if len(grouped) == 0 {
		return []FactorDayRecord{}
	}

	records := make([]FactorDayRecord, 0, len(grouped))
	for _, rec := range grouped {
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].FactorCode < records[j].FactorCode
	})

	return records
}
