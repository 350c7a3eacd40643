package attribution

import (
	"sort"
	"time"
)

// Densify expands sparse factor-day records into a dense grid with one row
// per calendar day in [start, end] for every factor seen in records. Days
// without activity get zero score, intensity, and event count, so rolling
// windows and cross-factor normalization are defined on every day. The range
// is caller-supplied (normally the price series' span); a factor that never
// fired inside it still yields a flat zero line. Empty input yields empty
// output: without at least one factor there is nothing to expand.
func Densify(records []FactorDayRecord, start, end time.Time) []FactorDayRecord {
	if len(records) == 0 {
		return []FactorDayRecord{}
	}

	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return []FactorDayRecord{}
	}

	factorSet := make(map[string]bool)
	byKey := make(map[dayFactorKey]FactorDayRecord, len(records))
	for _, rec := range records {
		factorSet[rec.FactorCode] = true
		byKey[dayFactorKey{day: rec.Day(), factor: rec.FactorCode}] = rec
	}

	factors := make([]string, 0, len(factorSet))
	for code := range factorSet {
		factors = append(factors, code)
	}
	sort.Strings(factors)

	days := int(end.Sub(start).Hours()/24) + 1
	dense := make([]FactorDayRecord, 0, days*len(factors))

	for _, factor := range factors {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := dayFactorKey{day: d.Format(DateLayout), factor: factor}
			if rec, ok := byKey[key]; ok {
				dense = append(dense, rec)
				continue
			}
			dense = append(dense, FactorDayRecord{Date: d, FactorCode: factor})
		}
	}

	return dense
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
