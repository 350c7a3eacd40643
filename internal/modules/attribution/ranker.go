package attribution

import (
	"sort"

	"github.com/aurumlens/goldlens/pkg/formulas"
)

// TopFactors ranks factors by their average normalized influence over the
// trailing recentDays of the curve (rows strictly after maxDate−recentDays).
// Results are sorted by average influence descending; ties break on factor
// code ascending so repeated runs rank identically. At most topN entries are
// returned, and an empty curve yields an empty ranking.
func TopFactors(curve []InfluenceRecord, topN, recentDays int) []FactorRank {
	if len(curve) == 0 || topN < 1 {
		return []FactorRank{}
	}

	maxDate := curve[0].Date
	for _, rec := range curve[1:] {
		if rec.Date.After(maxDate) {
			maxDate = rec.Date
		}
	}
	cutoff := maxDate.AddDate(0, 0, -recentDays)

	influences := make(map[string][]float64)
	for _, rec := range curve {
		if !rec.Date.After(cutoff) {
			continue
		}
		influences[rec.FactorCode] = append(influences[rec.FactorCode], rec.NormalizedInfluence)
	}

	ranks := make([]FactorRank, 0, len(influences))
	for code, values := range influences {
		ranks = append(ranks, FactorRank{
			FactorCode:   code,
			AvgInfluence: formulas.Mean(values),
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].AvgInfluence != ranks[j].AvgInfluence {
			return ranks[i].AvgInfluence > ranks[j].AvgInfluence
		}
		return ranks[i].FactorCode < ranks[j].FactorCode
	})

	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	return ranks
}
