package attribution

import (
	"sort"

	"github.com/aurumlens/goldlens/pkg/formulas"
)

// normalizationEpsilon keeps the per-day denominator strictly positive when
// every factor's rolling intensity is zero.
const normalizationEpsilon = 1e-6

// InfluenceCurve computes the per-day, per-factor share of rolling intensity.
// For each factor the aligned rows are sorted by date and the trailing sum
// of intensity over the last windowDays rows is taken (growing from a
// one-day window while history is short). Each day's rolling intensities are
// then normalized across factors so they sum to ~1, with a small epsilon in
// the denominator so days with no activity anywhere stay defined. Output is
// ordered by factor code, then date.
func InfluenceCurve(aligned []AlignedRecord, windowDays int) []InfluenceRecord {
	if len(aligned) == 0 || windowDays < 1 {
		return []InfluenceRecord{}
	}

	factorOrder := make([]string, 0)
	byFactor := make(map[string][]AlignedRecord)
	for _, rec := range aligned {
		if _, ok := byFactor[rec.FactorCode]; !ok {
			factorOrder = append(factorOrder, rec.FactorCode)
		}
		byFactor[rec.FactorCode] = append(byFactor[rec.FactorCode], rec)
	}
	sort.Strings(factorOrder)

	curve := make([]InfluenceRecord, 0, len(aligned))
	dailyTotals := make(map[string]float64)

	for _, factor := range factorOrder {
		rows := byFactor[factor]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

		intensities := make([]float64, len(rows))
		for i, rec := range rows {
			intensities[i] = rec.Intensity
		}
		rolling := formulas.TrailingSum(intensities, windowDays)

		for i, rec := range rows {
			curve = append(curve, InfluenceRecord{
				Date:             rec.Date,
				FactorCode:       rec.FactorCode,
				RollingIntensity: rolling[i],
				Score:            rec.Score,
				Price:            rec.Price,
			})
			dailyTotals[rec.Day()] += rolling[i]
		}
	}

	for i := range curve {
		total := dailyTotals[curve[i].Date.Format(DateLayout)]
		curve[i].NormalizedInfluence = curve[i].RollingIntensity / (total + normalizationEpsilon)
	}

	return curve
}
