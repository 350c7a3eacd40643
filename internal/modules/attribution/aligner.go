package attribution

import "sort"

// AlignWithPrice left-joins the dense factor series against the tracked
// price series keyed by day (YYYY-MM-DD). Every dense row is kept. Within
// each factor group, ordered by date, the price is forward-filled through
// non-trading days; rows before the first known trading value keep a nil
// price. PriceChangePct is the day-over-day percent change of the filled
// price within the factor group, nil whenever the previous row has no price.
func AlignWithPrice(series []FactorDayRecord, priceByDay map[string]float64) []AlignedRecord {
	if len(series) == 0 {
		return []AlignedRecord{}
	}

	factorOrder := make([]string, 0)
	byFactor := make(map[string][]FactorDayRecord)
	for _, rec := range series {
		if _, ok := byFactor[rec.FactorCode]; !ok {
			factorOrder = append(factorOrder, rec.FactorCode)
		}
		byFactor[rec.FactorCode] = append(byFactor[rec.FactorCode], rec)
	}
	sort.Strings(factorOrder)

	aligned := make([]AlignedRecord, 0, len(series))

	for _, factor := range factorOrder {
		rows := byFactor[factor]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

		var lastPrice *float64
		var prevPrice *float64

		for _, rec := range rows {
			if p, ok := priceByDay[rec.Day()]; ok {
				v := p
				lastPrice = &v
			}

			out := AlignedRecord{FactorDayRecord: rec}
			if lastPrice != nil {
				v := *lastPrice
				out.Price = &v
			}

			if out.Price != nil && prevPrice != nil && *prevPrice != 0 {
				change := (*out.Price - *prevPrice) / *prevPrice * 100
				out.PriceChangePct = &change
			}
			prevPrice = out.Price

			aligned = append(aligned, out)
		}
	}

	return aligned
}
