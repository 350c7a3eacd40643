package marketdata

import (
	"github.com/aurumlens/goldlens/internal/domain"
)

// AlignSeries merges the context series onto the gold date axis: one
// snapshot per gold trading day, with DXY/yield/VIX forward-filled through
// days where their own feed had no value. Context days before any known
// value stay nil. Returns nil when there is no gold series to align to.
func AlignSeries(data MarketData) []domain.MarketSnapshot {
	if len(data.Gold) == 0 {
		return nil
	}

	dxy := indexByDate(data.DollarIndex)
	tYield := indexByDate(data.TreasuryYield)
	vix := indexByDate(data.VIX)

	snapshots := make([]domain.MarketSnapshot, 0, len(data.Gold))
	var lastDXY, lastYield, lastVIX *float64

	for _, candle := range data.Gold {
		if v, ok := dxy[candle.Date]; ok {
			lastDXY = copyFloat(v)
		}
		if v, ok := tYield[candle.Date]; ok {
			lastYield = copyFloat(v)
		}
		if v, ok := vix[candle.Date]; ok {
			lastVIX = copyFloat(v)
		}

		snapshots = append(snapshots, domain.MarketSnapshot{
			Date:          candle.Date,
			GoldPrice:     candle.Close,
			DXY:           copyPtr(lastDXY),
			TreasuryYield: copyPtr(lastYield),
			VIX:           copyPtr(lastVIX),
		})
	}

	return snapshots
}

func indexByDate(candles []Candle) map[string]float64 {
	m := make(map[string]float64, len(candles))
	for _, c := range candles {
		m[c.Date] = c.Close
	}
	return m
}

func copyFloat(v float64) *float64 {
	return &v
}

func copyPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
