package formulas

import (
	"github.com/markcheno/go-talib"
)

// CalculateRSI calculates the Relative Strength Index over closing prices.
// Returns nil when there is not enough history for the requested length.
func CalculateRSI(closes []float64, length int) *float64 {
	if len(closes) < length+1 {
		return nil
	}

	rsi := talib.Rsi(closes, length)
	if len(rsi) == 0 {
		return nil
	}

	last := rsi[len(rsi)-1]
	if isNaN(last) {
		return nil
	}
	return &last
}

// CalculateSMA calculates the simple moving average over closing prices.
// Returns nil when there is not enough history for the requested length.
func CalculateSMA(closes []float64, length int) *float64 {
	if len(closes) < length || length < 1 {
		return nil
	}

	sma := talib.Sma(closes, length)
	if len(sma) == 0 {
		return nil
	}

	last := sma[len(sma)-1]
	if isNaN(last) {
		return nil
	}
	return &last
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
