package attribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denseRows(factor string, days ...string) []FactorDayRecord {
	rows := make([]FactorDayRecord, len(days))
	for i, d := range days {
		rows[i] = FactorDayRecord{Date: day(d), FactorCode: factor}
	}
	return rows
}

func TestAlignWithPrice_ForwardFill(t *testing.T) {
	series := denseRows("A1_REAL_YIELD",
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04")

	// Jan 2 and 3 are a weekend with no trading.
	prices := map[string]float64{
		"2024-01-01": 2000.0,
		"2024-01-04": 2020.0,
	}

	aligned := AlignWithPrice(series, prices)
	require.Len(t, aligned, 4)

	require.NotNil(t, aligned[1].Price)
	assert.Equal(t, 2000.0, *aligned[1].Price)
	require.NotNil(t, aligned[2].Price)
	assert.Equal(t, 2000.0, *aligned[2].Price)
	require.NotNil(t, aligned[3].Price)
	assert.Equal(t, 2020.0, *aligned[3].Price)
}

func TestAlignWithPrice_LeadingDaysWithoutPriceStayNil(t *testing.T) {
	series := denseRows("A1_REAL_YIELD", "2024-01-01", "2024-01-02", "2024-01-03")
	prices := map[string]float64{"2024-01-03": 2010.0}

	aligned := AlignWithPrice(series, prices)
	require.Len(t, aligned, 3)

	assert.Nil(t, aligned[0].Price)
	assert.Nil(t, aligned[1].Price)
	require.NotNil(t, aligned[2].Price)
	assert.Equal(t, 2010.0, *aligned[2].Price)

	// No preceding price means no change either.
	assert.Nil(t, aligned[2].PriceChangePct)
}

func TestAlignWithPrice_PriceChangePct(t *testing.T) {
	series := denseRows("A1_REAL_YIELD", "2024-01-01", "2024-01-02", "2024-01-03")
	prices := map[string]float64{
		"2024-01-01": 2000.0,
		"2024-01-02": 2020.0,
		"2024-01-03": 2020.0,
	}

	aligned := AlignWithPrice(series, prices)
	require.Len(t, aligned, 3)

	assert.Nil(t, aligned[0].PriceChangePct)
	require.NotNil(t, aligned[1].PriceChangePct)
	assert.InDelta(t, 1.0, *aligned[1].PriceChangePct, 1e-9)
	require.NotNil(t, aligned[2].PriceChangePct)
	assert.InDelta(t, 0.0, *aligned[2].PriceChangePct, 1e-9)
}

func TestAlignWithPrice_ChangeIsIdenticalAcrossFactors(t *testing.T) {
	series := append(
		denseRows("A1_REAL_YIELD", "2024-01-01", "2024-01-02"),
		denseRows("B1_USD_STRENGTH", "2024-01-01", "2024-01-02")...)
	prices := map[string]float64{
		"2024-01-01": 1000.0,
		"2024-01-02": 1010.0,
	}

	aligned := AlignWithPrice(series, prices)
	require.Len(t, aligned, 4)

	changes := make(map[string]float64)
	for _, rec := range aligned {
		if rec.Day() == "2024-01-02" {
			require.NotNil(t, rec.PriceChangePct)
			changes[rec.FactorCode] = *rec.PriceChangePct
		}
	}
	require.Len(t, changes, 2)
	assert.InDelta(t, changes["A1_REAL_YIELD"], changes["B1_USD_STRENGTH"], 1e-12)
}

func TestAlignWithPrice_Empty(t *testing.T) {
	assert.Empty(t, AlignWithPrice(nil, map[string]float64{"2024-01-01": 1.0}))
	assert.Empty(t, AlignWithPrice([]FactorDayRecord{}, nil))

	// Dense rows with no price series at all keep nil prices.
	aligned := AlignWithPrice(denseRows("A1_REAL_YIELD", "2024-01-01"), nil)
	require.Len(t, aligned, 1)
	assert.Nil(t, aligned[0].Price)
}
