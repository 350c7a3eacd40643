package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignSeries_ForwardFillsContext(t *testing.T) {
	data := MarketData{
		Gold: []Candle{
			{Date: "2024-01-01", Close: 2000},
			{Date: "2024-01-02", Close: 2010},
			{Date: "2024-01-03", Close: 2005},
		},
		DollarIndex: []Candle{
			{Date: "2024-01-01", Close: 102.5},
			// Jan 2 missing from the DXY feed.
			{Date: "2024-01-03", Close: 103.0},
		},
		VIX: []Candle{
			{Date: "2024-01-02", Close: 14.2},
		},
	}

	snapshots := AlignSeries(data)
	require.Len(t, snapshots, 3)

	assert.Equal(t, 2000.0, snapshots[0].GoldPrice)
	require.NotNil(t, snapshots[0].DXY)
	assert.Equal(t, 102.5, *snapshots[0].DXY)
	assert.Nil(t, snapshots[0].VIX) // no prior VIX value yet

	// Forward fill through the DXY gap.
	require.NotNil(t, snapshots[1].DXY)
	assert.Equal(t, 102.5, *snapshots[1].DXY)
	require.NotNil(t, snapshots[1].VIX)
	assert.Equal(t, 14.2, *snapshots[1].VIX)

	require.NotNil(t, snapshots[2].DXY)
	assert.Equal(t, 103.0, *snapshots[2].DXY)
	require.NotNil(t, snapshots[2].VIX)
	assert.Equal(t, 14.2, *snapshots[2].VIX)

	// Yield feed never reported, stays nil throughout.
	for _, snap := range snapshots {
		assert.Nil(t, snap.TreasuryYield)
	}
}

func TestAlignSeries_NoGold(t *testing.T) {
	assert.Nil(t, AlignSeries(MarketData{}))
	assert.Nil(t, AlignSeries(MarketData{DollarIndex: []Candle{{Date: "2024-01-01", Close: 100}}}))
}

func TestAlignSeries_SnapshotsAreIndependent(t *testing.T) {
	data := MarketData{
		Gold: []Candle{
			{Date: "2024-01-01", Close: 2000},
			{Date: "2024-01-02", Close: 2010},
		},
		VIX: []Candle{{Date: "2024-01-01", Close: 15.0}},
	}

	snapshots := AlignSeries(data)
	require.Len(t, snapshots, 2)

	// Mutating one snapshot's filled pointer must not leak into the next.
	*snapshots[0].VIX = 99.0
	assert.Equal(t, 15.0, *snapshots[1].VIX)
}
