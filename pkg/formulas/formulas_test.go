package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingSum(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   []float64
	}{
		{
			name:   "window larger than series keeps cumulative sum",
			values: []float64{1, 2, 3},
			window: 7,
			want:   []float64{1, 3, 6},
		},
		{
			name:   "window of three",
			values: []float64{1, 2, 3, 4, 5},
			window: 3,
			want:   []float64{1, 3, 6, 9, 12},
		},
		{
			name:   "window of one is identity",
			values: []float64{0.5, 0.25, 0.75},
			window: 1,
			want:   []float64{0.5, 0.25, 0.75},
		},
		{
			name:   "empty input",
			values: []float64{},
			window: 3,
			want:   []float64{},
		},
		{
			name:   "zero window yields empty",
			values: []float64{1, 2},
			window: 0,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrailingSum(tt.values, tt.window)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "index %d", i)
			}
		})
	}
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, Mean(nil))
}

func TestStdDev(t *testing.T) {
	// Sample standard deviation of {2, 4, 4, 4, 5, 5, 7, 9}
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.138, got, 0.001)
	assert.Equal(t, 0.0, StdDev(nil))
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	up := []float64{2, 4, 6, 8, 10}
	down := []float64{10, 8, 6, 4, 2}

	assert.InDelta(t, 1.0, Correlation(x, up), 1e-9)
	assert.InDelta(t, -1.0, Correlation(x, down), 1e-9)

	// Mismatched lengths
	assert.Equal(t, 0.0, Correlation(x, []float64{1, 2}))
}

func TestCalculateReturns(t *testing.T) {
	returns := CalculateReturns([]float64{100, 110, 99})
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	assert.Empty(t, CalculateReturns([]float64{100}))
}

func TestRounding(t *testing.T) {
	assert.InDelta(t, 1234.57, Round2(1234.5678), 1e-9)
	assert.InDelta(t, 0.432, Round3(0.43200000000000005), 1e-9)
	assert.InDelta(t, -0.346, Round3(-0.3456), 1e-9)
}
