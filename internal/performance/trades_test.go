package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairTrades(t *testing.T) {
	tests := []struct {
		name    string
		closes  []float64
		signals []int
		want    int
	}{
		{
			name:    "single pair",
			closes:  []float64{10, 8, 15},
			signals: []int{0, 1, -1},
			want:    1,
		},
		{
			name:    "leading sell is skipped",
			closes:  []float64{10, 8, 15, 20},
			signals: []int{-1, 1, -1, 0},
			want:    1,
		},
		{
			name:    "trailing buy is dropped",
			closes:  []float64{10, 8, 15, 12},
			signals: []int{0, 1, -1, 1},
			want:    1,
		},
		{
			name:    "consecutive buys pair on the later one",
			closes:  []float64{10, 8, 9, 15},
			signals: []int{0, 1, 1, -1},
			want:    1,
		},
		{
			name:    "two full pairs",
			closes:  []float64{10, 8, 15, 9, 7},
			signals: []int{0, 1, -1, 1, -1},
			want:    2,
		},
		{
			name:    "no triggers",
			closes:  []float64{10, 11, 12},
			signals: []int{0, 0, 0},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := PairTrades(makeBars(tt.closes...), sig(tt.signals...))
			assert.Len(t, trades, tt.want)
		})
	}
}

func TestPairTradesRecordsPrices(t *testing.T) {
	bars := makeBars(10, 8, 15, 20, 10)
	signals := sig(0, 1, -1, 1, -1)

	trades := PairTrades(bars, signals)
	require.Len(t, trades, 2)

	assert.InDelta(t, 8, trades[0].EntryPrice, 1e-9)
	assert.InDelta(t, 15, trades[0].ExitPrice, 1e-9)
	assert.InDelta(t, 87.5, trades[0].ReturnPct, 1e-9)
	assert.True(t, trades[0].Win)

	assert.InDelta(t, 20, trades[1].EntryPrice, 1e-9)
	assert.InDelta(t, 10, trades[1].ExitPrice, 1e-9)
	assert.InDelta(t, -50, trades[1].ReturnPct, 1e-9)
	assert.False(t, trades[1].Win)
}
