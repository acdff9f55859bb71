package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/pkg/logger"
)

// makeBars builds a daily bar series from closes, starting 2022-01-03.
func makeBars(closes ...float64) []marketdata.Bar {
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]marketdata.Bar, len(closes))
	for i, c := range closes {
		bars[i] = marketdata.Bar{
			Date:  start.AddDate(0, 0, i),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}

func sig(values ...int) []contracts.Signal {
	out := make([]contracts.Signal, len(values))
	for i, v := range values {
		out[i] = contracts.Signal(v)
	}
	return out
}

func TestEngineBuyThenSell(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	bars := makeBars(10, 9, 8, 12, 15)
	signals := sig(0, 0, 1, 0, -1)

	timeline, err := engine.Run(bars, signals, 100)
	require.NoError(t, err)
	require.Equal(t, 5, timeline.Len())

	// Buy at 8: floor(100/8) = 12 shares, 4 left in cash.
	buyBar := timeline.States[2]
	assert.Equal(t, int64(12), buyBar.Shares)
	assert.InDelta(t, 4, buyBar.Cash, 1e-9)
	assert.InDelta(t, 100, buyBar.TotalEquity, 1e-9)

	// Holding through 12.
	assert.InDelta(t, 148, timeline.States[3].TotalEquity, 1e-9)

	// Sell at 15: 4 + 12*15 = 184.
	last := timeline.States[4]
	assert.Equal(t, int64(0), last.Shares)
	assert.InDelta(t, 184, last.Cash, 1e-9)
	assert.InDelta(t, 184, timeline.FinalEquity(), 1e-9)

	require.Len(t, timeline.Fills, 2)
	assert.Equal(t, "buy", timeline.Fills[0].Side)
	assert.Equal(t, int64(12), timeline.Fills[0].Shares)
	assert.InDelta(t, 8, timeline.Fills[0].Price, 1e-9)
	assert.Equal(t, "sell", timeline.Fills[1].Side)
	assert.InDelta(t, 15, timeline.Fills[1].Price, 1e-9)
}

func TestEngineFirstBarOnlyInitializes(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	// A buy on bar 0 must not execute; bar 0 only seeds the portfolio.
	bars := makeBars(10, 20)
	timeline, err := engine.Run(bars, sig(1, 0), 100)
	require.NoError(t, err)

	assert.Empty(t, timeline.Fills)
	assert.Equal(t, int64(0), timeline.States[0].Shares)
	assert.InDelta(t, 100, timeline.FinalEquity(), 1e-9)
}

func TestEngineRedundantBuyIsNoOp(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	bars := makeBars(10, 10, 20, 30, 10)
	signals := sig(0, 1, 1, -1, 0)

	timeline, err := engine.Run(bars, signals, 100)
	require.NoError(t, err)

	// First buy fills 10 shares; the second buy while long changes
	// nothing.
	require.Len(t, timeline.Fills, 2)
	assert.Equal(t, int64(10), timeline.States[1].Shares)
	assert.Equal(t, int64(10), timeline.States[2].Shares)
	assert.InDelta(t, 0, timeline.States[2].Cash, 1e-9)

	// Sell at 30 liquidates everything.
	assert.Equal(t, int64(0), timeline.States[3].Shares)
	assert.InDelta(t, 300, timeline.FinalEquity(), 1e-9)
}

func TestEngineSellWhileFlatIsNoOp(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	bars := makeBars(10, 12, 14)
	timeline, err := engine.Run(bars, sig(0, -1, -1), 100)
	require.NoError(t, err)

	assert.Empty(t, timeline.Fills)
	assert.InDelta(t, 100, timeline.FinalEquity(), 1e-9)
}

func TestEngineInsufficientCapital(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	// 500 cannot buy a single 1000 share; the trigger is silently
	// dropped and the run stays flat.
	bars := makeBars(1000, 1000)
	timeline, err := engine.Run(bars, sig(0, 1), 500)
	require.NoError(t, err)

	assert.Empty(t, timeline.Fills)
	last := timeline.States[timeline.Len()-1]
	assert.Equal(t, int64(0), last.Shares)
	assert.InDelta(t, 500, last.Cash, 1e-9)
}

func TestEngineAccountingIdentity(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	bars := makeBars(10, 11, 9, 13, 8, 14, 12, 16)
	signals := sig(0, 1, 0, -1, 1, 0, -1, 1)

	timeline, err := engine.Run(bars, signals, 1000)
	require.NoError(t, err)

	for i, s := range timeline.States {
		assert.InDelta(t, s.Cash+float64(s.Shares)*s.Close, s.TotalEquity, 1e-9,
			"identity broken at bar %d", i)
		assert.GreaterOrEqual(t, s.Cash, 0.0, "negative cash at bar %d", i)
		assert.InDelta(t, float64(s.Shares)*s.Close, s.PositionValue, 1e-9)
	}
}

func TestEngineRunIsStateless(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	bars := makeBars(10, 9, 8, 12, 15)
	signals := sig(0, 0, 1, 0, -1)

	first, err := engine.Run(bars, signals, 100)
	require.NoError(t, err)
	second, err := engine.Run(bars, signals, 100)
	require.NoError(t, err)

	assert.Equal(t, first.FinalEquity(), second.FinalEquity())
	assert.Equal(t, len(first.Fills), len(second.Fills))
}

func TestEngineRejectsBadInput(t *testing.T) {
	engine := NewEngine(logger.NewNop())
	bars := makeBars(10, 11, 12)

	t.Run("empty series", func(t *testing.T) {
		_, err := engine.Run(nil, nil, 100)
		assert.ErrorIs(t, err, ErrEmptySeries)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := engine.Run(bars, sig(0, 1), 100)
		assert.ErrorIs(t, err, ErrMisalignedSeries)
	})

	t.Run("invalid signal value", func(t *testing.T) {
		_, err := engine.Run(bars, sig(0, 5, 0), 100)
		assert.ErrorIs(t, err, ErrMisalignedSeries)
	})

	t.Run("dates out of order", func(t *testing.T) {
		shuffled := makeBars(10, 11, 12)
		shuffled[1].Date = shuffled[2].Date.AddDate(0, 0, 1)
		_, err := engine.Run(shuffled, sig(0, 0, 0), 100)
		assert.ErrorIs(t, err, ErrMisalignedSeries)
	})

	t.Run("non-positive capital", func(t *testing.T) {
		_, err := engine.Run(bars, sig(0, 0, 0), 0)
		assert.Error(t, err)
	})
}
