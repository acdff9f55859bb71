// Package backtest simulates a single-position, long-only strategy
// against a daily bar series and its signal series.
package backtest

import (
	"fmt"
	"math"

	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/pkg/logger"
)

// Engine turns a signal series into a portfolio timeline. It holds no
// state between runs: every Run starts flat with the given capital and
// returns a fresh timeline.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a backtest engine.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Run simulates the signal series over the bar series.
//
// The state machine has two states, flat and long. Bar 0 only
// initializes the portfolio; transitions are evaluated from bar 1 in
// chronological order:
//
//   - buy signal while flat: buy floor(cash/close) shares; if that is
//     zero the trigger is a silent no-op and the state stays flat
//   - sell signal while long: liquidate the whole position
//   - anything else carries cash and shares forward unchanged
//
// Only whole shares are transacted; the fractional remainder stays in
// cash, so cash never goes negative.
func (e *Engine) Run(bars []marketdata.Bar, signals []contracts.Signal, initialCapital float64) (*Timeline, error) {
	if err := checkAlignment(bars, signals); err != nil {
		return nil, err
	}
	if initialCapital <= 0 {
		return nil, fmt.Errorf("backtest: initial capital must be positive, got %v", initialCapital)
	}

	timeline := &Timeline{
		InitialCapital: initialCapital,
		States:         make([]PortfolioState, 0, len(bars)),
	}

	cash := initialCapital
	var shares int64
	state := Flat

	timeline.States = append(timeline.States, PortfolioState{
		Date:        bars[0].Date,
		Close:       bars[0].Close,
		Cash:        cash,
		TotalEquity: initialCapital,
	})

	for i := 1; i < len(bars); i++ {
		price := bars[i].Close

		switch {
		case signals[i] == contracts.SignalBuy && state == Flat:
			sharesToBuy := int64(math.Floor(cash / price))
			if sharesToBuy > 0 {
				cash -= float64(sharesToBuy) * price
				shares = sharesToBuy
				state = Long

				timeline.Fills = append(timeline.Fills, Fill{
					Date:   bars[i].Date,
					Side:   "buy",
					Shares: sharesToBuy,
					Price:  price,
				})
				e.logger.WithFields(map[string]interface{}{
					"date":   bars[i].Date.Format("2006-01-02"),
					"shares": sharesToBuy,
					"price":  price,
				}).Debug("Buy executed")
			}
			// sharesToBuy == 0: cannot afford one share, stay flat.

		case signals[i] == contracts.SignalSell && state == Long:
			cash += float64(shares) * price

			timeline.Fills = append(timeline.Fills, Fill{
				Date:   bars[i].Date,
				Side:   "sell",
				Shares: shares,
				Price:  price,
			})
			e.logger.WithFields(map[string]interface{}{
				"date":   bars[i].Date.Format("2006-01-02"),
				"shares": shares,
				"price":  price,
			}).Debug("Sell executed")

			shares = 0
			state = Flat
		}

		positionValue := float64(shares) * price
		timeline.States = append(timeline.States, PortfolioState{
			Date:          bars[i].Date,
			Close:         price,
			Cash:          cash,
			Shares:        shares,
			PositionValue: positionValue,
			TotalEquity:   cash + positionValue,
		})
	}

	e.logger.WithFields(map[string]interface{}{
		"bars":         len(bars),
		"fills":        len(timeline.Fills),
		"final_equity": timeline.FinalEquity(),
	}).Info("Backtest completed")

	return timeline, nil
}

// checkAlignment verifies that bars and signals form one
// chronologically aligned series. A mismatch is fatal for the run.
func checkAlignment(bars []marketdata.Bar, signals []contracts.Signal) error {
	if len(bars) == 0 {
		return ErrEmptySeries
	}
	if len(bars) != len(signals) {
		return fmt.Errorf("%w: %d bars vs %d signals", ErrMisalignedSeries, len(bars), len(signals))
	}

	for i, s := range signals {
		if !s.Valid() {
			return fmt.Errorf("%w: invalid signal %d at bar %d", ErrMisalignedSeries, int(s), i)
		}
	}

	if err := marketdata.ValidateSeries(bars); err != nil {
		return fmt.Errorf("%w: %v", ErrMisalignedSeries, err)
	}

	return nil
}
