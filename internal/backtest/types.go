package backtest

import (
	"errors"
	"time"
)

// Errors reported at the stage boundary. Both are recoverable by the
// caller; the engine never panics on bad input.
var (
	// ErrMisalignedSeries means the price and signal series differ in
	// length or date index. The run is aborted before any state is
	// touched.
	ErrMisalignedSeries = errors.New("backtest: price and signal series are misaligned")

	// ErrEmptySeries means there is nothing to simulate.
	ErrEmptySeries = errors.New("backtest: empty price series")
)

// State is the position state of the engine.
type State int

const (
	// Flat means no position is held; all capital sits in cash.
	Flat State = iota
	// Long means the full sized position is held.
	Long
)

// String returns a readable form.
func (s State) String() string {
	if s == Long {
		return "long"
	}
	return "flat"
}

// PortfolioState is the portfolio snapshot at one bar.
// The accounting identity TotalEquity == Cash + Shares*Close holds at
// every bar.
type PortfolioState struct {
	Date          time.Time `json:"date"`
	Close         float64   `json:"close"`
	Cash          float64   `json:"cash"`
	Shares        int64     `json:"shares"`
	PositionValue float64   `json:"position_value"`
	TotalEquity   float64   `json:"total_equity"`
}

// Timeline is the per-bar portfolio series produced by a run, indexed
// identically to the input bar series. Fills records the accepted
// transitions in order.
type Timeline struct {
	InitialCapital float64          `json:"initial_capital"`
	States         []PortfolioState `json:"states"`
	Fills          []Fill           `json:"fills"`
}

// Len returns the number of bars in the timeline.
func (t *Timeline) Len() int {
	return len(t.States)
}

// FinalEquity returns the total equity at the last bar.
func (t *Timeline) FinalEquity() float64 {
	if len(t.States) == 0 {
		return 0
	}
	return t.States[len(t.States)-1].TotalEquity
}

// Fill is one executed transaction (an accepted buy or sell trigger).
type Fill struct {
	Date   time.Time `json:"date"`
	Side   string    `json:"side"` // "buy" or "sell"
	Shares int64     `json:"shares"`
	Price  float64   `json:"price"`
}
