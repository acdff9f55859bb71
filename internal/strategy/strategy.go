// Package strategy turns bar series into trading signal series. Each
// strategy computes its indicators first and then applies its crossing
// rules; the backtest engine only ever sees the resulting signals.
package strategy

import (
	"errors"
	"fmt"

	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/indicator"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/pkg/logger"
)

// ErrInsufficientData is returned when the bar series is shorter than
// the strategy's lookback window.
var ErrInsufficientData = errors.New("strategy: not enough bars for indicator window")

// IndicatorSet is the output of the indicator stage. Bars is the
// aligned bar view the signal stage (and the backtest after it) runs
// on; a strategy that needs a full lookback window trims the leading
// bars without defined indicator values.
type IndicatorSet struct {
	Bars []marketdata.Bar

	Bollinger *indicator.BollingerBands
	MACD      *indicator.MACDLines
}

// SignalSeries is the output of the signal stage: one signal per bar,
// aligned with Bars.
type SignalSeries struct {
	Bars    []marketdata.Bar
	Signals []contracts.Signal
}

// Strategy generates trading signals from a bar series.
type Strategy interface {
	// Name returns the strategy identifier ("bollinger", "macd").
	Name() string

	// ComputeIndicators computes the strategy's indicators over the
	// bar series.
	ComputeIndicators(bars []marketdata.Bar) (*IndicatorSet, error)

	// GenerateSignals applies the strategy's rules to a computed
	// indicator set.
	GenerateSignals(ind *IndicatorSet) (*SignalSeries, error)
}

// New resolves a strategy by name with default parameters.
func New(name string, log *logger.Logger) (Strategy, error) {
	switch name {
	case "bollinger":
		return NewBollinger(DefaultBollingerWindow, DefaultBollingerNumStd, log), nil
	case "macd":
		return NewMACD(DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal, log), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (expected bollinger or macd)", name)
	}
}
