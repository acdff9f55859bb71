package strategy

import (
	"fmt"

	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/indicator"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/pkg/logger"
)

// Bollinger band defaults.
const (
	DefaultBollingerWindow = 20
	DefaultBollingerNumStd = 2.0
)

// BollingerStrategy trades band crossings:
//   - close crosses up through the lower band: buy
//   - close crosses up through the upper band: sell
//
// Note the sell rule tests an upward crossing of the upper band, not a
// downward one. That is the behavior this strategy has always had and
// it is pinned by tests.
type BollingerStrategy struct {
	window int
	numStd float64
	logger *logger.Logger
}

// NewBollinger creates a Bollinger band strategy.
func NewBollinger(window int, numStd float64, log *logger.Logger) *BollingerStrategy {
	return &BollingerStrategy{
		window: window,
		numStd: numStd,
		logger: log,
	}
}

// Name returns the strategy identifier.
func (s *BollingerStrategy) Name() string { return "bollinger" }

// ComputeIndicators computes the bands and trims the leading bars
// without a full window, so the signal stage and the backtest run on
// fully defined values only.
func (s *BollingerStrategy) ComputeIndicators(bars []marketdata.Bar) (*IndicatorSet, error) {
	if len(bars) < s.window+1 {
		return nil, fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientData, len(bars), s.window+1)
	}

	bands := indicator.Bollinger(marketdata.Closes(bars), s.window, s.numStd)

	first := bands.FirstValid()
	if first < 0 || first >= len(bars)-1 {
		return nil, fmt.Errorf("%w: no defined band values", ErrInsufficientData)
	}

	trimmed := indicator.BollingerBands{
		Mid:      bands.Mid[first:],
		Upper:    bands.Upper[first:],
		Lower:    bands.Lower[first:],
		PercentB: bands.PercentB[first:],
	}

	s.logger.WithFields(map[string]interface{}{
		"window":  s.window,
		"num_std": s.numStd,
		"bars":    len(bars) - first,
	}).Debug("Computed Bollinger bands")

	return &IndicatorSet{
		Bars:      bars[first:],
		Bollinger: &trimmed,
	}, nil
}

// GenerateSignals applies the crossing rules bar by bar.
func (s *BollingerStrategy) GenerateSignals(ind *IndicatorSet) (*SignalSeries, error) {
	if ind == nil || ind.Bollinger == nil {
		return nil, fmt.Errorf("bollinger bands not computed")
	}

	bars := ind.Bars
	bands := ind.Bollinger
	signals := make([]contracts.Signal, len(bars))

	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1].Close, bars[i].Close

		switch {
		// Close crosses up through the lower band: oversold, buy.
		case prev <= bands.Lower[i-1] && cur > bands.Lower[i]:
			signals[i] = contracts.SignalBuy

		// Close crosses up through the upper band: sell.
		case prev <= bands.Upper[i-1] && cur > bands.Upper[i]:
			signals[i] = contracts.SignalSell
		}
	}

	return &SignalSeries{Bars: bars, Signals: signals}, nil
}
