package strategy

import (
	"fmt"

	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/indicator"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/pkg/logger"
)

// MACD defaults.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// MACDStrategy trades DIF/DEA crossovers: golden cross buys, death
// cross sells.
type MACDStrategy struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
	logger       *logger.Logger
}

// NewMACD creates a MACD crossover strategy.
func NewMACD(fastPeriod, slowPeriod, signalPeriod int, log *logger.Logger) *MACDStrategy {
	return &MACDStrategy{
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
		logger:       log,
	}
}

// Name returns the strategy identifier.
func (s *MACDStrategy) Name() string { return "macd" }

// ComputeIndicators computes the MACD lines. The seeded EMAs are
// defined from bar 0, so no bars are trimmed.
func (s *MACDStrategy) ComputeIndicators(bars []marketdata.Bar) (*IndicatorSet, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("%w: have %d bars, need 2", ErrInsufficientData, len(bars))
	}

	lines := indicator.MACD(marketdata.Closes(bars), s.fastPeriod, s.slowPeriod, s.signalPeriod)

	s.logger.WithFields(map[string]interface{}{
		"fast":   s.fastPeriod,
		"slow":   s.slowPeriod,
		"signal": s.signalPeriod,
		"bars":   len(bars),
	}).Debug("Computed MACD lines")

	return &IndicatorSet{
		Bars: bars,
		MACD: &lines,
	}, nil
}

// GenerateSignals emits buys on golden crosses and sells on death
// crosses.
func (s *MACDStrategy) GenerateSignals(ind *IndicatorSet) (*SignalSeries, error) {
	if ind == nil || ind.MACD == nil {
		return nil, fmt.Errorf("macd lines not computed")
	}

	bars := ind.Bars
	lines := ind.MACD
	signals := make([]contracts.Signal, len(bars))

	for i := 1; i < len(bars); i++ {
		switch {
		// Golden cross: DIF crosses up through DEA.
		case lines.DIF[i-1] < lines.DEA[i-1] && lines.DIF[i] > lines.DEA[i]:
			signals[i] = contracts.SignalBuy

		// Death cross: DIF crosses down through DEA.
		case lines.DIF[i-1] > lines.DEA[i-1] && lines.DIF[i] < lines.DEA[i]:
			signals[i] = contracts.SignalSell
		}
	}

	return &SignalSeries{Bars: bars, Signals: signals}, nil
}
