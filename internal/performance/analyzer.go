// Package performance derives summary metrics and a trade ledger from
// a backtest timeline.
package performance

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lzhao/talos/internal/backtest"
	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/pkg/logger"
)

// ErrNotReady is returned when analysis is requested before a backtest
// produced a timeline. The caller can re-run the pipeline stage.
var ErrNotReady = errors.New("performance: backtest timeline not available")

// Summary holds the performance metrics of one backtest run.
type Summary struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	InitialCapital float64 `json:"initial_capital"`
	FinalCapital   float64 `json:"final_capital"`

	TotalReturnPct float64 `json:"total_return_pct"`

	// AnnualReturnPct is undefined (and AnnualReturnValid false) when
	// the series spans less than one calendar day.
	AnnualReturnPct   float64 `json:"annual_return_pct"`
	AnnualReturnValid bool    `json:"annual_return_valid"`

	MaxDrawdownPct float64 `json:"max_drawdown_pct"`

	// TradeCount counts raw triggers (signal != 0), including no-op
	// triggers the engine rejected. It reflects signal density, not
	// executed trades.
	TradeCount int `json:"trade_count"`
	BuyCount   int `json:"buy_count"`
	SellCount  int `json:"sell_count"`

	// Completed entry/exit pairs.
	Trades        []TradeRecord `json:"trades"`
	WinningTrades int           `json:"winning_trades"`
	LosingTrades  int           `json:"losing_trades"`
	WinRatePct    float64       `json:"win_rate_pct"`
}

// Analyzer computes summaries from backtest output. Stateless across
// calls.
type Analyzer struct {
	logger *logger.Logger
}

// NewAnalyzer creates a performance analyzer.
func NewAnalyzer(log *logger.Logger) *Analyzer {
	return &Analyzer{logger: log}
}

// Analyze computes the summary for a completed backtest. bars and
// signals must be the series the timeline was produced from.
func (a *Analyzer) Analyze(timeline *backtest.Timeline, bars []marketdata.Bar, signals []contracts.Signal) (*Summary, error) {
	if timeline == nil || timeline.Len() == 0 {
		return nil, ErrNotReady
	}
	if timeline.Len() != len(bars) || len(bars) != len(signals) {
		return nil, fmt.Errorf("%w: timeline %d bars, prices %d, signals %d",
			backtest.ErrMisalignedSeries, timeline.Len(), len(bars), len(signals))
	}

	first := timeline.States[0]
	last := timeline.States[timeline.Len()-1]

	summary := &Summary{
		StartDate:      first.Date,
		EndDate:        last.Date,
		InitialCapital: timeline.InitialCapital,
		FinalCapital:   last.TotalEquity,
	}

	summary.TotalReturnPct = (summary.FinalCapital - summary.InitialCapital) / summary.InitialCapital * 100

	// Compound annual growth over actual elapsed calendar days.
	days := last.Date.Sub(first.Date).Hours() / 24
	if days > 0 {
		summary.AnnualReturnPct = (math.Pow(summary.FinalCapital/summary.InitialCapital, 365/days) - 1) * 100
		summary.AnnualReturnValid = true
	}

	summary.MaxDrawdownPct = maxDrawdown(timeline.States)

	for _, s := range signals {
		switch s {
		case contracts.SignalBuy:
			summary.TradeCount++
			summary.BuyCount++
		case contracts.SignalSell:
			summary.TradeCount++
			summary.SellCount++
		}
	}

	summary.Trades = PairTrades(bars, signals)
	for _, t := range summary.Trades {
		if t.Win {
			summary.WinningTrades++
		} else {
			summary.LosingTrades++
		}
	}
	// max(1, pairs) keeps the zero-pair case at 0% instead of a fault.
	summary.WinRatePct = float64(summary.WinningTrades) / math.Max(1, float64(len(summary.Trades))) * 100

	a.logger.WithFields(map[string]interface{}{
		"total_return": fmt.Sprintf("%.2f%%", summary.TotalReturnPct),
		"max_drawdown": fmt.Sprintf("%.2f%%", summary.MaxDrawdownPct),
		"trade_count":  summary.TradeCount,
		"pairs":        len(summary.Trades),
		"win_rate":     fmt.Sprintf("%.2f%%", summary.WinRatePct),
	}).Info("Performance analysis completed")

	return summary, nil
}

// maxDrawdown returns the worst peak-to-trough equity decline as a
// non-positive percentage. Zero when equity never falls below a prior
// peak.
func maxDrawdown(states []backtest.PortfolioState) float64 {
	maxDD := 0.0
	peak := states[0].TotalEquity

	for _, s := range states {
		if s.TotalEquity > peak {
			peak = s.TotalEquity
		}
		dd := (s.TotalEquity - peak) / peak * 100
		if dd < maxDD {
			maxDD = dd
		}
	}

	return maxDD
}
