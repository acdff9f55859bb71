// Package pipeline wires the stages of one backtest run: indicators,
// signals, simulation, analysis. Each stage consumes the previous
// stage's output and returns a new value; nothing is shared or
// mutated across stages, and nothing persists between runs.
package pipeline

import (
	"fmt"

	"github.com/lzhao/talos/internal/backtest"
	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/internal/performance"
	"github.com/lzhao/talos/internal/strategy"
	"github.com/lzhao/talos/pkg/logger"
)

// Result is the output of one full run.
type Result struct {
	Strategy string               `json:"strategy"`
	Bars     []marketdata.Bar     `json:"-"`
	Signals  []contracts.Signal   `json:"-"`
	Timeline *backtest.Timeline   `json:"timeline"`
	Summary  *performance.Summary `json:"summary"`
}

// Runner executes the strategy pipeline over a bar series. The runner
// halts on the first failing stage and reports it to the caller.
type Runner struct {
	strategy strategy.Strategy
	engine   *backtest.Engine
	analyzer *performance.Analyzer
	logger   *logger.Logger
}

// NewRunner creates a pipeline runner for one strategy.
func NewRunner(strat strategy.Strategy, engine *backtest.Engine, analyzer *performance.Analyzer, log *logger.Logger) *Runner {
	return &Runner{
		strategy: strat,
		engine:   engine,
		analyzer: analyzer,
		logger:   log,
	}
}

// Run executes indicators -> signals -> backtest -> analysis.
func (r *Runner) Run(bars []marketdata.Bar, initialCapital float64) (*Result, error) {
	r.logger.WithFields(map[string]interface{}{
		"strategy":        r.strategy.Name(),
		"bars":            len(bars),
		"initial_capital": initialCapital,
	}).Info("Starting pipeline run")

	indicators, err := r.strategy.ComputeIndicators(bars)
	if err != nil {
		return nil, fmt.Errorf("compute indicators: %w", err)
	}

	signalSeries, err := r.strategy.GenerateSignals(indicators)
	if err != nil {
		return nil, fmt.Errorf("generate signals: %w", err)
	}

	timeline, err := r.engine.Run(signalSeries.Bars, signalSeries.Signals, initialCapital)
	if err != nil {
		return nil, fmt.Errorf("run backtest: %w", err)
	}

	summary, err := r.analyzer.Analyze(timeline, signalSeries.Bars, signalSeries.Signals)
	if err != nil {
		return nil, fmt.Errorf("analyze performance: %w", err)
	}

	return &Result{
		Strategy: r.strategy.Name(),
		Bars:     signalSeries.Bars,
		Signals:  signalSeries.Signals,
		Timeline: timeline,
		Summary:  summary,
	}, nil
}
