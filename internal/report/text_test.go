package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzhao/talos/internal/backtest"
	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/internal/performance"
	"github.com/lzhao/talos/internal/pipeline"
	"github.com/lzhao/talos/pkg/logger"
)

func TestWriteText(t *testing.T) {
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	closes := []float64{10, 9, 8, 12, 15}
	bars := make([]marketdata.Bar, len(closes))
	for i, c := range closes {
		bars[i] = marketdata.Bar{Date: start.AddDate(0, 0, i), Close: c}
	}
	signals := []contracts.Signal{0, 0, contracts.SignalBuy, 0, contracts.SignalSell}

	log := logger.NewNop()
	timeline, err := backtest.NewEngine(log).Run(bars, signals, 100)
	require.NoError(t, err)
	summary, err := performance.NewAnalyzer(log).Analyze(timeline, bars, signals)
	require.NoError(t, err)

	var buf strings.Builder
	WriteText(&buf, "601318", &pipeline.Result{
		Strategy: "macd",
		Bars:     bars,
		Signals:  signals,
		Timeline: timeline,
		Summary:  summary,
	})

	out := buf.String()
	assert.Contains(t, out, "Backtest Summary")
	assert.Contains(t, out, "Symbol: 601318 | Strategy: macd")
	assert.Contains(t, out, "Final Capital:   184.00")
	assert.Contains(t, out, "Total Return:    84.00%")
	assert.Contains(t, out, "Win Rate: 100.00%")
	assert.Contains(t, out, "Trade Ledger:")
	assert.Contains(t, out, "+87.50% (win)")
}

func TestWriteTextNoTrades(t *testing.T) {
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	bars := []marketdata.Bar{
		{Date: start, Close: 10},
		{Date: start.AddDate(0, 0, 1), Close: 11},
	}
	signals := []contracts.Signal{0, 0}

	log := logger.NewNop()
	timeline, err := backtest.NewEngine(log).Run(bars, signals, 100)
	require.NoError(t, err)
	summary, err := performance.NewAnalyzer(log).Analyze(timeline, bars, signals)
	require.NoError(t, err)

	var buf strings.Builder
	WriteText(&buf, "000001", &pipeline.Result{
		Strategy: "bollinger",
		Bars:     bars,
		Signals:  signals,
		Timeline: timeline,
		Summary:  summary,
	})

	out := buf.String()
	assert.Contains(t, out, "Completed Pairs: 0")
	assert.NotContains(t, out, "Trade Ledger:")
}
