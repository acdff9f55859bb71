// Package report renders backtest results for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lzhao/talos/internal/pipeline"
)

// WriteText renders a full run result as a plain-text report.
func WriteText(w io.Writer, symbol string, result *pipeline.Result) {
	s := result.Summary

	fmt.Fprintln(w)
	fmt.Fprintln(w, "==== Backtest Summary ====")
	fmt.Fprintf(w, "Symbol: %s | Strategy: %s\n", symbol, result.Strategy)
	fmt.Fprintf(w, "Period: %s ~ %s (%d bars)\n",
		s.StartDate.Format("2006-01-02"),
		s.EndDate.Format("2006-01-02"),
		result.Timeline.Len())
	fmt.Fprintln(w, strings.Repeat("-", 40))

	fmt.Fprintln(w, "Returns:")
	fmt.Fprintf(w, "Initial Capital: %.2f\n", s.InitialCapital)
	fmt.Fprintf(w, "Final Capital:   %.2f\n", s.FinalCapital)
	fmt.Fprintf(w, "Net P&L:         %.2f\n", s.FinalCapital-s.InitialCapital)
	fmt.Fprintf(w, "Total Return:    %.2f%%\n", s.TotalReturnPct)
	if s.AnnualReturnValid {
		fmt.Fprintf(w, "Annual Return:   %.2f%%\n", s.AnnualReturnPct)
	} else {
		fmt.Fprintln(w, "Annual Return:   n/a (period under one day)")
	}
	fmt.Fprintf(w, "Max Drawdown:    %.2f%%\n", s.MaxDrawdownPct)

	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintln(w, "Trades:")
	fmt.Fprintf(w, "Signals: %d (buy: %d, sell: %d)\n", s.TradeCount, s.BuyCount, s.SellCount)
	fmt.Fprintf(w, "Completed Pairs: %d\n", len(s.Trades))
	fmt.Fprintf(w, "Winning: %d | Losing: %d\n", s.WinningTrades, s.LosingTrades)
	fmt.Fprintf(w, "Win Rate: %.2f%%\n", s.WinRatePct)

	if len(s.Trades) > 0 {
		fmt.Fprintln(w, strings.Repeat("-", 40))
		fmt.Fprintln(w, "Trade Ledger:")
		for i, t := range s.Trades {
			outcome := "loss"
			if t.Win {
				outcome = "win"
			}
			fmt.Fprintf(w, "%2d. buy %s @ %.2f -> sell %s @ %.2f  %+.2f%% (%s)\n",
				i+1,
				t.EntryDate.Format("2006-01-02"), t.EntryPrice,
				t.ExitDate.Format("2006-01-02"), t.ExitPrice,
				t.ReturnPct, outcome)
		}
	}

	// Tail of the equity curve for a quick sanity check.
	states := result.Timeline.States
	tail := 5
	if len(states) < tail {
		tail = len(states)
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Equity (last %d bars):\n", tail)
	for _, st := range states[len(states)-tail:] {
		fmt.Fprintf(w, "%s  close %.2f  cash %.2f  shares %d  equity %.2f\n",
			st.Date.Format("2006-01-02"), st.Close, st.Cash, st.Shares, st.TotalEquity)
	}
	fmt.Fprintln(w)
}
