package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lzhao/talos/internal/backtest"
	"github.com/lzhao/talos/internal/performance"
	"github.com/lzhao/talos/internal/pipeline"
	"github.com/lzhao/talos/internal/report"
	"github.com/lzhao/talos/internal/strategy"
)

// backtestCmd represents the backtest command group.
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Strategy backtesting",
	Long: `Simulate a strategy over historical daily bars.

The simulation holds at most one long position: a buy signal invests
all cash in whole shares, a sell signal liquidates. The report covers
total/annual return, max drawdown, signal counts and the paired trade
ledger with win rate.

Example:
  go run ./cmd/talos backtest run --symbol 601318 --from 2021-01-01 --to 2022-01-01
  go run ./cmd/talos backtest run --symbol 000001 --from 2022-01-01 --strategy bollinger`,
}

var (
	backtestRunCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a backtest",
		Long: `Run a backtest for one symbol over a date range.

Flags:
  --symbol     stock code, e.g. 601318 (required)
  --from       start date (YYYY-MM-DD, required)
  --to         end date (YYYY-MM-DD, default: today)
  --strategy   bollinger | macd (default: macd)
  --capital    initial capital (default: from config, 100000)`,
		RunE: runBacktest,
	}

	// Flags
	backtestSymbol   string
	backtestFrom     string
	backtestTo       string
	backtestStrategy string
	backtestCapital  float64
)

func init() {
	rootCmd.AddCommand(backtestCmd)
	backtestCmd.AddCommand(backtestRunCmd)

	backtestRunCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "stock code (required)")
	backtestRunCmd.Flags().StringVar(&backtestFrom, "from", "", "start date YYYY-MM-DD (required)")
	backtestRunCmd.Flags().StringVar(&backtestTo, "to", "", "end date YYYY-MM-DD (default: today)")
	backtestRunCmd.Flags().StringVar(&backtestStrategy, "strategy", "macd", "strategy: bollinger | macd")
	backtestRunCmd.Flags().Float64Var(&backtestCapital, "capital", 0, "initial capital (0 = config default)")

	backtestRunCmd.MarkFlagRequired("symbol")
	backtestRunCmd.MarkFlagRequired("from")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	from, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	to := time.Now()
	if backtestTo != "" {
		to, err = time.Parse("2006-01-02", backtestTo)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}

	d, err := initDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	capital := backtestCapital
	if capital <= 0 {
		capital = d.cfg.Backtest.InitialCapital
	}

	strat, err := strategy.New(backtestStrategy, d.log)
	if err != nil {
		return err
	}

	fmt.Printf("Period: %s ~ %s | Strategy: %s | Capital: %.2f\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"), strat.Name(), capital)

	bars, err := d.service.GetDailyBars(cmd.Context(), backtestSymbol, from, to)
	if err != nil {
		return fmt.Errorf("load price data: %w", err)
	}

	runner := pipeline.NewRunner(
		strat,
		backtest.NewEngine(d.log),
		performance.NewAnalyzer(d.log),
		d.log,
	)

	result, err := runner.Run(bars, capital)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	report.WriteText(os.Stdout, backtestSymbol, result)
	return nil
}
