package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "talos",
	Short: "Talos - A-share strategy backtester",
	Long: `Talos CLI

Daily-bar strategy backtesting for Chinese A-shares: fetch prices,
generate Bollinger/MACD signals, simulate a single long-only position
and report performance.

Examples:
  go run ./cmd/talos backtest run --symbol 601318 --from 2021-01-01 --to 2022-01-01 --strategy macd
  go run ./cmd/talos fetch --symbol 000001 --from 2022-01-01
  go run ./cmd/talos api
  go run ./cmd/talos scheduler`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
