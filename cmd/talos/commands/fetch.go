package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// fetchCmd fetches daily bars into the price store.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch daily bars into the price store",
	Long: `Fetch daily OHLCV bars from the quote service and store them.

With DATABASE_URL configured the bars are upserted into PostgreSQL;
without it the command only verifies the remote fetch.

Example:
  go run ./cmd/talos fetch --symbol 601318 --from 2021-01-01
  go run ./cmd/talos fetch --symbol 000001 --from 2022-01-01 --to 2022-12-31`,
	RunE: runFetch,
}

var (
	fetchSymbol string
	fetchFrom   string
	fetchTo     string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchSymbol, "symbol", "", "stock code (required)")
	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "start date YYYY-MM-DD (required)")
	fetchCmd.Flags().StringVar(&fetchTo, "to", "", "end date YYYY-MM-DD (default: today)")

	fetchCmd.MarkFlagRequired("symbol")
	fetchCmd.MarkFlagRequired("from")
}

func runFetch(cmd *cobra.Command, args []string) error {
	from, err := time.Parse("2006-01-02", fetchFrom)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	to := time.Now()
	if fetchTo != "" {
		to, err = time.Parse("2006-01-02", fetchTo)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}

	d, err := initDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	count, err := d.service.RefreshDailyBars(cmd.Context(), fetchSymbol, from, to)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	fmt.Printf("Fetched %d bars for %s (%s ~ %s)\n",
		count, fetchSymbol, from.Format("2006-01-02"), to.Format("2006-01-02"))

	if d.db == nil {
		fmt.Println("Note: DATABASE_URL not set, bars were not persisted")
	}

	return nil
}
