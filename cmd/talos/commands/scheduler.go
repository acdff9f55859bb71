package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lzhao/talos/internal/scheduler"
	"github.com/lzhao/talos/internal/scheduler/jobs"
)

// schedulerCmd runs the recurring maintenance jobs.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Start the job scheduler",
	Long: `Start the job scheduler and block until interrupted.

Jobs:
  price_refresh  refresh recent daily bars for the watchlist,
                 weekdays at 17:30 after the A-share close

Example:
  WATCHLIST=601318,000001 go run ./cmd/talos scheduler`,
	RunE: runScheduler,
}

var schedulerRunNow bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "run-now", false, "run all jobs once at startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	d, err := initDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	sched := scheduler.New(d.log)

	refreshJob := jobs.NewPriceRefreshJob(d.service, d.cfg, d.log)
	if err := sched.AddJob(refreshJob); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow {
		if err := sched.RunJob(refreshJob.Name()); err != nil {
			return err
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	d.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	return nil
}
