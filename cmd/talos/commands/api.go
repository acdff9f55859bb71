package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lzhao/talos/internal/api"
	"github.com/lzhao/talos/internal/api/handlers"
)

// apiCmd serves the backtest API over HTTP.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

Endpoints:
  GET  /health        health check
  POST /api/backtest  run a backtest for a symbol and date range

Example:
  go run ./cmd/talos api`,
	RunE: runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	d, err := initDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	backtestHandler := handlers.NewBacktestHandler(d.service, d.cfg, d.log)
	router := api.NewRouter(backtestHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		d.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
