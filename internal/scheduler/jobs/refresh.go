// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/pkg/config"
	"github.com/lzhao/talos/pkg/logger"
)

// PriceRefreshJob pulls the last few days of bars for every watchlist
// symbol into the price store after the A-share close.
type PriceRefreshJob struct {
	service *marketdata.Service
	config  *config.Config
	logger  *logger.Logger
}

// NewPriceRefreshJob creates the price refresh job.
func NewPriceRefreshJob(service *marketdata.Service, cfg *config.Config, log *logger.Logger) *PriceRefreshJob {
	return &PriceRefreshJob{
		service: service,
		config:  cfg,
		logger:  log,
	}
}

// Name returns the job name.
func (j *PriceRefreshJob) Name() string {
	return "price_refresh"
}

// Schedule returns the cron schedule: 17:30 CST on weekdays, after
// the Shanghai/Shenzhen close.
func (j *PriceRefreshJob) Schedule() string {
	return "0 30 17 * * MON-FRI"
}

// Run refreshes the last five days of bars for the watchlist.
func (j *PriceRefreshJob) Run(ctx context.Context) error {
	if len(j.config.Backtest.Watchlist) == 0 {
		j.logger.Warn("Watchlist is empty, nothing to refresh")
		return nil
	}

	to := time.Now()
	from := to.AddDate(0, 0, -5)

	var failed int
	for _, symbol := range j.config.Backtest.Watchlist {
		count, err := j.service.RefreshDailyBars(ctx, symbol, from, to)
		if err != nil {
			failed++
			j.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Warn("Price refresh failed for symbol")
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"bars":   count,
		}).Debug("Refreshed symbol")
	}

	if failed == len(j.config.Backtest.Watchlist) {
		return fmt.Errorf("price refresh failed for all %d symbols", failed)
	}

	j.logger.WithFields(map[string]interface{}{
		"symbols": len(j.config.Backtest.Watchlist),
		"failed":  failed,
	}).Info("Price refresh completed")

	return nil
}
