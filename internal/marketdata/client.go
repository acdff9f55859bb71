package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/lzhao/talos/pkg/config"
	"github.com/lzhao/talos/pkg/httputil"
	"github.com/lzhao/talos/pkg/logger"
)

// Client fetches daily bars from the 163 quote service. Remote calls
// to the quote service happen only in this file.
type Client struct {
	http    *httputil.Client
	limiter *rate.Limiter
	cfg     config.DataSourceConfig
	logger  *logger.Logger
}

// NewClient creates a market data client.
func NewClient(cfg config.DataSourceConfig, http *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		http:    http,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cfg:     cfg,
		logger:  log,
	}
}

// FetchDailyBars fetches daily OHLCV bars for a symbol over [from, to],
// returned ordered by date ascending.
func (c *Client) FetchDailyBars(ctx context.Context, symbol Symbol, from, to time.Time) ([]Bar, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	// chddata serves daily history as GBK-encoded CSV, newest first.
	fullURL := fmt.Sprintf(
		"%s/service/chddata.html?code=%s%s&start=%s&end=%s&fields=TCLOSE;HIGH;LOW;TOPEN;VOTURNOVER",
		c.cfg.BaseURL,
		symbol.MarketDigit(), symbol.Code,
		from.Format("20060102"), to.Format("20060102"),
	)

	resp, err := c.http.Get(ctx, fullURL, map[string]string{
		"User-Agent": c.cfg.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	decoded := transform.NewReader(resp.Body, simplifiedchinese.GBK.NewDecoder())
	bars, err := parseDailyCSV(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol.String(),
		"count":  len(bars),
	}).Debug("Fetched daily bars")
	return bars, nil
}

// parseDailyCSV parses the chddata CSV payload.
// Columns: 日期,股票代码,名称,收盘价,最高价,最低价,开盘价,成交量
func parseDailyCSV(r io.Reader) ([]Bar, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var bars []Bar
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line++
		if line == 1 || len(record) < 8 {
			continue // header or short row
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}

		closePrice, err := parsePrice(record[3])
		if err != nil {
			// Suspended days come back as "None"
			continue
		}
		high, err := parsePrice(record[4])
		if err != nil {
			continue
		}
		low, err := parsePrice(record[5])
		if err != nil {
			continue
		}
		open, err := parsePrice(record[6])
		if err != nil {
			continue
		}
		volume, _ := strconv.ParseInt(strings.TrimSpace(record[7]), 10, 64)

		bars = append(bars, Bar{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	// Served newest first; flip to ascending.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}

	if err := ValidateSeries(bars); err != nil {
		return nil, err
	}

	return bars, nil
}

// parsePrice parses a price cell, rejecting empty/None/zero values.
func parsePrice(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "None" {
		return 0, fmt.Errorf("empty price cell")
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive price %v", v)
	}
	return v, nil
}
