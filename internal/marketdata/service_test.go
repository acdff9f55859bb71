package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/lzhao/talos/pkg/config"
	"github.com/lzhao/talos/pkg/httputil"
	"github.com/lzhao/talos/pkg/logger"
)

// newTestService wires a service against a fake quote endpoint. No
// repository, no cache: every call hits the handler.
func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.NewNop()
	cfg := config.DataSourceConfig{
		BaseURL:           server.URL,
		ProfileBaseURL:    server.URL,
		UserAgent:         "talos-test",
		RequestsPerSecond: 1000,
		Timeout:           5 * time.Second,
	}

	client := NewClient(cfg, httputil.New(log, cfg.Timeout).DisableRetry(), log)
	return NewService(client, nil, nil, log), server
}

// writeGBK writes a UTF-8 payload GBK-encoded, as the live endpoints
// do.
func writeGBK(t *testing.T, w http.ResponseWriter, payload string) {
	t.Helper()
	encoded, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(payload))
	require.NoError(t, err)
	_, _ = w.Write(encoded)
}

func quoteCSV(days int) string {
	// Newest first, the way the endpoint serves it.
	out := "日期,股票代码,名称,收盘价,最高价,最低价,开盘价,成交量\n"
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := days - 1; i >= 0; i-- {
		d := start.AddDate(0, 0, i)
		price := 10.0 + float64(i%7)
		out += fmt.Sprintf("%s,'601318,中国平安,%.2f,%.2f,%.2f,%.2f,%d\n",
			d.Format("2006-01-02"), price, price+0.5, price-0.5, price, 100000+i)
	}
	return out
}

func TestServiceGetDailyBars(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/service/chddata.html")
		assert.Equal(t, "0601318", r.URL.Query().Get("code"))
		writeGBK(t, w, quoteCSV(10))
	})

	from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)

	bars, err := service.GetDailyBars(context.Background(), "601318", from, to)
	require.NoError(t, err)
	require.Len(t, bars, 10)

	// Ascending after the flip.
	assert.True(t, bars[0].Date.Before(bars[len(bars)-1].Date))
	assert.Equal(t, from, bars[0].Date)
}

func TestServiceGetDailyBarsRejectsBadSymbol(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("remote should not be called for an invalid symbol")
	})

	_, err := service.GetDailyBars(context.Background(), "not-a-symbol", time.Now(), time.Now())
	assert.Error(t, err)
}

func TestServiceGetDailyBarsRemoteFailure(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := service.GetDailyBars(context.Background(), "601318",
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestServiceGetDailyBarsEmptyRange(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeGBK(t, w, "日期,股票代码,名称,收盘价,最高价,最低价,开盘价,成交量\n")
	})

	_, err := service.GetDailyBars(context.Background(), "601318",
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestServiceRefreshDailyBars(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeGBK(t, w, quoteCSV(5))
	})

	count, err := service.RefreshDailyBars(context.Background(), "601318",
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestServiceGetProfile(t *testing.T) {
	service, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gszl_601318.html")
		writeGBK(t, w, `<html><head><title>中国平安(601318)</title></head><body></body></html>`)
	})

	profile, err := service.GetProfile(context.Background(), "601318")
	require.NoError(t, err)
	assert.Equal(t, "sh601318", profile.Symbol)
	assert.Equal(t, "中国平安", profile.Name)
}
