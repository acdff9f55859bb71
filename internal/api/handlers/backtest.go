// Package handlers holds the HTTP handlers for the API server.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lzhao/talos/internal/backtest"
	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/internal/performance"
	"github.com/lzhao/talos/internal/pipeline"
	"github.com/lzhao/talos/internal/strategy"
	"github.com/lzhao/talos/pkg/config"
	"github.com/lzhao/talos/pkg/logger"
)

// BacktestHandler serves backtest runs over HTTP.
type BacktestHandler struct {
	service *marketdata.Service
	config  *config.Config
	logger  *logger.Logger
}

// NewBacktestHandler creates a backtest handler.
func NewBacktestHandler(service *marketdata.Service, cfg *config.Config, log *logger.Logger) *BacktestHandler {
	return &BacktestHandler{
		service: service,
		config:  cfg,
		logger:  log,
	}
}

// BacktestRequest is the POST /api/backtest payload.
type BacktestRequest struct {
	Symbol         string  `json:"symbol"`
	From           string  `json:"from"` // YYYY-MM-DD
	To             string  `json:"to"`   // YYYY-MM-DD, default today
	Strategy       string  `json:"strategy"`
	InitialCapital float64 `json:"initial_capital,omitempty"`
}

// Run executes a backtest for the requested symbol and range.
func (h *BacktestHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Symbol == "" || req.From == "" || req.Strategy == "" {
		writeError(w, http.StatusBadRequest, "symbol, from and strategy are required")
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		return
	}

	to := time.Now()
	if req.To != "" {
		if to, err = time.Parse("2006-01-02", req.To); err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
			return
		}
	}

	capital := req.InitialCapital
	if capital <= 0 {
		capital = h.config.Backtest.InitialCapital
	}

	strat, err := strategy.New(req.Strategy, h.logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bars, err := h.service.GetDailyBars(r.Context(), req.Symbol, from, to)
	if err != nil {
		h.logger.WithError(err).Warn("Bar lookup failed")
		writeError(w, http.StatusBadGateway, "failed to load price data")
		return
	}

	runner := pipeline.NewRunner(
		strat,
		backtest.NewEngine(h.logger),
		performance.NewAnalyzer(h.logger),
		h.logger,
	)

	result, err := runner.Run(bars, capital)
	if err != nil {
		h.logger.WithError(err).Warn("Pipeline run failed")
		status := http.StatusInternalServerError
		if errors.Is(err, strategy.ErrInsufficientData) || errors.Is(err, backtest.ErrMisalignedSeries) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":   req.Symbol,
		"strategy": result.Strategy,
		"summary":  result.Summary,
		"fills":    result.Timeline.Fills,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
