package marketdata

import (
	"fmt"
	"time"
)

// Bar is one trading-day observation. Bars are always handed around
// ordered by date ascending, one bar per trading day.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Profile holds static company information for a symbol.
type Profile struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Closes extracts the close column from a bar series.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// ValidateSeries checks the ordering contract: dates strictly
// increasing, closes positive.
func ValidateSeries(bars []Bar) error {
	for i, b := range bars {
		if b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): non-positive close %.4f", i, b.Date.Format("2006-01-02"), b.Close)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("bar %d (%s): date not after previous bar (%s)",
				i, b.Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}
