package indicator

// MACDLines holds the MACD family lines, aligned with the input
// series. All entries are defined because the EMAs are seeded from the
// first observation.
type MACDLines struct {
	DIF  []float64 // EMA(fast) - EMA(slow)
	DEA  []float64 // EMA(DIF, signal)
	Hist []float64 // (DIF-DEA)*2
}

// MACD computes the MACD lines over the close series.
func MACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) MACDLines {
	emaFast := EMA(closes, fastPeriod)
	emaSlow := EMA(closes, slowPeriod)

	dif := make([]float64, len(closes))
	for i := range closes {
		dif[i] = emaFast[i] - emaSlow[i]
	}

	dea := EMA(dif, signalPeriod)

	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = (dif[i] - dea[i]) * 2
	}

	return MACDLines{DIF: dif, DEA: dea, Hist: hist}
}
