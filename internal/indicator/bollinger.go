package indicator

// BollingerBands holds the three band lines plus %B, aligned with the
// input series. Entries before the first full window are NaN.
type BollingerBands struct {
	Mid      []float64 // SMA(close, window)
	Upper    []float64 // mid + numStd*std
	Lower    []float64 // mid - numStd*std
	PercentB []float64 // (close-lower)/(upper-lower)
}

// Bollinger computes Bollinger bands over the close series.
func Bollinger(closes []float64, window int, numStd float64) BollingerBands {
	mid := SMA(closes, window)
	std := RollingStd(closes, window)

	upper := nanSlice(len(closes))
	lower := nanSlice(len(closes))
	percentB := nanSlice(len(closes))

	for i := range closes {
		upper[i] = mid[i] + std[i]*numStd
		lower[i] = mid[i] - std[i]*numStd
		// NaN bands propagate NaN %B; a zero-width band does too.
		percentB[i] = (closes[i] - lower[i]) / (upper[i] - lower[i])
	}

	return BollingerBands{
		Mid:      mid,
		Upper:    upper,
		Lower:    lower,
		PercentB: percentB,
	}
}

// FirstValid returns the index of the first bar with defined bands,
// or -1 when the series never fills a window.
func (b BollingerBands) FirstValid() int {
	for i := range b.Mid {
		if !isNaN(b.Mid[i]) {
			return i
		}
	}
	return -1
}

func isNaN(v float64) bool {
	return v != v
}
