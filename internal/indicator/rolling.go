// Package indicator implements the technical indicators used by the
// signal generators as pure transforms over close-price slices.
// Leading entries that do not have a full lookback window are NaN.
package indicator

import "math"

// SMA returns the simple moving average over the given window. The
// first window-1 entries are NaN.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RollingStd returns the rolling sample standard deviation (n-1
// divisor) over the given window. The first window-1 entries are NaN.
func RollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window < 2 || len(values) < window {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		mean := sum / float64(window)

		var variance float64
		for j := i - window + 1; j <= i; j++ {
			diff := values[j] - mean
			variance += diff * diff
		}
		out[i] = math.Sqrt(variance / float64(window-1))
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
