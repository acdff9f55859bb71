package indicator

// EMA returns the exponential moving average with the given span,
// seeded with the first observation:
//
//	ema[0] = x[0]
//	ema[i] = alpha*x[i] + (1-alpha)*ema[i-1],  alpha = 2/(span+1)
//
// Every entry is defined, matching the recursive (non-adjusted) form.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
