package indicator

import "testing"

func TestMACD(t *testing.T) {
	lines := MACD([]float64{1, 2, 3}, 2, 4, 2)

	// EMA(2): 1, 5/3, 23/9. EMA(4): 1, 1.4, 2.04.
	assertSeries(t, []float64{0, 0.2666666667, 0.5155555556}, lines.DIF)
	assertSeries(t, []float64{0, 0.1777777778, 0.4029629630}, lines.DEA)
	assertSeries(t, []float64{0, 0.1777777778, 0.2251851852}, lines.Hist)
}

func TestMACDConstantSeries(t *testing.T) {
	lines := MACD([]float64{5, 5, 5, 5}, 12, 26, 9)

	for i := range lines.DIF {
		if lines.DIF[i] != 0 || lines.DEA[i] != 0 || lines.Hist[i] != 0 {
			t.Errorf("index %d: want all zero on constant series, got DIF=%v DEA=%v Hist=%v",
				i, lines.DIF[i], lines.DEA[i], lines.Hist[i])
		}
	}
}

func TestMACDHistIdentity(t *testing.T) {
	closes := []float64{3, 7, 5, 9, 6, 11, 8, 13}
	lines := MACD(closes, 3, 6, 2)

	for i := range closes {
		want := (lines.DIF[i] - lines.DEA[i]) * 2
		if diff := lines.Hist[i] - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("index %d: Hist != 2*(DIF-DEA): %v vs %v", i, lines.Hist[i], want)
		}
	}
}
