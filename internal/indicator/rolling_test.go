package indicator

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{math.NaN(), math.NaN(), 2, 3, 4}

	assertSeries(t, want, got)
}

func TestSMAShortSeries(t *testing.T) {
	got := SMA([]float64{1, 2}, 3)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Errorf("index %d: want NaN, got %v", i, v)
		}
	}
}

func TestRollingStd(t *testing.T) {
	// Sample standard deviation, n-1 divisor: std([1,2,3]) == 1.
	got := RollingStd([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{math.NaN(), math.NaN(), 1, 1, 1}

	assertSeries(t, want, got)
}

func TestRollingStdConstantSeries(t *testing.T) {
	got := RollingStd([]float64{7, 7, 7, 7}, 3)
	want := []float64{math.NaN(), math.NaN(), 0, 0}

	assertSeries(t, want, got)
}

func TestEMA(t *testing.T) {
	// span 3 -> alpha 0.5, seeded with the first value.
	got := EMA([]float64{2, 4, 8}, 3)
	want := []float64{2, 3, 5.5}

	assertSeries(t, want, got)
}

func TestEMAEmpty(t *testing.T) {
	if got := EMA(nil, 3); len(got) != 0 {
		t.Errorf("want empty, got %v", got)
	}
}

// assertSeries compares two float series treating NaN as equal to NaN.
func assertSeries(t *testing.T, want, got []float64) {
	t.Helper()

	if len(want) != len(got) {
		t.Fatalf("length mismatch: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Errorf("index %d: want NaN, got %v", i, got[i])
			}
			continue
		}
		if math.Abs(want[i]-got[i]) > 1e-9 {
			t.Errorf("index %d: want %v, got %v", i, want[i], got[i])
		}
	}
}
