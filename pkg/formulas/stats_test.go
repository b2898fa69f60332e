package formulas

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("Mean = %v, want 2", got)
	}
}

func TestStdDev(t *testing.T) {
	if got := StdDev(nil); got != 0 {
		t.Errorf("StdDev(nil) = %v, want 0", got)
	}

	// sample definition: divide by n-1
	got := StdDev([]float64{2, 4})
	if math.Abs(got-math.Sqrt2) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", got, math.Sqrt2)
	}
}

func TestVariance(t *testing.T) {
	got := Variance([]float64{2, 4})
	if math.Abs(got-2) > 1e-12 {
		t.Errorf("Variance = %v, want 2", got)
	}
}
