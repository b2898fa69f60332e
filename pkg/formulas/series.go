package formulas

// CumulativeSum returns the running sum of the input series.
// CumulativeSum(v)[i] = v[0] + v[1] + ... + v[i]
func CumulativeSum(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		out[i] = sum
	}
	return out
}

// RunningPeak returns the prefix maximum of the input series.
// The result is monotonically non-decreasing.
func RunningPeak(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	out := make([]float64, len(values))
	peak := values[0]
	for i, v := range values {
		if v > peak {
			peak = v
		}
		out[i] = peak
	}
	return out
}

// DrawdownSeries returns the distance of each capital value below its
// running peak. Every element is <= 0 by construction.
//
// Drawdown Formula:
//
//	Drawdown[i] = Capital[i] - Peak[i]
func DrawdownSeries(capital, peak []float64) []float64 {
	if len(capital) == 0 || len(capital) != len(peak) {
		return nil
	}

	out := make([]float64, len(capital))
	for i := range capital {
		out[i] = capital[i] - peak[i]
	}
	return out
}

// MaxDrawdown returns the most negative value of a drawdown series,
// or 0 for an empty series or one that never dips below its peak.
func MaxDrawdown(drawdown []float64) float64 {
	worst := 0.0
	for _, d := range drawdown {
		if d < worst {
			worst = d
		}
	}
	return worst
}
