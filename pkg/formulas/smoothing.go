package formulas

import (
	"github.com/markcheno/go-talib"
)

// Sma returns the simple moving average of the series over the given
// window, used to overlay a smoothed line on the equity curve chart.
// Returns nil when there are not enough points for a single window.
func Sma(values []float64, window int) []float64 {
	if window < 2 || len(values) < window {
		return nil
	}

	return talib.Sma(values, window)
}
