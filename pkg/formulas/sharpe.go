package formulas

import (
	"math"
)

// AnnualizedSharpe calculates the annualized Sharpe ratio of a series
// of periodic profit/loss values.
//
// Sharpe Ratio Formula:
//
//	Sharpe = Mean(returns) / StdDev(returns)
//	Annualized: Sharpe × sqrt(periods per year)
//
// StdDev is the sample standard deviation, which is undefined for a
// single observation. Returns 0 when the series has no volatility or
// too few points, regardless of the mean.
func AnnualizedSharpe(returns []float64, periodsPerYear float64) float64 {
	stdDev := StdDev(returns)
	if stdDev == 0 || math.IsNaN(stdDev) {
		return 0
	}

	return (Mean(returns) / stdDev) * math.Sqrt(periodsPerYear)
}
