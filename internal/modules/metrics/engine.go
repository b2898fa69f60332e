package metrics

import (
	"math"
	"sort"

	"github.com/aristath/trading-dashboard/internal/domain"
	"github.com/aristath/trading-dashboard/pkg/formulas"
)

// Compute derives the full performance report from a sequence of
// period records. Pure: no I/O, no shared state, safe for concurrent
// callers, and the input slice is never mutated.
//
// Empty input returns (nil, nil), the no-data result, distinct from
// a report whose metrics happen to be zero. A non-finite net profit on
// any row returns a *domain.DataError and no report.
//
// Daily and yearly records are sorted chronologically before the
// running series are built. Monthly records keep the order the caller
// loaded them in; month labels are not parsed back into dates.
func Compute(records []domain.PeriodRecord, kind domain.PeriodKind) (*Report, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows := SortChronological(records, kind)

	for _, r := range rows {
		if math.IsNaN(r.NetProfit) || math.IsInf(r.NetProfit, 0) {
			return nil, &domain.DataError{
				Table:     kind.Table(),
				PeriodKey: r.Key(kind),
				Field:     "net_profit",
				Reason:    "not a finite number",
			}
		}
	}

	profits := make([]float64, len(rows))
	keys := make([]string, len(rows))
	for i, r := range rows {
		profits[i] = r.NetProfit
		keys[i] = r.Key(kind)
	}

	capital := formulas.CumulativeSum(profits)
	peak := formulas.RunningPeak(capital)
	drawdown := formulas.DrawdownSeries(capital, peak)

	report := &Report{
		Kind:              kind,
		PeriodKeys:        keys,
		CumulativeCapital: capital,
		Peak:              peak,
		Drawdown:          drawdown,
		TotalPeriods:      len(rows),
	}

	report.MaxDrawdown = formulas.MaxDrawdown(drawdown)
	report.CurrentDrawdown = drawdown[len(drawdown)-1]

	var grossProfit, grossLoss float64
	var sumWins, sumLosses float64
	best, worst := profits[0], profits[0]

	for _, p := range profits {
		switch {
		case p > 0:
			report.PositivePeriods++
			grossProfit += p
			sumWins += p
		case p < 0:
			report.NegativePeriods++
			grossLoss += -p
			sumLosses += -p
		}
		if p > best {
			best = p
		}
		if p < worst {
			worst = p
		}
	}
	report.BestPeriod = best
	report.WorstPeriod = worst

	if grossLoss > 0 {
		report.ProfitFactor = grossProfit / grossLoss
	}

	report.WinRate = float64(report.PositivePeriods) / float64(report.TotalPeriods) * 100

	if report.PositivePeriods > 0 {
		report.AvgWin = sumWins / float64(report.PositivePeriods)
	}
	if report.NegativePeriods > 0 {
		report.AvgLoss = sumLosses / float64(report.NegativePeriods)
	}

	// Expectancy blends the period win rate with the average win/loss
	// magnitudes. The loss weight is the complement of the period win
	// rate, not a trade-count weight.
	report.Expectancy = (report.WinRate/100)*report.AvgWin - ((100-report.WinRate)/100)*report.AvgLoss

	report.Sharpe = formulas.AnnualizedSharpe(profits, kind.AnnualizationFactor())

	report.CapitalFinal = capital[len(capital)-1]
	report.CapitalMax = capital[0]
	for _, c := range capital {
		if c > report.CapitalMax {
			report.CapitalMax = c
		}
	}

	if report.MaxDrawdown < 0 {
		report.RecoveryFactor = math.Abs(report.CapitalFinal / report.MaxDrawdown)
	}
	if report.CapitalMax > 0 {
		report.MaxDrawdownPct = report.MaxDrawdown / report.CapitalMax * 100
	}
	if report.AvgLoss > 0 {
		report.RiskReward = report.AvgWin / report.AvgLoss
	}

	for _, r := range rows {
		report.TotalTrades += r.TradeCount
		report.TotalGains += r.GainsCount
		report.TotalLosses += r.LossesCount
	}

	return report, nil
}

// SortChronological returns a copy of the records in computation
// order: by date for daily, by year for yearly. Monthly labels are
// not parsed, so monthly records keep their given order.
func SortChronological(records []domain.PeriodRecord, kind domain.PeriodKind) []domain.PeriodRecord {
	rows := make([]domain.PeriodRecord, len(records))
	copy(rows, records)

	switch kind {
	case domain.KindDaily:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	case domain.KindYearly:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	}

	return rows
}
