package metrics

import (
	"github.com/aristath/trading-dashboard/internal/domain"
)

// Report holds every derived statistic for one summary table. The
// three series are aligned by index with the sorted input records.
type Report struct {
	Kind domain.PeriodKind `json:"kind"`

	PeriodKeys        []string  `json:"period_keys"`
	CumulativeCapital []float64 `json:"cumulative_capital"`
	Peak              []float64 `json:"peak"`
	Drawdown          []float64 `json:"drawdown"`

	MaxDrawdown     float64 `json:"max_drawdown"`     // most negative drawdown (<= 0)
	CurrentDrawdown float64 `json:"current_drawdown"` // drawdown at the last period
	MaxDrawdownPct  float64 `json:"max_drawdown_pct"` // max drawdown over peak capital, percent
	ProfitFactor    float64 `json:"profit_factor"`
	WinRate         float64 `json:"win_rate"` // percent of profitable periods
	AvgWin          float64 `json:"avg_win"`
	AvgLoss         float64 `json:"avg_loss"` // absolute value
	Expectancy      float64 `json:"expectancy"`
	Sharpe          float64 `json:"sharpe"`
	RecoveryFactor  float64 `json:"recovery_factor"`
	RiskReward      float64 `json:"risk_reward"`
	CapitalFinal    float64 `json:"capital_final"`
	CapitalMax      float64 `json:"capital_max"`

	TotalTrades int `json:"total_trades"`
	TotalGains  int `json:"total_gains"`
	TotalLosses int `json:"total_losses"`

	TotalPeriods    int     `json:"total_periods"`
	PositivePeriods int     `json:"positive_periods"`
	NegativePeriods int     `json:"negative_periods"`
	BestPeriod      float64 `json:"best_period"`
	WorstPeriod     float64 `json:"worst_period"`
}
