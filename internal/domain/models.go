package domain

import (
	"fmt"
	"time"
)

// PeriodKind identifies the aggregation granularity of a summary table
type PeriodKind string

const (
	KindDaily   PeriodKind = "daily"
	KindMonthly PeriodKind = "monthly"
	KindYearly  PeriodKind = "yearly"
)

// ParsePeriodKind converts a URL/query value into a PeriodKind
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch PeriodKind(s) {
	case KindDaily, KindMonthly, KindYearly:
		return PeriodKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriodKind, s)
	}
}

// Table returns the summary table this kind is loaded from.
// Table names match the schema produced by the upstream recorder.
func (k PeriodKind) Table() string {
	switch k {
	case KindDaily:
		return "resumo_diario"
	case KindMonthly:
		return "resumo_mensal"
	case KindYearly:
		return "resumo_anual"
	}
	return ""
}

// AnnualizationFactor returns the number of periods per year used to
// annualize the Sharpe ratio: 252 trading days, 12 months, or 1 year.
func (k PeriodKind) AnnualizationFactor() float64 {
	switch k {
	case KindDaily:
		return 252
	case KindMonthly:
		return 12
	default:
		return 1
	}
}

// DateFormat is the day format used by the recorder (dd/mm/yyyy)
const DateFormat = "02/01/2006"

// PeriodRecord is one row of aggregated trading activity for a single
// period. Exactly one of Date, Label or Year identifies the period,
// depending on the kind of the table it was loaded from.
type PeriodRecord struct {
	Date  time.Time `json:"date,omitempty"`  // daily
	Label string    `json:"label,omitempty"` // monthly, e.g. "03/2024"
	Year  int       `json:"year,omitempty"`  // yearly

	NetProfit   float64 `json:"net_profit"`
	TradeCount  int     `json:"trade_count"`
	GainsCount  int     `json:"gains_count"`
	LossesCount int     `json:"losses_count"`
}

// Key returns the display form of the period identifier
func (r PeriodRecord) Key(kind PeriodKind) string {
	switch kind {
	case KindDaily:
		return r.Date.Format(DateFormat)
	case KindMonthly:
		return r.Label
	case KindYearly:
		return fmt.Sprintf("%d", r.Year)
	}
	return ""
}
