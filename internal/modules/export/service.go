// Package export writes the filtered period table, with its computed
// capital columns, as a CSV download.
package export

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/domain"
	"github.com/aristath/trading-dashboard/internal/modules/metrics"
	"github.com/aristath/trading-dashboard/internal/modules/summary"
)

// Row is one CSV line: the record fields plus the computed running
// columns, aligned with the report series.
type Row struct {
	Period            string  `csv:"PERIOD"`
	NetProfit         float64 `csv:"NET PROFIT"`
	TradeCount        int     `csv:"TOTAL TRADES"`
	GainsCount        int     `csv:"GAINS"`
	LossesCount       int     `csv:"LOSSES"`
	CumulativeCapital float64 `csv:"CAPITAL"`
	Peak              float64 `csv:"PEAK"`
	Drawdown          float64 `csv:"DRAWDOWN"`
}

// Service builds CSV exports
type Service struct {
	metrics *metrics.Service
	now     func() time.Time
	log     zerolog.Logger
}

// NewService creates a new export service
func NewService(metricsService *metrics.Service, log zerolog.Logger) *Service {
	return &Service{
		metrics: metricsService,
		now:     time.Now,
		log:     log.With().Str("service", "export").Logger(),
	}
}

// Build returns the export rows for a granularity and filter, in
// computation order, plus the download filename stamped with the
// current date and the granularity. Rows are nil when no data matched.
func (s *Service) Build(kind domain.PeriodKind, filter summary.Filter) ([]Row, string, error) {
	filename := fmt.Sprintf("trading_%s_%s.csv", kind, s.now().Format("20060102"))

	// Report series and rows must come from the same table read, or a
	// recorder write between reads would misalign them.
	report, sorted, err := s.metrics.Snapshot(kind, filter)
	if err != nil || report == nil {
		return nil, filename, err
	}

	rows := make([]Row, len(sorted))
	for i, r := range sorted {
		rows[i] = Row{
			Period:            r.Key(kind),
			NetProfit:         r.NetProfit,
			TradeCount:        r.TradeCount,
			GainsCount:        r.GainsCount,
			LossesCount:       r.LossesCount,
			CumulativeCapital: report.CumulativeCapital[i],
			Peak:              report.Peak[i],
			Drawdown:          report.Drawdown[i],
		}
	}

	return rows, filename, nil
}
