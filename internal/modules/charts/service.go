// Package charts turns computed reports into chart-ready series for
// the dashboard front end.
package charts

import (
	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/domain"
	"github.com/aristath/trading-dashboard/internal/modules/metrics"
	"github.com/aristath/trading-dashboard/internal/modules/summary"
	"github.com/aristath/trading-dashboard/pkg/formulas"
)

// smoothingWindow is the SMA window overlaid on the equity curve
const smoothingWindow = 5

// histogramBins matches the distribution chart of the dashboard
const histogramBins = 20

// ChartPoint is a single point on a period-indexed chart
type ChartPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// EquityCurve holds the capital evolution chart: cumulative capital,
// running peak, and an optional smoothed overlay.
type EquityCurve struct {
	Capital  []ChartPoint `json:"capital"`
	Peak     []ChartPoint `json:"peak"`
	Smoothed []ChartPoint `json:"smoothed,omitempty"`
}

// HistogramBin is one bucket of the profit distribution chart
type HistogramBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// Performance holds the gains-vs-losses split and per-period bars
type Performance struct {
	TotalGains  int          `json:"total_gains"`
	TotalLosses int          `json:"total_losses"`
	Bars        []ChartPoint `json:"bars"`
}

// Service provides chart data operations
type Service struct {
	metrics *metrics.Service
	log     zerolog.Logger
}

// NewService creates a new charts service
func NewService(metricsService *metrics.Service, log zerolog.Logger) *Service {
	return &Service{
		metrics: metricsService,
		log:     log.With().Str("service", "charts").Logger(),
	}
}

// EquityCurve returns the capital evolution chart for a granularity
// and filter. A nil result means no data matched.
func (s *Service) EquityCurve(kind domain.PeriodKind, filter summary.Filter) (*EquityCurve, error) {
	report, err := s.metrics.Report(kind, filter)
	if err != nil || report == nil {
		return nil, err
	}

	curve := &EquityCurve{
		Capital: points(report.PeriodKeys, report.CumulativeCapital),
		Peak:    points(report.PeriodKeys, report.Peak),
	}

	if smoothed := formulas.Sma(report.CumulativeCapital, smoothingWindow); smoothed != nil {
		// talib pads the leading window with zeros; skip them
		curve.Smoothed = points(report.PeriodKeys[smoothingWindow-1:], smoothed[smoothingWindow-1:])
	}

	return curve, nil
}

// Distribution returns the profit histogram for a granularity and
// filter. A nil result means no data matched.
func (s *Service) Distribution(kind domain.PeriodKind, filter summary.Filter) ([]HistogramBin, error) {
	records, err := s.metrics.Records(kind, filter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	profits := make([]float64, len(records))
	for i, r := range records {
		profits[i] = r.NetProfit
	}

	return histogram(profits, histogramBins), nil
}

// Performance returns the gains-vs-losses totals and per-period
// result bars. A nil result means no data matched.
func (s *Service) Performance(kind domain.PeriodKind, filter summary.Filter) (*Performance, error) {
	// Totals and bars must come from the same table read
	report, sorted, err := s.metrics.Snapshot(kind, filter)
	if err != nil || report == nil {
		return nil, err
	}

	bars := make([]ChartPoint, len(sorted))
	for i, r := range sorted {
		bars[i] = ChartPoint{Period: r.Key(kind), Value: r.NetProfit}
	}

	return &Performance{
		TotalGains:  report.TotalGains,
		TotalLosses: report.TotalLosses,
		Bars:        bars,
	}, nil
}

func points(keys []string, values []float64) []ChartPoint {
	out := make([]ChartPoint, len(values))
	for i, v := range values {
		out[i] = ChartPoint{Period: keys[i], Value: v}
	}
	return out
}

// histogram buckets the values into equal-width bins. A flat series
// collapses into a single bin holding everything.
func histogram(values []float64, bins int) []HistogramBin {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []HistogramBin{{From: min, To: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i] = HistogramBin{
			From: min + float64(i)*width,
			To:   min + float64(i+1)*width,
		}
	}

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1 // max lands in the last bin
		}
		out[idx].Count++
	}

	return out
}
