package export

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/trading-dashboard/internal/cache"
	"github.com/aristath/trading-dashboard/internal/domain"
	"github.com/aristath/trading-dashboard/internal/events"
	"github.com/aristath/trading-dashboard/internal/modules/metrics"
	"github.com/aristath/trading-dashboard/internal/modules/summary"
)

type fakeSource struct {
	records []domain.PeriodRecord
}

func (f *fakeSource) Load(kind domain.PeriodKind) ([]domain.PeriodRecord, error) {
	return f.records, nil
}

func (f *fakeSource) Freshness(kind domain.PeriodKind) (string, error) {
	return "fixed", nil
}

func dailySource(profits ...float64) *fakeSource {
	records := make([]domain.PeriodRecord, len(profits))
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range profits {
		records[i] = domain.PeriodRecord{Date: start.AddDate(0, 0, i), NetProfit: p, TradeCount: 2}
		if p > 0 {
			records[i].GainsCount = 1
		} else if p < 0 {
			records[i].LossesCount = 1
		}
	}
	return &fakeSource{records: records}
}

// growingSource serves one more row on every Load, standing in for a
// recorder that writes between two reads of the same request.
type growingSource struct {
	loads int
}

func (g *growingSource) Load(kind domain.PeriodKind) ([]domain.PeriodRecord, error) {
	g.loads++
	profits := []float64{100, -50}
	if g.loads > 1 {
		profits = append(profits, 80)
	}
	return dailySource(profits...).records, nil
}

func (g *growingSource) Freshness(kind domain.PeriodKind) (string, error) {
	return "fixed", nil
}

func newTestExport(source summary.Source) *Service {
	log := zerolog.Nop()
	metricsService := metrics.NewService(source, cache.New(time.Minute, log), events.NewManager(log), log)
	service := NewService(metricsService, log)
	service.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return service
}

func TestBuild(t *testing.T) {
	service := newTestExport(dailySource(100, -50, 80))

	rows, filename, err := service.Build(domain.KindDaily, summary.Filter{})
	require.NoError(t, err)

	assert.Equal(t, "trading_daily_20240315.csv", filename)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{
		Period:            "02/03/2024",
		NetProfit:         -50,
		TradeCount:        2,
		LossesCount:       1,
		CumulativeCapital: 50,
		Peak:              100,
		Drawdown:          -50,
	}, rows[1])

	assert.Equal(t, 130.0, rows[2].CumulativeCapital)
	assert.Equal(t, 0.0, rows[2].Drawdown)
}

func TestBuildRowsFollowComputationOrder(t *testing.T) {
	// Records arrive newest-first; the export must line up with the
	// chronological series the report was computed over.
	source := dailySource(100, -50)
	source.records[0], source.records[1] = source.records[1], source.records[0]

	service := newTestExport(source)
	rows, _, err := service.Build(domain.KindDaily, summary.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "01/03/2024", rows[0].Period)
	assert.Equal(t, 100.0, rows[0].CumulativeCapital)
	assert.Equal(t, "02/03/2024", rows[1].Period)
	assert.Equal(t, 50.0, rows[1].CumulativeCapital)
}

func TestBuildSingleReadPerRequest(t *testing.T) {
	source := &growingSource{}
	service := newTestExport(source)

	rows, _, err := service.Build(domain.KindDaily, summary.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, source.loads, "rows and series must come from one read")

	// Every row carries capital columns from the same snapshot
	require.Len(t, rows, 2)
	assert.Equal(t, 100.0, rows[0].CumulativeCapital)
	assert.Equal(t, 50.0, rows[1].CumulativeCapital)
	assert.Equal(t, -50.0, rows[1].Drawdown)
}

func TestBuildNoData(t *testing.T) {
	service := newTestExport(&fakeSource{})

	rows, filename, err := service.Build(domain.KindDaily, summary.Filter{})
	require.NoError(t, err)
	assert.Nil(t, rows)
	assert.Equal(t, "trading_daily_20240315.csv", filename)
}

func TestBuildFilterApplies(t *testing.T) {
	service := newTestExport(dailySource(100, -50, 80))

	rows, _, err := service.Build(domain.KindDaily, summary.Filter{Sign: summary.SignNegative})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, -50.0, rows[0].NetProfit)
	assert.Equal(t, -50.0, rows[0].CumulativeCapital)
}
