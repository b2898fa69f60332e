package metrics

import (
	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/cache"
	"github.com/aristath/trading-dashboard/internal/domain"
	"github.com/aristath/trading-dashboard/internal/events"
	"github.com/aristath/trading-dashboard/internal/modules/summary"
)

// Service computes reports on demand: load, filter, compute, cache.
// The cache key carries the source freshness token, so a recorder
// write invalidates cached reports without waiting out the TTL.
type Service struct {
	source summary.Source
	cache  *cache.ReportCache
	events *events.Manager
	log    zerolog.Logger
}

// snapshot pairs a computed report with the records it was computed
// over, chronological and index-aligned with the report series. Both
// sides come from the same table read, so a concurrent recorder write
// can never leave them disagreeing.
type snapshot struct {
	report *Report
	rows   []domain.PeriodRecord
}

// NewService creates a new metrics service
func NewService(source summary.Source, reportCache *cache.ReportCache, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		cache:  reportCache,
		events: eventManager,
		log:    log.With().Str("service", "metrics").Logger(),
	}
}

// Report returns the computed report for a granularity and filter.
// A nil report with a nil error is the no-data result.
func (s *Service) Report(kind domain.PeriodKind, filter summary.Filter) (*Report, error) {
	snap, err := s.load(kind, filter)
	if err != nil || snap == nil {
		return nil, err
	}
	return snap.report, nil
}

// Snapshot returns the report together with the rows it was computed
// over, in computation order. Callers that pair report series values
// with record fields must use this rather than loading records
// separately: a second read could see a different table state.
func (s *Service) Snapshot(kind domain.PeriodKind, filter summary.Filter) (*Report, []domain.PeriodRecord, error) {
	snap, err := s.load(kind, filter)
	if err != nil || snap == nil {
		return nil, nil, err
	}
	return snap.report, snap.rows, nil
}

// Records returns the filtered records for a granularity, in the
// order the source serves them.
func (s *Service) Records(kind domain.PeriodKind, filter summary.Filter) ([]domain.PeriodRecord, error) {
	records, err := s.source.Load(kind)
	if err != nil {
		return nil, err
	}
	return filter.Apply(records), nil
}

func (s *Service) load(kind domain.PeriodKind, filter summary.Filter) (*snapshot, error) {
	freshness, err := s.source.Freshness(kind)
	if err != nil {
		return nil, err
	}

	key := cache.Key{
		Table:     kind.Table(),
		Kind:      kind,
		Filter:    filter.CacheKey(),
		Freshness: freshness,
	}

	if cached, ok := s.cache.Get(key); ok {
		if snap, ok := cached.(*snapshot); ok {
			return snap, nil
		}
	}

	records, err := s.source.Load(kind)
	if err != nil {
		return nil, err
	}
	s.events.Emit(events.DataLoaded, "metrics", map[string]interface{}{
		"kind":    string(kind),
		"records": len(records),
	})

	filtered := filter.Apply(records)
	s.log.Debug().
		Str("kind", string(kind)).
		Int("loaded", len(records)).
		Int("filtered", len(filtered)).
		Msg("Records ready for computation")

	sorted := SortChronological(filtered, kind)
	report, err := Compute(sorted, kind)
	if err != nil {
		s.events.EmitError("metrics", err, map[string]interface{}{"kind": string(kind)})
		return nil, err
	}
	if report == nil {
		return nil, nil
	}

	snap := &snapshot{report: report, rows: sorted}
	s.cache.Set(key, snap)
	s.events.Emit(events.ReportComputed, "metrics", map[string]interface{}{
		"kind":    string(kind),
		"periods": report.TotalPeriods,
	})

	return snap, nil
}
