package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/cache"
)

// CacheMaintenanceJob sweeps expired report entries out of the cache.
// Lookups already ignore expired entries; the sweep just keeps the map
// from accumulating dead filter combinations.
type CacheMaintenanceJob struct {
	cache *cache.ReportCache
	log   zerolog.Logger
}

// NewCacheMaintenanceJob creates a new cache maintenance job
func NewCacheMaintenanceJob(reportCache *cache.ReportCache, log zerolog.Logger) *CacheMaintenanceJob {
	return &CacheMaintenanceJob{
		cache: reportCache,
		log:   log.With().Str("job", "cache_maintenance").Logger(),
	}
}

// Name returns the job name
func (j *CacheMaintenanceJob) Name() string {
	return "cache_maintenance"
}

// Run purges expired cache entries
func (j *CacheMaintenanceJob) Run() error {
	dropped := j.cache.PurgeExpired()
	if dropped > 0 {
		j.log.Debug().Int("dropped", dropped).Msg("Purged expired reports")
	}
	return nil
}
