package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/trading-dashboard/internal/domain"
)

// Key identifies one computed report. Freshness is an opaque token
// from the data source, so a table change produces a new key instead
// of serving a stale report for a full TTL.
type Key struct {
	Table     string
	Kind      domain.PeriodKind
	Filter    string
	Freshness string
}

type entry struct {
	value     any
	expiresAt time.Time
}

// ReportCache holds computed reports for a short TTL. Cached values
// are treated as immutable: callers must not modify what Get returns.
type ReportCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[Key]entry
	log     zerolog.Logger
}

// New creates a new report cache
func New(ttl time.Duration, log zerolog.Logger) *ReportCache {
	return &ReportCache{
		ttl:     ttl,
		entries: make(map[Key]entry),
		log:     log.With().Str("component", "report_cache").Logger(),
	}
}

// Get returns the cached value for the key, if present and not expired
func (c *ReportCache) Get(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under the key for the cache TTL
func (c *ReportCache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear drops every cached report (manual refresh)
func (c *ReportCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[Key]entry)

	c.log.Debug().Int("dropped", n).Msg("Report cache cleared")
}

// PurgeExpired removes expired entries and returns how many were dropped
func (c *ReportCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	dropped := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of entries, expired or not
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
