package cache

import (
	"fmt"
	"log/slog"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/crawler"
	"dslabs/dssearch/pkg/telemetry/metrics"
)

// Cache is the three-tier result cache. All operations are safe for
// concurrent use; per-key operations are atomic within each tier.
type Cache struct {
	memory     *memoryTier
	file       *fileTier
	store      *storeTier
	defaultTTL time.Duration
	logger     *slog.Logger
	metrics    *metrics.Collector
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the cache logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Cache) { c.metrics = m }
}

// New creates a three-tier cache from configuration. The persistent tier is
// attached only when cfg.StorePath is set; a store open failure degrades the
// cache to two tiers rather than failing construction.
func New(cfg *config.CacheConfig, opts ...Option) *Cache {
	c := &Cache{
		memory:     newMemoryTier(cfg.MemoryMax),
		file:       newFileTier(cfg.Dir),
		defaultTTL: time.Duration(cfg.DefaultTTLHours) * time.Hour,
		logger:     slog.Default().With("component", "cache"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.StorePath != "" {
		store, err := newStoreTier(cfg.StorePath)
		if err != nil {
			c.logger.Warn("cache store unavailable, continuing with memory+file tiers", "error", err)
		} else {
			c.store = store
		}
	}

	return c
}

// Get returns the cached entry for the query, trying memory, file, and
// store tiers in order. Hits on lower tiers are promoted upward: file hits
// into memory, store hits into memory and file. Expired entries anywhere
// are treated as a miss. Tier I/O failures are logged and treated as a
// miss.
func (c *Cache) Get(query string) *Entry {
	hash := Key(query)
	now := time.Now()

	if entry := c.memory.get(hash, now); entry != nil {
		c.recordHit("memory")
		return entry
	}

	if entry, err := c.file.get(hash, now); err != nil {
		c.logger.Warn("file tier lookup failed", "query_hash", hash, "error", err)
	} else if entry != nil {
		entry.HitCount++
		c.memory.put(hash, entry)
		c.recordHit("file")
		cp := *entry
		return &cp
	}

	if c.store != nil {
		if entry, err := c.store.get(hash, now); err != nil {
			c.logger.Warn("store tier lookup failed", "query_hash", hash, "error", err)
		} else if entry != nil {
			entry.HitCount++
			c.memory.put(hash, entry)
			if err := c.file.put(hash, entry); err != nil {
				c.logger.Warn("file tier promotion failed", "query_hash", hash, "error", err)
			}
			c.recordHit("store")
			cp := *entry
			return &cp
		}
	}

	if c.metrics != nil {
		c.metrics.RecordCacheMiss()
	}
	return nil
}

// Put writes the result set for the query to every available tier. A zero
// ttl uses the configured default. Tier failures are logged; caching is
// best-effort and never fails the request.
func (c *Cache) Put(query string, results []crawler.RawResult, ttl time.Duration, source ResultSource) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := time.Now()
	entry := &Entry{
		QueryHash: Key(query),
		Query:     query,
		Results:   results,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Source:    source,
	}

	c.memory.put(entry.QueryHash, entry)

	if err := c.file.put(entry.QueryHash, entry); err != nil {
		c.logger.Warn("file tier write failed", "query_hash", entry.QueryHash, "error", err)
	}
	if c.store != nil {
		if err := c.store.put(entry); err != nil {
			c.logger.Warn("store tier write failed", "query_hash", entry.QueryHash, "error", err)
		}
	}
	if c.metrics != nil {
		c.metrics.RecordCacheWrite()
	}
}

// Invalidate removes the entry for the query from all tiers.
func (c *Cache) Invalidate(query string) {
	hash := Key(query)
	c.memory.delete(hash)
	if err := c.file.delete(hash); err != nil {
		c.logger.Warn("file tier invalidate failed", "query_hash", hash, "error", err)
	}
	if c.store != nil {
		if err := c.store.delete(hash); err != nil {
			c.logger.Warn("store tier invalidate failed", "query_hash", hash, "error", err)
		}
	}
}

// CleanupExpired sweeps all tiers for expired entries and returns the total
// number removed.
func (c *Cache) CleanupExpired() int {
	now := time.Now()
	removed := c.memory.cleanup(now)

	n, err := c.file.cleanup(now)
	if err != nil {
		c.logger.Warn("file tier cleanup failed", "error", err)
	}
	removed += n

	if c.store != nil {
		n, err := c.store.cleanup(now)
		if err != nil {
			c.logger.Warn("store tier cleanup failed", "error", err)
		}
		removed += n
	}

	if removed > 0 {
		c.logger.Info("cache cleanup", "removed", removed)
	}
	return removed
}

// Clear drops all entries from all tiers.
func (c *Cache) Clear() error {
	c.memory.clear()
	if err := c.file.clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if c.store != nil {
		if err := c.store.clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}
	return nil
}

// Status reports per-tier entry counts.
func (c *Cache) Status() Status {
	st := Status{
		MemoryEntries: c.memory.len(),
		StoreAttached: c.store != nil,
	}
	st.FileEntries, st.FileBytes = c.file.stats()
	if c.store != nil {
		if n, err := c.store.count(); err == nil {
			st.StoreEntries = n
		}
	}
	return st
}

// Close releases the persistent tier, if attached.
func (c *Cache) Close() error {
	if c.store != nil {
		return c.store.close()
	}
	return nil
}

func (c *Cache) recordHit(tier string) {
	if c.metrics != nil {
		c.metrics.RecordCacheHit(tier)
	}
}
