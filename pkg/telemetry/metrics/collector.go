package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dslabs/dssearch/pkg/config"
)

// Collector manages all Prometheus metrics for the search core. It is safe
// for concurrent use; all underlying prometheus types are thread-safe.
//
// When the collector is disabled by configuration every Record method is a
// no-op, so components can call it unconditionally.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Search pipeline metrics
	searchesTotal  *prometheus.CounterVec
	searchDuration prometheus.Histogram

	// Cache metrics
	cacheHits   *prometheus.CounterVec
	cacheMisses prometheus.Counter
	cacheWrites prometheus.Counter

	// Crawler metrics
	crawlsTotal   *prometheus.CounterVec
	crawlDuration prometheus.Histogram

	// Policy metrics
	rateLimited prometheus.Counter
	blocked     prometheus.Counter

	// Paid API metrics
	apiCalls       prometheus.Counter
	quotaRemaining prometheus.Gauge
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil a new private
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &config.MetricsConfig{Enabled: true, Namespace: config.DefaultMetricsNamespace}
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = config.DefaultMetricsNamespace
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "searches_total",
			Help:      "Search requests by intent and outcome action.",
		}, []string{"intent", "action"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "search_duration_seconds",
			Help:      "End-to-end ask() duration.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 20},
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_hits_total",
			Help:      "Cache hits by tier.",
		}, []string{"tier"}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_misses_total",
			Help:      "Cache lookups that missed all tiers.",
		}),
		cacheWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_writes_total",
			Help:      "Cache entry writes.",
		}),
		crawlsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "crawls_total",
			Help:      "Crawler fetches by outcome.",
		}, []string{"outcome"}),
		crawlDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "crawl_duration_seconds",
			Help:      "Single URL fetch duration.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by per-user rate limits.",
		}),
		blocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "blocked_queries_total",
			Help:      "Queries rejected by abuse patterns.",
		}),
		apiCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "paid_api_calls_total",
			Help:      "Upstream paid search API calls.",
		}),
		quotaRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "paid_api_quota_remaining",
			Help:      "Remaining paid API quota for the current day.",
		}),
	}

	if cfg.Enabled {
		registry.MustRegister(
			c.searchesTotal, c.searchDuration,
			c.cacheHits, c.cacheMisses, c.cacheWrites,
			c.crawlsTotal, c.crawlDuration,
			c.rateLimited, c.blocked,
			c.apiCalls, c.quotaRemaining,
		)
	}

	return c
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordSearch records one completed ask() call.
func (c *Collector) RecordSearch(intent, action string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.searchesTotal.WithLabelValues(intent, action).Inc()
	c.searchDuration.Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit on the named tier
// ("memory", "file", or "store").
func (c *Collector) RecordCacheHit(tier string) {
	if !c.config.Enabled {
		return
	}
	c.cacheHits.WithLabelValues(tier).Inc()
}

// RecordCacheMiss records a lookup that missed all tiers.
func (c *Collector) RecordCacheMiss() {
	if !c.config.Enabled {
		return
	}
	c.cacheMisses.Inc()
}

// RecordCacheWrite records a cache entry write.
func (c *Collector) RecordCacheWrite() {
	if !c.config.Enabled {
		return
	}
	c.cacheWrites.Inc()
}

// RecordCrawl records one URL fetch with its outcome
// ("success", "http_error", "blocked", "parse_error").
func (c *Collector) RecordCrawl(outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.crawlsTotal.WithLabelValues(outcome).Inc()
	c.crawlDuration.Observe(duration.Seconds())
}

// RecordRateLimited records a request rejected by per-user limits.
func (c *Collector) RecordRateLimited() {
	if !c.config.Enabled {
		return
	}
	c.rateLimited.Inc()
}

// RecordBlocked records a query rejected by abuse patterns.
func (c *Collector) RecordBlocked() {
	if !c.config.Enabled {
		return
	}
	c.blocked.Inc()
}

// RecordAPICall records an upstream paid API call and the quota remaining
// after it.
func (c *Collector) RecordAPICall(remaining int) {
	if !c.config.Enabled {
		return
	}
	c.apiCalls.Inc()
	c.quotaRemaining.Set(float64(remaining))
}
