package config

import "time"

// Config is the root configuration structure for the DS-Search core.
// It contains all configuration sections for caching, policy gating,
// crawling, ranking, paid search APIs, and telemetry.
type Config struct {
	// Cache contains configuration for the three-tier result cache.
	Cache CacheConfig `yaml:"cache"`

	// Policy contains configuration for the search-gating policy engine,
	// including per-user rate limits and the search score threshold.
	Policy PolicyConfig `yaml:"policy"`

	// Crawler contains configuration for the politeness-aware web crawler.
	Crawler CrawlerConfig `yaml:"crawler"`

	// Ranker contains the signal weights and selection thresholds for
	// result ranking.
	Ranker RankerConfig `yaml:"ranker"`

	// PaidAPI contains configuration for the optional paid search API
	// adapter. Disabled by default.
	PaidAPI PaidAPIConfig `yaml:"paid_api"`

	// Trust contains configuration for the trusted-domain registry.
	Trust TrustConfig `yaml:"trust"`

	// Telemetry contains observability configuration (logging, metrics).
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CacheConfig contains configuration for the three-tier result cache.
type CacheConfig struct {
	// Dir is the root directory for the file cache tier. Entries are
	// sharded into subdirectories by the first two hex characters of the
	// query hash.
	// Default: "data/cache"
	Dir string `yaml:"dir"`

	// DefaultTTLHours is the default time-to-live for cache entries, in
	// hours.
	// Default: 6
	DefaultTTLHours int `yaml:"default_ttl_hours"`

	// MemoryMax is the maximum number of entries held in the memory tier.
	// The memory tier evicts the least recently used entry at capacity.
	// Default: 500
	MemoryMax int `yaml:"memory_max"`

	// StorePath is the sqlite database path for the persistent cache
	// tier. Empty disables the persistent tier.
	StorePath string `yaml:"store_path"`

	// CleanupSchedule is a cron expression controlling how often expired
	// entries are swept from all tiers. Empty disables the sweeper.
	// Default: "*/30 * * * *"
	CleanupSchedule string `yaml:"cleanup_schedule"`
}

// PolicyConfig contains configuration for the policy engine.
type PolicyConfig struct {
	// SearchScoreThreshold is the minimum search score required before
	// external retrieval (crawler or paid API) is permitted.
	// Default: 0.55
	SearchScoreThreshold float64 `yaml:"search_score_threshold"`

	// MaxSearchesPerUserPerDay limits external searches per user over a
	// sliding 24-hour window.
	// Default: 50
	MaxSearchesPerUserPerDay int `yaml:"max_searches_per_user_per_day"`

	// MaxSearchesPerMinute limits external searches per user over a
	// sliding 60-second window.
	// Default: 5
	MaxSearchesPerMinute int `yaml:"max_searches_per_minute"`
}

// CrawlerConfig contains configuration for the web crawler.
type CrawlerConfig struct {
	// Timeout is the default per-request HTTP timeout.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`

	// RateLimitDefault is the default per-domain request rate in requests
	// per second. Registry entries may override this per domain.
	// Default: 1.0
	RateLimitDefault float64 `yaml:"rate_limit_default"`

	// UserAgent is the User-Agent header sent with all requests.
	UserAgent string `yaml:"user_agent"`

	// MaxBodyBytes limits how much of a response body is read.
	// Default: 2097152 (2MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// RankerConfig contains the signal weights and selection thresholds for
// result ranking. The four weights should sum to 1.0.
type RankerConfig struct {
	// RelevanceWeight is the weight of the query-relevance signal.
	// Default: 0.40
	RelevanceWeight float64 `yaml:"relevance_weight"`

	// TrustWeight is the weight of the domain-trust signal.
	// Default: 0.35
	TrustWeight float64 `yaml:"trust_weight"`

	// FreshnessWeight is the weight of the content-freshness signal.
	// Default: 0.15
	FreshnessWeight float64 `yaml:"freshness_weight"`

	// TitleMatchWeight is the weight of the title-match signal.
	// Default: 0.10
	TitleMatchWeight float64 `yaml:"title_match_weight"`

	// MinResultScore is the minimum total score a result must reach to be
	// returned.
	// Default: 0.40
	MinResultScore float64 `yaml:"min_result_score"`

	// MaxResults is the maximum number of results returned per query.
	// Default: 5
	MaxResults int `yaml:"max_results"`
}

// PaidAPIConfig contains configuration for the paid search API adapter.
type PaidAPIConfig struct {
	// Enabled controls whether the paid API is consulted when the crawler
	// returns no results.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Provider selects the upstream API: "google", "bing", "serpapi", or
	// "none".
	// Default: "none"
	Provider string `yaml:"provider"`

	// Key is the API credential for the selected provider.
	Key string `yaml:"key"`

	// EngineID is the Google Custom Search engine identifier (cx). Only
	// used when Provider is "google".
	EngineID string `yaml:"engine_id"`

	// DailyLimit caps upstream calls per calendar day. At zero remaining
	// quota the adapter returns empty results without calling upstream.
	// Default: 100
	DailyLimit int `yaml:"daily_limit"`
}

// TrustConfig contains configuration for the trusted-domain registry.
type TrustConfig struct {
	// SeedFile is an optional YAML file of trusted sources loaded over
	// the built-in seed list. Empty uses only the built-in seeds.
	SeedFile string `yaml:"seed_file"`

	// WatchSeedFile reloads the seed file when it changes on disk.
	// Default: false
	WatchSeedFile bool `yaml:"watch_seed_file"`

	// StorePath is the sqlite database path for persisting registry
	// mutations. Empty keeps the registry memory-only.
	StorePath string `yaml:"store_path"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// SearchLogPath is the sqlite database path for persisting the search
	// log. Empty keeps the log in memory only.
	SearchLogPath string `yaml:"search_log_path"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json", "text", or "console".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "dssearch"
	Namespace string `yaml:"namespace"`
}
