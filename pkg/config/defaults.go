package config

import "time"

// Default values for configuration fields.
const (
	// Cache defaults
	DefaultCacheDir        = "data/cache"
	DefaultTTLHours        = 6
	DefaultMemoryCacheMax  = 500
	DefaultCleanupSchedule = "*/30 * * * *"

	// Policy defaults
	DefaultSearchScoreThreshold     = 0.55
	DefaultMaxSearchesPerUserPerDay = 50
	DefaultMaxSearchesPerMinute     = 5

	// Crawler defaults
	DefaultCrawlerTimeout   = 15 * time.Second
	DefaultRateLimit        = 1.0
	DefaultCrawlerMaxBody   = int64(2 << 20) // 2MB
	DefaultCrawlerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	// Ranker defaults
	DefaultRelevanceWeight  = 0.40
	DefaultTrustWeight      = 0.35
	DefaultFreshnessWeight  = 0.15
	DefaultTitleMatchWeight = 0.10
	DefaultMinResultScore   = 0.40
	DefaultMaxResults       = 5

	// Paid API defaults
	DefaultPaidAPIProvider   = "none"
	DefaultPaidAPIDailyLimit = 100

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "dssearch"
)

// ApplyDefaults fills in default values for any unset configuration fields.
// It is safe to call on a zero-value Config.
func ApplyDefaults(cfg *Config) {
	// Cache defaults
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir
	}
	if cfg.Cache.DefaultTTLHours <= 0 {
		cfg.Cache.DefaultTTLHours = DefaultTTLHours
	}
	if cfg.Cache.MemoryMax <= 0 {
		cfg.Cache.MemoryMax = DefaultMemoryCacheMax
	}
	if cfg.Cache.CleanupSchedule == "" {
		cfg.Cache.CleanupSchedule = DefaultCleanupSchedule
	}

	// Policy defaults
	if cfg.Policy.SearchScoreThreshold <= 0 {
		cfg.Policy.SearchScoreThreshold = DefaultSearchScoreThreshold
	}
	if cfg.Policy.MaxSearchesPerUserPerDay <= 0 {
		cfg.Policy.MaxSearchesPerUserPerDay = DefaultMaxSearchesPerUserPerDay
	}
	if cfg.Policy.MaxSearchesPerMinute <= 0 {
		cfg.Policy.MaxSearchesPerMinute = DefaultMaxSearchesPerMinute
	}

	// Crawler defaults
	if cfg.Crawler.Timeout <= 0 {
		cfg.Crawler.Timeout = DefaultCrawlerTimeout
	}
	if cfg.Crawler.RateLimitDefault <= 0 {
		cfg.Crawler.RateLimitDefault = DefaultRateLimit
	}
	if cfg.Crawler.UserAgent == "" {
		cfg.Crawler.UserAgent = DefaultCrawlerUserAgent
	}
	if cfg.Crawler.MaxBodyBytes <= 0 {
		cfg.Crawler.MaxBodyBytes = DefaultCrawlerMaxBody
	}

	// Ranker defaults: apply the full weight set together so partial
	// overrides cannot silently unbalance the fusion.
	if cfg.Ranker.RelevanceWeight <= 0 && cfg.Ranker.TrustWeight <= 0 &&
		cfg.Ranker.FreshnessWeight <= 0 && cfg.Ranker.TitleMatchWeight <= 0 {
		cfg.Ranker.RelevanceWeight = DefaultRelevanceWeight
		cfg.Ranker.TrustWeight = DefaultTrustWeight
		cfg.Ranker.FreshnessWeight = DefaultFreshnessWeight
		cfg.Ranker.TitleMatchWeight = DefaultTitleMatchWeight
	}
	if cfg.Ranker.MinResultScore <= 0 {
		cfg.Ranker.MinResultScore = DefaultMinResultScore
	}
	if cfg.Ranker.MaxResults <= 0 {
		cfg.Ranker.MaxResults = DefaultMaxResults
	}

	// Paid API defaults
	if cfg.PaidAPI.Provider == "" {
		cfg.PaidAPI.Provider = DefaultPaidAPIProvider
	}
	if cfg.PaidAPI.DailyLimit <= 0 {
		cfg.PaidAPI.DailyLimit = DefaultPaidAPIDailyLimit
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// DefaultConfig returns a fully-populated configuration with all defaults
// applied. Metrics are enabled by default.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}
