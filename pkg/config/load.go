package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that behaviour.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention DSSEARCH_SECTION_FIELD (e.g., DSSEARCH_CACHE_DIR) and always
// take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format DSSEARCH_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Cache overrides
	if val := os.Getenv("DSSEARCH_CACHE_DIR"); val != "" {
		cfg.Cache.Dir = val
	}
	if val := os.Getenv("DSSEARCH_CACHE_DEFAULT_TTL_HOURS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cache.DefaultTTLHours = i
		}
	}
	if val := os.Getenv("DSSEARCH_CACHE_MEMORY_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cache.MemoryMax = i
		}
	}
	if val := os.Getenv("DSSEARCH_CACHE_STORE_PATH"); val != "" {
		cfg.Cache.StorePath = val
	}

	// Policy overrides
	if val := os.Getenv("DSSEARCH_POLICY_SEARCH_SCORE_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Policy.SearchScoreThreshold = f
		}
	}
	if val := os.Getenv("DSSEARCH_POLICY_MAX_SEARCHES_PER_USER_PER_DAY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Policy.MaxSearchesPerUserPerDay = i
		}
	}
	if val := os.Getenv("DSSEARCH_POLICY_MAX_SEARCHES_PER_MINUTE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Policy.MaxSearchesPerMinute = i
		}
	}

	// Crawler overrides
	if val := os.Getenv("DSSEARCH_CRAWLER_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Crawler.Timeout = d
		}
	}
	if val := os.Getenv("DSSEARCH_CRAWLER_RATE_LIMIT_DEFAULT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Crawler.RateLimitDefault = f
		}
	}

	// Paid API overrides. The credential is the common case for env-only
	// configuration, so the whole block is overridable.
	if val := os.Getenv("DSSEARCH_PAID_API_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.PaidAPI.Enabled = b
		}
	}
	if val := os.Getenv("DSSEARCH_PAID_API_PROVIDER"); val != "" {
		cfg.PaidAPI.Provider = val
	}
	if val := os.Getenv("DSSEARCH_PAID_API_KEY"); val != "" {
		cfg.PaidAPI.Key = val
	}
	if val := os.Getenv("DSSEARCH_PAID_API_ENGINE_ID"); val != "" {
		cfg.PaidAPI.EngineID = val
	}
	if val := os.Getenv("DSSEARCH_PAID_API_DAILY_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.PaidAPI.DailyLimit = i
		}
	}

	// Trust overrides
	if val := os.Getenv("DSSEARCH_TRUST_SEED_FILE"); val != "" {
		cfg.Trust.SeedFile = val
	}
	if val := os.Getenv("DSSEARCH_TRUST_STORE_PATH"); val != "" {
		cfg.Trust.StorePath = val
	}

	// Telemetry overrides
	if val := os.Getenv("DSSEARCH_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("DSSEARCH_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
}
