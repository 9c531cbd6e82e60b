package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Cache.Dir != DefaultCacheDir {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, DefaultCacheDir)
	}
	if cfg.Cache.DefaultTTLHours != 6 {
		t.Errorf("Cache.DefaultTTLHours = %d, want 6", cfg.Cache.DefaultTTLHours)
	}
	if cfg.Cache.MemoryMax != 500 {
		t.Errorf("Cache.MemoryMax = %d, want 500", cfg.Cache.MemoryMax)
	}
	if cfg.Policy.SearchScoreThreshold != 0.55 {
		t.Errorf("Policy.SearchScoreThreshold = %v, want 0.55", cfg.Policy.SearchScoreThreshold)
	}
	if cfg.Policy.MaxSearchesPerUserPerDay != 50 {
		t.Errorf("Policy.MaxSearchesPerUserPerDay = %d, want 50", cfg.Policy.MaxSearchesPerUserPerDay)
	}
	if cfg.Policy.MaxSearchesPerMinute != 5 {
		t.Errorf("Policy.MaxSearchesPerMinute = %d, want 5", cfg.Policy.MaxSearchesPerMinute)
	}
	if cfg.Crawler.Timeout != 15*time.Second {
		t.Errorf("Crawler.Timeout = %v, want 15s", cfg.Crawler.Timeout)
	}
	if cfg.Crawler.RateLimitDefault != 1.0 {
		t.Errorf("Crawler.RateLimitDefault = %v, want 1.0", cfg.Crawler.RateLimitDefault)
	}
	if cfg.Ranker.RelevanceWeight != 0.40 || cfg.Ranker.TrustWeight != 0.35 ||
		cfg.Ranker.FreshnessWeight != 0.15 || cfg.Ranker.TitleMatchWeight != 0.10 {
		t.Errorf("ranker weights = %+v, want 0.40/0.35/0.15/0.10", cfg.Ranker)
	}
	if cfg.Ranker.MinResultScore != 0.40 {
		t.Errorf("Ranker.MinResultScore = %v, want 0.40", cfg.Ranker.MinResultScore)
	}
	if cfg.Ranker.MaxResults != 5 {
		t.Errorf("Ranker.MaxResults = %d, want 5", cfg.Ranker.MaxResults)
	}
	if cfg.PaidAPI.Enabled {
		t.Error("PaidAPI.Enabled = true, want disabled by default")
	}
	if cfg.PaidAPI.Provider != "none" {
		t.Errorf("PaidAPI.Provider = %q, want none", cfg.PaidAPI.Provider)
	}
	if cfg.PaidAPI.DailyLimit != 100 {
		t.Errorf("PaidAPI.DailyLimit = %d, want 100", cfg.PaidAPI.DailyLimit)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
cache:
  dir: /tmp/dssearch-cache
  default_ttl_hours: 12
policy:
  max_searches_per_minute: 10
paid_api:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Cache.Dir != "/tmp/dssearch-cache" {
		t.Errorf("Cache.Dir = %q, want /tmp/dssearch-cache", cfg.Cache.Dir)
	}
	if cfg.Cache.DefaultTTLHours != 12 {
		t.Errorf("Cache.DefaultTTLHours = %d, want 12", cfg.Cache.DefaultTTLHours)
	}
	if cfg.Policy.MaxSearchesPerMinute != 10 {
		t.Errorf("Policy.MaxSearchesPerMinute = %d, want 10", cfg.Policy.MaxSearchesPerMinute)
	}
	// Unset fields keep defaults.
	if cfg.Policy.MaxSearchesPerUserPerDay != 50 {
		t.Errorf("Policy.MaxSearchesPerUserPerDay = %d, want default 50", cfg.Policy.MaxSearchesPerUserPerDay)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("LoadConfig() expected error for missing file")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("cache:\n  dir: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DSSEARCH_CACHE_DIR", "from-env")
	t.Setenv("DSSEARCH_POLICY_MAX_SEARCHES_PER_MINUTE", "7")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}
	if cfg.Cache.Dir != "from-env" {
		t.Errorf("Cache.Dir = %q, want from-env", cfg.Cache.Dir)
	}
	if cfg.Policy.MaxSearchesPerMinute != 7 {
		t.Errorf("Policy.MaxSearchesPerMinute = %d, want 7", cfg.Policy.MaxSearchesPerMinute)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name: "unbalanced ranker weights",
			mutate: func(cfg *Config) {
				cfg.Ranker.TrustWeight = 0.9
			},
			wantErr: "weights must sum to 1.0",
		},
		{
			name: "threshold out of range",
			mutate: func(cfg *Config) {
				cfg.Policy.SearchScoreThreshold = 1.5
			},
			wantErr: "search_score_threshold",
		},
		{
			name: "enabled paid api without key",
			mutate: func(cfg *Config) {
				cfg.PaidAPI.Enabled = true
				cfg.PaidAPI.Provider = "bing"
			},
			wantErr: "paid_api.key",
		},
		{
			name: "google provider without engine id",
			mutate: func(cfg *Config) {
				cfg.PaidAPI.Enabled = true
				cfg.PaidAPI.Provider = "google"
				cfg.PaidAPI.Key = "secret"
			},
			wantErr: "paid_api.engine_id",
		},
		{
			name: "unknown log level",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Logging.Level = "trace"
			},
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
