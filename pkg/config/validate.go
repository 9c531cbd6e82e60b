package config

import (
	"fmt"
	"math"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "cache.dir").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All errors are collected and returned
// together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateCache(&cfg.Cache)...)
	errs = append(errs, validatePolicy(&cfg.Policy)...)
	errs = append(errs, validateRanker(&cfg.Ranker)...)
	errs = append(errs, validatePaidAPI(&cfg.PaidAPI)...)
	errs = append(errs, validateLogging(&cfg.Telemetry.Logging)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateCache(cfg *CacheConfig) []FieldError {
	var errs []FieldError
	if cfg.Dir == "" {
		errs = append(errs, FieldError{Field: "cache.dir", Message: "must not be empty"})
	}
	if cfg.DefaultTTLHours <= 0 {
		errs = append(errs, FieldError{Field: "cache.default_ttl_hours", Message: "must be positive"})
	}
	if cfg.MemoryMax <= 0 {
		errs = append(errs, FieldError{Field: "cache.memory_max", Message: "must be positive"})
	}
	return errs
}

func validatePolicy(cfg *PolicyConfig) []FieldError {
	var errs []FieldError
	if cfg.SearchScoreThreshold < 0 || cfg.SearchScoreThreshold > 1 {
		errs = append(errs, FieldError{Field: "policy.search_score_threshold", Message: "must be in [0,1]"})
	}
	if cfg.MaxSearchesPerUserPerDay <= 0 {
		errs = append(errs, FieldError{Field: "policy.max_searches_per_user_per_day", Message: "must be positive"})
	}
	if cfg.MaxSearchesPerMinute <= 0 {
		errs = append(errs, FieldError{Field: "policy.max_searches_per_minute", Message: "must be positive"})
	}
	return errs
}

func validateRanker(cfg *RankerConfig) []FieldError {
	var errs []FieldError
	sum := cfg.RelevanceWeight + cfg.TrustWeight + cfg.FreshnessWeight + cfg.TitleMatchWeight
	if math.Abs(sum-1.0) > 0.001 {
		errs = append(errs, FieldError{
			Field:   "ranker",
			Message: fmt.Sprintf("signal weights must sum to 1.0, got %.3f", sum),
		})
	}
	if cfg.MinResultScore < 0 || cfg.MinResultScore > 1 {
		errs = append(errs, FieldError{Field: "ranker.min_result_score", Message: "must be in [0,1]"})
	}
	if cfg.MaxResults <= 0 {
		errs = append(errs, FieldError{Field: "ranker.max_results", Message: "must be positive"})
	}
	return errs
}

func validatePaidAPI(cfg *PaidAPIConfig) []FieldError {
	var errs []FieldError
	switch cfg.Provider {
	case "none", "google", "bing", "serpapi":
	default:
		errs = append(errs, FieldError{
			Field:   "paid_api.provider",
			Message: fmt.Sprintf("unknown provider %q (expected none, google, bing, or serpapi)", cfg.Provider),
		})
	}
	if cfg.Enabled {
		if cfg.Provider == "none" {
			errs = append(errs, FieldError{Field: "paid_api.provider", Message: "must be set when paid_api.enabled is true"})
		}
		if cfg.Key == "" {
			errs = append(errs, FieldError{Field: "paid_api.key", Message: "must be set when paid_api.enabled is true"})
		}
		if cfg.Provider == "google" && cfg.EngineID == "" {
			errs = append(errs, FieldError{Field: "paid_api.engine_id", Message: "must be set for the google provider"})
		}
	}
	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (expected debug, info, warn, or error)", cfg.Level),
		})
	}
	switch cfg.Format {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (expected json, text, or console)", cfg.Format),
		})
	}
	return errs
}
