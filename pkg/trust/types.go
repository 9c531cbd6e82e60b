package trust

import "time"

// SourceType classifies the authority level of a domain.
type SourceType string

const (
	// TypeOfficial is a government-operated portal.
	TypeOfficial SourceType = "official"
	// TypeSemiOfficial is a government-adjacent body (PSU, board, authority).
	TypeSemiOfficial SourceType = "semi_official"
	// TypeEducational is a university or academic institution.
	TypeEducational SourceType = "educational"
	// TypeAggregator is a commercial job/result aggregator.
	TypeAggregator SourceType = "aggregator"
	// TypeNews is a news publisher.
	TypeNews SourceType = "news"
	// TypeBlocked marks a domain that must never be crawled or returned.
	TypeBlocked SourceType = "blocked"
)

// Category tags a source with the kinds of queries it can answer.
type Category string

const (
	CategoryJob        Category = "job"
	CategoryScheme     Category = "scheme"
	CategoryResult     Category = "result"
	CategoryAdmitCard  Category = "admit_card"
	CategoryGovernment Category = "government"
	CategoryEducation  Category = "education"
	CategoryNews       Category = "news"
)

// TrustedSource describes one domain in the registry.
type TrustedSource struct {
	// Domain is the normalised domain name: lowercase, no leading "www.".
	Domain string `yaml:"domain" json:"domain"`

	// Type is the authority classification of the domain.
	Type SourceType `yaml:"type" json:"type"`

	// DisplayName is a human-readable name for the source.
	DisplayName string `yaml:"display_name" json:"display_name"`

	// Priority ranks the source from 1 (lowest) to 10 (highest).
	Priority int `yaml:"priority" json:"priority"`

	// Enabled controls whether the source participates in lookups.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// RateLimit overrides the crawler's default per-domain request rate,
	// in requests per second. Zero means use the default.
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"`

	// Categories tags the query types this source serves.
	Categories []Category `yaml:"categories" json:"categories"`

	// LastCrawled is the time of the most recent crawl attempt, zero if
	// never crawled.
	LastCrawled time.Time `yaml:"-" json:"last_crawled"`

	// SuccessRate is an exponentially weighted moving average of crawl
	// outcomes in [0,1], updated with factors 0.9 (history) and 0.1
	// (latest outcome).
	SuccessRate float64 `yaml:"-" json:"success_rate"`
}

// hasCategory reports whether the source carries the given category tag.
func (s *TrustedSource) hasCategory(c Category) bool {
	for _, have := range s.Categories {
		if have == c {
			return true
		}
	}
	return false
}
