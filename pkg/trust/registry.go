package trust

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// EWMA factors for per-domain success-rate tracking.
const (
	ewmaHistory = 0.9
	ewmaLatest  = 0.1
)

// maxDomainsPerQueryType caps how many domains DomainsForQueryType returns.
const maxDomainsPerQueryType = 15

// Store persists registry mutations. Implementations must be safe for
// concurrent use. A nil store keeps the registry memory-only.
type Store interface {
	// SaveSource inserts or replaces one source row.
	SaveSource(src *TrustedSource) error

	// SaveBlocked records a blocked domain.
	SaveBlocked(domain string) error

	// LoadAll returns all persisted sources and blocked domains.
	LoadAll() (sources []TrustedSource, blocked []string, err error)

	// Close releases the store.
	Close() error
}

// Registry holds the trusted and blocked domain sets. It is safe for
// concurrent use; reads take a shared lock and admin mutations are
// serialised.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]*TrustedSource
	blocked map[string]struct{}
	store   Store
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithStore attaches a persistent store. Persisted rows are loaded over the
// seeds at construction and mutations are written through. Store failures
// degrade the registry to memory-only operation.
func WithStore(store Store) Option {
	return func(r *Registry) { r.store = store }
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry creates a registry populated from the built-in seed list,
// then overlaid with any rows from an attached store.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sources: make(map[string]*TrustedSource),
		blocked: make(map[string]struct{}),
		logger:  slog.Default().With("component", "trust.registry"),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, src := range seedSources() {
		s := src
		s.Domain = NormalizeDomain(s.Domain)
		r.sources[s.Domain] = &s
	}

	if r.store != nil {
		sources, blocked, err := r.store.LoadAll()
		if err != nil {
			r.logger.Warn("trust store unavailable, continuing memory-only", "error", err)
		} else {
			for _, src := range sources {
				s := src
				s.Domain = NormalizeDomain(s.Domain)
				r.sources[s.Domain] = &s
			}
			for _, d := range blocked {
				r.blocked[NormalizeDomain(d)] = struct{}{}
			}
		}
	}

	return r
}

// NormalizeDomain lowercases a domain and strips a leading "www.".
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "www.")
	return d
}

// IsTrusted reports whether the domain may be crawled and surfaced. A domain
// is trusted when it has an enabled registry entry or suffix-matches an
// auto-trust TLD (.gov.in, .nic.in), and is not blocked.
func (r *Registry) IsTrusted(domain string) bool {
	d := NormalizeDomain(domain)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, isBlocked := r.blocked[d]; isBlocked {
		return false
	}
	if src, ok := r.sources[d]; ok {
		return src.Enabled && src.Type != TypeBlocked
	}
	return isAutoTrusted(d)
}

// IsBlocked reports whether the domain is on the blocklist.
func (r *Registry) IsBlocked(domain string) bool {
	d := NormalizeDomain(domain)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.blocked[d]
	return ok
}

// GetPriority returns the domain's trust priority in [1,10]. Registered
// domains use their registry value; unknown domains fall back to suffix
// defaults.
func (r *Registry) GetPriority(domain string) int {
	d := NormalizeDomain(domain)

	r.mu.RLock()
	if src, ok := r.sources[d]; ok {
		p := src.Priority
		r.mu.RUnlock()
		if p < 1 {
			return 1
		}
		if p > 10 {
			return 10
		}
		return p
	}
	r.mu.RUnlock()

	switch {
	case hasSuffix(d, ".gov.in"), hasSuffix(d, ".nic.in"):
		return 8
	case hasSuffix(d, ".ac.in"), hasSuffix(d, ".edu.in"):
		return 6
	case hasSuffix(d, ".org.in"):
		return 5
	default:
		return 3
	}
}

// GetSource returns the registry entry for a domain, or nil if absent.
// The returned value is a copy; mutations go through AddSource.
func (r *Registry) GetSource(domain string) *TrustedSource {
	d := NormalizeDomain(domain)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if src, ok := r.sources[d]; ok {
		cp := *src
		return &cp
	}
	return nil
}

// RateLimit returns the per-domain crawl rate in requests per second, or 0
// when the domain has no override.
func (r *Registry) RateLimit(domain string) float64 {
	d := NormalizeDomain(domain)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if src, ok := r.sources[d]; ok {
		return src.RateLimit
	}
	return 0
}

// DomainsForQueryType returns up to 15 enabled domains serving the given
// query type ("job", "scheme", "result", ...), sorted by priority
// descending. Ties are broken by domain name for deterministic output.
func (r *Registry) DomainsForQueryType(queryType string) []string {
	cats, ok := queryTypeCategories[queryType]
	if !ok {
		cats = queryTypeCategories["general"]
	}

	r.mu.RLock()
	var matched []*TrustedSource
	for _, src := range r.sources {
		if !src.Enabled || src.Type == TypeBlocked {
			continue
		}
		if _, isBlocked := r.blocked[src.Domain]; isBlocked {
			continue
		}
		for _, c := range cats {
			if src.hasCategory(c) {
				matched = append(matched, src)
				break
			}
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return matched[i].Domain < matched[j].Domain
	})

	if len(matched) > maxDomainsPerQueryType {
		matched = matched[:maxDomainsPerQueryType]
	}

	domains := make([]string, len(matched))
	for i, src := range matched {
		domains[i] = src.Domain
	}
	return domains
}

// ListSources returns a copy of all registry entries sorted by priority
// descending, then domain.
func (r *Registry) ListSources() []TrustedSource {
	r.mu.RLock()
	out := make([]TrustedSource, 0, len(r.sources))
	for _, src := range r.sources {
		out = append(out, *src)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Domain < out[j].Domain
	})
	return out
}

// AddSource inserts or replaces a registry entry and persists it when a
// store is attached.
func (r *Registry) AddSource(src TrustedSource) error {
	src.Domain = NormalizeDomain(src.Domain)
	if src.Domain == "" {
		return fmt.Errorf("add source: domain cannot be empty")
	}
	if src.Priority < 1 {
		src.Priority = 1
	}
	if src.Priority > 10 {
		src.Priority = 10
	}

	r.mu.Lock()
	r.sources[src.Domain] = &src
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.SaveSource(&src); err != nil {
			r.logger.Warn("failed to persist source", "domain", src.Domain, "error", err)
			return fmt.Errorf("add source: persist failed: %w", err)
		}
	}
	return nil
}

// BlockDomain adds the domain to the blocklist. Blocking overrides any
// existing trusted entry and persists when a store is attached.
func (r *Registry) BlockDomain(domain string) error {
	d := NormalizeDomain(domain)
	if d == "" {
		return fmt.Errorf("block domain: domain cannot be empty")
	}

	r.mu.Lock()
	r.blocked[d] = struct{}{}
	if src, ok := r.sources[d]; ok {
		src.Enabled = false
		src.Type = TypeBlocked
	}
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.SaveBlocked(d); err != nil {
			r.logger.Warn("failed to persist blocked domain", "domain", d, "error", err)
			return fmt.Errorf("block domain: persist failed: %w", err)
		}
	}
	return nil
}

// UpdateCrawlStats records the outcome of a crawl against the domain. The
// success rate is updated as an EWMA: new = 0.9*old + 0.1*outcome. Domains
// without a registry entry are tracked only if auto-trusted, so aggregator
// noise does not grow the registry unbounded.
func (r *Registry) UpdateCrawlStats(domain string, success bool) {
	d := NormalizeDomain(domain)
	outcome := 0.0
	if success {
		outcome = 1.0
	}

	r.mu.Lock()
	src, ok := r.sources[d]
	if !ok {
		if !isAutoTrusted(d) {
			r.mu.Unlock()
			return
		}
		src = &TrustedSource{
			Domain:      d,
			Type:        TypeOfficial,
			Priority:    8,
			Enabled:     true,
			SuccessRate: 1.0,
			Categories:  []Category{CategoryGovernment},
		}
		r.sources[d] = src
	}
	if src.LastCrawled.IsZero() && src.SuccessRate == 0 {
		// First observation seeds the average directly.
		src.SuccessRate = outcome
	} else {
		src.SuccessRate = ewmaHistory*src.SuccessRate + ewmaLatest*outcome
	}
	src.LastCrawled = time.Now()
	persisted := *src
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.SaveSource(&persisted); err != nil {
			r.logger.Warn("failed to persist crawl stats", "domain", d, "error", err)
		}
	}
}

// isAutoTrusted reports whether the domain suffix-matches an auto-trust TLD.
func isAutoTrusted(domain string) bool {
	return hasSuffix(domain, ".gov.in") || hasSuffix(domain, ".nic.in")
}

// hasSuffix matches a domain suffix at a label boundary, so "ssc.nic.in"
// and "nic.in" both match ".nic.in" but "picnic.in" does not.
func hasSuffix(domain, suffix string) bool {
	return strings.HasSuffix(domain, suffix) || domain == strings.TrimPrefix(suffix, ".")
}
