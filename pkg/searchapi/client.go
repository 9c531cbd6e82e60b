package searchapi

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/crawler"
	"dslabs/dssearch/pkg/telemetry/metrics"
)

// Client wraps a Provider with the daily quota and the runtime on/off
// switch. Safe for concurrent use. A Client with no provider is permanently
// disabled and returns empty results.
type Client struct {
	mu        sync.Mutex
	provider  Provider
	enabled   bool
	limit     int
	usedToday int
	day       time.Time

	metrics *metrics.Collector
	log     *slog.Logger
}

// Status is a snapshot for admin surfaces.
type Status struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider"`
	Limit     int    `json:"daily_limit"`
	UsedToday int    `json:"used_today"`
	Remaining int    `json:"remaining"`
}

// NewClient builds the paid-API client from configuration. A provider
// construction error disables the client rather than failing startup.
func NewClient(cfg config.PaidAPIConfig, m *metrics.Collector, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default().With("component", "searchapi")
	}
	c := &Client{
		limit:   cfg.DailyLimit,
		day:     today(),
		metrics: m,
		log:     log,
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		log.Warn("paid search API misconfigured, staying disabled", "error", err)
		return c
	}
	c.provider = provider
	c.enabled = cfg.Enabled && provider != nil
	return c
}

// Search runs one upstream query. Disabled clients and exhausted quotas
// return empty results without calling upstream; only calls that actually
// went out count against the quota.
func (c *Client) Search(ctx context.Context, query string, max int) ([]crawler.Discovery, error) {
	c.mu.Lock()
	if !c.enabled || c.provider == nil {
		c.mu.Unlock()
		return nil, nil
	}
	c.rollDayLocked()
	if c.usedToday >= c.limit {
		c.mu.Unlock()
		c.log.Warn("paid search API quota exhausted", "limit", c.limit)
		return nil, nil
	}
	c.usedToday++
	remaining := c.limit - c.usedToday
	provider := c.provider
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordAPICall(remaining)
	}
	hits, err := provider.Search(ctx, query, max)
	if err != nil {
		c.log.Error("paid search API call failed", "provider", provider.Name(), "error", err)
		return nil, err
	}
	c.log.Info("paid search API call", "provider", provider.Name(), "hits", len(hits), "remaining", remaining)
	return hits, nil
}

// Enabled reports whether the client will call upstream.
func (c *Client) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && c.provider != nil
}

// SetEnabled flips the runtime switch. Enabling a client with no configured
// provider is a no-op.
func (c *Client) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled && c.provider != nil
}

// RemainingQuota returns how many upstream calls are left today.
func (c *Client) RemainingQuota() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollDayLocked()
	if c.limit <= c.usedToday {
		return 0
	}
	return c.limit - c.usedToday
}

// GetStatus returns a snapshot for admin surfaces.
func (c *Client) GetStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollDayLocked()

	s := Status{
		Enabled:   c.enabled && c.provider != nil,
		Limit:     c.limit,
		UsedToday: c.usedToday,
	}
	if c.provider != nil {
		s.Provider = c.provider.Name()
	}
	if s.Limit > s.UsedToday {
		s.Remaining = s.Limit - s.UsedToday
	}
	return s
}

// rollDayLocked resets the counter at the local calendar day boundary.
func (c *Client) rollDayLocked() {
	if d := today(); !d.Equal(c.day) {
		c.day = d
		c.usedToday = 0
	}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
