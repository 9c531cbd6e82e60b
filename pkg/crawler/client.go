package crawler

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// newHTTPClient builds the shared pooled client. Redirects are followed to
// a shallow depth; government portals love meta-refresh chains but ten hops
// means a loop.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     60 * time.Second,
		},
	}
}

// setBrowserHeaders applies the header set portals expect from a browser.
// Hindi is advertised after English so bilingual portals serve their
// default language with Hindi fallbacks intact.
func setBrowserHeaders(req *http.Request, userAgent string) {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,hi;q=0.8")
}

// politeness spaces requests per domain. Before each fetch the crawler
// waits max(0, 1/rate - elapsed) where rate is the domain's requests per
// second; the wait aborts early when the context is cancelled.
type politeness struct {
	mu        sync.Mutex
	lastFetch map[string]time.Time
}

func newPoliteness() *politeness {
	return &politeness{lastFetch: make(map[string]time.Time)}
}

// wait blocks until the domain's minimum interval has passed, then records
// the fetch time. rate <= 0 falls back to one request per second.
func (p *politeness) wait(ctx context.Context, domain string, rate float64) error {
	if rate <= 0 {
		rate = 1.0
	}
	interval := time.Duration(float64(time.Second) / rate)

	p.mu.Lock()
	last, seen := p.lastFetch[domain]
	now := time.Now()
	var delay time.Duration
	if seen {
		if elapsed := now.Sub(last); elapsed < interval {
			delay = interval - elapsed
		}
	}
	p.lastFetch[domain] = now.Add(delay)
	p.mu.Unlock()

	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
