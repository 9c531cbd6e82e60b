package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/querygen"
	"dslabs/dssearch/pkg/telemetry/metrics"
	"dslabs/dssearch/pkg/trust"
)

// interFetchDelay spaces consecutive fetches within one crawl, on top of
// the per-domain politeness interval.
const interFetchDelay = 500 * time.Millisecond

// maxDiscoveryQueries caps how many generated query variants are sent to
// the discovery backend per crawl.
const maxDiscoveryQueries = 3

// discoveryResultsPerQuery is how many hits each discovery call may return.
const discoveryResultsPerQuery = 10

// Crawler fetches pages from trusted domains under a politeness budget.
// Safe for concurrent use.
type Crawler struct {
	cfg        config.CrawlerConfig
	client     *http.Client
	discoverer Discoverer
	registry   *trust.Registry
	polite     *politeness
	metrics    *metrics.Collector
	log        *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithDiscoverer replaces the default DuckDuckGo discovery backend.
func WithDiscoverer(d Discoverer) Option {
	return func(c *Crawler) { c.discoverer = d }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Crawler) { c.metrics = m }
}

// WithLogger sets the crawler logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Crawler) { c.log = log }
}

// New creates a crawler bound to the trust registry. The registry supplies
// per-domain rate limits, the blocked set, and crawl-outcome feedback.
func New(cfg config.CrawlerConfig, registry *trust.Registry, opts ...Option) *Crawler {
	c := &Crawler{
		cfg:      cfg,
		client:   newHTTPClient(cfg.Timeout),
		registry: registry,
		polite:   newPoliteness(),
		log:      slog.Default().With("component", "crawler"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.discoverer == nil {
		c.discoverer = NewDuckDuckGoDiscoverer(c.client, cfg.UserAgent)
	}
	return c
}

// CrawlURL fetches and extracts a single page. The returned RawResult
// always carries the URL and domain; on failure Success is false and
// Metadata["error"] explains why. Crawl outcomes feed the registry's
// per-domain success rates.
func (c *Crawler) CrawlURL(ctx context.Context, pageURL string) RawResult {
	res := RawResult{
		URL:       pageURL,
		CrawledAt: time.Now(),
		Metadata:  make(map[string]string),
	}

	u, err := url.Parse(pageURL)
	if err != nil || u.Hostname() == "" {
		res.Metadata["error"] = "invalid url"
		return res
	}
	res.Domain = trust.NormalizeDomain(u.Hostname())

	if c.registry != nil && c.registry.IsBlocked(res.Domain) {
		res.Metadata["error"] = "blocked_domain"
		if c.metrics != nil {
			c.metrics.RecordBlocked()
		}
		return res
	}

	rate := c.cfg.RateLimitDefault
	if c.registry != nil {
		if override := c.registry.RateLimit(res.Domain); override > 0 {
			rate = override
		}
	}
	if err := c.polite.wait(ctx, res.Domain, rate); err != nil {
		res.Metadata["error"] = "cancelled"
		return res
	}

	start := time.Now()
	ok := c.fetch(ctx, pageURL, &res)
	res.Success = ok
	res.CrawledAt = time.Now()

	if c.registry != nil {
		c.registry.UpdateCrawlStats(res.Domain, ok)
	}
	if c.metrics != nil {
		outcome := "success"
		if !ok {
			outcome = "failure"
		}
		c.metrics.RecordCrawl(outcome, time.Since(start))
	}
	return res
}

// fetch performs the HTTP round trip and extraction, filling res in place.
func (c *Crawler) fetch(ctx context.Context, pageURL string, res *RawResult) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		res.Metadata["error"] = fmt.Sprintf("build request: %v", err)
		return false
	}
	setBrowserHeaders(req, c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		res.Metadata["error"] = fmt.Sprintf("request: %v", err)
		c.log.Debug("fetch failed", "url", pageURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	res.Metadata["status"] = strconv.Itoa(resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		res.Metadata["error"] = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return false
	}

	contentType := resp.Header.Get("Content-Type")
	res.Metadata["content_type"] = contentType

	// PDFs are not parsed; the link itself is the deliverable.
	if strings.Contains(contentType, "application/pdf") {
		res.Title = pageTitleFromURL(pageURL)
		res.Links = []string{pageURL}
		return true
	}

	maxBody := c.cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 2 << 20
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		res.Metadata["error"] = fmt.Sprintf("read body: %v", err)
		return false
	}

	if strings.Contains(contentType, "text/plain") {
		res.Content = collapseSpace(string(body))
		if len(res.Content) > MaxContentChars {
			res.Content = res.Content[:MaxContentChars]
		}
		res.Snippet = makeSnippet(res.Content)
		return res.Content != ""
	}

	ex := extractPage(string(body), pageURL)
	res.Title = ex.Title
	res.Content = ex.Content
	res.Snippet = ex.Snippet
	res.Links = ex.Links
	res.KeyPoints = ex.KeyPoints
	if ex.Description != "" {
		res.Metadata["description"] = ex.Description
	}
	if ex.Date != "" {
		res.Metadata["date"] = ex.Date
	}
	if ex.Content == "" && ex.Title == "" {
		res.Metadata["error"] = "empty extraction"
		return false
	}
	return true
}

// SearchAndCrawl runs the full discovery-and-fetch loop for one request.
// The plan's SpecificURL short-circuits discovery. Otherwise the highest
// priority query variants are sent to the discovery backend, hits are
// deduplicated, partitioned so preferred domains go first, and fetched
// serially until the page budget is spent. Context cancellation returns
// whatever was fetched so far.
func (c *Crawler) SearchAndCrawl(ctx context.Context, queries []querygen.GeneratedQuery, plan Plan) []RawResult {
	if plan.SpecificURL != "" {
		return []RawResult{c.crawlWithTimeout(ctx, plan.SpecificURL, plan.Timeout)}
	}

	maxPages := plan.MaxPages
	if maxPages <= 0 {
		maxPages = 5
	}

	candidates := c.discover(ctx, queries)
	if len(candidates) == 0 {
		return nil
	}
	ordered := partitionByPreference(candidates, plan.Domains)

	var results []RawResult
	for i, cand := range ordered {
		if len(results) >= maxPages {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if i > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(interFetchDelay):
			}
		}

		res := c.crawlWithTimeout(ctx, cand.URL, plan.Timeout)
		if res.Title == "" {
			res.Title = cand.Title
		}
		// A thin page still contributes its search snippet.
		if res.Content == "" && cand.Snippet != "" {
			res.Content = cand.Snippet
			res.Snippet = cand.Snippet
		}
		if res.Snippet == "" {
			res.Snippet = cand.Snippet
		}
		results = append(results, res)
	}
	return results
}

// crawlWithTimeout applies the plan's per-request deadline on top of the
// client timeout.
func (c *Crawler) crawlWithTimeout(ctx context.Context, pageURL string, timeout time.Duration) RawResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.CrawlURL(ctx, pageURL)
}

// discover fans the top query variants out to the discovery backend and
// merges the hits, first seen wins. Blocked domains are dropped here;
// unregistered domains flow through and take the ranker's default trust.
func (c *Crawler) discover(ctx context.Context, queries []querygen.GeneratedQuery) []Discovery {
	var merged []Discovery
	seen := make(map[string]bool)

	n := len(queries)
	if n > maxDiscoveryQueries {
		n = maxDiscoveryQueries
	}
	for _, q := range queries[:n] {
		if ctx.Err() != nil {
			break
		}
		hits, err := c.discoverer.Discover(ctx, q.Text, discoveryResultsPerQuery)
		if err != nil {
			c.log.Warn("discovery failed", "query", q.Text, "error", err)
			continue
		}
		for _, h := range hits {
			if h.URL == "" || seen[h.URL] {
				continue
			}
			u, err := url.Parse(h.URL)
			if err != nil || u.Hostname() == "" {
				continue
			}
			domain := trust.NormalizeDomain(u.Hostname())
			if c.registry != nil && c.registry.IsBlocked(domain) {
				continue
			}
			seen[h.URL] = true
			merged = append(merged, h)
		}
	}
	return merged
}

// partitionByPreference stably reorders hits so preferred domains come
// first. Relative order within each partition is preserved.
func partitionByPreference(hits []Discovery, preferred []string) []Discovery {
	if len(preferred) == 0 {
		return hits
	}
	prefSet := make(map[string]bool, len(preferred))
	for _, d := range preferred {
		prefSet[trust.NormalizeDomain(d)] = true
	}

	front := make([]Discovery, 0, len(hits))
	var back []Discovery
	for _, h := range hits {
		u, err := url.Parse(h.URL)
		if err != nil {
			back = append(back, h)
			continue
		}
		if prefSet[trust.NormalizeDomain(u.Hostname())] {
			front = append(front, h)
		} else {
			back = append(back, h)
		}
	}
	return append(front, back...)
}

// pageTitleFromURL derives a readable title from the URL path, for
// documents with no parseable title of their own.
func pageTitleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return u.Hostname()
	}
	last = strings.TrimSuffix(last, ".pdf")
	last = strings.NewReplacer("-", " ", "_", " ").Replace(last)
	return last
}
