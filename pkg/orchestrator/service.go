package orchestrator

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"dslabs/dssearch/pkg/cache"
	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/crawler"
	"dslabs/dssearch/pkg/facts"
	"dslabs/dssearch/pkg/policy"
	"dslabs/dssearch/pkg/querygen"
	"dslabs/dssearch/pkg/ranker"
	"dslabs/dssearch/pkg/searchapi"
	"dslabs/dssearch/pkg/telemetry/metrics"
	"dslabs/dssearch/pkg/trust"
)

// PageFetcher is the crawl surface the orchestrator drives.
type PageFetcher interface {
	SearchAndCrawl(ctx context.Context, queries []querygen.GeneratedQuery, plan crawler.Plan) []crawler.RawResult
	CrawlURL(ctx context.Context, url string) crawler.RawResult
}

// APIClient is the paid-search surface the orchestrator falls back to.
type APIClient interface {
	Search(ctx context.Context, query string, max int) ([]crawler.Discovery, error)
	Enabled() bool
	SetEnabled(enabled bool)
	GetStatus() searchapi.Status
}

// Deps are the orchestrator's collaborators. Nil fields are constructed
// from configuration, so production wiring passes only a Deps{} while
// tests substitute fakes.
type Deps struct {
	Cache     *cache.Cache
	Registry  *trust.Registry
	Policy    *policy.Engine
	Fetcher   PageFetcher
	API       APIClient
	Ranker    *ranker.Ranker
	Extractor *facts.Extractor
	Metrics   *metrics.Collector
	Logger    *slog.Logger
}

// Service runs the answer pipeline. Safe for concurrent use.
type Service struct {
	cfg       *config.Config
	cache     *cache.Cache
	registry  *trust.Registry
	policy    *policy.Engine
	gen       *querygen.Generator
	fetcher   PageFetcher
	api       APIClient
	ranker    *ranker.Ranker
	extractor *facts.Extractor
	metrics   *metrics.Collector
	log       *slog.Logger
	history   *searchLog
}

// New wires the pipeline from configuration, using any collaborators
// already present in deps.
func New(cfg *config.Config, deps Deps) *Service {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	registry := deps.Registry
	if registry == nil {
		registry = trust.NewRegistry(trust.WithLogger(log.With("component", "trust.registry")))
	}

	c := deps.Cache
	if c == nil {
		c = cache.New(&cfg.Cache, cache.WithLogger(log.With("component", "cache")), cache.WithMetrics(deps.Metrics))
	}

	eng := deps.Policy
	if eng == nil {
		eng = policy.NewEngine(cfg.Policy, log.With("component", "policy"))
	}

	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = crawler.New(cfg.Crawler, registry,
			crawler.WithLogger(log.With("component", "crawler")),
			crawler.WithMetrics(deps.Metrics))
	}

	api := deps.API
	if api == nil {
		api = searchapi.NewClient(cfg.PaidAPI, deps.Metrics, log.With("component", "searchapi"))
	}
	eng.SetAPIAvailable(api.Enabled())

	rk := deps.Ranker
	if rk == nil {
		rk = ranker.New(cfg.Ranker, registry)
	}

	ex := deps.Extractor
	if ex == nil {
		ex = facts.NewExtractor(registry)
	}

	return &Service{
		cfg:       cfg,
		cache:     c,
		registry:  registry,
		policy:    eng,
		gen:       querygen.NewGenerator(),
		fetcher:   fetcher,
		api:       api,
		ranker:    rk,
		extractor: ex,
		metrics:   deps.Metrics,
		log:       log.With("component", "orchestrator"),
		history:   newSearchLog(cfg.Telemetry.SearchLogPath, log.With("component", "searchlog")),
	}
}

// Ask answers one user question through the full pipeline: policy gate,
// cache, crawl, optional paid API fallback, ranking, and fact extraction.
func (s *Service) Ask(ctx context.Context, req AskRequest) (*Response, error) {
	start := time.Now()
	query := strings.TrimSpace(req.Query)

	resp := &Response{
		RequestID: uuid.NewString(),
		Query:     query,
		Source:    "none",
	}

	// A blank query is answered, not errored: an empty response with a
	// reason the user can act on.
	if query == "" {
		resp.Action = ActionDeclined
		resp.Reason = reasonText(reasonEmptyQuery, req.Lang)
		return s.finish(resp, req, start), nil
	}

	// The cache is consulted before policy so its hit count feeds the
	// internal-coverage signal.
	entry := s.cache.Get(query)
	internalHits := 0
	if entry != nil {
		internalHits = len(entry.Results)
	}

	d := s.policy.Evaluate(policy.EvalInput{Query: query, UserID: req.UserID, InternalHits: internalHits})
	resp.Intent = d.Intent
	resp.Score = d.Score

	switch d.Intent {
	case policy.IntentBlocked:
		resp.Action = ActionBlocked
		resp.Reason = reasonText(reasonBlocked, req.Lang)
		if s.metrics != nil {
			s.metrics.RecordBlocked()
		}
		return s.finish(resp, req, start), nil
	case policy.IntentGreeting:
		resp.Action = ActionDeclined
		resp.Reason = reasonText(reasonGreeting, req.Lang)
		return s.finish(resp, req, start), nil
	case policy.IntentSmallTalk:
		resp.Action = ActionDeclined
		resp.Reason = reasonText(reasonSmallTalk, req.Lang)
		return s.finish(resp, req, start), nil
	case policy.IntentPersonalStatus:
		resp.Action = ActionDeclined
		resp.Reason = reasonText(reasonPersonal, req.Lang)
		return s.finish(resp, req, start), nil
	}

	if entry != nil {
		resp.Action = ActionCached
		resp.Source = "cache"
		resp.Cached = true
		resp.Results = s.rankFor(d.Intent, query, entry.Results)
		resp.Facts = s.extractFacts(query, resp.Results)
		resp.Reason = reasonText(reasonCached, req.Lang)
		return s.finish(resp, req, start), nil
	}

	if !d.ShouldSearch {
		if d.RateLimited {
			resp.Action = ActionRateLimited
			resp.Reason = reasonText(reasonRateLimited, req.Lang)
			if s.metrics != nil {
				s.metrics.RecordRateLimited()
			}
		} else {
			resp.Action = ActionDeclined
			resp.Reason = reasonText(reasonNotNeeded, req.Lang)
		}
		return s.finish(resp, req, start), nil
	}

	// External retrieval.
	plan := policy.ChoosePlan(d.Intent, query, s.registry)
	queries := s.gen.Generate(query)

	raw := s.fetcher.SearchAndCrawl(ctx, queries, plan)
	source := "crawler"

	if countSuccessful(raw) == 0 && d.SearchTier == policy.TierAPI {
		if hits, err := s.api.Search(ctx, querygen.Clean(query), s.cfg.Ranker.MaxResults); err == nil && len(hits) > 0 {
			raw = discoveriesToResults(hits)
			source = "api"
		}
	}

	resp.Action = ActionSearched
	resp.Results = s.rankFor(d.Intent, query, raw)
	resp.Facts = s.extractFacts(query, resp.Results)

	if countSuccessful(raw) > 0 {
		resp.Source = source
		// Partial results from a cancelled crawl are returned but never
		// cached; the next ask should retry properly.
		if ctx.Err() == nil {
			s.cache.Put(query, raw, 0, cache.ResultSource(source))
		}
		s.policy.RecordSearch(req.UserID)
		resp.Reason = reasonText(reasonSearched, req.Lang)
	} else {
		resp.Reason = reasonText(reasonNoResults, req.Lang)
	}
	if len(resp.Results) == 0 {
		resp.Reason = reasonText(reasonNoResults, req.Lang)
	}
	return s.finish(resp, req, start), nil
}

// FetchURL reads one page on the user's behalf. It runs through the same
// policy gate as Ask, so blocked domains and rate limits still apply.
func (s *Service) FetchURL(ctx context.Context, rawURL, userID, lang string) (*Response, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return s.Ask(ctx, AskRequest{UserID: userID, Lang: lang})
	}
	// Phrase the request the way a user pasting a link would, so intent
	// detection and scoring treat it as a URL fetch.
	return s.Ask(ctx, AskRequest{Query: "open " + rawURL, UserID: userID, Lang: lang})
}

// RecentLogs returns up to n search log entries, newest first.
func (s *Service) RecentLogs(n int) []LogEntry {
	return s.history.recent(n)
}

// CacheStatus reports per-tier cache counts.
func (s *Service) CacheStatus() cache.Status {
	return s.cache.Status()
}

// ClearCache drops all cached entries.
func (s *Service) ClearCache() error {
	return s.cache.Clear()
}

// Registry exposes the trust registry for admin surfaces.
func (s *Service) Registry() *trust.Registry {
	return s.registry
}

// API exposes the paid-search client for admin surfaces.
func (s *Service) API() APIClient {
	return s.api
}

// SetAPIEnabled flips the paid-API switch and keeps policy tiering in sync.
func (s *Service) SetAPIEnabled(enabled bool) {
	s.api.SetEnabled(enabled)
	s.policy.SetAPIAvailable(s.api.Enabled())
}

// Close releases the cache store and the search log store.
func (s *Service) Close() error {
	err := s.cache.Close()
	if herr := s.history.close(); err == nil {
		err = herr
	}
	return err
}

// finish stamps the duration, records telemetry, and appends the request
// to the search log.
func (s *Service) finish(resp *Response, req AskRequest, start time.Time) *Response {
	resp.Duration = time.Since(start)
	resp.Success = len(resp.Results) > 0

	if s.metrics != nil {
		s.metrics.RecordSearch(string(resp.Intent), string(resp.Action), resp.Duration)
	}
	s.history.add(LogEntry{
		ID:       resp.RequestID,
		Time:     start,
		UserID:   req.UserID,
		Query:    resp.Query,
		Intent:   resp.Intent,
		Score:    resp.Score,
		Action:   resp.Action,
		Source:   resp.Source,
		Results:  len(resp.Results),
		Duration: resp.Duration,
	})
	s.log.Info("request handled",
		"id", resp.RequestID,
		"intent", resp.Intent,
		"action", resp.Action,
		"source", resp.Source,
		"results", len(resp.Results),
		"score", resp.Score,
		"duration", resp.Duration)
	return resp
}

// rankFor orders results for the response. URL fetches skip the relevance
// floor: the user asked for that exact page, thin or not.
func (s *Service) rankFor(intent policy.Intent, query string, raw []crawler.RawResult) []ranker.RankedResult {
	if intent == policy.IntentUrlFetch {
		var out []ranker.RankedResult
		for _, r := range raw {
			if !r.Success {
				continue
			}
			out = append(out, ranker.RankedResult{RawResult: r})
		}
		return out
	}
	return s.ranker.Rank(query, raw)
}

// extractFacts runs fact extraction and keeps it only when substantial.
func (s *Service) extractFacts(query string, ranked []ranker.RankedResult) *facts.Facts {
	if len(ranked) == 0 {
		return nil
	}
	f := s.extractor.Extract(query, ranked)
	if !f.Valid() {
		return nil
	}
	return &f
}

func countSuccessful(results []crawler.RawResult) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}

// discoveriesToResults adapts paid-API hits into the crawl result shape.
// The snippet stands in for page content; the pages themselves are not
// fetched on the paid path.
func discoveriesToResults(hits []crawler.Discovery) []crawler.RawResult {
	now := time.Now()
	results := make([]crawler.RawResult, 0, len(hits))
	for _, h := range hits {
		domain := ""
		if u, err := url.Parse(h.URL); err == nil {
			domain = trust.NormalizeDomain(u.Hostname())
		}
		results = append(results, crawler.RawResult{
			URL:       h.URL,
			Title:     h.Title,
			Snippet:   h.Snippet,
			Content:   h.Snippet,
			Domain:    domain,
			CrawledAt: now,
			Success:   true,
			Metadata:  map[string]string{"via": "api"},
		})
	}
	return results
}
