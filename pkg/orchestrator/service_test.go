package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/crawler"
	"dslabs/dssearch/pkg/querygen"
	"dslabs/dssearch/pkg/searchapi"
)

type fakeFetcher struct {
	results  []crawler.RawResult
	calls    int
	lastPlan crawler.Plan
}

func (f *fakeFetcher) SearchAndCrawl(_ context.Context, _ []querygen.GeneratedQuery, plan crawler.Plan) []crawler.RawResult {
	f.calls++
	f.lastPlan = plan
	if plan.SpecificURL != "" && len(f.results) > 0 {
		return f.results[:1]
	}
	return f.results
}

func (f *fakeFetcher) CrawlURL(_ context.Context, url string) crawler.RawResult {
	f.calls++
	if len(f.results) > 0 {
		return f.results[0]
	}
	return crawler.RawResult{URL: url}
}

type fakeAPI struct {
	hits    []crawler.Discovery
	enabled bool
	calls   int
}

func (f *fakeAPI) Search(_ context.Context, _ string, _ int) ([]crawler.Discovery, error) {
	f.calls++
	if !f.enabled {
		return nil, nil
	}
	return f.hits, nil
}

func (f *fakeAPI) Enabled() bool           { return f.enabled }
func (f *fakeAPI) SetEnabled(enabled bool) { f.enabled = enabled }

func (f *fakeAPI) GetStatus() searchapi.Status {
	return searchapi.Status{Enabled: f.enabled, Provider: "fake"}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func schemePage() crawler.RawResult {
	year := time.Now().Year()
	return crawler.RawResult{
		URL:     "https://pmkisan.gov.in/eligibility",
		Domain:  "pmkisan.gov.in",
		Title:   fmt.Sprintf("PM Kisan Yojana Eligibility %d", year),
		Snippet: "pm kisan yojana eligibility details for farmers",
		Content: fmt.Sprintf("pm kisan yojana eligibility %d: small and marginal farmers. Last date to apply: 15/03/%d.", year, year),
		Links:   []string{"https://pmkisan.gov.in/apply"},
		Success: true,
	}
}

func newTestService(t *testing.T, ff *fakeFetcher, fa *fakeAPI) *Service {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	cfg.Telemetry.Metrics.Enabled = false
	return New(cfg, Deps{Fetcher: ff, API: fa})
}

func TestAskGreeting(t *testing.T) {
	ff := &fakeFetcher{}
	s := newTestService(t, ff, &fakeAPI{})

	resp, err := s.Ask(context.Background(), AskRequest{Query: "namaste", UserID: "u1", Lang: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Action != ActionDeclined {
		t.Errorf("Action = %q, want declined", resp.Action)
	}
	if ff.calls != 0 {
		t.Error("greeting triggered a crawl")
	}
	if !strings.Contains(resp.Reason, "नमस्ते") {
		t.Errorf("hindi reason = %q", resp.Reason)
	}
}

func TestAskBlocked(t *testing.T) {
	ff := &fakeFetcher{}
	s := newTestService(t, ff, &fakeAPI{})

	resp, err := s.Ask(context.Background(), AskRequest{Query: "satta number batao", UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Action != ActionBlocked || resp.Score != 0 {
		t.Errorf("Action = %q score = %.2f, want blocked at 0", resp.Action, resp.Score)
	}
	if ff.calls != 0 {
		t.Error("blocked query triggered a crawl")
	}
}

func TestAskSearchThenCache(t *testing.T) {
	ff := &fakeFetcher{results: []crawler.RawResult{schemePage()}}
	s := newTestService(t, ff, &fakeAPI{})

	first, err := s.Ask(context.Background(), AskRequest{Query: "pm kisan yojana eligibility", UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Action != ActionSearched || first.Source != "crawler" {
		t.Fatalf("first call: action=%q source=%q, want searched/crawler", first.Action, first.Source)
	}
	if len(first.Results) == 0 {
		t.Fatal("first call returned no ranked results")
	}
	if !first.Success {
		t.Error("Success = false on a call that produced results")
	}
	if first.Facts == nil || first.Facts.LastDate == "" {
		t.Errorf("facts not extracted: %+v", first.Facts)
	}

	second, err := s.Ask(context.Background(), AskRequest{Query: "pm kisan yojana eligibility", UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if second.Action != ActionCached || second.Source != "cache" || !second.Cached {
		t.Errorf("second call: action=%q source=%q cached=%v", second.Action, second.Source, second.Cached)
	}
	if ff.calls != 1 {
		t.Errorf("crawler called %d times, want 1", ff.calls)
	}
	if len(second.Results) == 0 {
		t.Error("cached call returned no results")
	}
}

func TestAskNoResultsNotCached(t *testing.T) {
	failed := crawler.RawResult{URL: "https://x.gov.in/p", Domain: "x.gov.in", Success: false}
	ff := &fakeFetcher{results: []crawler.RawResult{failed}}
	s := newTestService(t, ff, &fakeAPI{})

	resp, err := s.Ask(context.Background(), AskRequest{Query: "pm kisan yojana eligibility", UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Action != ActionSearched || resp.Source != "none" || len(resp.Results) != 0 {
		t.Errorf("resp = action %q source %q results %d", resp.Action, resp.Source, len(resp.Results))
	}
	if resp.Success {
		t.Error("Success = true on an empty-handed search")
	}

	// An all-failed crawl must not poison the cache.
	if _, err := s.Ask(context.Background(), AskRequest{Query: "pm kisan yojana eligibility", UserID: "u1"}); err != nil {
		t.Fatal(err)
	}
	if ff.calls != 2 {
		t.Errorf("crawler called %d times, want 2 (no cache entry)", ff.calls)
	}
}

func TestAskAPIFallback(t *testing.T) {
	ff := &fakeFetcher{} // crawler finds nothing
	fa := &fakeAPI{
		enabled: true,
		hits: []crawler.Discovery{{
			Title:   "PM Kisan Yojana Eligibility",
			URL:     "https://pmkisan.gov.in/eligibility",
			Snippet: "pm kisan yojana eligibility for small and marginal farmers explained",
		}},
	}
	s := newTestService(t, ff, fa)

	resp, err := s.Ask(context.Background(), AskRequest{Query: "pm kisan yojana eligibility", UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Source != "api" {
		t.Fatalf("Source = %q, want api (action %q)", resp.Source, resp.Action)
	}
	if fa.calls != 1 {
		t.Errorf("API called %d times, want 1", fa.calls)
	}
	if len(resp.Results) == 0 {
		t.Error("API fallback produced no ranked results")
	}
}

func TestAskRateLimited(t *testing.T) {
	ff := &fakeFetcher{results: []crawler.RawResult{schemePage()}}
	cfg := config.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	cfg.Policy.MaxSearchesPerMinute = 1
	s := New(cfg, Deps{Fetcher: ff, API: &fakeAPI{}})

	if _, err := s.Ask(context.Background(), AskRequest{Query: "pm kisan yojana eligibility", UserID: "heavy"}); err != nil {
		t.Fatal(err)
	}
	resp, err := s.Ask(context.Background(), AskRequest{Query: "ssc cgl 2026 last date kab hai", UserID: "heavy"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Action != ActionRateLimited {
		t.Errorf("Action = %q, want rate_limited", resp.Action)
	}
	if ff.calls != 1 {
		t.Errorf("crawler called %d times, want 1", ff.calls)
	}
}

func TestFetchURL(t *testing.T) {
	page := schemePage()
	ff := &fakeFetcher{results: []crawler.RawResult{page}}
	s := newTestService(t, ff, &fakeAPI{})

	resp, err := s.FetchURL(context.Background(), "https://pmkisan.gov.in/eligibility", "u1", "en")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Intent != "url_fetch" {
		t.Errorf("Intent = %q, want url_fetch", resp.Intent)
	}
	if ff.lastPlan.SpecificURL != "https://pmkisan.gov.in/eligibility" {
		t.Errorf("plan SpecificURL = %q", ff.lastPlan.SpecificURL)
	}
	if ff.lastPlan.MaxPages != 1 {
		t.Errorf("plan MaxPages = %d, want 1", ff.lastPlan.MaxPages)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want the fetched page", len(resp.Results))
	}
}

func TestAskEmptyQuery(t *testing.T) {
	ff := &fakeFetcher{}
	s := newTestService(t, ff, &fakeAPI{})

	resp, err := s.Ask(context.Background(), AskRequest{Query: "   "})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Success || len(resp.Results) != 0 {
		t.Errorf("resp = success %v with %d results, want an empty response", resp.Success, len(resp.Results))
	}
	if resp.Action != ActionDeclined {
		t.Errorf("Action = %q, want declined", resp.Action)
	}
	if !strings.Contains(resp.Reason, "Empty query") {
		t.Errorf("Reason = %q", resp.Reason)
	}
	if ff.calls != 0 {
		t.Error("empty query triggered a crawl")
	}
}

func TestSearchLogRecordsRequests(t *testing.T) {
	ff := &fakeFetcher{results: []crawler.RawResult{schemePage()}}
	s := newTestService(t, ff, &fakeAPI{})

	queries := []string{"namaste", "pm kisan yojana eligibility", "pm kisan yojana eligibility"}
	for _, q := range queries {
		if _, err := s.Ask(context.Background(), AskRequest{Query: q, UserID: "u1"}); err != nil {
			t.Fatal(err)
		}
	}

	logs := s.RecentLogs(10)
	if len(logs) != 3 {
		t.Fatalf("got %d log entries, want 3", len(logs))
	}
	// Newest first.
	if logs[0].Action != ActionCached || logs[2].Action != ActionDeclined {
		t.Errorf("log order wrong: %q then %q", logs[0].Action, logs[2].Action)
	}
	for _, e := range logs {
		if e.ID == "" {
			t.Error("log entry missing ID")
		}
	}
}

func TestSearchLogRingEviction(t *testing.T) {
	sl := newSearchLog("", testLogger())
	for i := 0; i < maxLogEntries+10; i++ {
		sl.add(LogEntry{ID: fmt.Sprint(i)})
	}
	logs := sl.recent(0)
	if len(logs) != maxLogEntries {
		t.Fatalf("got %d entries, want %d", len(logs), maxLogEntries)
	}
	if logs[0].ID != fmt.Sprint(maxLogEntries+9) {
		t.Errorf("newest entry = %s", logs[0].ID)
	}
	if logs[len(logs)-1].ID != fmt.Sprint(10) {
		t.Errorf("oldest entry = %s, want 10", logs[len(logs)-1].ID)
	}
}

func TestSetAPIEnabled(t *testing.T) {
	fa := &fakeAPI{}
	s := newTestService(t, &fakeFetcher{}, fa)

	s.SetAPIEnabled(true)
	if !s.API().Enabled() {
		t.Error("API not enabled")
	}
	s.SetAPIEnabled(false)
	if s.API().Enabled() {
		t.Error("API not disabled")
	}
}
