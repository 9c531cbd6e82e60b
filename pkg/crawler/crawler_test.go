package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/querygen"
	"dslabs/dssearch/pkg/trust"
)

const noticePage = `<!DOCTYPE html>
<html><head>
<title>Staff Selection Commission | Home</title>
<meta name="description" content="Combined Graduate Level Examination 2026 notice">
</head><body>
<nav>Home About Contact</nav>
<h1>CGL Examination 2026</h1>
<p>Applications are invited for the Combined Graduate Level Examination.
Last date to apply is 15 March 2026. Application fee Rs. 100 for general
category.</p>
<ul>
<li>Last date to apply: 15 March 2026</li>
<li>Application fee: Rs. 100 (general)</li>
<li>Total vacancies: 17727 posts</li>
<li>Home</li>
</ul>
<a href="/apply/cgl2026">Apply Online</a>
<a href="/docs/notice.pdf">Download Notification PDF</a>
<a href="#top">Back to top</a>
<a href="javascript:void(0)">Apply popup</a>
<script>trackVisit();</script>
<footer>Copyright 2026</footer>
</body></html>`

func testConfig(timeout time.Duration) config.CrawlerConfig {
	return config.CrawlerConfig{
		Timeout:          timeout,
		RateLimitDefault: 100, // keep politeness delays negligible in tests
		MaxBodyBytes:     2 << 20,
	}
}

type fakeDiscoverer struct {
	hits  []Discovery
	err   error
	calls int
}

func (f *fakeDiscoverer) Discover(_ context.Context, _ string, _ int) ([]Discovery, error) {
	f.calls++
	return f.hits, f.err
}

func TestCrawlURLExtractsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(noticePage))
	}))
	defer srv.Close()

	c := New(testConfig(5*time.Second), nil)
	res := c.CrawlURL(context.Background(), srv.URL+"/notice")

	if !res.Success {
		t.Fatalf("Success = false, metadata %v", res.Metadata)
	}
	if res.Title != "CGL Examination 2026" {
		t.Errorf("Title = %q, want the h1 heading", res.Title)
	}
	if !strings.Contains(res.Content, "Last date to apply is 15 March 2026") {
		t.Errorf("Content missing body text: %q", res.Content)
	}
	if strings.Contains(res.Content, "trackVisit") {
		t.Error("script content leaked into extraction")
	}
	if res.Snippet == "" || len(res.Snippet) > SnippetChars {
		t.Errorf("Snippet length %d, want 1..%d", len(res.Snippet), SnippetChars)
	}
	if res.Metadata["description"] != "Combined Graduate Level Examination 2026 notice" {
		t.Errorf("description = %q", res.Metadata["description"])
	}

	if len(res.Links) != 2 {
		t.Fatalf("Links = %v, want the apply and pdf links only", res.Links)
	}
	for _, l := range res.Links {
		if !strings.HasPrefix(l, srv.URL) {
			t.Errorf("link %q not resolved absolute", l)
		}
	}

	wantPoints := []string{
		"Last date to apply: 15 March 2026",
		"Application fee: Rs. 100 (general)",
		"Total vacancies: 17727 posts",
	}
	if len(res.KeyPoints) != len(wantPoints) {
		t.Fatalf("KeyPoints = %v, want %v", res.KeyPoints, wantPoints)
	}
	for i, want := range wantPoints {
		if res.KeyPoints[i] != want {
			t.Errorf("KeyPoints[%d] = %q, want %q", i, res.KeyPoints[i], want)
		}
	}
}

func TestExtractPageContainerProfiles(t *testing.T) {
	page := `<html><head><title>Portal</title><meta name="date" content="2026-03-01"></head><body>
<div class="promo">Helpline numbers and unrelated announcements</div>
<div class="content-area"><p>Recruitment notice: last date 15 March 2026.</p></div>
<div class="promo">More sidebar promos</div>
</body></html>`

	// A .gov.in host selects the .content-area container; sibling promos
	// stay out of the extracted text.
	ex := extractPage(page, "https://ssc.gov.in/notice")
	if !strings.Contains(ex.Content, "Recruitment notice") {
		t.Fatalf("Content = %q, missing container text", ex.Content)
	}
	if strings.Contains(ex.Content, "sidebar promos") || strings.Contains(ex.Content, "Helpline") {
		t.Errorf("Content = %q, promo text leaked past the container", ex.Content)
	}
	if ex.Date != "2026-03-01" {
		t.Errorf("Date = %q, want the profile meta date", ex.Date)
	}

	// An unknown host matches none of the default containers and falls
	// back to whole-document text.
	ex = extractPage(page, "https://unknownblog.example/notice")
	if !strings.Contains(ex.Content, "Helpline") || !strings.Contains(ex.Content, "Recruitment notice") {
		t.Errorf("fallback Content = %q, want whole-document text", ex.Content)
	}
}

func TestExtractPageAggregatorContainer(t *testing.T) {
	page := `<html><body>
<div class="sidebar">Latest jobs ticker and ads</div>
<div class="post-content">SSC CGL 2026 online form, apply before the last date.</div>
</body></html>`

	ex := extractPage(page, "https://www.sarkariresult.com/cgl")
	if !strings.Contains(ex.Content, "online form") {
		t.Fatalf("Content = %q, missing post content", ex.Content)
	}
	if strings.Contains(ex.Content, "ads") {
		t.Errorf("Content = %q, sidebar leaked past .post-content", ex.Content)
	}
}

func TestCrawlURLFailuresProduceResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(testConfig(5*time.Second), nil)

	res := c.CrawlURL(context.Background(), srv.URL+"/gone")
	if res.Success {
		t.Error("404 fetch reported success")
	}
	if res.Metadata["status"] != "404" {
		t.Errorf("status = %q, want 404", res.Metadata["status"])
	}

	res = c.CrawlURL(context.Background(), "::not a url")
	if res.Success || res.Metadata["error"] == "" {
		t.Errorf("invalid URL: Success=%v error=%q", res.Success, res.Metadata["error"])
	}
}

func TestCrawlURLBlockedDomain(t *testing.T) {
	reg := trust.NewRegistry()
	if err := reg.BlockDomain("shady.example"); err != nil {
		t.Fatal(err)
	}

	c := New(testConfig(time.Second), reg)
	res := c.CrawlURL(context.Background(), "https://shady.example/page")
	if res.Success {
		t.Error("blocked domain fetched")
	}
	if res.Metadata["error"] != "blocked_domain" {
		t.Errorf("error = %q, want blocked_domain", res.Metadata["error"])
	}
}

func TestCrawlURLPDFShortCircuit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	c := New(testConfig(5*time.Second), nil)
	res := c.CrawlURL(context.Background(), srv.URL+"/cgl-notice-2026.pdf")

	if !res.Success {
		t.Fatalf("PDF fetch failed: %v", res.Metadata)
	}
	if res.Title != "cgl notice 2026" {
		t.Errorf("Title = %q, want derived from path", res.Title)
	}
	if len(res.Links) != 1 || res.Links[0] != srv.URL+"/cgl-notice-2026.pdf" {
		t.Errorf("Links = %v, want the PDF URL itself", res.Links)
	}
}

func TestSearchAndCrawlSpecificURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(noticePage))
	}))
	defer srv.Close()

	fd := &fakeDiscoverer{}
	c := New(testConfig(5*time.Second), nil, WithDiscoverer(fd))

	results := c.SearchAndCrawl(context.Background(), nil, Plan{SpecificURL: srv.URL + "/notice", MaxPages: 1})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if fd.calls != 0 {
		t.Errorf("discovery called %d times for a specific URL", fd.calls)
	}
}

func TestSearchAndCrawlBudgetAndFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/thin" {
			w.Write([]byte("<html><body></body></html>"))
			return
		}
		w.Write([]byte(noticePage))
	}))
	defer srv.Close()

	fd := &fakeDiscoverer{hits: []Discovery{
		{Title: "Notice", URL: srv.URL + "/a", Snippet: "first hit"},
		{Title: "Thin page", URL: srv.URL + "/thin", Snippet: "snippet fallback text"},
		{Title: "Notice again", URL: srv.URL + "/a", Snippet: "duplicate"},
		{Title: "Over budget", URL: srv.URL + "/c", Snippet: "never fetched"},
	}}
	c := New(testConfig(5*time.Second), nil, WithDiscoverer(fd))

	queries := []querygen.GeneratedQuery{{Text: "ssc cgl last date", Priority: 1}}
	results := c.SearchAndCrawl(context.Background(), queries, Plan{MaxPages: 2})

	if len(results) != 2 {
		t.Fatalf("got %d results, want page budget of 2", len(results))
	}
	// Duplicate URL was deduplicated, so the second fetch is the thin page
	// and its content falls back to the search snippet.
	thin := results[1]
	if thin.Content != "snippet fallback text" {
		t.Errorf("thin page content = %q, want snippet fallback", thin.Content)
	}
	if thin.Title != "Thin page" {
		t.Errorf("thin page title = %q, want discovery title", thin.Title)
	}
}

func TestSearchAndCrawlDropsBlockedKeepsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(noticePage))
	}))
	defer srv.Close()

	reg := trust.NewRegistry()
	if err := reg.BlockDomain("shady.example"); err != nil {
		t.Fatal(err)
	}

	// One hit from a blocked domain, one from a domain the registry has
	// never seen. Only the blocked one is filtered; the unknown domain is
	// fetched and left for the ranker's default trust to weigh.
	fd := &fakeDiscoverer{hits: []Discovery{
		{Title: "Shady mirror", URL: "https://shady.example/post", Snippet: "x"},
		{Title: "Unknown blog", URL: srv.URL + "/post", Snippet: "y"},
	}}
	c := New(testConfig(5*time.Second), reg, WithDiscoverer(fd))

	results := c.SearchAndCrawl(context.Background(), []querygen.GeneratedQuery{{Text: "q"}}, Plan{MaxPages: 3})
	if len(results) != 1 {
		t.Fatalf("got %d results, want the unknown-domain page only: %v", len(results), results)
	}
	if !results[0].Success || !strings.HasPrefix(results[0].URL, srv.URL) {
		t.Errorf("result = %+v, want successful fetch of the unknown domain", results[0])
	}
}

func TestSearchAndCrawlDiscoveryError(t *testing.T) {
	fd := &fakeDiscoverer{err: errors.New("upstream down")}
	c := New(testConfig(time.Second), nil, WithDiscoverer(fd))

	results := c.SearchAndCrawl(context.Background(), []querygen.GeneratedQuery{{Text: "q"}}, Plan{MaxPages: 3})
	if results != nil {
		t.Errorf("got %v, want nil on total discovery failure", results)
	}
}

func TestSearchAndCrawlCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(noticePage))
	}))
	defer srv.Close()

	fd := &fakeDiscoverer{hits: []Discovery{
		{Title: "A", URL: srv.URL + "/a", Snippet: "a"},
		{Title: "B", URL: srv.URL + "/b", Snippet: "b"},
	}}
	c := New(testConfig(5*time.Second), nil, WithDiscoverer(fd))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := c.SearchAndCrawl(ctx, []querygen.GeneratedQuery{{Text: "q"}}, Plan{MaxPages: 2})
	if len(results) > 1 {
		t.Errorf("got %d results after cancellation, want at most the in-flight one", len(results))
	}
}

func TestPartitionByPreference(t *testing.T) {
	hits := []Discovery{
		{URL: "https://sarkariresult.com/x"},
		{URL: "https://ssc.nic.in/y"},
		{URL: "https://example.org/z"},
		{URL: "https://www.ssc.nic.in/w"},
	}
	ordered := partitionByPreference(hits, []string{"ssc.nic.in"})

	if ordered[0].URL != "https://ssc.nic.in/y" || ordered[1].URL != "https://www.ssc.nic.in/w" {
		t.Errorf("preferred domains not first: %v", ordered)
	}
	if ordered[2].URL != "https://sarkariresult.com/x" {
		t.Error("relative order of non-preferred hits not preserved")
	}
}

func TestPolitenessSpacing(t *testing.T) {
	p := newPoliteness()
	ctx := context.Background()

	start := time.Now()
	if err := p.wait(ctx, "ssc.nic.in", 20); err != nil {
		t.Fatal(err)
	}
	if err := p.wait(ctx, "ssc.nic.in", 20); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second fetch after %v, want >= 50ms interval", elapsed)
	}

	// Different domains are independent.
	start = time.Now()
	if err := p.wait(ctx, "upsc.gov.in", 20); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 40*time.Millisecond {
		t.Errorf("fresh domain delayed %v", elapsed)
	}
}

func TestCrawlURLConfigRateWithoutOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(noticePage))
	}))
	defer srv.Close()

	// The registry has no entry for this domain, so the configured default
	// rate (100 req/s) applies; a zero registry override must not drop the
	// crawl to the 1 req/s fallback.
	c := New(testConfig(5*time.Second), trust.NewRegistry())

	start := time.Now()
	c.CrawlURL(context.Background(), srv.URL+"/a")
	c.CrawlURL(context.Background(), srv.URL+"/b")
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("two fetches took %v, config default rate not applied", elapsed)
	}
}

func TestPolitenessCancellation(t *testing.T) {
	p := newPoliteness()
	ctx, cancel := context.WithCancel(context.Background())

	if err := p.wait(ctx, "slow.gov.in", 0.5); err != nil {
		t.Fatal(err)
	}
	cancel()
	if err := p.wait(ctx, "slow.gov.in", 0.5); err == nil {
		t.Error("wait did not honour cancellation")
	}
}

func TestDecodeRedirect(t *testing.T) {
	in := "//duckduckgo.com/l/?uddg=https%3A%2F%2Fssc.nic.in%2Fnotice&rut=abc"
	if got := decodeRedirect(in); got != "https://ssc.nic.in/notice" {
		t.Errorf("decodeRedirect = %q", got)
	}
	if got := decodeRedirect("https://plain.example/"); got != "https://plain.example/" {
		t.Errorf("plain URL rewritten to %q", got)
	}
}

func TestParseDuckDuckGoResults(t *testing.T) {
	page := `<html><body>
	<div class="result results_links results_links_deep web-result">
	  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fssc.nic.in%2Fcgl">SSC CGL 2026</a>
	  <a class="result__snippet" href="/x">Combined Graduate Level notification</a>
	</div>
	<div class="result results_links web-result">
	  <a class="result__a" href="https://sarkariresult.com/cgl">CGL Result</a>
	</div>
	<div class="no-results">ignore me</div>
	</body></html>`

	results := parseDuckDuckGoResults(page, 10)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].URL != "https://ssc.nic.in/cgl" {
		t.Errorf("redirect not decoded: %q", results[0].URL)
	}
	if results[0].Title != "SSC CGL 2026" {
		t.Errorf("Title = %q", results[0].Title)
	}
	if results[0].Snippet != "Combined Graduate Level notification" {
		t.Errorf("Snippet = %q", results[0].Snippet)
	}

	if got := parseDuckDuckGoResults(page, 1); len(got) != 1 {
		t.Errorf("max not honoured: %d", len(got))
	}
}

func TestMakeSnippet(t *testing.T) {
	long := strings.Repeat("word ", 100)
	s := makeSnippet(long)
	if len(s) > SnippetChars {
		t.Errorf("snippet length %d over cap", len(s))
	}
	if strings.HasSuffix(s, " ") {
		t.Errorf("snippet ends mid-boundary: %q", s)
	}
	if got := makeSnippet("short"); got != "short" {
		t.Errorf("short content altered: %q", got)
	}
}
