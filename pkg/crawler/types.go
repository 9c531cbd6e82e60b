package crawler

import "time"

// Limits applied to extracted content.
const (
	// MaxContentChars is the cap on extracted page text.
	MaxContentChars = 10000

	// SnippetChars is the length of the snippet built from content.
	SnippetChars = 300

	// MaxLinks is the cap on collected action links per page.
	MaxLinks = 10

	// MaxKeyPoints is the cap on extracted key-point lines per page.
	MaxKeyPoints = 5
)

// RawResult is one fetched (or attempted) page. Failed fetches still
// produce a RawResult with Success=false so the pipeline can degrade
// instead of erroring.
type RawResult struct {
	// URL is the fetched URL.
	URL string `json:"url"`

	// Title is the page title, from the first matching title node.
	Title string `json:"title"`

	// Snippet is a short excerpt: the search snippet when available,
	// otherwise the first 300 characters of content.
	Snippet string `json:"snippet"`

	// Content is the extracted page text, truncated to MaxContentChars.
	Content string `json:"content"`

	// Domain is the normalised domain the URL resolves to.
	Domain string `json:"domain"`

	// CrawledAt is when the fetch completed.
	CrawledAt time.Time `json:"crawled_at"`

	// Success reports whether the fetch and extraction succeeded.
	Success bool `json:"success"`

	// Links holds up to MaxLinks absolute URLs whose anchor text matched
	// an action keyword (apply, download, result, notification, official,
	// pdf).
	Links []string `json:"links,omitempty"`

	// KeyPoints holds up to MaxKeyPoints list-item lines carrying concrete
	// information (dates, fees, counts, application instructions).
	KeyPoints []string `json:"key_points,omitempty"`

	// Metadata carries auxiliary fields: meta description, HTTP status,
	// error markers, content type.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Plan is the per-request crawl configuration produced by the policy
// engine.
type Plan struct {
	// Domains is the preferred-domain whitelist for this query type.
	// Discovery results from these domains are fetched first.
	Domains []string

	// MaxPages is the fetch budget for this crawl.
	MaxPages int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// SpecificURL, when set, short-circuits discovery: only this URL is
	// fetched.
	SpecificURL string
}

// Discovery is one search hit from a discovery backend.
type Discovery struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
