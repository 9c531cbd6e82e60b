package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Discoverer finds candidate URLs for a search query. Implementations must
// be safe for concurrent use.
type Discoverer interface {
	Discover(ctx context.Context, query string, max int) ([]Discovery, error)
}

// DuckDuckGoDiscoverer discovers URLs through the DuckDuckGo HTML endpoint,
// which needs no API key. One discovery call is one upstream request.
type DuckDuckGoDiscoverer struct {
	client    *http.Client
	userAgent string
}

// NewDuckDuckGoDiscoverer creates the default discovery backend.
func NewDuckDuckGoDiscoverer(client *http.Client, userAgent string) *DuckDuckGoDiscoverer {
	return &DuckDuckGoDiscoverer{client: client, userAgent: userAgent}
}

// Discover runs one search and parses up to max results from the HTML.
func (d *DuckDuckGoDiscoverer) Discover(ctx context.Context, query string, max int) ([]Discovery, error) {
	searchURL := fmt.Sprintf("https://html.duckduckgo.com/html/?q=%s", url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build discovery request: %w", err)
	}
	setBrowserHeaders(req, d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discovery: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read discovery response: %w", err)
	}
	return parseDuckDuckGoResults(string(body), max), nil
}

// parseDuckDuckGoResults walks the result divs (class "result results_links")
// and pulls the anchor and snippet out of each.
func parseDuckDuckGoResults(htmlContent string, max int) []Discovery {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	var results []Discovery
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= max {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" {
			class := attrValue(n, "class")
			if strings.Contains(class, "result") && strings.Contains(class, "results_links") {
				if d := extractDiscovery(n); d.URL != "" && d.Title != "" {
					results = append(results, d)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results
}

func extractDiscovery(n *html.Node) Discovery {
	var d Discovery
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			class := attrValue(n, "class")
			if strings.Contains(class, "result__a") {
				d.URL = decodeRedirect(attrValue(n, "href"))
				d.Title = textContent(n)
			} else if strings.Contains(class, "result__snippet") {
				d.Snippet = textContent(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return d
}

// decodeRedirect unwraps DuckDuckGo's /l/?uddg= redirect URLs.
func decodeRedirect(href string) string {
	const prefix = "//duckduckgo.com/l/?uddg="
	if !strings.HasPrefix(href, prefix) {
		return href
	}
	decoded, err := url.QueryUnescape(strings.TrimPrefix(href, prefix))
	if err != nil {
		return href
	}
	if idx := strings.Index(decoded, "&"); idx > 0 {
		decoded = decoded[:idx]
	}
	return decoded
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
