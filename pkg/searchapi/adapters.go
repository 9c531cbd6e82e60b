package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"dslabs/dssearch/pkg/crawler"
)

const maxAPIResponseBytes = 1 << 20

// googleProvider calls the Google Custom Search JSON API.
type googleProvider struct {
	key      string
	engineID string
	client   *http.Client
}

func (g *googleProvider) Name() string { return "google" }

func (g *googleProvider) Search(ctx context.Context, query string, max int) ([]crawler.Discovery, error) {
	if max > 10 {
		max = 10 // API page size cap
	}
	q := url.Values{}
	q.Set("key", g.key)
	q.Set("cx", g.engineID)
	q.Set("q", query)
	q.Set("num", fmt.Sprint(max))

	var parsed struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := getJSON(ctx, g.client, "https://www.googleapis.com/customsearch/v1?"+q.Encode(), nil, &parsed); err != nil {
		return nil, fmt.Errorf("google search: %w", err)
	}

	hits := make([]crawler.Discovery, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		hits = append(hits, crawler.Discovery{Title: item.Title, URL: item.Link, Snippet: item.Snippet})
	}
	return hits, nil
}

// bingProvider calls the Bing Web Search API.
type bingProvider struct {
	key    string
	client *http.Client
}

func (b *bingProvider) Name() string { return "bing" }

func (b *bingProvider) Search(ctx context.Context, query string, max int) ([]crawler.Discovery, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("count", fmt.Sprint(max))
	q.Set("mkt", "en-IN")

	headers := map[string]string{"Ocp-Apim-Subscription-Key": b.key}
	var parsed struct {
		WebPages struct {
			Value []struct {
				Name    string `json:"name"`
				URL     string `json:"url"`
				Snippet string `json:"snippet"`
			} `json:"value"`
		} `json:"webPages"`
	}
	if err := getJSON(ctx, b.client, "https://api.bing.microsoft.com/v7.0/search?"+q.Encode(), headers, &parsed); err != nil {
		return nil, fmt.Errorf("bing search: %w", err)
	}

	hits := make([]crawler.Discovery, 0, len(parsed.WebPages.Value))
	for _, v := range parsed.WebPages.Value {
		hits = append(hits, crawler.Discovery{Title: v.Name, URL: v.URL, Snippet: v.Snippet})
	}
	return hits, nil
}

// serpAPIProvider calls SerpAPI's Google engine.
type serpAPIProvider struct {
	key    string
	client *http.Client
}

func (s *serpAPIProvider) Name() string { return "serpapi" }

func (s *serpAPIProvider) Search(ctx context.Context, query string, max int) ([]crawler.Discovery, error) {
	q := url.Values{}
	q.Set("api_key", s.key)
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("num", fmt.Sprint(max))
	q.Set("gl", "in")

	var parsed struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := getJSON(ctx, s.client, "https://serpapi.com/search.json?"+q.Encode(), nil, &parsed); err != nil {
		return nil, fmt.Errorf("serpapi search: %w", err)
	}

	hits := make([]crawler.Discovery, 0, len(parsed.OrganicResults))
	for _, r := range parsed.OrganicResults {
		hits = append(hits, crawler.Discovery{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}
	if len(hits) > max {
		hits = hits[:max]
	}
	return hits, nil
}

// getJSON performs one GET and decodes the JSON body into out.
func getJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
