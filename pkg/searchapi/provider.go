package searchapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/crawler"
)

// Provider is one upstream search API.
type Provider interface {
	// Name identifies the upstream ("google", "bing", "serpapi").
	Name() string

	// Search runs one query and returns up to max hits.
	Search(ctx context.Context, query string, max int) ([]crawler.Discovery, error)
}

// NewProvider builds the configured upstream adapter.
func NewProvider(cfg config.PaidAPIConfig) (Provider, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	switch cfg.Provider {
	case "google":
		return &googleProvider{key: cfg.Key, engineID: cfg.EngineID, client: client}, nil
	case "bing":
		return &bingProvider{key: cfg.Key, client: client}, nil
	case "serpapi":
		return &serpAPIProvider{key: cfg.Key, client: client}, nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown search API provider %q", cfg.Provider)
	}
}
