package ranker

import (
	"sort"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/crawler"
	"dslabs/dssearch/pkg/trust"
)

// RankedResult is a crawled page with its ranking breakdown.
type RankedResult struct {
	crawler.RawResult

	// Score is the weighted fusion of the four signals, in [0,1].
	Score float64 `json:"score"`

	// Relevance, Trust, Freshness, and TitleMatch are the individual
	// signal values, kept for debugging and explainability.
	Relevance  float64 `json:"relevance"`
	Trust      float64 `json:"trust"`
	Freshness  float64 `json:"freshness"`
	TitleMatch float64 `json:"title_match"`
}

// Ranker scores and orders crawl results. Safe for concurrent use.
type Ranker struct {
	cfg      config.RankerConfig
	registry *trust.Registry
}

// New creates a ranker. The registry supplies per-domain trust priorities;
// nil degrades the trust signal to zero.
func New(cfg config.RankerConfig, registry *trust.Registry) *Ranker {
	return &Ranker{cfg: cfg, registry: registry}
}

// Rank scores the successful results against the query, drops everything
// below the minimum score, and returns at most MaxResults in descending
// score order. Ties break on trust, then freshness; the sort is stable so
// crawl order decides beyond that.
func (r *Ranker) Rank(query string, results []crawler.RawResult) []RankedResult {
	ranked := make([]RankedResult, 0, len(results))
	now := time.Now()

	for _, res := range results {
		if !res.Success {
			continue
		}
		rr := RankedResult{RawResult: res}
		rr.Relevance = relevance(query, res.Title, res.Snippet, res.Content)
		rr.Trust = r.trustSignal(res.Domain)
		rr.Freshness = freshness(res.Title, res.Content, now)
		rr.TitleMatch = titleMatch(query, res.Title)

		rr.Score = r.cfg.RelevanceWeight*rr.Relevance +
			r.cfg.TrustWeight*rr.Trust +
			r.cfg.FreshnessWeight*rr.Freshness +
			r.cfg.TitleMatchWeight*rr.TitleMatch

		if rr.Score < r.cfg.MinResultScore {
			continue
		}
		ranked = append(ranked, rr)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Trust != ranked[j].Trust {
			return ranked[i].Trust > ranked[j].Trust
		}
		return ranked[i].Freshness > ranked[j].Freshness
	})

	if max := r.cfg.MaxResults; max > 0 && len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

// trustSignal maps the domain's registry priority (1..10) into [0,1].
func (r *Ranker) trustSignal(domain string) float64 {
	if r.registry == nil {
		return 0
	}
	return clamp(float64(r.registry.GetPriority(domain)) / 10.0)
}
