package ranker

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/crawler"
	"dslabs/dssearch/pkg/trust"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rankerConfig() config.RankerConfig {
	return config.RankerConfig{
		RelevanceWeight:  0.40,
		TrustWeight:      0.35,
		FreshnessWeight:  0.15,
		TitleMatchWeight: 0.10,
		MinResultScore:   0.40,
		MaxResults:       5,
	}
}

func page(domain, title, content string) crawler.RawResult {
	return crawler.RawResult{
		URL:     "https://" + domain + "/page",
		Domain:  domain,
		Title:   title,
		Snippet: content,
		Content: content,
		Success: true,
	}
}

func TestRankOfficialBeatsAggregator(t *testing.T) {
	reg := trust.NewRegistry()
	r := New(rankerConfig(), reg)
	year := time.Now().Year()

	query := "ssc cgl result"
	results := []crawler.RawResult{
		page("sarkariresult.com", fmt.Sprintf("SSC CGL Result %d sarkari result live check now", year),
			fmt.Sprintf("ssc cgl result %d declared check roll number sarkari result fast update", year)),
		page("ssc.nic.in", fmt.Sprintf("SSC CGL Result %d", year),
			fmt.Sprintf("ssc cgl result %d tier 1 marks and final result published", year)),
	}

	ranked := r.Rank(query, results)
	if len(ranked) != 2 {
		t.Fatalf("got %d results, want 2", len(ranked))
	}
	if ranked[0].Domain != "ssc.nic.in" {
		t.Errorf("top result is %s, want the official portal (scores %.2f vs %.2f)",
			ranked[0].Domain, ranked[0].Score, ranked[1].Score)
	}
	if ranked[0].Trust <= ranked[1].Trust {
		t.Errorf("official trust %.2f not above aggregator %.2f", ranked[0].Trust, ranked[1].Trust)
	}
}

func TestRankDropsFailuresAndLowScores(t *testing.T) {
	r := New(rankerConfig(), trust.NewRegistry())

	failed := page("ssc.nic.in", "SSC CGL", "ssc cgl result")
	failed.Success = false
	offTopic := page("unrelated.gov.in", "Forest Department Tenders", "tender notice for timber auction")

	ranked := r.Rank("ssc cgl result 2026", []crawler.RawResult{failed, offTopic})
	if len(ranked) != 0 {
		t.Errorf("got %d results, want 0 (one failed, one off-topic): %+v", len(ranked), ranked)
	}
}

func TestRankCapsResults(t *testing.T) {
	reg := trust.NewRegistry()
	r := New(rankerConfig(), reg)
	year := time.Now().Year()

	var results []crawler.RawResult
	for i := 0; i < 8; i++ {
		results = append(results, page(fmt.Sprintf("dept%d.gov.in", i),
			fmt.Sprintf("SSC CGL Result %d", year),
			fmt.Sprintf("ssc cgl result %d declared", year)))
	}

	ranked := r.Rank("ssc cgl result", results)
	if len(ranked) != 5 {
		t.Errorf("got %d results, want MaxResults cap of 5", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("scores out of order at %d", i)
		}
	}
}

func TestRelevanceSignals(t *testing.T) {
	full := relevance("ssc cgl result", "SSC CGL Result 2026", "", "the ssc cgl result is out")
	partial := relevance("ssc cgl result", "Exam Updates", "", "cgl notification")
	if full <= partial {
		t.Errorf("full match %.2f not above partial %.2f", full, partial)
	}

	if got := relevance("", "t", "s", "c"); got != 0 {
		t.Errorf("empty query relevance = %.2f, want 0", got)
	}

	long := relevance("ssc cgl", "SSC CGL", strings.Repeat("x", 150), "ssc cgl details")
	short := relevance("ssc cgl", "SSC CGL", "x", "ssc cgl details")
	if long <= short {
		t.Errorf("substantive snippet bonus missing: %.2f vs %.2f", long, short)
	}
}

func TestRelevanceImportantKeywordList(t *testing.T) {
	// Generic query words earn nothing beyond coverage; only the fixed
	// action-word list adds the flat bonus.
	plain := relevance("bihar police vacancy", "Bihar Police Vacancy", "", "bihar police vacancy details")
	if !almost(plain, 0.90) {
		t.Errorf("plain relevance = %.4f, want 0.90 (0.30 phrase + 0.40 coverage + 0.20 title)", plain)
	}

	withAction := relevance("bihar police vacancy", "Bihar Police Vacancy", "", "bihar police vacancy notification details")
	if !almost(withAction-plain, 0.05) {
		t.Errorf("notification bonus = %.4f, want +0.05", withAction-plain)
	}
}

func TestRelevanceUsesSnippet(t *testing.T) {
	// Keywords present only in the snippet still count toward coverage.
	got := relevance("ssc cgl result", "Updates", "ssc cgl result 2026 declared", "")
	if !almost(got, 0.75) {
		t.Errorf("snippet-only relevance = %.4f, want 0.75 (0.30 phrase + 0.40 coverage + 0.05 result)", got)
	}
}

func TestFreshnessBuckets(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"current year", "result 2026 declared", 0.9},
		{"previous year", "result 2025 declared", 0.7},
		{"two years ago", "result 2024 declared", 0.5},
		{"ancient year stays at base", "result 2021 declared", 0.5},
		{"no year", "result declared", 0.5},
		{"highest year wins", "archives 2023 2024 and 2026 result", 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := freshness("", tt.content, now); !almost(got, tt.want) {
				t.Errorf("freshness = %.2f, want %.2f", got, tt.want)
			}
		})
	}

	// Recency wording adds 0.2, clamped at 1.
	if got := freshness("", "latest result 2026", now); !almost(got, 1.0) {
		t.Errorf("recency bonus: got %.2f, want 1.0 (0.9+0.2 clamped)", got)
	}
	if got := freshness("", "नया result 2025", now); !almost(got, 0.9) {
		t.Errorf("hindi recency bonus: got %.2f, want 0.9", got)
	}
}

func TestFreshnessNeverBelowBase(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, content := range []string{
		"recruitment drive of 2021 completed",
		"archive 2020 2021 2022",
		"notice from 2023",
	} {
		if got := freshness("notice", content, now); got < 0.5 {
			t.Errorf("freshness(%q) = %.2f, want >= 0.5", content, got)
		}
	}
}

func TestTitleMatch(t *testing.T) {
	if got := titleMatch("ssc cgl result", "SSC CGL Result 2026"); got != 1.0 {
		t.Errorf("full title match = %.2f, want 1.0", got)
	}
	if got := titleMatch("ssc cgl result", "SSC Portal"); got >= 0.5 {
		t.Errorf("partial title match = %.2f, want < 0.5", got)
	}
	if got := titleMatch("ssc", ""); got != 0 {
		t.Errorf("empty title match = %.2f, want 0", got)
	}
}

func TestTrustSignalWithoutRegistry(t *testing.T) {
	r := New(rankerConfig(), nil)
	if got := r.trustSignal("ssc.nic.in"); got != 0 {
		t.Errorf("trust without registry = %.2f, want 0", got)
	}
}
