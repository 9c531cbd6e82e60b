package ranker

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	yearPattern    = regexp.MustCompile(`\b(20[0-9]{2})\b`)
	recencyPattern = regexp.MustCompile(`\b(latest|new|recent)\b|नया|ताजा|नई`)
	tokenPattern   = regexp.MustCompile(`[a-z0-9]+|[\p{Devanagari}]+`)
)

// stopTokens are excluded from keyword matching.
var stopTokens = map[string]bool{
	"the": true, "for": true, "and": true, "hai": true, "kya": true,
	"kab": true, "ka": true, "ki": true, "ke": true, "in": true, "of": true,
}

// tokenize lowercases and splits a query into matchable keywords.
func tokenize(s string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(s), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if !stopTokens[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// importantKeywords are the action words whose presence in the page text
// earns a flat relevance bonus each, with Hindi pairs.
var importantKeywords = []string{
	"official", "notification", "apply", "download", "result", "admit",
	"last date", "deadline",
	"आधिकारिक", "अधिसूचना", "आवेदन", "डाउनलोड", "परिणाम", "प्रवेश", "अंतिम तिथि",
}

// relevance scores how well the page text answers the query. Full-phrase
// presence, keyword coverage, important-keyword hits, title coverage, and
// having a substantive snippet each contribute; the sum clamps to [0,1].
func relevance(query string, title, snippet, content string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	keywords := tokenize(q)
	if len(keywords) == 0 {
		return 0
	}

	haystack := strings.ToLower(title + " " + snippet + " " + content)
	titleLower := strings.ToLower(title)

	score := 0.0
	if strings.Contains(haystack, q) {
		score += 0.30
	}

	var matched, titleHits int
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			matched++
		}
		if strings.Contains(titleLower, kw) {
			titleHits++
		}
	}
	importantHits := 0
	for _, w := range importantKeywords {
		if strings.Contains(haystack, w) {
			importantHits++
		}
	}

	score += 0.40 * float64(matched) / float64(len(keywords))
	score += 0.05 * float64(importantHits)
	score += 0.20 * float64(titleHits) / float64(len(keywords))
	if len(snippet) > 100 {
		score += 0.05
	}
	return clamp(score)
}

// titleMatch is the fraction of query keywords present in the title.
func titleMatch(query, title string) float64 {
	keywords := tokenize(query)
	if len(keywords) == 0 || title == "" {
		return 0
	}
	titleLower := strings.ToLower(title)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(titleLower, kw) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// freshness estimates how current the page is from the years it mentions.
// The base starts at 0.5 and the most recent mentioned year can only raise
// it (this year 0.9, last year 0.7); recency wording adds 0.2, clamped to
// [0,1].
func freshness(title, content string, now time.Time) float64 {
	text := title + " " + content
	base := 0.5

	if years := yearPattern.FindAllString(text, -1); len(years) > 0 {
		best := 0
		for _, y := range years {
			if n, err := strconv.Atoi(y); err == nil && n > best && n <= now.Year()+1 {
				best = n
			}
		}
		switch {
		case best >= now.Year():
			base = 0.9
		case best == now.Year()-1:
			base = 0.7
		}
	}

	if recencyPattern.MatchString(strings.ToLower(text)) {
		base += 0.2
	}
	return clamp(base)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
