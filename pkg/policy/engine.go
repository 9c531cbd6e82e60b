package policy

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/querygen"
)

// cuePattern recognises wording that signals the user wants fresh external
// information: recency words, an explicit year, deadline and outcome terms,
// and application-seeking terms, in English and Hindi.
var cuePattern = regexp.MustCompile(`\b(latest|new|naya|nayi|taza|taaza|recent|year|20[2-9]\d|last\s+date|result|results|notification|apply|eligibility|patrata|admit\s+card|download|vacancy|vacancies)\b|नया|ताजा|परिणाम`)

// interrogativePattern recognises direct information-seeking questions.
var interrogativePattern = regexp.MustCompile(`\b(what|when|how|which|where|link|kab|kya|kaise|kahan|kaun)\b`)

// searchableIntents are the topical intents that earn the intent bonus.
var searchableIntents = map[Intent]bool{
	IntentJobQuery:    true,
	IntentSchemeQuery: true,
	IntentResultQuery: true,
	IntentDateQuery:   true,
}

// Engine evaluates queries against the gating policy. Safe for concurrent
// use; all mutable state lives behind the rate limiter's lock.
type Engine struct {
	cfg          config.PolicyConfig
	rules        []intentRule
	limiter      *RateLimiter
	apiAvailable bool
	log          *slog.Logger
}

// NewEngine builds a policy engine from validated configuration.
func NewEngine(cfg config.PolicyConfig, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		cfg:     cfg,
		rules:   compileIntentRules(),
		limiter: NewRateLimiter(cfg.MaxSearchesPerUserPerDay, cfg.MaxSearchesPerMinute),
		log:     log,
	}
}

// SetAPIAvailable tells the engine whether the paid API tier may appear in
// decisions. Called once at wiring time.
func (e *Engine) SetAPIAvailable(available bool) {
	e.apiAvailable = available
}

// Score computes the additive search score for a query in [0,1]. The score
// expresses how likely external retrieval is to improve the answer: chatty
// intents push it toward zero, recency cues and thin internal coverage push
// it up.
func (e *Engine) Score(query string, intent Intent, internalHits int) float64 {
	if intent == IntentBlocked {
		return 0
	}

	q := strings.ToLower(query)
	score := 0.0

	switch intent {
	case IntentGreeting:
		score -= 0.40
	case IntentSmallTalk:
		score -= 0.35
	case IntentPersonalStatus:
		score -= 0.30
	}

	if cuePattern.MatchString(q) {
		score += 0.30
	}
	if interrogativePattern.MatchString(q) {
		score += 0.25
	}
	if internalHits == 0 {
		score += 0.20
	}
	if internalHits < 3 {
		score += 0.10
	}
	if urlPattern.MatchString(q) {
		score += 0.10
	}
	if searchableIntents[intent] {
		score += 0.15
	}
	if intent == IntentUrlFetch {
		score += 0.30
	}
	if querygen.ExtractEntities(query).State != "" {
		score += 0.05
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// Evaluate runs the full gate for one request: intent detection, scoring,
// threshold comparison, and the per-user rate limits. Rate limits are only
// consulted for requests that would otherwise search; counters are not
// incremented here (see RecordSearch).
func (e *Engine) Evaluate(in EvalInput) Decision {
	intent := e.DetectIntent(in.Query)
	score := e.Score(in.Query, intent, in.InternalHits)

	d := Decision{
		Score:      score,
		Intent:     intent,
		SearchTier: TierNone,
	}

	switch intent {
	case IntentBlocked:
		d.Reason = "query matches blocked content rules"
		return d
	case IntentGreeting, IntentSmallTalk:
		d.Reason = "conversational query, answered locally"
		return d
	case IntentPersonalStatus:
		d.Reason = "personal application status is not externally searchable"
		return d
	}

	if score < e.cfg.SearchScoreThreshold {
		d.SearchTier = TierInternalOnly
		d.Reason = fmt.Sprintf("score %.2f below threshold %.2f", score, e.cfg.SearchScoreThreshold)
		return d
	}

	if ok, why := e.limiter.Allow(in.UserID); !ok {
		d.SearchTier = TierInternalOnly
		d.RateLimited = true
		d.Reason = why
		e.log.Warn("search rate limited", "user", in.UserID, "reason", why)
		return d
	}

	d.ShouldSearch = true
	d.SearchTier = TierCrawler
	if e.apiAvailable {
		d.SearchTier = TierAPI
	}
	d.Reason = fmt.Sprintf("score %.2f meets threshold %.2f", score, e.cfg.SearchScoreThreshold)
	return d
}

// RecordSearch charges one external retrieval to the user's windows. The
// orchestrator calls this only after the crawl or API call actually ran and
// returned usable results, so cache hits and failed attempts stay free.
func (e *Engine) RecordSearch(userID string) {
	e.limiter.Record(userID)
}

// Usage exposes the user's current window counts for status surfaces.
func (e *Engine) Usage(userID string) (day, minute int64) {
	return e.limiter.Usage(userID)
}
