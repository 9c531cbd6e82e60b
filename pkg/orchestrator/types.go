package orchestrator

import (
	"time"

	"dslabs/dssearch/pkg/facts"
	"dslabs/dssearch/pkg/policy"
	"dslabs/dssearch/pkg/ranker"
)

// Action summarises how a request was handled.
type Action string

const (
	ActionCached      Action = "answered_from_cache"
	ActionSearched    Action = "searched"
	ActionDeclined    Action = "declined"
	ActionRateLimited Action = "rate_limited"
	ActionBlocked     Action = "blocked"
)

// AskRequest is one user question.
type AskRequest struct {
	// Query is the raw user utterance, Hindi, English, or mixed.
	Query string

	// UserID is the opaque user identity; empty for anonymous requests.
	UserID string

	// Lang selects the language of the Reason message: "hi" or "en".
	// Default "en".
	Lang string
}

// Response is the outcome of one Ask or FetchURL call.
type Response struct {
	// RequestID uniquely identifies this request in the search log.
	RequestID string `json:"request_id"`

	// Query echoes the asked query.
	Query string `json:"query"`

	// Intent is the detected intent.
	Intent policy.Intent `json:"intent"`

	// Score is the policy search score.
	Score float64 `json:"score"`

	// Action summarises how the request was handled.
	Action Action `json:"action"`

	// Success reports whether the request produced usable results. Declined,
	// blocked, and empty-handed requests carry Success false with the Reason
	// explaining why.
	Success bool `json:"success"`

	// Source is where the results came from: "cache", "crawler", "api",
	// or "none".
	Source string `json:"source"`

	// Cached reports whether the results were served from cache.
	Cached bool `json:"cached"`

	// Results are the ranked results, best first. Empty when no search
	// ran or nothing scored above the floor.
	Results []ranker.RankedResult `json:"results,omitempty"`

	// Facts is the structured extraction, present when it passed the
	// validity bar.
	Facts *facts.Facts `json:"facts,omitempty"`

	// Reason is a user-facing explanation in the requested language.
	Reason string `json:"reason"`

	// Duration is the total handling time.
	Duration time.Duration `json:"duration"`
}
