package policy

// Intent classifies the user's purpose.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentSmallTalk      Intent = "small_talk"
	IntentPersonalStatus Intent = "personal_status"
	IntentJobQuery       Intent = "job_query"
	IntentSchemeQuery    Intent = "scheme_query"
	IntentResultQuery    Intent = "result_query"
	IntentDateQuery      Intent = "date_query"
	IntentDocumentQuery  Intent = "document_query"
	IntentGeneralInfo    Intent = "general_info"
	IntentUrlFetch       Intent = "url_fetch"
	IntentBlocked        Intent = "blocked"
	IntentUnknown        Intent = "unknown"
)

// SearchTier selects how far down the source chain a request may go.
type SearchTier string

const (
	// TierNone permits no retrieval at all.
	TierNone SearchTier = "none"
	// TierInternalOnly permits only the internal index.
	TierInternalOnly SearchTier = "internal_only"
	// TierCrawler permits the free crawler chain.
	TierCrawler SearchTier = "crawler"
	// TierAPI additionally permits the paid search API.
	TierAPI SearchTier = "api"
)

// Decision is the outcome of policy evaluation for one request. Created
// per request, never persisted.
type Decision struct {
	// ShouldSearch reports whether external retrieval is permitted.
	ShouldSearch bool

	// Score is the computed search score in [0,1].
	Score float64

	// Intent is the detected intent.
	Intent Intent

	// SearchTier is how far down the source chain this request may go.
	SearchTier SearchTier

	// Reason explains the decision in plain prose.
	Reason string

	// RateLimited reports whether a per-user limit rejected the request.
	RateLimited bool
}

// EvalInput carries the signals the engine scores.
type EvalInput struct {
	// Query is the raw user utterance.
	Query string

	// UserID is the opaque user identity; empty for anonymous requests.
	UserID string

	// InternalHits is the number of matches the cheap internal index
	// returned for this query.
	InternalHits int
}
