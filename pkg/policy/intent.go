package policy

import (
	"regexp"
	"strings"
)

// intentRule is one ordered pattern group. The first rule whose pattern
// matches the normalised query decides the intent.
type intentRule struct {
	intent Intent
	re     *regexp.Regexp
}

// urlPattern recognises a URL anywhere in the query.
var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// fetchVerbPattern recognises an explicit fetch request accompanying a URL.
var fetchVerbPattern = regexp.MustCompile(`\b(open|fetch|check|dekho|kholo|padho|read|summarize|batao)\b`)

// compileIntentRules builds the ordered rule catalogue. Order is load-
// bearing: blocked content is rejected before anything else, greetings
// before status questions, and URL fetches before the topical intents so a
// pasted link is honoured even when the surrounding words mention jobs.
func compileIntentRules() []intentRule {
	return []intentRule{
		{IntentBlocked, regexp.MustCompile(`\b(gaali|abuse|porn|sex|nude|hack\s+account|betting|satta)\b`)},
		{IntentGreeting, regexp.MustCompile(`^\s*(hi+|hello+|hey+|namaste+|namaskar|pranam|good\s*(morning|evening|afternoon)|ram\s*ram)\s*[!.]*\s*$`)},
		{IntentSmallTalk, regexp.MustCompile(`^\s*(how\s+are\s+you|kaise\s+ho|kya\s+haal|thank\s*(s|you)|dhanyawad|shukriya|ok(ay)?|theek\s+hai)\s*[!.?]*\s*$`)},
		{IntentPersonalStatus, regexp.MustCompile(`\b(my|mera|meri)\s+(status|application|form|payment|account)\b|\bapplication\s+status\b`)},
		{IntentResultQuery, regexp.MustCompile(`\b(result|results|merit\s+list|scorecard|score\s+card|qualified|pass\s+hua)\b|परिणाम`)},
		{IntentJobQuery, regexp.MustCompile(`\b(job|jobs|naukri|vacancy|vacancies|bharti|recruitment|post|posts|sarkari)\b|नौकरी|भर्ती`)},
		{IntentSchemeQuery, regexp.MustCompile(`\b(yojana|yojna|scheme|pension|subsidy|kisan|awas|ayushman|ration)\b|योजना`)},
		{IntentDateQuery, regexp.MustCompile(`\b(last\s+date|exam\s+date|kab\s+(hai|tak)|deadline|date\s+sheet|schedule)\b`)},
		{IntentDocumentQuery, regexp.MustCompile(`\b(document|documents|certificate|aadhaar|aadhar|pan\s+card|marksheet|dastavej)\b`)},
	}
}

// DetectIntent classifies the query against the ordered rule set. A query
// containing a URL plus a fetch verb is a URL fetch; otherwise the first
// matching rule wins; otherwise queries of three or more tokens fall back
// to general info and shorter ones are unknown.
func (e *Engine) DetectIntent(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return IntentUnknown
	}

	// Blocked always wins, even over an embedded URL.
	if e.rules[0].re.MatchString(q) {
		return IntentBlocked
	}
	for _, rule := range e.rules[1:3] { // greeting, small talk
		if rule.re.MatchString(q) {
			return rule.intent
		}
	}
	if e.rules[3].re.MatchString(q) { // personal status
		return IntentPersonalStatus
	}
	if urlPattern.MatchString(q) && fetchVerbPattern.MatchString(q) {
		return IntentUrlFetch
	}
	for _, rule := range e.rules[4:] {
		if rule.re.MatchString(q) {
			return rule.intent
		}
	}

	if len(strings.Fields(q)) >= 3 {
		return IntentGeneralInfo
	}
	return IntentUnknown
}

// ExtractURL returns the first URL in the query, or empty.
func ExtractURL(query string) string {
	return urlPattern.FindString(query)
}
