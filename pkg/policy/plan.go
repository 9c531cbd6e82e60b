package policy

import (
	"time"

	"dslabs/dssearch/pkg/crawler"
	"dslabs/dssearch/pkg/querygen"
	"dslabs/dssearch/pkg/trust"
)

const (
	defaultMaxPages = 5
	defaultTimeout  = 10 * time.Second

	// Result pages are scattered across slow government mirrors, so result
	// queries get a wider page budget and a longer deadline.
	resultMaxPages = 10
	resultTimeout  = 15 * time.Second
)

// queryTypeForIntent maps a detected intent to the query-type key the trust
// registry partitions its category whitelists by.
func queryTypeForIntent(intent Intent) querygen.QueryType {
	switch intent {
	case IntentJobQuery:
		return querygen.TypeJob
	case IntentSchemeQuery:
		return querygen.TypeScheme
	case IntentResultQuery:
		return querygen.TypeResult
	case IntentDateQuery:
		return querygen.TypeJob
	default:
		return querygen.TypeGeneral
	}
}

// ChoosePlan builds the crawl plan for a green-lit request: the preferred
// domains for the intent's query type, the page budget, and the per-request
// timeout. A URL-fetch intent short-circuits to the pasted URL with a
// single-page budget.
func ChoosePlan(intent Intent, query string, reg *trust.Registry) crawler.Plan {
	if intent == IntentUrlFetch {
		return crawler.Plan{
			SpecificURL: ExtractURL(query),
			MaxPages:    1,
			Timeout:     defaultTimeout,
		}
	}

	plan := crawler.Plan{
		MaxPages: defaultMaxPages,
		Timeout:  defaultTimeout,
	}
	if intent == IntentResultQuery {
		plan.MaxPages = resultMaxPages
		plan.Timeout = resultTimeout
	}
	if reg != nil {
		plan.Domains = reg.DomainsForQueryType(string(queryTypeForIntent(intent)))
	}
	return plan
}
