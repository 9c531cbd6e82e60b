// Package searchapi is the optional paid-search fallback. It is consulted
// only when the free crawler chain returns nothing, is disabled by default,
// and enforces a daily call quota so a misconfigured loop cannot burn
// through a billing budget overnight.
//
// Three upstreams are supported: Google Custom Search, Bing Web Search,
// and SerpAPI. All reduce to the same minimal result shape the crawler's
// discovery backend produces.
package searchapi
