// Package policy decides whether a query warrants external retrieval.
//
// The engine detects the user's intent from ordered pattern rules, computes
// an additive search score clamped to [0,1], and enforces per-user rate
// limits over sliding 24-hour and 60-second windows. A green-lit decision
// carries a crawl plan: the preferred-domain whitelist for the intent's
// query type, a page budget, and a timeout.
//
// Intent rules are ordered and the first match wins; the catalogue is
// compiled once at engine construction.
package policy
