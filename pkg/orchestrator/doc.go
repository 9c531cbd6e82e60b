// Package orchestrator wires the full answer pipeline: policy gating,
// the three-tier cache, query generation, crawling, the optional paid API
// fallback, ranking, and fact extraction. One Ask call runs the whole
// chain and returns a Response that always explains what happened, in the
// caller's language.
//
// Every request is appended to a bounded in-memory search log, optionally
// mirrored to sqlite, for the admin surfaces.
package orchestrator
