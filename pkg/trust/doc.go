// Package trust maintains the registry of trusted and blocked domains used
// to gate crawling and weight result ranking.
//
// The registry is seeded from a built-in list of official Indian government
// portals and examination boards, optionally extended from a YAML seed file,
// and optionally persisted to a sqlite store. Domains under .gov.in and
// .nic.in are trusted automatically even when absent from the registry; a
// blocked domain always wins over any trusted entry.
//
// The registry is read-mostly. Admin mutations (AddSource, BlockDomain,
// UpdateCrawlStats) are serialised under a write lock and persisted when a
// store is attached.
package trust
