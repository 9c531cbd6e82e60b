// Package cache implements the three-tier search result cache.
//
// Entries are keyed by md5(lowercase(trim(query))) and flow through three
// tiers:
//
//  1. memory — an LRU map capped at a configurable entry count
//  2. file   — one JSON file per entry, sharded by the first two hex
//     characters of the hash
//  3. store  — an optional sqlite collection for durability
//
// Lookups try the tiers in order and promote hits upward: a file hit is
// copied into memory, a store hit into both memory and file. Expired
// entries are treated as misses at read time regardless of which tier holds
// them. Writes go to every available tier.
//
// Caching is best-effort: file and store I/O failures are logged and
// treated as a miss or a successful no-op, never as a request failure.
package cache
