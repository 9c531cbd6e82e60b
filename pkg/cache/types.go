package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"dslabs/dssearch/pkg/crawler"
)

// ResultSource identifies where a cached result set originally came from.
type ResultSource string

const (
	// SourceCache marks entries served from the cache itself.
	SourceCache ResultSource = "cache"
	// SourceCrawler marks entries produced by the web crawler.
	SourceCrawler ResultSource = "crawler"
	// SourceAPI marks entries produced by a paid search API.
	SourceAPI ResultSource = "api"
)

// Entry is one cached result set.
type Entry struct {
	// QueryHash is md5(lowercase(trim(query))), hex-encoded.
	QueryHash string `json:"query_hash"`

	// Query is the original normalised query text.
	Query string `json:"query"`

	// Results is the cached result set.
	Results []crawler.RawResult `json:"results"`

	// CreatedAt is when the entry was written.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the entry stops being served. Always after
	// CreatedAt.
	ExpiresAt time.Time `json:"expires_at"`

	// HitCount counts lookups that returned this entry.
	HitCount int `json:"hit_count"`

	// Source records which backend produced the results.
	Source ResultSource `json:"source"`
}

// Expired reports whether the entry is past its TTL at the given time.
func (e *Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Key returns the cache key for a query: md5 of the lowercased, trimmed
// query text, hex-encoded.
func Key(query string) string {
	normalised := strings.ToLower(strings.TrimSpace(query))
	sum := md5.Sum([]byte(normalised))
	return hex.EncodeToString(sum[:])
}

// Status reports per-tier entry counts for the admin surface.
type Status struct {
	MemoryEntries int   `json:"memory_entries"`
	FileEntries   int   `json:"file_entries"`
	StoreEntries  int   `json:"store_entries"`
	StoreAttached bool  `json:"store_attached"`
	FileBytes     int64 `json:"file_bytes"`
}
