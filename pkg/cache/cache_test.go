package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"dslabs/dssearch/pkg/config"
	"dslabs/dssearch/pkg/crawler"
)

func testConfig(t *testing.T) *config.CacheConfig {
	t.Helper()
	return &config.CacheConfig{
		Dir:             t.TempDir(),
		DefaultTTLHours: 6,
		MemoryMax:       500,
	}
}

func sampleResults() []crawler.RawResult {
	return []crawler.RawResult{
		{
			URL:     "https://ssc.nic.in/notice",
			Title:   "SSC CGL 2026 Notification",
			Snippet: "Applications are invited for Combined Graduate Level 2026.",
			Content: "The Staff Selection Commission invites applications...",
			Domain:  "ssc.nic.in",
			Success: true,
			Links:   []string{"https://ssc.nic.in/apply"},
		},
	}
}

func TestKey(t *testing.T) {
	// Key normalises by trimming and lowercasing before hashing.
	if Key("  SSC CGL  ") != Key("ssc cgl") {
		t.Error("Key() not normalising case/whitespace")
	}
	if Key("ssc cgl") == Key("ssc chsl") {
		t.Error("distinct queries collided")
	}
	if len(Key("x")) != 32 {
		t.Errorf("Key() length = %d, want 32 hex chars", len(Key("x")))
	}
}

func TestPutThenGet(t *testing.T) {
	c := New(testConfig(t))
	defer c.Close()

	want := sampleResults()
	c.Put("pm kisan yojana eligibility", want, 0, SourceCrawler)

	entry := c.Get("pm kisan yojana eligibility")
	if entry == nil {
		t.Fatal("Get() returned nil after Put()")
	}
	if !reflect.DeepEqual(entry.Results, want) {
		t.Errorf("results mismatch:\ngot  %+v\nwant %+v", entry.Results, want)
	}
	if entry.Source != SourceCrawler {
		t.Errorf("source = %q, want crawler", entry.Source)
	}
	if !entry.ExpiresAt.After(entry.CreatedAt) {
		t.Error("ExpiresAt not after CreatedAt")
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := New(testConfig(t))
	defer c.Close()

	c.Put("stale query", sampleResults(), time.Millisecond, SourceCrawler)
	time.Sleep(5 * time.Millisecond)

	if entry := c.Get("stale query"); entry != nil {
		t.Errorf("Get() returned expired entry: %+v", entry)
	}
}

func TestFileTierPromotion(t *testing.T) {
	cfg := testConfig(t)
	c := New(cfg)
	defer c.Close()

	c.Put("bihar police result", sampleResults(), time.Hour, SourceCrawler)

	// Drop the memory tier; the file tier should backfill it on lookup.
	c.memory.clear()
	if entry := c.Get("bihar police result"); entry == nil {
		t.Fatal("file tier lookup failed")
	}
	if c.memory.len() != 1 {
		t.Errorf("memory tier entries after promotion = %d, want 1", c.memory.len())
	}
}

func TestStoreTierPromotion(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorePath = filepath.Join(t.TempDir(), "cache.db")
	c := New(cfg)
	defer c.Close()

	c.Put("upsc cse 2026", sampleResults(), time.Hour, SourceCrawler)

	// Wipe memory and file tiers; only the store has the entry now.
	c.memory.clear()
	if err := c.file.clear(); err != nil {
		t.Fatal(err)
	}

	entry := c.Get("upsc cse 2026")
	if entry == nil {
		t.Fatal("store tier lookup failed")
	}
	// Promotion reaches both upper tiers.
	if c.memory.len() != 1 {
		t.Error("store hit not promoted to memory")
	}
	if n, _ := c.file.stats(); n != 1 {
		t.Error("store hit not promoted to file tier")
	}
}

func TestFileLayoutSharding(t *testing.T) {
	cfg := testConfig(t)
	c := New(cfg)
	defer c.Close()

	c.Put("sharded entry", sampleResults(), time.Hour, SourceCrawler)

	hash := Key("sharded entry")
	want := filepath.Join(cfg.Dir, hash[:2], hash+".json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("entry file not at sharded path %s: %v", want, err)
	}
}

func TestInvalidate(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorePath = filepath.Join(t.TempDir(), "cache.db")
	c := New(cfg)
	defer c.Close()

	c.Put("doomed", sampleResults(), time.Hour, SourceCrawler)
	c.Invalidate("doomed")

	if c.Get("doomed") != nil {
		t.Error("entry survived Invalidate()")
	}
	st := c.Status()
	if st.MemoryEntries != 0 || st.FileEntries != 0 || st.StoreEntries != 0 {
		t.Errorf("tiers not empty after invalidate: %+v", st)
	}
}

func TestCleanupExpired(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorePath = filepath.Join(t.TempDir(), "cache.db")
	c := New(cfg)
	defer c.Close()

	c.Put("fresh", sampleResults(), time.Hour, SourceCrawler)
	c.Put("expired-1", sampleResults(), time.Millisecond, SourceCrawler)
	c.Put("expired-2", sampleResults(), time.Millisecond, SourceAPI)
	time.Sleep(5 * time.Millisecond)

	removed := c.CleanupExpired()
	// Each expired entry is counted once per tier that held it.
	if removed < 2 {
		t.Errorf("CleanupExpired() removed %d, want >= 2", removed)
	}
	if c.Get("fresh") == nil {
		t.Error("fresh entry removed by cleanup")
	}
	if c.Get("expired-1") != nil || c.Get("expired-2") != nil {
		t.Error("expired entries survived cleanup")
	}
}

func TestMemoryLRUEviction(t *testing.T) {
	cfg := testConfig(t)
	cfg.MemoryMax = 3
	c := New(cfg)
	defer c.Close()

	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("query-%d", i), sampleResults(), time.Hour, SourceCrawler)
	}
	// Touch query-0 so query-1 becomes the LRU candidate.
	if c.Get("query-0") == nil {
		t.Fatal("query-0 missing")
	}

	c.Put("query-3", sampleResults(), time.Hour, SourceCrawler)

	if c.memory.get(Key("query-1"), time.Now()) != nil {
		t.Error("LRU entry query-1 not evicted")
	}
	for _, q := range []string{"query-0", "query-2", "query-3"} {
		if c.memory.get(Key(q), time.Now()) == nil {
			t.Errorf("%s wrongly evicted", q)
		}
	}
}

func TestFileTierRoundTripFidelity(t *testing.T) {
	c := New(testConfig(t))
	defer c.Close()

	want := sampleResults()
	want[0].Metadata = map[string]string{"description": "official notice", "status": "200"}
	c.Put("fidelity", want, time.Hour, SourceCrawler)
	c.memory.clear()

	entry := c.Get("fidelity")
	if entry == nil {
		t.Fatal("file tier miss")
	}
	got := entry.Results
	if !reflect.DeepEqual(got[0].Metadata, want[0].Metadata) {
		t.Errorf("metadata not preserved: %+v", got[0].Metadata)
	}
	if got[0].URL != want[0].URL || got[0].Content != want[0].Content {
		t.Error("persisted fields differ after round trip")
	}
}

func TestCacheSurvivesMissingDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dir = filepath.Join(cfg.Dir, "does", "not", "exist", "yet")
	c := New(cfg)
	defer c.Close()

	// Put creates shard directories on demand; Get on a cold cache is a
	// plain miss, not an error.
	if c.Get("anything") != nil {
		t.Error("cold cache returned an entry")
	}
	c.Put("anything", sampleResults(), time.Hour, SourceCrawler)
	if c.Get("anything") == nil {
		t.Error("write-after-mkdir failed")
	}
}
