package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"dslabs/dssearch/pkg/config"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "test"}, prometheus.NewRegistry())
}

func TestRecordSearch(t *testing.T) {
	c := newTestCollector(t)

	c.RecordSearch("job_query", "crawler", 120*time.Millisecond)
	c.RecordSearch("job_query", "crawler", 80*time.Millisecond)
	c.RecordSearch("greeting", "none", time.Millisecond)

	got := testutil.ToFloat64(c.searchesTotal.WithLabelValues("job_query", "crawler"))
	if got != 2 {
		t.Errorf("searches_total{job_query,crawler} = %v, want 2", got)
	}
	got = testutil.ToFloat64(c.searchesTotal.WithLabelValues("greeting", "none"))
	if got != 1 {
		t.Errorf("searches_total{greeting,none} = %v, want 1", got)
	}
}

func TestRecordCacheTiers(t *testing.T) {
	c := newTestCollector(t)

	c.RecordCacheHit("memory")
	c.RecordCacheHit("file")
	c.RecordCacheHit("memory")
	c.RecordCacheMiss()
	c.RecordCacheWrite()

	if got := testutil.ToFloat64(c.cacheHits.WithLabelValues("memory")); got != 2 {
		t.Errorf("cache_hits_total{memory} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.cacheMisses); got != 1 {
		t.Errorf("cache_misses_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.cacheWrites); got != 1 {
		t.Errorf("cache_writes_total = %v, want 1", got)
	}
}

func TestRecordAPICallSetsQuotaGauge(t *testing.T) {
	c := newTestCollector(t)

	c.RecordAPICall(99)
	c.RecordAPICall(98)

	if got := testutil.ToFloat64(c.apiCalls); got != 2 {
		t.Errorf("paid_api_calls_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.quotaRemaining); got != 98 {
		t.Errorf("paid_api_quota_remaining = %v, want 98", got)
	}
}

func TestDisabledCollectorIsNoop(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(&config.MetricsConfig{Enabled: false, Namespace: "test"}, reg)

	// None of these should panic or register anything.
	c.RecordSearch("x", "y", time.Second)
	c.RecordCacheHit("memory")
	c.RecordRateLimited()
	c.RecordBlocked()

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 0 {
		t.Errorf("disabled collector registered %d metric families, want 0", len(families))
	}
}
