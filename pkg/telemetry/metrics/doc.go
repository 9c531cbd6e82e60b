// Package metrics provides Prometheus metrics for the DS-Search core.
//
// The Collector registers counters and histograms for search outcomes,
// cache tier hits and misses, crawler fetches, rate-limit rejections, and
// paid API quota. The underlying prometheus.Registry is exposed so callers
// can mount it behind promhttp if they run an HTTP surface.
package metrics
