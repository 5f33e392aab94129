// Package metric provides Prometheus metrics for nullmap.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, operation metrics and HTTP handler
//   - collector.go: scrape-time collector for map occupancy
//
// Metrics include:
//
//   - Operation counters by operation and outcome
//   - Operation latency histograms
//   - Error counters
//   - Entry and null-entry gauges
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
