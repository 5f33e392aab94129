package metric

import "github.com/prometheus/client_golang/prometheus"

// SizeFunc reports the number of entries and the number of entries whose
// value is nil.
type SizeFunc func() (entries, nulls int)

// Collector reports map occupancy at scrape time.
type Collector struct {
	size SizeFunc

	entriesDesc *prometheus.Desc
	nullsDesc   *prometheus.Desc
}

// NewCollector creates a collector that calls size on every scrape.
// Labels are attached as constant labels to both gauges.
func NewCollector(size SizeFunc, labels prometheus.Labels) *Collector {
	return &Collector{
		size: size,
		entriesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "entries"),
			"Current number of map entries.",
			nil, labels,
		),
		nullsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "null_entries"),
			"Current number of map entries holding a nil value.",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entriesDesc
	ch <- c.nullsDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	entries, nulls := c.size()
	ch <- prometheus.MustNewConstMetric(c.entriesDesc, prometheus.GaugeValue, float64(entries))
	ch <- prometheus.MustNewConstMetric(c.nullsDesc, prometheus.GaugeValue, float64(nulls))
}
