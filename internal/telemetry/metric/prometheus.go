package metric

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nullmap"

// Operation outcomes.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Registry holds all nullmap metrics.
// It satisfies nullmap.Observer.
type Registry struct {
	registry *prometheus.Registry

	OperationsTotal   *prometheus.CounterVec
	OperationErrors   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with operation metrics and the Go and
// process collectors registered on a private prometheus.Registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total map operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		OperationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Total map operations rejected by the backing map.",
		}, []string{"op"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Map operation latency in seconds.",
			Buckets:   []float64{.0000005, .000001, .0000025, .000005, .00001, .000025, .00005, .0001, .001, .01},
		}, []string{"op"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.OperationsTotal,
		r.OperationErrors,
		r.OperationDuration,
	)
	return r
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry, creating it on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// ObserveOp records one completed map operation.
func (r *Registry) ObserveOp(op string, hit bool, err error, elapsed time.Duration) {
	outcome := OutcomeMiss
	switch {
	case err != nil:
		outcome = OutcomeError
		r.OperationErrors.WithLabelValues(op).Inc()
	case hit:
		outcome = OutcomeHit
	}
	r.OperationsTotal.WithLabelValues(op, outcome).Inc()
	r.OperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// Register adds c to the registry.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// Gatherer returns the underlying gatherer, for tests and custom exposition.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}

// Handler returns an HTTP handler for the /metrics endpoint of the global registry.
func Handler() http.Handler {
	return Global().Handler()
}
