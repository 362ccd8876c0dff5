package task

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// registerer is the subset of prometheus.Registerer the registry needs.
// Kept as a local interface so tests can pass a throwaway registry.
type registerer = prometheus.Registerer

// registryMetrics holds the prometheus instruments for the task registry.
type registryMetrics struct {
	created   prometheus.Counter
	succeeded prometheus.Counter
	failed    *prometheus.CounterVec
	inFlight  prometheus.Gauge
}

// newRegistryMetrics creates and registers the registry's instruments.
// A nil registerer yields a private registry, effectively disabling export.
func newRegistryMetrics(reg registerer) *registryMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &registryMetrics{
		created: factory.NewCounter(prometheus.CounterOpts{
			Name: "vocabforge_tasks_created_total",
			Help: "Number of generation tasks created.",
		}),
		succeeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "vocabforge_tasks_succeeded_total",
			Help: "Number of generation tasks that completed successfully.",
		}),
		failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vocabforge_tasks_failed_total",
			Help: "Number of generation tasks that failed, by error category.",
		}, []string{"category"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vocabforge_tasks_in_flight",
			Help: "Number of tasks currently tracked in a non-terminal state.",
		}),
	}
}
