package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// MaintenanceEvaluations counts resolver runs by resulting reason
	MaintenanceEvaluations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "site_maintenance",
		Name:      "evaluations_total",
		Help:      "Number of maintenance state evaluations by reason",
	}, []string{"reason"})

	// MaintenanceActive is 1 while the last evaluation reported maintenance
	MaintenanceActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "site_maintenance",
		Name:      "active",
		Help:      "Whether the site is currently in maintenance",
	})

	// BlockedRequests counts requests answered with the maintenance page
	BlockedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "site_maintenance",
		Name:      "blocked_requests_total",
		Help:      "Number of requests answered with the maintenance page",
	}, []string{"reason"})

	// ConfigMutations counts option writes done by the resolver
	ConfigMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "site_maintenance",
		Name:      "config_mutations_total",
		Help:      "Number of options written by schedule transitions",
	}, []string{"option"})

	// UpdatesInProgress is 1 while an update notification is open
	UpdatesInProgress = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "site_maintenance",
		Name:      "updates_in_progress",
		Help:      "Update operations currently running by type",
	}, []string{"type"})

	// StoreErrors counts failed reads or writes of the settings store
	StoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "site_maintenance",
		Name:      "store_errors_total",
		Help:      "Number of settings store failures by operation",
	}, []string{"operation"})
)

func init() {
	prometheus.MustRegister(
		MaintenanceEvaluations,
		MaintenanceActive,
		BlockedRequests,
		ConfigMutations,
		UpdatesInProgress,
		StoreErrors,
	)
}
