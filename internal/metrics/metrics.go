package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RestaurantsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lunchbot",
		Subsystem: "registry",
		Name:      "restaurants_total",
		Help:      "Number of restaurants in the registry",
	})

	RegistryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchbot",
		Subsystem: "registry",
		Name:      "operations_total",
		Help:      "Total registry operations",
	}, []string{"operation", "status"})

	SelectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lunchbot",
		Subsystem: "registry",
		Name:      "selections_total",
		Help:      "Total weighted draws",
	})

	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchbot",
		Subsystem: "command",
		Name:      "total",
		Help:      "Total commands processed",
	}, []string{"type", "status"})

	CommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lunchbot",
		Subsystem: "command",
		Name:      "duration_seconds",
		Help:      "Command processing duration",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
	}, []string{"type"})

	CommandsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lunchbot",
		Subsystem: "command",
		Name:      "in_flight",
		Help:      "Commands currently being processed",
	})

	RepliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchbot",
		Subsystem: "transport",
		Name:      "replies_total",
		Help:      "Total replies sent",
	}, []string{"transport", "status"})

	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchbot",
		Subsystem: "transport",
		Name:      "events_total",
		Help:      "Total inbound chat events",
	}, []string{"transport", "type"})

	StorageOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchbot",
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Total storage operations",
	}, []string{"backend", "operation", "status"})

	StorageSnapshotSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lunchbot",
		Subsystem: "storage",
		Name:      "snapshot_size_bytes",
		Help:      "Size of last written snapshot in bytes",
	})

	StorageSaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lunchbot",
		Subsystem: "storage",
		Name:      "save_duration_seconds",
		Help:      "Snapshot write duration",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20),
	})

	GRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lunchbot",
		Subsystem: "grpc",
		Name:      "requests_total",
		Help:      "Total gRPC requests",
	}, []string{"service", "method", "code"})

	GRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lunchbot",
		Subsystem: "grpc",
		Name:      "request_duration_seconds",
		Help:      "gRPC request duration",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
	}, []string{"service", "method"})
)

// outcome maps an operation error to the status label.
func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func ObserveStorage(backend, operation string, err error) {
	StorageOperationsTotal.WithLabelValues(backend, operation, outcome(err)).Inc()
}

func ObserveRegistry(operation string, err error) {
	RegistryOperationsTotal.WithLabelValues(operation, outcome(err)).Inc()
}
