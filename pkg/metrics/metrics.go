// Package metrics provides Prometheus instrumentation for gobuf components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gobuf components.
type Registry struct {
	// Buffer Metrics
	BufferOps       *prometheus.CounterVec
	BufferElements  *prometheus.CounterVec
	BufferErrors    *prometheus.CounterVec
	BufferAvailable *prometheus.GaugeVec

	// Remote Buffer Metrics
	RemoteOps         *prometheus.CounterVec
	RemoteOpDuration  *prometheus.HistogramVec
	RemoteErrors      *prometheus.CounterVec
	RemoteStagedBytes *prometheus.GaugeVec

	// Stream Metrics
	CopyBytes *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by gobuf components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Buffer Metrics
		BufferOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gobuf",
				Subsystem: "streambuf",
				Name:      "operations_total",
				Help:      "Total number of buffer operations",
			},
			[]string{"operation", "buffer_name"},
		),

		BufferElements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gobuf",
				Subsystem: "streambuf",
				Name:      "elements_total",
				Help:      "Total number of elements transferred through buffers",
			},
			[]string{"direction", "buffer_name"},
		),

		BufferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gobuf",
				Subsystem: "streambuf",
				Name:      "errors_total",
				Help:      "Total number of failed buffer operations",
			},
			[]string{"operation", "buffer_name"},
		),

		BufferAvailable: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gobuf",
				Subsystem: "streambuf",
				Name:      "available_elements",
				Help:      "Number of committed elements not yet consumed",
			},
			[]string{"buffer_name"},
		),

		// Remote Buffer Metrics
		RemoteOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gobuf",
				Subsystem: "remote",
				Name:      "operations_total",
				Help:      "Total number of operations issued to remote buffer backends",
			},
			[]string{"backend", "operation"},
		),

		RemoteOpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gobuf",
				Subsystem: "remote",
				Name:      "op_duration_seconds",
				Help:      "Time spent completing remote buffer operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),

		RemoteErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gobuf",
				Subsystem: "remote",
				Name:      "errors_total",
				Help:      "Total number of failed remote buffer operations",
			},
			[]string{"backend", "operation"},
		),

		RemoteStagedBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gobuf",
				Subsystem: "remote",
				Name:      "staged_bytes",
				Help:      "Bytes allocated locally and not yet committed to the backend",
			},
			[]string{"backend", "buffer_name"},
		),

		// Stream Metrics
		CopyBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gobuf",
				Subsystem: "streams",
				Name:      "copy_bytes_total",
				Help:      "Total number of bytes moved by stream copies",
			},
			[]string{"stream"},
		),
	}
}
