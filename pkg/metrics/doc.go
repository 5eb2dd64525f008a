// Package metrics provides Prometheus instrumentation for gobuf components.
//
// This package enables monitoring and observability for gobuf's stream
// buffers and remote buffer backends through Prometheus metrics.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Buffer operations (writes, reads, seeks, zero-copy transfers)
//   - Element throughput per direction
//   - Operation failures
//   - Remote backend traffic (operation counts, latency, staged bytes)
//
// # Quick Start
//
// Wrap any buffer with the metrics-collecting wrapper:
//
//	h := container.NewWriter[byte]()
//	buf := streambuf.WithMetrics[byte](h, "upload_body", metrics.DefaultConfig())
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	buf := streambuf.WithMetrics[byte](h, "upload_body", config)
//
// # Available Metrics
//
// ## Buffer Metrics
//
//   - gobuf_streambuf_operations_total: Total number of buffer operations
//   - gobuf_streambuf_elements_total: Total number of elements transferred through buffers
//   - gobuf_streambuf_errors_total: Total number of failed buffer operations
//   - gobuf_streambuf_available_elements: Number of committed elements not yet consumed
//
// ## Remote Buffer Metrics
//
//   - gobuf_remote_operations_total: Total number of operations issued to remote backends
//   - gobuf_remote_op_duration_seconds: Time spent completing remote buffer operations
//   - gobuf_remote_errors_total: Total number of failed remote buffer operations
//   - gobuf_remote_staged_bytes: Bytes allocated locally and not yet committed
//
// # Labels
//
// Metrics include relevant labels for filtering and aggregation:
//
//   - buffer_name: User-provided name for the buffer instance
//   - operation: Buffer operation (e.g., "write", "read", "seek", "commit")
//   - direction: Transfer direction, "read" or "write"
//   - backend: Remote backend type (e.g., "redis")
//
// # Configuration
//
// Metrics can be configured globally or per-component:
//
//	config := metrics.Config{
//		Enabled:   true,                           // Enable/disable metrics
//		Registry:  prometheus.DefaultRegisterer,   // Custom registry
//		Namespace: "myapp",                        // Override default "gobuf"
//		Labels:    prometheus.Labels{"version": "1.0"}, // Additional labels
//	}
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	buf := streambuf.WithMetrics[byte](h, "upload_body", metrics.DefaultConfig())
//	buf.DisableMetrics()            // Stop collecting metrics
//	buf.EnableMetrics(config)       // Re-enable with new config
//	enabled := buf.MetricsEnabled() // Check current state
//
// # Performance
//
// Metrics collection is designed for minimal overhead:
//   - Metrics are updated only when operations occur
//   - No background goroutines or timers
//   - Conditional metrics updates based on enabled state
package metrics
