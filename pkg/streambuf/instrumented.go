package streambuf

import (
	"github.com/vnykmshr/gobuf/pkg/common/promise"
	"github.com/vnykmshr/gobuf/pkg/metrics"
)

// Instrumented wraps a Buffer with Prometheus metrics collection.
// Operations, transferred element counts, failures, and the available
// gauge are recorded against the buffer's name.
type Instrumented[T any] struct {
	b        Buffer[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

var _ Buffer[byte] = (*Instrumented[byte])(nil)
var _ metrics.Instrumentable = (*Instrumented[byte])(nil)

// WithMetrics wraps b so its operations are counted under name in the
// gobuf metrics registry selected by config.
func WithMetrics[T any](b Buffer[T], name string, config metrics.Config) *Instrumented[T] {
	ib := &Instrumented[T]{b: b, name: name}
	if config.Enabled {
		ib.registry = registryFor(config)
		ib.enabled = true
	}
	return ib
}

func registryFor(config metrics.Config) *metrics.Registry {
	if config.Registry != nil {
		// Build an isolated registry when a custom registerer is provided
		return metrics.NewRegistry(config.Registry)
	}
	return metrics.DefaultRegistry
}

// EnableMetrics enables metrics collection for this buffer.
// Configure before sharing the buffer across goroutines.
func (ib *Instrumented[T]) EnableMetrics(config metrics.Config) error {
	ib.registry = registryFor(config)
	ib.enabled = true
	return nil
}

// DisableMetrics disables metrics collection for this buffer.
func (ib *Instrumented[T]) DisableMetrics() {
	ib.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ib *Instrumented[T]) MetricsEnabled() bool {
	return ib.enabled
}

// Unwrap returns the wrapped buffer.
func (ib *Instrumented[T]) Unwrap() Buffer[T] {
	return ib.b
}

const (
	directionRead  = "read"
	directionWrite = "write"
)

func (ib *Instrumented[T]) countOp(op string) {
	if ib.enabled {
		ib.registry.BufferOps.WithLabelValues(op, ib.name).Inc()
	}
}

func (ib *Instrumented[T]) recordResult(op, direction string, n int, err error) {
	if err != nil {
		ib.registry.BufferErrors.WithLabelValues(op, ib.name).Inc()
		return
	}
	if n > 0 && direction != "" {
		ib.registry.BufferElements.WithLabelValues(direction, ib.name).Add(float64(n))
	}
	ib.registry.BufferAvailable.WithLabelValues(ib.name).Set(float64(ib.b.Available()))
}

// observe records the outcome of a counted future. Already-resolved
// futures, the in-memory case, are recorded inline; pending ones are
// watched from a goroutine so the caller is never delayed.
func (ib *Instrumented[T]) observe(op, direction string, f *promise.Future[int]) *promise.Future[int] {
	if !ib.enabled {
		return f
	}
	ib.countOp(op)
	if f.Ready() {
		n, err := f.Get()
		ib.recordResult(op, direction, n, err)
		return f
	}

	out, resolve := promise.Deferred[int]()
	go func() {
		n, err := f.Get()
		ib.recordResult(op, direction, n, err)
		resolve(n, err)
	}()
	return out
}

// Mode returns the buffer's direction.
func (ib *Instrumented[T]) Mode() Mode { return ib.b.Mode() }

// IsOpen reports whether at least one direction is still open.
func (ib *Instrumented[T]) IsOpen() bool { return ib.b.IsOpen() }

// CanRead reports whether the read direction is open.
func (ib *Instrumented[T]) CanRead() bool { return ib.b.CanRead() }

// CanWrite reports whether the write direction is open.
func (ib *Instrumented[T]) CanWrite() bool { return ib.b.CanWrite() }

// CanSeek reports whether Seek is currently usable.
func (ib *Instrumented[T]) CanSeek() bool { return ib.b.CanSeek() }

// Available returns the number of committed elements after the cursor.
func (ib *Instrumented[T]) Available() int { return ib.b.Available() }

// Write counts the operation and elements written.
func (ib *Instrumented[T]) Write(p []T) *promise.Future[int] {
	return ib.observe("write", directionWrite, ib.b.Write(p))
}

// Read counts the operation and elements read.
func (ib *Instrumented[T]) Read(p []T) *promise.Future[int] {
	return ib.observe("read", directionRead, ib.b.Read(p))
}

// Peek counts the operation; peeked elements do not count as transferred.
func (ib *Instrumented[T]) Peek(p []T) *promise.Future[int] {
	return ib.observe("peek", "", ib.b.Peek(p))
}

// Flush counts the operation and delegates.
func (ib *Instrumented[T]) Flush() *promise.Future[bool] {
	ib.countOp("flush")
	return ib.b.Flush()
}

// Acquire counts the operation and delegates.
func (ib *Instrumented[T]) Acquire() ([]T, bool) {
	ib.countOp("acquire")
	return ib.b.Acquire()
}

// Release counts released elements as read traffic.
func (ib *Instrumented[T]) Release(n int) {
	ib.countOp("release")
	if avail := ib.b.Available(); n > avail {
		n = avail
	}
	ib.b.Release(n)
	if ib.enabled {
		ib.recordResult("release", directionRead, n, nil)
	}
}

// Alloc counts the operation and delegates.
func (ib *Instrumented[T]) Alloc(n int) []T {
	ib.countOp("alloc")
	return ib.b.Alloc(n)
}

// Commit counts committed elements as write traffic.
func (ib *Instrumented[T]) Commit(n int) {
	ib.countOp("commit")
	ib.b.Commit(n)
	if ib.enabled {
		ib.recordResult("commit", directionWrite, n, nil)
	}
}

// Seek counts the operation and any range failure.
func (ib *Instrumented[T]) Seek(offset int64, whence int) (int64, error) {
	ib.countOp("seek")
	pos, err := ib.b.Seek(offset, whence)
	if err != nil && ib.enabled {
		ib.registry.BufferErrors.WithLabelValues("seek", ib.name).Inc()
	}
	return pos, err
}

// CloseRead counts the operation and delegates.
func (ib *Instrumented[T]) CloseRead() error {
	ib.countOp("close_read")
	return ib.b.CloseRead()
}

// CloseWrite counts the operation and delegates.
func (ib *Instrumented[T]) CloseWrite() error {
	ib.countOp("close_write")
	return ib.b.CloseWrite()
}

// Close counts the operation and delegates.
func (ib *Instrumented[T]) Close() error {
	ib.countOp("close")
	return ib.b.Close()
}
