package container

import (
	"github.com/gottingen/atomic"

	"github.com/vnykmshr/gobuf/pkg/common/validation"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
)

// Config configures a buffer created through NewWithConfig.
type Config[T any] struct {
	// Mode selects the buffer direction. It must be exactly ModeRead or
	// ModeWrite; any other value fails validation.
	Mode streambuf.Mode

	// Collection is the initial backing storage. The buffer takes
	// ownership: the caller must not use the slice afterwards. Read
	// buffers replay it from the start; write buffers append after its
	// end.
	Collection []T

	// Capacity preallocates storage capacity for buffers created without
	// a collection. Zero means no preallocation.
	Capacity int
}

// DefaultConfig returns the configuration for an empty write buffer.
func DefaultConfig[T any]() Config[T] {
	return Config[T]{Mode: streambuf.ModeWrite}
}

// Handle is a shared, copyable reference to a Buffer. Clones share the
// buffer and one reference count; the buffer closes, in both directions,
// when the last handle is closed. All buffer operations are available on
// the handle and follow the buffer's locking rules.
type Handle[T any] struct {
	*Buffer[T]

	refs   *atomic.Int64
	closed *atomic.Bool
}

var _ streambuf.Buffer[byte] = (*Handle[byte])(nil)

// NewReader returns a handle to a read buffer replaying collection from
// the start. The buffer takes ownership of the slice.
func NewReader[T any](collection []T) *Handle[T] {
	return newHandle(newBuffer(collection, streambuf.ModeRead))
}

// NewWriter returns a handle to an empty write buffer.
func NewWriter[T any]() *Handle[T] {
	return newHandle(newBuffer[T](nil, streambuf.ModeWrite))
}

// NewWriterWith returns a handle to a write buffer that appends after the
// end of collection; seek to 0 to overwrite from the start instead. The
// buffer takes ownership of the slice.
func NewWriterWith[T any](collection []T) *Handle[T] {
	return newHandle(newBuffer(collection, streambuf.ModeWrite))
}

// NewWithConfig returns a handle to a buffer built from config. This is
// the validating constructor: an undefined mode or a negative capacity
// fails with a validation error wrapping ErrInvalidConfiguration.
func NewWithConfig[T any](config Config[T]) (*Handle[T], error) {
	if err := streambuf.ValidateMode("container", config.Mode); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("container", "capacity", config.Capacity); err != nil {
		return nil, err
	}

	collection := config.Collection
	if collection == nil && config.Capacity > 0 {
		collection = make([]T, 0, config.Capacity)
	}
	return newHandle(newBuffer(collection, config.Mode)), nil
}

func newHandle[T any](b *Buffer[T]) *Handle[T] {
	return &Handle[T]{
		Buffer: b,
		refs:   atomic.NewInt64(1),
		closed: atomic.NewBool(false),
	}
}

// Clone returns a new handle sharing this handle's buffer and reference
// count. The clone closes independently.
func (h *Handle[T]) Clone() *Handle[T] {
	h.refs.Inc()
	return &Handle[T]{
		Buffer: h.Buffer,
		refs:   h.refs,
		closed: atomic.NewBool(false),
	}
}

// Refs returns the number of handles currently sharing the buffer.
func (h *Handle[T]) Refs() int64 {
	return h.refs.Load()
}

// Close releases this handle's reference; the buffer closes in both
// directions when the last reference is released. Close is idempotent per
// handle and safe to call concurrently with other handles' Close. To end
// the stream for every holder instead, use CloseRead or CloseWrite.
func (h *Handle[T]) Close() error {
	if !h.closed.CAS(false, true) {
		return nil
	}
	if h.refs.Dec() == 0 {
		return h.Buffer.Close()
	}
	return nil
}

// IsClosed reports whether this handle has been closed. The buffer can
// remain open through other handles.
func (h *Handle[T]) IsClosed() bool {
	return h.closed.Load()
}
