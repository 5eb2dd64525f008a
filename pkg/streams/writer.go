package streams

import (
	"context"
	"errors"
	"io"

	"github.com/vnykmshr/gobuf/pkg/common/promise"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
)

// ErrWriterClosed is returned by Writer operations after Close.
var ErrWriterClosed = errors.New("streams: writer closed")

// Writer is a synchronous stream facade over a buffer. Writes that the
// buffer consumes only partially return io.ErrShortWrite, and writes
// against a buffer whose write direction is closed return io.ErrClosedPipe.
//
// A Writer is not safe for concurrent use; see Reader.
type Writer[T any] struct {
	buf    streambuf.Buffer[T]
	owns   bool
	closed bool
}

// NewWriter returns a Writer over buf. Closing the Writer does not close
// the buffer; use NewOwnedWriter to hand over the buffer's lifetime.
func NewWriter[T any](buf streambuf.Buffer[T]) *Writer[T] {
	return &Writer[T]{buf: buf}
}

// NewOwnedWriter returns a Writer that closes buf when it is closed.
func NewOwnedWriter[T any](buf streambuf.Buffer[T]) *Writer[T] {
	return &Writer[T]{buf: buf, owns: true}
}

// Buffer returns the underlying buffer.
func (w *Writer[T]) Buffer() streambuf.Buffer[T] {
	return w.buf
}

func (w *Writer[T]) mapWrite(want, n int, err error) (int, error) {
	if err != nil {
		return n, err
	}
	if n < want {
		if !w.buf.CanWrite() {
			return n, io.ErrClosedPipe
		}
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Write copies all of p into the buffer, blocking until the buffer's write
// completes.
func (w *Writer[T]) Write(p []T) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := w.buf.Write(p).Get()
	return w.mapWrite(len(p), n, err)
}

// WriteContext is Write bounded by ctx. If ctx ends first the wait is
// abandoned with ctx's error; the buffer operation itself still completes.
func (w *Writer[T]) WriteContext(ctx context.Context, p []T) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := w.buf.Write(p).Wait(ctx)
	return w.mapWrite(len(p), n, err)
}

// WriteAsync issues the write and returns the buffer's future directly,
// without the short-write mapping.
func (w *Writer[T]) WriteAsync(p []T) *promise.Future[int] {
	if w.closed {
		return promise.Failed[int](ErrWriterClosed)
	}
	return w.buf.Write(p)
}

// Add writes a single element. It returns io.ErrClosedPipe when the buffer
// is not writable.
func (w *Writer[T]) Add(v T) error {
	var one [1]T
	one[0] = v
	_, err := w.Write(one[:])
	return err
}

// Flush blocks until previously written data is durable in the backing
// store, or until ctx ends.
func (w *Writer[T]) Flush(ctx context.Context) error {
	if w.closed {
		return ErrWriterClosed
	}
	_, err := w.buf.Flush().Wait(ctx)
	return err
}

// Seek moves the cursor per whence and returns the new position.
func (w *Writer[T]) Seek(offset int64, whence int) (int64, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	return w.buf.Seek(offset, whence)
}

// Close marks the facade closed. It closes the underlying buffer only when
// the Writer owns it. Close is idempotent.
func (w *Writer[T]) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.owns {
		return w.buf.Close()
	}
	return nil
}
