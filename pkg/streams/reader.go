package streams

import (
	"context"
	"errors"
	"io"

	"github.com/vnykmshr/gobuf/pkg/common/promise"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
)

// ErrReaderClosed is returned by Reader operations after Close.
var ErrReaderClosed = errors.New("streams: reader closed")

// readChunkSize is the per-iteration read size used by ReadToEnd.
const readChunkSize = 512

// Reader is a synchronous stream facade over a buffer. It bridges the
// buffer's future-based contract to plain (count, error) returns: a zero
// count from an unreadable buffer becomes io.EOF, while (0, nil) from an
// open buffer is kept as the try-again-later signal.
//
// A Reader is not safe for concurrent use. Share the underlying buffer by
// wrapping it with streambuf.Synchronize and giving each goroutine its own
// facade.
type Reader[T any] struct {
	buf    streambuf.Buffer[T]
	owns   bool
	closed bool
}

// NewReader returns a Reader over buf. Closing the Reader does not close
// the buffer; use NewOwnedReader to hand over the buffer's lifetime.
func NewReader[T any](buf streambuf.Buffer[T]) *Reader[T] {
	return &Reader[T]{buf: buf}
}

// NewOwnedReader returns a Reader that closes buf when it is closed.
func NewOwnedReader[T any](buf streambuf.Buffer[T]) *Reader[T] {
	return &Reader[T]{buf: buf, owns: true}
}

// Buffer returns the underlying buffer.
func (r *Reader[T]) Buffer() streambuf.Buffer[T] {
	return r.buf
}

func (r *Reader[T]) mapRead(n int, err error) (int, error) {
	if err != nil {
		return n, err
	}
	if n == 0 && !r.buf.CanRead() {
		return 0, io.EOF
	}
	return n, nil
}

// Read copies up to len(p) elements into p, blocking until the buffer's
// read completes. It returns io.EOF once the read direction is closed and
// drained, and (0, nil) when the buffer is open but has nothing yet.
func (r *Reader[T]) Read(p []T) (int, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.buf.Read(p).Get()
	return r.mapRead(n, err)
}

// ReadContext is Read bounded by ctx. If ctx ends first the wait is
// abandoned with ctx's error; the buffer operation itself still completes.
func (r *Reader[T]) ReadContext(ctx context.Context, p []T) (int, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.buf.Read(p).Wait(ctx)
	return r.mapRead(n, err)
}

// ReadAsync issues the read and returns the buffer's future directly,
// without the io.EOF mapping.
func (r *Reader[T]) ReadAsync(p []T) *promise.Future[int] {
	if r.closed {
		return promise.Failed[int](ErrReaderClosed)
	}
	return r.buf.Read(p)
}

// Peek is Read without advancing the cursor.
func (r *Reader[T]) Peek(p []T) (int, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.buf.Peek(p).Get()
	return r.mapRead(n, err)
}

// ReadToEnd reads until the buffer yields no more elements and returns
// everything read. A zero-count read ends the collection, so a buffer that
// is appended to later can be drained again with another call. If ctx ends
// mid-way the elements read so far are returned with ctx's error.
func (r *Reader[T]) ReadToEnd(ctx context.Context) ([]T, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}

	var out []T
	chunk := make([]T, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		n, err := r.buf.Read(chunk).Wait(ctx)
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, nil
		}
		out = append(out, chunk[:n]...)
	}
}

// Next consumes and returns the element under the cursor. It returns
// io.EOF when no element is available.
func (r *Reader[T]) Next() (T, error) {
	var one [1]T
	n, err := r.Read(one[:])
	if err != nil {
		var zero T
		return zero, err
	}
	if n == 0 {
		var zero T
		return zero, io.EOF
	}
	return one[0], nil
}

// Skip advances the cursor past up to n elements without copying them out
// and returns the count skipped. Like Read it returns io.EOF only when the
// buffer is unreadable, and (0, nil) when it is open but empty.
func (r *Reader[T]) Skip(n int) (int, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	if n <= 0 {
		return 0, nil
	}
	if !r.buf.CanRead() {
		return 0, io.EOF
	}
	avail := r.buf.Available()
	if avail == 0 {
		return 0, nil
	}
	if n > avail {
		n = avail
	}
	r.buf.Release(n)
	return n, nil
}

// Seek moves the cursor per whence and returns the new position.
func (r *Reader[T]) Seek(offset int64, whence int) (int64, error) {
	if r.closed {
		return 0, ErrReaderClosed
	}
	return r.buf.Seek(offset, whence)
}

// Available returns the number of elements ready to read.
func (r *Reader[T]) Available() int {
	if r.closed {
		return 0
	}
	return r.buf.Available()
}

// Close marks the facade closed. It closes the underlying buffer only when
// the Reader owns it. Close is idempotent.
func (r *Reader[T]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.owns {
		return r.buf.Close()
	}
	return nil
}
