package container

import (
	"io"

	"github.com/vnykmshr/gobuf/pkg/common/promise"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
)

// Buffer is the in-memory, collection-backed stream buffer. It tracks a
// cursor and a committed size over owned storage, maintaining
// 0 <= cursor <= committed <= len(storage). Storage only ever grows; gaps
// created by forward write seeks are zero valued.
//
// Buffer performs no locking: a single goroutine drives it, or callers
// wrap it with streambuf.Synchronize. Buffers are created through handles;
// see NewReader, NewWriter, NewWriterWith and NewWithConfig.
type Buffer[T any] struct {
	streambuf.State

	data []T
	pos  int
	size int
}

var _ streambuf.Buffer[byte] = (*Buffer[byte])(nil)

func newBuffer[T any](collection []T, mode streambuf.Mode) *Buffer[T] {
	b := &Buffer[T]{
		State: streambuf.NewState(mode),
		data:  collection,
		size:  len(collection),
	}
	// Write buffers append after existing content; read buffers replay
	// from the start.
	if mode == streambuf.ModeWrite {
		b.pos = len(collection)
	}
	return b
}

// grow extends the storage length to n elements. Newly exposed elements
// are always zero valued, including when an adopted collection had spare
// capacity holding stale data.
func (b *Buffer[T]) grow(n int) {
	old := len(b.data)
	if n <= old {
		return
	}
	if n <= cap(b.data) {
		b.data = b.data[:n]
		clear(b.data[old:])
		return
	}
	b.data = append(b.data, make([]T, n-old)...)
}

// advance moves the cursor forward n elements, extending the committed
// size when the cursor passes it.
func (b *Buffer[T]) advance(n int) {
	b.pos += n
	if b.pos > b.size {
		b.size = b.pos
	}
}

// CanSeek reports whether Seek is usable; it tracks IsOpen.
func (b *Buffer[T]) CanSeek() bool {
	return b.IsOpen()
}

// Available returns the number of committed elements after the cursor.
func (b *Buffer[T]) Available() int {
	return b.size - b.pos
}

// Pos returns the cursor position.
func (b *Buffer[T]) Pos() int64 {
	return int64(b.pos)
}

// Size returns the committed size.
func (b *Buffer[T]) Size() int64 {
	return int64(b.size)
}

// Len returns the storage length. It can exceed Size between Alloc and
// Commit.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Cap returns the storage capacity.
func (b *Buffer[T]) Cap() int {
	return cap(b.data)
}

// Collection returns the live backing storage. The slice aliases the
// buffer: writes through the buffer are visible in it and growth may
// relocate it, so capture the result after writing has finished. It
// remains valid after the buffer is closed.
func (b *Buffer[T]) Collection() []T {
	return b.data
}

// Write copies all of p into the buffer at the cursor, growing storage as
// needed, and advances the cursor. The future resolves to len(p), or to 0
// when the buffer is not writable. Writing an empty slice is a successful
// no-op.
func (b *Buffer[T]) Write(p []T) *promise.Future[int] {
	return promise.Resolved(b.write(p))
}

// TryWrite is Write without the future wrapper.
func (b *Buffer[T]) TryWrite(p []T) int {
	return b.write(p)
}

func (b *Buffer[T]) write(p []T) int {
	if !b.CanWrite() || len(p) == 0 {
		return 0
	}
	b.grow(b.pos + len(p))
	copy(b.data[b.pos:], p)
	b.advance(len(p))
	return len(p)
}

// Read copies up to len(p) committed elements from the cursor into p and
// advances the cursor by the count copied. The future resolves to 0 when
// the buffer is unreadable or drained.
func (b *Buffer[T]) Read(p []T) *promise.Future[int] {
	return promise.Resolved(b.read(p, true))
}

// Peek is Read without advancing the cursor.
func (b *Buffer[T]) Peek(p []T) *promise.Future[int] {
	return promise.Resolved(b.read(p, false))
}

// TryRead is Read without the future wrapper.
func (b *Buffer[T]) TryRead(p []T) int {
	return b.read(p, true)
}

// TryPeek is Peek without the future wrapper.
func (b *Buffer[T]) TryPeek(p []T) int {
	return b.read(p, false)
}

func (b *Buffer[T]) read(p []T, advance bool) int {
	if !b.CanRead() || len(p) == 0 {
		return 0
	}
	n := copy(p, b.data[b.pos:b.size])
	if advance {
		b.pos += n
	}
	return n
}

// Flush resolves to true immediately: in-memory storage is always durable.
func (b *Buffer[T]) Flush() *promise.Future[bool] {
	return promise.Resolved(true)
}

// Add writes a single element at the cursor. It returns io.ErrClosedPipe
// when the buffer is not writable.
func (b *Buffer[T]) Add(v T) error {
	if !b.CanWrite() {
		return io.ErrClosedPipe
	}
	b.grow(b.pos + 1)
	b.data[b.pos] = v
	b.advance(1)
	return nil
}

// Current returns the element under the cursor without consuming it.
// It returns io.EOF when the buffer is unreadable or drained; a read
// buffer's committed size never grows, so a drained one is at end of
// stream.
func (b *Buffer[T]) Current() (T, error) {
	var zero T
	if !b.CanRead() || b.pos >= b.size {
		return zero, io.EOF
	}
	return b.data[b.pos], nil
}

// Next consumes and returns the element under the cursor.
func (b *Buffer[T]) Next() (T, error) {
	v, err := b.Current()
	if err == nil {
		b.pos++
	}
	return v, err
}

// Unget moves the cursor back one element and returns the element now
// under it. It returns io.EOF at position 0 and on unreadable buffers,
// leaving the cursor in place.
func (b *Buffer[T]) Unget() (T, error) {
	var zero T
	if !b.CanRead() || b.pos == 0 {
		return zero, io.EOF
	}
	b.pos--
	return b.data[b.pos], nil
}

// Acquire returns the committed elements at the cursor without copying.
// A closed buffer returns (nil, true): end of stream. An open buffer with
// nothing to read returns (nil, false): not readable, or nothing available
// yet. The window aliases storage and is invalidated by the next mutating
// call; use AcquireView for a window that survives growth.
func (b *Buffer[T]) Acquire() ([]T, bool) {
	if !b.IsOpen() {
		return nil, true
	}
	if !b.CanRead() {
		return nil, false
	}
	if b.pos < b.size {
		return b.data[b.pos:b.size], true
	}
	return nil, false
}

// AcquireView is Acquire returning an index-addressed View. The boolean
// follows Acquire's meaning; at end of stream the view is zero.
func (b *Buffer[T]) AcquireView() (View[T], bool) {
	if !b.IsOpen() {
		return View[T]{}, true
	}
	if !b.CanRead() {
		return View[T]{}, false
	}
	if b.pos < b.size {
		return View[T]{buf: b, off: b.pos, n: b.size - b.pos}, true
	}
	return View[T]{}, false
}

// Release advances the cursor past n elements previously observed through
// Acquire. Counts beyond the available window are clamped.
func (b *Buffer[T]) Release(n int) {
	if n <= 0 || !b.CanRead() {
		return
	}
	if avail := b.size - b.pos; n > avail {
		n = avail
	}
	b.pos += n
}

// Alloc grows the storage and returns a writable window of n elements at
// the cursor, or nil when the buffer is not writable or n is not positive.
// The window is published by Commit; until then Collection and Len report
// the grown storage while Size still reports the committed prefix.
func (b *Buffer[T]) Alloc(n int) []T {
	if !b.CanWrite() || n <= 0 {
		return nil
	}
	b.grow(b.pos + n)
	return b.data[b.pos : b.pos+n]
}

// AllocView is Alloc returning an index-addressed View and whether the
// allocation succeeded.
func (b *Buffer[T]) AllocView(n int) (View[T], bool) {
	if !b.CanWrite() || n <= 0 {
		return View[T]{}, false
	}
	b.grow(b.pos + n)
	return View[T]{buf: b, off: b.pos, n: n}, true
}

// Commit publishes n elements written into the window returned by Alloc,
// advancing the cursor and the committed size past them. Counts beyond the
// allocated storage are clamped.
func (b *Buffer[T]) Commit(n int) {
	if n <= 0 || !b.CanWrite() {
		return
	}
	if room := len(b.data) - b.pos; n > room {
		n = room
	}
	b.advance(n)
}

// Seek moves the cursor per whence and returns the new position. Read
// buffers are bounded by [0, Size]; a target outside it returns
// ErrOutOfRange with the cursor unchanged. Write buffers accept any
// non-negative target, growing storage and committed size to reach it
// with a zero-valued gap. Seeking a closed buffer returns ErrOutOfRange.
func (b *Buffer[T]) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(b.size)
	default:
		return int64(b.pos), streambuf.ErrInvalidWhence
	}
	target := base + offset

	switch {
	case b.CanRead():
		if target < 0 || target > int64(b.size) {
			return int64(b.pos), streambuf.ErrOutOfRange
		}
		b.pos = int(target)
	case b.CanWrite():
		if target < 0 {
			return int64(b.pos), streambuf.ErrOutOfRange
		}
		b.grow(int(target))
		b.pos = int(target)
		if b.pos > b.size {
			b.size = b.pos
		}
	default:
		return int64(b.pos), streambuf.ErrOutOfRange
	}
	return int64(b.pos), nil
}
