package streambuf

import (
	"sync"

	"github.com/vnykmshr/gobuf/pkg/common/promise"
)

// Guarded wraps a Buffer with a mutex so a single instance can be called
// from multiple goroutines. Core buffers perform no internal locking;
// Guarded is the opt-in serialization layer for shared use.
//
// Windows returned by Acquire and Alloc alias the underlying storage and
// are only stable until the next mutating call, so under concurrent use
// pair them with Release or Commit before yielding the buffer.
type Guarded[T any] struct {
	mu sync.Mutex
	b  Buffer[T]
}

var _ Buffer[byte] = (*Guarded[byte])(nil)

// Synchronize wraps b so every contract operation runs under a mutex.
func Synchronize[T any](b Buffer[T]) *Guarded[T] {
	return &Guarded[T]{b: b}
}

// Unwrap returns the wrapped buffer.
func (g *Guarded[T]) Unwrap() Buffer[T] {
	return g.b
}

// Mode returns the buffer's direction.
func (g *Guarded[T]) Mode() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Mode()
}

// IsOpen reports whether at least one direction is still open.
func (g *Guarded[T]) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.IsOpen()
}

// CanRead reports whether the read direction is open.
func (g *Guarded[T]) CanRead() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.CanRead()
}

// CanWrite reports whether the write direction is open.
func (g *Guarded[T]) CanWrite() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.CanWrite()
}

// CanSeek reports whether Seek is currently usable.
func (g *Guarded[T]) CanSeek() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.CanSeek()
}

// Available returns the number of committed elements after the cursor.
func (g *Guarded[T]) Available() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Available()
}

// Write copies p into the buffer under the lock.
func (g *Guarded[T]) Write(p []T) *promise.Future[int] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Write(p)
}

// Read copies committed elements into p under the lock.
func (g *Guarded[T]) Read(p []T) *promise.Future[int] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Read(p)
}

// Peek copies committed elements into p without advancing the cursor.
func (g *Guarded[T]) Peek(p []T) *promise.Future[int] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Peek(p)
}

// Flush flushes the underlying buffer.
func (g *Guarded[T]) Flush() *promise.Future[bool] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Flush()
}

// Acquire returns a read window over the underlying buffer.
func (g *Guarded[T]) Acquire() ([]T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Acquire()
}

// Release consumes n elements previously acquired.
func (g *Guarded[T]) Release(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.b.Release(n)
}

// Alloc returns a writable window of n elements.
func (g *Guarded[T]) Alloc(n int) []T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Alloc(n)
}

// Commit publishes n elements written into the allocated window.
func (g *Guarded[T]) Commit(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.b.Commit(n)
}

// Seek moves the cursor under the lock.
func (g *Guarded[T]) Seek(offset int64, whence int) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Seek(offset, whence)
}

// CloseRead closes the read direction.
func (g *Guarded[T]) CloseRead() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.CloseRead()
}

// CloseWrite closes the write direction.
func (g *Guarded[T]) CloseWrite() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.CloseWrite()
}

// Close closes both directions.
func (g *Guarded[T]) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.b.Close()
}
