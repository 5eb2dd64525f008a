package promise

import (
	"context"
	"sync"
)

// closedchan is a reusable closed channel for futures that are resolved at
// construction, so the synchronous fast path allocates nothing beyond the
// future itself.
var closedchan = make(chan struct{})

func init() {
	close(closedchan)
}

// ResolveFunc completes a deferred future with a value or an error.
// A future can be resolved exactly once; resolving it again panics.
type ResolveFunc[T any] func(value T, err error)

// Future is a write-once holder for the eventual result of an operation.
// In-memory buffers return futures that are already resolved when the call
// returns; implementations backed by remote storage resolve theirs from
// worker goroutines.
type Future[T any] struct {
	mu    sync.Mutex
	done  chan struct{}
	value T
	err   error
	ready bool
}

// Resolved returns a future already completed with value.
func Resolved[T any](value T) *Future[T] {
	return &Future[T]{done: closedchan, value: value, ready: true}
}

// Failed returns a future already completed with err.
func Failed[T any](err error) *Future[T] {
	return &Future[T]{done: closedchan, err: err, ready: true}
}

// Deferred returns a pending future together with the function that
// completes it.
func Deferred[T any]() (*Future[T], ResolveFunc[T]) {
	f := &Future[T]{done: make(chan struct{})}
	return f, f.resolve
}

// Go runs fn in a new goroutine and returns a future that is resolved with
// its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f, resolve := Deferred[T]()
	go func() {
		resolve(fn())
	}()
	return f
}

func (f *Future[T]) resolve(value T, err error) {
	f.mu.Lock()
	if f.ready {
		f.mu.Unlock()
		panic("promise: future resolved twice")
	}
	f.value = value
	f.err = err
	f.ready = true
	f.mu.Unlock()
	close(f.done)
}

// Done returns a channel that is closed once the future is resolved.
// It can be combined with other channels in a select.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the future has been resolved.
func (f *Future[T]) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

// Get blocks until the future is resolved and returns its result.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// Poll returns the result without blocking. The third return value reports
// whether the future was resolved; when it is false the others are zero.
func (f *Future[T]) Poll() (T, error, bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Wait blocks until the future is resolved or ctx is done. If ctx ends
// first, the zero value and ctx.Err() are returned; the underlying
// operation is not affected.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	// An already resolved future wins over an already canceled context.
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
