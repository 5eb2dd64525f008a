/*
Package promise provides a minimal write-once future type used to report
operation completion across the gobuf library.

Buffer operations return a *Future even when they complete immediately, so
callers interact with in-memory and remote-backed buffers through the same
surface.

# Quick Start

Immediate results:

	f := promise.Resolved(42)
	v, err := f.Get()  // returns right away

Deferred results:

	f, resolve := promise.Deferred[int]()

	go func() {
		n, err := doWork()
		resolve(n, err)
	}()

	v, err := f.Get()

Running a function asynchronously:

	f := promise.Go(func() (string, error) {
		return fetch()
	})

# Waiting with Cancellation

	v, err := f.Wait(ctx)  // returns ctx.Err() if ctx ends first

	select {
	case <-f.Done():
		v, err := f.Get()
	case <-time.After(timeout):
	}

# Semantics

A future is resolved exactly once; resolving twice panics. Futures created
by Resolved and Failed share a single pre-closed channel, so the immediate
path performs one small allocation.
*/
package promise
