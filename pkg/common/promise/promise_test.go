package promise

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestResolved(t *testing.T) {
	f := Resolved(42)

	if !f.Ready() {
		t.Error("Resolved future should be ready immediately")
	}

	v, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("Get() = %d, want 42", v)
	}

	select {
	case <-f.Done():
	default:
		t.Error("Done() should be closed for a resolved future")
	}
}

func TestFailed(t *testing.T) {
	wantErr := errors.New("boom")
	f := Failed[string](wantErr)

	if !f.Ready() {
		t.Error("Failed future should be ready immediately")
	}

	v, err := f.Get()
	if !errors.Is(err, wantErr) {
		t.Errorf("Get() error = %v, want %v", err, wantErr)
	}
	if v != "" {
		t.Errorf("Get() value = %q, want zero value", v)
	}
}

func TestDeferred(t *testing.T) {
	f, resolve := Deferred[int]()

	if f.Ready() {
		t.Error("Deferred future should not be ready before resolve")
	}

	select {
	case <-f.Done():
		t.Error("Done() should not be closed before resolve")
	default:
	}

	resolve(7, nil)

	if !f.Ready() {
		t.Error("future should be ready after resolve")
	}

	v, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Errorf("Get() = %d, want 7", v)
	}
}

func TestDeferred_ResolveTwicePanics(t *testing.T) {
	f, resolve := Deferred[int]()
	resolve(1, nil)

	if v, err := f.Get(); v != 1 || err != nil {
		t.Fatalf("Get() = %d, %v, want 1, nil", v, err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("second resolve should panic")
		}
	}()
	resolve(2, nil)
}

func TestDeferred_ConcurrentWaiters(t *testing.T) {
	f, resolve := Deferred[string]()

	const waiters = 8
	results := make([]string, waiters)
	var wg sync.WaitGroup
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := f.Get()
			if err != nil {
				t.Errorf("waiter %d: unexpected error: %v", i, err)
				return
			}
			results[i] = v
		}(i)
	}

	resolve("done", nil)
	wg.Wait()

	for i, v := range results {
		if v != "done" {
			t.Errorf("waiter %d got %q, want %q", i, v, "done")
		}
	}
}

func TestPoll(t *testing.T) {
	f, resolve := Deferred[int]()

	if _, _, ok := f.Poll(); ok {
		t.Error("Poll() on a pending future should report not resolved")
	}

	resolve(3, nil)

	v, err, ok := f.Poll()
	if !ok {
		t.Fatal("Poll() after resolve should report resolved")
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 3 {
		t.Errorf("Poll() = %d, want 3", v)
	}

	wantErr := errors.New("late")
	if _, err, _ := Failed[int](wantErr).Poll(); !errors.Is(err, wantErr) {
		t.Errorf("Poll() error = %v, want %v", err, wantErr)
	}
}

func TestGo(t *testing.T) {
	f := Go(func() (int, error) {
		return 21 * 2, nil
	})

	v, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("Get() = %d, want 42", v)
	}
}

func TestGo_Error(t *testing.T) {
	wantErr := errors.New("work failed")
	f := Go(func() (int, error) {
		return 0, wantErr
	})

	if _, err := f.Get(); !errors.Is(err, wantErr) {
		t.Errorf("Get() error = %v, want %v", err, wantErr)
	}
}

func TestWait_ContextCanceled(t *testing.T) {
	f, resolve := Deferred[int]()
	defer resolve(0, nil) // unblock any late waiters and keep goleak quiet

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestWait_ResolvedWinsOverCanceledContext(t *testing.T) {
	f := Resolved(99)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A future that is already resolved returns its value even when the
	// context is already canceled.
	v, err := f.Wait(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 99 {
		t.Errorf("Wait() = %d, want 99", v)
	}
}

func TestWait_ResolvedLater(t *testing.T) {
	f, resolve := Deferred[int]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		resolve(5, nil)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := f.Wait(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 5 {
		t.Errorf("Wait() = %d, want 5", v)
	}
}
