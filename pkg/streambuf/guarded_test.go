package streambuf_test

import (
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vnykmshr/gobuf/internal/testutil"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
	"github.com/vnykmshr/gobuf/pkg/streambuf/container"
)

func TestSynchronizeDelegates(t *testing.T) {
	w := container.NewWriter[byte]()
	g := streambuf.Synchronize[byte](w)

	testutil.AssertEqual(t, g.Mode(), streambuf.ModeWrite)
	testutil.AssertEqual(t, g.CanWrite(), true)
	testutil.AssertEqual(t, g.CanRead(), false)
	testutil.AssertEqual(t, g.CanSeek(), true)

	n, err := g.Write([]byte("abc")).Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 3)

	pos, err := g.Seek(0, io.SeekStart)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, pos, int64(0))
	testutil.AssertEqual(t, g.Available(), 3)

	win := g.Alloc(2)
	testutil.AssertEqual(t, len(win), 2)
	copy(win, "xy")
	g.Commit(2)

	ok, err := g.Flush().Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)

	testutil.AssertNoError(t, g.Close())
	testutil.AssertEqual(t, g.IsOpen(), false)
	testutil.AssertSliceEqual(t, w.Collection(), []byte("xyc"))
}

func TestGuardedUnwrap(t *testing.T) {
	w := container.NewWriter[byte]()
	defer w.Close()
	g := streambuf.Synchronize[byte](w)

	h, ok := g.Unwrap().(*container.Handle[byte])
	testutil.AssertEqual(t, ok, true)
	if h != w {
		t.Error("unwrap should return the wrapped buffer")
	}
}

func TestGuardedConcurrentWriters(t *testing.T) {
	w := container.NewWriter[int]()
	defer w.Close()
	g := streambuf.Synchronize[int](w)

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				if _, err := g.Write([]int{j}).Get(); err != nil {
					t.Errorf("write: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, w.Size(), int64(writers*perWriter))
}

func TestGuardedConcurrentReaders(t *testing.T) {
	data := make([]byte, 1000)
	r := container.NewReader(data)
	defer r.Close()
	g := streambuf.Synchronize[byte](r)

	const readers = 4
	var total atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := make([]byte, 7)
			for {
				n, err := g.Read(p).Get()
				if err != nil {
					t.Errorf("read: %v", err)
					return
				}
				if n == 0 {
					return
				}
				total.Add(int64(n))
			}
		}()
	}
	wg.Wait()

	// Every committed element is consumed exactly once.
	testutil.AssertEqual(t, total.Load(), int64(len(data)))
	testutil.AssertEqual(t, g.Available(), 0)
}

func TestGuardedAcquireRelease(t *testing.T) {
	r := container.NewReader([]byte("abcde"))
	defer r.Close()
	g := streambuf.Synchronize[byte](r)

	win, ok := g.Acquire()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertSliceEqual(t, win, []byte("abcde"))

	g.Release(3)
	testutil.AssertEqual(t, g.Available(), 2)

	testutil.AssertNoError(t, g.CloseRead())
	win, ok = g.Acquire()
	testutil.AssertEqual(t, ok, true)
	if win != nil {
		t.Errorf("window = %v, want nil", win)
	}
}
