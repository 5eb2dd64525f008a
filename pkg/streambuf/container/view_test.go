package container

import (
	"io"
	"testing"

	"github.com/vnykmshr/gobuf/internal/testutil"
)

func TestAcquireView(t *testing.T) {
	r := NewReader([]byte("abcde"))
	defer r.Close()

	r.Release(2)
	v, ok := r.AcquireView()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v.IsZero(), false)
	testutil.AssertEqual(t, v.Offset(), 2)
	testutil.AssertEqual(t, v.Len(), 3)
	testutil.AssertSliceEqual(t, v.Elems(), []byte("cde"))
}

func TestAcquireViewDrained(t *testing.T) {
	r := NewReader([]byte("ab"))
	defer r.Close()

	r.Release(2)
	v, ok := r.AcquireView()
	testutil.AssertEqual(t, ok, false)
	testutil.AssertEqual(t, v.IsZero(), true)
	if v.Elems() != nil {
		t.Errorf("elems = %v, want nil", v.Elems())
	}
}

func TestAcquireViewClosed(t *testing.T) {
	r := NewReader([]byte("ab"))
	testutil.AssertNoError(t, r.Close())

	v, ok := r.AcquireView()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v.IsZero(), true)
}

func TestViewSurvivesGrowth(t *testing.T) {
	w := NewWriter[byte]()
	defer w.Close()

	v, ok := w.AllocView(4)
	testutil.AssertEqual(t, ok, true)
	copy(v.Elems(), "abcd")
	w.Commit(4)

	// Force a relocation of the backing array. A plain slice window would
	// keep pointing at the old array; the view resolves against the live
	// storage.
	w.TryWrite(make([]byte, 1<<12))

	testutil.AssertEqual(t, v.Offset(), 0)
	testutil.AssertEqual(t, v.Len(), 4)
	testutil.AssertSliceEqual(t, v.Elems(), []byte("abcd"))
}

func TestViewSeesLaterWrites(t *testing.T) {
	w := NewWriter[byte]()
	defer w.Close()

	w.TryWrite([]byte("ab"))

	r := NewReader(w.Collection())
	defer r.Close()
	v, ok := r.AcquireView()
	testutil.AssertEqual(t, ok, true)

	// The view is a range of positions, not a snapshot.
	w.Seek(0, io.SeekStart)
	w.TryWrite([]byte("z"))
	testutil.AssertSliceEqual(t, v.Elems(), []byte("zb"))
}

func TestAllocViewOnReadBuffer(t *testing.T) {
	r := NewReader([]byte("ab"))
	defer r.Close()

	v, ok := r.AllocView(3)
	testutil.AssertEqual(t, ok, false)
	testutil.AssertEqual(t, v.IsZero(), true)
}

func TestZeroView(t *testing.T) {
	var v View[byte]
	testutil.AssertEqual(t, v.IsZero(), true)
	testutil.AssertEqual(t, v.Len(), 0)
	testutil.AssertEqual(t, v.Offset(), 0)
	if v.Elems() != nil {
		t.Errorf("elems = %v, want nil", v.Elems())
	}
}
