package streams_test

import (
	"context"
	"io"
	"testing"

	"github.com/vnykmshr/gobuf/internal/testutil"
	"github.com/vnykmshr/gobuf/pkg/common/promise"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
	"github.com/vnykmshr/gobuf/pkg/streambuf/container"
	"github.com/vnykmshr/gobuf/pkg/streams"
)

// pendingWriteBuffer serves writes from a future that resolves later.
type pendingWriteBuffer struct {
	streambuf.Buffer[byte]
	future *promise.Future[int]
}

func (p *pendingWriteBuffer) Write(q []byte) *promise.Future[int] {
	return p.future
}

func TestWriterWrite(t *testing.T) {
	h := container.NewWriter[byte]()
	defer h.Close()
	w := streams.NewWriter[byte](h)

	n, err := w.Write([]byte("hello"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 5)
	testutil.AssertSliceEqual(t, h.Collection(), []byte("hello"))

	n, err = w.Write(nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 0)

	testutil.AssertNoError(t, w.Close())
	_, err = w.Write([]byte("x"))
	testutil.AssertErrorIs(t, err, streams.ErrWriterClosed)
}

func TestWriterClosedPipe(t *testing.T) {
	t.Run("write direction closed", func(t *testing.T) {
		h := container.NewWriter[byte]()
		defer h.Close()
		w := streams.NewWriter[byte](h)

		testutil.AssertNoError(t, h.CloseWrite())
		n, err := w.Write([]byte("abc"))
		testutil.AssertErrorIs(t, err, io.ErrClosedPipe)
		testutil.AssertEqual(t, n, 0)
	})

	t.Run("read mode buffer", func(t *testing.T) {
		h := container.NewReader([]byte("r"))
		defer h.Close()
		w := streams.NewWriter[byte](h)

		_, err := w.Write([]byte("abc"))
		testutil.AssertErrorIs(t, err, io.ErrClosedPipe)
	})
}

func TestWriterWriteContext(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	t.Run("resolved future wins over done context", func(t *testing.T) {
		h := container.NewWriter[byte]()
		defer h.Close()
		w := streams.NewWriter[byte](h)

		n, err := w.WriteContext(canceled, []byte("abc"))
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, n, 3)
	})

	t.Run("pending write abandoned", func(t *testing.T) {
		future, resolve := promise.Deferred[int]()
		h := container.NewWriter[byte]()
		defer h.Close()
		w := streams.NewWriter[byte](&pendingWriteBuffer{Buffer: h, future: future})

		n, err := w.WriteContext(canceled, []byte("abc"))
		testutil.AssertErrorIs(t, err, context.Canceled)
		testutil.AssertEqual(t, n, 0)
		resolve(3, nil)
	})
}

func TestWriterAdd(t *testing.T) {
	h := container.NewWriter[int]()
	defer h.Close()
	w := streams.NewWriter[int](h)

	testutil.AssertNoError(t, w.Add(4))
	testutil.AssertNoError(t, w.Add(2))
	testutil.AssertSliceEqual(t, h.Collection(), []int{4, 2})

	testutil.AssertNoError(t, h.CloseWrite())
	testutil.AssertErrorIs(t, w.Add(7), io.ErrClosedPipe)
}

func TestWriterWriteAsync(t *testing.T) {
	h := container.NewWriter[byte]()
	defer h.Close()
	w := streams.NewWriter[byte](h)

	future := w.WriteAsync([]byte("abc"))
	testutil.AssertEqual(t, future.Ready(), true)

	n, err := future.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 3)

	testutil.AssertNoError(t, w.Close())
	_, err = w.WriteAsync([]byte("x")).Get()
	testutil.AssertErrorIs(t, err, streams.ErrWriterClosed)
}

func TestWriterFlush(t *testing.T) {
	h := container.NewWriter[byte]()
	defer h.Close()
	w := streams.NewWriter[byte](h)

	_, err := w.Write([]byte("durable"))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, w.Flush(context.Background()))

	testutil.AssertNoError(t, w.Close())
	testutil.AssertErrorIs(t, w.Flush(context.Background()), streams.ErrWriterClosed)
}

func TestWriterSeekOverwrite(t *testing.T) {
	h := container.NewWriter[byte]()
	defer h.Close()
	w := streams.NewWriter[byte](h)

	_, err := w.Write([]byte("abc"))
	testutil.AssertNoError(t, err)

	pos, err := w.Seek(0, io.SeekStart)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, pos, int64(0))

	_, err = w.Write([]byte("x"))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, h.Collection(), []byte("xbc"))

	_, err = w.Seek(-1, io.SeekStart)
	testutil.AssertErrorIs(t, err, streambuf.ErrOutOfRange)
}

func TestWriterClose(t *testing.T) {
	h := container.NewWriter[byte]()
	w := streams.NewOwnedWriter[byte](h)

	_, err := w.Write([]byte("kept"))
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, w.Close())
	testutil.AssertNoError(t, w.Close())
	testutil.AssertEqual(t, h.IsOpen(), false)

	// The collection survives the buffer's close.
	testutil.AssertSliceEqual(t, h.Collection(), []byte("kept"))
}
