package streams

import (
	"io"

	"github.com/vnykmshr/gobuf/pkg/streambuf"
)

// ioReader adapts a byte buffer to the standard io interfaces.
type ioReader struct {
	buf streambuf.Buffer[byte]
}

// NewIOReader adapts buf for standard-library consumers. Unlike Reader,
// the bridge reports io.EOF for any zero-count read, even while the buffer
// is open, so loops like io.Copy and io.ReadAll terminate once the
// committed data is drained. Close closes the buffer's read direction.
func NewIOReader(buf streambuf.Buffer[byte]) io.ReadSeekCloser {
	return &ioReader{buf: buf}
}

func (r *ioReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.buf.Read(p).Get()
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (r *ioReader) Seek(offset int64, whence int) (int64, error) {
	return r.buf.Seek(offset, whence)
}

func (r *ioReader) Close() error {
	return r.buf.CloseRead()
}

// ioWriter adapts a byte buffer to io.WriteCloser.
type ioWriter struct {
	buf streambuf.Buffer[byte]
}

// NewIOWriter adapts buf for standard-library producers. Close closes the
// buffer's write direction, ending the stream for readers.
func NewIOWriter(buf streambuf.Buffer[byte]) io.WriteCloser {
	return &ioWriter{buf: buf}
}

func (w *ioWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := w.buf.Write(p).Get()
	if err != nil {
		return n, err
	}
	if n < len(p) {
		if !w.buf.CanWrite() {
			return n, io.ErrClosedPipe
		}
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (w *ioWriter) Close() error {
	return w.buf.CloseWrite()
}
