package streams

import (
	"io"

	"github.com/valyala/bytebufferpool"

	"github.com/vnykmshr/gobuf/pkg/metrics"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
)

// copyStageSize is the staging window for Copy and CopyFrom.
const copyStageSize = 32 * 1024

// Label values for the copy-bytes metric.
const (
	streamDrain = "drain"
	streamFill  = "fill"
)

// stageWindow borrows a pooled staging slice of copyStageSize bytes. The
// returned release function hands the storage back to the pool.
func stageWindow() ([]byte, func()) {
	stage := bytebufferpool.Get()
	if cap(stage.B) < copyStageSize {
		stage.B = make([]byte, copyStageSize)
	}
	window := stage.B[:copyStageSize]
	return window, func() {
		stage.B = window
		bytebufferpool.Put(stage)
	}
}

// Copy drains src into dst through a pooled staging window and returns the
// number of bytes written. It stops at the end of src's committed data (a
// zero-count read), on a read failure, or on the first write error. Bytes
// moved are counted on the gobuf_streams_copy_bytes_total metric.
func Copy(dst io.Writer, src streambuf.Buffer[byte]) (int64, error) {
	window, release := stageWindow()
	defer release()

	var written int64
	for {
		n, err := src.Read(window).Get()
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, nil
		}

		m, werr := dst.Write(window[:n])
		written += int64(m)
		metrics.DefaultRegistry.CopyBytes.WithLabelValues(streamDrain).Add(float64(m))
		if werr != nil {
			return written, werr
		}
		if m < n {
			return written, io.ErrShortWrite
		}
	}
}

// CopyFrom fills dst from src through a pooled staging window until src
// reports io.EOF and returns the number of bytes written.
func CopyFrom(dst streambuf.Buffer[byte], src io.Reader) (int64, error) {
	window, release := stageWindow()
	defer release()

	var written int64
	for {
		n, rerr := src.Read(window)
		if n > 0 {
			m, werr := dst.Write(window[:n]).Get()
			written += int64(m)
			metrics.DefaultRegistry.CopyBytes.WithLabelValues(streamFill).Add(float64(m))
			if werr != nil {
				return written, werr
			}
			if m < n {
				if !dst.CanWrite() {
					return written, io.ErrClosedPipe
				}
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
