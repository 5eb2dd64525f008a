package streambuf

import (
	"errors"
	"fmt"
	"io"

	gberrors "github.com/vnykmshr/gobuf/pkg/common/errors"
	"github.com/vnykmshr/gobuf/pkg/common/promise"
)

// ErrOutOfRange is returned by Seek when the target position lies outside
// the seekable range. It wraps io.EOF, the end-of-stream sentinel, so
// errors.Is(err, io.EOF) holds for callers that only care about the sentinel.
var ErrOutOfRange = fmt.Errorf("streambuf: position out of range: %w", io.EOF)

// ErrInvalidWhence is returned by Seek for whence values other than
// io.SeekStart, io.SeekCurrent and io.SeekEnd.
var ErrInvalidWhence = errors.New("streambuf: invalid whence")

// Mode selects the single direction a buffer operates in. A buffer either
// reads an existing collection or writes one; it is never both. Combining
// directions is not representable and any other value fails validation.
type Mode uint8

const (
	// ModeRead opens the buffer for reading an existing collection.
	ModeRead Mode = iota + 1

	// ModeWrite opens the buffer for writing.
	ModeWrite
)

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == ModeRead || m == ModeWrite
}

// String returns "read" or "write" for the defined modes.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ValidateMode returns a ValidationError unless m is a defined mode.
func ValidateMode(module string, m Mode) error {
	if !m.Valid() {
		return gberrors.NewValidationError(module, "mode", m, "must be exactly one of read or write").
			WithHint("use ModeRead or ModeWrite")
	}
	return nil
}

// Buffer is the operation contract shared by all stream buffers. Stream
// facades and copy helpers consume this interface only, so container-backed
// and remote-backed buffers are interchangeable behind it.
//
// Slice operations report completion through promise futures even when they
// complete immediately; in-memory buffers return already-resolved futures.
// Failed directions are encoded as zero counts, not errors: a read of 0
// while CanRead is true means "nothing available yet", and end of stream is
// the combination of a zero count with a closed or unreadable buffer.
type Buffer[T any] interface {
	// Mode returns the buffer's direction.
	Mode() Mode

	// IsOpen reports whether at least one direction is still open.
	IsOpen() bool

	// CanRead reports whether the read direction is open.
	CanRead() bool

	// CanWrite reports whether the write direction is open.
	CanWrite() bool

	// CanSeek reports whether Seek is currently usable.
	CanSeek() bool

	// Available returns the number of committed elements after the cursor.
	// Implementations backed by remote storage may return an advisory
	// value from their last known size.
	Available() int

	// Write copies all of p into the buffer at the cursor, growing storage
	// as needed, and advances the cursor. The future resolves to len(p),
	// or to 0 when the buffer is not writable. Writing an empty slice is a
	// successful no-op.
	Write(p []T) *promise.Future[int]

	// Read copies up to len(p) committed elements from the cursor into p
	// and advances the cursor by the count read. The future resolves to
	// the count, 0 when nothing is available or the buffer is unreadable.
	Read(p []T) *promise.Future[int]

	// Peek is Read without advancing the cursor.
	Peek(p []T) *promise.Future[int]

	// Flush resolves to true once previously written data is durable in
	// the backing store. In-memory buffers are always durable and resolve
	// immediately.
	Flush() *promise.Future[bool]

	// Acquire returns a window over committed elements at the cursor
	// without copying. The boolean is false when the caller should retry
	// later (nothing available but the buffer is open, or the
	// implementation cannot expose windows) and true either with a
	// non-empty window or at genuine end of stream. Call Release to
	// consume the window.
	Acquire() ([]T, bool)

	// Release advances the cursor past n elements previously observed
	// through Acquire.
	Release(n int)

	// Alloc grows the buffer and returns a writable window of n elements
	// at the cursor, or nil when the buffer is not writable. The window
	// contents are committed by Commit.
	Alloc(n int) []T

	// Commit publishes n elements written into the window returned by
	// Alloc and advances the cursor past them.
	Commit(n int)

	// Seek moves the cursor per whence (io.SeekStart, io.SeekCurrent,
	// io.SeekEnd) and returns the new position. Read buffers are bounded
	// by the committed size and return ErrOutOfRange, leaving the cursor
	// in place, when the target lies outside it; write buffers grow to
	// any non-negative target.
	Seek(offset int64, whence int) (int64, error)

	// CloseRead closes the read direction for every holder of the buffer.
	// Closing an already closed direction is a no-op.
	CloseRead() error

	// CloseWrite closes the write direction for every holder of the buffer.
	CloseWrite() error

	// Close closes both directions.
	Close() error
}

// State tracks per-direction open/closed state for buffer implementations.
// Directions move from open to closed exactly once; re-closing is a no-op.
// State performs no locking of its own.
type State struct {
	mode     Mode
	readable bool
	writable bool
}

// NewState returns a State with the direction selected by mode open.
func NewState(mode Mode) State {
	return State{
		mode:     mode,
		readable: mode == ModeRead,
		writable: mode == ModeWrite,
	}
}

// Mode returns the direction the state was created with.
func (s *State) Mode() Mode {
	return s.mode
}

// CanRead reports whether the read direction is open.
func (s *State) CanRead() bool {
	return s.readable
}

// CanWrite reports whether the write direction is open.
func (s *State) CanWrite() bool {
	return s.writable
}

// IsOpen reports whether either direction is open.
func (s *State) IsOpen() bool {
	return s.readable || s.writable
}

// CloseRead closes the read direction.
func (s *State) CloseRead() error {
	s.readable = false
	return nil
}

// CloseWrite closes the write direction.
func (s *State) CloseWrite() error {
	s.writable = false
	return nil
}

// Close closes both directions.
func (s *State) Close() error {
	s.readable = false
	s.writable = false
	return nil
}
