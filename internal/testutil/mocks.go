package testutil

import (
	"bytes"
	"errors"
	"sync"

	"github.com/vnykmshr/gobuf/pkg/common/promise"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
)

// MockWriter implements io.Writer with controllable failures.
// Bridge and copy tests use it to verify error propagation.
type MockWriter struct {
	mu          sync.Mutex
	buf         bytes.Buffer
	writeCount  int
	errorOnNth  int
	alwaysError error
}

// NewMockWriter creates a new MockWriter.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write appends p to the internal buffer unless a failure is configured.
func (mw *MockWriter) Write(p []byte) (int, error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	mw.writeCount++
	if mw.alwaysError != nil {
		return 0, mw.alwaysError
	}
	if mw.errorOnNth > 0 && mw.writeCount == mw.errorOnNth {
		return 0, errors.New("simulated error")
	}
	return mw.buf.Write(p)
}

// String returns the current buffer contents.
func (mw *MockWriter) String() string {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.buf.String()
}

// Len returns the current buffer length.
func (mw *MockWriter) Len() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.buf.Len()
}

// WriteCount returns the number of Write calls.
func (mw *MockWriter) WriteCount() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.writeCount
}

// SetErrorOnNth configures the writer to fail the nth write.
func (mw *MockWriter) SetErrorOnNth(n int) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.errorOnNth = n
}

// SetAlwaysError configures the writer to always return err.
func (mw *MockWriter) SetAlwaysError(err error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.alwaysError = err
}

// ScriptedBuffer is a read-mode streambuf.Buffer whose reads return
// predetermined chunks, including empty "nothing available yet" results
// that in-memory buffers never produce. Facade and bridge tests use it to
// exercise retry paths that only appear with remote-backed buffers.
type ScriptedBuffer[T any] struct {
	mu     sync.Mutex
	state  streambuf.State
	chunks [][]T
}

// NewScriptedBuffer creates a read-mode buffer that serves the given
// chunks in order, one chunk per Read call. A nil chunk yields a zero
// count while the buffer remains open.
func NewScriptedBuffer[T any](chunks ...[]T) *ScriptedBuffer[T] {
	return &ScriptedBuffer[T]{
		state:  streambuf.NewState(streambuf.ModeRead),
		chunks: chunks,
	}
}

func (s *ScriptedBuffer[T]) Mode() streambuf.Mode { return s.state.Mode() }

func (s *ScriptedBuffer[T]) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsOpen()
}

func (s *ScriptedBuffer[T]) CanRead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CanRead()
}

func (s *ScriptedBuffer[T]) CanWrite() bool { return false }

func (s *ScriptedBuffer[T]) CanSeek() bool { return false }

// Available returns the length of the next scripted chunk.
func (s *ScriptedBuffer[T]) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.chunks) == 0 {
		return 0
	}
	return len(s.chunks[0])
}

func (s *ScriptedBuffer[T]) Write(p []T) *promise.Future[int] {
	return promise.Resolved(0)
}

func (s *ScriptedBuffer[T]) Read(p []T) *promise.Future[int] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanRead() || len(s.chunks) == 0 {
		return promise.Resolved(0)
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return promise.Resolved(copy(p, chunk))
}

func (s *ScriptedBuffer[T]) Peek(p []T) *promise.Future[int] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanRead() || len(s.chunks) == 0 {
		return promise.Resolved(0)
	}
	return promise.Resolved(copy(p, s.chunks[0]))
}

func (s *ScriptedBuffer[T]) Flush() *promise.Future[bool] {
	return promise.Resolved(true)
}

func (s *ScriptedBuffer[T]) Acquire() ([]T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsOpen() {
		return nil, true
	}
	return nil, false
}

func (s *ScriptedBuffer[T]) Release(n int) {}

func (s *ScriptedBuffer[T]) Alloc(n int) []T { return nil }

func (s *ScriptedBuffer[T]) Commit(n int) {}

func (s *ScriptedBuffer[T]) Seek(offset int64, whence int) (int64, error) {
	return 0, streambuf.ErrOutOfRange
}

func (s *ScriptedBuffer[T]) CloseRead() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CloseRead()
}

func (s *ScriptedBuffer[T]) CloseWrite() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CloseWrite()
}

func (s *ScriptedBuffer[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Close()
}

var _ streambuf.Buffer[byte] = (*ScriptedBuffer[byte])(nil)
