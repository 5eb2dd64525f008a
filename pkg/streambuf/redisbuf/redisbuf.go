package redisbuf

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/valyala/bytebufferpool"

	gbcontext "github.com/vnykmshr/gobuf/pkg/common/context"
	gberrors "github.com/vnykmshr/gobuf/pkg/common/errors"
	"github.com/vnykmshr/gobuf/pkg/common/promise"
	"github.com/vnykmshr/gobuf/pkg/common/validation"
	"github.com/vnykmshr/gobuf/pkg/metrics"
	"github.com/vnykmshr/gobuf/pkg/streambuf"
)

const backend = "redis"

// Config holds configuration for a Redis-backed buffer.
type Config struct {
	// Redis client used for all operations. Required.
	Redis redis.UniversalClient

	// Key is the Redis string key holding the buffer contents. Required.
	Key string

	// Mode selects the buffer direction. It must be exactly ModeRead or
	// ModeWrite.
	Mode streambuf.Mode

	// OpTimeout bounds each Redis operation (defaults to 500ms).
	OpTimeout time.Duration

	// KeyTTL, when positive, is applied to the key when the write
	// direction closes. Zero leaves the key without expiry.
	KeyTTL time.Duration

	// Metrics enables remote operation metrics.
	Metrics metrics.Config
}

// DefaultConfig returns a default Redis buffer configuration.
func DefaultConfig() Config {
	return Config{
		Mode:      streambuf.ModeWrite,
		OpTimeout: 500 * time.Millisecond,
	}
}

// Buffer is a stream buffer backed by a Redis string key. Writes map to
// SETRANGE at the cursor, reads to GETRANGE, the committed size to STRLEN.
// Redis zero-pads writes past the current end, giving forward write seeks
// the same zero-valued gaps as the in-memory buffer.
//
// Unlike the in-memory buffer, operations genuinely complete later:
// futures resolve from goroutines once the Redis call returns. The buffer
// serializes its cursor state internally, so handing one to multiple
// goroutines is safe, but interleaved reads observe first-issued-first
// positioned windows only when each future is awaited before the next
// read is issued.
//
// Size and Available are advisory: they reflect the size last observed,
// not concurrent writers on other connections. Refresh consults STRLEN.
type Buffer struct {
	mu    sync.Mutex
	state streambuf.State

	rdb       redis.UniversalClient
	key       string
	opTimeout time.Duration
	keyTTL    time.Duration

	pos  int64
	size int64

	staged  *bytebufferpool.ByteBuffer
	pending []*promise.Future[int]
	lastErr error

	registry *metrics.Registry
	recordOn bool
}

var _ streambuf.Buffer[byte] = (*Buffer)(nil)

// New creates a Redis-backed buffer from config. It consults STRLEN once
// to position the cursor: write buffers append after the current value,
// read buffers replay it from the start. The key does not need to exist.
func New(config Config) (*Buffer, error) {
	if err := validation.ValidateNotNil("redisbuf", "redis", config.Redis); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty("redisbuf", "key", config.Key); err != nil {
		return nil, err
	}
	if err := streambuf.ValidateMode("redisbuf", config.Mode); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("redisbuf", "op_timeout", config.OpTimeout); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegativeDuration("redisbuf", "key_ttl", config.KeyTTL); err != nil {
		return nil, err
	}

	if config.OpTimeout == 0 {
		config.OpTimeout = 500 * time.Millisecond
	}

	b := &Buffer{
		state:     streambuf.NewState(config.Mode),
		rdb:       config.Redis,
		key:       config.Key,
		opTimeout: config.OpTimeout,
		keyTTL:    config.KeyTTL,
	}
	if config.Metrics.Enabled {
		b.registry = registryFor(config.Metrics)
		b.recordOn = true
	}

	size, err := b.strLen(context.Background())
	if err != nil {
		return nil, err
	}
	b.size = size
	if config.Mode == streambuf.ModeWrite {
		b.pos = size
	}
	return b, nil
}

func registryFor(config metrics.Config) *metrics.Registry {
	if config.Registry != nil {
		return metrics.NewRegistry(config.Registry)
	}
	return metrics.DefaultRegistry
}

// opContext derives the bounded context for one Redis operation.
func (b *Buffer) opContext(parent context.Context) (context.Context, context.CancelFunc) {
	return gbcontext.WithTimeoutOrCancel(parent, b.opTimeout)
}

// wrapOpErr converts a Redis failure into an OperationError on this
// module. Deadline failures additionally carry ErrTimeout so callers can
// classify them as retryable.
func wrapOpErr(op, key string, err error) error {
	cause := err
	if errors.Is(err, context.DeadlineExceeded) {
		cause = gberrors.ErrTimeout
	}
	return gberrors.NewOperationError("redisbuf", op, cause).WithContext("key " + key)
}

func (b *Buffer) record(op string, start time.Time, err error) {
	if !b.recordOn {
		return
	}
	b.registry.RemoteOps.WithLabelValues(backend, op).Inc()
	b.registry.RemoteOpDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
	if err != nil {
		b.registry.RemoteErrors.WithLabelValues(backend, op).Inc()
	}
}

func (b *Buffer) recordStaged(n int) {
	if b.recordOn {
		b.registry.RemoteStagedBytes.WithLabelValues(backend, b.key).Set(float64(n))
	}
}

// strLen fetches the current committed size.
func (b *Buffer) strLen(parent context.Context) (int64, error) {
	ctx, cancel := b.opContext(parent)
	defer cancel()

	start := time.Now()
	size, err := b.rdb.StrLen(ctx, b.key).Result()
	b.record("strlen", start, err)
	if err != nil {
		return 0, wrapOpErr("strlen", b.key, err)
	}
	return size, nil
}

// track registers an in-flight future so Flush can await it, compacting
// already resolved entries. Callers hold mu.
func (b *Buffer) track(f *promise.Future[int]) {
	live := b.pending[:0]
	for _, p := range b.pending {
		if !p.Ready() {
			live = append(live, p)
		}
	}
	b.pending = append(live, f)
}

func (b *Buffer) fail(err error) {
	b.mu.Lock()
	b.lastErr = err
	b.mu.Unlock()
}

// Mode returns the buffer's direction.
func (b *Buffer) Mode() streambuf.Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Mode()
}

// IsOpen reports whether at least one direction is still open.
func (b *Buffer) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.IsOpen()
}

// CanRead reports whether the read direction is open.
func (b *Buffer) CanRead() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.CanRead()
}

// CanWrite reports whether the write direction is open.
func (b *Buffer) CanWrite() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.CanWrite()
}

// CanSeek reports whether Seek is usable; it tracks IsOpen.
func (b *Buffer) CanSeek() bool {
	return b.IsOpen()
}

// Key returns the Redis key the buffer operates on.
func (b *Buffer) Key() string {
	return b.key
}

// Pos returns the cursor position.
func (b *Buffer) Pos() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pos
}

// Size returns the advisory committed size.
func (b *Buffer) Size() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Available returns the advisory count of committed elements after the
// cursor. It does not consult Redis; use Refresh for a live value.
func (b *Buffer) Available() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int(b.size - b.pos)
}

// Refresh updates the advisory size from STRLEN and returns the resulting
// Available value.
func (b *Buffer) Refresh(ctx context.Context) (int, error) {
	size, err := b.strLen(ctx)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if size > b.size {
		b.size = size
	}
	return int(b.size - b.pos), nil
}

// Err returns the most recent asynchronous operation failure, if any.
func (b *Buffer) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Write ships p to SETRANGE at the cursor and advances the cursor
// immediately, so consecutive writes land at consecutive offsets. The
// future resolves to len(p) once Redis acknowledges, to 0 with an
// OperationError on failure, and to 0 immediately when the buffer is not
// writable.
func (b *Buffer) Write(p []byte) *promise.Future[int] {
	b.mu.Lock()
	if !b.state.CanWrite() || len(p) == 0 {
		b.mu.Unlock()
		return promise.Resolved(0)
	}

	off := b.pos
	b.pos += int64(len(p))
	if b.pos > b.size {
		b.size = b.pos
	}

	// The string conversion snapshots p, so the caller may reuse it
	// before the future resolves.
	value := string(p)
	future, resolve := promise.Deferred[int]()
	b.track(future)
	b.mu.Unlock()

	go b.ship(off, value, len(p), resolve)
	return future
}

// ship performs one SETRANGE and resolves the associated future.
func (b *Buffer) ship(off int64, value string, n int, resolve promise.ResolveFunc[int]) {
	ctx, cancel := b.opContext(context.Background())
	defer cancel()

	start := time.Now()
	err := b.rdb.SetRange(ctx, b.key, off, value).Err()
	b.record("setrange", start, err)
	if err != nil {
		werr := wrapOpErr("setrange", b.key, err)
		b.fail(werr)
		resolve(0, werr)
		return
	}
	resolve(n, nil)
}

// Read fetches up to len(p) bytes from the cursor via GETRANGE. The cursor
// advances by the count actually read when the future resolves; await the
// future before issuing the next read.
func (b *Buffer) Read(p []byte) *promise.Future[int] {
	return b.fetch(p, true)
}

// Peek is Read without advancing the cursor.
func (b *Buffer) Peek(p []byte) *promise.Future[int] {
	return b.fetch(p, false)
}

func (b *Buffer) fetch(p []byte, advance bool) *promise.Future[int] {
	b.mu.Lock()
	if !b.state.CanRead() || len(p) == 0 {
		b.mu.Unlock()
		return promise.Resolved(0)
	}
	off := b.pos
	future, resolve := promise.Deferred[int]()
	b.track(future)
	b.mu.Unlock()

	go func() {
		ctx, cancel := b.opContext(context.Background())
		defer cancel()

		start := time.Now()
		val, err := b.rdb.GetRange(ctx, b.key, off, off+int64(len(p))-1).Result()
		b.record("getrange", start, err)
		if err != nil {
			werr := wrapOpErr("getrange", b.key, err)
			b.fail(werr)
			resolve(0, werr)
			return
		}

		n := copy(p, val)
		b.mu.Lock()
		if advance {
			b.pos = off + int64(n)
		}
		if end := off + int64(len(val)); end > b.size {
			b.size = end
		}
		b.mu.Unlock()
		resolve(n, nil)
	}()
	return future
}

// Flush resolves once every operation issued so far has completed. It
// resolves to true when all of them succeeded and to (false, err) when
// any failed, err being the most recent failure.
func (b *Buffer) Flush() *promise.Future[bool] {
	b.mu.Lock()
	waitFor := make([]*promise.Future[int], len(b.pending))
	copy(waitFor, b.pending)
	b.mu.Unlock()

	return promise.Go(func() (bool, error) {
		for _, f := range waitFor {
			_, _ = f.Get()
		}
		if err := b.Err(); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Acquire never exposes windows: remote bytes are not addressable as a
// slice. It returns (nil, false) while the buffer is open, the retry
// signal, and (nil, true) once it is closed.
func (b *Buffer) Acquire() ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.state.IsOpen() {
		return nil, true
	}
	return nil, false
}

// Release skips the cursor past n elements, clamped to the advisory
// available count.
func (b *Buffer) Release(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 || !b.state.CanRead() {
		return
	}
	if avail := b.size - b.pos; int64(n) > avail {
		n = int(avail)
	}
	b.pos += int64(n)
}

// Alloc returns an n-byte staging window drawn from a buffer pool. The
// window is local until Commit ships it; a second Alloc before Commit
// discards the previous staging. Returns nil when the buffer is not
// writable or n is not positive.
func (b *Buffer) Alloc(n int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.state.CanWrite() || n <= 0 {
		return nil
	}

	if b.staged == nil {
		b.staged = bytebufferpool.Get()
	}
	b.staged.Reset()
	if cap(b.staged.B) < n {
		b.staged.B = append(b.staged.B[:0], make([]byte, n)...)
	} else {
		b.staged.B = b.staged.B[:n]
	}
	clear(b.staged.B)
	b.recordStaged(n)
	return b.staged.B
}

// Commit ships the first n staged bytes to SETRANGE at the cursor and
// advances the cursor immediately. Counts beyond the staged window are
// clamped; with nothing staged Commit is a no-op. Failures surface
// through Err and Flush.
func (b *Buffer) Commit(n int) {
	b.mu.Lock()
	if n <= 0 || !b.state.CanWrite() || b.staged == nil {
		b.mu.Unlock()
		return
	}
	if n > len(b.staged.B) {
		n = len(b.staged.B)
	}

	off := b.pos
	b.pos += int64(n)
	if b.pos > b.size {
		b.size = b.pos
	}

	value := string(b.staged.B[:n])
	bytebufferpool.Put(b.staged)
	b.staged = nil
	b.recordStaged(0)

	future, resolve := promise.Deferred[int]()
	b.track(future)
	b.mu.Unlock()

	go b.ship(off, value, n, resolve)
}

// Seek moves the cursor per whence and returns the new position. In read
// mode the bound is the live STRLEN, consulted synchronously; targets
// outside [0, size] return ErrOutOfRange with the cursor unchanged. In
// write mode any non-negative target is accepted; Redis zero-pads the gap
// when the next write lands past the current end.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = b.pos
	case io.SeekEnd:
		base = b.size
	default:
		return b.pos, streambuf.ErrInvalidWhence
	}
	target := base + offset

	switch {
	case b.state.CanRead():
		// Consult the live size so bounded seeks track concurrent
		// writers.
		b.mu.Unlock()
		size, err := b.strLen(context.Background())
		b.mu.Lock()
		if err != nil {
			return b.pos, err
		}
		if size > b.size {
			b.size = size
		}
		// Resolve relative targets against the refreshed state; the
		// cursor may have moved while the lock was released.
		switch whence {
		case io.SeekCurrent:
			target = b.pos + offset
		case io.SeekEnd:
			target = b.size + offset
		}
		if target < 0 || target > b.size {
			return b.pos, streambuf.ErrOutOfRange
		}
		b.pos = target
	case b.state.CanWrite():
		if target < 0 {
			return b.pos, streambuf.ErrOutOfRange
		}
		b.pos = target
		if b.pos > b.size {
			b.size = b.pos
		}
	default:
		return b.pos, streambuf.ErrOutOfRange
	}
	return b.pos, nil
}

// CloseRead closes the read direction.
func (b *Buffer) CloseRead() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.CloseRead()
}

// CloseWrite closes the write direction, discards any uncommitted staging
// and applies the configured KeyTTL.
func (b *Buffer) CloseWrite() error {
	b.mu.Lock()
	wasWritable := b.state.CanWrite()
	err := b.state.CloseWrite()
	b.releaseStagedLocked()
	b.mu.Unlock()

	if err == nil && wasWritable {
		err = b.applyTTL()
	}
	return err
}

// Close closes both directions.
func (b *Buffer) Close() error {
	b.mu.Lock()
	wasWritable := b.state.CanWrite()
	err := b.state.Close()
	b.releaseStagedLocked()
	b.mu.Unlock()

	if err == nil && wasWritable {
		err = b.applyTTL()
	}
	return err
}

func (b *Buffer) releaseStagedLocked() {
	if b.staged != nil {
		bytebufferpool.Put(b.staged)
		b.staged = nil
		b.recordStaged(0)
	}
}

func (b *Buffer) applyTTL() error {
	if b.keyTTL <= 0 {
		return nil
	}
	ctx, cancel := b.opContext(context.Background())
	defer cancel()

	start := time.Now()
	err := b.rdb.Expire(ctx, b.key, b.keyTTL).Err()
	b.record("expire", start, err)
	if err != nil {
		return wrapOpErr("expire", b.key, err)
	}
	return nil
}
