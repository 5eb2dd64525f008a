// Package redisbuf provides a stream buffer backed by a Redis string key.
//
// It implements the same operation contract as the in-memory container
// buffer, so readers, writers and copy helpers built against
// streambuf.Buffer work unchanged against Redis-resident data. Where the
// container buffer resolves every future immediately, redisbuf futures
// resolve once the Redis round trip completes, which makes it the
// reference implementation for consumers that must handle genuinely
// asynchronous completion.
//
// # Overview
//
// Buffer operations map directly onto Redis string commands:
//
//   - Write, Commit: SETRANGE at the cursor
//   - Read, Peek:    GETRANGE at the cursor
//   - Size, Refresh: STRLEN
//   - CloseWrite:    EXPIRE when a KeyTTL is configured
//
// SETRANGE zero-pads writes past the current end of the value, so forward
// write seeks leave the same zero-valued gaps as the in-memory buffer.
//
// # Quick Start
//
// Producing into a key:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	w, err := redisbuf.New(redisbuf.Config{
//		Redis: rdb,
//		Key:   "stream:events",
//		Mode:  streambuf.ModeWrite,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer w.Close()
//
//	w.Write([]byte("payload"))
//	if ok, err := w.Flush().Get(); !ok {
//		log.Fatal(err)
//	}
//
// Consuming from another process:
//
//	r, err := redisbuf.New(redisbuf.Config{
//		Redis: rdb,
//		Key:   "stream:events",
//		Mode:  streambuf.ModeRead,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	p := make([]byte, 64)
//	n, err := r.Read(p).Get()
//
// # Advisory Size
//
// Size and Available report the committed size last observed on this
// buffer, not the live key length: another process may have appended
// since. Refresh consults STRLEN and raises the advisory size; a Read
// past the advisory size simply asks Redis and returns what exists.
//
// # Windows
//
// Acquire never returns a window: remote bytes cannot be aliased as a
// slice. While the buffer is open it returns (nil, false), the retry
// signal, and (nil, true) once closed. Alloc stages writes in a pooled
// local buffer instead; Commit ships the staged bytes in one SETRANGE.
//
// # Failures
//
// Operation failures resolve the corresponding future with an
// OperationError naming the Redis command; deadline failures wrap
// ErrTimeout so errors.Is classifies them as retryable. Fire-and-forget
// paths (Commit) surface failures through Err and through Flush, which
// resolves to (false, err) when any prior operation failed.
//
// # Key Lifecycle
//
// The key does not need to exist: reading a missing key yields zero
// bytes, writing creates it. With Config.KeyTTL set, closing the write
// direction applies EXPIRE so abandoned buffers age out of Redis.
package redisbuf
