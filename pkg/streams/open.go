package streams

import (
	"github.com/vnykmshr/gobuf/pkg/streambuf/container"
)

// OpenSlice returns a Reader replaying data from the start. The reader owns
// the backing buffer and Close releases it; data must not be used by the
// caller afterwards.
func OpenSlice[T any](data []T) *Reader[T] {
	return NewOwnedReader[T](container.NewReader(data))
}

// OpenBytes returns a Reader replaying data from the start. See OpenSlice
// for ownership.
func OpenBytes(data []byte) *Reader[byte] {
	return OpenSlice(data)
}

// OpenString returns a Reader replaying a copy of s.
func OpenString(s string) *Reader[byte] {
	return OpenSlice([]byte(s))
}

// OpenWriter returns a Writer over a fresh in-memory buffer together with a
// handle to it. The writer owns its own handle reference: closing it leaves
// the returned handle usable for reading the collected elements.
func OpenWriter[T any]() (*Writer[T], *container.Handle[T]) {
	h := container.NewWriter[T]()
	return NewOwnedWriter[T](h.Clone()), h
}
