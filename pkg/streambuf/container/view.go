package container

// View is an index-addressed window into a buffer. A view names a range of
// positions rather than aliasing the storage array, so it stays meaningful
// when growth relocates the backing array; Elems resolves against the live
// storage at call time.
//
// Views follow the buffer's locking rules: they are not a way to read a
// buffer that another goroutine is mutating.
type View[T any] struct {
	buf *Buffer[T]
	off int
	n   int
}

// IsZero reports whether the view names no window.
func (v View[T]) IsZero() bool {
	return v.buf == nil
}

// Len returns the window length in elements.
func (v View[T]) Len() int {
	return v.n
}

// Offset returns the window's starting position in the buffer.
func (v View[T]) Offset() int {
	return v.off
}

// Elems resolves the window against the buffer's current storage. The
// returned slice aliases the storage; storage length never shrinks, so the
// window range is always in bounds.
func (v View[T]) Elems() []T {
	if v.buf == nil || v.n == 0 {
		return nil
	}
	return v.buf.data[v.off : v.off+v.n]
}
