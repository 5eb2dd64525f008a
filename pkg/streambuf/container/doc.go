/*
Package container implements in-memory stream buffers backed by element
slices, with shared handles for passing one buffer between producers and
consumers.

A buffer owns its storage and tracks two positions: the cursor, where the
next operation applies, and the committed size, the length of meaningful
data. Storage only grows. Every operation completes immediately; slice
operations still report through futures so the buffers satisfy the
streambuf contract.

# Quick Start

Writing:

	h := container.NewWriter[byte]()
	h.Write([]byte("hello ")).Get()
	h.Write([]byte("world")).Get()

	data := h.Collection() // []byte("hello world")

Reading:

	r := container.NewReader([]int{1, 2, 3, 4, 5})

	buf := make([]int, 2)
	n, _ := r.Read(buf).Get() // n == 2, buf == [1 2]
	r.Available()             // 3

# Handles

Handles are the unit of sharing. Clone hands the same buffer to another
holder; the buffer closes when the last handle closes:

	w := container.NewWriter[byte]()
	other := w.Clone()

	w.Close()     // buffer still open, other holds a reference
	other.Close() // buffer now closed

# Configuration

NewWithConfig validates its input and is the only constructor that can
fail:

	h, err := container.NewWithConfig(container.Config[byte]{
		Mode:     streambuf.ModeRead,
		Collection: data,
	})

# Seeking

Read buffers seek within their committed data. Write buffers seek
anywhere forward, committing a zero-valued gap:

	w := container.NewWriter[byte]()
	w.Write([]byte{0xA, 0xB}).Get()
	w.Seek(5, io.SeekStart) // storage is now 5 bytes, positions 2-4 zero
	w.Write([]byte{0xC}).Get()
	// Collection() == [A B 0 0 0 C]

# Zero-Copy Transfers

Acquire/Release expose committed data without copying; Alloc/Commit
reserve writable storage filled in place:

	if win, ok := r.Acquire(); ok && len(win) > 0 {
		consume(win)
		r.Release(len(win))
	}

	dst := w.Alloc(16)
	n := fill(dst)
	w.Commit(n)

Raw windows alias storage and are invalidated by the next mutating call;
AcquireView and AllocView return index-addressed views that stay valid
across growth.

# Element Operations

Add, Next, Current and Unget move single elements synchronously, reporting
end of stream as io.EOF and rejected writes as io.ErrClosedPipe.

# Concurrency

Buffers and handles do not serialize operations. Clone/Close reference
counting is atomic; everything else needs a single driving goroutine or a
streambuf.Synchronize wrapper.
*/
package container
