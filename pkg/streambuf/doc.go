/*
Package streambuf defines the operation contract for gobuf's stream buffers
and the wrappers that layer concerns on top of any implementation.

A stream buffer is a cursor-addressed window over a backing store. Each
buffer operates in exactly one direction: a read buffer replays an existing
collection, a write buffer grows one. Slice operations report completion
through promise futures so in-memory and remote-backed buffers share one
surface; in-memory buffers resolve their futures before returning.

# Quick Start

	h := container.NewWriter[byte]()

	n, _ := h.Write([]byte("payload")).Get()
	fmt.Println(n) // 7

	r := container.NewReader(h.Collection())
	data := make([]byte, 7)
	n, _ = r.Read(data).Get()

# The Contract

Buffer[T] is what stream facades and copy helpers consume. Implementations
in this module:

  - container.Buffer / container.Handle: in-memory, collection-backed
  - redisbuf.Buffer: backed by a Redis string key
  - Guarded: mutex wrapper over any Buffer
  - Instrumented: Prometheus metrics wrapper over any Buffer

# End of Stream

Unreadable and unwritable directions are encoded in counts, not errors.
A read future resolving to 0 means "nothing available yet" while CanRead
is true, and end of stream once it is false. Seek failures return
ErrOutOfRange, which wraps io.EOF.

# Modes

Mode is a checked tag, not a bitmask. Constructors reject values other
than ModeRead and ModeWrite with a validation error wrapping
ErrInvalidConfiguration:

	_, err := container.NewWithConfig(container.Config[byte]{
		Mode: streambuf.ModeRead | streambuf.ModeWrite, // not a defined mode
	})
	// err unwraps to errors.ErrInvalidConfiguration

# Synchronization

In-memory buffers perform no internal locking; callers serialize access.
To share one across goroutines, wrap it:

	shared := streambuf.Synchronize[byte](h)

# Metrics

	buf := streambuf.WithMetrics[byte](h, "upload_body", metrics.DefaultConfig())

Operation counts, element throughput, failures, and the available gauge
are published through pkg/metrics.
*/
package streambuf
