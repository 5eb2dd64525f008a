/*
Package streams provides reader and writer facades over stream buffers,
plus bridges to the standard io interfaces.

The facades consume only the streambuf.Buffer contract, so they work the
same over in-memory and Redis-backed buffers. Reader and Writer flatten
the buffer's future-based operations into plain (count, error) calls,
keep async variants for callers that want the futures, and add the small
stream conveniences: element-at-a-time access, skipping, ReadToEnd.

# Quick Start

	r := streams.OpenString("hello world")
	defer r.Close()

	word := make([]byte, 5)
	r.Read(word) // "hello"
	r.Skip(1)
	rest, _ := r.ReadToEnd(context.Background()) // "world"

Producing is symmetric. OpenWriter returns the writer together with a
handle for collecting what was written:

	w, h := streams.OpenWriter[byte]()
	defer h.Close()

	w.Write([]byte("collected"))
	w.Close()
	data := h.Collection()

# End of Stream

Reader.Read returns io.EOF once the buffer's read direction is closed and
drained. A zero count with a nil error means the buffer is open with
nothing available yet; remote-backed buffers can produce this while a
producer is still filling the key.

# Standard io

NewIOReader and NewIOWriter adapt byte buffers for code that wants
io.ReadSeekCloser or io.WriteCloser. The bridges bind end of stream to
the drained state rather than the closed state, so io.ReadAll and
io.Copy terminate without the buffer having to be closed first. Copy and
CopyFrom move bytes between buffers and standard io endpoints through a
pooled staging window.
*/
package streams
