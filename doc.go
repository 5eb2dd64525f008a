/*
Package gobuf provides in-memory and Redis-backed stream buffers with a
shared cursor/commit contract, stream facades over them, and bridges to
the standard io interfaces.

Stream Buffers (pkg/streambuf):
  - container: In-memory, collection-backed buffers behind refcounted handles
  - redisbuf: Buffers backed by a Redis string key
  - Guarded / Instrumented: Mutex and Prometheus wrappers over any buffer

Stream Facades (pkg/streams):
  - Reader / Writer: Synchronous facades over any buffer
  - NewIOReader / NewIOWriter: Standard io bridges
  - Copy / CopyFrom: Pooled staging copies between buffers and io endpoints

Shared Infrastructure (pkg/common, pkg/metrics):
  - promise: Write-once futures used by all slice operations
  - errors / validation: Configuration and operation error types
  - metrics: Prometheus registry for buffer and remote-operation metrics

Example usage:

	import (
		"github.com/vnykmshr/gobuf/pkg/streambuf/container"
		"github.com/vnykmshr/gobuf/pkg/streams"
	)

	w, h := streams.OpenWriter[byte]()
	w.Write([]byte("collected"))
	w.Close()

	r := container.NewReader(h.Collection())
	data := make([]byte, 9)
	r.Read(data).Get()
*/
package gobuf
