package tracelog

import "sync"

// pool.go reuses event structs and scratch buffers across a run, the same
// idiom the teacher's WAL used (pkg/wal/pool.go) to keep the hot write path
// off the allocator. The lockless radix variant (pkg/radix/lockless.go)
// uses the identical sync.Pool pattern for its speculative node reclaim.

var (
	eventPool = sync.Pool{
		New: func() interface{} {
			return &Event{Payload: make([]byte, 0, 64)}
		},
	}

	bufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 0, 256)
			return &buf
		},
	}
)

// AcquireEvent returns a reusable *Event with a zeroed header.
func AcquireEvent() *Event {
	return eventPool.Get().(*Event)
}

// ReleaseEvent returns e to the pool. Callers must not touch e afterward.
func ReleaseEvent(e *Event) {
	e.Header = Header{}
	e.Payload = e.Payload[:0]
	eventPool.Put(e)
}

// AcquireBuffer returns a reusable scratch buffer. Event.WriteTo (event.go)
// uses it to encode each event's header, so the writer's hot path reuses
// one buffer per pool slot instead of allocating a header-sized array on
// every call.
func AcquireBuffer() *[]byte {
	return bufferPool.Get().(*[]byte)
}

// ReleaseBuffer returns buf to the pool.
func ReleaseBuffer(buf *[]byte) {
	*buf = (*buf)[:0]
	bufferPool.Put(buf)
}
