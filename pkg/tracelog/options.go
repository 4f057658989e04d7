package tracelog

import "time"

// SyncPolicy selects how aggressively the writer fsyncs the trace file.
// Carried over from the teacher's WAL even though a harness run's trace is
// small and short-lived, because the corpus's durability knobs are the
// idiom this package's readers expect to see on anything shaped like a log
// writer.
type SyncPolicy int

const (
	// SyncEveryWrite fsyncs after every event. Safest, slowest.
	SyncEveryWrite SyncPolicy = iota

	// SyncInterval fsyncs on a background timer.
	SyncInterval

	// SyncBatch fsyncs once accumulated bytes cross a threshold.
	SyncBatch
)

// Options configures a Writer.
type Options struct {
	BufferSize           int
	SyncPolicy           SyncPolicy
	SyncIntervalDuration time.Duration
	SyncBatchBytes       int64
}

// DefaultOptions mirrors a harness run: sync each time 64 KiB of events
// has accumulated and once more at close, rather than on every event, since
// a trace log belongs to a single short-lived process, not kept open
// indefinitely like a storage WAL.
func DefaultOptions() Options {
	return Options{
		BufferSize:           16 * 1024,
		SyncPolicy:           SyncBatch,
		SyncIntervalDuration: 200 * time.Millisecond,
		SyncBatchBytes:       64 * 1024,
	}
}
