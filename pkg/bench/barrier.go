package bench

import (
	"runtime"
	"sync/atomic"
)

// barrier is the harness's ready-counter-plus-start-flag coordination
// point (section 4.7 steps 5-6, section 10.2): every worker increments
// ready then spins on start, so the driver's measured window begins only
// once all workers are actually running, excluding goroutine-spawn cost.
// This is deliberately hand-rolled rather than built on a library
// WaitGroup-based barrier: the property under test is that the spin loop
// itself, not a channel close, gates the start of the measured window.
type barrier struct {
	threads int
	ready   atomic.Int64
	start   atomic.Bool
}

func newBarrier(threads int) *barrier {
	return &barrier{threads: threads}
}

// arrive is called by each worker on entry. It increments the ready count
// then spins, yielding the processor between loads (runtime.Gosched() is
// this corpus's stand-in for a CPU-pause intrinsic, since Go exposes no
// portable one to user code) until release sets the start flag.
func (b *barrier) arrive() {
	b.ready.Add(1)
	for !b.start.Load() {
		runtime.Gosched()
	}
}

// allReady reports whether every worker has arrived.
func (b *barrier) allReady() bool {
	return b.ready.Load() >= int64(b.threads)
}

// release sets the start flag with release-store semantics, waking every
// spinning worker.
func (b *barrier) release() {
	b.start.Store(true)
}
