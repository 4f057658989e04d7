package radix

import "sync/atomic"

// countingValue is a Discarder used across tests to verify that
// non-retained speculative allocations under the lockless variant are
// actually freed (Discard called), not silently leaked.
type countingValue struct {
	id       int
	discards *atomic.Int64
}

func (v *countingValue) Discard() {
	v.discards.Add(1)
}

// sequenceFactory returns a Factory that allocates a fresh *countingValue
// per call, tagged with a monotonically increasing id, and counts how many
// times it was invoked.
func sequenceFactory(calls *atomic.Int64, discards *atomic.Int64) Factory {
	return func(key uint64) any {
		id := int(calls.Add(1))
		return &countingValue{id: id, discards: discards}
	}
}
