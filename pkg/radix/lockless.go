package radix

import "sync"

// LocklessTree installs new interior nodes and leaf values with an atomic
// compare-and-swap of an empty slot, rather than any mutex (section 4.4e).
// A goroutine that loses the race to install an interior node returns its
// speculative allocation to a sync.Pool instead of leaving it for the
// garbage collector alone — the same pooling idiom the teacher's WAL used
// for entry/buffer reuse (pkg/wal/pool.go), repurposed here as the
// explicit reclaim invariant 5 requires. Losing a leaf-value race calls
// Discard() on the non-retained value if it implements that method.
//
// Readers never take this path: Find is a pure acquire-load-and-follow
// sequence with no CAS, so lookups are wait-free.
type LocklessTree struct {
	base
	interiorPool sync.Pool
	leafPool     sync.Pool
}

// NewLockless constructs a tree synchronized purely by atomic CAS.
func NewLockless(bits, radixBits uint) (Tree, error) {
	b, err := newBase(bits, radixBits, false)
	if err != nil {
		return nil, err
	}
	t := &LocklessTree{base: b}
	t.interiorPool.New = func() any { return newNode(t.fanout, false, false) }
	t.leafPool.New = func() any { return newNode(t.fanout, true, false) }
	return t, nil
}

// acquireCandidate returns a freshly allocated or pool-reused node. A node
// taken from either pool is always all-nil in its slots: it is only ever
// returned to the pool when it lost its installation race, meaning no one
// ever got a chance to write into it.
func (t *LocklessTree) acquireCandidate(leaf bool) *Node {
	if leaf {
		return t.leafPool.Get().(*Node)
	}
	return t.interiorPool.Get().(*Node)
}

func (t *LocklessTree) releaseCandidate(n *Node) {
	if n.leaf {
		t.leafPool.Put(n)
	} else {
		t.interiorPool.Put(n)
	}
}

func (t *LocklessTree) FindOrCreate(key uint64, factory Factory) any {
	curr := t.root

	for depth := uint(0); ; depth++ {
		idx := t.slotAt(key, depth)

		if t.isLeafDepth(depth) {
			return t.installValue(curr, idx, key, factory)
		}

		child := curr.childSlot(idx).Load()
		if child == nil {
			if factory == nil {
				return nil
			}
			candidate := t.acquireCandidate(t.isLeafDepth(depth + 1))
			if curr.childSlot(idx).CompareAndSwapEmptyNode(candidate) {
				child = candidate
			} else {
				// Lost the race: reclaim the speculative node
				// before retrying, per invariant 5.
				t.releaseCandidate(candidate)
				child = curr.childSlot(idx).Load()
			}
		}
		curr = child
	}
}

// installValue implements the leaf-level half of FindOrCreate: it may call
// factory more than once under contention, but only one of the produced
// values is ever retained (section 4.4e).
func (t *LocklessTree) installValue(leaf *Node, idx uint32, key uint64, factory Factory) any {
	slot := leaf.valueSlot(idx)

	for {
		if v := slot.Load(); v != nil {
			return v
		}
		if factory == nil {
			return nil
		}

		candidate := factory(key)
		if candidate == nil {
			fatalNilFactory(key)
		}

		if slot.CompareAndSwapEmpty(candidate) {
			return candidate
		}

		// Lost the race: our allocation is not retained. Free it
		// through the Discarder convention if the value knows how,
		// then retry the read — the winner's value is now visible.
		discard(candidate)
	}
}

func (t *LocklessTree) Find(key uint64) any {
	curr := t.root

	for depth := uint(0); ; depth++ {
		idx := t.slotAt(key, depth)

		if t.isLeafDepth(depth) {
			return curr.valueSlot(idx).Load()
		}

		child := curr.childSlot(idx).Load()
		if child == nil {
			return nil
		}
		curr = child
	}
}

func (t *LocklessTree) Destroy() {
	t.root.teardown()
}
