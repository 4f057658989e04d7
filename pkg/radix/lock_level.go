package radix

import "sync"

// LockLevelTree protects each depth of the tree with one mutex, shared by
// every node at that depth. A descending walk acquires locks in strictly
// increasing depth order and releases each before descending past it,
// which rules out deadlock (section 4.4b). levelLocks is owned by this
// tree instance and is never shared with another LockLevelTree, unlike the
// source's file-scope mutex array (section 9).
type LockLevelTree struct {
	base
	levelLocks []sync.Mutex
}

// NewLockLevel constructs a tree synchronized by one mutex per depth.
func NewLockLevel(bits, radixBits uint) (Tree, error) {
	b, err := newBase(bits, radixBits, false)
	if err != nil {
		return nil, err
	}
	return &LockLevelTree{
		base:       b,
		levelLocks: make([]sync.Mutex, b.maxHeight),
	}, nil
}

func (t *LockLevelTree) FindOrCreate(key uint64, factory Factory) any {
	curr := t.root
	for depth := uint(0); ; depth++ {
		idx := t.slotAt(key, depth)
		lock := &t.levelLocks[depth]

		if t.isLeafDepth(depth) {
			lock.Lock()
			v := curr.valueSlot(idx).Load()
			if v == nil && factory != nil {
				v = factory(key)
				if v == nil {
					lock.Unlock()
					fatalNilFactory(key)
				}
				curr.valueSlot(idx).Store(v)
			}
			lock.Unlock()
			return v
		}

		lock.Lock()
		child := curr.childSlot(idx).Load()
		if child == nil {
			if factory == nil {
				lock.Unlock()
				return nil
			}
			child = newNode(t.fanout, t.isLeafDepth(depth+1), false)
			curr.childSlot(idx).Store(child)
		}
		lock.Unlock()
		curr = child
	}
}

func (t *LockLevelTree) Find(key uint64) any {
	return t.FindOrCreate(key, nil)
}

func (t *LockLevelTree) Destroy() {
	t.root.teardown()
}
