package radix

// SequentialTree has no synchronization at all: every method assumes it is
// the only goroutine touching the tree. It is the unsynchronized baseline
// the other variants are compared against. The benchmark harness prefills
// whichever variant it measures (section 4.7 step 3) and checks lookups
// against its own shadow map, not against this variant.
type SequentialTree struct {
	base
}

// NewSequential constructs a tree with no synchronization.
func NewSequential(bits, radixBits uint) (Tree, error) {
	b, err := newBase(bits, radixBits, false)
	if err != nil {
		return nil, err
	}
	return &SequentialTree{base: b}, nil
}

func (t *SequentialTree) FindOrCreate(key uint64, factory Factory) any {
	curr := t.root
	for depth := uint(0); ; depth++ {
		idx := t.slotAt(key, depth)

		if t.isLeafDepth(depth) {
			if v := curr.valueSlot(idx).Load(); v != nil {
				return v
			}
			if factory == nil {
				return nil
			}
			v := factory(key)
			if v == nil {
				fatalNilFactory(key)
			}
			curr.valueSlot(idx).Store(v)
			return v
		}

		child := curr.childSlot(idx).Load()
		if child == nil {
			if factory == nil {
				return nil
			}
			child = newNode(t.fanout, t.isLeafDepth(depth+1), false)
			curr.childSlot(idx).Store(child)
		}
		curr = child
	}
}

func (t *SequentialTree) Find(key uint64) any {
	return t.FindOrCreate(key, nil)
}

func (t *SequentialTree) Destroy() {
	t.root.teardown()
}
