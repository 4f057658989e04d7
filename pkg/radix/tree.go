package radix

import "github.com/bobboyms/radixtree/pkg/radixerr"

// Factory produces the value stored at a key's leaf slot on first miss. It
// must return a stable, non-nil reference; a nil result is fatal (section
// 4.3). If the returned value implements Discarder, the tree calls
// Discard() on any speculative allocation that loses a race under the
// lockless variant and is not retained.
type Factory func(key uint64) any

// Discarder is implemented by values that hold resources which must be
// released when a speculative allocation loses a CAS race (section 4.4e)
// or when the tree is torn down.
type Discarder interface {
	Discard()
}

// Tree is the common contract all five synchronization variants satisfy.
type Tree interface {
	// FindOrCreate walks the tree for key. If factory is nil, this is a
	// pure lookup: it returns the stored value or nil. If factory is
	// non-nil, it installs interior nodes and, on a leaf miss, invokes
	// factory(key) and stores the result. It always returns the value
	// that ends up stored at key's leaf slot, never a transient one.
	FindOrCreate(key uint64, factory Factory) any

	// Find is sugar for FindOrCreate(key, nil).
	Find(key uint64) any

	// Destroy releases every node and every stored value post-order.
	// Must not be called while any other goroutine may still be
	// traversing the tree.
	Destroy()
}

// base carries the shape parameters and root handle shared by every
// variant. radix and maxHeight are immutable for the tree's lifetime once
// New returns successfully.
type base struct {
	radixBits  uint
	maxHeight  uint
	fanout     uint32
	fanoutMask uint64
	root       *Node
}

func newBase(bits, radixBits uint, rootHasMutex bool) (base, error) {
	if bits < 1 {
		return base{}, &radixerr.InvalidParameterError{Field: "bits", Value: bits, Reason: "must be >= 1"}
	}
	if radixBits < 1 {
		return base{}, &radixerr.InvalidParameterError{Field: "radix", Value: radixBits, Reason: "must be >= 1"}
	}

	maxHeight := heightFor(bits, radixBits)
	fanout := uint32(1) << radixBits

	return base{
		radixBits:  radixBits,
		maxHeight:  maxHeight,
		fanout:     fanout,
		fanoutMask: uint64(fanout) - 1,
		root:       newNode(fanout, maxHeight == 1, rootHasMutex),
	}, nil
}

// levelsRemaining returns how many edges separate depth d (0 at the root)
// from the leaf level.
func (b *base) levelsRemaining(depth uint) uint {
	return b.maxHeight - 1 - depth
}

func (b *base) isLeafDepth(depth uint) bool {
	return depth == b.maxHeight-1
}

func (b *base) slotAt(key uint64, depth uint) uint32 {
	return slotIndex(key, b.levelsRemaining(depth), b.radixBits, b.fanoutMask)
}
