package radix

import "github.com/bobboyms/radixtree/pkg/radixerr"

// Descriptor names one synchronization strategy and how to construct it.
// The harness and CLI dispatch to a variant by name through this registry
// rather than following a raw function-pointer table, the Go rendering of
// the source's variant descriptor (section 6).
type Descriptor struct {
	Name string
	New  func(bits, radixBits uint) (Tree, error)
}

var registry = map[string]Descriptor{}

func register(d Descriptor) {
	registry[d.Name] = d
}

func init() {
	register(Descriptor{Name: "sequential", New: NewSequential})
	register(Descriptor{Name: "lock_level", New: NewLockLevel})
	register(Descriptor{Name: "lock_node", New: NewLockNode})
	register(Descriptor{Name: "lock_subtree", New: NewLockSubtree})
	register(Descriptor{Name: "lockless", New: NewLockless})
}

// Variants returns the registered variant names, for CLI help text and
// table-driven tests that want to exercise every variant uniformly.
func Variants() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// New looks up a variant by name and constructs it with the given shape
// parameters. It returns radixerr.UnknownVariantError for an unregistered
// name and whatever radixerr.InvalidParameterError the variant's own
// constructor returns for bad bits/radix.
func New(variantName string, bits, radixBits uint) (Tree, error) {
	d, ok := registry[variantName]
	if !ok {
		return nil, &radixerr.UnknownVariantError{Name: variantName}
	}
	return d.New(bits, radixBits)
}
