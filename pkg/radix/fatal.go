package radix

import "log"

// fatalNilFactory matches the originating C sources' die_with_error
// treatment of a factory that produced no value (section 4.3, section 7):
// there is no recoverable path, so the process logs and aborts. Tests
// substitute factories that never return nil, so this is never exercised
// by the test suite itself — only documented and left as the single place
// a caller bug in factory becomes visible.
var fatalNilFactory = func(key uint64) {
	log.Fatalf("radix: factory(%d) returned a nil value; this is fatal per the factory contract", key)
}
