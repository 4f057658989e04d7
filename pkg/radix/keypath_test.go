package radix

import "testing"

func TestHeightFor(t *testing.T) {
	cases := []struct {
		bits, radix uint
		want        uint
	}{
		{1, 1, 1},
		{8, 4, 2},
		{16, 4, 4},
		{10, 4, 3}, // not a multiple: top level partially used
		{64, 8, 8},
		{6, 6, 1}, // radix == bits: single node
	}
	for _, c := range cases {
		if got := heightFor(c.bits, c.radix); got != c.want {
			t.Errorf("heightFor(%d,%d) = %d, want %d", c.bits, c.radix, got, c.want)
		}
	}
}

func TestSlotIndex(t *testing.T) {
	// bits=6, radix=2 -> maxHeight=3, F=4. key=39=0b100111.
	// level 0 (root, levelsRemaining=2): bits 5-4 = 0b10 = 2
	// level 1 (levelsRemaining=1): bits 3-2 = 0b01 = 1
	// level 2 (leaf, levelsRemaining=0): bits 1-0 = 0b11 = 3
	const radixBits = 2
	const fanoutMask = (1 << radixBits) - 1
	key := uint64(39)

	if got := slotIndex(key, 2, radixBits, fanoutMask); got != 2 {
		t.Errorf("root slot = %d, want 2", got)
	}
	if got := slotIndex(key, 1, radixBits, fanoutMask); got != 1 {
		t.Errorf("mid slot = %d, want 1", got)
	}
	if got := slotIndex(key, 0, radixBits, fanoutMask); got != 3 {
		t.Errorf("leaf slot = %d, want 3", got)
	}
}

func TestSlotIndex_IgnoresHighBits(t *testing.T) {
	// bits=4, radix=4 -> single node, F=16, mask=0xF. Any bit above the
	// low 4 must be ignored at the only (leaf) level.
	const radixBits = 4
	const fanoutMask = (1 << radixBits) - 1

	key := uint64(0xFF0A) // low nibble 0xA, everything else should be dropped
	if got := slotIndex(key, 0, radixBits, fanoutMask); got != 0xA {
		t.Errorf("slot = %#x, want 0xA", got)
	}
}
