package emu

// NumKeys is the number of keys on the CHIP-8 hex keypad.
const NumKeys = 16

// KeyState is the pressed state of keys 0x0-0xF.
type KeyState [NumKeys]bool

// Pressed reports whether key k is down. Only the low nibble of k is used.
func (k KeyState) Pressed(key uint8) bool {
	return k[key&0xF]
}

// FirstPressed returns the lowest-numbered pressed key.
func (k KeyState) FirstPressed() (uint8, bool) {
	for i, down := range k {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

// Press returns a copy of the state with the given keys held down.
func (k KeyState) Press(keys ...uint8) KeyState {
	for _, key := range keys {
		k[key&0xF] = true
	}
	return k
}
