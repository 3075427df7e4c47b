package emu

// Timers holds the delay and sound countdown timers.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements both timers by one, stopping at zero.
// It reports whether the sound timer was exactly 1 before the decrement,
// which is the cycle on which the tone sounds.
func (t *Timers) Tick() bool {
	tone := t.Sound == 1

	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}

	return tone
}
