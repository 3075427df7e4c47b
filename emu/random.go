package emu

import "math/rand/v2"

// RandomSource provides the bytes used by RND.
type RandomSource interface {
	Byte() uint8
}

type defaultRandom struct{}

func (defaultRandom) Byte() uint8 {
	return uint8(rand.Uint32())
}

// FixedRandom is a RandomSource that cycles through a fixed byte sequence.
// It is intended for tests and replays.
type FixedRandom struct {
	Values []uint8
	next   int
}

// Byte returns the next value in the sequence, or 0 if it is empty.
func (f *FixedRandom) Byte() uint8 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	return v
}
