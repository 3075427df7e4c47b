package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	It("should read words big-endian", func() {
		memory.Write8(0x300, 0x12)
		memory.Write8(0x301, 0x34)

		Expect(memory.Read16(0x300)).To(Equal(uint16(0x1234)))
	})

	It("should wrap a word read at the last byte", func() {
		memory.Write8(0xFFF, 0xAB)
		memory.Write8(0x000, 0xCD)

		Expect(memory.Read16(0xFFF)).To(Equal(uint16(0xABCD)))
	})

	It("should wrap out-of-range addresses", func() {
		memory.Write8(0x1234, 0x99)

		Expect(memory.Read8(0x234)).To(Equal(uint8(0x99)))
	})

	It("should notify the write observer with the masked address", func() {
		var seen []uint16
		memory.SetWriteObserver(func(addr uint16) { seen = append(seen, addr) })

		memory.Write8(0x300, 1)
		memory.Write8(0x1001, 2)

		Expect(seen).To(Equal([]uint16{0x300, 0x001}))
	})
})

var _ = Describe("Timers", func() {
	It("should decrement both timers and stop at zero", func() {
		t := &emu.Timers{Delay: 2, Sound: 0}

		t.Tick()
		t.Tick()
		t.Tick()

		Expect(*t).To(Equal(emu.Timers{}))
	})

	It("should sound only on the tick where the sound timer leaves 1", func() {
		t := &emu.Timers{Sound: 3}

		Expect(t.Tick()).To(BeFalse())
		Expect(t.Tick()).To(BeFalse())
		Expect(t.Tick()).To(BeTrue())
		Expect(t.Tick()).To(BeFalse())
	})
})

var _ = Describe("KeyState", func() {
	It("should report the lowest pressed key", func() {
		key, ok := emu.KeyState{}.Press(0xE, 0x4).FirstPressed()

		Expect(ok).To(BeTrue())
		Expect(key).To(Equal(uint8(0x4)))
	})

	It("should report no key when all are up", func() {
		_, ok := emu.KeyState{}.FirstPressed()

		Expect(ok).To(BeFalse())
	})

	It("should leave the receiver untouched on Press", func() {
		var keys emu.KeyState
		pressed := keys.Press(3)

		Expect(keys.Pressed(3)).To(BeFalse())
		Expect(pressed.Pressed(3)).To(BeTrue())
		Expect(pressed.Pressed(0x13)).To(BeTrue())
	})
})

var _ = Describe("RegFile", func() {
	It("should mask I and PC to 12 bits", func() {
		r := &emu.RegFile{}

		r.SetI(0xF123)
		r.SetPC(0x1FFE)
		r.Advance(4)

		Expect(r.I).To(Equal(uint16(0x123)))
		Expect(r.PC).To(Equal(uint16(0x002)))
	})
})

var _ = Describe("FixedRandom", func() {
	It("should cycle through its values", func() {
		r := &emu.FixedRandom{Values: []uint8{1, 2}}

		Expect([]uint8{r.Byte(), r.Byte(), r.Byte()}).To(Equal([]uint8{1, 2, 1}))
	})

	It("should return zero when empty", func() {
		Expect((&emu.FixedRandom{}).Byte()).To(BeZero())
	})
})
