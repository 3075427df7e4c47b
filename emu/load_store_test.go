package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("LoadStoreUnit", func() {
	var (
		regFile *emu.RegFile
		memory  *emu.Memory
		lsu     *emu.LoadStoreUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		memory = emu.NewMemory()
		lsu = emu.NewLoadStoreUnit(regFile, memory)
	})

	Describe("LDI", func() {
		It("should set I", func() {
			lsu.LDI(0x2F0)

			Expect(regFile.I).To(Equal(uint16(0x2F0)))
		})
	})

	Describe("ADDI", func() {
		It("should add Vx to I", func() {
			regFile.SetI(0x300)
			regFile.WriteReg(5, 0x20)

			lsu.ADDI(5)

			Expect(regFile.I).To(Equal(uint16(0x320)))
		})

		It("should wrap I to 12 bits and leave VF alone", func() {
			regFile.SetI(0xFFE)
			regFile.WriteReg(5, 0x05)
			regFile.SetFlag(0x77)

			lsu.ADDI(5)

			Expect(regFile.I).To(Equal(uint16(0x003)))
			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(0x77)))
		})
	})

	Describe("LDF", func() {
		It("should point I at the glyph for Vx", func() {
			regFile.WriteReg(2, 0xA)

			lsu.LDF(2)

			Expect(regFile.I).To(Equal(uint16(0x50 + 0xA*5)))
			Expect(memory.Slice(regFile.I, 5)).To(Equal([]byte{0xF0, 0x90, 0xF0, 0x90, 0x90}))
		})
	})

	DescribeTable("LDB",
		func(value uint8, digits []byte) {
			regFile.SetI(0x400)
			regFile.WriteReg(7, value)

			lsu.LDB(7)

			Expect(memory.Slice(0x400, 3)).To(Equal(digits))
			Expect(regFile.I).To(Equal(uint16(0x400)))
		},
		Entry("0", uint8(0), []byte{0, 0, 0}),
		Entry("9", uint8(9), []byte{0, 0, 9}),
		Entry("42", uint8(42), []byte{0, 4, 2}),
		Entry("156", uint8(156), []byte{1, 5, 6}),
		Entry("255", uint8(255), []byte{2, 5, 5}),
	)

	Describe("StoreRegs and LoadRegs", func() {
		It("should store V0..Vx inclusive and leave I unchanged", func() {
			for r := uint8(0); r < 16; r++ {
				regFile.WriteReg(r, 0x10+r)
			}
			regFile.SetI(0x500)

			lsu.StoreRegs(3)

			Expect(memory.Slice(0x500, 5)).To(Equal([]byte{0x10, 0x11, 0x12, 0x13, 0x00}))
			Expect(regFile.I).To(Equal(uint16(0x500)))
		})

		It("should load V0..Vx inclusive and leave I unchanged", func() {
			memory.Write8(0x600, 0xA0)
			memory.Write8(0x601, 0xA1)
			memory.Write8(0x602, 0xA2)
			regFile.WriteReg(3, 0x33)
			regFile.SetI(0x600)

			lsu.LoadRegs(2)

			Expect(regFile.V[:4]).To(Equal([]uint8{0xA0, 0xA1, 0xA2, 0x33}))
			Expect(regFile.I).To(Equal(uint16(0x600)))
		})

		It("should round-trip all sixteen registers", func() {
			for r := uint8(0); r < 16; r++ {
				regFile.WriteReg(r, r*3)
			}
			want := regFile.V
			regFile.SetI(0x700)

			lsu.StoreRegs(0xF)
			regFile.V = [16]uint8{}
			lsu.LoadRegs(0xF)

			Expect(regFile.V).To(Equal(want))
		})

		It("should wrap addresses at the end of memory", func() {
			regFile.WriteReg(0, 0x11)
			regFile.WriteReg(1, 0x22)
			regFile.SetI(0xFFF)

			lsu.StoreRegs(1)

			Expect(memory.Read8(0xFFF)).To(Equal(uint8(0x11)))
			Expect(memory.Read8(0x000)).To(Equal(uint8(0x22)))
		})
	})
})
