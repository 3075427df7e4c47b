package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("ALU", func() {
	var (
		regFile *emu.RegFile
		alu     *emu.ALU
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		alu = emu.NewALU(regFile)
	})

	Describe("immediate operations", func() {
		It("should load an immediate", func() {
			alu.LDImm(4, 0x9C)

			Expect(regFile.ReadReg(4)).To(Equal(uint8(0x9C)))
		})

		It("should add an immediate without touching VF", func() {
			regFile.WriteReg(2, 0xFF)
			regFile.SetFlag(0x55)

			alu.ADDImm(2, 0x02)

			Expect(regFile.ReadReg(2)).To(Equal(uint8(0x01)))
			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(0x55)))
		})
	})

	Describe("bitwise operations", func() {
		BeforeEach(func() {
			regFile.WriteReg(1, 0b1100_1010)
			regFile.WriteReg(2, 0b1010_0110)
		})

		It("should copy Vy", func() {
			alu.LD(1, 2)
			Expect(regFile.ReadReg(1)).To(Equal(uint8(0b1010_0110)))
		})

		It("should OR", func() {
			alu.OR(1, 2)
			Expect(regFile.ReadReg(1)).To(Equal(uint8(0b1110_1110)))
		})

		It("should AND", func() {
			alu.AND(1, 2)
			Expect(regFile.ReadReg(1)).To(Equal(uint8(0b1000_0010)))
		})

		It("should XOR", func() {
			alu.XOR(1, 2)
			Expect(regFile.ReadReg(1)).To(Equal(uint8(0b0110_1100)))
		})
	})

	DescribeTable("ADD",
		func(vx, vy, want, flag uint8) {
			regFile.WriteReg(1, vx)
			regFile.WriteReg(2, vy)

			alu.ADD(1, 2)

			Expect(regFile.ReadReg(1)).To(Equal(want))
			Expect(regFile.ReadReg(0xF)).To(Equal(flag))
		},
		Entry("no carry", uint8(0x10), uint8(0x20), uint8(0x30), uint8(0)),
		Entry("exactly 0xFF", uint8(0xF0), uint8(0x0F), uint8(0xFF), uint8(0)),
		Entry("carry", uint8(0xFF), uint8(0x01), uint8(0x00), uint8(1)),
		Entry("carry with remainder", uint8(0xC8), uint8(0x64), uint8(0x2C), uint8(1)),
	)

	DescribeTable("SUB",
		func(vx, vy, want, flag uint8) {
			regFile.WriteReg(1, vx)
			regFile.WriteReg(2, vy)

			alu.SUB(1, 2)

			Expect(regFile.ReadReg(1)).To(Equal(want))
			Expect(regFile.ReadReg(0xF)).To(Equal(flag))
		},
		Entry("no borrow", uint8(0x30), uint8(0x10), uint8(0x20), uint8(1)),
		Entry("equal operands", uint8(0x30), uint8(0x30), uint8(0x00), uint8(0)),
		Entry("borrow", uint8(0x10), uint8(0x30), uint8(0xE0), uint8(0)),
	)

	DescribeTable("SUBN",
		func(vx, vy, want, flag uint8) {
			regFile.WriteReg(1, vx)
			regFile.WriteReg(2, vy)

			alu.SUBN(1, 2)

			Expect(regFile.ReadReg(1)).To(Equal(want))
			Expect(regFile.ReadReg(0xF)).To(Equal(flag))
		},
		Entry("no borrow", uint8(0x10), uint8(0x30), uint8(0x20), uint8(1)),
		Entry("equal operands", uint8(0x30), uint8(0x30), uint8(0x00), uint8(0)),
		Entry("borrow", uint8(0x30), uint8(0x10), uint8(0xE0), uint8(0)),
	)

	DescribeTable("shifts",
		func(shift func(*emu.ALU, uint8), vx, want, flag uint8) {
			regFile.WriteReg(3, vx)
			regFile.WriteReg(4, 0xAA)

			shift(alu, 3)

			Expect(regFile.ReadReg(3)).To(Equal(want))
			Expect(regFile.ReadReg(0xF)).To(Equal(flag))
			Expect(regFile.ReadReg(4)).To(Equal(uint8(0xAA)))
		},
		Entry("SHR odd", (*emu.ALU).SHR, uint8(0x05), uint8(0x02), uint8(1)),
		Entry("SHR even", (*emu.ALU).SHR, uint8(0x04), uint8(0x02), uint8(0)),
		Entry("SHL high bit set", (*emu.ALU).SHL, uint8(0x81), uint8(0x02), uint8(1)),
		Entry("SHL high bit clear", (*emu.ALU).SHL, uint8(0x41), uint8(0x82), uint8(0)),
	)

	Describe("VF as destination", func() {
		It("should keep the sum in VF after ADD", func() {
			regFile.WriteReg(0xF, 0xFF)
			regFile.WriteReg(1, 0x02)

			alu.ADD(0xF, 1)

			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(0x01)))
		})

		It("should keep the shifted value in VF after SHR", func() {
			regFile.WriteReg(0xF, 0x06)

			alu.SHR(0xF)

			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(0x03)))
		})

		It("should use VF as an operand before the flag is written", func() {
			regFile.WriteReg(1, 0x05)
			regFile.WriteReg(0xF, 0x03)

			alu.SUB(1, 0xF)

			Expect(regFile.ReadReg(1)).To(Equal(uint8(0x02)))
			Expect(regFile.ReadReg(0xF)).To(Equal(uint8(1)))
		})
	})
})
