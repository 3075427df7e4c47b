package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("BranchUnit", func() {
	var (
		regFile    *emu.RegFile
		branchUnit *emu.BranchUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{PC: 0x300}
		branchUnit = emu.NewBranchUnit(regFile)
	})

	Describe("JP", func() {
		It("should jump to nnn", func() {
			branchUnit.JP(0x456)

			Expect(regFile.PC).To(Equal(uint16(0x456)))
		})
	})

	Describe("JPV0", func() {
		It("should jump to nnn + V0", func() {
			regFile.WriteReg(0, 0x10)

			branchUnit.JPV0(0x400)

			Expect(regFile.PC).To(Equal(uint16(0x410)))
		})

		It("should wrap the target to 12 bits", func() {
			regFile.WriteReg(0, 0xFF)

			branchUnit.JPV0(0xFFF)

			Expect(regFile.PC).To(Equal(uint16((0xFFF + 0xFF) & 0xFFF)))
		})
	})

	Describe("CALL and RET", func() {
		It("should push the CALL address and jump", func() {
			Expect(branchUnit.CALL(0x500)).To(Succeed())

			Expect(regFile.PC).To(Equal(uint16(0x500)))
			Expect(regFile.SP).To(Equal(uint8(1)))
			Expect(regFile.Stack[0]).To(Equal(uint16(0x300)))
		})

		It("should resume after the CALL on RET", func() {
			Expect(branchUnit.CALL(0x500)).To(Succeed())
			Expect(branchUnit.RET()).To(Succeed())

			Expect(regFile.PC).To(Equal(uint16(0x302)))
			Expect(regFile.SP).To(BeZero())
		})

		It("should unwind nested calls in order", func() {
			Expect(branchUnit.CALL(0x500)).To(Succeed())
			Expect(branchUnit.CALL(0x600)).To(Succeed())

			Expect(branchUnit.RET()).To(Succeed())
			Expect(regFile.PC).To(Equal(uint16(0x502)))

			Expect(branchUnit.RET()).To(Succeed())
			Expect(regFile.PC).To(Equal(uint16(0x302)))
		})

		It("should fail on the 17th nested CALL without changing state", func() {
			for i := 0; i < emu.StackDepth; i++ {
				Expect(branchUnit.CALL(0x500)).To(Succeed())
			}
			before := *regFile

			err := branchUnit.CALL(0x600)

			Expect(err).To(MatchError(emu.ErrStackOverflow))
			Expect(*regFile).To(Equal(before))
		})

		It("should fail on RET with an empty stack without changing state", func() {
			before := *regFile

			err := branchUnit.RET()

			Expect(err).To(MatchError(emu.ErrStackUnderflow))
			Expect(*regFile).To(Equal(before))
		})
	})

	Describe("Skip", func() {
		It("should advance by 4 when the condition holds", func() {
			branchUnit.Skip(true)

			Expect(regFile.PC).To(Equal(uint16(0x304)))
		})

		It("should advance by 2 otherwise", func() {
			branchUnit.Skip(false)

			Expect(regFile.PC).To(Equal(uint16(0x302)))
		})
	})
})

var _ = Describe("Skip instructions", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	DescribeTable("conditional skips",
		func(setup []uint16, skip uint16, wantPC uint16) {
			e.LoadProgram(words(append(setup, skip)...))

			Expect(e.Run(uint64(len(setup) + 1))).To(Succeed())

			Expect(e.RegFile().PC).To(Equal(wantPC))
		},
		Entry("SE Vx, kk taken", []uint16{0x6142}, uint16(0x3142), uint16(0x206)),
		Entry("SE Vx, kk not taken", []uint16{0x6142}, uint16(0x3143), uint16(0x204)),
		Entry("SNE Vx, kk taken", []uint16{0x6142}, uint16(0x4143), uint16(0x206)),
		Entry("SNE Vx, kk not taken", []uint16{0x6142}, uint16(0x4142), uint16(0x204)),
		Entry("SE Vx, Vy taken", []uint16{0x6107, 0x6207}, uint16(0x5120), uint16(0x208)),
		Entry("SE Vx, Vy not taken", []uint16{0x6107, 0x6208}, uint16(0x5120), uint16(0x206)),
		Entry("SNE Vx, Vy taken", []uint16{0x6107, 0x6208}, uint16(0x9120), uint16(0x208)),
		Entry("SNE Vx, Vy not taken", []uint16{0x6107, 0x6207}, uint16(0x9120), uint16(0x206)),
	)

	It("should return past a CALL on RET", func() {
		// 0x200 CALL 0x206; 0x202 LD V1, 1; 0x204 JP 0x204; 0x206 LD V2, 2; 0x208 RET
		e.LoadProgram(words(0x2206, 0x6101, 0x1204, 0x6202, 0x00EE))

		Expect(e.Run(4)).To(Succeed())

		Expect(e.RegFile().ReadReg(1)).To(Equal(uint8(1)))
		Expect(e.RegFile().ReadReg(2)).To(Equal(uint8(2)))
		Expect(e.RegFile().PC).To(Equal(uint16(0x204)))
		Expect(e.RegFile().SP).To(BeZero())
	})

	It("should report a stack fault with the instruction and address", func() {
		e.LoadProgram(words(0x6005, 0x00EE))
		Expect(e.Run(1)).To(Succeed())

		result := e.Step()

		Expect(result.Err).To(MatchError(emu.ErrStackUnderflow))
		Expect(result.Err.Error()).To(ContainSubstring("PC=0x202"))
		Expect(e.RegFile().PC).To(Equal(uint16(0x202)))
		Expect(e.InstructionCount()).To(Equal(uint64(1)))
	})

	It("should not tick timers on a faulting instruction", func() {
		e.LoadProgram(words(0x6005, 0xF015, 0x00EE))
		Expect(e.Run(2)).To(Succeed())
		delay := e.Timers().Delay

		Expect(e.Step().Err).To(HaveOccurred())

		Expect(e.Timers().Delay).To(Equal(delay))
	})

	It("should overflow after sixteen nested calls", func() {
		e.LoadProgram(words(0x2200))

		err := e.Run(0)

		Expect(err).To(MatchError(emu.ErrStackOverflow))
		Expect(e.InstructionCount()).To(Equal(uint64(emu.StackDepth)))
		Expect(e.RegFile().SP).To(Equal(uint8(emu.StackDepth)))
	})
})
