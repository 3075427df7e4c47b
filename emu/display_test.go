package emu_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("DisplayUnit", func() {
	var (
		regFile *emu.RegFile
		memory  *emu.Memory
		fb      *emu.Framebuffer
		du      *emu.DisplayUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		memory = emu.NewMemory()
		fb = &emu.Framebuffer{}
		du = emu.NewDisplayUnit(regFile, memory, fb)

		memory.Write8(0x300, 0xFF)
		memory.Write8(0x301, 0x81)
		regFile.SetI(0x300)
	})

	It("should draw set bits MSB first", func() {
		regFile.WriteReg(0, 10)
		regFile.WriteReg(1, 4)

		du.DRW(0, 1, 2)

		for col := 0; col < 8; col++ {
			Expect(fb.Pixel(10+col, 4)).To(Equal(uint8(1)))
		}
		Expect(fb.Pixel(10, 5)).To(Equal(uint8(1)))
		Expect(fb.Pixel(11, 5)).To(BeZero())
		Expect(fb.Pixel(17, 5)).To(Equal(uint8(1)))
		Expect(regFile.ReadReg(0xF)).To(BeZero())
		Expect(fb.Dirty()).To(BeTrue())
	})

	It("should erase and flag a collision when drawn twice", func() {
		du.DRW(0, 1, 2)
		du.DRW(0, 1, 2)

		Expect(regFile.ReadReg(0xF)).To(Equal(uint8(1)))
		Expect(fb.Cells()).To(Equal(make([]uint8, emu.Width*emu.Height)))
	})

	It("should clear a stale VF when nothing collides", func() {
		regFile.SetFlag(1)

		du.DRW(0, 1, 1)

		Expect(regFile.ReadReg(0xF)).To(BeZero())
	})

	It("should wrap sprites at the right and bottom edges", func() {
		regFile.WriteReg(0, 60)
		regFile.WriteReg(1, 31)

		du.DRW(0, 1, 2)

		for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
			Expect(fb.Pixel(x, 31)).To(Equal(uint8(1)), "x=%d", x)
		}
		Expect(fb.Pixel(60, 0)).To(Equal(uint8(1)))
		Expect(fb.Pixel(3, 0)).To(Equal(uint8(1)))
		Expect(fb.Pixel(61, 0)).To(BeZero())
	})

	It("should wrap start coordinates beyond the display", func() {
		regFile.WriteReg(0, 64+5)
		regFile.WriteReg(1, 32+2)

		du.DRW(0, 1, 1)

		Expect(fb.Pixel(5, 2)).To(Equal(uint8(1)))
	})

	It("should mark the framebuffer dirty for a zero-row sprite", func() {
		du.DRW(0, 1, 0)

		Expect(fb.Dirty()).To(BeTrue())
		Expect(regFile.ReadReg(0xF)).To(BeZero())
	})

	It("should clear every cell on CLS", func() {
		du.DRW(0, 1, 2)
		fb.ClearDirty()

		du.CLS()

		Expect(fb.Cells()).To(Equal(make([]uint8, emu.Width*emu.Height)))
		Expect(fb.Dirty()).To(BeTrue())
	})

	It("should render rows as text", func() {
		du.DRW(0, 1, 1)

		lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")

		Expect(lines).To(HaveLen(emu.Height))
		Expect(lines[0]).To(Equal("########" + strings.Repeat(".", 56)))
		Expect(lines[1]).To(Equal(strings.Repeat(".", 64)))
	})
})
