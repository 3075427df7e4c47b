package loader_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/loader"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

var _ = Describe("ROM Loader", func() {
	var tempDir string

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
	})

	Describe("Load", func() {
		Context("with a valid ROM", func() {
			var (
				romPath string
				rom     []byte
			)

			BeforeEach(func() {
				rom = []byte{0x00, 0xE0, 0xA2, 0x2A, 0x60, 0x0C}
				romPath = filepath.Join(tempDir, "test.ch8")
				Expect(os.WriteFile(romPath, rom, 0644)).To(Succeed())
			})

			It("should load without error", func() {
				prog, err := loader.Load(romPath)

				Expect(err).NotTo(HaveOccurred())
				Expect(prog.Name).To(Equal(romPath))
				Expect(prog.Size()).To(Equal(len(rom)))
				Expect(prog.End()).To(Equal(uint16(0x206)))
			})

			It("should keep the bytes unchanged", func() {
				prog, err := loader.Load(romPath)
				Expect(err).NotTo(HaveOccurred())

				Expect(cmp.Diff(rom, prog.Data)).To(BeEmpty())
			})

			It("should copy the program to 0x200", func() {
				prog, err := loader.Load(romPath)
				Expect(err).NotTo(HaveOccurred())

				e := emu.NewEmulator()
				prog.LoadInto(e)

				Expect(cmp.Diff(rom, e.Memory().Slice(emu.ProgramStart, len(rom)))).To(BeEmpty())
			})
		})

		Context("with an invalid file", func() {
			It("should report a missing file as unavailable", func() {
				_, err := loader.Load(filepath.Join(tempDir, "missing.ch8"))

				Expect(err).To(MatchError(loader.ErrUnavailable))
				Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
			})

			It("should report a directory as unavailable", func() {
				_, err := loader.Load(tempDir)

				Expect(err).To(MatchError(loader.ErrUnavailable))
			})

			It("should reject an empty file", func() {
				emptyPath := filepath.Join(tempDir, "empty.ch8")
				Expect(os.WriteFile(emptyPath, nil, 0644)).To(Succeed())

				_, err := loader.Load(emptyPath)

				Expect(err).To(MatchError(loader.ErrEmpty))
				Expect(err.Error()).To(ContainSubstring("empty.ch8"))
			})

			It("should reject a file larger than the program area", func() {
				bigPath := filepath.Join(tempDir, "big.ch8")
				Expect(os.WriteFile(bigPath, make([]byte, emu.MaxProgramSize+1), 0644)).To(Succeed())

				_, err := loader.Load(bigPath)

				Expect(err).To(MatchError(loader.ErrOversized))
			})
		})
	})

	Describe("Read", func() {
		It("should accept a ROM that fills the program area exactly", func() {
			prog, err := loader.Read(bytes.NewReader(make([]byte, emu.MaxProgramSize)), "full")

			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Size()).To(Equal(emu.MaxProgramSize))
			Expect(prog.End()).To(Equal(uint16(emu.MemorySize)))
		})

		It("should wrap reader failures as unavailable", func() {
			_, err := loader.Read(failingReader{}, "broken")

			Expect(err).To(MatchError(loader.ErrUnavailable))
			Expect(err.Error()).To(ContainSubstring("device gone"))
		})
	})
})
