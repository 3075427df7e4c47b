// Package main provides c8dis, a CHIP-8 ROM disassembler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/loader"
)

var (
	outPath = flag.String("o", "", "Write the listing to this file instead of stdout")
	labels  = flag.Bool("labels", true, "Mark jump and call targets with labels")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: c8dis [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	prog, err := loader.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = out.Close() }()
	}

	w := bufio.NewWriter(out)
	writeListing(w, prog.Data, *labels)
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing listing: %v\n", err)
		os.Exit(1)
	}
}

// writeListing prints one "ADDR  WORD  INSTRUCTION" line per word of data,
// assuming it is loaded at emu.ProgramStart. A trailing odd byte is
// printed as a data byte.
func writeListing(w io.Writer, data []byte, withLabels bool) {
	decoder := insts.NewDecoder()

	var targets map[uint16]bool
	if withLabels {
		targets = jumpTargets(decoder, data)
	}

	for off := 0; off+1 < len(data); off += 2 {
		addr := uint16(emu.ProgramStart + off)
		word := uint16(data[off])<<8 | uint16(data[off+1])

		if targets[addr] {
			fmt.Fprintf(w, "L%03X:\n", addr)
		}
		fmt.Fprintf(w, "%03X  %04X  %s\n", addr, word, decoder.Decode(word))
	}

	if len(data)%2 == 1 {
		off := len(data) - 1
		fmt.Fprintf(w, "%03X  %02X    db $%02X\n", emu.ProgramStart+off, data[off], data[off])
	}
}

// jumpTargets collects the absolute targets of JP and CALL that fall on a
// listed word.
func jumpTargets(decoder *insts.Decoder, data []byte) map[uint16]bool {
	targets := make(map[uint16]bool)
	var inst insts.Instruction
	for off := 0; off+1 < len(data); off += 2 {
		decoder.DecodeInto(uint16(data[off])<<8|uint16(data[off+1]), &inst)
		if inst.Op != insts.OpJP && !inst.IsCall() {
			continue
		}
		if inst.NNN >= emu.ProgramStart && int(inst.NNN-emu.ProgramStart) < len(data) &&
			(inst.NNN-emu.ProgramStart)%2 == 0 {
			targets[inst.NNN] = true
		}
	}
	return targets
}
