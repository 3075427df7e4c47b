// Package main provides the entry point for c8sim.
// c8sim is a CHIP-8 virtual machine with SDL, terminal and headless hosts.
//
// For the full CLI, use: go run ./cmd/c8sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("c8sim - CHIP-8 Virtual Machine")
	fmt.Println("")
	fmt.Println("Usage: c8sim [options] <program.ch8>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to a YAML or JSON configuration file")
	fmt.Println("  -backend   Host backend: sdl, term or headless")
	fmt.Println("  -hz        Instructions per second")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/c8sim' for the full CLI.")
	fmt.Println("Run 'go run ./cmd/c8dis' to disassemble a ROM.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/c8sim' instead.")
	}
}
