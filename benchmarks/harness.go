// Package benchmarks provides throughput benchmark infrastructure for the
// CHIP-8 emulator.
package benchmarks

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/c8sim/cache"
	"github.com/sarchlab/c8sim/emu"
)

// BenchmarkResult holds the results of a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Instructions is the number of instructions executed
	Instructions uint64 `json:"instructions"`

	// DecodeCacheHits/Misses/Invalidations (if the cache is enabled)
	DecodeCacheHits          uint64 `json:"decode_cache_hits,omitempty"`
	DecodeCacheMisses        uint64 `json:"decode_cache_misses,omitempty"`
	DecodeCacheInvalidations uint64 `json:"decode_cache_invalidations,omitempty"`

	// Error is set when the run stopped early or failed validation
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the benchmark
	WallTime time.Duration `json:"wall_time_ns"`
}

// MIPS returns millions of instructions executed per wall-clock second.
func (r BenchmarkResult) MIPS() float64 {
	if r.WallTime <= 0 {
		return 0
	}
	return float64(r.Instructions) / r.WallTime.Seconds() / 1e6
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Program is the CHIP-8 code, loaded at emu.ProgramStart
	Program []byte

	// Cycles is the number of instructions to execute
	Cycles uint64

	// Validate checks the machine state after the run (optional)
	Validate func(e *emu.Emulator) error
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableDecodeCache runs every benchmark with the decoded-instruction
	// cache
	EnableDecodeCache bool

	// DecodeCache configures the cache when it is enabled
	DecodeCache cache.Config

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableDecodeCache: true,
		DecodeCache:       cache.DefaultConfig(),
		Output:            os.Stdout,
		Verbose:           false,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result := h.runBenchmark(bench)
		if h.config.Verbose {
			_, _ = fmt.Fprintf(h.config.Output, "ran %s: %d instructions in %v\n",
				result.Name, result.Instructions, result.WallTime)
		}
		results = append(results, result)
	}

	return results
}

// runBenchmark executes a single benchmark.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	var dc *cache.DecodeCache
	opts := []emu.EmulatorOption{}
	if h.config.EnableDecodeCache {
		dc = cache.New(h.config.DecodeCache)
		opts = append(opts, emu.WithDecodeCache(dc))
	}

	e := emu.NewEmulator(opts...)
	e.LoadProgram(bench.Program)

	// Run and measure time
	start := time.Now()
	err := e.Run(bench.Cycles)
	wallTime := time.Since(start)

	result := BenchmarkResult{
		Name:         bench.Name,
		Description:  bench.Description,
		Instructions: e.InstructionCount(),
		WallTime:     wallTime,
	}

	if err == nil && bench.Validate != nil {
		err = bench.Validate(e)
	}
	if err != nil {
		result.Error = err.Error()
	}

	if dc != nil {
		stats := dc.Stats()
		result.DecodeCacheHits = stats.Hits
		result.DecodeCacheMisses = stats.Misses
		result.DecodeCacheInvalidations = stats.Invalidations
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== c8sim Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  MIPS:         %.2f\n", r.MIPS())

		if r.DecodeCacheHits > 0 || r.DecodeCacheMisses > 0 {
			_, _ = fmt.Fprintln(h.config.Output, "  --- Decode Cache ---")
			_, _ = fmt.Fprintf(h.config.Output, "  Hits:          %d\n", r.DecodeCacheHits)
			_, _ = fmt.Fprintf(h.config.Output, "  Misses:        %d\n", r.DecodeCacheMisses)
			_, _ = fmt.Fprintf(h.config.Output, "  Invalidations: %d\n", r.DecodeCacheInvalidations)
		}

		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Error)
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,instructions,mips,dcache_hits,dcache_misses,dcache_invalidations,error")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%.2f,%d,%d,%d,%s\n",
			r.Name,
			r.Instructions,
			r.MIPS(),
			r.DecodeCacheHits,
			r.DecodeCacheMisses,
			r.DecodeCacheInvalidations,
			r.Error,
		)
	}
}

// PrintJSON outputs benchmark results as an indented JSON array.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	enc := json.NewEncoder(h.config.Output)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// Helper functions for building CHIP-8 programs

// BuildProgram assembles instruction words into a big-endian byte slice.
func BuildProgram(words ...uint16) []byte {
	program := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(program[i*2:], w)
	}
	return program
}

// EncodeLDImm encodes LD Vx, kk.
func EncodeLDImm(x, kk uint8) uint16 {
	return 0x6000 | uint16(x&0xF)<<8 | uint16(kk)
}

// EncodeADDImm encodes ADD Vx, kk.
func EncodeADDImm(x, kk uint8) uint16 {
	return 0x7000 | uint16(x&0xF)<<8 | uint16(kk)
}

// EncodeALU encodes the 8xyN register-register operation with sub-opcode n.
func EncodeALU(x, y, n uint8) uint16 {
	return 0x8000 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

// EncodeJP encodes JP nnn.
func EncodeJP(nnn uint16) uint16 {
	return 0x1000 | nnn&0xFFF
}

// EncodeCALL encodes CALL nnn.
func EncodeCALL(nnn uint16) uint16 {
	return 0x2000 | nnn&0xFFF
}

// EncodeRET encodes RET.
func EncodeRET() uint16 {
	return 0x00EE
}

// EncodeLDI encodes LD I, nnn.
func EncodeLDI(nnn uint16) uint16 {
	return 0xA000 | nnn&0xFFF
}

// EncodeDRW encodes DRW Vx, Vy, n.
func EncodeDRW(x, y, n uint8) uint16 {
	return 0xD000 | uint16(x&0xF)<<8 | uint16(y&0xF)<<4 | uint16(n&0xF)
}

// EncodeMisc encodes the Fx?? instruction with low byte kk.
func EncodeMisc(x, kk uint8) uint16 {
	return 0xF000 | uint16(x&0xF)<<8 | uint16(kk)
}
