// Package cache provides a decoded-instruction cache built on Akita cache
// components.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/insts"
)

// blockSize is the number of addresses covered by one directory block.
// Instructions are two bytes but may start at any address, so each block
// keeps one decoded instruction per start address it covers.
const blockSize = 2

// Config holds decode cache configuration parameters.
type Config struct {
	// Sets is the number of sets in the directory.
	Sets int `json:"sets" yaml:"sets"`
	// Associativity is the number of ways per set.
	Associativity int `json:"associativity" yaml:"associativity"`
}

// DefaultConfig returns a configuration that covers the whole 4KB address
// space without evictions: 512 sets x 4 ways x 2 addresses.
func DefaultConfig() Config {
	return Config{
		Sets:          512,
		Associativity: 4,
	}
}

// Statistics holds decode cache statistics.
type Statistics struct {
	Hits          uint64
	Misses        uint64
	Fills         uint64
	Evictions     uint64
	Invalidations uint64
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s Statistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

var _ emu.DecodeCache = (*DecodeCache)(nil)

// DecodeCache maps instruction addresses to decoded instructions.
// The Akita directory tracks tags and LRU order; the decoded instructions
// live in a parallel store indexed by set and way.
type DecodeCache struct {
	config Config

	// Akita cache directory for tag/state management
	directory *akitacache.DirectoryImpl

	// Decoded instructions, indexed by (setID * associativity + wayID),
	// one slot per start address in the block.
	dataStore [][blockSize]*insts.Instruction

	stats Statistics
}

// New creates a decode cache with the given configuration.
func New(config Config) *DecodeCache {
	if config.Sets <= 0 {
		config.Sets = 1
	}
	if config.Associativity <= 0 {
		config.Associativity = 1
	}

	return &DecodeCache{
		config: config,
		directory: akitacache.NewDirectory(
			config.Sets,
			config.Associativity,
			blockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: make([][blockSize]*insts.Instruction, config.Sets*config.Associativity),
	}
}

// Config returns the cache configuration.
func (c *DecodeCache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *DecodeCache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *DecodeCache) ResetStats() {
	c.stats = Statistics{}
}

// blockIndex computes the index into dataStore for a block.
func (c *DecodeCache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func blockAddr(addr uint16) uint64 {
	return uint64(addr &^ (blockSize - 1))
}

// Lookup returns the decoded instruction starting at pc, if cached.
func (c *DecodeCache) Lookup(pc uint16) (*insts.Instruction, bool) {
	block := c.directory.Lookup(0, blockAddr(pc))
	if block != nil && block.IsValid {
		if inst := c.dataStore[c.blockIndex(block)][pc%blockSize]; inst != nil {
			c.stats.Hits++
			c.directory.Visit(block) // Update LRU
			return inst, true
		}
	}

	c.stats.Misses++
	return nil, false
}

// Fill stores the decoded instruction starting at pc, evicting the least
// recently used block of the set if needed.
func (c *DecodeCache) Fill(pc uint16, inst *insts.Instruction) {
	c.stats.Fills++
	addr := blockAddr(pc)

	block := c.directory.Lookup(0, addr)
	if block == nil || !block.IsValid {
		block = c.directory.FindVictim(addr)
		if block == nil {
			return
		}

		if block.IsValid {
			c.stats.Evictions++
		}

		block.Tag = addr
		block.IsValid = true
		block.IsDirty = false
		c.dataStore[c.blockIndex(block)] = [blockSize]*insts.Instruction{}
	}

	c.dataStore[c.blockIndex(block)][pc%blockSize] = inst
	c.directory.Visit(block) // Update LRU
}

// Invalidate drops every cached instruction whose two bytes include addr:
// the ones starting at addr and at addr-1.
func (c *DecodeCache) Invalidate(addr uint16) {
	addr &= emu.AddrMask
	c.invalidateBlock(blockAddr(addr))
	if addr%blockSize == 0 {
		c.invalidateBlock(blockAddr((addr - 1) & emu.AddrMask))
	}
}

func (c *DecodeCache) invalidateBlock(addr uint64) {
	block := c.directory.Lookup(0, addr)
	if block != nil && block.IsValid {
		block.IsValid = false
		c.dataStore[c.blockIndex(block)] = [blockSize]*insts.Instruction{}
		c.stats.Invalidations++
	}
}

// Resident returns the number of cached instructions.
func (c *DecodeCache) Resident() int {
	n := 0
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if !block.IsValid {
				continue
			}
			for _, inst := range c.dataStore[c.blockIndex(block)] {
				if inst != nil {
					n++
				}
			}
		}
	}
	return n
}

// Reset invalidates every entry. Statistics are kept.
func (c *DecodeCache) Reset() {
	c.directory.Reset()
	for i := range c.dataStore {
		c.dataStore[i] = [blockSize]*insts.Instruction{}
	}
}
