// Package config provides host configuration for the CHIP-8 simulator.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/sarchlab/c8sim/emu"
)

// Backend names accepted in Config.Backend.
const (
	BackendSDL      = "sdl"
	BackendTerminal = "term"
	BackendHeadless = "headless"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings of a simulator host.
type Config struct {
	// ClockHz is the number of instructions executed per second.
	// 0 runs unpaced. Default: 60, one instruction per display frame.
	ClockHz int `json:"clock_hz" yaml:"clock_hz"`

	// Scale is the size in window pixels of one framebuffer cell.
	// Default: 10.
	Scale int `json:"scale" yaml:"scale"`

	// Backend selects the host: "sdl", "term" or "headless".
	Backend string `json:"backend" yaml:"backend"`

	// Foreground and Background are "#RRGGBB" colors for set and clear
	// cells.
	Foreground string `json:"foreground" yaml:"foreground"`
	Background string `json:"background" yaml:"background"`

	// KeyMap maps host key names to keypad keys 0x0-0xF. Default is the
	// 4x4 block 1234/QWER/ASDF/ZXCV.
	KeyMap map[string]uint8 `json:"key_map" yaml:"key_map"`

	// HoldFrames is how many frames a key stays down after the terminal
	// reports it. Terminals do not report key release. Default: 6.
	HoldFrames int `json:"hold_frames" yaml:"hold_frames"`

	// TonePath, if set, receives a WAV recording of every tone.
	TonePath string `json:"tone_path" yaml:"tone_path"`

	// ToneHz is the pitch of the recorded square wave. Default: 440.
	ToneHz int `json:"tone_hz" yaml:"tone_hz"`

	// MaxCycles stops the run after this many instructions. 0 means no
	// limit.
	MaxCycles uint64 `json:"max_cycles" yaml:"max_cycles"`

	// DecodeCache enables the decoded-instruction cache.
	DecodeCache bool `json:"decode_cache" yaml:"decode_cache"`
}

// DefaultKeyMap returns the conventional layout of the hex keypad on the
// left of a QWERTY keyboard.
func DefaultKeyMap() map[string]uint8 {
	return map[string]uint8{
		"1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
		"q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
		"a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
		"z": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ClockHz:    60,
		Scale:      10,
		Backend:    BackendSDL,
		Foreground: "#FFFFFF",
		Background: "#000000",
		KeyMap:     DefaultKeyMap(),
		HoldFrames: 6,
		ToneHz:     440,
	}
}

// LoadConfig loads a Config from a JSON file, or a YAML file when the
// extension is .yaml or .yml. Settings missing from the file keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a file, as YAML when the extension is
// .yaml or .yml and as JSON otherwise.
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate checks that all settings are in range.
func (c *Config) Validate() error {
	if c.ClockHz < 0 {
		return fmt.Errorf("%w: clock_hz must be >= 0", ErrInvalid)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be > 0", ErrInvalid)
	}
	switch c.Backend {
	case BackendSDL, BackendTerminal, BackendHeadless:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if _, _, err := c.Palette(); err != nil {
		return err
	}
	for name, key := range c.KeyMap {
		if name == "" {
			return fmt.Errorf("%w: empty key name in key_map", ErrInvalid)
		}
		if key >= emu.NumKeys {
			return fmt.Errorf("%w: key_map[%q] = %d, must be < %d", ErrInvalid, name, key, emu.NumKeys)
		}
	}
	if c.HoldFrames <= 0 {
		return fmt.Errorf("%w: hold_frames must be > 0", ErrInvalid)
	}
	if c.TonePath != "" && c.ToneHz <= 0 {
		return fmt.Errorf("%w: tone_hz must be > 0", ErrInvalid)
	}
	return nil
}

// Palette returns the parsed foreground and background colors.
func (c *Config) Palette() (fg, bg color.RGBA, err error) {
	if fg, err = parseColor(c.Foreground); err != nil {
		return fg, bg, fmt.Errorf("%w: foreground: %w", ErrInvalid, err)
	}
	if bg, err = parseColor(c.Background); err != nil {
		return fg, bg, fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	return fg, bg, nil
}

func parseColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q is not #RRGGBB", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.KeyMap = maps.Clone(c.KeyMap)
	return &clone
}
