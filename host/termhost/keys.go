package termhost

import (
	"context"
	"errors"
	"io"
	"sync"
	"unicode"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
)

// Control bytes that end the session. Raw mode delivers Ctrl-C as a byte
// instead of a signal.
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// Keys is a host.KeySource fed from terminal input. Terminals report key
// presses but not releases, so a pressed key is held for a fixed number
// of Keys calls.
type Keys struct {
	mu         sync.Mutex
	keyMap     map[rune]uint8
	holdFrames int
	held       [emu.NumKeys]int
	quit       bool
}

var _ host.KeySource = (*Keys)(nil)

// NewKeys creates a key source. keyMap maps single-character key names to
// keypad keys; names are matched case-insensitively.
func NewKeys(keyMap map[string]uint8, holdFrames int) *Keys {
	k := &Keys{
		keyMap:     make(map[rune]uint8, len(keyMap)),
		holdFrames: holdFrames,
	}
	for name, key := range keyMap {
		runes := []rune(name)
		if len(runes) != 1 {
			continue
		}
		k.keyMap[unicode.ToLower(runes[0])] = key & 0xF
	}
	return k
}

// Feed handles one input byte.
func (k *Keys) Feed(b byte) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch b {
	case keyCtrlC, keyEscape:
		k.quit = true
		return
	}

	if key, ok := k.keyMap[unicode.ToLower(rune(b))]; ok {
		k.held[key] = k.holdFrames
	}
}

// Stop makes Quit report true.
func (k *Keys) Stop() {
	k.mu.Lock()
	k.quit = true
	k.mu.Unlock()
}

// Keys implements host.KeySource. Each call ages held keys by one frame.
func (k *Keys) Keys() emu.KeyState {
	k.mu.Lock()
	defer k.mu.Unlock()

	var state emu.KeyState
	for i, n := range k.held {
		if n > 0 {
			state[i] = true
			k.held[i]--
		}
	}
	return state
}

// Quit implements host.KeySource.
func (k *Keys) Quit() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.quit
}

// ReadLoop feeds bytes from r until ctx is cancelled, r is exhausted or a
// quit key arrives. r should return periodically, for example a tty with a
// read timeout, so that cancellation is noticed.
func (k *Keys) ReadLoop(ctx context.Context, r io.Reader) error {
	buf := make([]byte, 16)
	for ctx.Err() == nil && !k.Quit() {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			k.Feed(b)
		}
		if errors.Is(err, io.EOF) && n == 0 {
			k.Stop()
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return nil
}
