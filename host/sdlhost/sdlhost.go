// Package sdlhost runs the simulator in an SDL2 window.
//
// SDL must be driven from the main OS thread. Callers run their program
// under mainthread.Run; every SDL call in this package goes through
// mainthread.Call.
package sdlhost

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/faiface/mainthread"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/host"
)

// Title is the window title.
const Title = "c8sim"

// Window is an SDL window that implements both host.Display and
// host.KeySource.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// RGBA texture buffer for the current frame.
	buffer []byte
	fg, bg color.RGBA

	// Keypad key for each mapped scancode.
	keyMap map[sdl.Scancode]uint8
	quit   bool
}

var (
	_ host.Display   = (*Window)(nil)
	_ host.KeySource = (*Window)(nil)
)

// Open creates a window of 64*scale x 32*scale pixels. keyMap maps SDL key
// names (such as "Q" or "Keypad 1") to keypad keys.
func Open(scale int, fg, bg color.RGBA, keyMap map[string]uint8) (*Window, error) {
	w := &Window{
		buffer: make([]byte, emu.Width*emu.Height*4),
		fg:     fg,
		bg:     bg,
		keyMap: make(map[sdl.Scancode]uint8, len(keyMap)),
	}

	var err error
	mainthread.Call(func() {
		err = w.open(scale, keyMap)
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Window) open(scale int, keyMap map[string]uint8) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL: %w", err)
	}

	for name, key := range keyMap {
		code := sdl.GetScancodeFromName(strings.ToUpper(name))
		if code == sdl.SCANCODE_UNKNOWN {
			code = sdl.GetScancodeFromName(name)
		}
		if code == sdl.SCANCODE_UNKNOWN {
			continue
		}
		w.keyMap[code] = key & 0xF
	}

	window, err := sdl.CreateWindow(Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(emu.Width*scale), int32(emu.Height*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	// The texture is exactly the framebuffer size; the renderer stretches
	// it to the window.
	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_RGBA32),
		sdl.TEXTUREACCESS_STREAMING,
		emu.Width, emu.Height)
	if err != nil {
		_ = renderer.Destroy()
		_ = window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}

	w.window = window
	w.renderer = renderer
	w.texture = texture

	return nil
}

// Close destroys the window and shuts SDL down.
func (w *Window) Close() {
	mainthread.Call(func() {
		_ = w.texture.Destroy()
		_ = w.renderer.Destroy()
		_ = w.window.Destroy()
		sdl.Quit()
	})
}

// Render implements host.Display.
func (w *Window) Render(fb *emu.Framebuffer) error {
	host.FillRGBA(w.buffer, fb, w.fg, w.bg)

	var err error
	mainthread.Call(func() {
		if err = w.texture.Update(nil, w.buffer, emu.Width*4); err != nil {
			return
		}
		if err = w.renderer.Copy(w.texture, nil, nil); err != nil {
			return
		}
		w.renderer.Present()
	})
	if err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

// Keys implements host.KeySource. It drains pending window events and
// samples the keyboard.
func (w *Window) Keys() emu.KeyState {
	var state emu.KeyState
	mainthread.Call(func() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				w.quit = true
			case *sdl.KeyboardEvent:
				if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
					w.quit = true
				}
			}
		}

		pressed := sdl.GetKeyboardState()
		for code, key := range w.keyMap {
			if int(code) < len(pressed) && pressed[code] != 0 {
				state[key] = true
			}
		}
	})
	return state
}

// Quit implements host.KeySource.
func (w *Window) Quit() bool {
	return w.quit
}
