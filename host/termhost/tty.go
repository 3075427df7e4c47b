package termhost

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pkg/term"
)

// ReadTimeout bounds how long a tty read blocks before ReadLoop checks
// for cancellation.
const ReadTimeout = 50 * time.Millisecond

// TTY is a terminal device in raw mode.
type TTY struct {
	t *term.Term
}

// OpenTTY opens the named device, usually /dev/tty, in raw mode.
func OpenTTY(device string) (*TTY, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}

	if err := t.SetReadTimeout(ReadTimeout); err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	return &TTY{t: t}, nil
}

// Read reads raw input. It returns 0 bytes and no error when the timeout
// expires; the device reports that case as io.EOF.
func (t *TTY) Read(p []byte) (int, error) {
	n, err := t.t.Read(p)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}

// Close restores the saved terminal mode and closes the device.
func (t *TTY) Close() error {
	if err := t.t.Restore(); err != nil {
		_ = t.t.Close()
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return t.t.Close()
}
