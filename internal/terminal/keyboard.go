package terminal

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/linuxmatters/asciireel/internal/playback"
	"golang.org/x/term"
)

// Key bytes recognised as transport controls
const (
	keyCtrlC  = 0x03
	keyLF     = '\n'
	keyCR     = '\r'
	keyEscape = 0x1b
	keySpace  = ' '
)

// ParseKeys maps one read from the terminal to controls. CSI and SS3 escape
// sequences (arrow keys, function keys) are skipped; any other Esc is a key.
func ParseKeys(b []byte) []playback.Control {
	var controls []playback.Control
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case keyCR, keyLF, 'y', 'Y':
			controls = append(controls, playback.ControlConfirm)
		case keySpace:
			controls = append(controls, playback.ControlPauseResume)
		case keyEscape:
			if n := escapeLen(b[i:]); n > 0 {
				i += n - 1
				continue
			}
			controls = append(controls, playback.ControlCancel)
		case keyCtrlC, 'n', 'N', 'q', 'Q':
			controls = append(controls, playback.ControlCancel)
		}
	}
	return controls
}

// escapeLen returns the length of the CSI ("ESC [") or SS3 ("ESC O")
// sequence at the start of b, or 0 when b starts with a lone Esc
func escapeLen(b []byte) int {
	if len(b) < 2 {
		return 0
	}
	switch b[1] {
	case 'O':
		return min(3, len(b))
	case '[':
		// Parameter and intermediate bytes run until a final byte in 0x40-0x7e
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return i + 1
			}
		}
		return len(b)
	}
	return 0
}

// Keyboard turns key presses into transport controls. A single reader
// goroutine feeds a buffered channel that Poll drains without blocking.
type Keyboard struct {
	events chan playback.Control
	done   chan struct{}

	closeOnce sync.Once
	restore   func() error
}

// OpenKeyboard puts the terminal on f into raw mode and starts reading keys.
// Close restores the terminal.
func OpenKeyboard(f *os.File) (*Keyboard, error) {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	k := NewKeyboard(f)
	k.restore = func() error { return term.Restore(fd, state) }
	return k, nil
}

// NewKeyboard reads controls from r without touching terminal modes
func NewKeyboard(r io.Reader) *Keyboard {
	k := &Keyboard{
		events: make(chan playback.Control, 16),
		done:   make(chan struct{}),
	}
	go k.read(r)
	return k
}

func (k *Keyboard) read(r io.Reader) {
	defer close(k.events)

	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, c := range ParseKeys(buf[:n]) {
			select {
			case k.events <- c:
			case <-k.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Poll returns a pending control without blocking
func (k *Keyboard) Poll() (playback.Control, bool) {
	select {
	case c, ok := <-k.events:
		return c, ok
	default:
		return 0, false
	}
}

// Wait blocks until a control arrives. Returns io.EOF once input is exhausted.
func (k *Keyboard) Wait(ctx context.Context) (playback.Control, error) {
	select {
	case c, ok := <-k.events:
		if !ok {
			return 0, io.EOF
		}
		return c, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Reset discards queued controls
func (k *Keyboard) Reset() {
	for {
		select {
		case _, ok := <-k.events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Close stops delivering controls and restores the terminal mode
func (k *Keyboard) Close() error {
	var err error
	k.closeOnce.Do(func() {
		close(k.done)
		if k.restore != nil {
			err = k.restore()
		}
	})
	return err
}
