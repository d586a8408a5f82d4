// Package terminal implements the playback display surface and keyboard
// transport controls on an ANSI terminal.
package terminal

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/linuxmatters/asciireel/internal/config"
	"golang.org/x/term"
)

// Screen draws text frames by homing the cursor and overwriting in place
type Screen struct {
	w *bufio.Writer

	// raw translates "\n" to "\r\n" for terminals in raw mode
	raw bool
}

// NewScreen wraps w. Set raw when the terminal is in raw mode.
func NewScreen(w io.Writer, raw bool) *Screen {
	return &Screen{w: bufio.NewWriterSize(w, 64*1024), raw: raw}
}

// Clear blanks the screen and homes the cursor
func (s *Screen) Clear() error {
	if _, err := s.w.WriteString(cursorHome + clearScreen); err != nil {
		return err
	}
	return s.w.Flush()
}

// Home moves the cursor to the top-left cell
func (s *Screen) Home() error {
	_, err := s.w.WriteString(cursorHome)
	return err
}

// Write draws text at the cursor and flushes
func (s *Screen) Write(text string) error {
	if s.raw {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	if _, err := s.w.WriteString(text); err != nil {
		return err
	}
	return s.w.Flush()
}

// HideCursor hides the terminal cursor during playback
func (s *Screen) HideCursor() error {
	return s.Write(hideCursor)
}

// ShowCursor restores the terminal cursor
func (s *Screen) ShowCursor() error {
	return s.Write(showCursor)
}

// Size returns the frame dimensions that fit the terminal on f: one column
// and two rows fewer than the window. Falls back to defaults when f is not a
// terminal.
func Size(f *os.File) (width, height int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= config.WidthMargin || h <= config.HeightMargin {
		return config.DefaultWidth, config.DefaultHeight
	}
	return w - config.WidthMargin, h - config.HeightMargin
}
