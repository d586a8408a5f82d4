package terminal

import (
	"bytes"
	"os"
	"testing"

	"github.com/linuxmatters/asciireel/internal/config"
)

func TestScreenHomeAndWrite(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf, false)

	if err := s.Home(); err != nil {
		t.Fatal(err)
	}
	if err := s.Write("ab\ncd\n"); err != nil {
		t.Fatal(err)
	}

	if got, want := buf.String(), "\x1b[Hab\ncd\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestScreenRawTranslatesNewlines(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf, true)

	if err := s.Write("ab\ncd\n"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "ab\r\ncd\r\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestScreenClear(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf, false)

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != cursorHome+clearScreen {
		t.Errorf("output = %q", got)
	}
}

func TestSizeFallsBackWhenNotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w, h := Size(f)
	if w != config.DefaultWidth || h != config.DefaultHeight {
		t.Errorf("Size = %dx%d, want defaults %dx%d", w, h, config.DefaultWidth, config.DefaultHeight)
	}
}
