package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	w := New("/tmp/reel", "")

	if got, want := w.FramesDir(), filepath.Join("/tmp/reel", "cvf", "frames"); got != want {
		t.Errorf("FramesDir() = %q, want %q", got, want)
	}
	if got, want := w.AudioPath(), filepath.Join("/tmp/reel", "cvf", "audio.wav"); got != want {
		t.Errorf("AudioPath() = %q, want %q", got, want)
	}
	if got, want := New("/tmp/reel", "flac").AudioPath(), filepath.Join("/tmp/reel", "cvf", "audio.flac"); got != want {
		t.Errorf("AudioPath() = %q, want %q", got, want)
	}
}

func TestReset(t *testing.T) {
	w := New(t.TempDir(), "wav")

	// Leftovers from a previous video
	if err := os.MkdirAll(w.FramesDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(w.FramesDir(), "1.bmp")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(w.AudioPath(), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := w.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale frame survived Reset: %v", err)
	}
	if _, err := os.Stat(w.AudioPath()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale audio survived Reset: %v", err)
	}
	info, err := os.Stat(w.FramesDir())
	if err != nil || !info.IsDir() {
		t.Errorf("frames directory missing after Reset: %v", err)
	}
}

func TestResetFresh(t *testing.T) {
	w := New(t.TempDir(), "wav")
	if err := w.Reset(); err != nil {
		t.Fatalf("Reset on empty root failed: %v", err)
	}
}

func TestSaveArt(t *testing.T) {
	w := New(t.TempDir(), "wav")

	path, err := w.SaveArt("cat", "#%\n .\n")
	if err != nil {
		t.Fatalf("SaveArt failed: %v", err)
	}
	if path != filepath.Join(w.ImagesDir(), "cat.txt") {
		t.Errorf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "#%\n .\n" {
		t.Errorf("saved %q", data)
	}
}

func TestSaveArtInvalidName(t *testing.T) {
	w := New(t.TempDir(), "wav")

	for _, name := range []string{"", "  ", "..", "a/b", `a\b`} {
		if _, err := w.SaveArt(name, "x"); !errors.Is(err, ErrInvalidName) {
			t.Errorf("SaveArt(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}
