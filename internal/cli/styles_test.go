package cli

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

func TestControlsBannerListsEveryKey(t *testing.T) {
	banner := ControlsBanner()
	for _, want := range []string{"Enter / y", "Space", "Esc / q", "pause or resume"} {
		if !strings.Contains(banner, want) {
			t.Errorf("controls banner missing %q:\n%s", want, banner)
		}
	}
}

func TestPlaybackSummary(t *testing.T) {
	done := PlaybackSummary(100, 90, 3*time.Second, false)
	if !strings.Contains(done, "Playback complete") || !strings.Contains(done, "90 of 100 shown") {
		t.Errorf("unexpected summary:\n%s", done)
	}
	if !strings.Contains(done, "30.00 fps") {
		t.Errorf("summary missing frame rate:\n%s", done)
	}

	stopped := PlaybackSummary(100, 10, time.Second, true)
	if !strings.Contains(stopped, "Stopped") {
		t.Errorf("cancelled summary should say Stopped:\n%s", stopped)
	}
}

func TestSavedArtNotice(t *testing.T) {
	notice := SavedArtNotice("images/cat.txt", 80, 24)
	for _, want := range []string{"Art saved", "images/cat.txt", "80x24"} {
		if !strings.Contains(notice, want) {
			t.Errorf("saved art notice missing %q:\n%s", want, notice)
		}
	}
}

func TestPrintSectionAndBoxWriteStdout(t *testing.T) {
	out := captureStdout(t, func() {
		PrintSection("cat.png")
		PrintBox(SavedArtNotice("images/cat.txt", 80, 24))
	})
	if !strings.Contains(out, "cat.png") || !strings.Contains(out, "images/cat.txt") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	fn()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestFormatFPS(t *testing.T) {
	testCases := []struct {
		frames int
		d      time.Duration
		want   string
	}{
		{24, time.Second, "24.00 fps"},
		{0, time.Second, "0.00 fps"},
		{10, 0, "n/a"},
	}
	for _, tc := range testCases {
		if got := FormatFPS(tc.frames, tc.d); got != tc.want {
			t.Errorf("FormatFPS(%d, %v) = %q, want %q", tc.frames, tc.d, got, tc.want)
		}
	}
}
