package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

func parse(t *testing.T, args ...string) App {
	t.Helper()
	var app App
	parser, err := kong.New(&app, options()...)
	if err != nil {
		t.Fatalf("building parser: %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse(%q) failed: %v", args, err)
	}
	return app
}

func TestEnvironmentOverridesFlagDefaults(t *testing.T) {
	t.Setenv("ASCIIREEL_WIDTH", "40")
	t.Setenv("ASCIIREEL_AUDIO_FORMAT", "flac")
	t.Setenv("ASCIIREEL_WORKERS", "3")

	app := parse(t, "play", "clip.mp4")
	if app.Play.Width != 40 {
		t.Errorf("Width = %d, want 40", app.Play.Width)
	}
	if app.Play.AudioFormat != "flac" {
		t.Errorf("AudioFormat = %q, want flac", app.Play.AudioFormat)
	}
	if app.Play.Workers != 3 {
		t.Errorf("Workers = %d, want 3", app.Play.Workers)
	}

	img := parse(t, "image", "still.png")
	if img.Image.Width != 40 {
		t.Errorf("image Width = %d, want 40", img.Image.Width)
	}
}

func TestFlagsBeatEnvironment(t *testing.T) {
	t.Setenv("ASCIIREEL_WIDTH", "40")

	app := parse(t, "play", "--width=100", "clip.mp4")
	if app.Play.Width != 100 {
		t.Errorf("Width = %d, want 100", app.Play.Width)
	}
}

func TestDefaultsWithoutEnvironment(t *testing.T) {
	app := parse(t, "clip.mp4")
	if app.Play.Input != "clip.mp4" {
		t.Errorf("Input = %q, want clip.mp4", app.Play.Input)
	}
	if app.Play.AudioFormat != "wav" {
		t.Errorf("AudioFormat = %q, want wav", app.Play.AudioFormat)
	}
}
