package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Rendering settings
const (
	// Palette runs from dimmest to brightest
	Palette = " .-+*wvGHM#&%"

	// AspectCorrection compensates for terminal cells being taller than wide
	AspectCorrection = 0.45
)

// Scratch workspace layout
const (
	ScratchDir   = "cvf"
	FramesSubdir = "frames"
	FrameExt     = "bmp"
	AudioFormat  = "wav"
	AudioBase    = "audio"
	ImagesDir    = "images" // saved still-image art
)

// Terminal margins subtracted from the detected window size
const (
	WidthMargin  = 1
	HeightMargin = 2

	// Fallbacks when stdout is not a terminal
	DefaultWidth  = 120
	DefaultHeight = 40
)

// Playback settings
const (
	RenderYield     = 30 * time.Millisecond // pause between render loop iterations
	FramesPerBuffer = 1024                  // PortAudio buffer size in frames
)

// FFmpegBinary is the default extraction executable
const FFmpegBinary = "ffmpeg"

// EnvPrefix names the flag environment overrides, e.g. ASCIIREEL_WIDTH for --width
const EnvPrefix = "ASCIIREEL"

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env") into the
// process environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
