// Package extract runs ffmpeg to split a media file into numbered still
// frames and a single audio track.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/asciireel/internal/sequence"
)

// Stage names the extraction step that failed
type Stage string

const (
	StageFrames Stage = "frames"
	StageAudio  Stage = "audio"
)

// ExtractionError reports a failed or empty extraction
type ExtractionError struct {
	Stage Stage
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Runner executes an external command
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command and folds its stderr into the error
func ExecRunner(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, lastLine(msg))
		}
		return err
	}
	return nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Extractor drives ffmpeg
type Extractor struct {
	Binary   string // ffmpeg executable
	FrameExt string // still image extension, e.g. "bmp"
	Run      Runner
}

// New returns an Extractor using the ffmpeg binary at path
func New(binary, frameExt string) *Extractor {
	return &Extractor{Binary: binary, FrameExt: frameExt, Run: ExecRunner}
}

// Frames writes input's video frames, scaled to width x height, into dir as
// 1.<ext>, 2.<ext>, … and returns how many were produced.
func (e *Extractor) Frames(ctx context.Context, input, dir string, width, height int) (int, error) {
	pattern := filepath.Join(dir, "%d."+e.FrameExt)
	err := e.Run(ctx, e.Binary,
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", input,
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		pattern,
	)
	if err != nil {
		return 0, &ExtractionError{Stage: StageFrames, Err: err}
	}

	count, err := sequence.Discover(dir, e.FrameExt)
	if err != nil {
		return 0, &ExtractionError{Stage: StageFrames, Err: err}
	}
	if count == 0 {
		return 0, &ExtractionError{Stage: StageFrames, Err: fmt.Errorf("no frames produced from %s", input)}
	}
	return count, nil
}

// Audio writes input's first audio track to out; the container follows
// out's extension (.wav, .mp3 or .flac).
func (e *Extractor) Audio(ctx context.Context, input, out string) error {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", input,
		"-vn",
	}
	if strings.EqualFold(filepath.Ext(out), ".wav") {
		args = append(args, "-c:a", "pcm_s16le")
	}
	args = append(args, out)

	if err := e.Run(ctx, e.Binary, args...); err != nil {
		return &ExtractionError{Stage: StageAudio, Err: err}
	}
	return nil
}
