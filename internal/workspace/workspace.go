// Package workspace manages the scratch directory that holds extracted
// frames and audio, and the directory where converted still images are saved.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linuxmatters/asciireel/internal/config"
)

var ErrInvalidName = errors.New("invalid art name")

// Workspace is rooted at a directory the user chooses, usually the current one
type Workspace struct {
	Root        string
	AudioFormat string
}

func New(root, audioFormat string) *Workspace {
	if audioFormat == "" {
		audioFormat = config.AudioFormat
	}
	return &Workspace{Root: root, AudioFormat: audioFormat}
}

// Scratch is the directory holding one video's intermediate files
func (w *Workspace) Scratch() string {
	return filepath.Join(w.Root, config.ScratchDir)
}

func (w *Workspace) FramesDir() string {
	return filepath.Join(w.Scratch(), config.FramesSubdir)
}

func (w *Workspace) AudioPath() string {
	return filepath.Join(w.Scratch(), config.AudioBase+"."+w.AudioFormat)
}

func (w *Workspace) ImagesDir() string {
	return filepath.Join(w.Root, config.ImagesDir)
}

// Reset discards frames and audio left by a previous run and recreates an
// empty frames directory.
func (w *Workspace) Reset() error {
	if err := os.RemoveAll(w.FramesDir()); err != nil {
		return fmt.Errorf("clearing frames: %w", err)
	}
	if err := os.Remove(w.AudioPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing audio: %w", err)
	}
	if err := os.MkdirAll(w.FramesDir(), 0o755); err != nil {
		return fmt.Errorf("creating frames directory: %w", err)
	}
	return nil
}

// SaveArt writes art to <images>/<name>.txt and returns the path written
func (w *Workspace) SaveArt(name, art string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if err := os.MkdirAll(w.ImagesDir(), 0o755); err != nil {
		return "", fmt.Errorf("creating images directory: %w", err)
	}

	path := filepath.Join(w.ImagesDir(), name+".txt")
	if err := os.WriteFile(path, []byte(art), 0o644); err != nil {
		return "", fmt.Errorf("saving art: %w", err)
	}
	return path, nil
}
