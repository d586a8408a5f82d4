// Package sequence turns a directory of numbered frame images into an
// ordered, in-memory sequence of character frames.
package sequence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/linuxmatters/asciireel/internal/renderer"
	"golang.org/x/sync/errgroup"
)

// Sequence is an ordered, read-only list of frames. File 1.<ext> is index 0.
type Sequence []renderer.Frame

// Len returns the number of frames
func (s Sequence) Len() int {
	return len(s)
}

// ProgressFunc receives (current, total) after each frame is rasterized.
// Calls are serialized and current grows by one per call.
type ProgressFunc func(current, total int)

// Loader rasterizes numbered frame images from Dir
type Loader struct {
	Dir     string
	Ext     string // without the dot, e.g. "bmp"
	Width   int
	Height  int
	Palette renderer.Palette
	Workers int // <= 0 means runtime.NumCPU()
}

// Discover counts the files in dir carrying the extension ext. This is the
// logical frame total; the numbered files actually present may be fewer.
func Discover(dir, ext string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read frames directory: %w", err)
	}
	suffix := "." + strings.ToLower(ext)
	count := 0
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			count++
		}
	}
	return count, nil
}

// FramePath returns the path of the 1-based frame index
func (l *Loader) FramePath(index int) string {
	return filepath.Join(l.Dir, strconv.Itoa(index)+"."+l.Ext)
}

// available returns how many of 1..total exist before the first gap
func (l *Loader) available(total int) int {
	for i := 1; i <= total; i++ {
		if _, err := os.Stat(l.FramePath(i)); err != nil {
			return i - 1
		}
	}
	return total
}

// Load discovers and rasterizes the frames. A missing file ends the sequence
// early without error; an undecodable file aborts the load with a
// *renderer.DecodeError.
func (l *Loader) Load(ctx context.Context, progress ProgressFunc) (Sequence, error) {
	total, err := Discover(l.Dir, l.Ext)
	if err != nil {
		return nil, err
	}
	count := l.available(total)
	frames := make(Sequence, count)
	if count == 0 {
		return frames, nil
	}

	workers := l.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		if progress != nil {
			progress(done, total)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frame, err := renderer.RasterizeFile(l.FramePath(i+1), l.Width, l.Height, l.Palette)
			if err != nil {
				return err
			}
			frames[i] = frame
			report()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}
