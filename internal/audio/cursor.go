package audio

import (
	"sync/atomic"
	"time"
)

// cursor feeds a source to an output callback. The callback is the only
// writer of frame; position may be read from any goroutine.
type cursor struct {
	src    *source
	frame  atomic.Int64
	paused atomic.Bool
}

func newCursor(src *source) *cursor {
	return &cursor{src: src}
}

// fill copies the next frames into out (interleaved). While paused, or when
// the decoder has not caught up, the rest of out is silence and the position
// does not advance.
func (c *cursor) fill(out []float32) {
	if c.paused.Load() {
		clear(out)
		return
	}

	n := c.src.read(out)
	clear(out[n:])
	c.frame.Add(int64(n / c.src.channels))
}

func (c *cursor) position() time.Duration {
	return framesToDuration(c.frame.Load(), c.src.sampleRate)
}
