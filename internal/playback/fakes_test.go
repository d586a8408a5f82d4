package playback

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/linuxmatters/asciireel/internal/renderer"
)

// fakeOutput advances its position by step on every Position call while
// playing, so tests control audio progress without a real device.
type fakeOutput struct {
	pos      time.Duration
	duration time.Duration
	step     time.Duration
	playing  bool
	stops    int
	playErr  error
}

func (o *fakeOutput) Position() time.Duration {
	p := o.pos
	if o.playing && o.stops == 0 {
		o.pos += o.step
		if o.pos > o.duration {
			o.pos = o.duration
		}
	}
	return p
}

func (o *fakeOutput) Duration() time.Duration { return o.duration }

func (o *fakeOutput) Play() error {
	if o.playErr != nil {
		return o.playErr
	}
	o.playing = true
	return nil
}

func (o *fakeOutput) Pause() error {
	o.playing = false
	return nil
}

func (o *fakeOutput) Stop() error {
	o.playing = false
	o.stops++
	return nil
}

// noControl marks a poll with nothing pending
const noControl Control = -1

type fakeControls struct {
	polls  []Control
	polled int
	waits  []Control
	resets int
	err    error // returned once waits run out
}

func (c *fakeControls) Poll() (Control, bool) {
	i := c.polled
	c.polled++
	if i >= len(c.polls) || c.polls[i] == noControl {
		return 0, false
	}
	return c.polls[i], true
}

func (c *fakeControls) Wait(ctx context.Context) (Control, error) {
	if len(c.waits) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		return 0, errors.New("no more input")
	}
	next := c.waits[0]
	c.waits = c.waits[1:]
	return next, nil
}

func (c *fakeControls) Reset() {
	c.resets++
	c.polled = 0
}

type fakeDisplay struct {
	clears int
	homes  int
	writes []string
}

func (d *fakeDisplay) Clear() error { d.clears++; return nil }
func (d *fakeDisplay) Home() error { d.homes++; return nil }

func (d *fakeDisplay) Write(text string) error {
	d.writes = append(d.writes, text)
	return nil
}

func (d *fakeDisplay) contains(s string) bool {
	for _, w := range d.writes {
		if strings.Contains(w, s) {
			return true
		}
	}
	return false
}

// testFrames builds n one-row frames; frame i renders as the digit i%10
func testFrames(n int) []renderer.Frame {
	p := renderer.MustPalette("0123456789")
	frames := make([]renderer.Frame, n)
	for i := range frames {
		img := solid(float64(i%10) / 10)
		frames[i] = renderer.Rasterize(img, 1, 1, p)
	}
	return frames
}

// solid returns a 1x1 gray image whose brightness is b
func solid(b float64) image.Image {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: uint8(b*255 + 0.5)})
	return img
}
