package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// ErrPlayerStopped is returned when playing a player that was stopped
var ErrPlayerStopped = errors.New("player stopped")

// Initialize initializes the audio system; call once per process
func Initialize() error {
	return portaudio.Initialize()
}

// Terminate releases the audio system
func Terminate() error {
	return portaudio.Terminate()
}

// Player streams one audio file to the default output device. The position
// advances only as the device consumes frames, so it freezes while paused
// and stops at the track duration.
type Player struct {
	stream *portaudio.Stream
	src    *source
	cursor *cursor

	mu      sync.Mutex
	started bool
	stopped bool
	stopErr error
}

// OpenPlayer opens filename and an output stream for it, positioned at the
// start of the track. framesPerBuffer sizes the device buffer.
func OpenPlayer(filename string, framesPerBuffer int) (*Player, error) {
	dec, err := NewDecoder(filename)
	if err != nil {
		return nil, err
	}
	return NewPlayer(dec, framesPerBuffer)
}

// NewPlayer takes ownership of dec, starts decoding ahead of the device and
// opens an output stream matching its format
func NewPlayer(dec Decoder, framesPerBuffer int) (*Player, error) {
	src, err := newSource(dec, 0)
	if err != nil {
		return nil, err
	}

	c := newCursor(src)
	stream, err := portaudio.OpenDefaultStream(
		0,
		src.channels,
		float64(src.sampleRate),
		framesPerBuffer,
		c.fill,
	)
	if err != nil {
		src.close()
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}
	return &Player{stream: stream, src: src, cursor: c}, nil
}

// Play starts or resumes output
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrPlayerStopped
	}
	p.cursor.paused.Store(false)
	if !p.started {
		if err := p.stream.Start(); err != nil {
			return err
		}
		p.started = true
	}
	return nil
}

// Pause silences output and freezes the position; the stream stays open
func (p *Player) Pause() error {
	p.cursor.paused.Store(true)
	return nil
}

// Stop halts output, closes the stream and ends decoding. Safe to call more
// than once.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return p.stopErr
	}
	p.stopped = true
	p.cursor.paused.Store(true)
	if p.started {
		if err := p.stream.Stop(); err != nil {
			p.stopErr = err
		}
	}
	if err := p.stream.Close(); err != nil && p.stopErr == nil {
		p.stopErr = err
	}
	if err := p.src.close(); err != nil && p.stopErr == nil {
		p.stopErr = err
	}
	return p.stopErr
}

// Position returns how much of the track has been handed to the device
func (p *Player) Position() time.Duration {
	return p.cursor.position()
}

// Duration returns the track length
func (p *Player) Duration() time.Duration {
	return p.src.duration()
}
