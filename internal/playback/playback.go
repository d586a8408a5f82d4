// Package playback drives character-art frames in lock-step with an audio
// output. The frame on screen is always derived from the audio position.
package playback

import (
	"context"
	"fmt"
	"time"
)

// Clock reports the live position of an audio output and the track length.
// Position must never block.
type Clock interface {
	Position() time.Duration
	Duration() time.Duration
}

// Output is an opened audio handle. Stop releases the handle and is safe to
// call more than once.
type Output interface {
	Clock
	Play() error
	Pause() error
	Stop() error
}

// Opener opens a fresh audio handle positioned at the start of the track
type Opener func(path string) (Output, error)

// Display is the surface frames are drawn on
type Display interface {
	Clear() error
	Home() error
	Write(text string) error
}

// Control is a discrete transport input
type Control int

const (
	ControlConfirm Control = iota
	ControlPauseResume
	ControlCancel
)

func (c Control) String() string {
	switch c {
	case ControlConfirm:
		return "confirm"
	case ControlPauseResume:
		return "pause/resume"
	case ControlCancel:
		return "cancel"
	default:
		return fmt.Sprintf("control(%d)", int(c))
	}
}

// Controls is a pollable source of transport input
type Controls interface {
	// Poll returns a pending control without blocking
	Poll() (Control, bool)
	// Wait blocks until a control arrives or ctx is done
	Wait(ctx context.Context) (Control, error)
	// Reset discards controls queued before a new attempt
	Reset()
}

// State is the transport state of one playback attempt
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome records how an attempt reached StateStopped
type Outcome int

const (
	// OutcomeFinished means the audio or the frames ran out
	OutcomeFinished Outcome = iota
	// OutcomeCancelled means a stop control or context cancellation
	OutcomeCancelled
)

func (o Outcome) String() string {
	if o == OutcomeFinished {
		return "finished"
	}
	return "cancelled"
}

// AudioOpenError reports an audio track that could not be opened for an attempt
type AudioOpenError struct {
	Path string
	Err  error
}

func (e *AudioOpenError) Error() string {
	return fmt.Sprintf("open audio %s: %v", e.Path, e.Err)
}

func (e *AudioOpenError) Unwrap() error {
	return e.Err
}

// FrameIndex maps an audio position onto a sequence of frameCount frames:
// floor(position / duration * frameCount). ok is false once either the audio
// or the frames are exhausted, whichever comes first.
func FrameIndex(position, duration time.Duration, frameCount int) (index int, ok bool) {
	if frameCount <= 0 || duration <= 0 || position >= duration {
		return frameCount, false
	}
	if position < 0 {
		position = 0
	}
	index = int(float64(position) / float64(duration) * float64(frameCount))
	if index >= frameCount {
		return frameCount, false
	}
	return index, true
}
