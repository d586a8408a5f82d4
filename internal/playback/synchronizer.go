package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/linuxmatters/asciireel/internal/renderer"
)

// Synchronizer runs one playback attempt over a shared frame sequence
type Synchronizer struct {
	frames   []renderer.Frame
	display  Display
	controls Controls
	yield    time.Duration

	state State

	// OnRender, when set, observes every rendered frame index
	OnRender func(index int, state State)
}

// NewSynchronizer creates a synchronizer in StateIdle. yield is the pause
// between loop iterations; zero spins.
func NewSynchronizer(frames []renderer.Frame, display Display, controls Controls, yield time.Duration) *Synchronizer {
	return &Synchronizer{
		frames:   frames,
		display:  display,
		controls: controls,
		yield:    yield,
		state:    StateIdle,
	}
}

// State returns the current transport state
func (s *Synchronizer) State() State {
	return s.state
}

// Play starts out and renders until the audio or frames run out, a cancel
// control arrives, or ctx is done. out is stopped on every return path.
func (s *Synchronizer) Play(ctx context.Context, out Output) (Outcome, error) {
	defer func() {
		_ = out.Stop()
		s.state = StateStopped
	}()

	if err := out.Play(); err != nil {
		return OutcomeCancelled, fmt.Errorf("failed to start audio: %w", err)
	}
	s.state = StatePlaying

	var timer *time.Timer
	if s.yield > 0 {
		timer = time.NewTimer(s.yield)
		defer timer.Stop()
	}

	for {
		if ctx.Err() != nil {
			return OutcomeCancelled, nil
		}

		index, ok := FrameIndex(out.Position(), out.Duration(), len(s.frames))
		if !ok {
			return OutcomeFinished, nil
		}

		if err := s.render(index); err != nil {
			return OutcomeCancelled, err
		}

		if c, pending := s.controls.Poll(); pending {
			stop, err := s.handle(c, out)
			if err != nil {
				return OutcomeCancelled, err
			}
			if stop {
				return OutcomeCancelled, nil
			}
		}

		if timer == nil {
			continue
		}
		timer.Reset(s.yield)
		select {
		case <-ctx.Done():
			return OutcomeCancelled, nil
		case <-timer.C:
		}
	}
}

func (s *Synchronizer) render(index int) error {
	if err := s.display.Home(); err != nil {
		return fmt.Errorf("failed to reposition display: %w", err)
	}
	if err := s.display.Write(s.frames[index].String()); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", index, err)
	}
	if s.OnRender != nil {
		s.OnRender(index, s.state)
	}
	return nil
}

// handle applies a transport control; stop reports an explicit cancel
func (s *Synchronizer) handle(c Control, out Output) (stop bool, err error) {
	switch c {
	case ControlPauseResume:
		if s.state == StatePlaying {
			if err := out.Pause(); err != nil {
				return false, fmt.Errorf("failed to pause audio: %w", err)
			}
			s.state = StatePaused
			return false, nil
		}
		if err := out.Play(); err != nil {
			return false, fmt.Errorf("failed to resume audio: %w", err)
		}
		s.state = StatePlaying
	case ControlCancel:
		return true, nil
	}
	return false, nil
}
