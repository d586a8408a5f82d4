package playback

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/linuxmatters/asciireel/internal/renderer"
)

// Prompts are the texts the session writes between attempts
type Prompts struct {
	Banner string // shown before the first attempt
	Done   string // shown after each attempt, followed by Replay
	Replay string
}

// Session is the outer replay loop around playback attempts. It owns at most
// one audio handle at a time.
type Session struct {
	Frames    []renderer.Frame
	AudioPath string
	Open      Opener
	Display   Display
	Controls  Controls
	Yield     time.Duration
	Prompts   Prompts

	// OnRender is handed to each attempt's Synchronizer
	OnRender func(index int, state State)
	// OnAttempt, when set, is called with each attempt's outcome before the
	// Done prompt is shown
	OnAttempt func(attempt int, outcome Outcome)
}

// Run shows the banner and waits for confirm (play) or cancel (quit). After
// every attempt it offers a replay. An audio track that cannot be opened ends
// the session with *AudioOpenError before any frame is rendered.
func (s *Session) Run(ctx context.Context) error {
	if err := s.show(s.Prompts.Banner); err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		start, err := s.await(ctx)
		if err != nil {
			return err
		}
		if !start {
			return nil
		}

		outcome, err := s.attempt(ctx)
		if err != nil {
			return err
		}
		if s.OnAttempt != nil {
			s.OnAttempt(attempt, outcome)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := s.show(s.Prompts.Done, s.Prompts.Replay); err != nil {
			return err
		}
	}
}

func (s *Session) attempt(ctx context.Context) (Outcome, error) {
	out, err := s.Open(s.AudioPath)
	if err != nil {
		return OutcomeCancelled, &AudioOpenError{Path: s.AudioPath, Err: err}
	}

	s.Controls.Reset()
	if err := s.Display.Clear(); err != nil {
		_ = out.Stop()
		return OutcomeCancelled, err
	}

	syncer := NewSynchronizer(s.Frames, s.Display, s.Controls, s.Yield)
	syncer.OnRender = s.OnRender
	outcome, err := syncer.Play(ctx, out)
	if err != nil {
		return outcome, err
	}
	return outcome, s.Display.Clear()
}

// await blocks for confirm (true) or cancel (false); pause/resume is ignored.
// Closed input counts as a cancel.
func (s *Session) await(ctx context.Context) (bool, error) {
	for {
		c, err := s.Controls.Wait(ctx)
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch c {
		case ControlConfirm:
			return true, nil
		case ControlCancel:
			return false, nil
		}
	}
}

func (s *Session) show(lines ...string) error {
	for _, l := range lines {
		if l == "" {
			continue
		}
		if err := s.Display.Write(l + "\n"); err != nil {
			return err
		}
	}
	return nil
}
