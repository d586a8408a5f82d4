package playback

import (
	"context"
	"errors"
	"testing"
	"time"
)

type renderEvent struct {
	index int
	state State
}

func playAndRecord(t *testing.T, ctx context.Context, frames int, out *fakeOutput, controls *fakeControls) (Outcome, []renderEvent, error) {
	t.Helper()
	display := &fakeDisplay{}
	s := NewSynchronizer(testFrames(frames), display, controls, 0)

	var events []renderEvent
	s.OnRender = func(index int, state State) {
		events = append(events, renderEvent{index, state})
	}

	outcome, err := s.Play(ctx, out)
	if s.State() != StateStopped {
		t.Errorf("state after Play = %v, want stopped", s.State())
	}
	if display.homes != len(events) {
		t.Errorf("expected one Home per render, got %d homes for %d renders", display.homes, len(events))
	}
	return outcome, events, err
}

func TestPlayFinishesNaturally(t *testing.T) {
	out := &fakeOutput{duration: time.Second, step: 10 * time.Millisecond}
	outcome, events, err := playAndRecord(t, context.Background(), 10, out, &fakeControls{})
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if outcome != OutcomeFinished {
		t.Errorf("outcome = %v, want finished", outcome)
	}
	if out.stops == 0 {
		t.Error("audio was not stopped")
	}

	last := -1
	for i, ev := range events {
		if ev.index < last {
			t.Fatalf("render %d went backwards: %d < %d", i, ev.index, last)
		}
		last = ev.index
	}
	if last != 9 {
		t.Errorf("last rendered index = %d, want 9", last)
	}
	if events[0].index != 0 {
		t.Errorf("first rendered index = %d, want 0", events[0].index)
	}
}

func TestPlayPauseHoldsFrame(t *testing.T) {
	out := &fakeOutput{duration: time.Second, step: 10 * time.Millisecond}
	controls := &fakeControls{polls: []Control{
		noControl, noControl, ControlPauseResume,
		noControl, noControl, noControl, noControl, noControl,
		ControlPauseResume,
	}}

	outcome, events, err := playAndRecord(t, context.Background(), 100, out, controls)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if outcome != OutcomeFinished {
		t.Errorf("outcome = %v, want finished", outcome)
	}

	var paused []int
	for _, ev := range events {
		if ev.state == StatePaused {
			paused = append(paused, ev.index)
		}
	}
	if len(paused) != 6 {
		t.Fatalf("expected 6 renders while paused, got %d", len(paused))
	}
	for _, idx := range paused {
		if idx != paused[0] {
			t.Fatalf("paused renders changed frame: %v", paused)
		}
	}
	if next := events[9].index; next < paused[0] {
		t.Errorf("index after resume = %d, went below paused index %d", next, paused[0])
	}
}

func TestPlayCancelStopsImmediately(t *testing.T) {
	out := &fakeOutput{duration: time.Second, step: 10 * time.Millisecond}
	controls := &fakeControls{polls: []Control{noControl, ControlCancel}}

	outcome, events, err := playAndRecord(t, context.Background(), 100, out, controls)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if outcome != OutcomeCancelled {
		t.Errorf("outcome = %v, want cancelled", outcome)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 renders before cancel, got %d", len(events))
	}
	if out.stops == 0 {
		t.Error("audio handle was not released on cancel")
	}
}

func TestPlayCancelWhilePaused(t *testing.T) {
	out := &fakeOutput{duration: time.Second, step: 10 * time.Millisecond}
	controls := &fakeControls{polls: []Control{ControlPauseResume, noControl, ControlCancel}}

	outcome, _, err := playAndRecord(t, context.Background(), 100, out, controls)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if outcome != OutcomeCancelled {
		t.Errorf("outcome = %v, want cancelled", outcome)
	}
	if out.stops == 0 {
		t.Error("audio handle was not released")
	}
}

func TestPlayConfirmIgnoredDuringPlayback(t *testing.T) {
	out := &fakeOutput{duration: 100 * time.Millisecond, step: 10 * time.Millisecond}
	controls := &fakeControls{polls: []Control{ControlConfirm, ControlConfirm}}

	outcome, _, err := playAndRecord(t, context.Background(), 5, out, controls)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if outcome != OutcomeFinished {
		t.Errorf("outcome = %v, want finished", outcome)
	}
}

func TestPlayContextCancelled(t *testing.T) {
	out := &fakeOutput{duration: time.Second, step: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, events, err := playAndRecord(t, ctx, 10, out, &fakeControls{})
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if outcome != OutcomeCancelled {
		t.Errorf("outcome = %v, want cancelled", outcome)
	}
	if len(events) != 0 {
		t.Errorf("expected no renders, got %d", len(events))
	}
	if out.stops == 0 {
		t.Error("audio handle was not released")
	}
}

func TestPlayAudioStartFailure(t *testing.T) {
	boom := errors.New("device busy")
	out := &fakeOutput{duration: time.Second, step: time.Millisecond, playErr: boom}

	_, events, err := playAndRecord(t, context.Background(), 10, out, &fakeControls{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected device error, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no renders, got %d", len(events))
	}
	if out.stops == 0 {
		t.Error("audio handle was not released")
	}
}

// TestPlayShortAudioEndsEarly covers audio shorter than the frame set: the
// audio running out ends playback even though frames remain.
func TestPlayShortAudioEndsEarly(t *testing.T) {
	out := &fakeOutput{duration: 50 * time.Millisecond, step: 50 * time.Millisecond}
	outcome, events, err := playAndRecord(t, context.Background(), 1000, out, &fakeControls{})
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if outcome != OutcomeFinished {
		t.Errorf("outcome = %v, want finished", outcome)
	}
	if len(events) != 1 {
		t.Errorf("expected a single render before the audio ran out, got %d", len(events))
	}
}

func TestPlayWithYield(t *testing.T) {
	out := &fakeOutput{duration: 40 * time.Millisecond, step: 10 * time.Millisecond}
	s := NewSynchronizer(testFrames(4), &fakeDisplay{}, &fakeControls{}, time.Millisecond)

	outcome, err := s.Play(context.Background(), out)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if outcome != OutcomeFinished {
		t.Errorf("outcome = %v, want finished", outcome)
	}
}
