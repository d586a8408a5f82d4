package audio

import (
	"errors"
	"testing"
)

func TestPlayerPlayAfterStop(t *testing.T) {
	p := &Player{stopped: true}

	if err := p.Play(); !errors.Is(err, ErrPlayerStopped) {
		t.Errorf("Play after Stop = %v, want ErrPlayerStopped", err)
	}
	if err := p.Stop(); err != nil {
		t.Errorf("second Stop = %v, want nil", err)
	}
}
