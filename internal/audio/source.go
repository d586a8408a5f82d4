package audio

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

var (
	// ErrEmptyTrack is returned when a file declares no audio frames
	ErrEmptyTrack = errors.New("audio track contains no samples")

	// ErrUnknownLength is returned when a file does not record its length
	ErrUnknownLength = errors.New("audio track length unknown")
)

const (
	chunkFrames   = 4096 // decoder read size
	bufferSeconds = 2    // decoded audio held ahead of the device
)

// source decodes a file on its own goroutine into a bounded ring buffer, so
// memory stays flat however long the track is and playback can start as
// soon as the first chunk is ready.
type source struct {
	dec        Decoder
	buf        *ringBuffer
	channels   int
	sampleRate int

	// Declared length in frames; replaced by the decoded count once the
	// decoder reaches the end, so the clock always reaches the duration
	total atomic.Int64

	err  error // set by decode before done closes
	done chan struct{}
}

// newSource takes ownership of dec and starts decoding. bufferFrames <= 0
// holds bufferSeconds of audio.
func newSource(dec Decoder, bufferFrames int) (*source, error) {
	rate, channels := dec.SampleRate(), dec.NumChannels()
	if rate <= 0 || channels <= 0 {
		dec.Close()
		return nil, fmt.Errorf("invalid audio format: %d Hz, %d channels", rate, channels)
	}

	total := dec.NumFrames()
	switch {
	case total == 0:
		dec.Close()
		return nil, ErrEmptyTrack
	case total < 0:
		dec.Close()
		return nil, ErrUnknownLength
	}

	if bufferFrames <= 0 {
		bufferFrames = rate * bufferSeconds
	}

	s := &source{
		dec:        dec,
		buf:        newRingBuffer(bufferFrames * channels),
		channels:   channels,
		sampleRate: rate,
		done:       make(chan struct{}),
	}
	s.total.Store(total)

	go s.decode()
	return s, nil
}

func (s *source) decode() {
	defer close(s.done)

	var decoded int64
	defer func() { s.total.Store(decoded) }()

	for {
		chunk, err := s.dec.ReadChunk(chunkFrames)
		if err == io.EOF {
			return
		}
		if err != nil {
			s.err = fmt.Errorf("error reading audio: %w", err)
			return
		}
		if err := s.buf.Write(chunk); err != nil {
			return
		}
		decoded += int64(len(chunk) / s.channels)
	}
}

// read copies whole frames into out without blocking and returns the
// number of samples copied
func (s *source) read(out []float32) int {
	return s.buf.Read(out, s.channels)
}

func (s *source) duration() time.Duration {
	return framesToDuration(s.total.Load(), s.sampleRate)
}

// close stops the decoder goroutine and releases the file. It returns a
// decode error hit before the end of the track, if any.
func (s *source) close() error {
	s.buf.Close()
	<-s.done
	closeErr := s.dec.Close()
	if s.err != nil {
		return s.err
	}
	return closeErr
}

func framesToDuration(frames int64, sampleRate int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}
