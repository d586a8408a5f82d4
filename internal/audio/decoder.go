package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for audio files without a known decoder
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoder defines the interface for all audio format decoders
type Decoder interface {
	// ReadChunk reads up to numFrames frames as interleaved float32 samples
	// in [-1, 1]. Returns io.EOF when no frames remain.
	ReadChunk(numFrames int) ([]float32, error)

	// SampleRate returns the audio sample rate in Hz
	SampleRate() int

	// NumChannels returns the number of audio channels (1=mono, 2=stereo)
	NumChannels() int

	// NumFrames returns the declared length in frames, or -1 if the
	// container does not record it
	NumFrames() int64

	// Close closes the decoder and releases resources
	Close() error
}

// NewDecoder picks a decoder from the file extension (.wav, .mp3, .flac)
func NewDecoder(filename string) (Decoder, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".wav":
		return NewWAVDecoder(filename)
	case ".mp3":
		return NewMP3Decoder(filename)
	case ".flac":
		return NewFLACDecoder(filename)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
