package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder implements Decoder for WAV files
type WAVDecoder struct {
	decoder    *wav.Decoder
	file       *os.File
	sampleRate int
	bitDepth   int
	numChans   int
	numFrames  int64
	intBuf     *audio.IntBuffer
}

// NewWAVDecoder creates a new WAV decoder
func NewWAVDecoder(filename string) (*WAVDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file")
	}

	// Get format info without reading all samples
	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	numChans := int(decoder.NumChans)
	if numChans < 1 {
		f.Close()
		return nil, fmt.Errorf("invalid WAV channel count: %d", numChans)
	}

	numFrames := int64(-1)
	if frameSize := int(decoder.BitDepth) / 8 * numChans; frameSize > 0 {
		numFrames = int64(decoder.PCMSize / frameSize)
	}

	return &WAVDecoder{
		decoder:    decoder,
		file:       f,
		sampleRate: int(decoder.SampleRate),
		bitDepth:   int(decoder.BitDepth),
		numChans:   numChans,
		numFrames:  numFrames,
		intBuf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: numChans,
				SampleRate:  int(decoder.SampleRate),
			},
		},
	}, nil
}

// ReadChunk reads the next chunk of frames
func (d *WAVDecoder) ReadChunk(numFrames int) ([]float32, error) {
	// Interleaved data needs numFrames × numChannels slots
	bufSize := numFrames * d.numChans
	if cap(d.intBuf.Data) < bufSize {
		d.intBuf.Data = make([]int, bufSize)
	}
	d.intBuf.Data = d.intBuf.Data[:bufSize]

	n, err := d.decoder.PCMBuffer(d.intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	// Drop a trailing partial frame
	n -= n % d.numChans
	if n == 0 {
		return nil, io.EOF
	}

	maxVal := float32(audio.IntMaxSignedValue(d.bitDepth))
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		samples[i] = float32(d.intBuf.Data[i]) / maxVal
	}
	return samples, nil
}

// SampleRate returns the sample rate
func (d *WAVDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *WAVDecoder) NumChannels() int {
	return d.numChans
}

// NumFrames returns the frame count implied by the PCM chunk size
func (d *WAVDecoder) NumFrames() int64 {
	return d.numFrames
}

// Close closes the decoder and releases resources
func (d *WAVDecoder) Close() error {
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}
