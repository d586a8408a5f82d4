package audio

import (
	"errors"
	"sync"
)

// ErrBufferClosed is returned when writing to a closed buffer
var ErrBufferClosed = errors.New("buffer is closed")

// ringBuffer is a bounded FIFO of interleaved samples shared by one decoder
// goroutine and the output callback. Writes block while the buffer is full;
// reads never block, so the audio callback cannot stall on the decoder.
type ringBuffer struct {
	mu sync.Mutex

	data []float32
	head int // next sample to read
	size int // samples held

	closed bool

	// Signalled when a read frees space or the buffer closes
	cond *sync.Cond
}

func newRingBuffer(capacity int) *ringBuffer {
	b := &ringBuffer{data: make([]float32, capacity)}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Write copies every sample in, waiting for space as needed
func (b *ringBuffer) Write(samples []float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(samples) > 0 {
		for b.size == len(b.data) && !b.closed {
			b.cond.Wait()
		}
		if b.closed {
			return ErrBufferClosed
		}

		tail := (b.head + b.size) % len(b.data)
		n := min(len(samples), len(b.data)-b.size, len(b.data)-tail)
		copy(b.data[tail:tail+n], samples[:n])
		b.size += n
		samples = samples[n:]
	}
	return nil
}

// Read copies up to len(out) samples, rounded down to a multiple of align
// so frames are never split, and returns how many were copied.
func (b *ringBuffer) Read(out []float32, align int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := min(len(out), b.size)
	n -= n % align
	for done := 0; done < n; {
		k := min(n-done, len(b.data)-b.head)
		copy(out[done:done+k], b.data[b.head:b.head+k])
		b.head = (b.head + k) % len(b.data)
		done += k
	}
	b.size -= n

	if n > 0 {
		b.cond.Broadcast()
	}
	return n
}

// Len returns the number of buffered samples
func (b *ringBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Close wakes a blocked writer; buffered samples stay readable
func (b *ringBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.cond.Broadcast()
}
