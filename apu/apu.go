// Package apu turns writes to the console's DAC register into a mono
// sample stream and hands it to a Sink for recording or playback.
package apu

import (
	"fmt"
	"sync"
)

const (
	DAC_REGISTER = 0x4011 // 7 bit DAC level
	DAC_MASK     = 0x7F
	DEFAULT_RATE = 44100

	// MAX_PENDING bounds buffered samples. Once it's reached the
	// oldest samples are dropped.
	MAX_PENDING = 1 << 16
)

// Reader is the view of memory the APU samples. *mos6502.CPU
// satisfies it.
type Reader interface {
	Read(addr uint16) uint8
}

// Sink consumes samples in the range [-1, 1].
type Sink interface {
	WriteSamples([]float32) error
	Close() error
}

// APU samples the DAC once per step into a bounded buffer.
type APU struct {
	rate int

	mu  sync.Mutex
	buf []float32
}

// New returns an APU producing rate samples a second, or
// DEFAULT_RATE when rate isn't positive.
func New(rate int) *APU {
	if rate <= 0 {
		rate = DEFAULT_RATE
	}
	return &APU{rate: rate}
}

func (a *APU) String() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fmt.Sprintf("rate=%d, pending=%d", a.rate, len(a.buf))
}

func (a *APU) Rate() int {
	return a.rate
}

// level maps a DAC value onto [-1, 1].
func level(v uint8) float32 {
	return float32(v&DAC_MASK)/(DAC_MASK/2.0) - 1
}

// Sample records the current DAC level.
func (a *APU) Sample(mem Reader) {
	s := level(mem.Read(DAC_REGISTER))

	a.mu.Lock()
	a.buf = appendBounded(a.buf, s)
	a.mu.Unlock()
}

// appendBounded appends s to buf and trims the front so at most
// MAX_PENDING samples remain. Trimming takes at least a quarter of
// the buffer so a full buffer isn't shifted on every sample.
func appendBounded(buf []float32, s ...float32) []float32 {
	buf = append(buf, s...)
	if over := len(buf) - MAX_PENDING; over > 0 {
		if over < MAX_PENDING/4 {
			over = MAX_PENDING / 4
		}
		n := copy(buf, buf[over:])
		buf = buf[:n]
	}
	return buf
}

// Pending returns how many samples are waiting to be drained.
func (a *APU) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.buf)
}

// Samples returns a copy of the pending samples.
func (a *APU) Samples() []float32 {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]float32, len(a.buf))
	copy(out, a.buf)
	return out
}

// Drain returns the pending samples and forgets them.
func (a *APU) Drain() []float32 {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.buf
	a.buf = nil
	return out
}

// Flush drains pending samples into s.
func (a *APU) Flush(s Sink) error {
	samples := a.Drain()
	if len(samples) == 0 {
		return nil
	}
	if err := s.WriteSamples(samples); err != nil {
		return fmt.Errorf("flushing %d samples: %w", len(samples), err)
	}
	return nil
}
