package apu

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const WAV_BIT_DEPTH = 16

// WAVWriter is a Sink that records 16 bit mono PCM.
type WAVWriter struct {
	w      io.WriteSeeker
	enc    *wav.Encoder
	format *audio.Format
}

func NewWAVWriter(w io.WriteSeeker, rate int) *WAVWriter {
	return &WAVWriter{
		w:      w,
		enc:    wav.NewEncoder(w, rate, WAV_BIT_DEPTH, 1, 1),
		format: &audio.Format{NumChannels: 1, SampleRate: rate},
	}
}

func (w *WAVWriter) WriteSamples(samples []float32) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(clamp(s) * math.MaxInt16)
	}

	buf := &audio.IntBuffer{Format: w.format, Data: data, SourceBitDepth: WAV_BIT_DEPTH}
	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// Close finalises the RIFF header and closes the underlying writer
// if it's an io.Closer.
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func clamp(s float32) float32 {
	switch {
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}
