package apu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer is a Sink that plays samples through the host's audio
// device. The device pulls from an internal queue; when the queue
// runs dry it plays silence; when it backs up the oldest samples are
// dropped.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	pending []float32
}

func NewOtoPlayer(rate int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("oto: %w", err)
	}
	<-ready

	p := &OtoPlayer{ctx: ctx}
	p.player = ctx.NewPlayer(p)
	p.player.Play()

	return p, nil
}

func (p *OtoPlayer) WriteSamples(samples []float32) error {
	p.mu.Lock()
	p.pending = appendBounded(p.pending, samples...)
	p.mu.Unlock()
	return nil
}

// Read implements io.Reader for the oto player.
func (p *OtoPlayer) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(b) / 4
	for i := 0; i < n; i++ {
		var s float32
		if i < len(p.pending) {
			s = p.pending[i]
		}
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(s))
	}

	if n > len(p.pending) {
		n = len(p.pending)
	}
	p.pending = p.pending[n:]

	return len(b) - len(b)%4, nil
}

func (p *OtoPlayer) Close() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
