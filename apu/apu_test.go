package apu

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

type testMem map[uint16]uint8

func (m testMem) Read(addr uint16) uint8 {
	return m[addr]
}

type recordSink struct {
	got    []float32
	err    error
	closed bool
}

func (r *recordSink) WriteSamples(s []float32) error {
	r.got = append(r.got, s...)
	return r.err
}

func (r *recordSink) Close() error {
	r.closed = true
	return nil
}

func TestLevel(t *testing.T) {
	cases := []struct {
		val  uint8
		want float32
	}{
		{0x00, -1},
		{0x7F, 1},
		{0xFF, 1}, // top bit ignored
		{0x80, -1},
	}

	for i, tc := range cases {
		if got := level(tc.val); math.Abs(float64(got-tc.want)) > 1e-6 {
			t.Errorf("%d: Got %f, want %f", i, got, tc.want)
		}
	}
}

func TestSampleDrain(t *testing.T) {
	a := New(0)
	if a.Rate() != DEFAULT_RATE {
		t.Errorf("Got rate %d, want %d", a.Rate(), DEFAULT_RATE)
	}

	for _, v := range []uint8{0x00, 0x7F, 0x00} {
		a.Sample(testMem{DAC_REGISTER: v})
	}

	if got := a.Samples(); len(got) != 3 || got[1] != 1 {
		t.Errorf("Got %v", got)
	}
	if got := a.Drain(); len(got) != 3 {
		t.Errorf("Got %d drained, want 3", len(got))
	}
	if got := a.Samples(); len(got) != 0 {
		t.Errorf("Got %v after drain", got)
	}
}

func TestFlush(t *testing.T) {
	a := New(8000)
	a.Sample(testMem{DAC_REGISTER: 0x7F})
	a.Sample(testMem{DAC_REGISTER: 0x00})

	rs := &recordSink{}
	if err := a.Flush(rs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.got) != 2 || rs.got[0] != 1 || rs.got[1] != -1 {
		t.Errorf("Got %v", rs.got)
	}

	// nothing pending, nothing written
	if err := a.Flush(&recordSink{err: errors.New("unused")}); err != nil {
		t.Errorf("Got err %v on empty flush", err)
	}

	boom := errors.New("boom")
	a.Sample(testMem{})
	if err := a.Flush(&recordSink{err: boom}); !errors.Is(err, boom) {
		t.Errorf("Got err %v, want %v", err, boom)
	}
}

func TestWAVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	w := NewWAVWriter(f, 8000)
	if err := w.WriteSamples([]float32{0, 1, -1, 2}); err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := f.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Got %v closing the file again, want %v", err, os.ErrClosed)
	}

	rf, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()

	dec := wav.NewDecoder(rf)
	if !dec.IsValidFile() {
		t.Fatalf("%s isn't a valid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer: %v", err)
	}

	want := []int{0, math.MaxInt16, -math.MaxInt16, math.MaxInt16}
	if dec.SampleRate != 8000 || dec.NumChans != 1 || len(buf.Data) != len(want) {
		t.Fatalf("Got rate %d chans %d samples %d", dec.SampleRate, dec.NumChans, len(buf.Data))
	}
	for i, v := range want {
		if buf.Data[i] != v {
			t.Errorf("%d: Got %d, want %d", i, buf.Data[i], v)
		}
	}
}

func TestOtoPlayerRead(t *testing.T) {
	// Exercise the pull side without opening an audio device.
	p := &OtoPlayer{}
	p.WriteSamples([]float32{0.5, -0.5})

	b := make([]byte, 12)
	if n, err := p.Read(b); n != 12 || err != nil {
		t.Fatalf("Got %d, %v", n, err)
	}

	want := []float32{0.5, -0.5, 0}
	for i, w := range want {
		got := math.Float32frombits(uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24)
		if got != w {
			t.Errorf("%d: Got %f, want %f", i, got, w)
		}
	}
	if len(p.pending) != 0 {
		t.Errorf("Got %d pending, want 0", len(p.pending))
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestSampleBounded(t *testing.T) {
	const trim = MAX_PENDING / 4
	cases := []struct {
		samples int // including the final full scale one
		want    int
	}{
		{11, 11},
		{MAX_PENDING, MAX_PENDING},
		{MAX_PENDING + 1, MAX_PENDING + 1 - trim},
		{MAX_PENDING + 2, MAX_PENDING + 2 - trim},
		{3*MAX_PENDING + 1, MAX_PENDING + 1 - trim},
	}

	for i, tc := range cases {
		a := New(DEFAULT_RATE)
		mem := testMem{}
		for j := 0; j < tc.samples-1; j++ {
			a.Sample(mem)
		}
		mem[DAC_REGISTER] = DAC_MASK
		a.Sample(mem)

		if got := a.Pending(); got != tc.want {
			t.Errorf("%d: Got %d pending, want %d", i, got, tc.want)
		}
		if s := a.Samples(); s[len(s)-1] != 1 || s[0] != -1 {
			t.Errorf("%d: Got oldest %f newest %f, want -1 and 1", i, s[0], s[len(s)-1])
		}
	}
}

func TestOtoPlayerBounded(t *testing.T) {
	p := &OtoPlayer{}
	for i := 0; i < 4; i++ {
		p.WriteSamples(make([]float32, MAX_PENDING/2))
	}
	p.WriteSamples([]float32{0.25})

	if len(p.pending) > MAX_PENDING {
		t.Errorf("Got %d pending, want at most %d", len(p.pending), MAX_PENDING)
	}
	if got := p.pending[len(p.pending)-1]; got != 0.25 {
		t.Errorf("Got newest sample %f, want 0.25", got)
	}
}
