package mappers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bdwalton/nescore/nesrom"
)

// flatTarget is a 64KB Target for tests.
type flatTarget struct {
	mem [0x10000]uint8
}

func (f *flatTarget) Write(addr uint16, val uint8) {
	f.mem[addr] = val
}

func romImage(t *testing.T, prg uint8, flags6 uint8) *nesrom.ROM {
	t.Helper()

	var b bytes.Buffer
	b.Write([]byte{'N', 'E', 'S', 0x1A, prg, 0, flags6, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	if flags6&nesrom.TRAINER != 0 {
		b.Write(bytes.Repeat([]byte{0x77}, nesrom.TRAINER_SIZE))
	}
	for i := 0; i < nesrom.PRG_BLOCK_SIZE*int(prg); i++ {
		b.WriteByte(uint8(i / nesrom.PRG_BLOCK_SIZE))
	}

	r, err := nesrom.NewFromReader(&b)
	if err != nil {
		t.Fatalf("couldn't build ROM: %v", err)
	}
	return r
}

func TestGet(t *testing.T) {
	cases := []struct {
		id       uint8
		wantName string
		wantErr  error
	}{
		{0, "NROM", nil},
		{4, "", ErrUnknownMapper},
	}

	for i, tc := range cases {
		m, err := Get(tc.id)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%d: Got err %v, want %v", i, err, tc.wantErr)
			continue
		}
		if err == nil && m.Name() != tc.wantName {
			t.Errorf("%d: Got %q, want %q", i, m.Name(), tc.wantName)
		}
	}

	if ids := IDs(); len(ids) == 0 || ids[0] != 0 {
		t.Errorf("Got ids %v, want NROM registered", ids)
	}
}

func TestNROMLoad(t *testing.T) {
	cases := []struct {
		prg     uint8
		flags6  uint8
		checks  map[uint16]uint8
		wantErr bool
	}{
		// one bank mirrored
		{1, 0, map[uint16]uint8{0x8000: 0, 0xBFFF: 0, 0xC000: 0, 0xFFFF: 0}, false},
		// two banks, the second at 0xC000
		{2, 0, map[uint16]uint8{0x8000: 0, 0xBFFF: 0, 0xC000: 1, 0xFFFF: 1}, false},
		// trainer
		{1, nesrom.TRAINER, map[uint16]uint8{0x7000: 0x77, 0x71FF: 0x77, 0x7200: 0}, false},
		{3, 0, nil, true},
	}

	m, _ := Get(0)
	for i, tc := range cases {
		ft := &flatTarget{}
		// Mark memory so untouched bytes are distinguishable.
		for a := range ft.mem {
			ft.mem[a] = 0xEE
		}
		ft.mem[0x7200] = 0

		err := m.Load(romImage(t, tc.prg, tc.flags6), ft)
		if (err != nil) != tc.wantErr {
			t.Errorf("%d: Got err %v, wantErr %t", i, err, tc.wantErr)
			continue
		}
		for a, want := range tc.checks {
			if got := ft.mem[a]; got != want {
				t.Errorf("%d: mem[%04x] = %02x, want %02x", i, a, got, want)
			}
		}
	}
}
