package ppu

import (
	"testing"
)

type testMem map[uint16]uint8

func (m testMem) Read(addr uint16) uint8 {
	return m[addr]
}

func TestRefresh(t *testing.T) {
	cases := []struct {
		mem         testMem
		wantChanged bool
		x, y        int
		want        uint8 // palette index
	}{
		{testMem{}, false, 0, 0, 0},
		{testMem{SCREEN_BASE: 0x01}, true, 0, 0, 1},
		{testMem{SCREEN_BASE: 0x01}, false, 0, 0, 1},
		{testMem{SCREEN_BASE + 33: 0x05}, true, 1, 1, 5},
		{testMem{SCREEN_END: 0xF2}, true, 31, 31, 2},   // only the low nibble counts
		{testMem{SCREEN_END + 1: 0x03}, true, 0, 0, 0}, // outside the screen; previous pixels reset
	}

	p := New()
	for i, tc := range cases {
		if got := p.Refresh(tc.mem); got != tc.wantChanged {
			t.Errorf("%d: Got changed %t, want %t", i, got, tc.wantChanged)
		}
		if got := p.Pixel(tc.x, tc.y); got != SYSTEM_PALETTE[tc.want] {
			t.Errorf("%d: Got %v at (%d, %d), want %v", i, got, tc.x, tc.y, SYSTEM_PALETTE[tc.want])
		}
	}

	if p.Frame() != 4 {
		t.Errorf("Got frame %d, want 4", p.Frame())
	}
}

func TestResolution(t *testing.T) {
	p := New()
	w, h := p.GetResolution()
	if w != RES_WIDTH || h != RES_HEIGHT || len(p.GetPixels()) != w*h {
		t.Errorf("Got %dx%d with %d pixels", w, h, len(p.GetPixels()))
	}
}

func TestRGBA(t *testing.T) {
	p := New()
	p.Refresh(testMem{SCREEN_BASE + 1: 0x02})

	b := p.RGBA()
	if len(b) != SCREEN_SIZE*4 {
		t.Fatalf("Got %d bytes, want %d", len(b), SCREEN_SIZE*4)
	}
	red := SYSTEM_PALETTE[2]
	if b[4] != red.R || b[5] != red.G || b[6] != red.B || b[7] != red.A {
		t.Errorf("Got % x, want %v", b[4:8], red)
	}
}
