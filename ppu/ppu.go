// Package ppu implements a memory mapped frame buffer for the
// console. Each byte of the screen region selects one pixel's colour
// from a 16 entry palette.
package ppu

import (
	"fmt"
	"image/color"
)

// Display constants
const (
	RES_WIDTH   = 32
	RES_HEIGHT  = 32
	SCREEN_BASE = 0x0200
	SCREEN_SIZE = RES_WIDTH * RES_HEIGHT
	SCREEN_END  = SCREEN_BASE + SCREEN_SIZE - 1
)

// Reader is the view of memory the PPU scans. *mos6502.CPU
// satisfies it.
type Reader interface {
	Read(addr uint16) uint8
}

// PPU mirrors the screen region of memory into RGBA pixels.
type PPU struct {
	pixels []color.RGBA
	screen [SCREEN_SIZE]uint8 // screen bytes as of the last refresh
	frames uint64             // refreshes that changed the picture
}

// New returns a PPU showing a blank screen.
func New() *PPU {
	px := make([]color.RGBA, SCREEN_SIZE)
	for i := range px {
		px[i] = SYSTEM_PALETTE[0]
	}
	return &PPU{pixels: px}
}

func (p *PPU) String() string {
	return fmt.Sprintf("%dx%d @ 0x%04x, frame=%d", RES_WIDTH, RES_HEIGHT, SCREEN_BASE, p.frames)
}

func (p *PPU) GetPixels() []color.RGBA {
	return p.pixels
}

func (p *PPU) GetResolution() (int, int) {
	return RES_WIDTH, RES_HEIGHT
}

// Frame returns how many refreshes have changed the picture.
func (p *PPU) Frame() uint64 {
	return p.frames
}

// Refresh rescans the screen region of mem and reports whether any
// pixel changed.
func (p *PPU) Refresh(mem Reader) bool {
	changed := false
	for i := 0; i < SCREEN_SIZE; i++ {
		b := mem.Read(SCREEN_BASE + uint16(i))
		if b == p.screen[i] {
			continue
		}
		p.screen[i] = b
		p.pixels[i] = SYSTEM_PALETTE[b&0x0F]
		changed = true
	}

	if changed {
		p.frames++
	}
	return changed
}

// Pixel returns the colour at x, y.
func (p *PPU) Pixel(x, y int) color.RGBA {
	return p.pixels[y*RES_WIDTH+x]
}

// RGBA copies the frame into rgba byte order, ready for upload to a
// texture.
func (p *PPU) RGBA() []byte {
	out := make([]byte, 0, SCREEN_SIZE*4)
	for _, c := range p.pixels {
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}
