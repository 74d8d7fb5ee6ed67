package nesrom

import (
	"fmt"
)

const HEADER_SIZE = 16

// MAGIC opens every iNES and NES 2.0 image.
const MAGIC = "NES\x1A"

// Byte offsets within the header.
// https://www.nesdev.org/wiki/INES, https://www.nesdev.org/wiki/NES_2.0
const (
	OFF_PRG_SIZE = 4 // PRG ROM in 16KB units
	OFF_CHR_SIZE = 5 // CHR ROM in 8KB units, 0 means CHR RAM
	OFF_FLAGS6   = 6
	OFF_FLAGS7   = 7
	OFF_FLAGS8   = 8 // PRG RAM in 8KB units
	OFF_FLAGS9   = 9
	OFF_FLAGS10  = 10
)

// flags6; the high nibble is the low nibble of the mapper number.
const (
	MIRRORING           = 1 << 0 // 0: horizontal, 1: vertical
	BATTERY_BACKED_SRAM = 1 << 1 // PRG RAM at $6000-$7FFF
	TRAINER             = 1 << 2 // 512 bytes ahead of PRG data
	IGNORE_MIRRORING    = 1 << 3 // four screen VRAM
)

// flags7; the high nibble is the high nibble of the mapper number.
const (
	VS_UNISYSTEM  = 0x01
	PLAYCHOICE_10 = 0x02 // 8KB of hint screen data after CHR
	NES2_MASK     = 0x0C
	NES2_ID       = 0x08
)

// flags9
const (
	TV_SYSTEM = 0x01
)

// Mirroring mode
const (
	MIRROR_HORIZONTAL = iota
	MIRROR_VERTICAL
	MIRROR_FOUR_SCREEN
)

// TV systems
const (
	NTSC = iota
	PAL
)

// header is the raw 16 byte preamble; accessors decode it on demand.
type header [HEADER_SIZE]byte

func parseHeader(b []byte) *header {
	var h header
	copy(h[:], b)
	return &h
}

func (h *header) String() string {
	return fmt.Sprintf("%q, prg(%d), chr(%d), flags(% x), mapper(%d)", h.magic(), h.prgSize(), h.chrSize(), h[OFF_FLAGS6:OFF_FLAGS10+1], h.mapperNum())
}

func (h *header) magic() string {
	return string(h[:len(MAGIC)])
}

func (h *header) prgSize() uint8 {
	return h[OFF_PRG_SIZE]
}

func (h *header) chrSize() uint8 {
	return h[OFF_CHR_SIZE]
}

func (h *header) has(off int, bit uint8) bool {
	return h[off]&bit != 0
}

// mirroringMode tells the PPU how nametables are arranged.
// https://www.nesdev.org/wiki/INES#Nametable_Mirroring
func (h *header) mirroringMode() uint8 {
	if h.has(OFF_FLAGS6, IGNORE_MIRRORING) {
		return MIRROR_FOUR_SCREEN
	}
	return h[OFF_FLAGS6] & MIRRORING
}

func (h *header) hasTrainer() bool {
	return h.has(OFF_FLAGS6, TRAINER)
}

func (h *header) hasPlayChoice() bool {
	return h.has(OFF_FLAGS7, PLAYCHOICE_10)
}

func (h *header) hasPrgRAM() bool {
	return h.has(OFF_FLAGS6, BATTERY_BACKED_SRAM)
}

// prgRAMSize is in 8KB units. A zero size byte means one unit.
func (h *header) prgRAMSize() uint8 {
	switch {
	case !h.hasPrgRAM():
		return 0
	case h[OFF_FLAGS8] == 0:
		return 1
	}
	return h[OFF_FLAGS8]
}

func (h *header) tvSystem() uint8 {
	return h[OFF_FLAGS9] & TV_SYSTEM
}

func (h *header) isINesFormat() bool {
	return h.magic() == MAGIC
}

func (h *header) isNES2Format() bool {
	return h.isINesFormat() && h[OFF_FLAGS7]&NES2_MASK == NES2_ID
}

// dirtyTail reports junk in bytes 12-15 of an iNES 1.0 header. Old
// rippers wrote their names there ("DiskDude!"), which corrupts the
// high nibble of the mapper number.
func (h *header) dirtyTail() bool {
	if h.isNES2Format() {
		return false
	}
	for _, b := range h[12:] {
		if b != 0 {
			return true
		}
	}
	return false
}

// mapperNum joins the high nibbles of flags7 and flags6, dropping the
// flags7 half when the tail is dirty.
func (h *header) mapperNum() uint8 {
	lo := h[OFF_FLAGS6] >> 4
	if h.dirtyTail() {
		return lo
	}
	return h[OFF_FLAGS7]&0xF0 | lo
}
