package mos6502

import (
	"math"
)

const (
	MAX_ADDRESS = math.MaxUint16
	MEM_SIZE    = MAX_ADDRESS + 1 // 64KB, every uint16 is a valid index
)

// Named regions of the address space.
const (
	ZERO_PAGE_BASE = 0x0000
	STACK_PAGE     = 0x0100
	PROGRAM_BASE   = 0x8000
	NMI_VECTOR     = 0xFFFA
	RESET_VECTOR   = 0xFFFC
	IRQ_VECTOR     = 0xFFFE // also used by BRK
	STACK_TOP      = 0xFF   // initial stack pointer value
	PAGE_SIZE      = 0x0100
	PAGE_MASK      = 0xFF00
	PAGE_OFF_MASK  = 0x00FF
)

// memory is the flat address space. It has no mapped regions; the
// console drives its peripherals from what the CPU stores here.
type memory struct {
	ram [MEM_SIZE]uint8
}

func (m *memory) read(addr uint16) uint8 {
	return m.ram[addr]
}

func (m *memory) write(addr uint16, val uint8) {
	m.ram[addr] = val
}

// read16 returns the two bytes from memory at addr (lower byte is
// first). The high byte comes from addr+1, wrapping at 0xFFFF.
func (m *memory) read16(addr uint16) uint16 {
	lsb := uint16(m.read(addr))
	msb := uint16(m.read(addr + 1))

	return (msb << 8) | lsb
}

// read16Wrapped is read16 with the 6502 page defect: the high byte is
// fetched from the same page as the low byte.
func (m *memory) read16Wrapped(addr uint16) uint16 {
	lsb := uint16(m.read(addr))
	msb := uint16(m.read((addr & PAGE_MASK) | ((addr + 1) & PAGE_OFF_MASK)))

	return (msb << 8) | lsb
}

// write16 stores val at addr (lower byte is first).
func (m *memory) write16(addr, val uint16) {
	m.write(addr, uint8(val&0x00FF))
	m.write(addr+1, uint8(val>>8))
}

// load copies data verbatim starting at addr. Bytes past 0xFFFF wrap
// back to the zero page.
func (m *memory) load(addr uint16, data []uint8) {
	for i, b := range data {
		m.ram[addr+uint16(i)] = b
	}
}

// slice returns a copy of count bytes starting at addr, wrapping at
// the top of memory.
func (m *memory) slice(addr uint16, count int) []uint8 {
	out := make([]uint8, count)
	for i := range out {
		out[i] = m.ram[addr+uint16(i)]
	}
	return out
}
