package mos6502

import (
	"fmt"
)

// Status register bit positions. Bit 4 is reserved and never
// interpreted; bit 5 is only set by BRK.
const (
	STATUS_FLAG_CARRY             = 0
	STATUS_FLAG_ZERO              = 1
	STATUS_FLAG_INTERRUPT_DISABLE = 2
	STATUS_FLAG_DECIMAL           = 3
	STATUS_FLAG_RESERVED          = 4
	STATUS_FLAG_BREAK             = 5
	STATUS_FLAG_OVERFLOW          = 6
	STATUS_FLAG_NEGATIVE          = 7
)

// Registers is a copy of the processor registers, handed out to
// peripherals and debuggers that want to inspect the core.
type Registers struct {
	A, X, Y uint8
	PC      uint16
	S       uint8
	P       uint8
}

func (r Registers) String() string {
	p := []rune("········")
	for i, c := range []rune("NVB-DIZC") {
		if r.P&(1<<(7-uint(i))) != 0 {
			p[i] = c
		}
	}

	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X S:%02X P:%02X(%s)", r.PC, r.A, r.X, r.Y, r.S, r.P, string(p))
}

// updateFlag sets bit when cond holds and clears it otherwise.
func (c *CPU) updateFlag(bit uint8, cond bool) {
	if cond {
		c.status |= 1 << bit
	} else {
		c.status &^= 1 << bit
	}
}

func (c *CPU) enableFlag(bit uint8) {
	c.updateFlag(bit, true)
}

func (c *CPU) disableFlag(bit uint8) {
	c.updateFlag(bit, false)
}

func (c *CPU) flag(bit uint8) bool {
	return c.status&(1<<bit) != 0
}

// carry returns the carry flag as a value suitable for arithmetic.
func (c *CPU) carry() uint8 {
	return c.status & (1 << STATUS_FLAG_CARRY)
}

// setZN recomputes the zero and negative flags from val. Both are
// always written, never left over from an earlier instruction.
func (c *CPU) setZN(val uint8) {
	c.updateFlag(STATUS_FLAG_ZERO, val == 0)
	c.updateFlag(STATUS_FLAG_NEGATIVE, val&0x80 != 0)
}

// compare implements the flag side of CMP, CPX and CPY.
func (c *CPU) compare(reg, val uint8) {
	c.updateFlag(STATUS_FLAG_CARRY, reg >= val)
	c.updateFlag(STATUS_FLAG_ZERO, reg == val)
	c.updateFlag(STATUS_FLAG_NEGATIVE, (reg-val)&0x80 != 0)
}
