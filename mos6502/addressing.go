package mos6502

// 6502 Addressing Modes
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT
	INDIRECT_X // Indexed Indirect
	INDIRECT_Y // Indirect Indexed
)

// How JMP (indirect) resolves its target.
const (
	// The operand word is the target, fetched with the page wrap
	// defect on the operand itself.
	INDIRECT_OPERAND = iota
	// The operand word is a pointer to the target; the page wrap
	// defect applies to the pointer dereference.
	INDIRECT_POINTER
)

var modenames map[uint8]string = map[uint8]string{IMPLICIT: "IMPLICIT", ACCUMULATOR: "ACCUMULATOR", IMMEDIATE: "IMMEDIATE", ZERO_PAGE: "ZERO_PAGE", ZERO_PAGE_X: "ZERO_PAGE_X", ZERO_PAGE_Y: "ZERO_PAGE_Y", RELATIVE: "RELATIVE", ABSOLUTE: "ABSOLUTE", ABSOLUTE_X: "ABSOLUTE_X", ABSOLUTE_Y: "ABSOLUTE_Y", INDIRECT: "INDIRECT", INDIRECT_X: "INDIRECT_X", INDIRECT_Y: "INDIRECT_Y"}

// operandBytes returns how many bytes follow the opcode for mode.
func operandBytes(mode uint8) uint16 {
	switch mode {
	case IMPLICIT, ACCUMULATOR:
		return 0
	case ABSOLUTE, ABSOLUTE_X, ABSOLUTE_Y, INDIRECT:
		return 2
	default:
		return 1
	}
}

// getOperandAddr returns the effective address for mode, with pc
// pointing at the first operand byte. IMPLICIT and ACCUMULATOR have
// no address; callers operate on the accumulator instead and the
// returned value is meaningless.
func (c *CPU) getOperandAddr(mode uint8) uint16 {
	switch mode {
	case IMMEDIATE:
		return c.pc
	case ZERO_PAGE:
		return uint16(c.read(c.pc))
	case ZERO_PAGE_X:
		return uint16(c.read(c.pc) + c.x)
	case ZERO_PAGE_Y:
		return uint16(c.read(c.pc) + c.y)
	case RELATIVE:
		// Offset is relative to the byte after the operand.
		return c.pc + 1 + uint16(int8(c.read(c.pc)))
	case ABSOLUTE:
		return c.mem.read16(c.pc)
	case ABSOLUTE_X:
		return c.mem.read16(c.pc) + uint16(c.x)
	case ABSOLUTE_Y:
		return c.mem.read16(c.pc) + uint16(c.y)
	case INDIRECT:
		if c.indirect == INDIRECT_POINTER {
			return c.mem.read16Wrapped(c.mem.read16(c.pc))
		}
		return c.mem.read16Wrapped(c.pc)
	case INDIRECT_X:
		return c.zeroPageWord(c.read(c.pc) + c.x)
	case INDIRECT_Y:
		return c.zeroPageWord(c.read(c.pc)) + uint16(c.y)
	}

	return 0
}

// zeroPageWord reads a little endian word from the zero page; the
// high byte wraps to 0x00 when ptr is 0xFF.
func (c *CPU) zeroPageWord(ptr uint8) uint16 {
	lsb := uint16(c.read(uint16(ptr)))
	msb := uint16(c.read(uint16(ptr + 1)))

	return (msb << 8) | lsb
}
