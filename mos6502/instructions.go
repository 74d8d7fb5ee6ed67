package mos6502

// fetch returns the operand value for mode.
func (c *CPU) fetch(mode uint8) uint8 {
	if mode == ACCUMULATOR || mode == IMPLICIT {
		return c.acc
	}
	return c.read(c.getOperandAddr(mode))
}

// modify applies f to the accumulator or the memory operand,
// depending on mode, and returns the result.
func (c *CPU) modify(mode uint8, f func(uint8) uint8) uint8 {
	if mode == ACCUMULATOR {
		c.acc = f(c.acc)
		return c.acc
	}

	addr := c.getOperandAddr(mode)
	v := f(c.read(addr))
	c.write(addr, v)
	return v
}

// branch consumes the relative operand and, if cond holds, moves pc
// by its two's complement value.
func (c *CPU) branch(cond bool) {
	target := c.getOperandAddr(RELATIVE)
	c.pc++
	if cond {
		c.pc = target
	}
}

// Loads and stores

func (c *CPU) opLDA(mode uint8) {
	c.acc = c.fetch(mode)
	c.setZN(c.acc)
}

func (c *CPU) opLDX(mode uint8) {
	c.x = c.fetch(mode)
	c.setZN(c.x)
}

func (c *CPU) opLDY(mode uint8) {
	c.y = c.fetch(mode)
	c.setZN(c.y)
}

func (c *CPU) opSTA(mode uint8) {
	c.write(c.getOperandAddr(mode), c.acc)
}

func (c *CPU) opSTX(mode uint8) {
	c.write(c.getOperandAddr(mode), c.x)
}

func (c *CPU) opSTY(mode uint8) {
	c.write(c.getOperandAddr(mode), c.y)
}

// Logical

func (c *CPU) opAND(mode uint8) {
	c.acc &= c.fetch(mode)
	c.setZN(c.acc)
}

func (c *CPU) opORA(mode uint8) {
	c.acc |= c.fetch(mode)
	c.setZN(c.acc)
}

func (c *CPU) opEOR(mode uint8) {
	c.acc ^= c.fetch(mode)
	c.setZN(c.acc)
}

// opBIT sets Z from A & M and copies bits 7 and 6 of M into N and V.
func (c *CPU) opBIT(mode uint8) {
	v := c.fetch(mode)
	c.updateFlag(STATUS_FLAG_ZERO, c.acc&v == 0)
	c.updateFlag(STATUS_FLAG_NEGATIVE, v&0x80 != 0)
	c.updateFlag(STATUS_FLAG_OVERFLOW, v&0x40 != 0)
}

// Arithmetic

func (c *CPU) opADC(mode uint8) {
	v := c.fetch(mode)
	if c.decimal && c.flag(STATUS_FLAG_DECIMAL) {
		c.adcDecimal(v)
		return
	}
	c.addBinary(v)
}

func (c *CPU) opSBC(mode uint8) {
	v := c.fetch(mode)
	if c.decimal && c.flag(STATUS_FLAG_DECIMAL) {
		c.sbcDecimal(v)
		return
	}
	// A - M - (1 - C) == A + ^M + C
	c.addBinary(^v)
}

// addBinary adds v and the carry to the accumulator.
func (c *CPU) addBinary(v uint8) {
	sum := uint16(c.acc) + uint16(v) + uint16(c.carry())
	res := uint8(sum)

	c.updateFlag(STATUS_FLAG_CARRY, sum > 0xFF)
	c.updateFlag(STATUS_FLAG_OVERFLOW, overflowed(c.acc, v, res))
	c.acc = res
	c.setZN(c.acc)
}

// Shifts and rotates

func (c *CPU) opASL(mode uint8) {
	res := c.modify(mode, func(v uint8) uint8 {
		c.updateFlag(STATUS_FLAG_CARRY, v&0x80 != 0)
		return v << 1
	})
	c.setZN(res)
}

func (c *CPU) opLSR(mode uint8) {
	res := c.modify(mode, func(v uint8) uint8 {
		c.updateFlag(STATUS_FLAG_CARRY, v&0x01 != 0)
		return v >> 1
	})
	c.setZN(res)
}

func (c *CPU) opROL(mode uint8) {
	res := c.modify(mode, func(v uint8) uint8 {
		in := c.carry()
		c.updateFlag(STATUS_FLAG_CARRY, v&0x80 != 0)
		return v<<1 | in
	})
	c.setZN(res)
}

func (c *CPU) opROR(mode uint8) {
	res := c.modify(mode, func(v uint8) uint8 {
		in := c.carry() << 7
		c.updateFlag(STATUS_FLAG_CARRY, v&0x01 != 0)
		return v>>1 | in
	})
	c.setZN(res)
}

// Compares

func (c *CPU) opCMP(mode uint8) {
	c.compare(c.acc, c.fetch(mode))
}

func (c *CPU) opCPX(mode uint8) {
	c.compare(c.x, c.fetch(mode))
}

func (c *CPU) opCPY(mode uint8) {
	c.compare(c.y, c.fetch(mode))
}

// Increments and decrements

func (c *CPU) opINC(mode uint8) {
	c.setZN(c.modify(mode, func(v uint8) uint8 { return v + 1 }))
}

func (c *CPU) opDEC(mode uint8) {
	c.setZN(c.modify(mode, func(v uint8) uint8 { return v - 1 }))
}

func (c *CPU) opINX(mode uint8) {
	c.x++
	c.setZN(c.x)
}

func (c *CPU) opINY(mode uint8) {
	c.y++
	c.setZN(c.y)
}

func (c *CPU) opDEX(mode uint8) {
	c.x--
	c.setZN(c.x)
}

func (c *CPU) opDEY(mode uint8) {
	c.y--
	c.setZN(c.y)
}

// Branches

func (c *CPU) opBCC(mode uint8) {
	c.branch(!c.flag(STATUS_FLAG_CARRY))
}

func (c *CPU) opBCS(mode uint8) {
	c.branch(c.flag(STATUS_FLAG_CARRY))
}

func (c *CPU) opBEQ(mode uint8) {
	c.branch(c.flag(STATUS_FLAG_ZERO))
}

func (c *CPU) opBNE(mode uint8) {
	c.branch(!c.flag(STATUS_FLAG_ZERO))
}

func (c *CPU) opBMI(mode uint8) {
	c.branch(c.flag(STATUS_FLAG_NEGATIVE))
}

func (c *CPU) opBPL(mode uint8) {
	c.branch(!c.flag(STATUS_FLAG_NEGATIVE))
}

func (c *CPU) opBVC(mode uint8) {
	c.branch(!c.flag(STATUS_FLAG_OVERFLOW))
}

func (c *CPU) opBVS(mode uint8) {
	c.branch(c.flag(STATUS_FLAG_OVERFLOW))
}

// Jumps, calls and interrupts

func (c *CPU) opJMP(mode uint8) {
	c.pc = c.getOperandAddr(mode)
}

// opJSR pushes the address of the last byte of the JSR instruction;
// RTS adds one to get back to the following instruction.
func (c *CPU) opJSR(mode uint8) {
	target := c.getOperandAddr(mode)
	c.Push16(c.pc + operandBytes(mode) - 1)
	c.pc = target
}

func (c *CPU) opRTS(mode uint8) {
	c.pc = c.Pop16() + 1
}

// opBRK pushes pc and the status, then sets the break flag and jumps
// through the IRQ vector.
func (c *CPU) opBRK(mode uint8) {
	c.Push16(c.pc)
	c.Push(c.status)
	c.enableFlag(STATUS_FLAG_BREAK)
	c.pc = c.mem.read16(IRQ_VECTOR)
}

func (c *CPU) opRTI(mode uint8) {
	c.status = c.Pop()
	c.pc = c.Pop16()
}

// Stack

func (c *CPU) opPHA(mode uint8) {
	c.Push(c.acc)
}

func (c *CPU) opPHP(mode uint8) {
	c.Push(c.status)
}

func (c *CPU) opPLA(mode uint8) {
	c.acc = c.Pop()
	c.setZN(c.acc)
}

func (c *CPU) opPLP(mode uint8) {
	c.status = c.Pop()
}

// Transfers

func (c *CPU) opTAX(mode uint8) {
	c.x = c.acc
	c.setZN(c.x)
}

func (c *CPU) opTXA(mode uint8) {
	c.acc = c.x
	c.setZN(c.acc)
}

func (c *CPU) opTAY(mode uint8) {
	c.y = c.acc
	c.setZN(c.y)
}

func (c *CPU) opTYA(mode uint8) {
	c.acc = c.y
	c.setZN(c.acc)
}

func (c *CPU) opTSX(mode uint8) {
	c.x = c.sp
	c.setZN(c.x)
}

func (c *CPU) opTXS(mode uint8) {
	c.sp = c.x
}

// Flags

func (c *CPU) opSEC(mode uint8) {
	c.enableFlag(STATUS_FLAG_CARRY)
}

func (c *CPU) opCLC(mode uint8) {
	c.disableFlag(STATUS_FLAG_CARRY)
}

func (c *CPU) opSEI(mode uint8) {
	c.enableFlag(STATUS_FLAG_INTERRUPT_DISABLE)
}

func (c *CPU) opCLI(mode uint8) {
	c.disableFlag(STATUS_FLAG_INTERRUPT_DISABLE)
}

func (c *CPU) opSED(mode uint8) {
	c.enableFlag(STATUS_FLAG_DECIMAL)
}

func (c *CPU) opCLD(mode uint8) {
	c.disableFlag(STATUS_FLAG_DECIMAL)
}

func (c *CPU) opCLV(mode uint8) {
	c.disableFlag(STATUS_FLAG_OVERFLOW)
}

func (c *CPU) opNOP(mode uint8) {}
