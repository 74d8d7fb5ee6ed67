package mos6502

// overflowed reports a signed overflow for a + b giving r.
func overflowed(a, b, r uint8) bool {
	return (a^r)&(b^r)&0x80 != 0
}

// adcDecimal adds v and the carry to the accumulator treating both as
// packed BCD. V is taken from the binary sum; Z and N from the
// adjusted result.
func (c *CPU) adcDecimal(v uint8) {
	in := c.carry()
	bin := c.acc + v + in

	lo := (c.acc & 0x0F) + (v & 0x0F) + in
	hi := (c.acc >> 4) + (v >> 4)
	if lo > 0x09 {
		lo += 0x06
		hi++
	}
	carry := hi > 0x09
	if carry {
		hi += 0x06
	}

	c.updateFlag(STATUS_FLAG_OVERFLOW, overflowed(c.acc, v, bin))
	c.updateFlag(STATUS_FLAG_CARRY, carry)
	c.acc = hi<<4 | lo&0x0F
	c.setZN(c.acc)
}

// sbcDecimal subtracts v and the borrow from the accumulator treating
// both as packed BCD.
func (c *CPU) sbcDecimal(v uint8) {
	borrow := int(1 - c.carry())
	bin := c.acc + ^v + c.carry()

	lo := int(c.acc&0x0F) - int(v&0x0F) - borrow
	hi := int(c.acc>>4) - int(v>>4)
	if lo < 0 {
		lo += 10
		hi--
	}
	carry := hi >= 0
	if !carry {
		hi += 10
	}

	c.updateFlag(STATUS_FLAG_OVERFLOW, overflowed(c.acc, ^v, bin))
	c.updateFlag(STATUS_FLAG_CARRY, carry)
	c.acc = uint8(hi<<4 | lo)
	c.setZN(c.acc)
}
