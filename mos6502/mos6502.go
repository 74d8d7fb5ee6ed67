// package mos6502 implements the MOS Technologies 6502 processor
package mos6502

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInstruction is returned by Step for undefined opcodes
// when strict decoding is enabled.
var ErrInvalidInstruction = errors.New("invalid instruction")

// ErrBreakpoint is returned by Breakpoint when execution reaches a
// breakpoint address.
var ErrBreakpoint = errors.New("breakpoint reached")

// CPU implements all of the machine state for the 6502
type CPU struct {
	acc    uint8  // main register
	x, y   uint8  // index registers
	status uint8  // a register for storing various status bits
	sp     uint8  // stack pointer - stack is 0x0100-0x01FF so only 8 bits needed
	pc     uint16 // the program counter
	mem    *memory

	strict   bool  // undefined opcodes fail Step instead of running as NOP
	decimal  bool  // honour the decimal flag in ADC/SBC
	indirect uint8 // INDIRECT_OPERAND or INDIRECT_POINTER
}

// Option changes the behaviour of a CPU built by New.
type Option func(*CPU)

// WithStrictDecode makes Step return ErrInvalidInstruction for
// opcodes the 6502 doesn't document.
func WithStrictDecode() Option {
	return func(c *CPU) { c.strict = true }
}

// WithDecimalMode enables BCD arithmetic in ADC and SBC while the
// decimal flag is set. The NES 2A03 lacks it, so it's off by default.
func WithDecimalMode() Option {
	return func(c *CPU) { c.decimal = true }
}

// WithPointerIndirect makes JMP (indirect) dereference its operand as
// a pointer, as the silicon does.
func WithPointerIndirect() Option {
	return func(c *CPU) { c.indirect = INDIRECT_POINTER }
}

// New returns a CPU with zeroed memory and registers in their power
// on state.
func New(opts ...Option) *CPU {
	c := &CPU{mem: &memory{}}
	for _, o := range opts {
		o(c)
	}
	c.initRegisters(PROGRAM_BASE)

	return c
}

func (c *CPU) initRegisters(pc uint16) {
	c.acc, c.x, c.y = 0, 0, 0
	c.status = 0
	c.sp = STACK_TOP
	c.pc = pc
}

// Reset puts the registers back to their initial state, leaving
// memory alone. PC comes from the reset vector when one is
// installed, otherwise the program region base.
func (c *CPU) Reset() {
	pc := c.mem.read16(RESET_VECTOR)
	if pc == 0 {
		pc = PROGRAM_BASE
	}
	c.initRegisters(pc)
}

func (c *CPU) String() string {
	return c.Registers().String()
}

// Registers returns a copy of the current register file.
func (c *CPU) Registers() Registers {
	return Registers{A: c.acc, X: c.x, Y: c.y, PC: c.pc, S: c.sp, P: c.status}
}

// SetPC moves the program counter, for hosts that start execution
// somewhere other than the program base.
func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
}

// Flag reports whether status bit is set.
func (c *CPU) Flag(bit uint8) bool {
	return c.flag(bit)
}

// LoadProgram copies prog verbatim into the program region.
func (c *CPU) LoadProgram(prog []uint8) {
	c.mem.load(PROGRAM_BASE, prog)
}

// Load copies data verbatim into memory at addr.
func (c *CPU) Load(addr uint16, data []uint8) {
	c.mem.load(addr, data)
}

func (c *CPU) read(addr uint16) uint8 {
	return c.mem.read(addr)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.mem.write(addr, val)
}

// Read returns the byte at addr.
func (c *CPU) Read(addr uint16) uint8 {
	return c.mem.read(addr)
}

// Write stores val at addr.
func (c *CPU) Write(addr uint16, val uint8) {
	c.mem.write(addr, val)
}

// Read16 returns the little endian word at addr.
func (c *CPU) Read16(addr uint16) uint16 {
	return c.mem.read16(addr)
}

// Write16 stores val little endian at addr.
func (c *CPU) Write16(addr, val uint16) {
	c.mem.write16(addr, val)
}

// Slice returns a copy of count bytes of memory starting at addr.
func (c *CPU) Slice(addr uint16, count int) []uint8 {
	return c.mem.slice(addr, count)
}

func (c *CPU) getStackAddr() uint16 {
	return STACK_PAGE | uint16(c.sp)
}

// Stack returns the bytes currently on the stack, most recently
// pushed first.
func (c *CPU) Stack() []uint8 {
	n := STACK_TOP - int(c.sp)
	if n <= 0 {
		return []uint8{}
	}
	return c.mem.slice(c.getStackAddr()+1, n)
}

// Push places val on the stack.
func (c *CPU) Push(val uint8) {
	c.write(c.getStackAddr(), val)
	c.sp--
}

// Pop removes and returns the top of the stack.
func (c *CPU) Pop() uint8 {
	c.sp++
	return c.read(c.getStackAddr())
}

// Push16 pushes val high byte first, leaving it little endian in
// memory.
func (c *CPU) Push16(val uint16) {
	c.Push(uint8(val >> 8))
	c.Push(uint8(val & 0x00FF))
}

// Pop16 is the inverse of Push16.
func (c *CPU) Pop16() uint16 {
	lsb := uint16(c.Pop())
	msb := uint16(c.Pop())

	return (msb << 8) | lsb
}

// getInst decodes the opcode at pc.
func (c *CPU) getInst() (opcode, error) {
	b := c.read(c.pc)
	op := opcodes[b]
	if op.undefined {
		return op, fmt.Errorf("opcode 0x%02x at 0x%04x: %w", b, c.pc, ErrInvalidInstruction)
	}

	return op, nil
}

// Step executes exactly one instruction and leaves pc on the next
// unconsumed byte. It only fails for undefined opcodes under
// WithStrictDecode.
func (c *CPU) Step() error {
	op, err := c.getInst()
	c.pc++
	if err != nil && c.strict {
		return err
	}

	operand := c.pc
	op.fn(c, op.mode)
	if !op.flow {
		c.pc = operand + operandBytes(op.mode)
	}

	return nil
}

// Breakpoint returns an error wrapping ErrBreakpoint when pc is one
// of breaks.
func (c *CPU) Breakpoint(breaks map[uint16]struct{}) error {
	if _, ok := breaks[c.pc]; ok {
		return fmt.Errorf("0x%04x: %w", c.pc, ErrBreakpoint)
	}
	return nil
}

// Disassemble renders the instruction at addr and returns it along
// with its length in bytes.
func (c *CPU) Disassemble(addr uint16) (string, uint16) {
	op := opcodes[c.read(addr)]
	n := uint16(op.bytes)

	var sb strings.Builder
	sb.WriteString(op.name)

	lo := c.read(addr + 1)
	word := c.mem.read16(addr + 1)
	switch op.mode {
	case ACCUMULATOR:
		sb.WriteString(" A")
	case IMMEDIATE:
		fmt.Fprintf(&sb, " #$%02X", lo)
	case ZERO_PAGE:
		fmt.Fprintf(&sb, " $%02X", lo)
	case ZERO_PAGE_X:
		fmt.Fprintf(&sb, " $%02X,X", lo)
	case ZERO_PAGE_Y:
		fmt.Fprintf(&sb, " $%02X,Y", lo)
	case RELATIVE:
		fmt.Fprintf(&sb, " $%04X", addr+2+uint16(int8(lo)))
	case ABSOLUTE:
		fmt.Fprintf(&sb, " $%04X", word)
	case ABSOLUTE_X:
		fmt.Fprintf(&sb, " $%04X,X", word)
	case ABSOLUTE_Y:
		fmt.Fprintf(&sb, " $%04X,Y", word)
	case INDIRECT:
		fmt.Fprintf(&sb, " ($%04X)", word)
	case INDIRECT_X:
		fmt.Fprintf(&sb, " ($%02X,X)", lo)
	case INDIRECT_Y:
		fmt.Fprintf(&sb, " ($%02X),Y", lo)
	}

	return sb.String(), n
}
