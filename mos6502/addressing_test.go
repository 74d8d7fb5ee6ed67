package mos6502

import (
	"testing"
)

func TestOperandBytes(t *testing.T) {
	cases := []struct {
		mode uint8
		want uint16
	}{
		{IMPLICIT, 0},
		{ACCUMULATOR, 0},
		{IMMEDIATE, 1},
		{ZERO_PAGE, 1},
		{ZERO_PAGE_X, 1},
		{ZERO_PAGE_Y, 1},
		{RELATIVE, 1},
		{ABSOLUTE, 2},
		{ABSOLUTE_X, 2},
		{ABSOLUTE_Y, 2},
		{INDIRECT, 2},
		{INDIRECT_X, 1},
		{INDIRECT_Y, 1},
	}

	for i, tc := range cases {
		if got := operandBytes(tc.mode); got != tc.want {
			t.Errorf("%d: Got %d, want %d", i, got, tc.want)
		}
	}
}

func TestGetOperandAddr(t *testing.T) {
	cpu := New()
	cpu.pc = 0x64
	cpu.mem.ram[0x0F] = 0x44
	cpu.mem.ram[0x10] = 0x55
	cpu.mem.ram[cpu.pc] = 0x0F
	cpu.mem.ram[cpu.pc+1] = 0x11
	cpu.mem.ram[0x001F] = 0x55
	cpu.mem.ram[0x110F] = 0xFA
	cpu.mem.ram[0x1110] = 0xBB
	cpu.x = 0x10
	cpu.y = 0xAC

	cases := []struct {
		mode uint8
		want uint16
	}{
		{IMMEDIATE, 0x64},     // the operand byte itself
		{ZERO_PAGE, 0x000F},   // mem[pc]
		{ZERO_PAGE_X, 0x001F}, // mem[pc] + x
		{ZERO_PAGE_Y, 0x00BB}, // mem[pc] + y
		{RELATIVE, 0x74},      // pc + 1 + int8(mem[pc])
		{ABSOLUTE, 0x110F},    // mem[pc+1] << 8 + mem[pc]
		{ABSOLUTE_X, 0x111F},  // (mem[pc+1] << 8 + mem[pc]) + x
		{ABSOLUTE_Y, 0x11BB},  // (mem[pc+1] << 8 + mem[pc]) + y
		{INDIRECT, 0x110F},    // operand word is the target
		{INDIRECT_X, 0x0055},  // word at zero page mem[pc] + x
		{INDIRECT_Y, 0x55F0},  // word at zero page mem[pc], plus y
	}

	for i, tc := range cases {
		if got := cpu.getOperandAddr(tc.mode); got != tc.want {
			t.Errorf("%d: Got 0x%04x, want 0x%04x", i, got, tc.want)
		}
	}

	ptr := New(WithPointerIndirect())
	ptr.mem = cpu.mem
	ptr.pc = cpu.pc
	if got, want := ptr.getOperandAddr(INDIRECT), uint16(0xBBFA); got != want {
		t.Errorf("pointer indirect: Got 0x%04x, want 0x%04x", got, want)
	}
}

func TestGetOperandAddrWraps(t *testing.T) {
	cases := []struct {
		mode uint8
		pc   uint16
		x, y uint8
		mem  map[uint16]uint8
		want uint16
	}{
		// zero page indexing stays on the zero page
		{ZERO_PAGE_X, 0x10, 0x20, 0, map[uint16]uint8{0x10: 0xF0}, 0x0010},
		{ZERO_PAGE_Y, 0x10, 0, 0x01, map[uint16]uint8{0x10: 0xFF}, 0x0000},
		// absolute indexing wraps at the top of memory
		{ABSOLUTE_X, 0x10, 0x02, 0, map[uint16]uint8{0x10: 0xFF, 0x11: 0xFF}, 0x0001},
		// pointer fetch wraps inside the zero page
		{INDIRECT_X, 0x10, 0x01, 0, map[uint16]uint8{0x10: 0xFE, 0xFF: 0x34, 0x00: 0x12}, 0x1234},
		{INDIRECT_Y, 0x10, 0, 0x10, map[uint16]uint8{0x10: 0xFF, 0xFF: 0x00, 0x00: 0x20}, 0x2010},
		// backwards branch
		{RELATIVE, 0x8001, 0, 0, map[uint16]uint8{0x8001: 0x9C}, 0x7F9E},
	}

	for i, tc := range cases {
		cpu := New()
		cpu.pc, cpu.x, cpu.y = tc.pc, tc.x, tc.y
		for a, v := range tc.mem {
			cpu.mem.ram[a] = v
		}
		if got := cpu.getOperandAddr(tc.mode); got != tc.want {
			t.Errorf("%d: Got 0x%04x, want 0x%04x", i, got, tc.want)
		}
	}
}
