package mos6502

import (
	"fmt"
)

// 6502 Instructions
// https://www.nesdev.org/obelisk-6502-guide/instructions.html
// https://www.nesdev.org/obelisk-6502-guide/reference.html
const (
	ADC = iota // ADD with Carry
	AND        // Logical AND
	ASL        // Arithmetic Shift Left
	BCC        // Branch if Carry Clear
	BCS        // Branch if Carry Set
	BEQ        // Branch if Equal
	BIT        // Bit Test
	BMI        // Branch if Minus
	BNE        // Branch if Not Equal
	BPL        // Branch if Positive
	BRK        // Force Interrupt
	BVC        // Branch if Overflow Clear
	BVS        // Branch if Overflow Set
	CLC        // Clear Carry Flag
	CLD        // Clear Decimal Mode
	CLI        // Clear Interrupt Disable
	CLV        // Clear Overflow Flag
	CMP        // Compare
	CPX        // Compare X Register
	CPY        // compare Y Regsiter
	DEC        // Decrement Memory
	DEX        // Decrement X Register
	DEY        // Decrement Y Register
	EOR        // Exclusive OR
	INC        // Increment Memory
	INX        // Increment X Register
	INY        // Increment Y Register
	JMP        // Jump
	JSR        // Jump to Subroutine
	LDA        // Load Accumulator
	LDX        // Load X Register
	LDY        // Load Y Register
	LSR        // Logical Shift Right
	NOP        // No Operation
	ORA        // Logical Inclusive OR
	PHA        // Push Accumulator
	PHP        // Push Processor Status
	PLA        // Pull Accumulator
	PLP        // Pull Processor Status
	ROL        // Rotate Left
	ROR        // Rotate Right
	RTI        // Return from Interrupt
	RTS        // Return from Subroutine
	SBC        // Subtract With Carry
	SEC        // Set Carry Flag
	SED        // Set Decimal Flag
	SEI        // Set Interrupt Disable
	STA        // Store Accumulator
	STX        // Store X Register
	STY        // Store Y Register
	TAX        // Transfer Accumulator to X
	TAY        // Transfer Accumulator to Y
	TSX        // Transfer Stack Pointer to X
	TXA        // Transfer X to Accumulator
	TXS        // Transfer X to Stack Pointer
	TYA        // Transfer Y to Accumulator
	NUM_INSTRUCTIONS
)

type handler func(c *CPU, mode uint8)

type opcode struct {
	inst      uint8 // The instruction id
	name      string
	mode      uint8 // The memory addressing mode to use
	bytes     uint8 // Instruction length, including the opcode byte
	flow      bool  // The handler sets pc itself
	undefined bool  // Not a documented opcode; executes as NOP
	fn        handler
}

func (o opcode) String() string {
	return fmt.Sprintf("{%s, %s}", o.name, modenames[o.mode])
}

// opcodes is the dispatch table, indexed directly by opcode byte.
var opcodes [256]opcode

// handlers maps instruction ids to their implementation.
var handlers [NUM_INSTRUCTIONS]handler

// Instructions that move pc on their own rather than having the
// engine step over their operands.
var flowInstructions = map[uint8]bool{
	BCC: true, BCS: true, BEQ: true, BMI: true, BNE: true, BPL: true, BVC: true, BVS: true,
	BRK: true, JMP: true, JSR: true, RTI: true, RTS: true,
}

func init() {
	handlers = [NUM_INSTRUCTIONS]handler{
		ADC: (*CPU).opADC, AND: (*CPU).opAND, ASL: (*CPU).opASL, BCC: (*CPU).opBCC,
		BCS: (*CPU).opBCS, BEQ: (*CPU).opBEQ, BIT: (*CPU).opBIT, BMI: (*CPU).opBMI,
		BNE: (*CPU).opBNE, BPL: (*CPU).opBPL, BRK: (*CPU).opBRK, BVC: (*CPU).opBVC,
		BVS: (*CPU).opBVS, CLC: (*CPU).opCLC, CLD: (*CPU).opCLD, CLI: (*CPU).opCLI,
		CLV: (*CPU).opCLV, CMP: (*CPU).opCMP, CPX: (*CPU).opCPX, CPY: (*CPU).opCPY,
		DEC: (*CPU).opDEC, DEX: (*CPU).opDEX, DEY: (*CPU).opDEY, EOR: (*CPU).opEOR,
		INC: (*CPU).opINC, INX: (*CPU).opINX, INY: (*CPU).opINY, JMP: (*CPU).opJMP,
		JSR: (*CPU).opJSR, LDA: (*CPU).opLDA, LDX: (*CPU).opLDX, LDY: (*CPU).opLDY,
		LSR: (*CPU).opLSR, NOP: (*CPU).opNOP, ORA: (*CPU).opORA, PHA: (*CPU).opPHA,
		PHP: (*CPU).opPHP, PLA: (*CPU).opPLA, PLP: (*CPU).opPLP, ROL: (*CPU).opROL,
		ROR: (*CPU).opROR, RTI: (*CPU).opRTI, RTS: (*CPU).opRTS, SBC: (*CPU).opSBC,
		SEC: (*CPU).opSEC, SED: (*CPU).opSED, SEI: (*CPU).opSEI, STA: (*CPU).opSTA,
		STX: (*CPU).opSTX, STY: (*CPU).opSTY, TAX: (*CPU).opTAX, TAY: (*CPU).opTAY,
		TSX: (*CPU).opTSX, TXA: (*CPU).opTXA, TXS: (*CPU).opTXS, TYA: (*CPU).opTYA,
	}

	for i := range opcodes {
		opcodes[i] = opcode{NOP, "???", IMPLICIT, 1, false, true, (*CPU).opNOP}
	}

	for code, d := range documented {
		opcodes[code] = opcode{
			inst:  d.inst,
			name:  d.name,
			mode:  d.mode,
			bytes: uint8(1 + operandBytes(d.mode)),
			flow:  flowInstructions[d.inst],
			fn:    handlers[d.inst],
		}
	}
}

type definition struct {
	inst uint8
	name string
	mode uint8
}

// documented lists every official opcode. Anything missing decodes
// as an undefined NOP.
var documented = map[uint8]definition{
	0x69: {ADC, "ADC", IMMEDIATE},
	0x65: {ADC, "ADC", ZERO_PAGE},
	0x75: {ADC, "ADC", ZERO_PAGE_X},
	0x6D: {ADC, "ADC", ABSOLUTE},
	0x7D: {ADC, "ADC", ABSOLUTE_X},
	0x79: {ADC, "ADC", ABSOLUTE_Y},
	0x61: {ADC, "ADC", INDIRECT_X},
	0x71: {ADC, "ADC", INDIRECT_Y},
	0x29: {AND, "AND", IMMEDIATE},
	0x25: {AND, "AND", ZERO_PAGE},
	0x35: {AND, "AND", ZERO_PAGE_X},
	0x2D: {AND, "AND", ABSOLUTE},
	0x3D: {AND, "AND", ABSOLUTE_X},
	0x39: {AND, "AND", ABSOLUTE_Y},
	0x21: {AND, "AND", INDIRECT_X},
	0x31: {AND, "AND", INDIRECT_Y},
	0x0A: {ASL, "ASL", ACCUMULATOR},
	0x06: {ASL, "ASL", ZERO_PAGE},
	0x16: {ASL, "ASL", ZERO_PAGE_X},
	0x0E: {ASL, "ASL", ABSOLUTE},
	0x1E: {ASL, "ASL", ABSOLUTE_X},
	0x90: {BCC, "BCC", RELATIVE},
	0xB0: {BCS, "BCS", RELATIVE},
	0xF0: {BEQ, "BEQ", RELATIVE},
	0x24: {BIT, "BIT", ZERO_PAGE},
	0x2C: {BIT, "BIT", ABSOLUTE},
	0x30: {BMI, "BMI", RELATIVE},
	0xD0: {BNE, "BNE", RELATIVE},
	0x10: {BPL, "BPL", RELATIVE},
	0x00: {BRK, "BRK", IMPLICIT},
	0x50: {BVC, "BVC", RELATIVE},
	0x70: {BVS, "BVS", RELATIVE},
	0x18: {CLC, "CLC", IMPLICIT},
	0xD8: {CLD, "CLD", IMPLICIT},
	0x58: {CLI, "CLI", IMPLICIT},
	0xB8: {CLV, "CLV", IMPLICIT},
	0xC9: {CMP, "CMP", IMMEDIATE},
	0xC5: {CMP, "CMP", ZERO_PAGE},
	0xD5: {CMP, "CMP", ZERO_PAGE_X},
	0xCD: {CMP, "CMP", ABSOLUTE},
	0xDD: {CMP, "CMP", ABSOLUTE_X},
	0xD9: {CMP, "CMP", ABSOLUTE_Y},
	0xC1: {CMP, "CMP", INDIRECT_X},
	0xD1: {CMP, "CMP", INDIRECT_Y},
	0xE0: {CPX, "CPX", IMMEDIATE},
	0xE4: {CPX, "CPX", ZERO_PAGE},
	0xEC: {CPX, "CPX", ABSOLUTE},
	0xC0: {CPY, "CPY", IMMEDIATE},
	0xC4: {CPY, "CPY", ZERO_PAGE},
	0xCC: {CPY, "CPY", ABSOLUTE},
	0xC6: {DEC, "DEC", ZERO_PAGE},
	0xD6: {DEC, "DEC", ZERO_PAGE_X},
	0xCE: {DEC, "DEC", ABSOLUTE},
	0xDE: {DEC, "DEC", ABSOLUTE_X},
	0xCA: {DEX, "DEX", IMPLICIT},
	0x88: {DEY, "DEY", IMPLICIT},
	0x49: {EOR, "EOR", IMMEDIATE},
	0x45: {EOR, "EOR", ZERO_PAGE},
	0x55: {EOR, "EOR", ZERO_PAGE_X},
	0x4D: {EOR, "EOR", ABSOLUTE},
	0x5D: {EOR, "EOR", ABSOLUTE_X},
	0x59: {EOR, "EOR", ABSOLUTE_Y},
	0x41: {EOR, "EOR", INDIRECT_X},
	0x51: {EOR, "EOR", INDIRECT_Y},
	0xE6: {INC, "INC", ZERO_PAGE},
	0xF6: {INC, "INC", ZERO_PAGE_X},
	0xEE: {INC, "INC", ABSOLUTE},
	0xFE: {INC, "INC", ABSOLUTE_X},
	0xE8: {INX, "INX", IMPLICIT},
	0xC8: {INY, "INY", IMPLICIT},
	0x4C: {JMP, "JMP", ABSOLUTE},
	0x6C: {JMP, "JMP", INDIRECT},
	0x20: {JSR, "JSR", ABSOLUTE},
	0xA9: {LDA, "LDA", IMMEDIATE},
	0xA5: {LDA, "LDA", ZERO_PAGE},
	0xB5: {LDA, "LDA", ZERO_PAGE_X},
	0xAD: {LDA, "LDA", ABSOLUTE},
	0xBD: {LDA, "LDA", ABSOLUTE_X},
	0xB9: {LDA, "LDA", ABSOLUTE_Y},
	0xA1: {LDA, "LDA", INDIRECT_X},
	0xB1: {LDA, "LDA", INDIRECT_Y},
	0xA2: {LDX, "LDX", IMMEDIATE},
	0xA6: {LDX, "LDX", ZERO_PAGE},
	0xB6: {LDX, "LDX", ZERO_PAGE_Y},
	0xAE: {LDX, "LDX", ABSOLUTE},
	0xBE: {LDX, "LDX", ABSOLUTE_Y},
	0xA0: {LDY, "LDY", IMMEDIATE},
	0xA4: {LDY, "LDY", ZERO_PAGE},
	0xB4: {LDY, "LDY", ZERO_PAGE_X},
	0xAC: {LDY, "LDY", ABSOLUTE},
	0xBC: {LDY, "LDY", ABSOLUTE_X},
	0x4A: {LSR, "LSR", ACCUMULATOR},
	0x46: {LSR, "LSR", ZERO_PAGE},
	0x56: {LSR, "LSR", ZERO_PAGE_X},
	0x4E: {LSR, "LSR", ABSOLUTE},
	0x5E: {LSR, "LSR", ABSOLUTE_X},
	0xEA: {NOP, "NOP", IMPLICIT},
	0x09: {ORA, "ORA", IMMEDIATE},
	0x05: {ORA, "ORA", ZERO_PAGE},
	0x15: {ORA, "ORA", ZERO_PAGE_X},
	0x0D: {ORA, "ORA", ABSOLUTE},
	0x1D: {ORA, "ORA", ABSOLUTE_X},
	0x19: {ORA, "ORA", ABSOLUTE_Y},
	0x01: {ORA, "ORA", INDIRECT_X},
	0x11: {ORA, "ORA", INDIRECT_Y},
	0x48: {PHA, "PHA", IMPLICIT},
	0x08: {PHP, "PHP", IMPLICIT},
	0x68: {PLA, "PLA", IMPLICIT},
	0x28: {PLP, "PLP", IMPLICIT},
	0x2A: {ROL, "ROL", ACCUMULATOR},
	0x26: {ROL, "ROL", ZERO_PAGE},
	0x36: {ROL, "ROL", ZERO_PAGE_X},
	0x2E: {ROL, "ROL", ABSOLUTE},
	0x3E: {ROL, "ROL", ABSOLUTE_X},
	0x6A: {ROR, "ROR", ACCUMULATOR},
	0x66: {ROR, "ROR", ZERO_PAGE},
	0x76: {ROR, "ROR", ZERO_PAGE_X},
	0x6E: {ROR, "ROR", ABSOLUTE},
	0x7E: {ROR, "ROR", ABSOLUTE_X},
	0x40: {RTI, "RTI", IMPLICIT},
	0x60: {RTS, "RTS", IMPLICIT},
	0xE9: {SBC, "SBC", IMMEDIATE},
	0xE5: {SBC, "SBC", ZERO_PAGE},
	0xF5: {SBC, "SBC", ZERO_PAGE_X},
	0xED: {SBC, "SBC", ABSOLUTE},
	0xFD: {SBC, "SBC", ABSOLUTE_X},
	0xF9: {SBC, "SBC", ABSOLUTE_Y},
	0xE1: {SBC, "SBC", INDIRECT_X},
	0xF1: {SBC, "SBC", INDIRECT_Y},
	0x38: {SEC, "SEC", IMPLICIT},
	0xF8: {SED, "SED", IMPLICIT},
	0x78: {SEI, "SEI", IMPLICIT},
	0x85: {STA, "STA", ZERO_PAGE},
	0x95: {STA, "STA", ZERO_PAGE_X},
	0x8D: {STA, "STA", ABSOLUTE},
	0x9D: {STA, "STA", ABSOLUTE_X},
	0x99: {STA, "STA", ABSOLUTE_Y},
	0x81: {STA, "STA", INDIRECT_X},
	0x91: {STA, "STA", INDIRECT_Y},
	0x86: {STX, "STX", ZERO_PAGE},
	0x96: {STX, "STX", ZERO_PAGE_Y},
	0x8E: {STX, "STX", ABSOLUTE},
	0x84: {STY, "STY", ZERO_PAGE},
	0x94: {STY, "STY", ZERO_PAGE_X},
	0x8C: {STY, "STY", ABSOLUTE},
	0xAA: {TAX, "TAX", IMPLICIT},
	0xA8: {TAY, "TAY", IMPLICIT},
	0xBA: {TSX, "TSX", IMPLICIT},
	0x8A: {TXA, "TXA", IMPLICIT},
	0x9A: {TXS, "TXS", IMPLICIT},
	0x98: {TYA, "TYA", IMPLICIT},
}
