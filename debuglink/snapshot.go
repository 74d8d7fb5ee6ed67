// Package debuglink publishes machine state to remote debuggers and
// feeds their commands back to the console loop.
package debuglink

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bdwalton/nescore/mos6502"
)

// STACK_DEPTH caps how many stack bytes go into a snapshot.
const STACK_DEPTH = 16

type Registers struct {
	A  uint8  `json:"a"`
	P  uint8  `json:"p"`
	PC uint16 `json:"pc"`
	S  uint8  `json:"s"`
	X  uint8  `json:"x"`
	Y  uint8  `json:"y"`
}

type Value struct {
	Value string `json:"value"`
}

// Snapshot is one debugger message: the register file, the top of the
// stack and the instruction about to execute.
type Snapshot struct {
	Registers    Registers `json:"registers"`
	Stack        Value     `json:"stack"`
	Instructions Value     `json:"instructions"`
}

func NewSnapshot(cpu *mos6502.CPU) Snapshot {
	r := cpu.Registers()

	s := cpu.Stack()
	if len(s) > STACK_DEPTH {
		s = s[:STACK_DEPTH]
	}
	b := make([]string, len(s))
	for i, v := range s {
		b[i] = fmt.Sprintf("%02X", v)
	}

	dis, _ := cpu.Disassemble(r.PC)

	return Snapshot{
		Registers:    Registers{A: r.A, P: r.P, PC: r.PC, S: r.S, X: r.X, Y: r.Y},
		Stack:        Value{strings.Join(b, " ")},
		Instructions: Value{fmt.Sprintf("%04X: %s", r.PC, dis)},
	}
}

// JSON encodes s as a single line with no trailing newline.
func (s Snapshot) JSON() ([]byte, error) {
	return json.Marshal(s)
}
