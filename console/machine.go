// Package console wires the 6502 core to its peripherals: the frame
// buffer, the DAC sampler and the controller. It also hosts the
// interactive monitor and the display window.
package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/bdwalton/nescore/apu"
	"github.com/bdwalton/nescore/mappers"
	"github.com/bdwalton/nescore/mos6502"
	"github.com/bdwalton/nescore/nesrom"
	"github.com/bdwalton/nescore/ppu"
)

// Samples buffered before they're pushed to the audio sink.
const FLUSH_SAMPLES = 1024

// Commands understood by Control.
const (
	CMD_STEP  = "step"
	CMD_RUN   = "run"
	CMD_PAUSE = "pause"
	CMD_RESET = "reset"
)

var errUnknownCommand = errors.New("unknown command")

// Observer is told about the machine state after every step.
type Observer interface {
	Observe(*mos6502.CPU)
}

// Machine is the console: a CPU plus the peripherals that watch its
// memory.
type Machine struct {
	cpu  *mos6502.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
	ctrl *controller
	sink apu.Sink

	observers []Observer
	running   bool
	steps     uint64
}

// New builds a Machine around cpu with no audio sink attached.
func New(cpu *mos6502.CPU) *Machine {
	return &Machine{
		cpu:  cpu,
		ppu:  ppu.New(),
		apu:  apu.New(apu.DEFAULT_RATE),
		ctrl: &controller{},
	}
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s\nsteps=%d, ppu: %s, apu: %s", m.cpu, m.steps, m.ppu, m.apu)
}

func (m *Machine) CPU() *mos6502.CPU {
	return m.cpu
}

func (m *Machine) PPU() *ppu.PPU {
	return m.ppu
}

func (m *Machine) APU() *apu.APU {
	return m.apu
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() uint64 {
	return m.steps
}

// Running reports whether Control last asked for free running.
func (m *Machine) Running() bool {
	return m.running
}

// Attach adds o to the observers notified after each step.
func (m *Machine) Attach(o Observer) {
	m.observers = append(m.observers, o)
}

// SetSink sends sampled audio to s.
func (m *Machine) SetSink(s apu.Sink) {
	m.sink = s
}

// LoadROM copies a cartridge image into memory with the mapper the
// ROM asks for and resets the CPU.
func (m *Machine) LoadROM(r *nesrom.ROM) error {
	mp, err := mappers.Get(r.MapperNum())
	if err != nil {
		return err
	}
	if err := mp.Load(r, m.cpu); err != nil {
		return fmt.Errorf("loading with mapper %s: %w", mp.Name(), err)
	}
	m.cpu.Reset()

	return nil
}

// Step executes one instruction, then lets the peripherals catch up
// with memory.
func (m *Machine) Step() error {
	err := m.cpu.Step()
	m.steps++

	m.ppu.Refresh(m.cpu)
	m.apu.Sample(m.cpu)
	if m.sink != nil && m.apu.Pending() >= FLUSH_SAMPLES {
		if ferr := m.apu.Flush(m.sink); ferr != nil && err == nil {
			err = ferr
		}
	}

	for _, o := range m.observers {
		o.Observe(m.cpu)
	}

	return err
}

// Run steps the machine until ctx is cancelled, a step fails or pc
// lands on one of breaks.
func (m *Machine) Run(ctx context.Context, breaks map[uint16]struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := m.Step(); err != nil {
			return err
		}

		if err := m.cpu.Breakpoint(breaks); err != nil {
			return err
		}
	}
}

// RunSteps executes at most n instructions, stopping early on error.
func (m *Machine) RunSteps(n int) error {
	for i := 0; i < n; i++ {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Reset resets the CPU and pauses the machine.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.running = false
}

// Control applies one of the CMD_* commands.
func (m *Machine) Control(cmd string) error {
	switch cmd {
	case CMD_STEP:
		m.running = false
		return m.Step()
	case CMD_RUN:
		m.running = true
	case CMD_PAUSE:
		m.running = false
	case CMD_RESET:
		m.Reset()
	default:
		return fmt.Errorf("%q: %w", cmd, errUnknownCommand)
	}

	return nil
}

// Drive runs the machine under external control. It starts paused
// and steps freely between "run" and "pause". It returns when ctx is
// done, cmds is closed or a step fails.
func (m *Machine) Drive(ctx context.Context, cmds <-chan string) error {
	for {
		if !m.running {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case cmd, ok := <-cmds:
				if !ok {
					return nil
				}
				if err := m.Control(cmd); err != nil && !errors.Is(err, errUnknownCommand) {
					return err
				}
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}
			if err := m.Control(cmd); err != nil && !errors.Is(err, errUnknownCommand) {
				return err
			}
		default:
			if err := m.Step(); err != nil {
				m.running = false
				return err
			}
		}
	}
}

// Close flushes any buffered audio and closes the sink.
func (m *Machine) Close() error {
	if m.sink == nil {
		return nil
	}
	if err := m.apu.Flush(m.sink); err != nil {
		return err
	}
	return m.sink.Close()
}
