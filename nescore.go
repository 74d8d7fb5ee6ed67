package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/bdwalton/nescore/apu"
	"github.com/bdwalton/nescore/console"
	"github.com/bdwalton/nescore/debuglink"
	"github.com/bdwalton/nescore/mos6502"
	"github.com/bdwalton/nescore/nesrom"
)

var (
	program         = flag.String("program", "", "Path to a raw 6502 program to load at 0x8000.")
	romFile         = flag.String("nes_rom", "", "Path to NES ROM to run.")
	steps           = flag.Int("steps", 0, "Instructions to run headless; 0 runs until interrupted.")
	bios            = flag.Bool("bios", false, "Start the interactive monitor on the terminal.")
	display         = flag.Bool("display", false, "Show the frame buffer in a window.")
	scale           = flag.Int("scale", 10, "Window scale factor for -display.")
	stepsPerFrame   = flag.Int("steps_per_frame", 500, "Instructions per frame for -display.")
	audio           = flag.Bool("audio", false, "Play the DAC output live.")
	wavOut          = flag.String("wav_out", "", "Write the DAC output to this WAV file.")
	debugAddr       = flag.String("debug_addr", "", "Serve the debug link on this address.")
	debugTransport  = flag.String("debug_transport", "tcp", "Debug link transport: tcp or ws.")
	strict          = flag.Bool("strict", false, "Fail on undefined opcodes instead of treating them as NOP.")
	decimal         = flag.Bool("decimal", false, "Honour the decimal flag in ADC and SBC.")
	pointerIndirect = flag.Bool("pointer_indirect", false, "Dereference the JMP (indirect) operand as a pointer.")
)

func cpuOptions() []mos6502.Option {
	var opts []mos6502.Option
	if *strict {
		opts = append(opts, mos6502.WithStrictDecode())
	}
	if *decimal {
		opts = append(opts, mos6502.WithDecimalMode())
	}
	if *pointerIndirect {
		opts = append(opts, mos6502.WithPointerIndirect())
	}
	return opts
}

func loadMachine() (*console.Machine, error) {
	m := console.New(mos6502.New(cpuOptions()...))

	switch {
	case *program != "" && *romFile != "":
		return nil, errors.New("-program and -nes_rom are mutually exclusive")
	case *program != "":
		prog, err := os.ReadFile(*program)
		if err != nil {
			return nil, err
		}
		m.CPU().LoadProgram(prog)
		m.Reset()
	case *romFile != "":
		rom, err := nesrom.New(*romFile)
		if err != nil {
			return nil, fmt.Errorf("invalid ROM: %w", err)
		}
		log.Println(rom)
		if err := m.LoadROM(rom); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("one of -program or -nes_rom is required")
	}

	return m, nil
}

func setupAudio(m *console.Machine) error {
	switch {
	case *wavOut != "":
		f, err := os.Create(*wavOut)
		if err != nil {
			return err
		}
		m.SetSink(apu.NewWAVWriter(f, m.APU().Rate()))
	case *audio:
		p, err := apu.NewOtoPlayer(m.APU().Rate())
		if err != nil {
			return fmt.Errorf("starting audio: %w", err)
		}
		m.SetSink(p)
	}

	return nil
}

func startDebugLink(ctx context.Context, m *console.Machine) (<-chan string, error) {
	if *debugAddr == "" {
		return nil, nil
	}

	h := debuglink.NewHub()
	m.Attach(h)

	var serve func(context.Context, string) error
	switch *debugTransport {
	case "tcp":
		serve = h.ListenTCP
	case "ws":
		serve = h.ListenWS
	default:
		return nil, fmt.Errorf("unknown debug transport %q", *debugTransport)
	}

	go func() {
		if err := serve(ctx, *debugAddr); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("debug link: %v", err)
		}
	}()

	return h.Commands(), nil
}

func runBIOS(ctx context.Context, m *console.Machine) error {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, old)
	}

	return m.BIOS(ctx, struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout})
}

func main() {
	flag.Parse()

	m, err := loadMachine()
	if err != nil {
		log.Fatalf("Couldn't load: %v", err)
	}
	if err := setupAudio(m); err != nil {
		log.Fatalf("Couldn't set up audio: %v", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Printf("Closing audio: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	cmds, err := startDebugLink(ctx, m)
	if err != nil {
		log.Fatalf("Couldn't start debug link: %v", err)
	}

	switch {
	case *bios:
		err = runBIOS(ctx, m)
	case *display:
		if cmds == nil {
			m.Control(console.CMD_RUN)
		}
		err = console.NewDisplay(ctx, m, cmds, *stepsPerFrame, *scale).Run()
	case cmds != nil:
		err = m.Drive(ctx, cmds)
	case *steps > 0:
		err = m.RunSteps(*steps)
	default:
		ictx, stop := signal.NotifyContext(ctx, os.Interrupt)
		err = m.Run(ictx, nil)
		stop()
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Stopped: %v", err)
	}
	log.Println(m)
}
