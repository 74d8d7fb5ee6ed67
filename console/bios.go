package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"
)

const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
)

// keyReader hands out bytes gathered by a single reader goroutine, so
// the monitor can watch for an interrupt key while the machine runs
// and still give the line editor everything else.
type keyReader struct {
	keys chan byte
}

func newKeyReader(r io.Reader) *keyReader {
	kr := &keyReader{keys: make(chan byte, 64)}
	go func() {
		defer close(kr.keys)
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				kr.keys <- buf[0]
			}
			if err != nil {
				return
			}
		}
	}()

	return kr
}

func (kr *keyReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b, ok := <-kr.keys
	if !ok {
		return 0, io.EOF
	}
	p[0] = b
	n := 1
	for n < len(p) {
		select {
		case b, ok := <-kr.keys:
			if !ok {
				return n, nil
			}
			p[n] = b
			n++
		default:
			return n, nil
		}
	}

	return n, nil
}

const menu = `(B)reak - add breakpoint
(C)lear - clear breakpoints
(R)un - run until a breakpoint, an error or ^C
(S)tep - step the cpu one instruction
R(e)set - hit the reset button
(M)emory - select a memory range to display
S(t)ack - show the items on the stack
(I)nstruction - show the instruction at pc
(P)C - set program counter
(Q)uit - shutdown the console
`

// BIOS is the interactive monitor. rw is normally a terminal in raw
// mode; it returns when the user quits or rw reaches EOF.
func (m *Machine) BIOS(ctx context.Context, rw io.ReadWriter) error {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigQuit)

	kr := newKeyReader(rw)
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{kr, rw}, "")

	breaks := make(map[uint16]struct{})

	for {
		fmt.Fprintf(t, "%s\n\n%s", m.cpu, menu)
		t.SetPrompt("Choice: ")
		line, err := t.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var in byte
		if line = strings.TrimSpace(line); line != "" {
			in = line[0]
		}

		switch in {
		case 'b', 'B':
			if a, err := readAddress(t, "Breakpoint (eg: ff15): "); err != nil {
				fmt.Fprintf(t, "%v\n", err)
			} else {
				breaks[a] = struct{}{}
			}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			if a, err := readAddress(t, "Set PC to what address (eg: 0400)?: "); err != nil {
				fmt.Fprintf(t, "%v\n", err)
			} else {
				m.cpu.SetPC(a)
			}
		case 'q', 'Q':
			return nil
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			done := make(chan error, 1)
			go func() {
				done <- m.Run(cctx, breaks)
			}()

			err := waitRun(kr, sigQuit, done, cancel)
			cancel()
			if err != nil {
				fmt.Fprintf(t, "\nstopped: %v\n", err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
		case 's', 'S':
			if err := m.Step(); err != nil {
				fmt.Fprintf(t, "%v\n", err)
			}
		case 't', 'T':
			fmt.Fprintln(t)
			s := m.cpu.Stack()
			for i, b := range s {
				fmt.Fprintf(t, "0x%04x: 0x%02x ", 0x01FF-len(s)+1+i, b)
			}
			fmt.Fprintf(t, "\n\n")
		case 'i', 'I':
			pc := m.cpu.Registers().PC
			dis, n := m.cpu.Disassemble(pc)
			fmt.Fprintf(t, "\n0x%04x: ", pc)
			for i := uint16(0); i < n; i++ {
				fmt.Fprintf(t, "%02x ", m.cpu.Read(pc+i))
			}
			fmt.Fprintf(t, "  %s\n\n", dis)
		case 'e', 'E':
			m.Reset()
		case 'm', 'M':
			low, err := readAddress(t, "Low address (eg f00d): ")
			if err != nil {
				fmt.Fprintf(t, "%v\n", err)
				break
			}
			high, err := readAddress(t, "High address (eg beef): ")
			if err != nil {
				fmt.Fprintf(t, "%v\n", err)
				break
			}
			fmt.Fprintln(t)
			dumpMemory(t, m, low, high)
		}
	}
}

// waitRun blocks until the run finishes or the user interrupts it with
// ^C, ^D or a signal.
func waitRun(kr *keyReader, sigQuit <-chan os.Signal, done <-chan error, cancel context.CancelFunc) error {
	keys := kr.keys
	for {
		select {
		case err := <-done:
			return err
		case <-sigQuit:
			cancel()
		case b, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if b == keyCtrlC || b == keyCtrlD {
				cancel()
			}
		}
	}
}

// dumpMemory prints low through high inclusive, or through the top of
// memory when high is below low.
func dumpMemory(w io.Writer, m *Machine, low, high uint16) {
	end := int(high)
	if high < low {
		end = math.MaxUint16
	}

	for x, b := range m.cpu.Slice(low, end-int(low)+1) {
		fmt.Fprintf(w, "0x%04x: 0x%02x ", int(low)+x, b)
		if (x+1)%5 == 0 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\n\n")
}

func readAddress(t *term.Terminal, prompt string) (uint16, error) {
	t.SetPrompt(prompt)
	line, err := t.ReadLine()
	if err != nil {
		return 0, err
	}

	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(line)), "0x")
	a, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", line, err)
	}

	return uint16(a), nil
}
