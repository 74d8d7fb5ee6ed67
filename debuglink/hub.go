package debuglink

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/bdwalton/nescore/console"
	"github.com/bdwalton/nescore/mos6502"
)

// Per client queue of encoded snapshots. Slow clients lose messages
// rather than stall the machine.
const CLIENT_QUEUE = 64

// CMD_BYE ends a client session.
const CMD_BYE = "bye"

var errUnknownCommand = errors.New("unknown command")

// Hub fans snapshots out to connected clients and collects their
// commands for the console loop.
type Hub struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
	cmds chan string
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[chan []byte]struct{}),
		cmds: make(chan string, 16),
	}
}

// Commands delivers step, run, pause and reset requests from clients.
func (h *Hub) Commands() <-chan string {
	return h.cmds
}

// Subscribe registers a new client queue. The returned func removes
// it again.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, CLIENT_QUEUE)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *Hub) clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish sends s to every client whose queue has room.
func (h *Hub) Publish(s Snapshot) {
	b, err := s.JSON()
	if err != nil {
		log.Printf("debuglink: encoding snapshot: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- b:
		default:
		}
	}
}

// Observe publishes the CPU state after a step. Nothing is built when
// no client is connected.
func (h *Hub) Observe(cpu *mos6502.CPU) {
	if h.clients() == 0 {
		return
	}
	h.Publish(NewSnapshot(cpu))
}

// send queues cmd for the console loop.
func (h *Hub) send(ctx context.Context, cmd string) error {
	select {
	case h.cmds <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseCommand maps a client line onto a console command or CMD_BYE.
func parseCommand(line string) (string, error) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case console.CMD_STEP, console.CMD_RUN, console.CMD_PAUSE, console.CMD_RESET, CMD_BYE:
		return cmd, nil
	}
	return "", errUnknownCommand
}

// clientConn is a transport for one debugger session.
type clientConn interface {
	readLine() (string, error)
	writeMsg([]byte) error
	close() error
}

type reply struct {
	Error string `json:"error"`
}

// serveClient pumps snapshots out to conn and commands in from it
// until the client says bye, the connection fails or ctx is done.
func (h *Hub) serveClient(ctx context.Context, conn clientConn, logger *log.Logger) {
	snaps, unsubscribe := h.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		for {
			l, err := conn.readLine()
			if err != nil {
				errs <- err
				return
			}
			select {
			case lines <- l:
			case <-ctx.Done():
				return
			}
		}
	}()

	defer func() {
		logger.Printf("Closing client connection")
		conn.close()
		logger.Printf("Closed client connection")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errs:
			logger.Printf("Closing client connection due to an error: %v", err)
			return
		case b := <-snaps:
			if err := conn.writeMsg(b); err != nil {
				logger.Printf("Closing client connection due to an error: %v", err)
				return
			}
		case l := <-lines:
			cmd, err := parseCommand(l)
			if err != nil {
				logger.Printf("%q: %v", l, err)
				b, _ := json.Marshal(reply{Error: err.Error()})
				if err := conn.writeMsg(b); err != nil {
					return
				}
				continue
			}
			if cmd == CMD_BYE {
				return
			}
			if err := h.send(ctx, cmd); err != nil {
				return
			}
		}
	}
}
