package debuglink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"
)

// waitClients polls until n clients are subscribed.
func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Got %d clients, want %d", h.clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func waitCommand(t *testing.T, h *Hub) string {
	t.Helper()
	select {
	case cmd := <-h.Commands():
		return cmd
	case <-time.After(2 * time.Second):
		t.Fatalf("no command received")
	}
	return ""
}

func TestServeTCP(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	done := make(chan error, 1)
	go func() { done <- h.ServeTCP(ctx, l) }()

	conn, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer conn.Close()
	r := bufio.NewReader(conn)
	waitClients(t, h, 1)

	for i, cmd := range []string{"step", "run", "pause", "reset"} {
		fmt.Fprintf(conn, "%s\n", cmd)
		if got := waitCommand(t, h); got != cmd {
			t.Errorf("%d: Got %q, want %q", i, got, cmd)
		}
	}

	fmt.Fprintf(conn, "jump\n")
	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rep reply
	if err := json.Unmarshal([]byte(line), &rep); err != nil || rep.Error != errUnknownCommand.Error() {
		t.Errorf("Got %q (%v), want an unknown command reply", line, err)
	}

	h.Publish(Snapshot{Registers: Registers{A: 0x42, PC: 0x8001}})
	line, err = r.ReadString('\n')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var s Snapshot
	if err := json.Unmarshal([]byte(line), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Registers.A != 0x42 || s.Registers.PC != 0x8001 {
		t.Errorf("Got registers %+v, want A=0x42 PC=0x8001", s.Registers)
	}

	fmt.Fprintf(conn, "bye\n")
	waitClients(t, h, 0)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Errorf("ServeTCP didn't return after cancel")
	}
}
