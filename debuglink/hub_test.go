package debuglink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bdwalton/nescore/mos6502"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		line    string
		want    string
		wantErr error
	}{
		{"step", "step", nil},
		{" RUN\r", "run", nil},
		{"pause", "pause", nil},
		{"reset", "reset", nil},
		{"bye", CMD_BYE, nil},
		{"jump", "", errUnknownCommand},
		{"", "", errUnknownCommand},
	}

	for i, tc := range cases {
		got, err := parseCommand(tc.line)
		if got != tc.want || !errors.Is(err, tc.wantErr) {
			t.Errorf("%d: Got %q (%v), want %q (%v)", i, got, err, tc.want, tc.wantErr)
		}
	}
}

func TestPublish(t *testing.T) {
	h := NewHub()
	a, unsubA := h.Subscribe()
	b, unsubB := h.Subscribe()
	defer unsubB()

	if h.clients() != 2 {
		t.Fatalf("Got %d clients, want 2", h.clients())
	}

	h.Publish(Snapshot{Registers: Registers{PC: 0x8000}})
	for i, ch := range []<-chan []byte{a, b} {
		select {
		case <-ch:
		default:
			t.Errorf("%d: no snapshot delivered", i)
		}
	}

	unsubA()
	h.Publish(Snapshot{})
	select {
	case <-a:
		t.Errorf("snapshot delivered after unsubscribe")
	default:
	}
	if len(b) != 1 {
		t.Errorf("Got %d queued, want 1", len(b))
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	h := NewHub()
	ch, unsub := h.Subscribe()
	defer unsub()

	for i := 0; i < CLIENT_QUEUE+10; i++ {
		h.Publish(Snapshot{})
	}

	if len(ch) != CLIENT_QUEUE {
		t.Errorf("Got %d queued, want %d", len(ch), CLIENT_QUEUE)
	}
}

func TestObserve(t *testing.T) {
	h := NewHub()
	cpu := mos6502.New()

	// No subscribers, nothing to do.
	h.Observe(cpu)

	ch, unsub := h.Subscribe()
	defer unsub()
	h.Observe(cpu)

	select {
	case b := <-ch:
		want, _ := NewSnapshot(cpu).JSON()
		if string(b) != string(want) {
			t.Errorf("Got %s, want %s", b, want)
		}
	default:
		t.Errorf("no snapshot delivered")
	}
}

func TestSendCancelled(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.cmds); i++ {
		if err := h.send(context.Background(), "step"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := h.send(ctx, "step"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Got %v, want %v", err, context.DeadlineExceeded)
	}
}
