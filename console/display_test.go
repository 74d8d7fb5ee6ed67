package console

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestControllerPoll(t *testing.T) {
	cases := []struct {
		pressed []ebiten.Key
		want    uint8
	}{
		{nil, 0x00},
		{[]ebiten.Key{ebiten.KeyA}, 0x01},
		{[]ebiten.Key{ebiten.KeyEnter, ebiten.KeyRight}, 0x88},
		{keys, 0xFF},
	}

	m := newMachine(nil)
	for i, tc := range cases {
		down := map[ebiten.Key]bool{}
		for _, k := range tc.pressed {
			down[k] = true
		}
		m.PollController(func(k ebiten.Key) bool { return down[k] })
		if got := m.CPU().Read(CONTROLLER_ADDR); got != tc.want {
			t.Errorf("%d: Got 0x%02x, want 0x%02x", i, got, tc.want)
		}
	}
}

func TestDisplayTick(t *testing.T) {
	none := func(ebiten.Key) bool { return false }

	m := newMachine([]uint8{0x4C, 0x00, 0x80}) // JMP $8000
	cmds := make(chan string, 2)
	d := NewDisplay(context.Background(), m, cmds, 10, 0)

	// paused: nothing runs
	if err := d.tick(none); err != nil || m.Steps() != 0 {
		t.Fatalf("Got err %v, %d steps", err, m.Steps())
	}

	cmds <- CMD_RUN
	if err := d.tick(none); err != nil || m.Steps() != 10 {
		t.Fatalf("Got err %v, %d steps, want 10", err, m.Steps())
	}

	cmds <- CMD_PAUSE
	close(cmds)
	if err := d.tick(none); err != nil || m.Steps() != 10 {
		t.Fatalf("Got err %v, %d steps, want 10", err, m.Steps())
	}

	if w, h := d.Layout(640, 480); w != 32 || h != 32 {
		t.Errorf("Got layout %dx%d", w, h)
	}
}

func TestDisplayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDisplay(ctx, newMachine(nil), nil, 1, 2)
	if err := d.tick(func(ebiten.Key) bool { return false }); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Got err %v, want %v", err, ebiten.Termination)
	}
}
