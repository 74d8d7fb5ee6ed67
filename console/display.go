package console

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/nescore/ppu"
)

// Display shows the frame buffer in a window and drives the machine
// from ebiten's update loop.
type Display struct {
	ctx           context.Context
	m             *Machine
	cmds          <-chan string
	stepsPerFrame int
	scale         int
	img           *ebiten.Image
}

// NewDisplay returns a Display that runs stepsPerFrame instructions
// per tick while the machine is running. cmds may be nil.
func NewDisplay(ctx context.Context, m *Machine, cmds <-chan string, stepsPerFrame, scale int) *Display {
	if scale < 1 {
		scale = 1
	}
	return &Display{ctx: ctx, m: m, cmds: cmds, stepsPerFrame: stepsPerFrame, scale: scale}
}

// Run opens the window and blocks until it's closed, ctx is done or
// the machine fails.
func (d *Display) Run() error {
	w, h := d.m.ppu.GetResolution()
	ebiten.SetWindowSize(w*d.scale, h*d.scale)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetRunnableOnUnfocused(true)

	return ebiten.RunGame(d)
}

// tick is one update without any ebiten state, so it can be driven
// from tests.
func (d *Display) tick(pressed func(ebiten.Key) bool) error {
	select {
	case <-d.ctx.Done():
		return ebiten.Termination
	default:
	}

	for done := false; !done; {
		select {
		case cmd, ok := <-d.cmds:
			if !ok {
				d.cmds = nil
				done = true
				continue
			}
			if err := d.m.Control(cmd); err != nil && !errors.Is(err, errUnknownCommand) {
				return err
			}
		default:
			done = true
		}
	}

	d.m.PollController(pressed)
	if !d.m.Running() {
		return nil
	}

	return d.m.RunSteps(d.stepsPerFrame)
}

func (d *Display) Update() error {
	return d.tick(ebiten.IsKeyPressed)
}

func (d *Display) Draw(screen *ebiten.Image) {
	if d.img == nil {
		d.img = ebiten.NewImage(ppu.RES_WIDTH, ppu.RES_HEIGHT)
	}

	d.img.WritePixels(d.m.ppu.RGBA())
	screen.DrawImage(d.img, nil)
}

func (d *Display) Layout(_, _ int) (int, int) {
	return d.m.ppu.GetResolution()
}
