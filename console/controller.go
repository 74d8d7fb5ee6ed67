package console

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CONTROLLER_ADDR holds the button state, one bit per button, after
// every poll.
const CONTROLLER_ADDR = 0x00FF

// Buttons, as bits:
// 0 - A
// 1 - B
// 2 - Select
// 3 - Start
// 4 - Up
// 5 - Down
// 6 - Left
// 7 - Right
var keys []ebiten.Key = []ebiten.Key{
	ebiten.KeyA,     // A
	ebiten.KeyB,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,    // Up
	ebiten.KeyDown,  // Down
	ebiten.KeyLeft,  // Left
	ebiten.KeyRight, // Right
}

type controller struct {
	buttons uint8
}

// poll samples every button with pressed and returns the new state.
func (c *controller) poll(pressed func(ebiten.Key) bool) uint8 {
	c.buttons = 0
	for i, key := range keys {
		if pressed(key) {
			c.buttons |= 1 << i
		}
	}
	return c.buttons
}

// PollController refreshes the controller from pressed and stores the
// result at CONTROLLER_ADDR.
func (m *Machine) PollController(pressed func(ebiten.Key) bool) {
	m.cpu.Write(CONTROLLER_ADDR, m.ctrl.poll(pressed))
}
