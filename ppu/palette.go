package ppu

import (
	"image/color"
)

// SYSTEM_PALETTE is indexed by the low nibble of a screen byte.
var SYSTEM_PALETTE = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF}, // black
	{0xFF, 0xFF, 0xFF, 0xFF}, // white
	{0x88, 0x00, 0x00, 0xFF}, // red
	{0xAA, 0xFF, 0xEE, 0xFF}, // cyan
	{0xCC, 0x44, 0xCC, 0xFF}, // purple
	{0x00, 0xCC, 0x55, 0xFF}, // green
	{0x00, 0x00, 0xAA, 0xFF}, // blue
	{0xEE, 0xEE, 0x77, 0xFF}, // yellow
	{0xDD, 0x88, 0x55, 0xFF}, // orange
	{0x66, 0x44, 0x00, 0xFF}, // brown
	{0xFF, 0x77, 0x77, 0xFF}, // light red
	{0x33, 0x33, 0x33, 0xFF}, // dark grey
	{0x77, 0x77, 0x77, 0xFF}, // grey
	{0xAA, 0xFF, 0x66, 0xFF}, // light green
	{0x00, 0x88, 0xFF, 0xFF}, // light blue
	{0xBB, 0xBB, 0xBB, 0xFF}, // light grey
}
