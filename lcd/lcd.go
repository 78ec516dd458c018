// Package lcd implements the character/command protocol for an HD44780
// LCD driven over a 74HC595 shift register (original lcd.c/lcd.h). The
// wire-level shift-out behavior lives in package shift; this package only
// knows HD44780 command bytes.
package lcd

import "github.com/handheld/lasertag/shift"

// HD44780 instruction bits. Only the subset this firmware's contract uses
// is modeled; the original firmware never needed the rest.
const (
	cmdClear       = 0x01
	cmdDisplayBase = 0x08
	displayOn      = 0x04
	cursorOn       = 0x02
	blinkOn        = 0x01
	cmdSetDDRAM    = 0x80
	cmdSetCGRAM    = 0x40
)

// rowOffset is the DDRAM address a row starts at on a standard 2x16
// HD44780 controller.
var rowOffset = [2]uint8{0x00, 0x40}

// Display is a character LCD driven over a shift register. It tracks just
// enough state (display/cursor/blink enable) to emit correct command bytes
// without re-deriving them from the wire each time.
type Display struct {
	reg             *shift.Register
	displayEnabled  bool
	cursorShown     bool
	cursorBlinking  bool
}

// New returns a Display driving reg. The register is assumed already wired
// to the LCD's data/clock/latch pins (original PC3-5).
func New(reg *shift.Register) *Display {
	return &Display{reg: reg, displayEnabled: true}
}

func (d *Display) displayControl() uint8 {
	b := uint8(cmdDisplayBase)
	if d.displayEnabled {
		b |= displayOn
	}
	if d.cursorShown {
		b |= cursorOn
	}
	if d.cursorShown && d.cursorBlinking {
		b |= blinkOn
	}
	return b
}

// Enable turns the display on.
func (d *Display) Enable() {
	d.displayEnabled = true
	d.reg.Out(d.displayControl())
}

// Disable turns the display off without clearing its contents.
func (d *Display) Disable() {
	d.displayEnabled = false
	d.reg.Out(d.displayControl())
}

// Clear clears the display and homes the cursor.
func (d *Display) Clear() {
	d.reg.Out(cmdClear)
}

// ShowCursor shows the cursor, optionally blinking.
func (d *Display) ShowCursor(blink bool) {
	d.cursorShown = true
	d.cursorBlinking = blink
	d.reg.Out(d.displayControl())
}

// HideCursor hides the cursor.
func (d *Display) HideCursor() {
	d.cursorShown = false
	d.reg.Out(d.displayControl())
}

// MoveCursor moves the cursor to the given column and row (0-indexed).
func (d *Display) MoveCursor(col, row uint8) {
	d.reg.Out(cmdSetDDRAM | (rowOffset[row%2] + col))
}

// Putc writes a single character at the current cursor position.
func (d *Display) Putc(c byte) {
	d.reg.Out(c)
}

// Puts writes every byte of s at the current cursor position, advancing
// the cursor as the controller auto-increments.
func (d *Display) Puts(s string) {
	for i := 0; i < len(s); i++ {
		d.Putc(s[i])
	}
}

// MakeChar defines one of the 8 programmable CGRAM characters (id 0-7)
// from an 8-byte bitmap, one byte per row of the 5x8 glyph.
func (d *Display) MakeChar(id uint8, bitmap [8]byte) {
	d.reg.Out(cmdSetCGRAM | (id&0x7)<<3)
	for _, row := range bitmap {
		d.reg.Out(row)
	}
}
