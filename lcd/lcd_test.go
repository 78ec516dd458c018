package lcd

import (
	"testing"

	"github.com/handheld/lasertag/shift"
)

type recordingPin struct{ history []bool }

func (p *recordingPin) Set(high bool) { p.history = append(p.history, high) }

func newTestDisplay() (*Display, *shift.Register) {
	reg := &shift.Register{Data: &recordingPin{}, Clock: &recordingPin{}, Latch: &recordingPin{}}
	return New(reg), reg
}

func TestClearEmitsClearCommand(t *testing.T) {
	d, reg := newTestDisplay()
	clockPin := reg.Clock.(*recordingPin)
	before := len(clockPin.history)
	d.Clear()
	// Out() shifts 8 bits regardless of command; verify the clock pulsed
	// exactly 8 times for the one command byte.
	if got := len(clockPin.history) - before; got != 16 {
		t.Fatalf("clock pulses for one Out() = %d, want 16 (8 bits x high+low)", got)
	}
}

func TestDisplayControlReflectsCursorState(t *testing.T) {
	d, _ := newTestDisplay()
	if got := d.displayControl(); got != cmdDisplayBase|displayOn {
		t.Fatalf("initial displayControl = %#x, want %#x", got, cmdDisplayBase|displayOn)
	}
	d.ShowCursor(true)
	want := uint8(cmdDisplayBase | displayOn | cursorOn | blinkOn)
	if got := d.displayControl(); got != want {
		t.Fatalf("displayControl after ShowCursor(true) = %#x, want %#x", got, want)
	}
	d.HideCursor()
	want = cmdDisplayBase | displayOn
	if got := d.displayControl(); got != want {
		t.Fatalf("displayControl after HideCursor = %#x, want %#x", got, want)
	}
}

// sentBytes decodes the bytes shifted out on the data pin: each Out writes
// 8 data bits MSB-first followed by one trailing low write.
func sentBytes(reg *shift.Register) []byte {
	h := reg.Data.(*recordingPin).history
	var out []byte
	for i := 0; i+9 <= len(h); i += 9 {
		var b byte
		for _, bit := range h[i : i+8] {
			b <<= 1
			if bit {
				b |= 1
			}
		}
		out = append(out, b)
	}
	return out
}

func TestMoveCursorSelectsRowOffset(t *testing.T) {
	d, reg := newTestDisplay()
	// The DDRAM address is observable through the data pin: row 0 starts at
	// 0x00 and row 1 at 0x40, each OR'd into the set-DDRAM command.
	d.MoveCursor(5, 0)
	d.MoveCursor(5, 1)
	got := sentBytes(reg)
	want := []byte{cmdSetDDRAM | 0x05, cmdSetDDRAM | 0x45}
	if string(got) != string(want) {
		t.Fatalf("MoveCursor bytes = %#v, want %#v", got, want)
	}
}

func TestPutsWritesEveryByte(t *testing.T) {
	d, reg := newTestDisplay()
	d.Puts("HI")
	if got := string(sentBytes(reg)); got != "HI" {
		t.Fatalf("Puts wrote %q, want %q", got, "HI")
	}
}
