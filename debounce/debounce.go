// Package debounce implements the rolling shift-register debouncer used
// for the trigger, reload and mode buttons. It is the same pattern the IR
// receiver mirrors at a larger timescale: sample, shift, compare against a
// fixed mask, apply hysteresis.
package debounce

import "github.com/handheld/lasertag/clock"

// sampleDelay is the microsecond period between samples (original
// BUTTON_SAMPLE_DELAY).
const sampleDelay = 10000

// sampleMask selects the 5 most recent samples of the 8-bit shift register
// (original BUTTON_SAMPLE_MASK 0x1F). 5 bits rather than 8 gives shorter
// debounce latency (~50ms) with stronger noise rejection than a plain
// majority vote.
const sampleMask = 0x1F

// Debouncer tracks one input's debounced pressed state.
type Debouncer struct {
	samples   uint8
	pressed   bool
	sampledAt uint32
	primed    bool
}

// Cycle is called from the foreground loop with the current time and raw
// pin level (true = electrical high). The very first call always samples,
// regardless of now; after that, if less than the sample period has
// elapsed since the last sample it returns immediately. Otherwise it shifts
// the sample register left, ORs in the new level, and applies hysteresis:
// pressed only transitions to true when the last 5 samples are all 1, and
// to false when the last 5 are all 0; any other pattern leaves it
// unchanged.
func (d *Debouncer) Cycle(now uint32, level bool) {
	if d.primed && clock.Delta(now, d.sampledAt) < sampleDelay {
		return
	}
	d.primed = true
	d.sampledAt = now
	d.samples <<= 1
	if level {
		d.samples |= 1
	}
	switch d.samples & sampleMask {
	case sampleMask:
		d.pressed = true
	case 0:
		d.pressed = false
	}
}

// Pressed reports the current debounced state.
func (d *Debouncer) Pressed() bool {
	return d.pressed
}
