// Package shift implements the bit-bang driver for a 74HC595 serial-in
// parallel-out shift register, used to drive both the team/muzzle LEDs and
// the character LCD over three wires (data, clock, latch) instead of one
// GPIO pin per output bit.
package shift

// OutputPin is the minimal contract shift needs from a single GPIO output:
// set it high or low. It is satisfied by package board's adapter over a
// periph.io gpio.PinOut, or by a recording fake in tests.
type OutputPin interface {
	Set(high bool)
}

// Register drives one 74HC595 over its data, clock and latch pins.
type Register struct {
	Data  OutputPin
	Clock OutputPin
	Latch OutputPin
}

// Out shifts all 8 bits of data out MSB-first and pulses latch, making them
// appear on the register's parallel outputs. No settle delays are needed:
// even a slow GPIO write is far longer than the 74HC595's minimum clock
// pulse width.
func (r *Register) Out(data uint8) {
	for mask := uint8(0x80); mask != 0; mask >>= 1 {
		r.Data.Set(data&mask != 0)
		r.Clock.Set(true)
		r.Clock.Set(false)
	}
	r.Data.Set(false)
	r.Latch.Set(true)
	r.Latch.Set(false)
}
