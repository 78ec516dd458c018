// Package clock implements the process-wide monotonic microsecond clock
// shared by the debouncer, the LED/LCD glue and the IR subsystem. It is
// derived, as in the original AVR firmware, from an 8-bit hardware tick
// counter plus an interrupt-incremented 32-bit overflow counter:
//
//	now = ticksNow*tickPeriod + overflows*256*tickPeriod
//
// The overflow counter is only ever incremented by Overflow, which stands
// in for the timer's overflow ISR; readers compose ticks and overflows
// inside an xsection.Guard so a read never observes a tick value that
// precedes its paired overflow value.
package clock

import (
	"github.com/handheld/lasertag/xsection"
)

// Source supplies the free-running 8-bit hardware tick counter. On real
// hardware this reads a timer's TCNT register directly; in tests it is a
// manually-advanced counter.
type Source interface {
	Ticks() uint8
}

// Clock is the composed microsecond clock. The zero value is not usable;
// use New.
type Clock struct {
	source     Source
	tickPeriod uint32 // microseconds per hardware tick (T_tick)
	guard      xsection.Guard
	overflows  uint32
}

// New returns a Clock reading ticks from source, where tickPeriod is the
// number of microseconds a single hardware tick represents (T_tick =
// prescaler/F_CPU, ~16µs at 16MHz/prescaler 256 on the original hardware).
func New(source Source, tickPeriod uint32) *Clock {
	return &Clock{source: source, tickPeriod: tickPeriod}
}

// Overflow is the overflow-interrupt handler: it increments the overflow
// counter. It must be the only writer of that counter.
func (c *Clock) Overflow() {
	release := c.guard.Enter()
	defer release()
	c.overflows++
}

// Now returns the current time in microseconds.
func (c *Clock) Now() uint32 {
	release := c.guard.Enter()
	ticks, overflows := c.source.Ticks(), c.overflows
	release()
	return uint32(ticks)*c.tickPeriod + overflows*256*c.tickPeriod
}

// Now8 returns the raw 8-bit tick counter, bypassing the overflow
// composition Now does. This is what an edge ISR reads directly off the
// hardware timer's TCNT register; package ir's Receiver and Transmitter
// work in this tick-counter space rather than composed microseconds.
func (c *Clock) Now8() uint8 {
	release := c.guard.Enter()
	defer release()
	return c.source.Ticks()
}

// Delta computes the elapsed microseconds between an earlier reading prev
// and a later reading now, treating now < prev as a single 32-bit wrap.
//
// This is deliberately not modular subtraction: at the wrap boundary the
// computed delta is one less than the true elapsed time. Every caller in
// this firmware only uses the result for "has enough time passed"
// comparisons, where that error is irrelevant, so the behavior is
// reproduced rather than fixed.
func Delta(now, prev uint32) uint32 {
	if now >= prev {
		return now - prev
	}
	return ^uint32(0) - prev + now
}
