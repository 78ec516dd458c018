package sched

import (
	"sync"
	"time"
)

// Hardware is a Scheduler backed by a real monotonic clock, standing in for
// a physical output-compare channel when this firmware drives real
// peripherals through package board. tickPeriod is the duration of one
// hardware tick (T_tick), matching the value given to clock.New.
type Hardware struct {
	tickPeriod time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewHardware returns a Hardware scheduler whose tick counts are interpreted
// using tickPeriod.
func NewHardware(tickPeriod time.Duration) *Hardware {
	return &Hardware{tickPeriod: tickPeriod}
}

// Arm schedules fn after ticks*tickPeriod, replacing any previously armed
// timer on this channel.
func (h *Hardware) Arm(ticks uint8, fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(time.Duration(ticks)*h.tickPeriod, fn)
}

// Disarm cancels the currently armed timer, if any.
func (h *Hardware) Disarm() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
