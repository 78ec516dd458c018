package sched

// Arm records the callback and the tick count it was scheduled for.
func (m *Manual) Arm(ticks uint8, fn func()) {
	m.armed = true
	m.ticks = ticks
	m.fn = fn
}

// Disarm cancels whatever is currently armed.
func (m *Manual) Disarm() {
	m.armed = false
	m.fn = nil
}

// Armed reports whether a callback is currently scheduled, and for how
// many ticks it was armed.
func (m *Manual) Armed() (ticks uint8, armed bool) {
	return m.ticks, m.armed
}

// Fire invokes the armed callback as if its scheduled duration had elapsed.
// It is a no-op if nothing is armed. The callback itself is responsible for
// rearming via Arm if the state machine needs another interval.
func (m *Manual) Fire() {
	if !m.armed {
		return
	}
	fn := m.fn
	m.armed = false
	m.fn = nil
	fn()
}
