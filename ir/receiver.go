package ir

import (
	"github.com/handheld/lasertag/ringbuf"
	"github.com/handheld/lasertag/sched"
	"github.com/handheld/lasertag/xsection"
)

type rxState int

const (
	rxIdle rxState = iota
	rxMark
	rxSpace
)

// Receiver is the IR receive state machine of spec.md §4.7. It assembles a
// packet MSB-first from a sequence of classified photo-receiver edges and
// enforces an idle timeout so a malformed or truncated packet never wedges
// the receiver.
type Receiver struct {
	guard   xsection.Guard
	timeout sched.Scheduler
	ring    *ringbuf.Ring[uint16]

	state     rxState
	packet    uint16
	bit       uint8
	clockLast uint8

	// onReject, if set, is invoked whenever the receiver resets to idle
	// because an edge fell outside every known symbol's tolerance window
	// or arrived in a state it cannot follow (a spurious edge). package
	// board wires this to a diag counter.
	onReject func()
	// onTimeout, if set, is invoked whenever the idle timeout fires.
	onTimeout func()
	// onDrop, if set, is invoked whenever a fully decoded packet is
	// dropped because the ring is full.
	onDrop func()
}

// NewReceiver returns an idle Receiver whose idle timeout is scheduled on
// timeoutScheduler (the second logical timer channel, independent of the
// transmitter's).
func NewReceiver(timeoutScheduler sched.Scheduler) *Receiver {
	return &Receiver{
		timeout: timeoutScheduler,
		ring:    ringbuf.New[uint16](BufSize),
	}
}

// Edge is the receive-edge ISR. now is the low byte of the hardware tick
// counter at the moment of the edge; rising is true for a rising edge
// (the photo-receiver is active-low, so a rising edge on the pin is a
// falling edge of the demodulated carrier and vice versa — callers are
// responsible for that inversion, matching the original ISR's
// `rising = !(pin_level)`).
func (r *Receiver) Edge(now uint8, rising bool) {
	release := r.guard.Enter()
	defer release()

	switch {
	case r.state == rxIdle && rising:
		r.clockLast = now
		r.packet = 0
		r.bit = NumBits
		r.state = rxMark

	case r.state == rxSpace && rising:
		if within(delta8(now, r.clockLast), Space) {
			r.clockLast = now
			r.state = rxMark
		} else {
			r.resetIdle()
			return
		}

	case r.state == rxMark && !rising:
		d := delta8(now, r.clockLast)
		if r.bit == NumBits {
			if !within(d, Header) {
				r.resetIdle()
				return
			}
			r.clockLast = now
			r.state = rxSpace
			r.bit--
		} else {
			switch {
			case within(d, MarkZero):
				// packet buffer already zero at this bit; nothing to set.
			case within(d, MarkOne):
				r.packet |= 1 << r.bit
			default:
				r.resetIdle()
				return
			}
			if r.bit == 0 {
				if !r.ring.Push(r.packet) && r.onDrop != nil {
					r.onDrop()
				}
				r.state = rxIdle
				r.timeout.Disarm()
				return
			}
			r.clockLast = now
			r.state = rxSpace
			r.bit--
		}

	default:
		// Spurious: an edge arrived in a state/direction combination that
		// can't legally occur (a missed edge or processing too slowly to
		// keep up). Nothing to do but drop the in-progress packet.
		r.resetIdle()
		return
	}

	r.timeout.Arm(Timeout, r.TimeoutFired)
}

// resetIdle abandons any in-progress packet and disarms the timeout.
// Callers must hold r.guard.
func (r *Receiver) resetIdle() {
	r.state = rxIdle
	r.timeout.Disarm()
	if r.onReject != nil {
		r.onReject()
	}
}

// TimeoutFired is the RX timeout ISR: it unconditionally forces the
// receiver back to idle and disarms itself.
func (r *Receiver) TimeoutFired() {
	release := r.guard.Enter()
	defer release()
	r.state = rxIdle
	r.timeout.Disarm()
	if r.onTimeout != nil {
		r.onTimeout()
	}
}

// OnReject registers fn to be called whenever the receiver resets to idle
// for failing tolerance classification or on a spurious edge.
func (r *Receiver) OnReject(fn func()) {
	release := r.guard.Enter()
	defer release()
	r.onReject = fn
}

// OnTimeout registers fn to be called whenever the idle timeout fires.
func (r *Receiver) OnTimeout(fn func()) {
	release := r.guard.Enter()
	defer release()
	r.onTimeout = fn
}

// OnDrop registers fn to be called whenever a decoded packet is dropped
// for ring overflow.
func (r *Receiver) OnDrop(fn func()) {
	release := r.guard.Enter()
	defer release()
	r.onDrop = fn
}

// Rx pops the oldest received packet into out and reports true, or reports
// false if none is available.
func (r *Receiver) Rx(out *uint16) bool {
	release := r.guard.Enter()
	defer release()
	v, ok := r.ring.Pop()
	if ok {
		*out = v
	}
	return ok
}
