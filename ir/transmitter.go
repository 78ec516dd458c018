package ir

import (
	"github.com/handheld/lasertag/ringbuf"
	"github.com/handheld/lasertag/sched"
	"github.com/handheld/lasertag/xsection"
)

type txState int

const (
	txIdle txState = iota
	txMark
	txSpace
)

// Transmitter is the IR transmit state machine of spec.md §4.6. It has no
// completion callback and no success return: Tx either starts transmitting
// immediately or enqueues, and on ring overflow the packet is silently
// dropped.
type Transmitter struct {
	guard xsection.Guard
	gate  Gate
	sched sched.Scheduler
	ring  *ringbuf.Ring[uint16]

	state  txState
	packet uint16
	bit    uint8 // bits remaining after the header; NumBits at header start

	// onStart, if set, is invoked with each packet as its transmission
	// begins. It exists purely as a testability hook (SPEC_FULL.md §7) so
	// tests can observe transmission order without decoding the carrier
	// schedule.
	onStart func(uint16)

	// onDrop, if set, is invoked whenever a packet is silently dropped
	// because the ring is full. package diag wires this to a counter.
	onDrop func(uint16)
}

// NewTransmitter returns an idle Transmitter driving gate and scheduling
// its bit timing on scheduler.
func NewTransmitter(gate Gate, scheduler sched.Scheduler) *Transmitter {
	return &Transmitter{
		gate:  gate,
		sched: scheduler,
		ring:  ringbuf.New[uint16](BufSize),
	}
}

// Tx enqueues packet for transmission, or begins transmitting it
// immediately if the transmitter is idle. If a transmission is already in
// progress and the ring is full, packet is dropped silently.
func (t *Transmitter) Tx(packet uint16) {
	release := t.guard.Enter()
	defer release()
	if t.state == txIdle {
		t.startTx(packet)
		return
	}
	if !t.ring.Push(packet) && t.onDrop != nil {
		t.onDrop(packet)
	}
}

// startTx begins transmitting packet from the header. Callers must hold
// t.guard.
func (t *Transmitter) startTx(packet uint16) {
	t.state = txMark
	t.packet = packet
	t.bit = NumBits
	t.gate.On()
	t.sched.Arm(Header, t.compareFired)
	if t.onStart != nil {
		t.onStart(packet)
	}
}

// OnStart registers fn to be called with each packet as its transmission
// begins; it is a testability hook, not part of the device contract.
func (t *Transmitter) OnStart(fn func(uint16)) {
	release := t.guard.Enter()
	defer release()
	t.onStart = fn
}

// OnDrop registers fn to be called with each packet dropped for ring
// overflow.
func (t *Transmitter) OnDrop(fn func(uint16)) {
	release := t.guard.Enter()
	defer release()
	t.onDrop = fn
}

// compareFired is the output-compare ISR: it runs when the previously
// scheduled mark or space duration elapses.
func (t *Transmitter) compareFired() {
	release := t.guard.Enter()
	defer release()

	if t.state == txMark {
		// End of a mark (header or bit). Switch the carrier off and
		// schedule the space that follows it.
		t.state = txSpace
		t.gate.Off()
		t.sched.Arm(Space, t.compareFired)
		return
	}

	// End of a space. If every bit has been sent, either idle or start the
	// next queued packet; otherwise emit the next mark.
	if t.bit == 0 {
		if packet, ok := t.ring.Pop(); ok {
			t.startTx(packet)
		} else {
			t.state = txIdle
			t.sched.Disarm()
		}
		return
	}

	t.bit--
	bitSet := t.packet&(1<<t.bit) != 0
	t.state = txMark
	t.gate.On()
	if bitSet {
		t.sched.Arm(MarkOne, t.compareFired)
	} else {
		t.sched.Arm(MarkZero, t.compareFired)
	}
}

// Idle reports whether the transmitter is currently idle (test helper).
func (t *Transmitter) Idle() bool {
	release := t.guard.Enter()
	defer release()
	return t.state == txIdle
}
