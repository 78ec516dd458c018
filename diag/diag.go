// Package diag provides optional testability instrumentation not present
// in the original firmware: packet/edge tracing and drop counters. None of
// it is consulted by the core state machines; it exists purely to make
// their behavior observable from outside.
package diag

import (
	"io"
	"sync/atomic"

	"github.com/fxamacker/cbor/v2"
)

// Counters tracks events the core state machines don't otherwise surface:
// dropped packets (ring buffer full), receiver timeouts, and tolerance
// misses (an edge duration matched no known symbol).
type Counters struct {
	txDropped       atomic.Uint64
	rxDropped       atomic.Uint64
	rxTimeouts      atomic.Uint64
	toleranceMisses atomic.Uint64
}

func (c *Counters) IncTxDropped()     { c.txDropped.Add(1) }
func (c *Counters) IncRxDropped()     { c.rxDropped.Add(1) }
func (c *Counters) IncRxTimeout()     { c.rxTimeouts.Add(1) }
func (c *Counters) IncToleranceMiss() { c.toleranceMisses.Add(1) }

// Snapshot is a point-in-time copy of Counters, safe to log or encode.
type Snapshot struct {
	TxDropped       uint64
	RxDropped       uint64
	RxTimeouts      uint64
	ToleranceMisses uint64
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		TxDropped:       c.txDropped.Load(),
		RxDropped:       c.rxDropped.Load(),
		RxTimeouts:      c.rxTimeouts.Load(),
		ToleranceMisses: c.toleranceMisses.Load(),
	}
}

// Event is one entry in a packet trace: a classified IR edge or a decoded
// packet, timestamped against the device's microsecond clock.
type Event struct {
	At     uint32 `cbor:"at"`
	Kind   string `cbor:"kind"`
	Packet uint16 `cbor:"packet,omitempty"`
}

// Tracer encodes a stream of Events as CBOR, one per call to Record, for
// later offline inspection. It is meant to be wired to an optional file a
// developer passes via a CLI flag, never required for normal operation.
type Tracer struct {
	enc *cbor.Encoder
}

// NewTracer returns a Tracer writing to w. A nil *Tracer is valid and a
// no-op: Record handles it, so callers can leave a Board's tracer unset
// when tracing is disabled instead of constructing a stub.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{enc: cbor.NewEncoder(w)}
}

// Record appends ev to the trace. Encode errors are swallowed, since a
// broken trace file must never take down the device.
func (t *Tracer) Record(ev Event) {
	if t == nil {
		return
	}
	_ = t.enc.Encode(ev)
}
