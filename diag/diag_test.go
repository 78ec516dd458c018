package diag

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestCountersSnapshotIndependent(t *testing.T) {
	var c Counters
	c.IncTxDropped()
	c.IncTxDropped()
	c.IncRxTimeout()

	snap := c.Snapshot()
	if snap.TxDropped != 2 || snap.RxTimeouts != 1 || snap.RxDropped != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	c.IncRxDropped()
	if c.Snapshot().RxDropped == snap.RxDropped {
		t.Fatal("earlier snapshot should not observe later increments")
	}
}

func TestTracerRecordsDecodablePackets(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)
	tr.Record(Event{At: 100, Kind: "rx", Packet: 0xBEEF})
	tr.Record(Event{At: 200, Kind: "timeout"})

	dec := cbor.NewDecoder(&buf)
	var first, second Event
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode first event: %v", err)
	}
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("decode second event: %v", err)
	}
	if first.Packet != 0xBEEF || first.Kind != "rx" {
		t.Fatalf("first event = %+v", first)
	}
	if second.Kind != "timeout" || second.Packet != 0 {
		t.Fatalf("second event = %+v", second)
	}
}

func TestNilTracerRecordIsNoop(t *testing.T) {
	var tr *Tracer
	tr.Record(Event{At: 1, Kind: "rx"})
}
