// Package ir implements the infrared transceiver: the carrier gate, the
// transmitter state machine and the receiver state machine described in
// spec.md §4.5-§4.7. It is the core of this firmware; everything else is
// peripheral glue.
package ir

// Timing constants, expressed in hardware clock ticks (T_tick ≈ 16µs at
// 16MHz/prescaler 256 on the original hardware, but these are tick counts,
// not microseconds, so they are valid at any T_tick the caller's clock.New
// was configured with).
const (
	Header   uint8 = 75 // ≈1200µs
	MarkOne  uint8 = 50 // ≈800µs
	MarkZero uint8 = 25 // ≈400µs
	Space    uint8 = 25 // ≈400µs
	// Tolerance is the ± window, in ticks, an observed interval must fall
	// within to be accepted (≈200µs, integer-divided the same way the
	// original firmware's preprocessor does: 200/16 = 12).
	Tolerance uint8 = 12
)

// Timeout is the RX idle timeout: slightly longer than the longest legal
// carrier burst, so a receiver waiting on the end of a header mark always
// times out before a new header could legitimately start.
const Timeout = Header + 2*Tolerance

// BufSize is the capacity of the TX and RX ring buffers (original
// IR_BUF_SIZE); the receiver can only manage a few hundred packets a
// second, so a small buffer is sufficient.
const BufSize = 4

// NumBits is the number of payload bits per packet.
const NumBits = 16

// within reports whether got lies within ±Tolerance of want.
func within(got, want uint8) bool {
	var diff uint8
	if got >= want {
		diff = got - want
	} else {
		diff = want - got
	}
	return diff <= Tolerance
}

// delta8 computes the elapsed hardware ticks between an earlier reading
// prev and a later reading now, using 8-bit wrap-safe unsigned subtraction.
// This is the ISR hot-path counterpart to clock.Delta's 32-bit version: the
// receiver only ever compares single-byte TCNT snapshots, so it uses 8-bit
// arithmetic directly rather than composing the full microsecond clock.
// Unlike clock.Delta it is exact modular subtraction, with no off-by-one at
// the wrap.
func delta8(now, prev uint8) uint8 {
	return now - prev
}
