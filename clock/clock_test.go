package clock

import "testing"

// fakeSource is a manually-advanced 8-bit tick counter for deterministic
// tests. It wraps at 256 like the real hardware counter, and does not
// itself call Overflow — tests that care about overflow composition call
// Clock.Overflow explicitly, mirroring the real firmware where the overflow
// ISR is a separate interrupt from the tick counter's natural wrap.
type fakeSource struct {
	ticks uint8
}

func (f *fakeSource) Ticks() uint8 { return f.ticks }

func TestNowComposesTicksAndOverflows(t *testing.T) {
	src := &fakeSource{ticks: 10}
	c := New(src, 16)
	if got, want := c.Now(), uint32(160); got != want {
		t.Errorf("Now() = %d, want %d", got, want)
	}
	c.Overflow()
	src.ticks = 5
	if got, want := c.Now(), uint32(5*16+256*16); got != want {
		t.Errorf("Now() after overflow = %d, want %d", got, want)
	}
}

func TestDeltaNoWrap(t *testing.T) {
	if got, want := Delta(100, 40), uint32(60); got != want {
		t.Errorf("Delta(100,40) = %d, want %d", got, want)
	}
	if got, want := Delta(40, 40), uint32(0); got != want {
		t.Errorf("Delta(40,40) = %d, want %d", got, want)
	}
}

// TestDeltaWrapOffByOne pins down the documented off-by-one at the wrap
// boundary: the computed delta is exactly one less than the true elapsed
// time when now < prev.
func TestDeltaWrapOffByOne(t *testing.T) {
	prev := uint32(4000000000)
	now := uint32(100)
	trueElapsed := (uint64(^uint32(0)) + 1 - uint64(prev)) + uint64(now)
	got := Delta(now, prev)
	if uint64(got) != trueElapsed-1 {
		t.Errorf("Delta(%d,%d) = %d, want %d (trueElapsed-1)", now, prev, got, trueElapsed-1)
	}
}

// TestDeltaMonotonic exercises the property from SPEC_FULL.md §8: for any
// two reads separated by less than 2^32 microseconds, Delta yields the true
// elapsed time to within one tick (the documented wrap-boundary error).
func TestDeltaMonotonic(t *testing.T) {
	cases := []struct{ now, prev, want uint32 }{
		{10, 5, 5},
		{0, 0, 0},
		{5, 10, ^uint32(0) - 10 + 5},
		{1<<32 - 1, 0, 1<<32 - 1},
	}
	for _, c := range cases {
		if got := Delta(c.now, c.prev); got != c.want {
			t.Errorf("Delta(%d,%d) = %d, want %d", c.now, c.prev, got, c.want)
		}
	}
}
