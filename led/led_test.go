package led

import (
	"testing"

	"github.com/handheld/lasertag/shift"
)

type recordingPin struct{ lit bool }

func (p *recordingPin) Set(high bool) { p.lit = high }

type recordingShiftPin struct{ history []bool }

func (p *recordingShiftPin) Set(high bool) { p.history = append(p.history, high) }

func newTestController() (*Controller, *recordingPin, *shift.Register) {
	muz := &recordingPin{}
	reg := &shift.Register{Data: &recordingShiftPin{}, Clock: &recordingShiftPin{}, Latch: &recordingShiftPin{}}
	return NewController(muz, reg), muz, reg
}

func TestMuzzleFlashTimesOut(t *testing.T) {
	c, muz, _ := newTestController()
	c.MuzzleFlash(1000)
	if !muz.lit {
		t.Fatal("muzzle pin should be lit immediately")
	}
	c.Cycle(1000 + muzUsecs - 1)
	if !muz.lit {
		t.Fatal("muzzle pin should still be lit just before the duration elapses")
	}
	c.Cycle(1000 + muzUsecs)
	if muz.lit {
		t.Fatal("muzzle pin should be off once the duration has elapsed")
	}
}

func TestTeamColorsAlternate(t *testing.T) {
	c, _, _ := newTestController()
	c.TeamOn(0, Red, Blue)
	c.Cycle(teamUsecs)
	if !c.teamIsAlt {
		t.Fatal("expected team display to flip to alt after one period")
	}
	c.Cycle(2 * teamUsecs)
	if c.teamIsAlt {
		t.Fatal("expected team display to flip back after a second period")
	}
}

func TestTeamOffBlanks(t *testing.T) {
	c, _, _ := newTestController()
	c.TeamOn(0, Green, Yellow)
	c.TeamOff()
	if c.teamActive {
		t.Fatal("team display should be inactive after TeamOff")
	}
	// Cycle should be a no-op once inactive, regardless of elapsed time.
	c.Cycle(10 * teamUsecs)
}
