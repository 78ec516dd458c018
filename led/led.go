// Package led drives the muzzle-flash LED, on its own GPIO output, and the
// alternating team-color LEDs, wired through a shift register (original
// led.c).
package led

import (
	"github.com/handheld/lasertag/clock"
	"github.com/handheld/lasertag/shift"
)

// Color is one of the four team-indicator LED colors, matching the
// original led_color_t bit flags.
type Color uint8

const (
	Red    Color = 0x1
	Green  Color = 0x2
	Yellow Color = 0x4
	Blue   Color = 0x8
)

// muzUsecs is how long the muzzle flash stays lit (original LED_MUZ_USECS).
const muzUsecs = 100000

// teamUsecs is the period between alternating team-color flashes (original
// LED_TEAM_USECS).
const teamUsecs = 500000

// MuzzlePin is the single GPIO output driving the muzzle-flash LED
// directly (it is not behind the shift register in the original design).
type MuzzlePin interface {
	Set(high bool)
}

// Controller owns the muzzle LED and the team-color shift register.
type Controller struct {
	muzzle MuzzlePin
	shift  *shift.Register

	muzStart   uint32
	muzLit     bool
	teamStart  uint32
	teamColor  Color
	teamAlt    Color
	teamIsAlt  bool
	teamActive bool
}

// NewController returns a Controller with all outputs off.
func NewController(muzzle MuzzlePin, reg *shift.Register) *Controller {
	reg.Out(0)
	return &Controller{muzzle: muzzle, shift: reg}
}

// Cycle is called from the foreground loop to turn off an expired muzzle
// flash and to alternate the team-color LEDs.
func (c *Controller) Cycle(now uint32) {
	if c.muzLit && clock.Delta(now, c.muzStart) >= muzUsecs {
		c.muzLit = false
		c.muzzle.Set(false)
	}

	if !c.teamActive {
		return
	}
	if clock.Delta(now, c.teamStart) >= teamUsecs {
		c.teamStart = now
		c.teamIsAlt = !c.teamIsAlt
		if c.teamIsAlt {
			c.shift.Out(uint8(c.teamColor)<<4 | uint8(c.teamAlt))
		} else {
			c.shift.Out(uint8(c.teamAlt)<<4 | uint8(c.teamColor))
		}
	}
}

// MuzzleFlash raises the muzzle-flash pin and records the time it was
// raised so Cycle can turn it off after muzUsecs.
func (c *Controller) MuzzleFlash(now uint32) {
	c.muzStart = now
	c.muzLit = true
	c.muzzle.Set(true)
}

// TeamOn starts the alternating team-color display.
func (c *Controller) TeamOn(now uint32, color, alt Color) {
	c.teamColor = color
	c.teamAlt = alt
	c.teamStart = now
	c.teamIsAlt = false
	c.teamActive = true
}

// TeamOff stops and blanks the team-color display.
func (c *Controller) TeamOff() {
	c.teamActive = false
	c.teamColor = 0
	c.teamAlt = 0
	c.shift.Out(0)
}
