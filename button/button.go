// Package button wires the debounce package to the three physical buttons
// this device exposes, matching the instances original game.c declared
// (trigger, reload, mode). No chording or edge-event logic is added here;
// game logic is out of scope.
package button

import "github.com/handheld/lasertag/debounce"

// Set holds the three buttons this device reads every foreground cycle.
type Set struct {
	Trigger debounce.Debouncer
	Reload  debounce.Debouncer
	Mode    debounce.Debouncer
}

// Pin is the minimal contract button needs from a GPIO input: the line's
// current logic level.
type Pin interface {
	Read() bool
}

// Pins groups the three GPIO inputs a Set samples from.
type Pins struct {
	Trigger Pin
	Reload  Pin
	Mode    Pin
}

// Cycle samples all three buttons at the given time, same as game_cycle
// calling button_cycle three times in sequence.
func (s *Set) Cycle(now uint32, pins Pins) {
	s.Trigger.Cycle(now, pins.Trigger.Read())
	s.Reload.Cycle(now, pins.Reload.Read())
	s.Mode.Cycle(now, pins.Mode.Read())
}
