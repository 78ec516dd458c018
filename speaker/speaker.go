// Package speaker implements the piezo speaker tone generator. The tone
// generator algorithm (the frequency-to-toggle-count math) is in scope;
// the PWM hardware it drives is an external collaborator.
package speaker

// togglePrescaler mirrors the original Timer0 prescaler of 1024 against a
// 16MHz system clock (original SPEAKER_TOGGLE_FREQ = F_CPU/1024).
const togglePrescaler = 1024

// TogglePrescaler exports togglePrescaler for PWM backends (package board)
// that need to convert a toggle count back into a real wall-clock
// half-period.
const TogglePrescaler = togglePrescaler

// PWM is the minimal contract speaker needs from the hardware timer: set
// the toggle count that yields a given tone, and enable/disable the output.
type PWM interface {
	SetToggleCount(count uint8)
	Enable()
	Disable()
}

// Speaker drives PWM to produce tones audible on the piezo element.
type Speaker struct {
	pwm    PWM
	cpuHz  uint32
	active bool
	hz     int
}

// New returns a Speaker whose toggle counts are computed against cpuHz.
func New(pwm PWM, cpuHz uint32) *Speaker {
	return &Speaker{pwm: pwm, cpuHz: cpuHz}
}

// Tone turns on the speaker at the given frequency in Hz. The actual tone
// frequency is half the toggle frequency, since the generator toggles the
// pin once per half-cycle.
func (s *Speaker) Tone(hz int) {
	toggleFreq := s.cpuHz / togglePrescaler
	count := uint8(uint32(toggleFreq)/(2*uint32(hz)) - 1)
	s.pwm.SetToggleCount(count)
	s.pwm.Enable()
	s.active = true
	s.hz = hz
}

// Off silences the speaker.
func (s *Speaker) Off() {
	s.pwm.Disable()
	s.active = false
}

// Active reports whether a tone is currently sounding.
func (s *Speaker) Active() bool {
	return s.active
}
