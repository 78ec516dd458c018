package speaker

import "testing"

type fakePWM struct {
	count   uint8
	enabled bool
}

func (p *fakePWM) SetToggleCount(count uint8) { p.count = count }
func (p *fakePWM) Enable()                    { p.enabled = true }
func (p *fakePWM) Disable()                   { p.enabled = false }

func TestToneComputesToggleCount(t *testing.T) {
	pwm := &fakePWM{}
	s := New(pwm, 16000000)
	s.Tone(1000)
	toggleFreq := uint32(16000000) / togglePrescaler
	want := uint8(toggleFreq/(2*1000) - 1)
	if pwm.count != want {
		t.Errorf("toggle count = %d, want %d", pwm.count, want)
	}
	if !pwm.enabled || !s.Active() {
		t.Error("speaker should be active after Tone")
	}
}

func TestOffDisables(t *testing.T) {
	pwm := &fakePWM{}
	s := New(pwm, 16000000)
	s.Tone(440)
	s.Off()
	if pwm.enabled || s.Active() {
		t.Error("speaker should be inactive after Off")
	}
}
