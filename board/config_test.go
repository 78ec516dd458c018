package board

import "testing"

func TestDefaultConfigFillsEveryPin(t *testing.T) {
	cfg := DefaultConfig()
	pins := map[string]string{
		"IRCarrierPin": cfg.IRCarrierPin,
		"IRReceivePin": cfg.IRReceivePin,
		"TriggerPin":   cfg.TriggerPin,
		"ReloadPin":    cfg.ReloadPin,
		"ModePin":      cfg.ModePin,
		"MuzzlePin":    cfg.MuzzlePin,
		"LEDDataPin":   cfg.LEDDataPin,
		"LEDClockPin":  cfg.LEDClockPin,
		"LEDLatchPin":  cfg.LEDLatchPin,
		"LCDDataPin":   cfg.LCDDataPin,
		"LCDClockPin":  cfg.LCDClockPin,
		"LCDLatchPin":  cfg.LCDLatchPin,
		"SpeakerPin":   cfg.SpeakerPin,
	}
	for name, v := range pins {
		if v == "" {
			t.Errorf("DefaultConfig().%s is empty", name)
		}
	}
	if cfg.TickPeriod <= 0 {
		t.Error("DefaultConfig().TickPeriod must be positive")
	}
	if cfg.CPUHz == 0 {
		t.Error("DefaultConfig().CPUHz must be nonzero")
	}
}
