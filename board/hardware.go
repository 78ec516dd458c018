package board

import (
	"time"

	"github.com/handheld/lasertag/speaker"
	"periph.io/x/conn/v3/gpio"
)

// gpioOut adapts a periph.io output pin to the Set(bool) contract shared by
// led.MuzzlePin and shift.OutputPin.
type gpioOut struct{ pin gpio.PinOut }

func (g gpioOut) Set(high bool) {
	level := gpio.Low
	if high {
		level = gpio.High
	}
	g.pin.Out(level)
}

// gpioIn adapts a periph.io input pin to button.Pin.
type gpioIn struct{ pin gpio.PinIn }

func (g gpioIn) Read() bool { return g.pin.Read() == gpio.High }

// tickSource is the clock.Source backing a real clock.Clock: a free-running
// 8-bit tick counter derived from a monotonic time reference, standing in
// for the AVR's free-running Timer2 TCNT register. The truncating
// conversion to uint8 reproduces the hardware counter's wraparound exactly.
type tickSource struct {
	start      time.Time
	tickPeriod time.Duration
}

func newTickSource(tickPeriod time.Duration) *tickSource {
	return &tickSource{start: time.Now(), tickPeriod: tickPeriod}
}

func (s *tickSource) Ticks() uint8 {
	return uint8(time.Since(s.start) / s.tickPeriod)
}

// carrierGate implements ir.Gate by software-toggling a GPIO pin at the
// 38kHz carrier frequency with a 25% duty cycle while On. Real hardware
// drives this carrier from a dedicated fast-PWM timer channel instead;
// bit-banging it from a goroutine is an approximation this port makes
// because periph.io exposes no portable hardware-PWM contract narrow
// enough to wire here, and is precise enough for a handheld's few-meter IR
// link.
type carrierGate struct {
	pin    gpio.PinOut
	period time.Duration

	stop chan struct{}
}

func newCarrierGate(pin gpio.PinOut, carrierHz int) *carrierGate {
	return &carrierGate{pin: pin, period: time.Second / time.Duration(carrierHz)}
}

func (g *carrierGate) On() {
	if g.stop != nil {
		return
	}
	stop := make(chan struct{})
	g.stop = stop
	onTime := g.period / 4
	offTime := g.period - onTime
	go func() {
		for {
			g.pin.Out(gpio.High)
			select {
			case <-time.After(onTime):
			case <-stop:
				g.pin.Out(gpio.Low)
				return
			}
			g.pin.Out(gpio.Low)
			select {
			case <-time.After(offTime):
			case <-stop:
				return
			}
		}
	}()
}

func (g *carrierGate) Off() {
	if g.stop == nil {
		return
	}
	close(g.stop)
	g.stop = nil
	g.pin.Out(gpio.Low)
}

// speakerPWM implements speaker.PWM the same way: a software square wave at
// the frequency speaker.Speaker.Tone computed, since the piezo element
// tolerates far looser timing than the IR carrier does.
type speakerPWM struct {
	pin   gpio.PinOut
	cpuHz uint32

	count uint8
	stop  chan struct{}
}

func newSpeakerPWM(pin gpio.PinOut, cpuHz uint32) *speakerPWM {
	return &speakerPWM{pin: pin, cpuHz: cpuHz}
}

func (s *speakerPWM) SetToggleCount(count uint8) {
	s.count = count
}

func (s *speakerPWM) Enable() {
	if s.stop != nil {
		return
	}
	toggleFreq := float64(s.cpuHz) / float64(speaker.TogglePrescaler)
	halfPeriod := time.Duration(float64(time.Second) * float64(s.count+1) / toggleFreq)
	stop := make(chan struct{})
	s.stop = stop
	go func() {
		level := false
		for {
			level = !level
			s.pin.Out(gpio.Level(level))
			select {
			case <-time.After(halfPeriod):
			case <-stop:
				s.pin.Out(gpio.Low)
				return
			}
		}
	}()
}

func (s *speakerPWM) Disable() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
}
