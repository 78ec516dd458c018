// Package board assembles every peripheral package into one running
// device, the Go analogue of the original firmware's main.c. It is the
// only package that imports periph.io, goserial or gpiocdev-adjacent
// hardware packages directly; every other package only knows small local
// interfaces so it can be driven by a test double instead.
package board

import (
	"fmt"
	"time"

	"github.com/daedaluz/goserial"
	"github.com/handheld/lasertag/button"
	"github.com/handheld/lasertag/clock"
	"github.com/handheld/lasertag/diag"
	"github.com/handheld/lasertag/ir"
	"github.com/handheld/lasertag/lcd"
	"github.com/handheld/lasertag/led"
	"github.com/handheld/lasertag/radio"
	"github.com/handheld/lasertag/sched"
	"github.com/handheld/lasertag/shift"
	"github.com/handheld/lasertag/speaker"
	"github.com/handheld/lasertag/uart"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// irCarrierHz is the fixed IR carrier frequency, original F_CARRIER.
const irCarrierHz = 38000

// buttonSampleInterval is how often the foreground loop samples buttons and
// runs the LED cycle. The debouncer and LED controller internally gate on
// their own longer intervals (10ms, 100ms/500ms), so this only needs to be
// fine enough not to miss those windows; matches the original's
// effectively-every-iteration main loop polling.
const buttonSampleInterval = time.Millisecond

// Board is the running device: every peripheral wired to real hardware and
// driven by its own goroutine. Board is
// meant to be constructed once and never torn down, matching the original
// firmware's "init then infinite loop" main().
type Board struct {
	Clock       *clock.Clock
	Buttons     button.Set
	buttonPins  button.Pins
	LEDs        *led.Controller
	LCD         *lcd.Display
	Speaker     *speaker.Speaker
	Transmitter *ir.Transmitter
	Receiver    *ir.Receiver
	UART        *uart.Port
	Radio       *radio.Radio
	Counters    diag.Counters

	clockNow func() uint32
	stop     chan struct{}
}

// SetTracer wires tr to record every transmitted packet. It replaces any
// tracer wired by a previous call.
func (b *Board) SetTracer(tr *diag.Tracer) {
	b.Transmitter.OnStart(func(packet uint16) {
		tr.Record(diag.Event{At: b.clockNow(), Kind: "tx", Packet: packet})
	})
}

// New wires a Board to real hardware described by cfg. It returns an error
// (never panics or retries) for any failed pin lookup or device open,
// matching the ambient error-handling convention of wrapping with context
// via fmt.Errorf.
func New(cfg Config) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("board: init host drivers: %w", err)
	}

	pin := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("board: no such gpio pin %q", name)
		}
		return p, nil
	}

	irCarrier, err := pin(cfg.IRCarrierPin)
	if err != nil {
		return nil, err
	}
	if err := irCarrier.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("board: configure IR carrier pin: %w", err)
	}

	irReceive, err := pin(cfg.IRReceivePin)
	if err != nil {
		return nil, err
	}
	if err := irReceive.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("board: configure IR receive pin: %w", err)
	}

	triggerPin, err := pin(cfg.TriggerPin)
	if err != nil {
		return nil, err
	}
	reloadPin, err := pin(cfg.ReloadPin)
	if err != nil {
		return nil, err
	}
	modePin, err := pin(cfg.ModePin)
	if err != nil {
		return nil, err
	}
	for _, p := range []gpio.PinIO{triggerPin, reloadPin, modePin} {
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("board: configure button pin: %w", err)
		}
	}

	muzzlePin, err := pin(cfg.MuzzlePin)
	if err != nil {
		return nil, err
	}
	if err := muzzlePin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("board: configure muzzle pin: %w", err)
	}

	ledReg, err := newShiftRegister(pin, cfg.LEDDataPin, cfg.LEDClockPin, cfg.LEDLatchPin)
	if err != nil {
		return nil, fmt.Errorf("board: led shift register: %w", err)
	}
	lcdReg, err := newShiftRegister(pin, cfg.LCDDataPin, cfg.LCDClockPin, cfg.LCDLatchPin)
	if err != nil {
		return nil, fmt.Errorf("board: lcd shift register: %w", err)
	}

	speakerPin, err := pin(cfg.SpeakerPin)
	if err != nil {
		return nil, err
	}
	if err := speakerPin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("board: configure speaker pin: %w", err)
	}

	b := &Board{
		Clock:   clock.New(newTickSource(cfg.TickPeriod), uint32(cfg.TickPeriod.Microseconds())),
		LEDs:    led.NewController(gpioOut{muzzlePin}, ledReg),
		LCD:     lcd.New(lcdReg),
		Speaker: speaker.New(newSpeakerPWM(speakerPin, cfg.CPUHz), cfg.CPUHz),
		buttonPins: button.Pins{
			Trigger: gpioIn{triggerPin},
			Reload:  gpioIn{reloadPin},
			Mode:    gpioIn{modePin},
		},
		stop: make(chan struct{}),
	}
	b.clockNow = b.Clock.Now

	gate := newCarrierGate(irCarrier, irCarrierHz)
	b.Transmitter = ir.NewTransmitter(gate, sched.NewHardware(cfg.TickPeriod))
	b.Receiver = ir.NewReceiver(sched.NewHardware(cfg.TickPeriod))
	b.Transmitter.OnDrop(func(uint16) { b.Counters.IncTxDropped() })
	b.Receiver.OnDrop(func() { b.Counters.IncRxDropped() })
	b.Receiver.OnTimeout(func() { b.Counters.IncRxTimeout() })
	b.Receiver.OnReject(func() { b.Counters.IncToleranceMiss() })

	if cfg.SerialDevice != "" {
		port, err := serial.Open(cfg.SerialDevice, nil)
		if err != nil {
			return nil, fmt.Errorf("board: open serial device %q: %w", cfg.SerialDevice, err)
		}
		b.UART = uart.New(port)
	}

	if cfg.SPIPort != "" {
		spiPort, err := spireg.Open(cfg.SPIPort)
		if err != nil {
			return nil, fmt.Errorf("board: open spi port %q: %w", cfg.SPIPort, err)
		}
		conn, err := spiPort.Connect(1*physic.MegaHertz, spi.Mode0, 8)
		if err != nil {
			return nil, fmt.Errorf("board: connect spi: %w", err)
		}
		b.Radio = radio.New(conn)
	}

	b.watchIREdges(irReceive)
	go b.driveOverflow(cfg.TickPeriod)
	go b.foregroundLoop()

	return b, nil
}

// driveOverflow stands in for the hardware timer's overflow interrupt,
// which the original firmware's clock composition (clock.c's clock_micros)
// relies on to extend the 8-bit TCNT register into a full 32-bit time base.
// tickSource has no interrupt of its own to raise it, so this ticks once per
// 256 hardware ticks and calls Clock.Overflow directly.
func (b *Board) driveOverflow(tickPeriod time.Duration) {
	ticker := time.NewTicker(tickPeriod * 256)
	defer ticker.Stop()
	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.Clock.Overflow()
		}
	}
}

func newShiftRegister(pin func(string) (gpio.PinIO, error), data, clockPin, latch string) (*shift.Register, error) {
	d, err := pin(data)
	if err != nil {
		return nil, err
	}
	c, err := pin(clockPin)
	if err != nil {
		return nil, err
	}
	l, err := pin(latch)
	if err != nil {
		return nil, err
	}
	for _, p := range []gpio.PinIO{d, c, l} {
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("configure output: %w", err)
		}
	}
	return &shift.Register{Data: gpioOut{d}, Clock: gpioOut{c}, Latch: gpioOut{l}}, nil
}

// watchIREdges runs the IR receive edge handler in its own goroutine,
// standing in for the original firmware's edge-triggered INT0 ISR.
func (b *Board) watchIREdges(pin gpio.PinIn) {
	go func() {
		for {
			select {
			case <-b.stop:
				return
			default:
			}
			if !pin.WaitForEdge(100 * time.Millisecond) {
				continue
			}
			// The TSOP photo-receiver pulls its output low while the 38kHz
			// carrier is present, so a low level here is what the original
			// ISR's "rising = !(pin_level)" treats as a rising edge.
			rising := pin.Read() == gpio.Low
			b.Receiver.Edge(b.Clock.Now8(), rising)
		}
	}()
}

// foregroundLoop stands in for main()'s `for (;;) game_cycle();`: it
// samples buttons and advances the LED controller on a fixed interval.
func (b *Board) foregroundLoop() {
	ticker := time.NewTicker(buttonSampleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			now := b.Clock.Now()
			b.Buttons.Cycle(now, b.buttonPins)
			b.LEDs.Cycle(now)
		}
	}
}

// Close stops every background goroutine the Board started. It does not
// release GPIO lines, matching the original firmware's design of never
// tearing down hardware state once initialized.
func (b *Board) Close() {
	close(b.stop)
	if b.UART != nil {
		b.UART.Close()
	}
}
