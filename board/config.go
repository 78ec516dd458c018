package board

import "time"

// Config names every physical pin and peripheral this device's board
// wiring needs. Pin names are resolved through periph.io's gpioreg
// registry, so they are whatever names the host platform exposes (e.g.
// "GPIO17" on a Raspberry Pi under periph.io/x/host/v3/bcm283x), not
// hardcoded to one board.
type Config struct {
	// IRCarrierPin drives the 38kHz IR LED carrier gate.
	IRCarrierPin string
	// IRReceivePin is the TSOP photo-receiver's digital output, watched
	// for edges.
	IRReceivePin string

	TriggerPin string
	ReloadPin  string
	ModePin    string

	MuzzlePin string

	LEDDataPin  string
	LEDClockPin string
	LEDLatchPin string

	LCDDataPin  string
	LCDClockPin string
	LCDLatchPin string

	SpeakerPin string

	// SerialDevice is the path to the UART device node (e.g.
	// "/dev/serial0"); empty disables the UART link.
	SerialDevice string

	// SPIPort is the periph.io SPI port name passed to spireg.Open; empty
	// disables the radio link.
	SPIPort string

	// TickPeriod is the duration of one hardware clock tick (T_tick on the
	// original AVR, ~16µs). CPUHz is the nominal clock rate the speaker's
	// tone math is computed against.
	TickPeriod time.Duration
	CPUHz      uint32
}

// DefaultConfig returns the pin assignments matching the original
// firmware's AVR port bits, renamed to the periph.io pin names a Linux SBC
// exposes them under. Most deployments override this via a YAML config
// file; see cmd/lasertag.
func DefaultConfig() Config {
	return Config{
		IRCarrierPin: "GPIO12",
		IRReceivePin: "GPIO16",
		TriggerPin:   "GPIO5",
		ReloadPin:    "GPIO6",
		ModePin:      "GPIO13",
		MuzzlePin:    "GPIO19",
		LEDDataPin:   "GPIO20",
		LEDClockPin:  "GPIO21",
		LEDLatchPin:  "GPIO26",
		LCDDataPin:   "GPIO7",
		LCDClockPin:  "GPIO8",
		LCDLatchPin:  "GPIO25",
		SpeakerPin:   "GPIO18",
		SerialDevice: "/dev/serial0",
		TickPeriod:   16 * time.Microsecond,
		CPUHz:        16000000,
	}
}
