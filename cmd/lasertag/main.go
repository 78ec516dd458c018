// Command lasertag runs the laser-tag handheld firmware on a Linux
// single-board computer wired to the device's peripherals. It is the Go
// analogue of the original firmware's main.c: parse configuration, wire
// the board, then wait for SIGINT or SIGTERM, logging counters
// periodically, while the board's own goroutines drive the device.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/handheld/lasertag/board"
	"github.com/handheld/lasertag/diag"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var (
	configPath = pflag.StringP("config", "c", "", "Path to a YAML pin-assignment config file; uses board defaults if unset")
	tracePath  = pflag.String("trace", "", "Path to write a CBOR IR packet trace; disabled if unset")
	debug      = pflag.Bool("debug", false, "Emit debug-level logging")
)

func main() {
	pflag.Parse()

	logger := log.New(os.Stderr)
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(logger); err != nil {
		logger.Fatal("lasertag exited", "err", err)
	}
}

func run(logger *log.Logger) error {
	cfg := board.DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath, cfg)
		if err != nil {
			return fmt.Errorf("load config %q: %w", *configPath, err)
		}
		cfg = loaded
	}

	logger.Info("wiring board", "config", *configPath)
	b, err := board.New(cfg)
	if err != nil {
		return fmt.Errorf("wire board: %w", err)
	}
	defer b.Close()
	logger.Info("board ready")

	if *tracePath != "" {
		f, err := os.Create(*tracePath)
		if err != nil {
			return fmt.Errorf("open trace file %q: %w", *tracePath, err)
		}
		defer f.Close()
		b.SetTracer(diag.NewTracer(f))
		logger.Info("packet tracing enabled", "path", *tracePath)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	reportTicker := time.NewTicker(30 * time.Second)
	defer reportTicker.Stop()
	for {
		select {
		case s := <-sig:
			logger.Info("shutting down", "signal", s.String())
			return nil
		case <-reportTicker.C:
			snap := b.Counters.Snapshot()
			logger.Debug("counters", "txDropped", snap.TxDropped, "rxDropped", snap.RxDropped,
				"rxTimeouts", snap.RxTimeouts, "toleranceMisses", snap.ToleranceMisses)
		}
	}
}

// yamlConfig mirrors board.Config for YAML decoding; a handful of the
// original's raw numeric fields (TickPeriod, CPUHz) are expanded here to
// the string/int forms a config file author would actually write.
type yamlConfig struct {
	IRCarrierPin string `yaml:"ir_carrier_pin"`
	IRReceivePin string `yaml:"ir_receive_pin"`
	TriggerPin   string `yaml:"trigger_pin"`
	ReloadPin    string `yaml:"reload_pin"`
	ModePin      string `yaml:"mode_pin"`
	MuzzlePin    string `yaml:"muzzle_pin"`
	LEDDataPin   string `yaml:"led_data_pin"`
	LEDClockPin  string `yaml:"led_clock_pin"`
	LEDLatchPin  string `yaml:"led_latch_pin"`
	LCDDataPin   string `yaml:"lcd_data_pin"`
	LCDClockPin  string `yaml:"lcd_clock_pin"`
	LCDLatchPin  string `yaml:"lcd_latch_pin"`
	SpeakerPin   string `yaml:"speaker_pin"`
	SerialDevice string `yaml:"serial_device"`
	SPIPort      string `yaml:"spi_port"`
	TickPeriodUs int64  `yaml:"tick_period_us"`
	CPUHz        uint32 `yaml:"cpu_hz"`
}

func loadConfig(path string, base board.Config) (board.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return base, fmt.Errorf("parse yaml: %w", err)
	}

	cfg := base
	overrideString(&cfg.IRCarrierPin, y.IRCarrierPin)
	overrideString(&cfg.IRReceivePin, y.IRReceivePin)
	overrideString(&cfg.TriggerPin, y.TriggerPin)
	overrideString(&cfg.ReloadPin, y.ReloadPin)
	overrideString(&cfg.ModePin, y.ModePin)
	overrideString(&cfg.MuzzlePin, y.MuzzlePin)
	overrideString(&cfg.LEDDataPin, y.LEDDataPin)
	overrideString(&cfg.LEDClockPin, y.LEDClockPin)
	overrideString(&cfg.LEDLatchPin, y.LEDLatchPin)
	overrideString(&cfg.LCDDataPin, y.LCDDataPin)
	overrideString(&cfg.LCDClockPin, y.LCDClockPin)
	overrideString(&cfg.LCDLatchPin, y.LCDLatchPin)
	overrideString(&cfg.SpeakerPin, y.SpeakerPin)
	overrideString(&cfg.SerialDevice, y.SerialDevice)
	overrideString(&cfg.SPIPort, y.SPIPort)
	if y.TickPeriodUs != 0 {
		cfg.TickPeriod = time.Duration(y.TickPeriodUs) * time.Microsecond
	}
	if y.CPUHz != 0 {
		cfg.CPUHz = y.CPUHz
	}
	return cfg, nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
