package types

import "time"

// Drive configuration is compiled in per board; nothing here is read at
// runtime from storage or the bus.

// ScaleStyle selects how a strength factor maps to duty counts.
type ScaleStyle uint8

const (
	// ScaleExact: duty = full * factor / StrengthMax.
	ScaleExact ScaleStyle = iota
	// ScaleTrim: as ScaleExact minus one count (LEDC top), floored at zero.
	ScaleTrim
)

type ButtonConfig struct {
	Pin        int         `json:"pin"`
	Event      ButtonEvent `json:"event"`
	DebounceMs uint16      `json:"debounce_ms,omitempty"`
}

type OutputConfig struct {
	Pins      []int  `json:"pins"`
	FreqHz    uint64 `json:"freq_hz"`
	FullScale uint32 `json:"full_scale"` // duty counts at 100%
	// Expander is the I²C address of a PCA9685 carrying the outputs;
	// Pins are then expander channels. 0 uses on-chip PWM.
	Expander uint8 `json:"expander,omitempty"`
}

type DriveConfig struct {
	Board    string         `json:"board"`
	HasPower bool           `json:"has_power"`
	Scale    ScaleStyle     `json:"scale"`
	Tick     time.Duration  `json:"tick"`
	QueueLen int            `json:"queue_len"`
	Buttons  []ButtonConfig `json:"buttons"`
	Output   OutputConfig   `json:"output"`
	LogBaud  uint32         `json:"log_baud,omitempty"`
}

// Defaults matching the reference firmware timing.
const (
	DefaultTick      = 50 * time.Millisecond
	DefaultQueueLen  = 10
	DefaultChannels  = 4
	DefaultFreqHz    = 5000
	DefaultFullScale = 65536
	DefaultLogBaud   = 115200
)

// WithDefaults returns a copy with zero fields replaced by defaults.
func (c DriveConfig) WithDefaults() DriveConfig {
	if c.Tick <= 0 {
		c.Tick = DefaultTick
	}
	if c.QueueLen <= 0 {
		c.QueueLen = DefaultQueueLen
	}
	if c.Output.FreqHz == 0 {
		c.Output.FreqHz = DefaultFreqHz
	}
	if c.Output.FullScale == 0 {
		c.Output.FullScale = DefaultFullScale
	}
	if c.LogBaud == 0 {
		c.LogBaud = DefaultLogBaud
	}
	return c
}
