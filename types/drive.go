package types

// ------------------------
// Operating mode
// ------------------------

// Mode selects the output-generation algorithm.
type Mode uint8

const (
	ModeNormal   Mode = iota // constant drive scaled by strength
	ModePulsed               // coarse on/off pattern
	ModeWaveform             // sine table, unscaled
	ModeCount
)

func (m Mode) Valid() bool { return m < ModeCount }

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePulsed:
		return "pulsed"
	case ModeWaveform:
		return "waveform"
	default:
		return "undefined"
	}
}

// ParseMode is the inverse of Mode.String for defined modes.
func ParseMode(s string) (Mode, bool) {
	for m := ModeNormal; m < ModeCount; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// ------------------------
// Strength
// ------------------------

// Strength is the discrete drive intensity.
type Strength uint8

const (
	StrengthOff     Strength = 0 // only reachable through power off
	StrengthStep    Strength = 1
	StrengthMin     Strength = 1
	StrengthDefault Strength = 2
	StrengthMax     Strength = 4
)

func (s Strength) Valid() bool { return s >= StrengthMin && s <= StrengthMax }

// ------------------------
// Power
// ------------------------

type Power uint8

const (
	PowerOff Power = iota
	PowerOn
)

func (p Power) String() string {
	if p == PowerOn {
		return "on"
	}
	return "off"
}

// ------------------------
// Button events
// ------------------------

// ButtonEvent is the tag a button interrupt places on the event queue.
type ButtonEvent uint8

const (
	EventNone ButtonEvent = iota
	EventMode
	EventStrength
	EventPower
)

func (e ButtonEvent) String() string {
	switch e {
	case EventMode:
		return "mode"
	case EventStrength:
		return "strength"
	case EventPower:
		return "power"
	default:
		return "none"
	}
}

// ------------------------
// Drive state (retained on drive/state)
// ------------------------

type DriveState struct {
	Mode     Mode     `json:"mode"`
	Strength Strength `json:"strength"`
	Power    Power    `json:"power"`
	HasPower bool     `json:"has_power"`
	Drops    uint32   `json:"drops"` // events lost to a full queue
	TS       int64    `json:"ts_ms"`
}
