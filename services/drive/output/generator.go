// Package output turns the current drive state into a duty value per tick.
package output

import (
	"drivecode-go/services/drive/state"
	"drivecode-go/services/drive/wave"
	"drivecode-go/types"
)

// OffDuty is emitted whenever power is off.
const OffDuty uint32 = 0

// Scale maps a strength factor in [0, StrengthMax] to duty counts.
type Scale struct {
	Full uint32 // counts at factor == StrengthMax
	Trim bool   // subtract one count after scaling, floored at zero
}

// NewScale builds a Scale for a configured style.
func NewScale(full uint32, style types.ScaleStyle) Scale {
	return Scale{Full: full, Trim: style == types.ScaleTrim}
}

func (sc Scale) Duty(factor uint32) uint32 {
	d := uint32(uint64(sc.Full) * uint64(factor) / uint64(types.StrengthMax))
	if sc.Trim && d > 0 {
		d--
	}
	return d
}

// Generator owns the free-running phase counters. It is not safe for
// concurrent use; only the control loop calls Next.
type Generator struct {
	scale Scale
	wave  uint16 // mod wave.SineLen
	pulse uint16 // mod wave.PulseLen
}

func NewGenerator(sc Scale) *Generator { return &Generator{scale: sc} }

// Next computes the duty for this tick and advances the phase counter of the
// active mode. ok is false for an undefined mode: outputs stay as they are.
func (g *Generator) Next(s state.State) (duty uint32, ok bool) {
	if s.Power != types.PowerOn {
		return OffDuty, true
	}
	switch s.Mode {
	case types.ModeNormal:
		return g.scale.Duty(uint32(s.Strength)), true
	case types.ModePulsed:
		g.pulse = (g.pulse + 1) % wave.PulseLen
		return g.scale.Duty(uint32(wave.Pulse(g.pulse))), true
	case types.ModeWaveform:
		g.wave = (g.wave + 1) % wave.SineLen
		return uint32(wave.Sine(g.wave)), true
	default:
		return 0, false
	}
}

func (g *Generator) WavePhase() uint16  { return g.wave }
func (g *Generator) PulsePhase() uint16 { return g.pulse }
