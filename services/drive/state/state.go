// Package state holds the drive's mode/strength/power state machine.
//
// Transitions are pure functions over State. The live value is kept in a
// Cell: the event consumer is its only writer and the control loop its only
// reader, and both go through one atomic word so a tick never observes a
// half-applied transition.
package state

import (
	"sync/atomic"

	"drivecode-go/types"
)

type State struct {
	Mode     types.Mode
	Strength types.Strength
	Power    types.Power
}

// Initial is the power-up state. Boards without a power button are
// permanently on; boards with one start off.
func Initial(hasPower bool) State {
	p := types.PowerOn
	if hasPower {
		p = types.PowerOff
	}
	return State{Mode: types.ModeNormal, Strength: types.StrengthDefault, Power: p}
}

// AdvanceMode cycles Normal -> Pulsed -> Waveform -> Normal.
func AdvanceMode(s State) State {
	s.Mode = (s.Mode + 1) % types.ModeCount
	return s
}

// AdvanceStrength steps up by one and wraps past max to min, never to off.
func AdvanceStrength(s State) State {
	if s.Strength >= types.StrengthMin && s.Strength < types.StrengthMax {
		s.Strength += types.StrengthStep
	} else {
		s.Strength = types.StrengthMin
	}
	return s
}

func TogglePower(s State) State {
	if s.Power == types.PowerOn {
		s.Power = types.PowerOff
	} else {
		s.Power = types.PowerOn
	}
	return s
}

// Apply runs the transition bound to ev. It reports false, and returns s
// unchanged, for tags that have no transition on this board.
func Apply(s State, ev types.ButtonEvent, hasPower bool) (State, bool) {
	switch ev {
	case types.EventMode:
		return AdvanceMode(s), true
	case types.EventStrength:
		return AdvanceStrength(s), true
	case types.EventPower:
		if !hasPower {
			return s, false
		}
		return TogglePower(s), true
	default:
		return s, false
	}
}

// ---- Cell ----

// Cell is the shared, single-word home of the live State.
type Cell struct {
	w uint32
}

func NewCell(initial State) *Cell {
	c := &Cell{}
	c.Store(initial)
	return c
}

func (c *Cell) Load() State { return unpack(atomic.LoadUint32(&c.w)) }

func (c *Cell) Store(s State) { atomic.StoreUint32(&c.w, pack(s)) }

// Layout: [7:0] mode, [15:8] strength, [23:16] power.
func pack(s State) uint32 {
	return uint32(s.Mode) | uint32(s.Strength)<<8 | uint32(s.Power)<<16
}

func unpack(w uint32) State {
	return State{
		Mode:     types.Mode(w),
		Strength: types.Strength(w >> 8),
		Power:    types.Power(w >> 16),
	}
}
