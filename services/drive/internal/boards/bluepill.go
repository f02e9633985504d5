//go:build stm32f103

package boards

import (
	"machine"

	"drivecode-go/types"
)

// Selected: blue pill with power on PB12, mode PB13, strength PB14 and
// outputs on TIM2 CH1..CH4 (PA0..PA3). Starts powered off.
func Selected() types.DriveConfig {
	return types.DriveConfig{
		Board:    "bluepill",
		HasPower: true,
		Scale:    types.ScaleExact,
		Buttons: append(buttons(int(machine.PB13), int(machine.PB14)),
			types.ButtonConfig{Pin: int(machine.PB12), Event: types.EventPower, DebounceMs: debounceMs}),
		Output: types.OutputConfig{Pins: []int{
			int(machine.PA0), int(machine.PA1), int(machine.PA2), int(machine.PA3),
		}},
	}.WithDefaults()
}
