//go:build !rp2040 && !stm32f103

package boards

import "drivecode-go/types"

// Selected is a simulated board with a power button, driven by fake pins.
// Fake pins do not bounce.
func Selected() types.DriveConfig {
	return types.DriveConfig{
		Board:    "host",
		HasPower: true,
		Scale:    types.ScaleExact,
		Buttons: []types.ButtonConfig{
			{Pin: 0, Event: types.EventPower},
			{Pin: 1, Event: types.EventMode},
			{Pin: 2, Event: types.EventStrength},
		},
		Output: types.OutputConfig{Pins: []int{0, 1, 2, 3}},
	}.WithDefaults()
}
