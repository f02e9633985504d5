//go:build rp2040 && !pico_expander

package boards

import "drivecode-go/types"

// Selected: Pico with outputs on GP2..GP5 (PWM1 A/B, PWM2 A/B). No power
// button; outputs are always live.
func Selected() types.DriveConfig {
	return types.DriveConfig{
		Board:    "pico",
		HasPower: false,
		Scale:    types.ScaleTrim,
		Buttons:  buttons(14, 15),
		Output:   types.OutputConfig{Pins: []int{2, 3, 4, 5}},
	}.WithDefaults()
}
