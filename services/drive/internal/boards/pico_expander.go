//go:build rp2040 && pico_expander

package boards

import (
	"drivecode-go/services/drive/sink"
	"drivecode-go/types"
)

// Selected: Pico driving a PCA9685 on i2c0 (GP4/GP5), outputs LED0..LED3.
// The chip tops out near 1.5 kHz.
func Selected() types.DriveConfig {
	return types.DriveConfig{
		Board:    "pico-pca9685",
		HasPower: false,
		Scale:    types.ScaleTrim,
		Buttons:  buttons(14, 15),
		Output: types.OutputConfig{
			Pins:     []int{0, 1, 2, 3},
			FreqHz:   1000,
			Expander: sink.PCA9685Address,
		},
	}.WithDefaults()
}
