// Package boards holds the compiled-in drive profile for each target.
// Exactly one Selected is built, chosen by build tags.
package boards

import "drivecode-go/types"

const debounceMs = 30

func buttons(mode, strength int) []types.ButtonConfig {
	return []types.ButtonConfig{
		{Pin: mode, Event: types.EventMode, DebounceMs: debounceMs},
		{Pin: strength, Event: types.EventStrength, DebounceMs: debounceMs},
	}
}
