// Package report encodes drive state as a single status line.
//
// Firmware writes one line per state change to its log output; the host
// monitor reads them back. Format:
//
//	drive mode=pulsed strength=3 power=on drops=0
//
// A board without a power button reports power=na.
package report

import (
	"strings"

	"drivecode-go/errcode"
	"drivecode-go/types"
	"strconv"
)

const Prefix = "drive"

const powerNA = "na"

func Format(st types.DriveState) string {
	var b strings.Builder
	b.WriteString(Prefix)
	b.WriteString(" mode=")
	b.WriteString(st.Mode.String())
	b.WriteString(" strength=")
	b.WriteString(strconv.FormatUint(uint64(st.Strength), 10))
	b.WriteString(" power=")
	if st.HasPower {
		b.WriteString(st.Power.String())
	} else {
		b.WriteString(powerNA)
	}
	b.WriteString(" drops=")
	b.WriteString(strconv.FormatUint(uint64(st.Drops), 10))
	return b.String()
}

// IsStatus reports whether line looks like a status line.
func IsStatus(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), Prefix+" ")
}

// Parse reverses Format. TS is left zero.
func Parse(line string) (types.DriveState, error) {
	var st types.DriveState
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != Prefix {
		return st, errcode.InvalidPayload
	}
	seen := 0
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return st, errcode.InvalidPayload
		}
		switch k {
		case "mode":
			m, ok := types.ParseMode(v)
			if !ok {
				return st, errcode.InvalidPayload
			}
			st.Mode = m
		case "strength":
			n, err := strconv.ParseUint(v, 10, 8)
			if err != nil || !types.Strength(n).Valid() {
				return st, errcode.InvalidPayload
			}
			st.Strength = types.Strength(n)
		case "power":
			switch v {
			case "on":
				st.Power, st.HasPower = types.PowerOn, true
			case "off":
				st.Power, st.HasPower = types.PowerOff, true
			case powerNA:
				st.Power, st.HasPower = types.PowerOn, false
			default:
				return st, errcode.InvalidPayload
			}
		case "drops":
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return st, errcode.InvalidPayload
			}
			st.Drops = uint32(n)
		default:
			return st, errcode.InvalidPayload
		}
		seen++
	}
	if seen != 4 {
		return st, errcode.InvalidPayload
	}
	return st, nil
}
