// Package wave holds the fixed lookup tables shared by every output channel.
package wave

// Table lengths; phase counters wrap at these values.
const (
	SineLen  = 128
	PulseLen = 20
)

// SineTable is one full sine period in unsigned 16-bit counts centred on
// 0x8000. Values are already at output resolution and are emitted unscaled.
var SineTable = [SineLen]uint16{
	0x8000, 0x8647, 0x8c8b, 0x92c7, 0x98f8, 0x9f19, 0xa527, 0xab1f,
	0xb0fb, 0xb6b9, 0xbc56, 0xc1cd, 0xc71c, 0xcc3f, 0xd133, 0xd5f5,
	0xda82, 0xded7, 0xe2f1, 0xe6cf, 0xea6d, 0xedc9, 0xf0e2, 0xf3b5,
	0xf641, 0xf884, 0xfa7c, 0xfc29, 0xfd89, 0xfe9c, 0xff61, 0xffd8,
	0xffff, 0xffd8, 0xff61, 0xfe9c, 0xfd89, 0xfc29, 0xfa7c, 0xf884,
	0xf641, 0xf3b5, 0xf0e2, 0xedc9, 0xea6d, 0xe6cf, 0xe2f1, 0xded7,
	0xda82, 0xd5f5, 0xd133, 0xcc3f, 0xc71c, 0xc1cd, 0xbc56, 0xb6b9,
	0xb0fb, 0xab1f, 0xa527, 0x9f19, 0x98f8, 0x92c7, 0x8c8b, 0x8647,
	0x8000, 0x79b8, 0x7374, 0x6d38, 0x6707, 0x60e6, 0x5ad8, 0x54e0,
	0x4f04, 0x4946, 0x43a9, 0x3e32, 0x38e3, 0x33c0, 0x2ecc, 0x2a0a,
	0x257d, 0x2128, 0x1d0e, 0x1930, 0x1592, 0x1236, 0x0f1d, 0x0c4a,
	0x09be, 0x077b, 0x0583, 0x03d6, 0x0276, 0x0163, 0x009e, 0x0027,
	0x0000, 0x0027, 0x009e, 0x0163, 0x0276, 0x03d6, 0x0583, 0x077b,
	0x09be, 0x0c4a, 0x0f1d, 0x1236, 0x1592, 0x1930, 0x1d0e, 0x2128,
	0x257d, 0x2a0a, 0x2ecc, 0x33c0, 0x38e3, 0x3e32, 0x43a9, 0x4946,
	0x4f04, 0x54e0, 0x5ad8, 0x60e6, 0x6707, 0x6d38, 0x7374, 0x79b8,
}

// PulseTable is the coarse pulsed-mode pattern in strength factors:
// ten ticks high, ten ticks low.
var PulseTable = [PulseLen]uint8{
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
}

// Sine returns the sine sample at phase, reduced mod SineLen.
func Sine(phase uint16) uint16 { return SineTable[phase%SineLen] }

// Pulse returns the pulse factor at phase, reduced mod PulseLen.
func Pulse(phase uint16) uint8 { return PulseTable[phase%PulseLen] }
