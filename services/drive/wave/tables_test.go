package wave

import (
	"math"
	"testing"
)

func TestSineTableShape(t *testing.T) {
	if SineTable[0] != 0x8000 || SineTable[32] != 0xffff || SineTable[64] != 0x8000 || SineTable[96] != 0x0000 {
		t.Fatalf("quadrant points off: %#x %#x %#x %#x", SineTable[0], SineTable[32], SineTable[64], SineTable[96])
	}
	// Within a few counts of an ideal sine over the full period.
	for i, v := range SineTable {
		ideal := 32768 + 32767*math.Sin(2*math.Pi*float64(i)/SineLen)
		if d := math.Abs(float64(v) - ideal); d > 2 {
			t.Fatalf("sample %d = %#x, ideal %.1f (off by %.1f)", i, v, ideal, d)
		}
	}
}

func TestSineSymmetry(t *testing.T) {
	// The second half mirrors the first about mid-scale.
	for i := 1; i < SineLen/2; i++ {
		a, b := int(SineTable[i]), int(SineTable[SineLen-i])
		if d := a + b - 0xffff; d < -1 || d > 1 {
			t.Fatalf("samples %d and %d are not antisymmetric: %#x %#x", i, SineLen-i, a, b)
		}
	}
}

func TestPulsePattern(t *testing.T) {
	for i := 0; i < PulseLen; i++ {
		want := uint8(4)
		if i >= 10 {
			want = 1
		}
		if PulseTable[i] != want {
			t.Fatalf("pulse[%d] = %d, want %d", i, PulseTable[i], want)
		}
	}
}

func TestLookupWraps(t *testing.T) {
	if Sine(SineLen+3) != SineTable[3] || Pulse(PulseLen+12) != PulseTable[12] {
		t.Fatal("lookups must reduce phase mod table length")
	}
}
