package boards

import (
	"testing"

	"drivecode-go/types"
)

func TestSelectedProfile(t *testing.T) {
	cfg := Selected()
	if cfg.Board == "" {
		t.Fatal("board has no name")
	}
	if len(cfg.Output.Pins) != types.DefaultChannels {
		t.Fatalf("outputs = %d, want %d", len(cfg.Output.Pins), types.DefaultChannels)
	}
	if cfg.Tick != types.DefaultTick || cfg.QueueLen != types.DefaultQueueLen {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	seen := map[int]bool{}
	var power bool
	for _, b := range cfg.Buttons {
		if seen[b.Pin] {
			t.Fatalf("pin %d used twice", b.Pin)
		}
		seen[b.Pin] = true
		if b.Event == types.EventPower {
			power = true
		}
	}
	if power != cfg.HasPower {
		t.Fatalf("power button present=%v, HasPower=%v", power, cfg.HasPower)
	}
}

func TestButtonsHelper(t *testing.T) {
	bs := buttons(7, 8)
	if len(bs) != 2 || bs[0].Event != types.EventMode || bs[1].Event != types.EventStrength {
		t.Fatalf("%+v", bs)
	}
	if bs[0].DebounceMs != debounceMs {
		t.Fatal("debounce not set")
	}
}
