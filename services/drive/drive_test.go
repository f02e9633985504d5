package drive

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"drivecode-go/bus"
	"drivecode-go/errcode"
	"drivecode-go/services/drive/eventq"
	"drivecode-go/services/drive/internal/platform"
	"drivecode-go/services/drive/output"
	"drivecode-go/services/drive/sink"
	"drivecode-go/services/drive/state"
	"drivecode-go/services/drive/wave"
	"drivecode-go/types"
	"drivecode-go/x/fmtx"
)

func TestMain(m *testing.M) {
	fmtx.DefaultOutput = io.Discard
	os.Exit(m.Run())
}

func testConfig(hasPower bool, style types.ScaleStyle) types.DriveConfig {
	return types.DriveConfig{
		Board:    "test",
		HasPower: hasPower,
		Scale:    style,
		Tick:     time.Millisecond,
		Output:   types.OutputConfig{Pins: []int{0, 1, 2, 3}},
	}
}

func newService(t *testing.T, hasPower bool) (*Service, *sink.Recorder) {
	t.Helper()
	rec := sink.NewRecorder(types.DefaultChannels, 64)
	return New(testConfig(hasPower, types.ScaleExact), rec, nil, nil), rec
}

func allChannels(t *testing.T, rec *sink.Recorder, want uint32) {
	t.Helper()
	for ch := 0; ch < rec.Channels(); ch++ {
		if got := rec.Duty(ch); got != want {
			t.Fatalf("channel %d duty = %d, want %d", ch, got, want)
		}
	}
}

func TestDefaultsAndInitialState(t *testing.T) {
	s, _ := newService(t, false)
	if s.Queue().Cap() != eventq.DefaultCapacity {
		t.Fatalf("queue capacity = %d", s.Queue().Cap())
	}
	st := s.State()
	if st.Mode != types.ModeNormal || st.Strength != types.StrengthDefault || st.Power != types.PowerOn || st.HasPower {
		t.Fatalf("initial state %+v", st)
	}
}

func TestNormalTickDrivesAllChannels(t *testing.T) {
	s, rec := newService(t, false)
	s.step()
	allChannels(t, rec, output.NewScale(types.DefaultFullScale, types.ScaleExact).Duty(uint32(types.StrengthDefault)))
	for ch := 0; ch < rec.Channels(); ch++ {
		if rec.Commits(ch) != 1 {
			t.Fatalf("channel %d commits = %d", ch, rec.Commits(ch))
		}
	}
}

func TestModePressSwitchesNextTickToPulsed(t *testing.T) {
	s, rec := newService(t, false)
	s.step()
	normal := rec.Duty(0)

	s.handle(types.EventMode)
	if rec.Commits(0) != 1 {
		t.Fatal("the consumer must not write to the sink")
	}
	s.step()

	sc := output.NewScale(types.DefaultFullScale, types.ScaleExact)
	want := sc.Duty(uint32(wave.PulseTable[1]))
	if got := rec.Duty(0); got != want {
		t.Fatalf("pulsed tick duty = %d, want %d (normal was %d)", got, want, normal)
	}
}

func TestStrengthWrapsToMin(t *testing.T) {
	s, _ := newService(t, false)
	s.cell.Store(state.State{Mode: types.ModeNormal, Strength: types.StrengthMax, Power: types.PowerOn})

	s.handle(types.EventStrength)
	if got := s.State().Strength; got != types.StrengthMin {
		t.Fatalf("after one press from max: %d, want %d", got, types.StrengthMin)
	}
	for i := 0; i < 3; i++ {
		s.handle(types.EventStrength)
	}
	if got := s.State().Strength; got != types.StrengthMax {
		t.Fatalf("after four presses from max: %d, want %d", got, types.StrengthMax)
	}
}

func TestPowerOffForcesZero(t *testing.T) {
	s, rec := newService(t, true)
	for m := types.ModeNormal; m < types.ModeCount; m++ {
		for str := types.StrengthMin; str <= types.StrengthMax; str++ {
			s.cell.Store(state.State{Mode: m, Strength: str, Power: types.PowerOff})
			s.step()
			allChannels(t, rec, output.OffDuty)
		}
	}
	s.handle(types.EventPower)
	if s.State().Power != types.PowerOn {
		t.Fatal("power press must turn on")
	}
	s.step()
	if rec.Duty(0) == output.OffDuty {
		t.Fatal("powered output stayed at zero")
	}
}

func TestPowerPressIgnoredWithoutPowerButton(t *testing.T) {
	s, _ := newService(t, false)
	before := s.State()
	s.handle(types.EventPower)
	after := s.State()
	if after.Power != before.Power || after.Mode != before.Mode || after.Strength != before.Strength {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
}

func TestUndefinedModeLeavesOutputs(t *testing.T) {
	s, rec := newService(t, false)
	s.step()
	s.cell.Store(state.State{Mode: types.Mode(9), Strength: 3, Power: types.PowerOn})
	s.step()
	if rec.Commits(0) != 1 || s.Ticks() != 1 {
		t.Fatalf("undefined mode wrote to the sink: commits %d ticks %d", rec.Commits(0), s.Ticks())
	}
}

func TestRunEndToEnd(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("drive")
	mon := b.NewConnection("test").Subscribe(TopicState())

	rec := sink.NewRecorder(types.DefaultChannels, 16)
	s := New(testConfig(false, types.ScaleTrim), rec, nil, conn)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	waitState := func(pred func(types.DriveState) bool) types.DriveState {
		t.Helper()
		deadline := time.After(time.Second)
		for {
			select {
			case m := <-mon.Channel():
				st := m.Payload.(types.DriveState)
				if pred(st) {
					return st
				}
			case <-deadline:
				t.Fatal("timeout waiting for state")
			}
		}
	}
	waitState(func(st types.DriveState) bool { return st.Mode == types.ModeNormal })

	s.Queue().Enqueue(types.EventMode)
	s.Queue().Enqueue(types.EventMode)
	st := waitState(func(st types.DriveState) bool { return st.Mode == types.ModeWaveform })
	if st.Strength != types.StrengthDefault {
		t.Fatalf("mode presses changed strength: %+v", st)
	}

	// Waveform ticks emit raw sine samples.
	deadline := time.Now().Add(time.Second)
	for {
		h := rec.History(0)
		if len(h) >= 4 && isSineRun(h[len(h)-4:]) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("no sine samples on the sink: %v", h)
		}
		time.Sleep(2 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

// isSineRun reports whether h is a run of consecutive sine table samples.
func isSineRun(h []uint32) bool {
	for start := 0; start < wave.SineLen; start++ {
		ok := true
		for i, v := range h {
			if uint32(wave.SineTable[(start+i)%wave.SineLen]) != v {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

type failingSink struct{ *sink.Recorder }

func (failingSink) Configure() error { return errors.New("timer busy") }

func TestRunSinkBringUpFailure(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("drive")
	s := New(testConfig(false, types.ScaleExact), failingSink{sink.NewRecorder(4, 0)}, nil, conn)

	err := s.Run(context.Background())
	if errcode.Of(err) != errcode.SinkInitFailed {
		t.Fatalf("Run err = %v", err)
	}
	sub := b.NewConnection("test").Subscribe(TopicStatus(types.KindSink))
	select {
	case m := <-sub.Channel():
		st := m.Payload.(types.CapabilityStatus)
		if st.Link != types.LinkDegraded || st.Error != string(errcode.SinkInitFailed) {
			t.Fatalf("status %+v", st)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no retained sink status")
	}

	if err := New(testConfig(false, types.ScaleExact), nil, nil, nil).Run(context.Background()); errcode.Of(err) != errcode.SinkInitFailed {
		t.Fatalf("nil sink: %v", err)
	}
}

type codedFailSink struct{ *sink.Recorder }

func (codedFailSink) Configure() error { return errcode.UnknownChannel }

func TestRunBringUpFailureAlwaysReportsSinkInit(t *testing.T) {
	sinks := map[string]sink.Sink{
		"coded":   codedFailSink{sink.NewRecorder(4, 0)},
		"pca9685": sink.NewPCA9685(&platform.HostI2C{}, sink.PCA9685Config{FreqHz: 1000, FullScale: 65536, Outputs: []uint8{16}}),
	}
	for name, sk := range sinks {
		b := bus.NewBus(4)
		s := New(testConfig(false, types.ScaleExact), sk, nil, b.NewConnection("drive"))
		err := s.Run(context.Background())
		if errcode.Of(err) != errcode.SinkInitFailed {
			t.Fatalf("%s: Run err = %v", name, err)
		}
		st := retained(t, b, TopicStatus(types.KindSink)).Payload.(types.CapabilityStatus)
		if st.Error != string(errcode.SinkInitFailed) {
			t.Fatalf("%s: status %+v", name, st)
		}
	}
}
