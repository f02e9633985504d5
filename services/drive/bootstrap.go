package drive

import (
	"context"

	"drivecode-go/bus"
	"drivecode-go/errcode"
	"drivecode-go/services/drive/buttons"
	"drivecode-go/services/drive/internal/boards"
	"drivecode-go/services/drive/internal/platform"
	"drivecode-go/services/drive/sink"
	"drivecode-go/types"
	"drivecode-go/x/fmtx"
	"drivecode-go/x/timex"
)

// Start brings the drive up on the board selected at build time and runs
// it until ctx is done. On hardware ctx is never cancelled.
func Start(ctx context.Context, conn *bus.Connection) error {
	cfg := boards.Selected()
	fmtx.DefaultOutput = platform.LogOutput(cfg.LogBaud)
	println("[main] board:", cfg.Board)

	svc, src := Setup(cfg, conn)
	defer src.Close()
	return svc.Run(ctx)
}

// Setup builds the service and wires the board's buttons to its queue.
// Failures are logged and published; the affected subsystem stays down
// and the rest keeps going.
func Setup(cfg types.DriveConfig, conn *bus.Connection) (*Service, *buttons.Source) {
	cfg = cfg.WithDefaults()

	sk, err := newSink(cfg.Output)
	if err != nil {
		// Run reports the missing sink.
		println("[main] sink:", err.Error())
	}
	svc := New(cfg, sk, nil, conn)
	svc.PublishStatus(types.KindQueue, nil)

	src := buttons.New(svc.Queue())
	var berr error
	pins := platform.Pins()
	for _, b := range cfg.Buttons {
		pin, ok := pins.ByNumber(b.Pin)
		if !ok {
			err = errcode.Wrap(errcode.UnknownPin, "buttons.claim", nil)
		} else {
			err = src.Register(pin, b.Event, timex.Ms(b.DebounceMs))
		}
		if err != nil {
			println("[buttons] pin", b.Pin, b.Event.String(), "failed:", err.Error())
			berr = err
		}
	}
	svc.PublishStatus(types.KindButtons, berr)
	println("[buttons] irq mask:", src.Mask())
	return svc, src
}

// newSink picks the PCA9685 expander when an address is configured and the
// on-chip PWM otherwise.
func newSink(out types.OutputConfig) (sink.Sink, error) {
	if out.Expander == 0 {
		return platform.PWMSink(out)
	}
	chs := make([]uint8, 0, len(out.Pins))
	for _, p := range out.Pins {
		if p < 0 || p > 255 {
			return nil, errcode.UnknownChannel
		}
		chs = append(chs, uint8(p))
	}
	return sink.NewPCA9685(platform.I2C(), sink.PCA9685Config{
		Address:   out.Expander,
		FreqHz:    out.FreqHz,
		FullScale: out.FullScale,
		Outputs:   chs,
	}), nil
}
