//go:build rp2040

package platform

import (
	"io"
	"machine"

	"drivecode-go/errcode"
	"drivecode-go/services/drive/internal/halcore"
	"drivecode-go/services/drive/sink"
	"drivecode-go/types"
	"drivecode-go/x/mathx"
	"drivecode-go/x/timex"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

// ---- I²C ----

var i2cReady bool

// I2C returns i2c0 on the board-default pins at 400 kHz.
func I2C() drivers.I2C {
	b := machine.I2C0
	if !i2cReady {
		_ = b.Configure(machine.I2CConfig{
			Frequency: 400 * machine.KHz,
			SDA:       machine.I2C0_SDA_PIN,
			SCL:       machine.I2C0_SCL_PIN,
		})
		i2cReady = true
	}
	return b
}

// ---- GPIO ----

type rp2PinFactory struct{}

// Pins maps logical numbers directly to GPn.
func Pins() halcore.PinFactory { return rp2PinFactory{} }

func (rp2PinFactory) ByNumber(n int) (halcore.IRQPin, bool) {
	// User GPIOs GP0..GP28.
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) Get() bool   { return r.p.Get() }
func (r *rp2Pin) Number() int { return r.n }

func (r *rp2Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e halcore.Edge) machine.PinChange {
	switch e {
	case halcore.EdgeRising:
		return machine.PinRising
	case halcore.EdgeFalling:
		return machine.PinFalling
	case halcore.EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}

// ---- PWM ----

type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type rp2Out struct {
	ctrl pwmCtrl
	ch   uint8
}

// rp2Sink drives one PWM slice channel per output pin. Duty is staged
// per channel and written to the counter compare register on Commit.
type rp2Sink struct {
	full   uint32
	freq   uint64
	pins   []int
	outs   []rp2Out
	staged []uint32
}

// PWMSink claims a PWM channel for each output pin. Hardware is touched in
// Configure, called by the drive service before the first tick.
func PWMSink(out types.OutputConfig) (sink.Sink, error) {
	if len(out.Pins) == 0 {
		return nil, errcode.InvalidParams
	}
	return &rp2Sink{
		full:   out.FullScale,
		freq:   out.FreqHz,
		pins:   append([]int(nil), out.Pins...),
		staged: make([]uint32, len(out.Pins)),
	}, nil
}

func (s *rp2Sink) Configure() error {
	period := timex.PeriodFromHz(s.freq)
	configured := map[uint8]bool{}
	s.outs = s.outs[:0]
	for _, n := range s.pins {
		if n < 0 || n > 28 {
			return errcode.Wrap(errcode.SinkInitFailed, "rp2.pwm", errcode.UnknownPin)
		}
		slice := uint8(n>>1) & 7
		ctrl := pwmGroupBySlice(slice)
		if !configured[slice] {
			if err := ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
				return errcode.Wrap(errcode.SinkInitFailed, "rp2.pwm", err)
			}
			configured[slice] = true
		}
		ch, err := ctrl.Channel(machine.Pin(n))
		if err != nil {
			return errcode.Wrap(errcode.SinkInitFailed, "rp2.pwm", err)
		}
		s.outs = append(s.outs, rp2Out{ctrl: ctrl, ch: ch})
	}
	return nil
}

func (s *rp2Sink) Channels() int { return len(s.pins) }

func (s *rp2Sink) SetChannelDuty(ch int, duty uint32) {
	if ch < 0 || ch >= len(s.staged) {
		return
	}
	s.staged[ch] = duty
}

func (s *rp2Sink) Commit(ch int) {
	if ch < 0 || ch >= len(s.outs) {
		return
	}
	o := s.outs[ch]
	top := o.ctrl.Top() + 1
	o.ctrl.Set(o.ch, mathx.Rescale(s.staged[ch], s.full, top))
}

// ---- Log ----

// LogOutput configures uart0 on GP0/GP1 for status lines.
func LogOutput(baud uint32) io.Writer {
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return u
}
