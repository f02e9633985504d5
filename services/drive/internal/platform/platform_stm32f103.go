//go:build stm32f103

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

	"tinygo.org/x/drivers"
)

// ---- I²C ----

var i2cReady bool

// I2C returns I2C1 (PB6/PB7) at 400 kHz.
func I2C() drivers.I2C {
	b := machine.I2C0
	if !i2cReady {
		_ = b.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
		i2cReady = true
	}
	return b
}

// ---- GPIO ----

// Logical pin numbers are machine.Pin values: port*16 + line (PB12 = 28).
type stmPinFactory struct{}

func Pins() halcore.PinFactory { return stmPinFactory{} }

func (stmPinFactory) ByNumber(n int) (halcore.IRQPin, bool) {
	// Ports A..C on the blue pill.
	if n < 0 || n >= 3*16 {
		return nil, false
	}
	return &stmPin{p: machine.Pin(n), n: n}, true
}

type stmPin struct {
	p machine.Pin
	n int
}

func (r *stmPin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInputFloating
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *stmPin) Get() bool   { return r.p.Get() }
func (r *stmPin) Number() int { return r.n }

// SetIRQ claims the EXTI line for the pin. Lines are shared across ports,
// so PA5 and PB5 cannot both interrupt.
func (r *stmPin) SetIRQ(edge halcore.Edge, handler func()) error {
	var change machine.PinChange
	switch edge {
	case halcore.EdgeRising:
		change = machine.PinRising
	case halcore.EdgeFalling:
		change = machine.PinFalling
	case halcore.EdgeBoth:
		change = machine.PinToggle
	default:
		return errcode.InvalidParams
	}
	return r.p.SetInterrupt(change, func(machine.Pin) { handler() })
}

func (r *stmPin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

// ---- PWM ----

type timCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// stmSink maps output pins onto TIM2 channels (PA0..PA3 are CH1..CH4).
type stmSink struct {
	tim    timCtrl
	full   uint32
	freq   uint64
	pins   []int
	chans  []uint8
	staged []uint32
}

func PWMSink(out types.OutputConfig) (sink.Sink, error) {
	if len(out.Pins) == 0 || len(out.Pins) > 4 {
		return nil, errcode.InvalidParams
	}
	return &stmSink{
		tim:    machine.TIM2,
		full:   out.FullScale,
		freq:   out.FreqHz,
		pins:   append([]int(nil), out.Pins...),
		staged: make([]uint32, len(out.Pins)),
	}, nil
}

func (s *stmSink) Configure() error {
	if err := s.tim.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(s.freq)}); err != nil {
		return errcode.Wrap(errcode.SinkInitFailed, "stm32.tim2", err)
	}
	s.chans = s.chans[:0]
	for _, n := range s.pins {
		ch, err := s.tim.Channel(machine.Pin(n))
		if err != nil {
			return errcode.Wrap(errcode.SinkInitFailed, "stm32.tim2", err)
		}
		s.chans = append(s.chans, ch)
	}
	return nil
}

func (s *stmSink) Channels() int { return len(s.pins) }

func (s *stmSink) SetChannelDuty(ch int, duty uint32) {
	if ch < 0 || ch >= len(s.staged) {
		return
	}
	s.staged[ch] = duty
}

func (s *stmSink) Commit(ch int) {
	if ch < 0 || ch >= len(s.chans) {
		return
	}
	s.tim.Set(s.chans[ch], mathx.Rescale(s.staged[ch], s.full, s.tim.Top()+1))
}

// ---- Log ----

// LogOutput returns USART1 (PA9/PA10).
func LogOutput(baud uint32) io.Writer {
	machine.DefaultUART.Configure(machine.UARTConfig{BaudRate: baud})
	return machine.DefaultUART
}
