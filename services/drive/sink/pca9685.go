package sink

import (
	"drivecode-go/errcode"
	"drivecode-go/x/mathx"
	"drivecode-go/x/timex"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/pca9685"
)

// PCA9685Address is the chip's address with all A pins low.
const PCA9685Address = 0x40

// pcaOutputs is the number of LEDn outputs on the chip.
const pcaOutputs = 16

type PCA9685Config struct {
	Address   uint8   // defaults to PCA9685Address
	FreqHz    uint64  // output frequency, 40..1000 Hz
	FullScale uint32  // duty counts meaning 100%
	Outputs   []uint8 // chip outputs used, in channel order
}

// PCA9685 fans drive channels out to an I2C PWM expander. Duty arrives in
// full-scale counts and is rescaled to the chip's 12-bit range on Commit.
type PCA9685 struct {
	dev     pca9685.Dev
	freqHz  uint64
	full    uint32
	outputs []uint8 // channel -> chip output

	staged []uint32
	ready  bool // set by a successful Configure
}

// NewPCA9685 performs no bus I/O.
func NewPCA9685(bus drivers.I2C, cfg PCA9685Config) *PCA9685 {
	if cfg.Address == 0 {
		cfg.Address = PCA9685Address
	}
	return &PCA9685{
		dev:     pca9685.New(bus, cfg.Address),
		freqHz:  cfg.FreqHz,
		full:    cfg.FullScale,
		outputs: append([]uint8(nil), cfg.Outputs...),
		staged:  make([]uint32, len(cfg.Outputs)),
	}
}

// Configure sets the chip period and drives every output low. Commits are
// dropped until it succeeds.
func (d *PCA9685) Configure() error {
	const op = "pca9685.configure"
	if d.full == 0 {
		return errcode.Wrap(errcode.SinkInitFailed, op, errcode.InvalidParams)
	}
	for _, o := range d.outputs {
		if o >= pcaOutputs {
			return errcode.Wrap(errcode.SinkInitFailed, op, errcode.UnknownChannel)
		}
	}
	if err := d.dev.Configure(pca9685.PWMConfig{Period: timex.PeriodFromHz(d.freqHz)}); err != nil {
		return errcode.Wrap(errcode.SinkInitFailed, op, err)
	}
	d.ready = true
	return nil
}

func (d *PCA9685) Channels() int { return len(d.outputs) }

func (d *PCA9685) SetChannelDuty(ch int, duty uint32) {
	if ch < 0 || ch >= len(d.staged) {
		return
	}
	d.staged[ch] = duty
}

func (d *PCA9685) Commit(ch int) {
	if !d.ready || ch < 0 || ch >= len(d.staged) {
		return
	}
	d.dev.Set(d.outputs[ch], mathx.Rescale(d.staged[ch], d.full, d.dev.Top()))
}
