//go:build !rp2040 && !stm32f103

package platform

import (
	"io"
	"os"
	"sync"

	"drivecode-go/services/drive/internal/halcore"
	"drivecode-go/services/drive/sink"
	"drivecode-go/types"

	"tinygo.org/x/drivers"
)

// HistoryLen is how many committed duties the host sink keeps per channel.
const HistoryLen = 256

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements tinygo drivers.I2C for host builds. Every write is
// kept so tests can inspect the register traffic.
type HostI2C struct {
	mu  sync.Mutex
	Txs []I2CTx
}

type I2CTx struct {
	Addr uint16
	W    []byte
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	h.Txs = append(h.Txs, I2CTx{Addr: addr, W: append([]byte(nil), w...)})
	h.mu.Unlock()
	for i := range r {
		r[i] = 0
	}
	return nil
}

// Count returns the number of transactions seen so far.
func (h *HostI2C) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Txs)
}

var hostBus = &HostI2C{}

// I2C returns the board's expander bus.
func I2C() drivers.I2C { return hostBus }

// ----------------------------- GPIO (host) -----------------------------------

// FakePin is an IRQ-capable pin driven from tests or a simulator.
type FakePin struct {
	mu      sync.Mutex
	number  int
	level   bool
	pull    halcore.Pull
	irqEdge halcore.Edge
	irqFunc func()
	irqErr  error
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.pull = pull
	p.level = pull == halcore.PullUp
	p.mu.Unlock()
	return nil
}

// Set drives the pin level and fires the handler on a matching edge.
func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	fire := irqWanted(p.irqEdge, edgeFrom(old, level))
	irq := p.irqFunc
	p.mu.Unlock()
	if fire && irq != nil {
		irq()
	}
}

// Press pulls an active-low button down and releases it.
func (p *FakePin) Press() {
	p.Set(false)
	p.Set(true)
}

func (p *FakePin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) Pull() halcore.Pull {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pull
}

// FailIRQ makes later SetIRQ calls return err, as a pin whose interrupt
// line is taken would. nil restores normal behaviour.
func (p *FakePin) FailIRQ(err error) {
	p.mu.Lock()
	p.irqErr = err
	p.mu.Unlock()
}

// Edge returns the edge the installed handler waits for.
func (p *FakePin) Edge() halcore.Edge {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.irqEdge
}

func (p *FakePin) SetIRQ(edge halcore.Edge, handler func()) error {
	p.mu.Lock()
	if p.irqErr != nil {
		err := p.irqErr
		p.mu.Unlock()
		return err
	}
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = halcore.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

func edgeFrom(old, new bool) halcore.Edge {
	switch {
	case !old && new:
		return halcore.EdgeRising
	case old && !new:
		return halcore.EdgeFalling
	default:
		return halcore.EdgeNone
	}
}

func irqWanted(cfg, seen halcore.Edge) bool {
	if seen == halcore.EdgeNone {
		return false
	}
	if cfg == halcore.EdgeBoth {
		return true
	}
	return cfg == seen
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.IRQPin, bool) {
	if n < 0 {
		return nil, false
	}
	return f.Get(n), true
}

// Get exposes the underlying *FakePin so callers can press it.
func (f *HostPinFactory) Get(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p
}

var hostPins = &HostPinFactory{}

// Pins returns the board's pin factory.
func Pins() halcore.PinFactory { return hostPins }

// HostPins exposes the concrete host factory.
func HostPins() *HostPinFactory { return hostPins }

// ----------------------------- PWM (host) ------------------------------------

// PWMSink returns an in-memory recorder with one channel per output pin.
func PWMSink(out types.OutputConfig) (sink.Sink, error) {
	return sink.NewRecorder(len(out.Pins), HistoryLen), nil
}

// ----------------------------- Log (host) ------------------------------------

func LogOutput(uint32) io.Writer { return os.Stdout }
