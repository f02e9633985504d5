// Package buttons turns falling edges on button pins into queued events.
package buttons

import (
	"sync"
	"sync/atomic"
	"time"

	"drivecode-go/errcode"
	"drivecode-go/services/drive/eventq"
	"drivecode-go/services/drive/internal/halcore"
	"drivecode-go/types"
)

// Buttons pull up and short to ground when pressed.
const pressEdge = halcore.EdgeFalling

type Source struct {
	q   *eventq.Queue
	now func() int64 // monotonic ns; replaceable in tests

	mu      sync.Mutex
	buttons map[int]*button // pin -> button
}

type button struct {
	pin      halcore.IRQPin
	tag      types.ButtonEvent
	debounce int64 // ns; 0 disables
	last     int64 // ISR-private: ns of last accepted edge
}

func New(q *eventq.Queue) *Source {
	start := time.Now()
	return &Source{
		q:       q,
		now:     func() int64 { return int64(time.Since(start)) },
		buttons: map[int]*button{},
	}
}

// Register configures pin as a pulled-up input and installs an IRQ handler
// that enqueues tag on each press. The handler never blocks: a full queue
// drops the event.
func (s *Source) Register(pin halcore.IRQPin, tag types.ButtonEvent, debounce time.Duration) error {
	if pin == nil || tag == types.EventNone || tag > types.EventPower {
		return errcode.InvalidParams
	}
	n := pin.Number()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, used := s.buttons[n]; used {
		return errcode.PinInUse
	}
	if err := pin.ConfigureInput(halcore.PullUp); err != nil {
		return errcode.Wrap(errcode.IRQInstallFailed, "buttons.configure", err)
	}
	b := &button{pin: pin, tag: tag, debounce: int64(debounce)}

	// ISR handler: timestamp check + non-blocking channel send.
	handler := func() {
		if b.debounce > 0 {
			now := s.now()
			last := atomic.LoadInt64(&b.last)
			if last != 0 && now-last < b.debounce {
				return
			}
			atomic.StoreInt64(&b.last, now)
		}
		s.q.Enqueue(b.tag)
	}
	if err := pin.SetIRQ(pressEdge, handler); err != nil {
		return errcode.Wrap(errcode.IRQInstallFailed, "buttons.setirq", err)
	}
	s.buttons[n] = b
	return nil
}

// Mask is the bitwise OR of 1<<pin over registered buttons.
func (s *Source) Mask() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var m uint64
	for n := range s.buttons {
		m |= 1 << uint(n)
	}
	return m
}

// Tags returns the event tag wired to each registered pin.
func (s *Source) Tags() map[int]types.ButtonEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]types.ButtonEvent, len(s.buttons))
	for n, b := range s.buttons {
		out[n] = b.tag
	}
	return out
}

// Close removes every IRQ handler.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for n, b := range s.buttons {
		_ = b.pin.ClearIRQ()
		delete(s.buttons, n)
	}
}

func (s *Source) Drops() uint32 { return s.q.Drops() }
