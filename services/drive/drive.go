// Package drive runs the actuator control loop.
//
// Two goroutines share one state.Cell:
//
//	consumer: eventq -> state transition -> Cell.Store   (sole writer)
//	driver:   Cell.Load -> output.Generator -> sink      (sole reader)
//
// Button interrupts only enqueue. A press therefore shows up on the outputs
// at the next tick, within one period.
package drive

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"drivecode-go/bus"
	"drivecode-go/errcode"
	"drivecode-go/services/drive/eventq"
	"drivecode-go/services/drive/output"
	"drivecode-go/services/drive/report"
	"drivecode-go/services/drive/sink"
	"drivecode-go/services/drive/state"
	"drivecode-go/types"
	"drivecode-go/x/fmtx"
	"drivecode-go/x/timex"
)

type Service struct {
	cfg  types.DriveConfig
	sink sink.Sink
	q    *eventq.Queue
	conn *bus.Connection // optional

	cell *state.Cell
	gen  *output.Generator // driver goroutine only

	ticks uint32
}

func New(cfg types.DriveConfig, s sink.Sink, q *eventq.Queue, conn *bus.Connection) *Service {
	cfg = cfg.WithDefaults()
	if q == nil {
		q = eventq.New(cfg.QueueLen)
	}
	return &Service{
		cfg:  cfg,
		sink: s,
		q:    q,
		conn: conn,
		cell: state.NewCell(state.Initial(cfg.HasPower)),
		gen:  output.NewGenerator(output.NewScale(cfg.Output.FullScale, cfg.Scale)),
	}
}

// Queue is the event queue button sources should feed.
func (s *Service) Queue() *eventq.Queue { return s.q }

// State returns a snapshot of the live state.
func (s *Service) State() types.DriveState {
	st := s.cell.Load()
	return types.DriveState{
		Mode:     st.Mode,
		Strength: st.Strength,
		Power:    st.Power,
		HasPower: s.cfg.HasPower,
		Drops:    s.q.Drops(),
		TS:       timex.NowMs(),
	}
}

// Ticks counts control-loop iterations that reached the sink.
func (s *Service) Ticks() uint32 { return atomic.LoadUint32(&s.ticks) }

// Run brings up the sink, then drives outputs every tick and consumes
// events until ctx is done. A sink bring-up failure is returned at once;
// there is no retry.
func (s *Service) Run(ctx context.Context) error {
	if err := s.bringUp(); err != nil {
		println("[drive] sink bring-up failed:", err.Error())
		s.pubStatus(types.KindSink, types.LinkDegraded, errcode.Of(err))
		return err
	}
	s.pubStatus(types.KindSink, types.LinkUp, "")
	s.pubState()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.consume(ctx)
	}()
	s.drive(ctx)
	<-done
	return nil
}

func (s *Service) bringUp() error {
	if s.sink == nil || s.sink.Channels() == 0 {
		return errcode.Wrap(errcode.SinkInitFailed, "drive.sink", errcode.UnknownChannel)
	}
	if c, ok := s.sink.(sink.Configurer); ok {
		if err := c.Configure(); err != nil {
			if errcode.Of(err) != errcode.SinkInitFailed {
				err = errcode.Wrap(errcode.SinkInitFailed, "drive.sink", err)
			}
			return err
		}
	}
	return nil
}

// ---- driver ----

func (s *Service) drive(ctx context.Context) {
	tick := time.NewTicker(s.cfg.Tick)
	defer tick.Stop()
	for {
		s.step()
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}

// step emits one tick of output for the current state.
func (s *Service) step() {
	duty, ok := s.gen.Next(s.cell.Load())
	if !ok {
		return // undefined mode: leave outputs as they are
	}
	for ch := 0; ch < s.sink.Channels(); ch++ {
		s.sink.SetChannelDuty(ch, duty)
		s.sink.Commit(ch)
	}
	atomic.AddUint32(&s.ticks, 1)
}

// ---- consumer ----

func (s *Service) consume(ctx context.Context) {
	for {
		ev, err := s.q.Dequeue(ctx, eventq.Forever)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			continue
		}
		s.handle(ev)
	}
}

func (s *Service) handle(ev types.ButtonEvent) {
	next, ok := state.Apply(s.cell.Load(), ev, s.cfg.HasPower)
	if !ok {
		println("[drive] ignoring event:", ev.String())
		return
	}
	s.cell.Store(next)
	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(topicEvent(ev), ev, false))
	}
	s.pubState()
}

// ---- publication ----

func (s *Service) pubState() {
	st := s.State()
	_, _ = fmtx.Println(report.Format(st))
	if s.conn == nil {
		return
	}
	s.conn.Publish(s.conn.NewMessage(topicState(), st, true))
}

func (s *Service) pubStatus(k types.Kind, link types.Link, code errcode.Code) {
	if s.conn == nil {
		return
	}
	st := types.CapabilityStatus{Link: link, TS: timex.NowMs()}
	if code != "" {
		st.Error = string(code)
	}
	s.conn.Publish(s.conn.NewMessage(topicStatus(k), st, true))
}

// PublishStatus lets bring-up code outside the service report on other
// subsystems (buttons, queue) on the same topics.
func (s *Service) PublishStatus(k types.Kind, err error) {
	if err != nil {
		s.pubStatus(k, types.LinkDegraded, errcode.Of(err))
		return
	}
	s.pubStatus(k, types.LinkUp, "")
}
