// Package heartbeat re-emits the last drive status line on a fixed period,
// so a monitor that attaches late still sees the current state.
package heartbeat

import (
	"context"
	"time"

	"drivecode-go/bus"
	"drivecode-go/services/drive"
	"drivecode-go/services/drive/report"
	"drivecode-go/types"
	"drivecode-go/x/fmtx"
)

const DefaultInterval = 5 * time.Second

// Config is accepted on TopicConfig at runtime.
type Config struct {
	Interval time.Duration
}

var TopicConfig = bus.T("config", "heartbeat")

type Service struct {
	Interval time.Duration
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, done chan<- struct{}) {
	defer close(done)
	stateSub := conn.Subscribe(drive.TopicState())
	defer conn.Unsubscribe(stateSub)
	cfgSub := conn.Subscribe(TopicConfig)
	defer conn.Unsubscribe(cfgSub)

	iv := s.Interval
	if iv <= 0 {
		iv = DefaultInterval
	}
	tick := time.NewTicker(iv)
	defer tick.Stop()

	var last *types.DriveState
	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			if last == nil {
				println("[heartbeat] no drive state yet")
				continue
			}
			_, _ = fmtx.Println(report.Format(*last))
		case msg := <-stateSub.Channel():
			if st, ok := msg.Payload.(types.DriveState); ok {
				last = &st
			}
		case msg := <-cfgSub.Channel():
			if c, ok := msg.Payload.(Config); ok && c.Interval > 0 {
				tick.Reset(c.Interval)
				println("[heartbeat] interval set to", c.Interval.String())
			}
		}
	}
}

// Start runs the heartbeat until ctx is done. The returned channel closes
// when the loop has exited.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) <-chan struct{} {
	done := make(chan struct{})
	go s.serviceLoop(ctx, conn, done)
	return done
}
