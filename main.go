package main

import (
	"context"
	"time"

	"drivecode-go/bus"
	"drivecode-go/services/drive"
	"drivecode-go/services/heartbeat"
	"drivecode-go/types"
)

func printTopicWith(prefix string, t bus.Topic) {
	print(prefix)
	print(" ")
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			print("/")
		}
		switch v := t.At(i).(type) {
		case string:
			print(v)
		case int:
			print(v)
		default:
			print("?")
		}
	}
	println()
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	ctx := context.Background()

	println("[main] bootstrapping bus …")
	b := bus.NewBus(4)
	driveConn := b.NewConnection("drive")
	hbConn := b.NewConnection("heartbeat")
	uiConn := b.NewConnection("ui")

	println("[main] subscribing to drive/# for diagnostics …")
	mon := uiConn.Subscribe(drive.TopicAll())
	go func() {
		for m := range mon.Channel() {
			printTopicWith("[monitor] <-", m.Topic)
			if st, ok := m.Payload.(types.CapabilityStatus); ok && st.Link != types.LinkUp {
				println("[monitor]   degraded:", st.Error)
			}
		}
	}()

	println("[main] starting heartbeat …")
	hb := &heartbeat.Service{}
	hb.Start(ctx, hbConn)

	println("[main] starting drive …")
	if err := drive.Start(ctx, driveConn); err != nil {
		println("[main] drive stopped:", err.Error())
	}
	// Outputs are dead; keep the monitor and USB alive for inspection.
	select {}
}
