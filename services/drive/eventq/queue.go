// Package eventq carries button events from interrupt context to the single
// event consumer.
package eventq

import (
	"context"
	"sync/atomic"
	"time"

	"drivecode-go/errcode"
	"drivecode-go/types"
)

// DefaultCapacity is far above human press rates; a drop means the consumer
// stalled.
const DefaultCapacity = 10

// Forever disables the Dequeue timeout.
const Forever time.Duration = 0

type Queue struct {
	// Written by ISRs; MUST NOT block the ISR.
	ch chan types.ButtonEvent

	drops uint32
}

func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{ch: make(chan types.ButtonEvent, capacity)}
}

// Enqueue is safe from interrupt context. A full queue drops ev and
// returns false.
func (q *Queue) Enqueue(ev types.ButtonEvent) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		atomic.AddUint32(&q.drops, 1)
		return false
	}
}

// Dequeue blocks until an event arrives, timeout elapses (errcode.Timeout)
// or ctx is done (ctx.Err()). A timeout of Forever waits indefinitely.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (types.ButtonEvent, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}
	select {
	case ev := <-q.ch:
		return ev, nil
	case <-expired:
		return types.EventNone, errcode.Timeout
	case <-ctx.Done():
		return types.EventNone, ctx.Err()
	}
}

func (q *Queue) Len() int      { return len(q.ch) }
func (q *Queue) Cap() int      { return cap(q.ch) }
func (q *Queue) Drops() uint32 { return atomic.LoadUint32(&q.drops) }
