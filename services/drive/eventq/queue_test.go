package eventq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"drivecode-go/errcode"
	"drivecode-go/types"
)

func TestFIFOOrder(t *testing.T) {
	q := New(0)
	if q.Cap() != DefaultCapacity {
		t.Fatalf("default capacity = %d", q.Cap())
	}
	in := []types.ButtonEvent{types.EventMode, types.EventStrength, types.EventPower, types.EventMode}
	for _, ev := range in {
		if !q.Enqueue(ev) {
			t.Fatalf("enqueue %v failed", ev)
		}
	}
	for i, want := range in {
		got, err := q.Dequeue(context.Background(), 100*time.Millisecond)
		if err != nil || got != want {
			t.Fatalf("dequeue %d = %v, %v; want %v", i, got, err, want)
		}
	}
}

func TestOverflowDropsEleventh(t *testing.T) {
	q := New(DefaultCapacity)
	for i := 0; i < 10; i++ {
		if !q.Enqueue(types.EventStrength) {
			t.Fatalf("enqueue %d rejected below capacity", i)
		}
	}
	if q.Enqueue(types.EventMode) {
		t.Fatal("11th event must be dropped")
	}
	if q.Len() != 10 {
		t.Fatalf("len = %d, want 10", q.Len())
	}
	if q.Drops() != 1 {
		t.Fatalf("drops = %d, want 1", q.Drops())
	}
	// The dropped tag never surfaces.
	for i := 0; i < 10; i++ {
		ev, err := q.Dequeue(context.Background(), 50*time.Millisecond)
		if err != nil || ev != types.EventStrength {
			t.Fatalf("dequeue %d = %v, %v", i, ev, err)
		}
	}
}

func TestDequeueTimeout(t *testing.T) {
	q := New(1)
	start := time.Now()
	_, err := q.Dequeue(context.Background(), 10*time.Millisecond)
	if !errors.Is(err, errcode.Timeout) {
		t.Fatalf("err = %v, want timeout", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatal("returned before the timeout")
	}
}

func TestDequeueForeverUnblocksOnEventAndCancel(t *testing.T) {
	q := New(1)
	go func() {
		time.Sleep(5 * time.Millisecond)
		q.Enqueue(types.EventPower)
	}()
	ev, err := q.Dequeue(context.Background(), Forever)
	if err != nil || ev != types.EventPower {
		t.Fatalf("dequeue = %v, %v", ev, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	if _, err := q.Dequeue(ctx, Forever); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestConcurrentProducersNeverBlock(t *testing.T) {
	q := New(4)
	var wg sync.WaitGroup
	for p := 0; p < 3; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Enqueue(types.EventMode)
			}
		}()
	}
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producers blocked on a full queue")
	}
	if got := uint32(q.Len()) + q.Drops(); got != 300 {
		t.Fatalf("queued+dropped = %d, want 300", got)
	}
}
