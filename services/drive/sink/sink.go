// Package sink defines where the control loop writes duty values.
package sink

import "sync"

// Sink is the outbound duty-cycle collaborator. Writes are fire-and-forget:
// hardware failures are never reported back to the control loop.
type Sink interface {
	Channels() int
	// SetChannelDuty stages duty (in full-scale counts) for channel ch.
	SetChannelDuty(ch int, duty uint32)
	// Commit latches the staged duty of ch to the output.
	Commit(ch int)
}

// Configurer is implemented by sinks that need bring-up before the first
// write. A failure leaves the sink unusable.
type Configurer interface {
	Configure() error
}

// ---- Recorder ----

// Recorder is an in-memory Sink for host builds and tests.
type Recorder struct {
	mu      sync.Mutex
	staged  []uint32
	live    []uint32
	commits []int
	history [][]uint32 // committed values per channel
	limit   int
}

// NewRecorder keeps up to historyLen committed values per channel
// (0 keeps none).
func NewRecorder(channels, historyLen int) *Recorder {
	return &Recorder{
		staged:  make([]uint32, channels),
		live:    make([]uint32, channels),
		commits: make([]int, channels),
		history: make([][]uint32, channels),
		limit:   historyLen,
	}
}

func (r *Recorder) Channels() int { return len(r.live) }

func (r *Recorder) SetChannelDuty(ch int, duty uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch < 0 || ch >= len(r.staged) {
		return
	}
	r.staged[ch] = duty
}

func (r *Recorder) Commit(ch int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch < 0 || ch >= len(r.live) {
		return
	}
	r.live[ch] = r.staged[ch]
	r.commits[ch]++
	if r.limit > 0 {
		h := append(r.history[ch], r.live[ch])
		if len(h) > r.limit {
			h = h[len(h)-r.limit:]
		}
		r.history[ch] = h
	}
}

// Duty returns the last committed duty on ch.
func (r *Recorder) Duty(ch int) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live[ch]
}

func (r *Recorder) Commits(ch int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commits[ch]
}

// History returns a copy of the committed values on ch, oldest first.
func (r *Recorder) History(ch int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint32(nil), r.history[ch]...)
}
