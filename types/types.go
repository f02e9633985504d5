package types

// ------------------------
// Subsystem status (retained)
// ------------------------

// Link is the link/state reported for a subsystem.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

type CapabilityStatus struct {
	Link  Link   `json:"link"`
	TS    int64  `json:"ts_ms"`
	Error string `json:"error,omitempty"`
}

// Kind names a drive subsystem on the bus.
type Kind string

const (
	KindSink    Kind = "sink"
	KindButtons Kind = "buttons"
	KindQueue   Kind = "queue"
)
