package domain

import "time"

// CommandKind represents the kind of a segment command.
type CommandKind string

// List of segment command kinds. START begins a segment flight, FINISH
// completes it. No compensating command exists.
const (
	CommandStart  CommandKind = "START"
	CommandFinish CommandKind = "FINISH"
)

// Valid checks if the CommandKind is valid.
func (k CommandKind) Valid() bool {
	return k == CommandStart || k == CommandFinish
}

// Command is a transient flight command for one segment. Built by the
// dispatcher, sent once, never retried automatically.
type Command struct {
	OrderID      string
	Kind         CommandKind
	SegmentIndex int
	LockerID     string
	DroneID      string
	GCSID        string
	IssuedAt     time.Time
}
