package rotation

import (
	"time"

	"lesson-display-service/internal/app/services/core/slot"
)

// State is the externally visible mode of the scheduler.
type State int

const (
	// StateEmpty means there are no pages to show.
	StateEmpty State = iota
	// StateRunning means a timer is armed and pages advance on their own.
	StateRunning
	// StatePaused means the position is fixed; only manual steps move it.
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Durations are the dwell times for primary and non-primary pages.
type Durations struct {
	Main  time.Duration
	Other time.Duration
}

var DefaultDurations = Durations{
	Main:  15 * time.Second,
	Other: 5 * time.Second,
}

// Snapshot is a read-only copy of the rotation state handed to the presentation side.
type Snapshot struct {
	Page      *slot.Page    `json:"page"`
	PageIndex int           `json:"page_index"`
	PageCount int           `json:"page_count"`
	IsPrimary bool          `json:"is_primary"`
	SlotLabel string        `json:"slot_label"`
	State     State         `json:"state"`
	Paused    bool          `json:"paused"`
	Dwell     time.Duration `json:"dwell"`
}

// Listener is told about every transition. It runs while the scheduler lock is
// held and must not call back into the scheduler.
type Listener interface {
	PageChanged(snapshot Snapshot)
}

type ListenerFunc func(snapshot Snapshot)

func (f ListenerFunc) PageChanged(snapshot Snapshot) { f(snapshot) }
