package rotation

import "time"

// Handle cancels a pending timer. Stop reports whether the call prevented the timer from firing.
type Handle interface {
	Stop() bool
}

// Timer schedules f to run once after d. A nil Handle means the timer could not be armed.
type Timer interface {
	AfterFunc(d time.Duration, f func()) Handle
}

type realTimer struct{}

// NewRealTimer returns a Timer backed by time.AfterFunc.
func NewRealTimer() Timer {
	return realTimer{}
}

func (realTimer) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
}
