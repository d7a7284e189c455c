package chrono

import "time"

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return time.Now()
}

// Timer is a scheduled callback that has not necessarily fired yet.
type Timer interface {
	// Stop prevents the callback from firing, it returns false if the callback
	// already fired or was already stopped.
	Stop() bool
}

// TimerAPI is the interface that anything scheduling delayed work should use.
type TimerAPI interface {
	AfterFunc(delay time.Duration, callback func()) Timer
}

// StandardTimer is the standard implementation of TimerAPI using time.AfterFunc.
type StandardTimer struct{}

func NewStandardTimer() StandardTimer {
	return StandardTimer{}
}

func (StandardTimer) AfterFunc(delay time.Duration, callback func()) Timer {
	return time.AfterFunc(delay, callback)
}
