package session

import "time"

// Timer is a pending call created by a Scheduler
type Timer interface {
	// Stop prevents the call from running. It returns false if the call
	// already ran or was stopped before.
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler returns a Scheduler backed by time.AfterFunc
func SystemScheduler() Scheduler {
	return clockScheduler{}
}
