package geo

import "time"

// Scheduler runs fire-once deferred callbacks. The returned cancel func
// reports whether it stopped the callback before it ran.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

// TimerScheduler schedules on the wall clock with time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}
