package segplay

import "time"

// Timer is a pending one-shot fire. Stop reports whether the fire was
// prevented.
type Timer interface {
	Stop() bool
}

// Clock is the injected time capability. Scheduling is one-shot only: every
// loop restart explicitly arms the next fire, which is what allows the
// anchor-based delay recomputation.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// WallClock is the production Clock over the time package
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

func (WallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
