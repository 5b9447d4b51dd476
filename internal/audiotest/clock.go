// Package audiotest provides deterministic fakes for the player's clock and
// output capabilities, plus WAV fixture generation for decoder tests.
package audiotest

import (
	"sort"
	"sync"
	"time"

	"github.com/jmarren/segplay/pkg/segplay"
)

// FakeClock is a manually advanced clock. Timers fire synchronously from
// Advance, in due order, so scheduling tests never sleep.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer

	// Jitter delays every fire by a fixed amount past its due time,
	// simulating scheduling latency.
	Jitter time.Duration
}

type fakeTimer struct {
	clock   *FakeClock
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, fn func()) segplay.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, due: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.fired && !t.stopped
	t.stopped = true
	return was
}

// Advance moves the clock forward, firing every due timer in order. Callbacks
// run with the clock set to their due time and may schedule new timers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		next := c.nextDueLocked(target)
		if next == nil {
			break
		}
		c.now = next.due.Add(c.Jitter)
		if c.now.After(target) {
			c.now = target
		}
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *FakeClock) nextDueLocked(until time.Time) *fakeTimer {
	pending := make([]*fakeTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.due.After(until) {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].due.Before(pending[j].due) })
	return pending[0]
}

// NextDue returns the due time of the earliest armed timer, or the zero
// time when none is pending.
func (c *FakeClock) NextDue() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	var due time.Time
	for _, t := range c.timers {
		if t.fired || t.stopped {
			continue
		}
		if due.IsZero() || t.due.Before(due) {
			due = t.due
		}
	}
	return due
}

// PendingTimers returns the number of armed, unfired timers
func (c *FakeClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}
