package sim

import (
	"sort"
	"sync"
	"time"

	"github.com/udisondev/battlestats/internal/events"
)

// Clock is a virtual clock and timer source.
// Scheduled callbacks fire only when Advance moves time past their deadline.
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*clockTask
}

type clockTask struct {
	c        *Clock
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *clockTask) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewClock creates a clock set to start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc implements events.AfterFunc.
func (c *Clock) AfterFunc(d time.Duration, f func()) events.Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &clockTask{c: c, deadline: c.now.Add(d), fn: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves time forward by d and runs due callbacks in deadline order.
// Returns the number of callbacks fired.
func (c *Clock) Advance(d time.Duration) int {
	c.mu.Lock()
	c.now = c.now.Add(d)
	sort.SliceStable(c.pending, func(i, j int) bool {
		return c.pending[i].deadline.Before(c.pending[j].deadline)
	})

	var due []*clockTask
	rest := c.pending[:0]
	for _, t := range c.pending {
		switch {
		case t.stopped:
		case !t.deadline.After(c.now):
			t.stopped = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	c.pending = rest
	c.mu.Unlock()

	// callbacks вызываются без лока: они постят в loop
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of scheduled, unfired callbacks.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}
