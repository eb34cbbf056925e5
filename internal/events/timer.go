package events

import (
	"log/slog"
	"time"
)

// Timer is a pending delayed delivery created by Loop.After.
type Timer struct {
	loop    *Loop
	event   Event
	stopper Stopper
	firing  bool // guarded by loop.mu
}

// Event returns the event the timer will deliver.
func (t *Timer) Event() Event { return t.event }

// Cancel stops the timer before it fires.
// Returns true if the event will no longer be delivered.
func (t *Timer) Cancel() bool {
	l := t.loop
	l.mu.Lock()
	_, ok := l.timers[t]
	if !ok || t.firing {
		l.mu.Unlock()
		return false
	}
	delete(l.timers, t)
	l.mu.Unlock()

	t.stopper.Stop()
	return true
}

// After posts ev into the loop once delay has elapsed.
// Events posted before the timer fires are dispatched first.
func (l *Loop) After(delay time.Duration, ev Event) *Timer {
	t := &Timer{loop: l, event: ev}

	l.mu.Lock()
	l.timers[t] = struct{}{}
	// stopper назначается под локом, чтобы fire не увидел nil
	t.stopper = l.afterFunc(delay, func() { l.fire(t) })
	l.mu.Unlock()

	return t
}

// ActiveTimers returns the number of timers whose event is not yet queued
// and that have not been cancelled.
func (l *Loop) ActiveTimers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// fire keeps t active until its event is in the queue, so ActiveTimers
// never reports zero while a delayed event is still on its way.
func (l *Loop) fire(t *Timer) {
	l.mu.Lock()
	_, ok := l.timers[t]
	if !ok || t.firing {
		l.mu.Unlock()
		return
	}
	t.firing = true
	l.mu.Unlock()

	if err := l.Post(t.event); err != nil {
		slog.Debug("delayed event dropped",
			"kind", t.event.Kind,
			"error", err)
	}
	l.untrack(t)
}

// untrack removes t from the active set.
func (l *Loop) untrack(t *Timer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.timers, t)
}
