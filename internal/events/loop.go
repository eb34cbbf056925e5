// Package events delivers host events to handlers on a single goroutine.
//
// The loop mirrors the host scripting model: handlers never run concurrently,
// so the state they touch needs no locking. Delayed delivery (After) posts the
// event back into the same queue, letting events queued in the meantime run first.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Kind identifies the event stream.
type Kind int

const (
	KindCombatState Kind = iota // host combat state changed
	KindDeath                   // actor died
	KindHit                     // actor hit another actor
	KindNotify                  // internal: post-battle summary step

	kindBarrier Kind = -1 // Sync marker, never dispatched to handlers
)

// String returns the event kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindCombatState:
		return "combatState"
	case KindDeath:
		return "death"
	case KindHit:
		return "hit"
	case KindNotify:
		return "notify"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a single queued event. Payload type depends on Kind.
type Event struct {
	Kind    Kind
	Payload any
}

// Handler processes one event. Errors are logged and do not stop the loop.
type Handler func(ctx context.Context, ev Event) error

// ErrLoopClosed is returned when posting to a stopped loop.
var ErrLoopClosed = errors.New("event loop closed")

// DefaultQueueSize is the event queue capacity used when none is configured.
const DefaultQueueSize = 256

// Stopper cancels a scheduled callback. Stop reports whether the call was cancelled before firing.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Stopper

func stdAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Option configures a Loop.
type Option func(*Loop)

// WithQueueSize sets the queue capacity.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// WithAfterFunc replaces the timer source, e.g. with a virtual clock.
func WithAfterFunc(fn AfterFunc) Option {
	return func(l *Loop) {
		if fn != nil {
			l.afterFunc = fn
		}
	}
}

// Loop queues events and runs handlers one at a time.
type Loop struct {
	mu       sync.Mutex
	handlers map[Kind][]Handler
	timers   map[*Timer]struct{}

	queueSize int
	queue     chan Event
	afterFunc AfterFunc

	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop. Handlers must be registered before Run.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		handlers:  make(map[Kind][]Handler, 4),
		timers:    make(map[*Timer]struct{}, 4),
		queueSize: DefaultQueueSize,
		afterFunc: stdAfterFunc,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.queue = make(chan Event, l.queueSize)
	return l
}

// On subscribes h to events of kind k. Handlers run in subscription order.
func (l *Loop) On(k Kind, h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[k] = append(l.handlers[k], h)
}

// Post enqueues ev. Blocks while the queue is full.
func (l *Loop) Post(ev Event) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}

	select {
	case l.queue <- ev:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Run dispatches queued events until ctx is cancelled or Stop is called.
// Pending timers are cancelled on exit.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case ev := <-l.queue:
			l.dispatch(ctx, ev)
		}
	}
}

// Drain dispatches everything currently queued on the calling goroutine.
// Returns the number of events processed. Must not be used together with Run.
func (l *Loop) Drain(ctx context.Context) int {
	n := 0
	for {
		select {
		case ev := <-l.queue:
			l.dispatch(ctx, ev)
			n++
		default:
			return n
		}
	}
}

// Stop closes the loop and cancels pending timers. Safe to call multiple times.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)

		l.mu.Lock()
		timers := make([]*Timer, 0, len(l.timers))
		for t := range l.timers {
			timers = append(timers, t)
		}
		l.timers = make(map[*Timer]struct{})
		l.mu.Unlock()

		for _, t := range timers {
			t.stopper.Stop()
		}
	})
}

// Pending returns the number of queued, not yet dispatched events.
func (l *Loop) Pending() int {
	return len(l.queue)
}

// Sync blocks until every event posted before the call has been dispatched.
// Requires Run to be active on another goroutine.
func (l *Loop) Sync(ctx context.Context) error {
	done := make(chan struct{})
	if err := l.Post(Event{Kind: kindBarrier, Payload: done}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) dispatch(ctx context.Context, ev Event) {
	if ev.Kind == kindBarrier {
		close(ev.Payload.(chan struct{}))
		return
	}

	l.mu.Lock()
	handlers := l.handlers[ev.Kind]
	l.mu.Unlock()

	for _, h := range handlers {
		if err := h(ctx, ev); err != nil {
			slog.Error("event handler failed",
				"kind", ev.Kind,
				"error", err)
		}
	}
}
