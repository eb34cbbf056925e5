package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/battlestats/internal/events"
	"github.com/udisondev/battlestats/internal/host"
)

// settlePoll is the step used while waiting for pending timers after the last step.
const settlePoll = 100 * time.Millisecond

// Timeline advances scenario time.
type Timeline interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// VirtualTimeline advances a Clock instantly.
type VirtualTimeline struct {
	Clock *Clock
}

// Sleep advances the clock by d.
func (v VirtualTimeline) Sleep(_ context.Context, d time.Duration) error {
	v.Clock.Advance(d)
	return nil
}

// RealTimeline sleeps on the wall clock.
type RealTimeline struct{}

// Sleep blocks for d or until ctx is done.
func (RealTimeline) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Replayer feeds scenario steps into the event loop.
// Each step is fully dispatched before the next one mutates the world.
type Replayer struct {
	loop     *events.Loop
	world    *World
	timeline Timeline
}

// NewReplayer creates a replayer. The loop must be running (Run) while Replay executes.
func NewReplayer(loop *events.Loop, world *World, timeline Timeline) *Replayer {
	return &Replayer{loop: loop, world: world, timeline: timeline}
}

// Replay executes all steps, then waits until pending delayed events fire.
func (r *Replayer) Replay(ctx context.Context, sc *Scenario) error {
	slog.Info("replaying scenario",
		"name", sc.Name,
		"steps", len(sc.Steps))

	for i, st := range sc.Steps {
		if err := r.step(ctx, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Type, err)
		}
		if err := r.loop.Sync(ctx); err != nil {
			return fmt.Errorf("step %d (%s): syncing loop: %w", i, st.Type, err)
		}
	}

	for r.loop.ActiveTimers() > 0 {
		if err := r.timeline.Sleep(ctx, settlePoll); err != nil {
			return err
		}
		if err := r.loop.Sync(ctx); err != nil {
			return fmt.Errorf("settling: %w", err)
		}
	}

	slog.Info("scenario finished", "name", sc.Name)
	return nil
}

func (r *Replayer) step(ctx context.Context, st Step) error {
	switch st.Type {
	case StepWait:
		return r.timeline.Sleep(ctx, st.Wait)

	case StepCombat:
		actor, target, err := r.pair(st)
		if err != nil {
			return err
		}
		actor.SetInCombat(true)
		if p := r.world.PlayerActor(); p != nil && p.ID() == target.ID() {
			p.SetInCombat(true)
		}
		return r.loop.Post(events.Event{
			Kind:    events.KindCombatState,
			Payload: host.CombatStateEvent{Actor: actor, Target: target},
		})

	case StepLeaveCombat:
		actor, err := r.actorOrPlayer(st.Actor)
		if err != nil {
			return err
		}
		actor.SetInCombat(false)
		return r.loop.Post(events.Event{
			Kind:    events.KindCombatState,
			Payload: host.CombatStateEvent{Actor: actor},
		})

	case StepHit:
		actor, target, err := r.pair(st)
		if err != nil {
			return err
		}
		n := max(st.Repeat, 1)
		for range n {
			if err := r.loop.Post(events.Event{
				Kind:    events.KindHit,
				Payload: host.HitEvent{Aggressor: actor, Target: target},
			}); err != nil {
				return err
			}
		}
		return nil

	case StepDeath:
		target, err := r.world.Lookup(st.Target)
		if err != nil {
			return err
		}
		ev := host.DeathEvent{Dying: target}
		if st.Actor != "" {
			killer, err := r.world.Lookup(st.Actor)
			if err != nil {
				return err
			}
			ev.Killer = killer
		}
		target.SetDead(true)
		return r.loop.Post(events.Event{Kind: events.KindDeath, Payload: ev})

	default:
		return fmt.Errorf("%w: %q", ErrUnknownStep, st.Type)
	}
}

func (r *Replayer) pair(st Step) (*Actor, *Actor, error) {
	actor, err := r.world.Lookup(st.Actor)
	if err != nil {
		return nil, nil, err
	}
	target, err := r.world.Lookup(st.Target)
	if err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}

func (r *Replayer) actorOrPlayer(key string) (*Actor, error) {
	if key != "" {
		return r.world.Lookup(key)
	}
	p := r.world.PlayerActor()
	if p == nil {
		return nil, fmt.Errorf("%w: player", ErrUnknownActor)
	}
	return p, nil
}
