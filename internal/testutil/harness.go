package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/udisondev/battlestats/internal/battle"
	"github.com/udisondev/battlestats/internal/config"
	"github.com/udisondev/battlestats/internal/events"
	"github.com/udisondev/battlestats/internal/host"
	"github.com/udisondev/battlestats/internal/host/sim"
	"github.com/udisondev/battlestats/internal/tracker"
)

// PlayerID is the object id of the harness player.
const PlayerID uint32 = 0x14

// Epoch is the virtual clock start.
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Harness wires a tracker to an in-memory host with a virtual clock.
// Events are dispatched synchronously via Loop.Drain.
type Harness struct {
	Clock   *sim.Clock
	World   *sim.World
	UI      *sim.RecordingUI
	Loop    *events.Loop
	Store   *battle.Store
	Tracker *tracker.Tracker
	Player  *sim.Actor
}

// NewHarness creates a harness with a level-10 player named "Dragonborn".
func NewHarness(tb testing.TB, cfg config.Tracker) *Harness {
	tb.Helper()

	h := &Harness{
		Clock: sim.NewClock(Epoch),
		World: sim.NewWorld(),
		UI:    &sim.RecordingUI{},
		Store: battle.NewStore(),
	}
	h.Loop = events.NewLoop(events.WithAfterFunc(h.Clock.AfterFunc))
	h.Player = sim.NewActor(PlayerID, "Dragonborn", 10)
	if err := h.World.SetPlayer("player", h.Player); err != nil {
		tb.Fatalf("adding player: %v", err)
	}

	h.Tracker = tracker.New(h.Store, h.World, h.UI, h.Loop, cfg, tracker.WithClock(h.Clock.Now))
	h.Tracker.Register()
	tb.Cleanup(h.Loop.Stop)
	return h
}

// AddActor registers a non-player actor keyed by its name.
func (h *Harness) AddActor(tb testing.TB, id uint32, name string, level int) *sim.Actor {
	tb.Helper()
	a := sim.NewActor(id, name, level)
	if err := h.World.Add(name, a); err != nil {
		tb.Fatalf("adding actor %s: %v", name, err)
	}
	return a
}

// Post enqueues an event and dispatches the queue.
func (h *Harness) Post(tb testing.TB, kind events.Kind, payload any) {
	tb.Helper()
	if err := h.Loop.Post(events.Event{Kind: kind, Payload: payload}); err != nil {
		tb.Fatalf("posting %s: %v", kind, err)
	}
	h.Loop.Drain(context.Background())
}

// Engage puts the player in combat and reports enemy targeting the player.
func (h *Harness) Engage(tb testing.TB, enemy *sim.Actor) {
	tb.Helper()
	h.Player.SetInCombat(true)
	enemy.SetInCombat(true)
	h.Post(tb, events.KindCombatState, host.CombatStateEvent{Actor: enemy, Target: h.Player})
}

// Disengage drops the player out of combat.
func (h *Harness) Disengage(tb testing.TB) {
	tb.Helper()
	h.Player.SetInCombat(false)
	h.Post(tb, events.KindCombatState, host.CombatStateEvent{Actor: h.Player})
}

// Hit reports aggressor hitting target.
func (h *Harness) Hit(tb testing.TB, aggressor, target host.Actor) {
	tb.Helper()
	h.Post(tb, events.KindHit, host.HitEvent{Aggressor: aggressor, Target: target})
}

// Advance moves virtual time and dispatches whatever timers posted.
func (h *Harness) Advance(d time.Duration) {
	h.Clock.Advance(d)
	h.Loop.Drain(context.Background())
}
