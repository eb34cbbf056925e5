// Package tracker implements the battle statistics controller: it reacts to
// host combat, death and hit events, accumulates stats in a battle.Store and
// shows a summary once combat ends.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/battlestats/internal/battle"
	"github.com/udisondev/battlestats/internal/config"
	"github.com/udisondev/battlestats/internal/events"
	"github.com/udisondev/battlestats/internal/host"
)

// ErrUnexpectedPayload is returned by event adapters for mismatched payload types.
var ErrUnexpectedPayload = errors.New("unexpected event payload")

// NotifyEvent is the payload of the internal post-battle step.
// Duration and EndedAt describe the battle that just ended.
type NotifyEvent struct {
	Session  string
	Duration time.Duration
	EndedAt  time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// Tracker is the battle stats controller.
// All methods must be called from the event loop goroutine.
type Tracker struct {
	store *battle.Store
	game  host.Game
	ui    host.UI
	loop  *events.Loop
	cfg   config.Tracker
	rank  battle.RankOptions
	now   func() time.Time
}

// New creates a tracker bound to the given store and host.
func New(store *battle.Store, game host.Game, ui host.UI, loop *events.Loop, cfg config.Tracker, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		game:  game,
		ui:    ui,
		loop:  loop,
		cfg:   cfg,
		rank:  cfg.Difficulty.RankOptions(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register subscribes the tracker to all four event streams.
func (t *Tracker) Register() {
	t.loop.On(events.KindCombatState, func(ctx context.Context, ev events.Event) error {
		e, ok := ev.Payload.(host.CombatStateEvent)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrUnexpectedPayload, ev.Payload, ev.Kind)
		}
		t.HandleCombatState(ctx, e)
		return nil
	})
	t.loop.On(events.KindDeath, func(ctx context.Context, ev events.Event) error {
		e, ok := ev.Payload.(host.DeathEvent)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrUnexpectedPayload, ev.Payload, ev.Kind)
		}
		t.HandleDeath(ctx, e)
		return nil
	})
	t.loop.On(events.KindHit, func(ctx context.Context, ev events.Event) error {
		e, ok := ev.Payload.(host.HitEvent)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrUnexpectedPayload, ev.Payload, ev.Kind)
		}
		t.HandleHit(ctx, e)
		return nil
	})
	t.loop.On(events.KindNotify, func(ctx context.Context, ev events.Event) error {
		e, ok := ev.Payload.(NotifyEvent)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrUnexpectedPayload, ev.Payload, ev.Kind)
		}
		t.HandleNotify(ctx, e)
		return nil
	})

	slog.Info("battle stats loaded",
		"settle_delay", t.cfg.SettleDelay,
		"hit_debounce", t.cfg.HitDebounce,
		"kill_attribution", t.cfg.KillAttribution)
}

// HandleCombatState drives the Idle/InCombat state machine and registers
// actors that target the player as enemies.
func (t *Tracker) HandleCombatState(_ context.Context, e host.CombatStateEvent) {
	slog.Debug("combat state change", "actor", host.NameOf(e.Actor))

	player := t.game.Player()
	if player == nil {
		return
	}

	if !player.IsInCombat() {
		t.endCombat()
		return
	}

	if !t.store.InCombat() {
		t.ui.Notification(t.cfg.Summary.CombatStarted)
		t.store.MarkStarted(t.now())
		t.store.SetInCombat(true)
		slog.Info("combat started", "session", t.store.SessionID())
	}

	if !host.SameActor(e.Target, player) || e.Actor == nil {
		return
	}

	if t.store.AddEnemy(e.Actor.ID(), e.Actor.DisplayName(), e.Actor.Level()) {
		slog.Debug("enemy tracked",
			"session", t.store.SessionID(),
			"enemy", e.Actor.DisplayName(),
			"id", e.Actor.ID(),
			"level", e.Actor.Level())
	}
}

// endCombat handles the InCombat→Idle transition. No-op when combat was never observed.
func (t *Tracker) endCombat() {
	if !t.store.InCombat() {
		return
	}

	elapsed := t.now().Sub(t.store.StartedAt())
	t.store.SetTimeInBattle(FormatSeconds(elapsed))
	t.store.SetInCombat(false)

	slog.Info("combat ended",
		"session", t.store.SessionID(),
		"duration", elapsed,
		"enemies", t.store.EnemyCount())

	t.loop.After(t.cfg.SettleDelay, events.Event{
		Kind: events.KindNotify,
		Payload: NotifyEvent{
			Session:  t.store.SessionID().String(),
			Duration: elapsed,
			EndedAt:  t.now(),
		},
	})
}

// HandleNotify shows the end-of-battle summary and resets the store.
func (t *Tracker) HandleNotify(_ context.Context, e NotifyEvent) {
	t.ui.Notification(t.cfg.Summary.CombatEnded)

	if player := t.game.Player(); player != nil {
		t.ui.MessageBox(t.Summary(player))
	}

	slog.Info("battle summary shown",
		"session", e.Session,
		"duration", e.Duration,
		"ended_at", e.EndedAt,
		"settled_after", t.now().Sub(e.EndedAt),
		"stats", t.store.Stats())

	t.store.Reset()
}

// HandleDeath counts kills made by the player or a player teammate.
func (t *Tracker) HandleDeath(_ context.Context, e host.DeathEvent) {
	player := t.game.Player()
	if player == nil {
		return
	}

	msg := fmt.Sprintf("%s was killed by %s", host.NameOf(e.Dying), host.NameOf(e.Killer))
	slog.Debug(msg)

	if e.Killer == nil {
		return
	}
	if !t.isPlayer(e.Killer, player) && !e.Killer.IsPlayerTeammate() {
		return
	}

	t.ui.Notification(msg)
	snap := t.store.IncEnemiesDefeated()
	slog.Info("kill counted",
		"session", snap.SessionID,
		"dying", host.NameOf(e.Dying),
		"killer", e.Killer.DisplayName(),
		"total", snap.Stats.EnemiesDefeated)
}

// HandleHit counts landed attacks on tracked enemies (debounced per enemy)
// and every attack taken by the player.
func (t *Tracker) HandleHit(_ context.Context, e host.HitEvent) {
	player := t.game.Player()
	if player == nil || !player.IsInCombat() {
		return
	}
	if e.Aggressor == nil || e.Target == nil {
		return
	}

	if host.SameActor(e.Aggressor, player) && !e.Target.IsDead() && t.store.HasEnemy(e.Target.ID()) {
		slog.Debug("hit landed",
			"player", player.DisplayName(),
			"target", e.Target.DisplayName(),
			"id", e.Target.ID())
		t.landHit(e.Target.ID())
	}

	if host.SameActor(e.Target, player) {
		t.store.IncAttacksTaken()
	}
}

func (t *Tracker) landHit(id uint32) {
	enemy, _ := t.store.Enemy(id)
	now := t.now()
	if !enemy.LastValidHit.IsZero() && enemy.LastValidHit.Add(t.cfg.HitDebounce).After(now) {
		return
	}
	t.store.SetEnemy(id, battle.EnemyUpdate{LastValidHit: &now})

	snap := t.store.IncAttacksLanded()
	slog.Debug("total hits so far", "landed", snap.Stats.AttacksLanded)
}

func (t *Tracker) isPlayer(a, player host.Actor) bool {
	if t.cfg.KillAttribution == config.KillAttributionID {
		return host.SameActor(a, player)
	}
	return a.DisplayName() == player.DisplayName()
}

// FormatSeconds renders d as whole elapsed seconds, e.g. "12 Seconds".
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%d Seconds", int64(d/time.Second))
}
