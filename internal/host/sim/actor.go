// Package sim is an in-memory game host: actors, a virtual clock, console UI
// and a YAML scenario replayer driving the tracker through the event loop.
package sim

import (
	"sync"

	"github.com/udisondev/battlestats/internal/host"
)

// Actor is a mutable in-memory actor. Safe for concurrent use.
type Actor struct {
	id uint32

	mu       sync.RWMutex
	name     string
	level    int
	dead     bool
	inCombat bool
	teammate bool
}

var _ host.Actor = (*Actor)(nil)

// NewActor creates a living, idle actor.
func NewActor(id uint32, name string, level int) *Actor {
	return &Actor{id: id, name: name, level: level}
}

// ID returns the actor identifier (immutable).
func (a *Actor) ID() uint32 { return a.id }

// DisplayName returns the actor's display name.
func (a *Actor) DisplayName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.name
}

// Level returns the actor's level.
func (a *Actor) Level() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.level
}

// IsDead reports whether the actor is dead.
func (a *Actor) IsDead() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dead
}

// IsInCombat reports the actor's live combat flag.
func (a *Actor) IsInCombat() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inCombat
}

// IsPlayerTeammate reports whether the actor is allied with the player.
func (a *Actor) IsPlayerTeammate() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.teammate
}

// SetDead marks the actor dead or alive. Dead actors leave combat.
func (a *Actor) SetDead(dead bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dead = dead
	if dead {
		a.inCombat = false
	}
}

// SetInCombat sets the live combat flag.
func (a *Actor) SetInCombat(inCombat bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inCombat = inCombat
}

// SetTeammate marks the actor as a player ally.
func (a *Actor) SetTeammate(teammate bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.teammate = teammate
}
