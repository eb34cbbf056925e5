package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/udisondev/battlestats/internal/host"
)

// ErrUnknownActor is returned when an actor reference cannot be resolved.
var ErrUnknownActor = errors.New("unknown actor")

// World is an in-memory actor registry implementing host.Game.
type World struct {
	mu        sync.RWMutex
	actors    map[uint32]*Actor
	byKey     map[string]*Actor
	playerID  uint32
	hasPlayer bool
}

var _ host.Game = (*World)(nil)

// NewWorld creates an empty world without a player.
func NewWorld() *World {
	return &World{
		actors: make(map[uint32]*Actor, 16),
		byKey:  make(map[string]*Actor, 16),
	}
}

// Add registers an actor under key (scenario reference).
func (w *World) Add(key string, a *Actor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.byKey[key]; exists {
		return fmt.Errorf("actor key %q already registered", key)
	}
	if _, exists := w.actors[a.ID()]; exists {
		return fmt.Errorf("actor id %d already registered", a.ID())
	}
	w.actors[a.ID()] = a
	w.byKey[key] = a
	return nil
}

// SetPlayer registers a as the player.
func (w *World) SetPlayer(key string, a *Actor) error {
	if err := w.Add(key, a); err != nil {
		return err
	}
	w.mu.Lock()
	w.playerID = a.ID()
	w.hasPlayer = true
	w.mu.Unlock()
	return nil
}

// Player implements host.Game. Returns nil when no player is registered.
func (w *World) Player() host.Actor {
	p := w.PlayerActor()
	if p == nil {
		return nil
	}
	return p
}

// PlayerActor returns the concrete player actor or nil.
func (w *World) PlayerActor() *Actor {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.hasPlayer {
		return nil
	}
	return w.actors[w.playerID]
}

// Lookup resolves an actor by scenario key.
func (w *World) Lookup(key string) (*Actor, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	a, ok := w.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActor, key)
	}
	return a, nil
}

// Len returns the number of registered actors.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.actors)
}
