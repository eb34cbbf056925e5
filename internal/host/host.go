// Package host defines what the tracker needs from the game engine: actor
// queries, the player handle and the two UI primitives.
package host

// Actor is a game actor as reported by the host.
type Actor interface {
	ID() uint32
	DisplayName() string
	Level() int
	IsDead() bool
	IsInCombat() bool
	// IsPlayerTeammate reports whether the actor fights on the player's side.
	IsPlayerTeammate() bool
}

// Game gives access to the current player.
type Game interface {
	// Player returns nil while no player is loaded.
	Player() Actor
}

// UI is the host's player-facing output.
type UI interface {
	// MessageBox shows a modal message.
	MessageBox(text string)
	// Notification shows a transient toast.
	Notification(text string)
}

// CombatStateEvent is emitted when an actor's combat target changes.
type CombatStateEvent struct {
	Actor  Actor
	Target Actor
}

// DeathEvent is emitted when an actor starts dying.
type DeathEvent struct {
	Dying  Actor
	Killer Actor
}

// HitEvent is emitted for every hit, including sub-hits of one attack animation.
type HitEvent struct {
	Aggressor Actor
	Target    Actor
}

// SameActor reports whether a and b refer to the same actor by identifier.
func SameActor(a, b Actor) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}

// NameOf returns the display name of a, or "" for nil.
func NameOf(a Actor) string {
	if a == nil {
		return ""
	}
	return a.DisplayName()
}
