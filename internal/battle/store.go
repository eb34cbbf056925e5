// Package battle holds the per-encounter session record: combat flag, tracked
// enemies and accumulated statistics, plus the difficulty rank heuristic.
//
// A Store is owned by exactly one event loop goroutine and performs no locking.
package battle

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Stat display labels, in summary order.
const (
	LabelTimeInBattle    = "Time In Battle"
	LabelAttacksLanded   = "Attacks Landed"
	LabelAttacksTaken    = "Attacks Taken"
	LabelEnemiesDefeated = "Enemies Defeated"
)

// Enemy is an actor that targeted the player during the current session.
type Enemy struct {
	ID    uint32
	Name  string
	Level int

	// LastValidHit is the time of the last counted player hit (zero = never).
	LastValidHit time.Time
}

// Stats is the fixed-shape statistics record of a session.
type Stats struct {
	TimeInBattle    string
	AttacksLanded   int
	AttacksTaken    int
	EnemiesDefeated int
}

// Entry is a labelled stat value, used to render summaries.
type Entry struct {
	Label string
	Value string
}

// Entries returns stats in display order.
func (s Stats) Entries() []Entry {
	return []Entry{
		{Label: LabelTimeInBattle, Value: s.TimeInBattle},
		{Label: LabelAttacksLanded, Value: strconv.Itoa(s.AttacksLanded)},
		{Label: LabelAttacksTaken, Value: strconv.Itoa(s.AttacksTaken)},
		{Label: LabelEnemiesDefeated, Value: strconv.Itoa(s.EnemiesDefeated)},
	}
}

// StatsUpdate is a partial stats record. Nil fields are left untouched.
type StatsUpdate struct {
	TimeInBattle    *string
	AttacksLanded   *int
	AttacksTaken    *int
	EnemiesDefeated *int
}

// EnemyUpdate is a partial enemy record. Nil fields are left untouched.
type EnemyUpdate struct {
	Name         *string
	Level        *int
	LastValidHit *time.Time
}

// Snapshot is an immutable copy of the store state.
type Snapshot struct {
	SessionID uuid.UUID
	InCombat  bool
	StartedAt time.Time
	Enemies   map[uint32]Enemy
	Stats     Stats
}

// Store is the battle session record.
type Store struct {
	sessionID uuid.UUID
	inCombat  bool
	startedAt time.Time
	enemies   map[uint32]*Enemy
	stats     Stats
}

// NewStore creates an initialized store.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset discards all session data and starts a new session.
func (s *Store) Reset() Snapshot {
	s.sessionID = uuid.New()
	s.inCombat = false
	s.startedAt = time.Time{}
	s.enemies = make(map[uint32]*Enemy, 8)
	s.stats = Stats{}
	return s.Snapshot()
}

// SessionID returns the identifier of the current session.
func (s *Store) SessionID() uuid.UUID { return s.sessionID }

// InCombat reports whether combat was observed during this session and has not ended yet.
func (s *Store) InCombat() bool { return s.inCombat }

// StartedAt returns the battle start time (zero when no battle started).
func (s *Store) StartedAt() time.Time { return s.startedAt }

// Stats returns a copy of the current stats.
func (s *Store) Stats() Stats { return s.stats }

// SetInCombat updates the combat flag.
func (s *Store) SetInCombat(inCombat bool) Snapshot {
	s.inCombat = inCombat
	return s.Snapshot()
}

// MarkStarted records the battle start time.
func (s *Store) MarkStarted(at time.Time) {
	s.startedAt = at
}

// SetStats merges non-nil fields of u into the stats record.
func (s *Store) SetStats(u StatsUpdate) Snapshot {
	if u.TimeInBattle != nil {
		s.stats.TimeInBattle = *u.TimeInBattle
	}
	if u.AttacksLanded != nil {
		s.stats.AttacksLanded = *u.AttacksLanded
	}
	if u.AttacksTaken != nil {
		s.stats.AttacksTaken = *u.AttacksTaken
	}
	if u.EnemiesDefeated != nil {
		s.stats.EnemiesDefeated = *u.EnemiesDefeated
	}
	return s.Snapshot()
}

// SetTimeInBattle sets the formatted battle duration.
func (s *Store) SetTimeInBattle(v string) Snapshot {
	return s.SetStats(StatsUpdate{TimeInBattle: &v})
}

// IncAttacksLanded increments the landed attacks counter.
func (s *Store) IncAttacksLanded() Snapshot {
	n := s.stats.AttacksLanded + 1
	return s.SetStats(StatsUpdate{AttacksLanded: &n})
}

// IncAttacksTaken increments the taken attacks counter.
func (s *Store) IncAttacksTaken() Snapshot {
	n := s.stats.AttacksTaken + 1
	return s.SetStats(StatsUpdate{AttacksTaken: &n})
}

// IncEnemiesDefeated increments the kill counter.
func (s *Store) IncEnemiesDefeated() Snapshot {
	n := s.stats.EnemiesDefeated + 1
	return s.SetStats(StatsUpdate{EnemiesDefeated: &n})
}

// SetEnemy inserts or merges an enemy record.
// Fields absent from u keep their current values.
func (s *Store) SetEnemy(id uint32, u EnemyUpdate) Enemy {
	e, ok := s.enemies[id]
	if !ok {
		e = &Enemy{ID: id}
		s.enemies[id] = e
	}
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Level != nil {
		e.Level = *u.Level
	}
	if u.LastValidHit != nil {
		e.LastValidHit = *u.LastValidHit
	}
	return *e
}

// AddEnemy tracks a new enemy. Returns false if id is already tracked.
func (s *Store) AddEnemy(id uint32, name string, level int) bool {
	if _, ok := s.enemies[id]; ok {
		return false
	}
	s.enemies[id] = &Enemy{ID: id, Name: name, Level: level}
	return true
}

// Enemy returns a copy of the tracked enemy.
func (s *Store) Enemy(id uint32) (Enemy, bool) {
	e, ok := s.enemies[id]
	if !ok {
		return Enemy{}, false
	}
	return *e, true
}

// HasEnemy reports whether id is tracked.
func (s *Store) HasEnemy(id uint32) bool {
	_, ok := s.enemies[id]
	return ok
}

// EnemyCount returns the number of tracked enemies.
func (s *Store) EnemyCount() int { return len(s.enemies) }

// Enemies returns copies of all tracked enemies ordered by id.
func (s *Store) Enemies() []Enemy {
	out := make([]Enemy, 0, len(s.enemies))
	for _, e := range s.enemies {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b Enemy) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Snapshot returns a deep copy of the store state.
func (s *Store) Snapshot() Snapshot {
	enemies := make(map[uint32]Enemy, len(s.enemies))
	for id, e := range s.enemies {
		enemies[id] = *e
	}
	return Snapshot{
		SessionID: s.sessionID,
		InCombat:  s.inCombat,
		StartedAt: s.startedAt,
		Enemies:   enemies,
		Stats:     s.stats,
	}
}

// EnemyIDs returns the sorted ids of tracked enemies in snapshot s.
func (s Snapshot) EnemyIDs() []uint32 {
	return slices.Sorted(maps.Keys(s.Enemies))
}
