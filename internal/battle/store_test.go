package battle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Parallel()
	s := NewStore()

	assert.False(t, s.InCombat())
	assert.Zero(t, s.EnemyCount())
	assert.Equal(t, Stats{}, s.Stats())
	assert.True(t, s.StartedAt().IsZero())
	assert.NotEqual(t, [16]byte{}, [16]byte(s.SessionID()))
}

func TestStore_Reset(t *testing.T) {
	t.Parallel()
	s := NewStore()
	prev := s.SessionID()

	s.SetInCombat(true)
	s.MarkStarted(time.Unix(100, 0))
	s.AddEnemy(1, "Bandit", 10)
	s.IncAttacksLanded()
	s.IncEnemiesDefeated()
	s.SetTimeInBattle("3 Seconds")

	snap := s.Reset()

	assert.False(t, snap.InCombat)
	assert.Empty(t, snap.Enemies)
	assert.Equal(t, Stats{}, snap.Stats)
	assert.True(t, snap.StartedAt.IsZero())
	assert.NotEqual(t, prev, snap.SessionID)
}

func TestStore_SetInCombat(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.AddEnemy(7, "Wolf", 4)
	s.IncAttacksTaken()

	snap := s.SetInCombat(true)

	assert.True(t, snap.InCombat)
	// остальные поля не трогаются
	assert.Len(t, snap.Enemies, 1)
	assert.Equal(t, 1, snap.Stats.AttacksTaken)
}

func TestStore_SetStats_PartialMerge(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.SetInCombat(true)
	s.AddEnemy(1, "Draugr", 12)

	landed := 5
	s.SetStats(StatsUpdate{AttacksLanded: &landed})
	taken := 2
	snap := s.SetStats(StatsUpdate{AttacksTaken: &taken})

	assert.Equal(t, Stats{AttacksLanded: 5, AttacksTaken: 2}, snap.Stats)
	assert.True(t, snap.InCombat)
	assert.Len(t, snap.Enemies, 1)
}

func TestStore_Counters(t *testing.T) {
	t.Parallel()
	s := NewStore()

	for range 3 {
		s.IncAttacksLanded()
	}
	s.IncAttacksTaken()
	s.IncEnemiesDefeated()
	snap := s.IncEnemiesDefeated()

	assert.Equal(t, 3, snap.Stats.AttacksLanded)
	assert.Equal(t, 1, snap.Stats.AttacksTaken)
	assert.Equal(t, 2, snap.Stats.EnemiesDefeated)
}

func TestStore_SetEnemy_MergePreservesFields(t *testing.T) {
	t.Parallel()
	s := NewStore()
	require.True(t, s.AddEnemy(42, "Bandit Chief", 18))

	hit := time.Unix(500, 0)
	got := s.SetEnemy(42, EnemyUpdate{LastValidHit: &hit})

	assert.Equal(t, Enemy{ID: 42, Name: "Bandit Chief", Level: 18, LastValidHit: hit}, got)
}

func TestStore_SetEnemy_Inserts(t *testing.T) {
	t.Parallel()
	s := NewStore()
	name := "Skeever"

	s.SetEnemy(3, EnemyUpdate{Name: &name})

	e, ok := s.Enemy(3)
	require.True(t, ok)
	assert.Equal(t, "Skeever", e.Name)
	assert.Zero(t, e.Level)
	assert.True(t, e.LastValidHit.IsZero())
}

func TestStore_AddEnemy_Idempotent(t *testing.T) {
	t.Parallel()
	s := NewStore()

	assert.False(t, s.HasEnemy(1))
	assert.True(t, s.AddEnemy(1, "Bandit", 10))
	assert.False(t, s.AddEnemy(1, "Renamed", 99))
	assert.True(t, s.HasEnemy(1))

	e, ok := s.Enemy(1)
	require.True(t, ok)
	assert.Equal(t, "Bandit", e.Name)
	assert.Equal(t, 10, e.Level)
	assert.Equal(t, 1, s.EnemyCount())
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.AddEnemy(1, "Bandit", 10)

	snap := s.Snapshot()
	snap.Enemies[1] = Enemy{ID: 1, Name: "Mutated"}
	delete(snap.Enemies, 1)

	e, ok := s.Enemy(1)
	require.True(t, ok)
	assert.Equal(t, "Bandit", e.Name)
}

func TestStore_EnemiesSorted(t *testing.T) {
	t.Parallel()
	s := NewStore()
	s.AddEnemy(30, "C", 1)
	s.AddEnemy(10, "A", 1)
	s.AddEnemy(20, "B", 1)

	got := s.Enemies()
	require.Len(t, got, 3)
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, []uint32{10, 20, 30}, s.Snapshot().EnemyIDs())
}

func TestStats_Entries(t *testing.T) {
	t.Parallel()
	st := Stats{TimeInBattle: "12 Seconds", AttacksLanded: 4, AttacksTaken: 3, EnemiesDefeated: 2}

	assert.Equal(t, []Entry{
		{Label: "Time In Battle", Value: "12 Seconds"},
		{Label: "Attacks Landed", Value: "4"},
		{Label: "Attacks Taken", Value: "3"},
		{Label: "Enemies Defeated", Value: "2"},
	}, st.Entries())
}
