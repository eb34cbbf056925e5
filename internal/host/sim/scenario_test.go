package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ambushYAML = `
name: bandit ambush
player: {key: player, id: 20, name: Dragonborn, level: 10}
actors:
  - {key: bandit, id: 100, name: Bandit, level: 10}
  - {key: archer, id: 101, name: Bandit Archer, level: 12}
  - {key: lydia, id: 30, name: Lydia, level: 15, teammate: true}
steps:
  - {type: combat, actor: bandit, target: player}
  - {type: combat, actor: archer, target: player}
  - {type: hit, actor: player, target: bandit, repeat: 3}
  - {type: wait, wait: 600ms}
  - {type: hit, actor: player, target: bandit}
  - {type: hit, actor: archer, target: player}
  - {type: death, actor: player, target: bandit}
  - {type: death, actor: lydia, target: archer}
  - {type: wait, wait: 5s}
  - {type: leave_combat}
`

func TestParseScenario(t *testing.T) {
	t.Parallel()
	sc, err := ParseScenario([]byte(ambushYAML))
	require.NoError(t, err)

	assert.Equal(t, "bandit ambush", sc.Name)
	assert.Equal(t, "Dragonborn", sc.Player.Name)
	require.Len(t, sc.Actors, 3)
	assert.True(t, sc.Actors[2].Teammate)
	require.Len(t, sc.Steps, 10)
	assert.Equal(t, 3, sc.Steps[2].Repeat)
	assert.Equal(t, 600*time.Millisecond, sc.Steps[3].Wait)
	assert.Equal(t, StepLeaveCombat, sc.Steps[9].Type)
}

func TestParseScenario_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name: "missing player",
			yaml: `steps: []`,
		},
		{
			name: "unknown step",
			yaml: `
player: {key: p, id: 1, name: P, level: 1}
steps: [{type: dance}]`,
			wantErr: ErrUnknownStep,
		},
		{
			name: "unknown actor",
			yaml: `
player: {key: p, id: 1, name: P, level: 1}
steps: [{type: hit, actor: p, target: ghost}]`,
			wantErr: ErrUnknownActor,
		},
		{
			name: "duplicate key",
			yaml: `
player: {key: p, id: 1, name: P, level: 1}
actors: [{key: p, id: 2, name: Q, level: 1}]`,
		},
		{
			name: "hit without target",
			yaml: `
player: {key: p, id: 1, name: P, level: 1}
steps: [{type: hit, actor: p}]`,
		},
		{
			name: "zero wait",
			yaml: `
player: {key: p, id: 1, name: P, level: 1}
steps: [{type: wait}]`,
		},
		{
			name: "malformed",
			yaml: `player: [`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestScenario_Populate(t *testing.T) {
	t.Parallel()
	sc, err := ParseScenario([]byte(ambushYAML))
	require.NoError(t, err)

	w := NewWorld()
	require.NoError(t, sc.Populate(w))

	assert.Equal(t, 4, w.Len())
	p := w.Player()
	require.NotNil(t, p)
	assert.Equal(t, uint32(20), p.ID())

	lydia, err := w.Lookup("lydia")
	require.NoError(t, err)
	assert.True(t, lydia.IsPlayerTeammate())

	_, err = w.Lookup("nobody")
	assert.ErrorIs(t, err, ErrUnknownActor)
}

func TestWorld_NoPlayer(t *testing.T) {
	t.Parallel()
	w := NewWorld()

	assert.Nil(t, w.Player())
	assert.Nil(t, w.PlayerActor())
}

func TestWorld_DuplicateID(t *testing.T) {
	t.Parallel()
	w := NewWorld()
	require.NoError(t, w.Add("a", NewActor(1, "A", 1)))

	assert.Error(t, w.Add("b", NewActor(1, "B", 1)))
	assert.Error(t, w.Add("a", NewActor(2, "A2", 1)))
}

func TestActor_SetDeadLeavesCombat(t *testing.T) {
	t.Parallel()
	a := NewActor(1, "Bandit", 5)
	a.SetInCombat(true)

	a.SetDead(true)

	assert.True(t, a.IsDead())
	assert.False(t, a.IsInCombat())
}

func TestClock_Advance(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClock(start)

	var fired []string
	c.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	stopped := c.AfterFunc(time.Second, func() { fired = append(fired, "x") })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())
	assert.Equal(t, 2, c.Pending())

	assert.Equal(t, 1, c.Advance(time.Second))
	assert.Equal(t, start.Add(time.Second), c.Now())
	assert.Equal(t, 1, c.Advance(5*time.Second))
	assert.Zero(t, c.Advance(time.Hour))

	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Zero(t, c.Pending())
}
