package tracker

import (
	"fmt"
	"strings"

	"github.com/udisondev/battlestats/internal/battle"
	"github.com/udisondev/battlestats/internal/host"
)

// Difficulty returns the rank and label of the current encounter for player.
func (t *Tracker) Difficulty(player host.Actor) (int, battle.Difficulty) {
	if player == nil {
		return 0, battle.DifficultyVeryEasy
	}
	rank := battle.DifficultyRank(t.store.Enemies(), player.Level(), t.rank)
	return rank, battle.DifficultyLabel(rank, player.Level())
}

// Summary renders the end-of-battle message box text.
func (t *Tracker) Summary(player host.Actor) string {
	var b strings.Builder

	title := t.cfg.Summary.VictoryTitle
	if player.IsDead() {
		title = t.cfg.Summary.DefeatTitle
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	for _, e := range t.store.Stats().Entries() {
		fmt.Fprintf(&b, " %s: %s\n", e.Label, e.Value)
	}

	rank, label := t.Difficulty(player)
	fmt.Fprintf(&b, "\n Difficulty: %s (%d)", label, rank)

	if t.cfg.Summary.ShowEnemies && t.store.EnemyCount() > 0 {
		enemies := t.store.Enemies()
		names := make([]string, 0, len(enemies))
		for _, e := range enemies {
			names = append(names, fmt.Sprintf("%s(%d)", e.Name, e.Level))
		}
		fmt.Fprintf(&b, "\n\n RIP: %s", strings.Join(names, ", "))
	}

	return b.String()
}
