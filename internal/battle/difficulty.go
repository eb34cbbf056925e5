package battle

import "math"

// Difficulty is the label derived from a difficulty rank.
type Difficulty string

const (
	DifficultyVeryEasy Difficulty = "Very Easy"
	DifficultyEasy     Difficulty = "Easy"
	DifficultyNormal   Difficulty = "Normal"
	DifficultyHard     Difficulty = "Hard"
	DifficultyVeryHard Difficulty = "Very Hard"
)

// RankOptions tunes the difficulty heuristic.
type RankOptions struct {
	// PlayerLevelFactor is multiplied by player level and floored (default 0.2).
	PlayerLevelFactor float64
	// EnemyCountFactor is multiplied by enemy count and floored (default 0.34).
	EnemyCountFactor float64
	// MinEnemyRank excludes enemies whose rank is strictly below it (default -10).
	MinEnemyRank int
}

// DefaultRankOptions returns the stock heuristic parameters.
func DefaultRankOptions() RankOptions {
	return RankOptions{
		PlayerLevelFactor: 0.2,
		EnemyCountFactor:  0.34,
		MinEnemyRank:      -10,
	}
}

// EnemyRank computes the rank of a single enemy within a group of enemyCount.
func EnemyRank(enemyLevel, enemyCount, playerLevel int, opts RankOptions) int {
	levelFactor := int(math.Floor(float64(playerLevel) * opts.PlayerLevelFactor))
	groupFactor := int(math.Floor(float64(enemyCount) * opts.EnemyCountFactor))
	return enemyLevel + groupFactor - playerLevel + levelFactor
}

// DifficultyRank sums enemy ranks for the encounter.
// Enemies ranked below opts.MinEnemyRank are negligible and skipped.
func DifficultyRank(enemies []Enemy, playerLevel int, opts RankOptions) int {
	if len(enemies) == 0 {
		return 0
	}

	rank := 0
	for _, e := range enemies {
		r := EnemyRank(e.Level, len(enemies), playerLevel, opts)
		if r < opts.MinEnemyRank {
			continue
		}
		rank += r
	}
	return rank
}

// DifficultyLabel maps a rank onto a label relative to player level.
func DifficultyLabel(rank, playerLevel int) Difficulty {
	r := float64(rank)
	lvl := float64(playerLevel)

	switch {
	case r > lvl:
		return DifficultyVeryHard
	case r > lvl*0.75:
		return DifficultyHard
	case r > lvl*0.5:
		return DifficultyNormal
	case r > lvl*0.25:
		return DifficultyEasy
	default:
		return DifficultyVeryEasy
	}
}
