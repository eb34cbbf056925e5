package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyRank(t *testing.T) {
	t.Parallel()
	opts := DefaultRankOptions()

	tests := []struct {
		name        string
		levels      []int
		playerLevel int
		want        int
	}{
		{
			name:        "no enemies",
			levels:      nil,
			playerLevel: 10,
			want:        0,
		},
		{
			// level + floor(2*0.34) - 10 + floor(10*0.2) = level - 8
			name:        "two enemies around player level",
			levels:      []int{10, 12},
			playerLevel: 10,
			want:        6,
		},
		{
			// floor(3*0.34) = 1, floor(20*0.2) = 4 → level - 15
			name:        "group factor kicks in at three",
			levels:      []int{20, 20, 20},
			playerLevel: 20,
			want:        15,
		},
		{
			// 1 + 0 - 30 + 6 = -23 excluded; 30 - 24 = 6
			name:        "negligible enemy excluded",
			levels:      []int{1, 30},
			playerLevel: 30,
			want:        6,
		},
		{
			// 5 + 0 - 20 + 4 = -11 excluded, 6 - 16 = -10 kept
			name:        "threshold is exclusive",
			levels:      []int{5, 6},
			playerLevel: 20,
			want:        -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enemies := make([]Enemy, 0, len(tt.levels))
			for i, lvl := range tt.levels {
				enemies = append(enemies, Enemy{ID: uint32(i + 1), Level: lvl})
			}
			assert.Equal(t, tt.want, DifficultyRank(enemies, tt.playerLevel, opts))
		})
	}
}

func TestEnemyRank(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2, EnemyRank(10, 2, 10, DefaultRankOptions()))
	assert.Equal(t, 4, EnemyRank(12, 2, 10, DefaultRankOptions()))
}

func TestDifficultyLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rank        int
		playerLevel int
		want        Difficulty
	}{
		{rank: 11, playerLevel: 10, want: DifficultyVeryHard},
		{rank: 10, playerLevel: 10, want: DifficultyHard},
		{rank: 8, playerLevel: 10, want: DifficultyHard},
		{rank: 6, playerLevel: 10, want: DifficultyNormal},
		{rank: 5, playerLevel: 10, want: DifficultyEasy},
		{rank: 3, playerLevel: 10, want: DifficultyEasy},
		{rank: 2, playerLevel: 10, want: DifficultyVeryEasy},
		{rank: 0, playerLevel: 10, want: DifficultyVeryEasy},
		{rank: -5, playerLevel: 10, want: DifficultyVeryEasy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DifficultyLabel(tt.rank, tt.playerLevel), "rank=%d level=%d", tt.rank, tt.playerLevel)
	}
}
