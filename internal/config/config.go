package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/battlestats/internal/battle"
)

// Kill attribution modes.
const (
	// KillAttributionName matches the killer to the player by display name.
	// Two actors sharing the player's name are conflated.
	KillAttributionName = "name"
	// KillAttributionID matches the killer to the player by actor identifier.
	KillAttributionID = "id"
)

// Tracker holds all configuration for the battle stats tracker.
type Tracker struct {
	LogLevel string `yaml:"log_level"`

	// Event loop
	QueueSize int `yaml:"queue_size"`

	// Combat
	SettleDelay     time.Duration `yaml:"settle_delay"`    // wait before the end-of-battle summary
	HitDebounce     time.Duration `yaml:"hit_debounce"`    // min interval between counted hits per enemy
	KillAttribution string        `yaml:"kill_attribution"` // "name" or "id"

	// Difficulty heuristic
	Difficulty DifficultyConfig `yaml:"difficulty"`

	// Summary
	Summary SummaryConfig `yaml:"summary"`
}

// DifficultyConfig holds difficulty rank parameters.
type DifficultyConfig struct {
	PlayerLevelFactor float64 `yaml:"player_level_factor"`
	EnemyCountFactor  float64 `yaml:"enemy_count_factor"`
	MinEnemyRank      int     `yaml:"min_enemy_rank"`
}

// RankOptions converts the config into battle.RankOptions.
func (d DifficultyConfig) RankOptions() battle.RankOptions {
	return battle.RankOptions{
		PlayerLevelFactor: d.PlayerLevelFactor,
		EnemyCountFactor:  d.EnemyCountFactor,
		MinEnemyRank:      d.MinEnemyRank,
	}
}

// SummaryConfig holds player-facing texts.
type SummaryConfig struct {
	VictoryTitle  string `yaml:"victory_title"`
	DefeatTitle   string `yaml:"defeat_title"`
	CombatStarted string `yaml:"combat_started"`
	CombatEnded   string `yaml:"combat_ended"`
	ShowEnemies   bool   `yaml:"show_enemies"` // append "RIP:" roster line
}

// DefaultTracker returns Tracker config with stock values.
func DefaultTracker() Tracker {
	rank := battle.DefaultRankOptions()
	return Tracker{
		LogLevel:        "info",
		QueueSize:       256,
		SettleDelay:     2 * time.Second,
		HitDebounce:     500 * time.Millisecond,
		KillAttribution: KillAttributionName,
		Difficulty: DifficultyConfig{
			PlayerLevelFactor: rank.PlayerLevelFactor,
			EnemyCountFactor:  rank.EnemyCountFactor,
			MinEnemyRank:      rank.MinEnemyRank,
		},
		Summary: SummaryConfig{
			VictoryTitle:  "Smokin Sick Style!",
			DefeatTitle:   "The Battle was lost",
			CombatStarted: "We are in combat!",
			CombatEnded:   "Combat has Ended",
		},
	}
}

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values that would break the tracker.
func (c Tracker) Validate() error {
	if c.SettleDelay < 0 {
		return fmt.Errorf("%w: settle_delay must not be negative", ErrInvalidConfig)
	}
	if c.HitDebounce < 0 {
		return fmt.Errorf("%w: hit_debounce must not be negative", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	switch c.KillAttribution {
	case KillAttributionName, KillAttributionID:
	default:
		return fmt.Errorf("%w: kill_attribution %q", ErrInvalidConfig, c.KillAttribution)
	}
	return nil
}

// LoadTracker loads tracker config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadTracker(path string) (Tracker, error) {
	cfg := DefaultTracker()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
