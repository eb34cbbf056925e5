package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI.
const (
	EnvConfigPath = "BATTLESTATS_CONFIG"
	EnvLogLevel   = "BATTLESTATS_LOG_LEVEL"
)

// DefaultConfigPath is used when EnvConfigPath is unset.
const DefaultConfigPath = "config/battlestats.yaml"

// LoadEnvFiles loads variables from the given env files (".env" when none given).
// Missing files are skipped; variables already set in the process win.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading env file %s: %w", f, err)
		}
	}
	return nil
}

// ConfigPath returns the config path from the environment or the default.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

// ApplyEnv overrides config values from the environment.
func ApplyEnv(cfg *Tracker) {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
}
