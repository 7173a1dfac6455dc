package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the environment. They seed the CLI flag
// defaults, so an explicit flag still wins.
type Env struct {
	ConfigPath string `env:"KEYMASH_CONFIG"`
	DBPath     string `env:"KEYMASH_DB"         envDefault:"~/.keymash/results.db"`
	Difficulty string `env:"KEYMASH_DIFFICULTY"`
	LogPath    string `env:"KEYMASH_LOG"`
	FPS        int    `env:"KEYMASH_FPS"        envDefault:"60"`
	Seed       int64  `env:"KEYMASH_SEED"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
