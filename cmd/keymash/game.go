package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/keymash/internal/config"
	"github.com/vovakirdan/keymash/internal/input"
	"github.com/vovakirdan/keymash/internal/round"
	"github.com/vovakirdan/keymash/internal/session"
)

// loadConfig loads the round catalog and applies the difficulty preset.
func loadConfig() (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// newCatalog validates the configured rounds.
func newCatalog(cfg config.Config) (*round.Catalog, error) {
	defs, err := round.DefinitionsFromConfig(cfg.Rounds)
	if err != nil {
		return nil, err
	}
	return round.NewCatalog(defs)
}

// newSession wires the input gate, orchestrator and controller for one
// program run.
func newSession(cfg config.Config, seed int64, logger *log.Logger) (*session.Controller, error) {
	catalog, err := newCatalog(cfg)
	if err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("session seed", "seed", seed)

	gate := input.NewGate()
	orch, err := round.NewOrchestrator(gate, catalog, round.ScaleFromConfig(cfg.Scale),
		round.WithRand(rand.New(rand.NewSource(seed))),
		round.WithDifficulty(config.NewDifficultyManager(cfg.Difficulty)),
		round.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid scale: %w", err)
	}

	return session.NewController(gate, orch, cfg.Countdown, session.WithLogger(logger)), nil
}
