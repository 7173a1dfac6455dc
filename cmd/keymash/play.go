package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/platform/tui"
	"github.com/vovakirdan/keymash/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a keymash session.

Controls:
  Enter      - Start / ready for the next round
  Esc        - Pause
  R          - Retry (after the session ends)
  Backspace  - Back to the title screen
  Ctrl+C     - Quit
  Any other key is a gameplay key.

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty with a shorter countdown
  fixed  - No progression, stays at config's initial level

Examples:
  keymash play
  keymash play --difficulty easy
  keymash play --seed 42
  keymash play --config ./my-rounds.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(flagLogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, err := newSession(cfg, flagSeed, logger)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open results storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	difficulty := string(preset)
	if difficulty == "" {
		difficulty = "default"
	}
	return tui.Run(ctrl, rc, tui.Options{
		Store:      store,
		Difficulty: difficulty,
		Logger:     logger,
	})
}
