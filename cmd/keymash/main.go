// keymash is a terminal key-mashing game: clear every round by pressing
// the green key enough times before the timer runs out.
//
// Usage:
//
//	keymash play             - Play a session
//	keymash scores           - Show best and recent runs
//	keymash rounds           - List the loaded round catalog
//	keymash config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible sessions
//	--db <path>          - Set database path (default: ~/.keymash/results.db)
//	--config <path>      - Use a custom round catalog YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log <path>         - Write debug logs to a file
//
// Every flag falls back to a KEYMASH_* environment variable when unset.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/keymash/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "keymash",
	Short: "Keymash - mash the right key before time runs out",
	Long: `Keymash is a terminal key-mashing game. Each session is a shuffled run
of timed rounds; every round asks for a number of presses of the green key,
with a different rule for which key is green.

Available commands:
  play     - Play a session
  scores   - View best and recent runs
  rounds   - List the round catalog with scaled taps and time
  config   - Print the default configuration

Examples:
  keymash play
  keymash play --difficulty hard
  keymash scores --tui
  keymash rounds --config ./my-rounds.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyEnv,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.keymash/results.db", "Path to results database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom round catalog YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogPath, "log", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv fills every flag the user did not set from the environment.
func applyEnv(cmd *cobra.Command, _ []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("fps") && env.FPS > 0 {
		flagFPS = env.FPS
	}
	if !flags.Changed("seed") && env.Seed != 0 {
		flagSeed = env.Seed
	}
	if !flags.Changed("db") && env.DBPath != "" {
		flagDBPath = env.DBPath
	}
	if !flags.Changed("config") && env.ConfigPath != "" {
		flagConfig = env.ConfigPath
	}
	if !flags.Changed("difficulty") && env.Difficulty != "" {
		flagDifficulty = env.Difficulty
	}
	if !flags.Changed("log") && env.LogPath != "" {
		flagLogPath = env.LogPath
	}
	return nil
}

// newLogger returns a debug logger writing to path, or a discarding
// logger when path is empty. The terminal belongs to the game, so logs
// never go to stderr while playing.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "keymash",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
