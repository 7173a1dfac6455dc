package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/keymash/internal/config"
	"github.com/vovakirdan/keymash/internal/registry"
	"github.com/vovakirdan/keymash/internal/round"
)

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "List the round catalog",
	Long: `Shows the loaded round catalog and the mechanics it can use.

Rounds are shuffled each session, so taps and time are shown for the
first and last position a round could be played at.`,
	Args: cobra.NoArgs,
	RunE: runRounds,
}

func runRounds(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	scale := round.ScaleFromConfig(cfg.Scale)
	if err := scale.Validate(); err != nil {
		return err
	}
	if err := scale.ValidateCatalog(catalog); err != nil {
		return err
	}
	scaler := round.NewScaler(scale, config.NewDifficultyManager(cfg.Difficulty))
	total := catalog.Len()

	fmt.Println("Mechanics:")
	fmt.Println()
	for _, info := range registry.Default().List() {
		fmt.Printf("  %-16s  %-14s  needs %d key(s)\n", info.Name, info.Title, info.MinKeys)
	}

	fmt.Println()
	fmt.Printf("Rounds (%d):\n", total)
	fmt.Println()
	fmt.Printf("  %-3s  %-14s  %-18s  %-11s  %s\n", "#", "Mechanic", "Keys", "Taps", "Time")
	fmt.Printf("  %-3s  %-14s  %-18s  %-11s  %s\n", "-", "--------", "----", "----", "----")

	for i, d := range catalog.Entries() {
		keys := make([]string, len(d.Keys))
		for j, k := range d.Keys {
			keys[j] = k.String()
		}
		taps := fmt.Sprintf("%d-%d", scaler.RequiredTaps(d, 0, total), scaler.RequiredTaps(d, total-1, total))
		dur := fmt.Sprintf("%s-%s",
			scaler.Duration(d, 0, total).Round(100*time.Millisecond),
			scaler.Duration(d, total-1, total).Round(100*time.Millisecond))
		fmt.Printf("  %-3d  %-14s  %-18s  %-11s  %s\n", i+1, d.Mechanic.Title(), strings.Join(keys, ","), taps, dur)
	}

	fmt.Println()
	fmt.Println("Run 'keymash play' to start a session.")
	return nil
}
