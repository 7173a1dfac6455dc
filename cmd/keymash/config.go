package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/keymash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the built-in round catalog as YAML. Save it to
~/.keymash/keymash.yaml or ./configs/keymash.yaml and edit it to
customise the game.

Example:
  keymash config > ~/.keymash/keymash.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}
