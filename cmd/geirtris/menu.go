package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/geirtris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a Start/Exit menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a paused or finished game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  geirtris menu
  geirtris menu --fps 30
  geirtris menu --db ./geirtris.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom blocks config YAML")
	menuCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if _, err := configureBlocks(flagConfig, flagSpeed); err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(store, logger, runtimeConfig())
}
