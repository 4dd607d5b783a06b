package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/geirtris/internal/platform/window"
	"github.com/vovakirdan/geirtris/internal/registry"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window <game>",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window instead of the terminal. One grid
cell is drawn as a square of --scale pixels.

Controls are the same as in the terminal. Esc leaves a paused or
finished match and Q closes the window.

Examples:
  geirtris window blocks
  geirtris window blocks --scale 12 --speed fast`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 16, "Pixels per grid cell")
	windowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom blocks config YAML")
	windowCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
}

func runWindow(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return unknownGame(gameID)
	}

	if _, err := configureBlocks(flagConfig, flagSpeed); err != nil {
		return err
	}

	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	src, ok := game.(window.Source)
	if !ok {
		return fmt.Errorf("game %q cannot be shown in a window", gameID)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return window.Run(src, window.Options{
		Scale:   flagScale,
		Runtime: runtimeConfig(),
		Store:   store,
		Logger:  logger,
	})
}
