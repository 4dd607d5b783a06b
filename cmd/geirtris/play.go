package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/geirtris/internal/platform/tui"
	"github.com/vovakirdan/geirtris/internal/registry"
)

var (
	flagConfig string
	flagSpeed  string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game variant.

Controls:
  Left/A, Right/D  - Move block
  Down/S           - Soft drop (one row)
  Space            - Hard drop
  P                - Pause
  R                - Restart (after game over)
  B/Esc            - Leave (when paused or over)
  Ctrl+S           - Save screenshot
  Q/Ctrl+C         - Quit

Speed presets only change the fall period:
  slow   - twice the configured period
  normal - the configured period
  fast   - half the configured period

Examples:
  geirtris play blocks
  geirtris play blocks_top --speed fast
  geirtris play blocks --config ./my-blocks.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom blocks config YAML")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return unknownGame(gameID)
	}

	if _, err := configureBlocks(flagConfig, flagSpeed); err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, logger, runtimeConfig()); err != nil {
		logger.Error("game stopped", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
