// geirtris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	geirtris list              - List available games
//	geirtris play <game>       - Play a game
//	geirtris menu              - Start menu with match history
//	geirtris history <game>    - Show recorded matches for a game
//	geirtris serve             - Start SSH server for remote play
//	geirtris window <game>     - Play in a desktop window
//	geirtris config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Host frame rate (default: 60)
//	--seed <value>       - RNG seed for reproducible gameplay
//	--db <path>          - Match database (default: ~/.geirtris/geirtris.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination while a full-screen UI runs
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/geirtris/internal/config"
	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/games/blocks"
	"github.com/vovakirdan/geirtris/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "geirtris",
	Short: "Geirtris - falling blocks in your terminal",
	Long: `Geirtris is a falling-block puzzle game. Blocks fall one row per tick
and lock when they land. The match ends when the stack reaches the
game-over row.

Available commands:
  list     - Show all game variants
  play     - Play a variant directly
  menu     - Start/Exit menu with match history
  history  - View recorded matches
  serve    - Start SSH server for remote play
  window   - Play in a desktop window
  config   - Print the effective configuration

Examples:
  geirtris play blocks
  geirtris play blocks --speed fast
  geirtris menu
  geirtris serve --ssh :2222
  geirtris history blocks --best`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file while a full-screen UI runs (default ~/.geirtris/geirtris.log)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the CLI logger. Full-screen commands log to a file so
// output does not corrupt the alternate screen. The returned closer is
// never nil.
func newLogger(fullScreen bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	path := flagLogFile
	if path == "" && fullScreen {
		if dir := config.AppDir(); dir != "" {
			path = filepath.Join(dir, "geirtris.log")
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	} else if fullScreen {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "geirtris",
	})
	return logger, closer, nil
}

// runtimeConfig returns the host settings sized to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the match database. Play continues without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// configureBlocks loads the blocks config, applies the speed preset and
// hands the result to the game package.
func configureBlocks(path, speed string) (config.BlocksConfig, error) {
	preset, err := config.ParseSpeedPreset(speed)
	if err != nil {
		return config.BlocksConfig{}, err
	}
	cfg, err := config.LoadBlocks(path)
	if err != nil {
		return config.BlocksConfig{}, err
	}
	config.ApplySpeedPreset(&cfg, preset)
	blocks.Configure(cfg)
	return cfg, nil
}

// unknownGame reports a game id that is not registered.
func unknownGame(id string) error {
	return fmt.Errorf("unknown game %q (run 'geirtris list')", id)
}
