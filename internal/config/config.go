// Package config provides YAML-based configuration loading for the
// blocks game: grid geometry, fall speed and the shape table.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/games/blocks/engine"
)

// BlocksConfig contains all configuration for the blocks game.
type BlocksConfig struct {
	Grid   GridConfig    `yaml:"grid"`
	Fall   FallConfig    `yaml:"fall"`
	Shapes []ShapeConfig `yaml:"shapes"`
}

// GridConfig defines the playfield.
type GridConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	SpawnRow    string `yaml:"spawn_row"`     // "midpoint", "top" or an index
	GameOverRow string `yaml:"game_over_row"` // "spawn" or an index
}

// FallConfig defines the fall scheduler timing.
type FallConfig struct {
	TickMillis int `yaml:"tick_ms"` // Fixed interval between fall steps
}

// ShapeConfig defines one entry of the shape table.
type ShapeConfig struct {
	Name  string   `yaml:"name"`
	Rows  []string `yaml:"rows"` // '#' marks a filled cell
	Color string   `yaml:"color"`
}

// TickPeriod returns the fall interval as a duration.
func (c FallConfig) TickPeriod() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Validate checks that the configuration describes a playable match.
func (c BlocksConfig) Validate() error {
	_, err := c.ToMatchConfig(0)
	return err
}

// ToMatchConfig converts the YAML form into an engine match configuration.
func (c BlocksConfig) ToMatchConfig(seed int64) (engine.MatchConfig, error) {
	var errs []error

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Fall.TickMillis <= 0 {
		errs = append(errs, fmt.Errorf("fall.tick_ms must be positive, got %d", c.Fall.TickMillis))
	}

	spawn, err := engine.ParseRowRule(c.Grid.SpawnRow)
	if err != nil {
		errs = append(errs, fmt.Errorf("grid.spawn_row: %w", err))
	}
	over, err := engine.ParseRowRule(c.Grid.GameOverRow)
	if err != nil {
		errs = append(errs, fmt.Errorf("grid.game_over_row: %w", err))
	}

	shapes := make([]engine.Shape, 0, len(c.Shapes))
	for i, sc := range c.Shapes {
		color, ok := core.ParseColor(sc.Color)
		if !ok {
			errs = append(errs, fmt.Errorf("shapes[%d]: unknown color %q", i, sc.Color))
			continue
		}
		s, err := engine.NewShape(sc.Name, sc.Rows, color)
		if err != nil {
			errs = append(errs, fmt.Errorf("shapes[%d]: %w", i, err))
			continue
		}
		shapes = append(shapes, s)
	}

	if len(errs) > 0 {
		return engine.MatchConfig{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}

	mc := engine.MatchConfig{
		Width:       c.Grid.Width,
		Height:      c.Grid.Height,
		TickPeriod:  c.Fall.TickPeriod(),
		SpawnRow:    spawn,
		GameOverRow: over,
		Shapes:      shapes,
		Seed:        seed,
	}

	// Row and shape fit depend on the grid; let the engine decide.
	if _, err := engine.NewMatch(mc); err != nil {
		return engine.MatchConfig{}, fmt.Errorf("config: %w", err)
	}
	return mc, nil
}
