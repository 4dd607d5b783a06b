package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration: a 10x40 grid,
// midpoint spawn and the single red bar.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Grid: GridConfig{
			Width:       10,
			Height:      40,
			SpawnRow:    "midpoint",
			GameOverRow: "spawn",
		},
		Fall: FallConfig{
			TickMillis: 100,
		},
		Shapes: []ShapeConfig{
			{Name: "I", Rows: []string{"####"}, Color: "red"},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
