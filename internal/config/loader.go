package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDirName is the per-user directory under $HOME.
const AppDirName = ".geirtris"

const blocksFile = "blocks.yaml"

// LoadBlocks loads the blocks game configuration.
// Search order: customPath -> ~/.geirtris/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default
//
// Only an explicit path reports read and validation errors. Broken files
// found on the search path are skipped.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseBlocks(data)
		if err != nil {
			return BlocksConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{filepath.Join("configs", blocksFile)}
	if p := userConfigPath(blocksFile); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBlocks(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBlocks(defaultBlocksYAML)
	if err != nil {
		return DefaultBlocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBlocks decodes YAML over the defaults so partial files work.
func parseBlocks(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	cfg.Shapes = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlocksConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if len(cfg.Shapes) == 0 {
		cfg.Shapes = DefaultBlocksConfig().Shapes
	}
	if err := cfg.Validate(); err != nil {
		return BlocksConfig{}, err
	}
	return cfg, nil
}

// AppDir returns ~/.geirtris, or an empty string if home is unavailable.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDirName)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := AppDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
