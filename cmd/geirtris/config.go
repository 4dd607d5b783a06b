package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/geirtris/internal/config"
)

var flagDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective blocks configuration",
	Long: `Print the configuration a game would use, after the search order
(--config, ~/.geirtris/configs/blocks.yaml, ./configs/blocks.yaml, built-in)
and the speed preset. Use --default to print the built-in file, which is a
good starting point for ~/.geirtris/configs/blocks.yaml.

Examples:
  geirtris config
  geirtris config --speed slow
  geirtris config --default > ~/.geirtris/configs/blocks.yaml`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefault, "default", false, "Print the built-in default config")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom blocks config YAML")
	configCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagDefault {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := configureBlocks(flagConfig, flagSpeed)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
