package config

import (
	"fmt"
	"strings"
)

// SpeedPreset represents a named fall speed. Presets scale the fixed
// tick period once at load time; the speed never progresses in a match.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// ParseSpeedPreset validates a preset name. An empty name is SpeedNormal.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch p := SpeedPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return SpeedNormal, nil
	case SpeedSlow, SpeedNormal, SpeedFast:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown speed %q (want slow, normal or fast)", s)
	}
}

// ApplySpeedPreset modifies the tick period based on a speed preset.
func ApplySpeedPreset(cfg *BlocksConfig, preset SpeedPreset) {
	switch preset {
	case SpeedSlow:
		cfg.Fall.TickMillis *= 2
	case SpeedFast:
		cfg.Fall.TickMillis = max(cfg.Fall.TickMillis/2, 1)
	}
}
