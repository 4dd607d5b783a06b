package core

import "strings"

// Color represents a foreground or background color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
// ColorDefault doubles as "no color" for empty grid cells.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright_red",
	ColorBrightGreen:   "bright_green",
	ColorBrightYellow:  "bright_yellow",
	ColorBrightBlue:    "bright_blue",
	ColorBrightMagenta: "bright_magenta",
	ColorBrightCyan:    "bright_cyan",
	ColorBrightWhite:   "bright_white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
}

// String returns the config name of a color.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor converts a config name to a Color.
// Returns ColorDefault and false if the name is not recognized.
func ParseColor(s string) (Color, bool) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if name == "grey" {
		name = "gray"
	}
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return ColorDefault, false
}
