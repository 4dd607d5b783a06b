package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/geirtris/internal/core"
)

// ansiCodes maps core.Color to ANSI 256 palette indices.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

type colorPair struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style of a color pair. ColorDefault leaves
// the terminal's own color in place.
func styleFor(p colorPair) lipgloss.Style {
	style := lipgloss.NewStyle()
	if code, ok := ansiCodes[p.fg]; ok {
		style = style.Foreground(lipgloss.Color(code))
	}
	if code, ok := ansiCodes[p.bg]; ok {
		style = style.Background(lipgloss.Color(code))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[colorPair]lipgloss.Style)
	var run strings.Builder

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{fg: cell.Fg, bg: cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Fg != pair.fg || cell.Bg != pair.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if pair == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[pair]
			if !ok {
				style = styleFor(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
