package blocks

import (
	"fmt"

	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/games/blocks/engine"
)

const hudHeight = 2

const (
	glyphUpper = '▀'
	glyphLower = '▄'
	glyphFull  = '█'
)

// boardSize returns the framed board size in screen cells.
// Each text line shows two grid rows.
func (g *Game) boardSize() (w, h int) {
	return g.match.Width() + 2, (g.match.Height()+1)/2 + 2
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.match == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		bw, bh := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", bw, hudHeight+bh))
		return
	}

	g.renderBoard(dst, g.match.Snapshot())

	switch {
	case g.over:
		g.renderOverlay(dst, "Game Over", "R: restart  B: menu")
	case g.paused:
		g.renderOverlay(dst, "Paused", "P: continue  B: menu")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Locked: %d  Ticks: %d  Fall: %s",
		g.Title(), g.match.Locked(), g.match.Ticks(), g.match.TickPeriod())
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot) {
	bw, bh := g.boardSize()
	dst.DrawBox(core.NewRect(g.boardX, g.boardY, bw, bh))

	for line := 0; line < bh-2; line++ {
		top := 2 * line
		for col := 0; col < snap.Width; col++ {
			dst.SetCell(g.boardX+1+col, g.boardY+1+line, halfBlock(snap.At(top, col), snap.At(top+1, col)))
		}
	}

	// Mark the game-over row outside the frame.
	markY := g.boardY + 1 + g.match.GameOverRow()/2
	dst.SetColored(g.boardX-1, markY, '▸', core.ColorGray, core.ColorDefault)
	dst.SetColored(g.boardX+bw, markY, '◂', core.ColorGray, core.ColorDefault)
}

// halfBlock packs two vertically adjacent grid cells into one screen cell.
func halfBlock(upper, lower engine.Cell) core.Cell {
	switch {
	case upper.Filled && lower.Filled:
		uc, lc := cellColor(upper), cellColor(lower)
		if uc == lc {
			return core.Cell{Rune: glyphFull, Fg: uc}
		}
		return core.Cell{Rune: glyphUpper, Fg: uc, Bg: lc}
	case upper.Filled:
		return core.Cell{Rune: glyphUpper, Fg: cellColor(upper)}
	case lower.Filled:
		return core.Cell{Rune: glyphLower, Fg: cellColor(lower)}
	default:
		return core.Cell{Rune: ' '}
	}
}

func cellColor(c engine.Cell) core.Color {
	if c.Color == core.ColorDefault {
		return core.ColorWhite
	}
	return c.Color
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(w, 5)

	dst.FillRect(box)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
