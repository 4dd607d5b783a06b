// Package texture converts engine snapshots into RGBA pixel buffers,
// one pixel per grid cell, for frontends that draw into GPU images.
package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/games/blocks/engine"
)

// Background is the color of empty cells.
var Background = colornames.Black

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       colornames.White,
	core.ColorRed:           colornames.Red,
	core.ColorGreen:         colornames.Limegreen,
	core.ColorYellow:        colornames.Gold,
	core.ColorBlue:          colornames.Royalblue,
	core.ColorMagenta:       colornames.Magenta,
	core.ColorCyan:          colornames.Cyan,
	core.ColorWhite:         colornames.White,
	core.ColorBrightRed:     colornames.Tomato,
	core.ColorBrightGreen:   colornames.Lawngreen,
	core.ColorBrightYellow:  colornames.Yellow,
	core.ColorBrightBlue:    colornames.Deepskyblue,
	core.ColorBrightMagenta: colornames.Violet,
	core.ColorBrightCyan:    colornames.Aquamarine,
	core.ColorBrightWhite:   colornames.Ghostwhite,
	core.ColorOrange:        colornames.Orange,
	core.ColorGray:          colornames.Gray,
}

// ColorOf returns the pixel color of a grid cell.
func ColorOf(c engine.Cell) color.RGBA {
	if !c.Filled {
		return Background
	}
	if rgba, ok := palette[c.Color]; ok {
		return rgba
	}
	return colornames.White
}

// Blit writes the snapshot into dst as row-major RGBA, 4 bytes per cell,
// and returns the buffer. dst is reused when it has enough capacity.
func Blit(snap engine.Snapshot, dst []byte) []byte {
	n := snap.Width * snap.Height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	for i, c := range snap.Cells {
		rgba := ColorOf(c)
		dst[i*4] = rgba.R
		dst[i*4+1] = rgba.G
		dst[i*4+2] = rgba.B
		dst[i*4+3] = rgba.A
	}
	return dst
}

// Image returns the snapshot as an image, e.g. for encoding to PNG.
func Image(snap engine.Snapshot) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, snap.Width, snap.Height))
	img.Pix = Blit(snap, img.Pix)
	return img
}
