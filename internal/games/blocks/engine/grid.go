// Package engine implements the falling-block simulation: the occupancy grid,
// the active block, collision and placement, and the fall state machine.
// It is UI-agnostic and deterministic for a given seed.
package engine

import (
	"fmt"

	"github.com/vovakirdan/geirtris/internal/core"
)

// Cell is one grid position: empty, or filled with a color.
// The zero value is an empty cell.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Filled returns a cell filled with the given color.
func Filled(c core.Color) Cell {
	return Cell{Filled: true, Color: c}
}

// Grid is the fixed-size playing field.
// Cells are stored row-major: index = row*width + col.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates an empty grid. Both dimensions must be positive.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (row, col) addresses a grid cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

func (g *Grid) index(row, col int) int {
	return row*g.width + col
}

func (g *Grid) boundsError(row, col int) *OutOfBoundsError {
	return &OutOfBoundsError{Row: row, Col: col, Width: g.width, Height: g.height}
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.InBounds(row, col) {
		return Cell{}, g.boundsError(row, col)
	}
	return g.cells[g.index(row, col)], nil
}

// Set overwrites the cell at (row, col).
func (g *Grid) Set(row, col int, c Cell) error {
	if !g.InBounds(row, col) {
		return g.boundsError(row, col)
	}
	g.cells[g.index(row, col)] = c
	return nil
}

// rowView returns the live backing slice of one row.
// Panics with *OutOfBoundsError for a row outside the grid.
func (g *Grid) rowView(row int) []Cell {
	if row < 0 || row >= g.height {
		panic(g.boundsError(row, 0))
	}
	start := row * g.width
	return g.cells[start : start+g.width]
}

// Row returns a copy of one full row.
// Panics with *OutOfBoundsError for a row outside the grid.
func (g *Grid) Row(row int) []Cell {
	view := g.rowView(row)
	out := make([]Cell, len(view))
	copy(out, view)
	return out
}

// Cells returns a copy of the whole buffer in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// FilledCount returns the number of non-empty cells.
func (g *Grid) FilledCount() int {
	count := 0
	for _, c := range g.cells {
		if c.Filled {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  g.Cells(),
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}
