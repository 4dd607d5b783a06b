package engine

// Overlaps reports whether the block cannot occupy its current position:
// any filled cell lies outside the grid or on an occupied cell.
//
// The block's own footprint must already be cleared from the grid,
// otherwise every position collides with itself.
func Overlaps(b *Block, g *Grid) bool {
	if b.Row+b.Shape.Height > g.height {
		return true
	}
	for r := 0; r < b.Shape.Height; r++ {
		for c := 0; c < b.Shape.Width; c++ {
			if !b.Shape.FilledAt(r, c) {
				continue
			}
			row, col := b.Row+r, b.Col+c
			if !g.InBounds(row, col) {
				return true
			}
			if g.cells[g.index(row, col)].Filled {
				return true
			}
		}
	}
	return false
}

// Commit writes the block's color into every cell of its footprint.
func Commit(b *Block, g *Grid) {
	paint(b, g, Filled(b.Shape.Color))
}

// Clear empties every cell of the block's footprint. Inverse of Commit.
func Clear(b *Block, g *Grid) {
	paint(b, g, Empty())
}

func paint(b *Block, g *Grid, cell Cell) {
	for r := 0; r < b.Shape.Height; r++ {
		for c := 0; c < b.Shape.Width; c++ {
			if !b.Shape.FilledAt(r, c) {
				continue
			}
			row, col := b.Row+r, b.Col+c
			if !g.InBounds(row, col) {
				panic(g.boundsError(row, col))
			}
			g.cells[g.index(row, col)] = cell
		}
	}
}

// IsOver reports whether any cell of the given row is filled.
func IsOver(g *Grid, row int) bool {
	for _, c := range g.rowView(row) {
		if c.Filled {
			return true
		}
	}
	return false
}
