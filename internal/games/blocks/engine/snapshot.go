package engine

// Snapshot is a read-only copy of a match for renderers.
// Cells always holds exactly Width*Height entries.
type Snapshot struct {
	Width  int
	Height int
	Cells  []Cell
	State  State
	Reason EndReason
	Locked int
	Ticks  uint64
}

// Snapshot copies the current grid and counters.
func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Width:  m.grid.width,
		Height: m.grid.height,
		Cells:  m.grid.Cells(),
		State:  m.state,
		Reason: m.reason,
		Locked: m.locked,
		Ticks:  m.ticks,
	}
}

// At returns the cell at (row, col), or an empty cell outside the grid.
func (s Snapshot) At(row, col int) Cell {
	if row < 0 || row >= s.Height || col < 0 || col >= s.Width {
		return Cell{}
	}
	return s.Cells[row*s.Width+col]
}
