package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a grid is created with a zero or negative size.
	ErrInvalidDimension = errors.New("engine: invalid grid dimension")

	// ErrOutOfBounds marks any cell access outside the grid.
	ErrOutOfBounds = errors.New("engine: cell out of bounds")

	// ErrInvalidShape is returned for empty or ragged shape definitions.
	ErrInvalidShape = errors.New("engine: invalid shape")

	// ErrInvalidConfig is returned when a match configuration cannot be played.
	ErrInvalidConfig = errors.New("engine: invalid match config")
)

// OutOfBoundsError describes a cell access outside the grid.
// Placement primitives panic with it: a footprint outside the grid
// means the caller skipped the Overlaps check.
type OutOfBoundsError struct {
	Row, Col      int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("engine: cell (row %d, col %d) outside %dx%d grid", e.Row, e.Col, e.Width, e.Height)
}

// Unwrap lets errors.Is match ErrOutOfBounds.
func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
