package engine

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/geirtris/internal/core"
)

// Shape is a block's filled-cell mask inside its bounding box.
// Mask is row-major with length Width*Height.
type Shape struct {
	Name   string
	Width  int
	Height int
	Mask   []bool
	Color  core.Color
}

// NewShape builds a shape from text rows where '#' marks a filled cell
// and any other rune an empty one. All rows must have the same length.
func NewShape(name string, rows []string, color core.Color) (Shape, error) {
	if len(rows) == 0 {
		return Shape{}, fmt.Errorf("%w: %q has no rows", ErrInvalidShape, name)
	}

	width := len([]rune(rows[0]))
	if width == 0 {
		return Shape{}, fmt.Errorf("%w: %q has an empty row", ErrInvalidShape, name)
	}

	s := Shape{
		Name:   name,
		Width:  width,
		Height: len(rows),
		Mask:   make([]bool, 0, width*len(rows)),
		Color:  color,
	}
	for i, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return Shape{}, fmt.Errorf("%w: %q row %d has width %d, expected %d", ErrInvalidShape, name, i, len(runes), width)
		}
		for _, r := range runes {
			s.Mask = append(s.Mask, r == '#')
		}
	}

	if s.CellCount() == 0 {
		return Shape{}, fmt.Errorf("%w: %q has no filled cells", ErrInvalidShape, name)
	}
	return s, nil
}

// MustShape is NewShape for static tables. Panics on an invalid definition.
func MustShape(name string, rows []string, color core.Color) Shape {
	s, err := NewShape(name, rows, color)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultShapes returns the single flat red "I" piece.
func DefaultShapes() []Shape {
	return []Shape{
		MustShape("I", []string{"####"}, core.ColorRed),
	}
}

// FilledAt reports whether the mask cell (r, c) is filled.
func (s Shape) FilledAt(r, c int) bool {
	return s.Mask[r*s.Width+c]
}

// CellCount returns the number of filled mask cells.
func (s Shape) CellCount() int {
	n := 0
	for _, f := range s.Mask {
		if f {
			n++
		}
	}
	return n
}

func (s Shape) validate() error {
	if s.Width <= 0 || s.Height <= 0 || len(s.Mask) != s.Width*s.Height {
		return fmt.Errorf("%w: %q mask does not match %dx%d", ErrInvalidShape, s.Name, s.Width, s.Height)
	}
	if s.CellCount() == 0 {
		return fmt.Errorf("%w: %q has no filled cells", ErrInvalidShape, s.Name)
	}
	return nil
}

// Block is the active falling piece: a shape at a top-left grid position.
type Block struct {
	Shape Shape
	Row   int
	Col   int
}

// Bounds returns the block's bounding box in grid coordinates (X = col, Y = row).
func (b *Block) Bounds() core.Rect {
	return core.NewRect(b.Col, b.Row, b.Shape.Width, b.Shape.Height)
}

// Spawner creates new blocks from a shape table.
type Spawner struct {
	shapes []Shape
	rng    *rand.Rand
}

// NewSpawner creates a spawner over the given shapes, seeded for determinism.
// An empty table falls back to DefaultShapes.
func NewSpawner(shapes []Shape, seed int64) *Spawner {
	if len(shapes) == 0 {
		shapes = DefaultShapes()
	}
	return &Spawner{
		shapes: shapes,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Spawn returns a new block horizontally centered on the given row.
func (s *Spawner) Spawn(gridWidth, row int) *Block {
	shape := s.shapes[0]
	if len(s.shapes) > 1 {
		shape = s.shapes[s.rng.Intn(len(s.shapes))]
	}
	return &Block{
		Shape: shape,
		Row:   row,
		Col:   SpawnColumn(gridWidth, shape.Width),
	}
}

// SpawnColumn returns gridWidth/2, pulled left when the shape would
// otherwise stick out past the right edge.
func SpawnColumn(gridWidth, shapeWidth int) int {
	return core.Clamp(gridWidth/2, 0, max(gridWidth-shapeWidth, 0))
}
