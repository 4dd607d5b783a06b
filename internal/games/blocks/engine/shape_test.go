package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/geirtris/internal/core"
)

func TestNewShape(t *testing.T) {
	s, err := NewShape("L", []string{"#.", "#.", "##"}, core.ColorOrange)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Width)
	assert.Equal(t, 3, s.Height)
	assert.Equal(t, 4, s.CellCount())
	assert.True(t, s.FilledAt(2, 1))
	assert.False(t, s.FilledAt(0, 1))
}

func TestNewShapeInvalid(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"##", "#"}},
		{"no cells", []string{"..", ".."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShape("x", tt.rows, core.ColorRed)
			assert.ErrorIs(t, err, ErrInvalidShape)
		})
	}
}

func TestDefaultShapes(t *testing.T) {
	shapes := DefaultShapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, 4, shapes[0].Width)
	assert.Equal(t, 1, shapes[0].Height)
	assert.Equal(t, core.ColorRed, shapes[0].Color)
}

func TestSpawnColumn(t *testing.T) {
	assert.Equal(t, 5, SpawnColumn(10, 4))
	assert.Equal(t, 5, SpawnColumn(11, 4))
	assert.Equal(t, 2, SpawnColumn(6, 4))
	assert.Equal(t, 0, SpawnColumn(4, 4))
}

func TestSpawnerDeterministic(t *testing.T) {
	shapes := []Shape{
		MustShape("I", []string{"####"}, core.ColorRed),
		MustShape("O", []string{"##", "##"}, core.ColorYellow),
		MustShape("T", []string{"###", ".#."}, core.ColorMagenta),
	}

	a := NewSpawner(shapes, 7)
	b := NewSpawner(shapes, 7)
	for i := 0; i < 20; i++ {
		ba, bb := a.Spawn(10, 4), b.Spawn(10, 4)
		assert.Equal(t, ba.Shape.Name, bb.Shape.Name)
		assert.Equal(t, 4, ba.Row)
	}
}

func TestSpawnerEmptyFallsBack(t *testing.T) {
	b := NewSpawner(nil, 1).Spawn(10, 0)
	assert.Equal(t, "I", b.Shape.Name)
	assert.Equal(t, 5, b.Col)
}

func TestBlockBounds(t *testing.T) {
	b := bar(3, 2)
	r := b.Bounds()
	assert.Equal(t, core.NewRect(2, 3, 4, 1), r)
}
