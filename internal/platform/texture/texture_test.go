package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/games/blocks/engine"
)

func snapshot(t *testing.T) engine.Snapshot {
	t.Helper()
	m, err := engine.NewMatch(engine.MatchConfig{Width: 10, Height: 6, SpawnRow: engine.RowFixed(2)})
	require.NoError(t, err)
	m.Tick() // red bar at row 2, cols 5..8
	return m.Snapshot()
}

func TestBlitSize(t *testing.T) {
	buf := Blit(snapshot(t), nil)
	assert.Len(t, buf, 10*6*4)
}

func TestBlitColors(t *testing.T) {
	snap := snapshot(t)
	buf := Blit(snap, nil)

	pixel := func(row, col int) []byte {
		i := (row*snap.Width + col) * 4
		return buf[i : i+4]
	}

	red := colornames.Red
	assert.Equal(t, []byte{red.R, red.G, red.B, red.A}, pixel(2, 5))
	assert.Equal(t, []byte{red.R, red.G, red.B, red.A}, pixel(2, 8))

	bg := Background
	assert.Equal(t, []byte{bg.R, bg.G, bg.B, bg.A}, pixel(2, 4))
	assert.Equal(t, []byte{bg.R, bg.G, bg.B, bg.A}, pixel(0, 0))
}

func TestBlitReusesBuffer(t *testing.T) {
	snap := snapshot(t)
	buf := make([]byte, 0, 1024)

	out := Blit(snap, buf)
	assert.Equal(t, &buf[:1][0], &out[0])
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, Background, ColorOf(engine.Empty()))
	assert.Equal(t, colornames.Orange, ColorOf(engine.Filled(core.ColorOrange)))
	assert.Equal(t, colornames.White, ColorOf(engine.Filled(core.Color(200))))
}

func TestImage(t *testing.T) {
	img := Image(snapshot(t))
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
	assert.Equal(t, colornames.Red, img.RGBAAt(5, 2))
}
