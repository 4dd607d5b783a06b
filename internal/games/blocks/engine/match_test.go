package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/geirtris/internal/core"
)

func newTestMatch(t *testing.T, cfg MatchConfig) *Match {
	t.Helper()
	if cfg.Width == 0 {
		cfg.Width = 10
	}
	if cfg.Height == 0 {
		cfg.Height = 40
	}
	m, err := NewMatch(cfg)
	require.NoError(t, err)
	return m
}

func TestNewMatchDefaults(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})

	assert.Equal(t, StateIdle, m.State())
	assert.True(t, m.IsActive())
	assert.False(t, m.HasActiveBlock())
	assert.Equal(t, 19, m.SpawnRow())
	assert.Equal(t, 19, m.GameOverRow())
	assert.Equal(t, DefaultTickPeriod, m.TickPeriod())
	assert.Zero(t, m.Snapshot().Ticks)
}

func TestNewMatchInvalid(t *testing.T) {
	wide := MustShape("wide", []string{"######"}, core.ColorRed)
	tall := MustShape("tall", []string{"#", "#", "#"}, core.ColorRed)

	tests := []struct {
		name string
		cfg  MatchConfig
		want error
	}{
		{"zero width", MatchConfig{Width: -1, Height: 10}, ErrInvalidDimension},
		{"bad shape", MatchConfig{Width: 10, Height: 10, Shapes: []Shape{{Name: "x", Width: 2, Height: 1, Mask: []bool{false, false}}}}, ErrInvalidShape},
		{"shape wider than grid", MatchConfig{Width: 4, Height: 10, Shapes: []Shape{wide}}, ErrInvalidConfig},
		{"shape below floor", MatchConfig{Width: 4, Height: 4, SpawnRow: RowFixed(2), Shapes: []Shape{tall}}, ErrInvalidConfig},
		{"spawn row outside", MatchConfig{Width: 4, Height: 4, SpawnRow: RowFixed(4)}, ErrInvalidConfig},
		{"game-over row below spawn", MatchConfig{Width: 10, Height: 10, SpawnRow: RowTop, GameOverRow: RowFixed(3)}, ErrInvalidConfig},
		{"tiny grid midpoint", MatchConfig{Width: 4, Height: 1}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatch(tt.cfg)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFirstTickSpawnsAtMidpoint(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})

	res := m.Tick()
	assert.True(t, res.Spawned)
	assert.Equal(t, StateFalling, res.State)

	b, ok := m.ActiveBlock()
	require.True(t, ok)
	assert.Equal(t, 19, b.Row)
	assert.Equal(t, 5, b.Col)

	snap := m.Snapshot()
	for c := 5; c < 9; c++ {
		assert.True(t, snap.At(19, c).Filled)
		assert.Equal(t, core.ColorRed, snap.At(19, c).Color)
	}
	assert.Equal(t, 4, countFilled(snap))
}

func TestBlockFallsToFloor(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})
	m.Tick() // spawn at row 19

	for i := 0; i < 20; i++ {
		res := m.Tick()
		require.True(t, res.Moved, "tick %d", i)
		require.False(t, res.Locked)
	}
	b, _ := m.ActiveBlock()
	assert.Equal(t, 39, b.Row)

	res := m.Tick()
	assert.True(t, res.Locked)
	assert.False(t, res.GameOver)
	assert.Equal(t, StateIdle, m.State())
	assert.False(t, m.HasActiveBlock())
	assert.Equal(t, 1, m.Locked())

	snap := m.Snapshot()
	for c := 5; c < 9; c++ {
		assert.True(t, snap.At(39, c).Filled)
	}
	assert.Equal(t, 4, countFilled(snap))
}

func TestLocksOnPrefilledCell(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})
	m.Tick()

	require.NoError(t, m.grid.Set(20, 6, Filled(core.ColorGray)))

	res := m.Tick()
	assert.True(t, res.Locked)
	assert.False(t, res.Moved)

	// Locked at the spawn row, which is also the game-over row.
	assert.True(t, res.GameOver)
	assert.Equal(t, StateGameOver, m.State())
	assert.Equal(t, EndToppedOut, m.EndReason())
	for c := 5; c < 9; c++ {
		cell, _ := m.grid.Get(19, c)
		assert.True(t, cell.Filled)
	}
}

func TestRespawnAfterLock(t *testing.T) {
	m := newTestMatch(t, MatchConfig{Width: 10, Height: 10})
	m.Tick()
	for m.HasActiveBlock() {
		m.Tick()
	}
	require.Equal(t, StateIdle, m.State())

	res := m.Tick()
	assert.True(t, res.Spawned)
	assert.Equal(t, StateFalling, m.State())
	assert.True(t, m.HasActiveBlock())
	assert.Equal(t, 8, countFilled(m.Snapshot()))
}

func TestStackToppingOut(t *testing.T) {
	// 4 rows below the spawn row fit exactly 4 bars before the stack
	// reaches the spawn row.
	m := newTestMatch(t, MatchConfig{Width: 4, Height: 10, SpawnRow: RowFixed(5)})

	var ticks int
	for m.IsActive() && ticks < 1000 {
		m.Tick()
		ticks++
	}

	require.Equal(t, StateGameOver, m.State())
	assert.Equal(t, EndToppedOut, m.EndReason())
	assert.Equal(t, 5, m.Locked())
	assert.True(t, IsOver(m.grid, 5))
	assert.True(t, m.TakeGameOver())
	assert.False(t, m.TakeGameOver())

	// Terminal: further ticks are no-ops.
	before := m.Snapshot()
	res := m.Tick()
	assert.Equal(t, TickResult{State: StateGameOver}, res)
	assert.Equal(t, before, m.Snapshot())
}

func TestBlockOut(t *testing.T) {
	m := newTestMatch(t, MatchConfig{Width: 4, Height: 10, SpawnRow: RowFixed(5), GameOverRow: RowTop})
	require.NoError(t, m.grid.Set(5, 0, Filled(core.ColorGray)))

	res := m.Tick()
	assert.True(t, res.GameOver)
	assert.False(t, res.Spawned)
	assert.Equal(t, EndBlocked, m.EndReason())
	assert.Equal(t, 1, countFilled(m.Snapshot()))
	assert.True(t, m.TakeGameOver())
}

func TestTopSpawnRow(t *testing.T) {
	m := newTestMatch(t, MatchConfig{Width: 10, Height: 5, SpawnRow: RowTop})
	m.Tick()
	b, _ := m.ActiveBlock()
	assert.Equal(t, 0, b.Row)

	// Falling away from row 0 clears it.
	m.Tick()
	assert.True(t, m.IsActive())
	assert.False(t, IsOver(m.grid, 0))
}

func TestHorizontalMoves(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})
	assert.False(t, m.MoveLeft(), "no block yet")

	m.Tick()
	assert.True(t, m.MoveRight())
	assert.False(t, m.MoveRight(), "wall")
	b, _ := m.ActiveBlock()
	assert.Equal(t, 6, b.Col)

	for m.MoveLeft() {
	}
	b, _ = m.ActiveBlock()
	assert.Equal(t, 0, b.Col)
	assert.Equal(t, 4, countFilled(m.Snapshot()))

	require.NoError(t, m.grid.Set(19, 5, Filled(core.ColorGray)))
	assert.True(t, m.MoveRight())
	assert.False(t, m.MoveRight(), "occupied cell")
	b, _ = m.ActiveBlock()
	assert.Equal(t, 1, b.Col)
}

func TestSoftDrop(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})
	m.Tick()

	res := m.SoftDrop()
	assert.True(t, res.Moved)
	b, _ := m.ActiveBlock()
	assert.Equal(t, 20, b.Row)
	assert.Equal(t, uint64(1), m.Ticks(), "soft drop is not a scheduler tick")
}

func TestHardDrop(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})
	assert.Equal(t, TickResult{State: StateIdle}, m.HardDrop())

	m.Tick()
	res := m.HardDrop()
	assert.True(t, res.Locked)
	assert.True(t, res.Moved)
	assert.False(t, m.HasActiveBlock())

	snap := m.Snapshot()
	for c := 5; c < 9; c++ {
		assert.True(t, snap.At(39, c).Filled)
	}
	assert.Equal(t, 1, m.Locked())
}

func TestEnd(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})
	m.Tick()
	m.End()

	assert.False(t, m.IsActive())
	assert.False(t, m.HasActiveBlock())
	assert.Equal(t, EndStopped, m.EndReason())
	assert.False(t, m.TakeGameOver())

	ticks := m.Ticks()
	m.Tick()
	assert.Equal(t, ticks, m.Ticks())
}

func TestEndKeepsGameOverReason(t *testing.T) {
	m := newTestMatch(t, MatchConfig{Width: 4, Height: 4, SpawnRow: RowFixed(3)})
	m.Tick()
	m.Tick() // locks on the spawn row
	require.Equal(t, StateGameOver, m.State())

	m.End()
	assert.Equal(t, EndToppedOut, m.EndReason())
}

func TestEndReasonsMatchGameState(t *testing.T) {
	tests := []struct {
		reason EndReason
		want   string
	}{
		{EndToppedOut, core.EndReasonToppedOut},
		{EndBlocked, core.EndReasonBlocked},
		{EndStopped, core.EndReasonEnded},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, string(tc.reason))
	}
	assert.Empty(t, string(EndNone))
}

func TestSnapshotIsCopy(t *testing.T) {
	m := newTestMatch(t, MatchConfig{})
	m.Tick()

	snap := m.Snapshot()
	snap.Cells[0] = Filled(core.ColorBlue)
	assert.False(t, m.Snapshot().At(0, 0).Filled)
	assert.Equal(t, Cell{}, snap.At(-1, 0))
}

func TestTickPeriodFromConfig(t *testing.T) {
	m := newTestMatch(t, MatchConfig{TickPeriod: 250 * time.Millisecond})
	assert.Equal(t, 250*time.Millisecond, m.TickPeriod())
}

func countFilled(s Snapshot) int {
	n := 0
	for _, c := range s.Cells {
		if c.Filled {
			n++
		}
	}
	return n
}
