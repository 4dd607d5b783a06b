package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/geirtris/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return stubGame{id: "zz_stub"} })

	assert.True(t, Exists("zz_stub"))

	info, ok := Lookup("zz_stub")
	require.True(t, ok)
	assert.Equal(t, "Stub zz_stub", info.Title)

	g, err := Create("zz_stub")
	require.NoError(t, err)
	assert.Equal(t, "zz_stub", g.ID())

	assert.Contains(t, List(), GameInfo{ID: "zz_stub", Title: "Stub zz_stub"})
	assert.Panics(t, func() {
		Register("zz_stub", func() Game { return stubGame{id: "zz_stub"} })
	})
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	assert.Error(t, err)

	_, ok := Lookup("no_such_game")
	assert.False(t, ok)
}
