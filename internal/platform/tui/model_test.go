package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/geirtris/internal/config"
	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/games/blocks"
	"github.com/vovakirdan/geirtris/internal/storage"
)

func TestMain(m *testing.M) {
	// Keep tests independent of the user's config files.
	blocks.Configure(config.DefaultBlocksConfig())
	os.Exit(m.Run())
}

var quietLogger = log.New(io.Discard)

// testRuntime runs one fall tick per host frame with the default config.
func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 10, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestGameModel(t *testing.T, store *storage.Store) GameModel {
	t.Helper()
	m := NewGameModel(blocks.New(blocks.VariantMidpoint), store, quietLogger, testRuntime())
	require.NotNil(t, m.Init())
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm, cmd
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m, _ = update(t, m, TickMsg{ID: m.tickID})
	return m
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) GameModel {
	t.Helper()
	m, _ = update(t, m, msg)
	return m
}

func TestGameModelTicksDriveTheMatch(t *testing.T) {
	m := newTestGameModel(t, nil)

	m = tick(t, m)
	st := m.State()
	assert.Equal(t, uint64(1), st.Ticks)
	assert.NotEmpty(t, st.MatchID)
	assert.False(t, st.GameOver)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)
	assert.Equal(t, 1, m.State().Locked)
}

func TestGameModelDropsStaleTicks(t *testing.T) {
	m := newTestGameModel(t, nil)

	m, cmd := update(t, m, TickMsg{ID: m.tickID + 1000})
	assert.Nil(t, cmd)
	assert.Empty(t, m.State().MatchID)
}

func TestGameModelBackRecordsAbandonedMatch(t *testing.T) {
	store := openStore(t)
	m := newTestGameModel(t, store)

	m = tick(t, m)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)

	// Back is ignored while the match is in play.
	m = press(t, m, runes("b"))
	assert.False(t, m.BackToMenu())

	m = press(t, m, runes("p"))
	m = tick(t, m)
	require.True(t, m.State().Paused)

	m = press(t, m, runes("b"))
	assert.True(t, m.BackToMenu())
	assert.Equal(t, "ended", m.State().EndReason)

	recs, err := store.RecentMatches("blocks", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Locked)
	assert.Equal(t, "ended", recs[0].EndReason)
	assert.Equal(t, m.State().MatchID, recs[0].MatchID)

	// A finished model stops ticking.
	_, cmd := update(t, m, TickMsg{ID: m.tickID})
	assert.Nil(t, cmd)
}

func TestGameModelQuitSkipsEmptyMatch(t *testing.T) {
	store := openStore(t)
	m := newTestGameModel(t, store)
	m = tick(t, m)

	m, cmd := update(t, m, runes("q"))
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())

	recs, err := store.RecentMatches("blocks", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestGameModelResizeKeepsMatch(t *testing.T) {
	m := newTestGameModel(t, nil)
	m = tick(t, m)
	id := m.State().MatchID

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = tick(t, m)

	assert.Equal(t, id, m.State().MatchID)
	assert.Equal(t, uint64(2), m.State().Ticks)
}

func TestGameModelScreenshot(t *testing.T) {
	m := newTestGameModel(t, nil)
	m.shotDir = t.TempDir()
	m = tick(t, m)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.shotDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(m.shotDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Locked: 0")
}

func TestStandaloneQuitsOnBack(t *testing.T) {
	m := newTestGameModel(t, nil)
	m = tick(t, m)
	m = press(t, m, runes("p"))
	m = tick(t, m)

	s := newStandalone(m)
	next, cmd := s.Update(runes("b"))
	assert.True(t, next.(standalone).BackToMenu())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
