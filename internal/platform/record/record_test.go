package record

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/geirtris/internal/core"
	"github.com/vovakirdan/geirtris/internal/storage"
)

func newRecorder(t *testing.T) (*Recorder, *storage.Store, *bytes.Buffer) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var buf bytes.Buffer
	r := New(store, log.New(&buf), "blocks")

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return r, store, &buf
}

func TestFinishSavesOnce(t *testing.T) {
	r, store, logs := newRecorder(t)

	st := core.GameState{MatchID: "m-1", Locked: 3, Ticks: 50}
	r.Start(st)

	st.GameOver = true
	st.EndReason = "topped_out"
	assert.True(t, r.Finish(st))
	assert.False(t, r.Finish(st))
	assert.True(t, r.Saved())

	rec, err := store.MatchByID("m-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 3, rec.Locked)
	assert.Equal(t, time.Second, rec.Duration)

	assert.Contains(t, logs.String(), "match started")
	assert.Contains(t, logs.String(), "match over")
}

func TestFinishSkipsEmptyAbandonedMatch(t *testing.T) {
	r, store, _ := newRecorder(t)

	r.Start(core.GameState{MatchID: "m-2"})
	assert.False(t, r.Finish(core.GameState{MatchID: "m-2", EndReason: core.EndReasonEnded}))

	rec, err := store.MatchByID("m-2")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFinishSavesAbandonedMatchWithLocks(t *testing.T) {
	r, store, _ := newRecorder(t)

	r.Start(core.GameState{MatchID: "m-4"})
	assert.True(t, r.Finish(core.GameState{MatchID: "m-4", Locked: 2, EndReason: core.EndReasonEnded}))

	rec, err := store.MatchByID("m-4")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, core.EndReasonEnded, rec.EndReason)
}

func TestFinishIgnoresOtherMatch(t *testing.T) {
	r, _, _ := newRecorder(t)

	r.Start(core.GameState{MatchID: "m-3"})
	assert.False(t, r.Finish(core.GameState{MatchID: "m-4", EndReason: "topped_out", Locked: 1}))
	assert.False(t, r.Saved())
}

func TestNilStore(t *testing.T) {
	r := New(nil, nil, "blocks")
	r.Start(core.GameState{MatchID: "m-5"})
	assert.False(t, r.Finish(core.GameState{MatchID: "m-5", EndReason: "topped_out", Locked: 2}))
	assert.True(t, r.Saved())
}

func TestObserveFollowsRestarts(t *testing.T) {
	r, store, _ := newRecorder(t)

	r.Observe(core.StepResult{State: core.GameState{MatchID: "a"}})
	r.Observe(core.StepResult{
		State:          core.GameState{MatchID: "a", Locked: 2, GameOver: true, EndReason: "topped_out"},
		GameOverSignal: true,
	})
	assert.True(t, r.Saved())

	// A restart shows up as a new match id.
	r.Observe(core.StepResult{State: core.GameState{MatchID: "b"}})
	assert.False(t, r.Saved())
	r.Observe(core.StepResult{
		State:          core.GameState{MatchID: "b", Locked: 1, GameOver: true, EndReason: "blocked"},
		GameOverSignal: true,
	})

	recs, err := store.RecentMatches("blocks", 10)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
