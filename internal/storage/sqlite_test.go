package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/geirtris/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, gameID string, locked int, ticks uint64) string {
	t.Helper()
	id := uuid.NewString()
	_, err := store.SaveMatch(MatchRecord{
		MatchID:   id,
		GameID:    gameID,
		Locked:    locked,
		Ticks:     ticks,
		EndReason: "topped_out",
		Duration:  1500 * time.Millisecond,
	})
	require.NoError(t, err)
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created in nested directory")
}

func TestSaveAndFindMatch(t *testing.T) {
	store := openTestStore(t)
	id := save(t, store, "blocks", 12, 340)

	rec, err := store.MatchByID(id)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, id, rec.MatchID)
	assert.Equal(t, "blocks", rec.GameID)
	assert.Equal(t, 12, rec.Locked)
	assert.Equal(t, uint64(340), rec.Ticks)
	assert.Equal(t, "topped_out", rec.EndReason)
	assert.Equal(t, 1500*time.Millisecond, rec.Duration)
	assert.False(t, rec.CreatedAt.IsZero())

	missing, err := store.MatchByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveMatchAssignsID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveMatch(MatchRecord{GameID: "blocks", EndReason: "ended"})
	require.NoError(t, err)

	recent, err := store.RecentMatches("blocks", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	_, err = uuid.Parse(recent[0].MatchID)
	assert.NoError(t, err)
}

func TestSaveMatchDuplicateID(t *testing.T) {
	store := openTestStore(t)
	id := save(t, store, "blocks", 1, 1)

	_, err := store.SaveMatch(MatchRecord{MatchID: id, GameID: "blocks", EndReason: "ended"})
	assert.Error(t, err)
}

func TestRecentMatches(t *testing.T) {
	store := openTestStore(t)
	first := save(t, store, "blocks", 3, 10)
	save(t, store, "blocks", 1, 10)
	last := save(t, store, "blocks", 2, 10)
	save(t, store, "blocks_top", 9, 10)

	recent, err := store.RecentMatches("blocks", 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, last, recent[0].MatchID)
	assert.Equal(t, first, recent[2].MatchID)

	limited, err := store.RecentMatches("blocks", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestBestMatches(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		save(t, store, "blocks", (i+1)*10, 100)
	}
	longer := save(t, store, "blocks", 50, 500)

	best, err := store.BestMatches("blocks", 3)
	require.NoError(t, err)
	require.Len(t, best, 3)

	assert.Equal(t, longer, best[0].MatchID, "ties go to the longer match")
	assert.Equal(t, 50, best[1].Locked)
	assert.Equal(t, 40, best[2].Locked)
}

func TestClearMatches(t *testing.T) {
	store := openTestStore(t)
	save(t, store, "blocks", 1, 1)
	save(t, store, "blocks", 2, 2)
	save(t, store, "blocks_top", 3, 3)

	require.NoError(t, store.ClearMatches("blocks"))

	blocks, err := store.RecentMatches("blocks", 10)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	top, err := store.RecentMatches("blocks_top", 10)
	require.NoError(t, err)
	assert.Len(t, top, 1, "other games are not affected")
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("blocks")
	require.NoError(t, err)
	assert.Equal(t, &GameStats{GameID: "blocks"}, empty)

	save(t, store, "blocks", 4, 100)
	save(t, store, "blocks", 8, 300)
	save(t, store, "blocks_top", 1, 5)

	stats, err := store.GetGameStats("blocks")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Matches)
	assert.Equal(t, 8, stats.BestLocked)
	assert.InDelta(t, 6.0, stats.AvgLocked, 0.001)
	assert.Equal(t, int64(400), stats.TotalTicks)
	assert.Equal(t, 3*time.Second, stats.TotalPlayed)
	assert.False(t, stats.LastPlayed.IsZero())

	all, err := store.GetAllGamesStats()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 1, all["blocks_top"].Matches)
}

func TestRecordFromState(t *testing.T) {
	store := openTestStore(t)
	st := core.GameState{Locked: 7, Ticks: 90, GameOver: true, MatchID: uuid.NewString(), EndReason: "blocked"}

	_, err := store.SaveMatch(RecordFromState("blocks_top", st, 2*time.Second))
	require.NoError(t, err)

	rec, err := store.MatchByID(st.MatchID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "blocks_top", rec.GameID)
	assert.Equal(t, 7, rec.Locked)
	assert.Equal(t, "blocked", rec.EndReason)
	assert.Equal(t, 2*time.Second, rec.Duration)
}
