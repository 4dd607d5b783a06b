package storage

import (
	"fmt"
	"time"
)

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	Matches     int
	BestLocked  int
	AvgLocked   float64
	TotalTicks  int64
	TotalPlayed time.Duration
	LastPlayed  time.Time
}

const statsColumns = `game_id, COUNT(*), COALESCE(MAX(locked), 0), COALESCE(AVG(locked), 0),
	COALESCE(SUM(ticks), 0), COALESCE(SUM(duration_ms), 0), MAX(created_at)`

// GetGameStats retrieves aggregated statistics for a specific game.
// A game with no matches yields zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT `+statsColumns+` FROM matches WHERE game_id = ? GROUP BY game_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	defer rows.Close()

	stats := &GameStats{GameID: gameID}
	if rows.Next() {
		if stats, err = scanStats(rows); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(`SELECT ` + statsColumns + ` FROM matches GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*GameStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		all[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}

func scanStats(row scanner) (*GameStats, error) {
	var st GameStats
	var durationMS int64
	var lastPlayed any
	if err := row.Scan(&st.GameID, &st.Matches, &st.BestLocked, &st.AvgLocked, &st.TotalTicks, &durationMS, &lastPlayed); err != nil {
		return nil, err
	}
	st.TotalPlayed = time.Duration(durationMS) * time.Millisecond
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}
