// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/geirtris/internal/core"
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.geirtris/geirtris.db"

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchRecord is the stored outcome of one finished match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	GameID    string
	Locked    int    // Blocks locked before the match ended
	Ticks     uint64 // Fall ticks processed
	EndReason string // one of the core.EndReason values
	Duration  time.Duration
	CreatedAt time.Time
}

// RecordFromState builds a record from the final state of a match.
func RecordFromState(gameID string, st core.GameState, played time.Duration) MatchRecord {
	return MatchRecord{
		MatchID:   st.MatchID,
		GameID:    gameID,
		Locked:    st.Locked,
		Ticks:     st.Ticks,
		EndReason: st.EndReason,
		Duration:  played,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			locked INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_best ON matches(game_id, locked DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match. A missing MatchID gets a fresh UUID.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(rec MatchRecord) (int64, error) {
	if rec.MatchID == "" {
		rec.MatchID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO matches (match_id, game_id, locked, ticks, end_reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.MatchID, rec.GameID, rec.Locked, int64(rec.Ticks), rec.EndReason, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, match_id, game_id, locked, ticks, end_reason, duration_ms, created_at`

// RecentMatches retrieves the latest matches for the given game, newest first.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// BestMatches retrieves the matches that locked the most blocks.
// Ties go to the longer match.
func (s *Store) BestMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryMatches(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY locked DESC, ticks DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)

	rec, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// ClearMatches deletes all matches for the given game.
func (s *Store) ClearMatches(gameID string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

func (s *Store) queryMatches(query string, args ...any) ([]MatchRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var rec MatchRecord
	var ticks, durationMS int64
	var createdAt any

	if err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.GameID,
		&rec.Locked,
		&ticks,
		&rec.EndReason,
		&durationMS,
		&createdAt,
	); err != nil {
		return MatchRecord{}, err
	}

	rec.Ticks = uint64(ticks)
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
