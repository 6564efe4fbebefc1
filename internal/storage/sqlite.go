// Package storage provides SQLite-based persistence for finished beer pong
// sessions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies, with sqlx mapping rows onto structs.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// Store manages the SQLite database connection for session persistence.
type Store struct {
	db *sqlx.DB
}

// SessionRecord is one stored session result.
type SessionRecord struct {
	ID         int64
	GameID     string
	TableLabel string
	Hits       int
	Misses     int
	CupsLeft   int
	Won        bool
	Score      int
	Duration   float64 // Seconds
	CreatedAt  time.Time
}

// Accuracy returns hits per throw in [0, 1].
func (r SessionRecord) Accuracy() float64 {
	throws := r.Hits + r.Misses
	if throws == 0 {
		return 0
	}
	return float64(r.Hits) / float64(throws)
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			table_label TEXT NOT NULL DEFAULT '',
			hits INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			cups_left INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(game_id, score DESC);
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

// SaveSession records a finished session for the given game mode.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(gameID string, sum core.SessionSummary) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (game_id, table_label, hits, misses, cups_left, won, score, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, sum.TableLabel, sum.Hits, sum.Misses, sum.CupsLeft, sum.Won, sum.Score, sum.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, game_id, table_label, hits, misses, cups_left, won, score, duration_secs, created_at`

// RecentSessions retrieves the newest sessions for the given game.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// TopSessions retrieves the best N sessions for the given game.
// Results are ordered by score descending; ties keep the earlier session first.
func (s *Store) TopSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySessions(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// sessionRow is the database shape of a SessionRecord. The driver returns
// created_at either as time.Time or as text.
type sessionRow struct {
	ID         int64   `db:"id"`
	GameID     string  `db:"game_id"`
	TableLabel string  `db:"table_label"`
	Hits       int     `db:"hits"`
	Misses     int     `db:"misses"`
	CupsLeft   int     `db:"cups_left"`
	Won        bool    `db:"won"`
	Score      int     `db:"score"`
	Duration   float64 `db:"duration_secs"`
	CreatedAt  any     `db:"created_at"`
}

func (s *Store) querySessions(query string, args ...any) ([]SessionRecord, error) {
	var rows []sessionRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}

	records := make([]SessionRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, SessionRecord{
			ID:         r.ID,
			GameID:     r.GameID,
			TableLabel: r.TableLabel,
			Hits:       r.Hits,
			Misses:     r.Misses,
			CupsLeft:   r.CupsLeft,
			Won:        r.Won,
			Score:      r.Score,
			Duration:   r.Duration,
			CreatedAt:  parseTime(r.CreatedAt),
		})
	}
	return records, nil
}

// BestScore returns the highest score for the given game.
// Returns 0 if no sessions exist.
func (s *Store) BestScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.Get(&score, "SELECT MAX(score) FROM sessions WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearSessions deletes all sessions for the given game.
func (s *Store) ClearSessions(gameID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game mode.
type GameStats struct {
	GameID      string    `db:"game_id"`
	Sessions    int       `db:"sessions"`
	Wins        int       `db:"wins"`
	BestScore   int       `db:"best_score"`
	AvgScore    float64   `db:"avg_score"`
	TotalHits   int       `db:"total_hits"`
	TotalMisses int       `db:"total_misses"`
	LastPlayed  time.Time `db:"-"`
}

// WinRate returns the fraction of sessions that cleared the rack.
func (g GameStats) WinRate() float64 {
	if g.Sessions == 0 {
		return 0
	}
	return float64(g.Wins) / float64(g.Sessions)
}

const statsColumns = `COUNT(*) AS sessions,
		 COALESCE(SUM(won), 0) AS wins,
		 COALESCE(MAX(score), 0) AS best_score,
		 COALESCE(AVG(score), 0) AS avg_score,
		 COALESCE(SUM(hits), 0) AS total_hits,
		 COALESCE(SUM(misses), 0) AS total_misses`

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{}
	err := s.db.Get(stats, `SELECT ? AS game_id, `+statsColumns+` FROM sessions WHERE game_id = ?`, gameID, gameID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.Get(&lastPlayed,
		`SELECT created_at FROM sessions WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// statsRow adds the last played time to GameStats for grouped queries.
type statsRow struct {
	GameStats
	LastPlayed any `db:"last_played"`
}

// GetAllGamesStats retrieves statistics for all game modes that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	var rows []statsRow
	err := s.db.Select(&rows,
		`SELECT game_id, `+statsColumns+`, MAX(created_at) AS last_played
		 FROM sessions
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}

	stats := make(map[string]*GameStats, len(rows))
	for _, r := range rows {
		g := r.GameStats
		g.LastPlayed = parseTime(r.LastPlayed)
		stats[g.GameID] = &g
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
