// Package storage provides SQLite-based persistence for finished games.
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

	"github.com/vovakirdan/blockfall/internal/core"
)

// End reasons recorded with each game.
const (
	EndGameOver = "game_over"
	EndExit     = "exit"
	EndRestart  = "restart"
)

// Store manages the SQLite database connection for game history.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID           string // UUID, assigned by SaveGame when empty
	GameID       string // registry ID, e.g. "tetris_classic"
	Player       string
	PiecesLocked int
	Ticks        int
	Seed         int64
	EndReason    string // EndGameOver, EndExit or EndRestart
	CreatedAt    time.Time
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
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			pieces_locked INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_game_id ON games(game_id);
		CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at DESC);
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

// SaveGame records a finished game and returns its ID.
func (s *Store) SaveGame(r GameRecord) (string, error) {
	if r.GameID == "" {
		return "", errors.New("storage: game record without game id")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	_, err := s.db.Exec(
		`INSERT INTO games (id, game_id, player, pieces_locked, ticks, seed, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Player, r.PiecesLocked, r.Ticks, r.Seed, r.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return r.ID, nil
}

// MaxRecentGames caps how many rows RecentGames returns.
const MaxRecentGames = 500

const selectGames = `SELECT id, game_id, player, pieces_locked, ticks, seed, end_reason, created_at FROM games`

// RecentGames returns the most recent games, newest first.
// An empty gameID returns games of every variant.
func (s *Store) RecentGames(gameID string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	limit = core.Clamp(limit, 1, MaxRecentGames)

	var (
		rows *sql.Rows
		err  error
	)
	if gameID == "" {
		rows, err = s.db.Query(selectGames+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(selectGames+` WHERE game_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
			gameID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		r, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// GameByID retrieves a game by its ID. Returns nil if it does not exist.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	r, err := scanGame(s.db.QueryRow(selectGames+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// BestGame returns the most pieces locked in a single game of gameID.
// Returns 0 if no games exist.
func (s *Store) BestGame(gameID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(pieces_locked) FROM games WHERE game_id = ?",
		gameID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best game: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// ClearGames deletes the history of the given game.
func (s *Store) ClearGames(gameID string) error {
	_, err := s.db.Exec("DELETE FROM games WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	GamesCount  int
	BestPieces  int
	AvgPieces   float64
	TotalPieces int64
	TotalTicks  int64
	LastPlayed  time.Time
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(pieces_locked), AVG(pieces_locked), SUM(pieces_locked), SUM(ticks), MAX(created_at)
		 FROM games
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.BestPieces, &st.AvgPieces,
			&st.TotalPieces, &st.TotalTicks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (GameRecord, error) {
	var r GameRecord
	var createdAt any
	err := row.Scan(&r.ID, &r.GameID, &r.Player, &r.PiecesLocked, &r.Ticks, &r.Seed, &r.EndReason, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime values.
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
