// Package storage provides SQLite-based persistence for puzzle progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
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
		CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_game ON level_results(game_id, level);
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

// GetInt returns the value stored under key. ok is false when the key is unset.
func (s *Store) GetInt(key string) (value int, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM progress WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, true, nil
}

// SetInt stores value under key, replacing any previous value.
func (s *Store) SetInt(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// CurrentLevelKey and UnlockedLevelsKey name the two progress values of a
// game. prefix is the game's progress key, e.g. "pin-game".
func CurrentLevelKey(prefix string) string   { return prefix + "-current-level" }
func UnlockedLevelsKey(prefix string) string { return prefix + "-unlocked-levels" }

// CurrentLevel returns the level the player last played. Defaults to 1.
func (s *Store) CurrentLevel(prefix string) (int, error) {
	return s.intOrOne(CurrentLevelKey(prefix))
}

// SaveCurrentLevel records the level the player is on.
func (s *Store) SaveCurrentLevel(prefix string, level int) error {
	return s.SetInt(CurrentLevelKey(prefix), level)
}

// UnlockedLevels returns the highest unlocked level. Defaults to 1.
func (s *Store) UnlockedLevels(prefix string) (int, error) {
	return s.intOrOne(UnlockedLevelsKey(prefix))
}

// SaveUnlockedLevels raises the highest unlocked level. Lower values are
// ignored so progress never goes backwards.
func (s *Store) SaveUnlockedLevels(prefix string, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value)`,
		UnlockedLevelsKey(prefix), level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot unlock level %d: %w", level, err)
	}
	return nil
}

// ResetProgress drops the progress values and results of a game.
func (s *Store) ResetProgress(prefix string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM progress WHERE key IN (?, ?)",
		CurrentLevelKey(prefix), UnlockedLevelsKey(prefix)); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM level_results WHERE game_id = ?", prefix); err != nil {
		return fmt.Errorf("storage: cannot reset results: %w", err)
	}
	return tx.Commit()
}

func (s *Store) intOrOne(key string) (int, error) {
	v, ok, err := s.GetInt(key)
	if err != nil {
		return 0, err
	}
	if !ok || v < 1 {
		return 1, nil
	}
	return v, nil
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
