package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LevelResult is one completed level.
type LevelResult struct {
	ID        int64
	GameID    string
	Level     int
	Moves     int // Player actions: grid moves or pin pulls
	Ticks     int // Simulation ticks until the outcome
	CreatedAt time.Time
}

// Better reports whether r beats other: fewer moves, then fewer ticks.
func (r LevelResult) Better(other LevelResult) bool {
	if r.Moves != other.Moves {
		return r.Moves < other.Moves
	}
	return r.Ticks < other.Ticks
}

// SaveResult records a completed level.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO level_results (game_id, level, moves, ticks) VALUES (?, ?, ?, ?)",
		r.GameID, r.Level, r.Moves, r.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestResults returns the best result of every completed level, ordered by
// level.
func (s *Store) BestResults(gameID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, level, moves, ticks, created_at
		 FROM level_results
		 WHERE game_id = ?
		 ORDER BY level, moves, ticks, id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var best []LevelResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		// Rows are sorted best-first within a level.
		if n := len(best); n > 0 && best[n-1].Level == r.Level {
			continue
		}
		best = append(best, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// LevelBest returns the best result for one level, or nil if the level was
// never completed.
func (s *Store) LevelBest(gameID string, level int) (*LevelResult, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, level, moves, ticks, created_at
		 FROM level_results
		 WHERE game_id = ? AND level = ?
		 ORDER BY moves, ticks, id
		 LIMIT 1`,
		gameID, level,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Completed  int // Distinct levels completed
	Clears     int // Total completions
	TotalMoves int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a specific game.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT level), COUNT(*), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM level_results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Completed, &stats.Clears, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (LevelResult, error) {
	var r LevelResult
	var createdAt any
	if err := sc.Scan(&r.ID, &r.GameID, &r.Level, &r.Moves, &r.Ticks, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}
