package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one submitted run.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Seconds   int       `json:"seconds"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists runs in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and migrates it.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS scores (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			score      INTEGER NOT NULL,
			level      INTEGER NOT NULL,
			seconds    INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);
	`)
	if err != nil {
		return fmt.Errorf("leaderboard: migrate: %w", err)
	}
	return nil
}

// Insert stores a run, assigning it an id and timestamp.
func (s *Store) Insert(ctx context.Context, e Entry) (Entry, error) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, name, score, level, seconds, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Score, e.Level, e.Seconds, e.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("leaderboard: insert score: %w", err)
	}
	return e, nil
}

// Top returns the highest-scoring runs, best first.
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, score, level, seconds, created_at FROM scores ORDER BY score DESC, created_at ASC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: query top: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Level, &e.Seconds, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("leaderboard: scan row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
