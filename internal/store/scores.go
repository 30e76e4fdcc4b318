// Package store persists the top-score leaderboard in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS top_scores (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  kind       TEXT NOT NULL,
  name       TEXT NOT NULL,
  score      INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_top_scores_kind_score ON top_scores (kind, score DESC);
`

// Entry is one leaderboard row.
type Entry struct {
	Name  string `json:"userName"`
	Score int    `json:"score"`
}

// Scores is a SQLite-backed leaderboard, one table across all game
// kinds.
type Scores struct {
	db *sql.DB
}

// Open opens the score database and bootstraps the schema.
func Open(path string) (*Scores, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("score db path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open score db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping score db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create score schema: %w", err)
	}
	return &Scores{db: db}, nil
}

func (s *Scores) Close() error {
	return s.db.Close()
}

// Insert records one finished-game score.
func (s *Scores) Insert(ctx context.Context, kind, name string, score int) error {
	kind = strings.TrimSpace(kind)
	name = strings.TrimSpace(name)
	if kind == "" {
		return fmt.Errorf("kind is required")
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO top_scores (kind, name, score, created_at) VALUES (?, ?, ?, ?)`,
		kind, name, score, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// Top returns up to limit entries for a kind, best first.
func (s *Scores) Top(ctx context.Context, kind string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score FROM top_scores WHERE kind = ? ORDER BY score DESC, created_at ASC LIMIT ?`,
		kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
