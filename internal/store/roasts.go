// Package store archives generated roasts in SQLite. Writes are
// best-effort from the delivery path: a store failure never affects the
// response a user sees.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one archived roast.
type Record struct {
	ID              string
	Username        string
	ProfileImageURL string
	Headline        string
	Score           int
	RoastBody       string
	DatingLife      string
	CreatedAt       time.Time
}

// RoastStore persists roast records.
type RoastStore struct {
	db *sql.DB
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*RoastStore, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &RoastStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *RoastStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS roasts (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		profile_image_url TEXT NOT NULL DEFAULT '',
		headline TEXT NOT NULL,
		score INTEGER NOT NULL,
		roast_body TEXT NOT NULL,
		dating_life TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_roasts_created_at ON roasts(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save stores a record, assigning an ID and timestamp when absent.
func (s *RoastStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roasts (id, username, profile_image_url, headline, score, roast_body, dating_life, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Username, rec.ProfileImageURL, rec.Headline, rec.Score,
		rec.RoastBody, rec.DatingLife, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save roast: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *RoastStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, profile_image_url, headline, score, roast_body, dating_life, created_at
		FROM roasts ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query roasts: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.ProfileImageURL, &rec.Headline,
			&rec.Score, &rec.RoastBody, &rec.DatingLife, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roast: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database.
func (s *RoastStore) Close() error {
	return s.db.Close()
}
