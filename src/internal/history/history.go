// Package history persists generated citations in a capped, newest-first
// SQLite log.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"refgen/src/internal/schema"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 20

// Entry is one generated citation.
type Entry struct {
	ID        string        `json:"id" yaml:"id"`
	Style     string        `json:"style" yaml:"style"`
	Text      string        `json:"text" yaml:"text"`
	Record    schema.Record `json:"record" yaml:"record"`
	CreatedAt time.Time     `json:"createdAt" yaml:"created_at"`
}

// Store is an append-only history capped at Limit entries. Appending past the
// cap drops the oldest entries.
type Store struct {
	db    *sql.DB
	limit int
}

// Open opens (creating if needed) the history database at path.
func Open(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, limit: limit}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS history (
  seq        INTEGER PRIMARY KEY AUTOINCREMENT,
  id         TEXT NOT NULL UNIQUE,
  style      TEXT NOT NULL,
  text       TEXT NOT NULL,
  record     TEXT NOT NULL,
  created_at TEXT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("creating history schema: %w", err)
	}
	return nil
}

// Append stores e, assigning an ID and timestamp when missing, then trims the
// log to the newest Limit entries.
func (s *Store) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	rec, err := json.Marshal(e.Record)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (id, style, text, record, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Style, e.Text, string(rec), e.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return Entry{}, fmt.Errorf("appending history: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`,
		s.limit); err != nil {
		return Entry{}, fmt.Errorf("trimming history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, style, text, record, created_at FROM history ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			rec, at string
		)
		if err := rows.Scan(&e.ID, &e.Style, &e.Text, &rec, &at); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rec), &e.Record); err != nil {
			return nil, fmt.Errorf("decoding history %s: %w", e.ID, err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("decoding history %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
