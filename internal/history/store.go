// Package history persists submitted prompts and the in-progress draft in
// a local SQLite database.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Prompt is one submitted prompt.
type Prompt struct {
	ID        string
	Body      string
	CreatedAt time.Time
}

// Store wraps the prompts database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS prompts (
	id         TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prompts_created_at ON prompts(created_at);

CREATE TABLE IF NOT EXISTS draft (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	body       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Open opens (and if needed creates) the database at path, creating parent
// directories and applying the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Add records a submitted prompt and returns it with its assigned id.
func (s *Store) Add(body string) (Prompt, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to generate prompt id: %w", err)
	}
	p := Prompt{ID: id.String(), Body: body, CreatedAt: time.Now().UTC()}

	_, err = s.db.Exec(
		`INSERT INTO prompts (id, body, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Body, p.CreatedAt,
	)
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to insert prompt: %w", err)
	}
	return p, nil
}

// Recent returns up to limit prompts, newest first.
func (s *Store) Recent(limit int) ([]Prompt, error) {
	rows, err := s.db.Query(
		`SELECT id, body, created_at FROM prompts ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompts: %w", err)
	}
	defer rows.Close()

	var out []Prompt
	for rows.Next() {
		var p Prompt
		if err := rows.Scan(&p.ID, &p.Body, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prompts: %w", err)
	}
	return out, nil
}

// SaveDraft upserts the single draft row. An empty body clears the draft.
func (s *Store) SaveDraft(body string) error {
	if body == "" {
		return s.ClearDraft()
	}
	_, err := s.db.Exec(
		`INSERT INTO draft (id, body, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the saved draft, or "" when none exists.
func (s *Store) LoadDraft() (string, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM draft WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load draft: %w", err)
	}
	return body, nil
}

// ClearDraft removes the draft row.
func (s *Store) ClearDraft() error {
	if _, err := s.db.Exec(`DELETE FROM draft WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
