// Package store persists passport cards and their slot images in a
// local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound indicates a card that does not exist.
var ErrNotFound = errors.New("card not found")

// ErrUnknownSlot indicates a slot key outside the fixed set.
var ErrUnknownSlot = errors.New("unknown slot key")

// Card is one passport card. Timestamps are UTC.
type Card struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store manages card persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS images (
    card_id INTEGER NOT NULL,
    slot_key TEXT NOT NULL,
    png BLOB NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (card_id, slot_key),
    FOREIGN KEY (card_id) REFERENCES cards(id) ON DELETE CASCADE
);
`

// Open initializes or connects to the card database, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateCard inserts a new card with the given name. Names are unique.
func (s *Store) CreateCard(ctx context.Context, name string) (*Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("card name must not be empty")
	}
	ts := timestamp()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (name, created_at, updated_at) VALUES (?, ?, ?)`,
		name, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetCard(ctx, id)
}

// GetCard fetches a card by id.
func (s *Store) GetCard(ctx context.Context, id int64) (*Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM cards WHERE id = ?`, id)
	return scanCard(row)
}

// FindCardByName fetches a card by exact name.
func (s *Store) FindCardByName(ctx context.Context, name string) (*Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM cards WHERE name = ?`, name)
	return scanCard(row)
}

func scanCard(row *sql.Row) (*Card, error) {
	var c Card
	var created, updated string
	if err := row.Scan(&c.ID, &c.Name, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan card: %w", err)
	}
	c.CreatedAt = parseTime(created)
	c.UpdatedAt = parseTime(updated)
	return &c, nil
}

// ListCards returns all cards ordered by name, case-insensitively.
func (s *Store) ListCards(ctx context.Context) ([]*Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM cards ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []*Card
	for rows.Next() {
		var c Card
		var created, updated string
		if err := rows.Scan(&c.ID, &c.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		c.CreatedAt = parseTime(created)
		c.UpdatedAt = parseTime(updated)
		cards = append(cards, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

// RenameCard changes a card's name in place and bumps updated_at.
func (s *Store) RenameCard(ctx context.Context, id int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.New("card name must not be empty")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE cards SET name = ?, updated_at = ? WHERE id = ?`,
		newName, timestamp(), id,
	)
	if err != nil {
		return fmt.Errorf("rename card: %w", err)
	}
	return requireRow(res)
}

// DeleteCard removes a card; its slot images cascade away with it.
func (s *Store) DeleteCard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
