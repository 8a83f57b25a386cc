// Package history records completed backups in a local SQLite database so
// the UI can show when worlds were last backed up.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one completed backup.
type Record struct {
	ID        string
	CreatedAt time.Time
	Archive   string
	SizeBytes int64
	Worlds    int
	Duration  time.Duration
}

// Store persists backup records.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open initializes the database at the given path, creating the schema when
// missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS backups (
		id          TEXT PRIMARY KEY,
		created_at  TEXT NOT NULL,
		archive     TEXT NOT NULL,
		size_bytes  INTEGER NOT NULL DEFAULT 0,
		worlds      INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_backups_created_at ON backups(created_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Record inserts a completed backup. The record's ID is generated and
// returned.
func (s *Store) Record(ctx context.Context, rec Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO backups (id, created_at, archive, size_bytes, worlds, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, createdAt.UTC().Format(time.RFC3339), rec.Archive,
		rec.SizeBytes, rec.Worlds, rec.Duration.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("failed to record backup: %w", err)
	}
	return id, nil
}

// List returns the most recent backups, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, archive, size_bytes, worlds, duration_ms
		FROM backups ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		var durationMs int64
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Archive, &rec.SizeBytes, &rec.Worlds, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan backup row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Last returns the most recent backup, or ok=false when none exist.
func (s *Store) Last(ctx context.Context) (Record, bool, error) {
	records, err := s.List(ctx, 1)
	if err != nil {
		return Record{}, false, err
	}
	if len(records) == 0 {
		return Record{}, false, nil
	}
	return records[0], true, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
