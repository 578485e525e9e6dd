package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS checkpoints (
	name             TEXT PRIMARY KEY,
	current_line     INTEGER NOT NULL,
	style_content    TEXT NOT NULL,
	compaction_count INTEGER NOT NULL,
	updated_at       TEXT NOT NULL
);`

// SQLiteStore keeps checkpoints in a SQLite database, one row per named
// run. Several runs can share one database file.
type SQLiteStore struct {
	db   *sql.DB
	name string
}

// NewSQLiteStore opens or creates the database at path and ensures the
// checkpoint table exists. name identifies this run's row.
func NewSQLiteStore(path, name string) (*SQLiteStore, error) {
	if name == "" {
		name = "default"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create checkpoint directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite checkpoint db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create checkpoint schema: %w", err)
	}
	return &SQLiteStore{db: db, name: name}, nil
}

func (ss *SQLiteStore) Load(ctx context.Context) (*Checkpoint, error) {
	row := ss.db.QueryRowContext(ctx,
		`SELECT current_line, style_content, compaction_count, updated_at
		 FROM checkpoints WHERE name = ?`, ss.name)

	var cp Checkpoint
	var updatedAt string
	if err := row.Scan(&cp.CurrentLine, &cp.StyleContent, &cp.CompactionCount, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load checkpoint %q: %w", ss.name, err)
	}
	cp.Timestamp = parseStoredTime(updatedAt)
	return &cp, nil
}

func (ss *SQLiteStore) Save(ctx context.Context, cp *Checkpoint) error {
	_, err := ss.db.ExecContext(ctx,
		`INSERT INTO checkpoints (name, current_line, style_content, compaction_count, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			current_line = excluded.current_line,
			style_content = excluded.style_content,
			compaction_count = excluded.compaction_count,
			updated_at = excluded.updated_at`,
		ss.name, cp.CurrentLine, cp.StyleContent, cp.CompactionCount,
		cp.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save checkpoint %q: %w", ss.name, err)
	}
	return nil
}

func (ss *SQLiteStore) Close(context.Context) error {
	return ss.db.Close()
}

// parseStoredTime tolerates both RFC 3339 variants found in stored rows.
func parseStoredTime(s string) time.Time {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	return time.Time{}
}

var _ Store = (*SQLiteStore)(nil)
