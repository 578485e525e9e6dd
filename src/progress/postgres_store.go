package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS checkpoints (
	name             TEXT PRIMARY KEY,
	current_line     BIGINT NOT NULL,
	style_content    TEXT NOT NULL,
	compaction_count BIGINT NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);`

// PostgresStore keeps checkpoints in Postgres, one row per named run.
type PostgresStore struct {
	DB   *pgxpool.Pool
	name string
}

// NewPostgresStore connects to Postgres, ensures the checkpoint table
// exists, and returns a store bound to name's row.
func NewPostgresStore(ctx context.Context, connStr, name string) (*PostgresStore, error) {
	if name == "" {
		name = "default"
	}
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if _, err := db.Exec(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create checkpoint schema: %w", err)
	}
	return &PostgresStore{DB: db, name: name}, nil
}

func (ps *PostgresStore) Load(ctx context.Context) (*Checkpoint, error) {
	var cp Checkpoint
	err := ps.DB.QueryRow(ctx,
		`SELECT current_line, style_content, compaction_count, updated_at
		 FROM checkpoints WHERE name = $1`, ps.name).
		Scan(&cp.CurrentLine, &cp.StyleContent, &cp.CompactionCount, &cp.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load checkpoint %q: %w", ps.name, err)
	}
	return &cp, nil
}

func (ps *PostgresStore) Save(ctx context.Context, cp *Checkpoint) error {
	_, err := ps.DB.Exec(ctx,
		`INSERT INTO checkpoints (name, current_line, style_content, compaction_count, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET
			current_line = EXCLUDED.current_line,
			style_content = EXCLUDED.style_content,
			compaction_count = EXCLUDED.compaction_count,
			updated_at = EXCLUDED.updated_at`,
		ps.name, cp.CurrentLine, cp.StyleContent, cp.CompactionCount, cp.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("save checkpoint %q: %w", ps.name, err)
	}
	return nil
}

func (ps *PostgresStore) Close(context.Context) error {
	if ps.DB != nil {
		ps.DB.Close()
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
