package progress

import (
	"context"
	"fmt"
	"strings"
)

// NewStore builds a checkpoint store for a backend name.
//
//	file      checkpoint JSON kept at path; dsn unused
//	sqlite    database file at dsn; path names this run's row
//	postgres  pool from dsn; path names this run's row
//	mongo     client from dsn URI; path names this run's document
//	memory    nothing persisted, test and dry-run use
func NewStore(ctx context.Context, backend, path, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "file":
		return NewFileStore(path), nil
	case "sqlite":
		if dsn == "" {
			dsn = "stylist.db"
		}
		return NewSQLiteStore(dsn, path)
	case "postgres", "postgresql":
		if dsn == "" {
			return nil, fmt.Errorf("postgres checkpoint store requires a DSN")
		}
		return NewPostgresStore(ctx, dsn, path)
	case "mongo", "mongodb":
		if dsn == "" {
			return nil, fmt.Errorf("mongo checkpoint store requires a URI")
		}
		return NewMongoStore(ctx, dsn, "", "", path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown checkpoint store: %s", backend)
	}
}
