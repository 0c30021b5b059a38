// Package db opens the SQLite working store that backs the region catalog.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MemoryPath selects a private in-memory store that lives as long as the *sql.DB.
const MemoryPath = ":memory:"

// filePragmas apply only to on-disk stores; journal settings are meaningless in memory.
const filePragmas = `
	PRAGMA journal_mode = WAL;
	PRAGMA busy_timeout = 5000;
`

// Open opens the store at path and checks that it answers.
// An in-memory store is limited to one connection so every query sees the same data.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = MemoryPath
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store %s: %w", path, err)
	}

	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	} else if _, err := db.ExecContext(ctx, filePragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite store %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite store %s: %w", path, err)
	}

	return db, nil
}
