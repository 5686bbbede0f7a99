// Package db opens and initializes the notectl SQLite store.
//
// The full-text index uses the FTS5 extension, which the mattn/go-sqlite3
// driver only compiles when building with -tags sqlite_fts5. Build and test
// this module with that tag.
package db

import (
	"database/sql"
	"fmt"
)

// Initialize creates the notectl tables, indexes and the full-text index if
// they are not already present. It is idempotent: calling it on an
// already-initialized store is a no-op.
func Initialize(conn *sql.DB) error {
	if _, err := conn.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var ftsExists bool
	err := conn.QueryRow(
		`SELECT COUNT(*) > 0 FROM sqlite_master WHERE type='table' AND name='notes_fts'`,
	).Scan(&ftsExists)
	if err != nil {
		return fmt.Errorf("failed to check for notes_fts table: %w", err)
	}

	if !ftsExists {
		if _, err := conn.Exec(createFTSSchema); err != nil {
			return fmt.Errorf("failed to create full-text index: %w", err)
		}
		log.Debug().Msg("created notes_fts full-text index")
	}

	return nil
}
