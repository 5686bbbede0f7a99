//go:build sqlite_fts5

package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := OpenDBConnection(filepath.Join(t.TempDir(), "notes.db"), true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestInitializeCreatesAllStructures(t *testing.T) {
	conn := openTestDB(t)

	if err := Initialize(conn); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	for _, name := range []string{"notes", "tags", "todos", "templates", "notes_fts"} {
		var count int
		err := conn.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name,
		).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to query sqlite_master for %s: %v", name, err)
		}
		if count != 1 {
			t.Errorf("Expected table %s to exist, found %d entries", name, count)
		}
	}

	for _, name := range []string{"idx_tags_note_id", "idx_tags_tag"} {
		var count int
		err := conn.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`, name,
		).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to query sqlite_master for %s: %v", name, err)
		}
		if count != 1 {
			t.Errorf("Expected index %s to exist, found %d entries", name, count)
		}
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	conn := openTestDB(t)

	if err := Initialize(conn); err != nil {
		t.Fatalf("First Initialize failed: %v", err)
	}
	if err := Initialize(conn); err != nil {
		t.Fatalf("Second Initialize failed: %v", err)
	}

	// No duplicated structures.
	var count int
	err := conn.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE name='notes_fts'`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one notes_fts table, found %d", count)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	conn := openTestDB(t)

	var enabled int
	if err := conn.QueryRow("PRAGMA foreign_keys;").Scan(&enabled); err != nil {
		t.Fatalf("Failed to read foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("Expected foreign_keys pragma to be 1, got %d", enabled)
	}
}

func TestOpenDBConnectionRejectsBadSyncPragma(t *testing.T) {
	_, err := OpenDBConnection(":memory:", false, "SOMETIMES")
	if err == nil {
		t.Fatal("Expected error for invalid sync pragma, got nil")
	}
}
