package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"
)

// Package-level logger, disabled unless the caller opts in via SetLogger.
var log = zerolog.Nop()

// SetLogger routes db diagnostics (connection options, schema init) to the
// given logger. The CLI wires this up when --verbose is set.
func SetLogger(l zerolog.Logger) {
	log = l
}

// validSyncModes lists the allowed values for the synchronous pragma.
var validSyncModes = map[string]bool{
	"OFF":    true,
	"NORMAL": true,
	"FULL":   true,
	"EXTRA":  true,
}

// OpenDBConnection establishes a connection to a SQLite database with the
// specified options. baseDSN is the initial data source name (e.g. a file
// path, or ":memory:" for tests). enableWAL sets journal_mode=WAL.
// syncPragma sets the synchronous pragma (OFF, NORMAL, FULL, EXTRA).
// Foreign key enforcement is always enabled; the tag relation relies on
// ON DELETE CASCADE.
func OpenDBConnection(baseDSN string, enableWAL bool, syncPragma string) (*sql.DB, error) {
	params := url.Values{}

	// Set as a DSN parameter so every pooled connection gets it, not just the
	// one a PRAGMA statement happens to run on.
	params.Add("_foreign_keys", "on")

	if enableWAL {
		params.Add("_journal_mode", "WAL")
	}

	if syncPragma != "" {
		ucSyncPragma := strings.ToUpper(syncPragma)
		if !validSyncModes[ucSyncPragma] {
			return nil, fmt.Errorf("invalid sync pragma value: %s. Must be one of OFF, NORMAL, FULL, EXTRA", syncPragma)
		}
		params.Add("_synchronous", ucSyncPragma)
	}

	constructedDSN := baseDSN
	if len(params) > 0 {
		if strings.Contains(baseDSN, "?") {
			constructedDSN += "&" + params.Encode()
		} else {
			constructedDSN += "?" + params.Encode()
		}
	}

	log.Debug().Str("dsn", constructedDSN).Msg("opening database")

	conn, err := sql.Open("sqlite3", constructedDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database with DSN '%s': %w", constructedDSN, err)
	}

	// Ping so a bad path or unreadable file surfaces here instead of on the
	// first query.
	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database with DSN '%s': %w", constructedDSN, err)
	}

	return conn, nil
}
