package db

const (
	// Schema defines the notectl store: notes, the tag relation, todos and
	// templates, plus the secondary indexes on tags. Every statement is
	// idempotent so Initialize can run on every invocation.
	Schema = `
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY,
    content TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    category TEXT,
    is_daily BOOLEAN DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tags (
    note_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    tag TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tags_note_id ON tags(note_id);
CREATE INDEX IF NOT EXISTS idx_tags_tag ON tags(tag);

CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY,
    task TEXT NOT NULL,
    completed BOOLEAN DEFAULT 0,
    priority TEXT DEFAULT 'medium',
    due_date INTEGER,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS templates (
    name TEXT PRIMARY KEY,
    content TEXT NOT NULL
);
`

	// createFTSSchema builds the full-text index over note content, keyed by
	// the note rowid. Created separately from Schema because
	// CREATE VIRTUAL TABLE ... IF NOT EXISTS does not behave reliably across
	// SQLite versions; Initialize probes sqlite_master first instead.
	createFTSSchema = `CREATE VIRTUAL TABLE notes_fts USING fts5(content, content_rowid=id);`
)
