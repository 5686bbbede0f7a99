// Package notes implements the note repository: CRUD, filtered listing,
// the tag relation and full-text search over note content.
//
// Note content is authoritative in the notes table; the notes_fts index is a
// derived cache. Every mutation that touches content updates both inside one
// transaction so the index never drifts from the table.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unowned-ai/notectl/pkg/utils"
)

const (
	selectNoteColumns = `SELECT n.id, n.content, n.created_at, n.updated_at, n.category, n.is_daily`

	insertNoteStatement = `
	INSERT INTO notes (content, created_at, updated_at, category, is_daily)
	VALUES (?, ?, ?, ?, ?)
	`

	insertFTSStatement = `INSERT INTO notes_fts (rowid, content) VALUES (?, ?)`
	deleteFTSStatement = `DELETE FROM notes_fts WHERE rowid = ?`

	insertTagStatement     = `INSERT INTO tags (note_id, tag) VALUES (?, ?)`
	deleteNoteTagStatement = `DELETE FROM tags WHERE note_id = ?`

	getNoteStatement = selectNoteColumns + ` FROM notes n WHERE n.id = ?`

	updateNoteStatement = `UPDATE notes SET content = ?, updated_at = ? WHERE id = ?`
	deleteNoteStatement = `DELETE FROM notes WHERE id = ?`

	tagsForNoteStatement = `SELECT tag FROM tags WHERE note_id = ?`

	countNotesStatement = `SELECT COUNT(*) FROM notes`

	findDailyStatement = selectNoteColumns + `
	FROM notes n
	WHERE n.is_daily = 1 AND n.created_at >= ? AND n.created_at <= ?
	LIMIT 1
	`
)

// Add inserts a note, mirrors its content into the full-text index and
// stores one row per trimmed tag, all in a single transaction. It returns the
// newly assigned note id.
//
// Content validation (non-empty after trimming) is the caller's job.
func Add(ctx context.Context, conn *sql.DB, content string, tags []string, category string, isDaily bool) (int64, error) {
	now := time.Now().Unix()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertNoteStatement, content, now, now, nullIfEmpty(category), isDaily)
	if err != nil {
		return 0, fmt.Errorf("failed to insert note: %w", err)
	}

	noteID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted note id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertFTSStatement, noteID, content); err != nil {
		return 0, fmt.Errorf("failed to index note content: %w", err)
	}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, insertTagStatement, noteID, tag); err != nil {
			return 0, fmt.Errorf("failed to insert tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit note: %w", err)
	}

	return noteID, nil
}

// List returns notes matching the filter, newest first, capped at
// filter.Limit. All filters combine with AND.
func List(ctx context.Context, conn *sql.DB, filter ListFilter) ([]Note, error) {
	var conditions []string
	var args []any

	if filter.TodayOnly {
		startOfDay, _ := utils.DayBounds(time.Now())
		conditions = append(conditions, "n.created_at >= ?")
		args = append(args, startOfDay.Unix())
	}
	if filter.Category != "" {
		conditions = append(conditions, "n.category = ?")
		args = append(args, filter.Category)
	}
	if filter.Tag != "" {
		conditions = append(conditions, "n.id IN (SELECT note_id FROM tags WHERE tag = ?)")
		args = append(args, filter.Tag)
	}

	query := selectNoteColumns + " FROM notes n"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY n.created_at DESC LIMIT ?"
	args = append(args, filter.Limit)

	return queryNotes(ctx, conn, query, args...)
}

// Get returns the note with the given id, or nil if it does not exist.
func Get(ctx context.Context, conn *sql.DB, id int64) (*Note, error) {
	note, err := scanNote(conn.QueryRowContext(ctx, getNoteStatement, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note %d: %w", id, err)
	}

	note.Tags, err = tagsForNote(ctx, conn, note.ID)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces the note's content, refreshes updated_at and re-synchronizes
// the full-text index entry in one transaction. created_at is immutable.
// It reports whether the note existed.
func Update(ctx context.Context, conn *sql.DB, id int64, content string) (bool, error) {
	now := time.Now().Unix()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, updateNoteStatement, content, now, id)
	if err != nil {
		return false, fmt.Errorf("failed to update note %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := reindex(ctx, tx, id, content); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit note update: %w", err)
	}
	return true, nil
}

// Delete removes the note's index entry, its tag rows and the note row in one
// transaction, and reports whether the note existed. Index and tag rows must
// never outlive their note.
func Delete(ctx context.Context, conn *sql.DB, id int64) (bool, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteFTSStatement, id); err != nil {
		return false, fmt.Errorf("failed to remove index entry for note %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, deleteNoteTagStatement, id); err != nil {
		return false, fmt.Errorf("failed to remove tags for note %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, deleteNoteStatement, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit note delete: %w", err)
	}
	return affected > 0, nil
}

// Count returns the total number of notes.
func Count(ctx context.Context, conn *sql.DB) (int64, error) {
	var count int64
	if err := conn.QueryRowContext(ctx, countNotesStatement).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

// FindDaily returns the daily note whose created_at falls within the local
// calendar day containing date, or nil if none exists. Daily-note uniqueness
// is enforced here at query time, not by a constraint.
func FindDaily(ctx context.Context, conn *sql.DB, date time.Time) (*Note, error) {
	start, end := utils.DayBounds(date)

	note, err := scanNote(conn.QueryRowContext(ctx, findDailyStatement, start.Unix(), end.Unix()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find daily note: %w", err)
	}

	note.Tags, err = tagsForNote(ctx, conn, note.ID)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// reindex re-synchronizes the full-text index entry for a note. FTS5 has no
// in-place update for externally keyed rows, so the entry is dropped and
// reinserted.
func reindex(ctx context.Context, tx *sql.Tx, id int64, content string) error {
	if _, err := tx.ExecContext(ctx, deleteFTSStatement, id); err != nil {
		return fmt.Errorf("failed to drop index entry for note %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, insertFTSStatement, id, content); err != nil {
		return fmt.Errorf("failed to reinsert index entry for note %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var note Note
	var createdAt, updatedAt int64
	var category sql.NullString

	if err := row.Scan(&note.ID, &note.Content, &createdAt, &updatedAt, &category, &note.IsDaily); err != nil {
		return Note{}, err
	}

	note.CreatedAt = time.Unix(createdAt, 0)
	note.UpdatedAt = time.Unix(updatedAt, 0)
	note.Category = category.String
	return note, nil
}

// queryNotes runs a query over selectNoteColumns, drains the rows, then
// populates each note's tags with a second lookup. Draining first keeps the
// tag lookups off the connection the cursor is holding.
func queryNotes(ctx context.Context, conn *sql.DB, query string, args ...any) ([]Note, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var results []Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		results = append(results, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}
	rows.Close()

	for i := range results {
		results[i].Tags, err = tagsForNote(ctx, conn, results[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func tagsForNote(ctx context.Context, conn *sql.DB, noteID int64) ([]string, error) {
	rows, err := conn.QueryContext(ctx, tagsForNoteStatement, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for note %d: %w", noteID, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
