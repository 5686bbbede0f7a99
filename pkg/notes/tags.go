package notes

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	listTagsStatement = `SELECT tag, COUNT(*) AS cnt FROM tags GROUP BY tag ORDER BY cnt DESC`

	renameTagStatement = `UPDATE tags SET tag = ? WHERE tag = ?`

	removeTagStatement = `DELETE FROM tags WHERE note_id = ? AND tag = ?`
)

// ListTags returns every distinct tag with the number of tag rows carrying
// it, most used first.
func ListTags(ctx context.Context, conn *sql.DB) ([]TagCount, error) {
	rows, err := conn.QueryContext(ctx, listTagsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var counts []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tag count row: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag count rows: %w", err)
	}
	return counts, nil
}

// RenameTag bulk-renames every tag row matching old to new and returns the
// number of rows changed. A note already tagged new keeps both rows; rename
// does not merge or deduplicate.
func RenameTag(ctx context.Context, conn *sql.DB, old, new string) (int64, error) {
	res, err := conn.ExecContext(ctx, renameTagStatement, new, old)
	if err != nil {
		return 0, fmt.Errorf("failed to rename tag %q: %w", old, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

// AddTag attaches a tag to an existing note.
func AddTag(ctx context.Context, conn *sql.DB, noteID int64, tag string) error {
	if _, err := conn.ExecContext(ctx, insertTagStatement, noteID, tag); err != nil {
		return fmt.Errorf("failed to tag note %d with %q: %w", noteID, tag, err)
	}
	return nil
}

// RemoveTag detaches a tag from a note and returns the number of rows
// removed.
func RemoveTag(ctx context.Context, conn *sql.DB, noteID int64, tag string) (int64, error) {
	res, err := conn.ExecContext(ctx, removeTagStatement, noteID, tag)
	if err != nil {
		return 0, fmt.Errorf("failed to remove tag %q from note %d: %w", tag, noteID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
