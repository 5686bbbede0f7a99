// Package export serializes filtered note sets to Markdown, JSON or HTML.
// It consumes the notes read contract only; it never mutates the store.
package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/unowned-ai/notectl/pkg/notes"
	"github.com/unowned-ai/notectl/pkg/utils"
)

// Options filter the exported note set. Zero values mean "not filtered".
// From and To are YYYY-MM-DD calendar dates bounding created_at (From at
// start of day, To at end of day, local time); unparsable dates are ignored.
type Options struct {
	Tag  string
	From string
	To   string
}

const selectNoteColumns = `SELECT n.id, n.content, n.created_at, n.updated_at, n.category, n.is_daily`

// Notes fetches the notes matching opts, newest first, with tags populated.
func Notes(ctx context.Context, conn *sql.DB, opts Options) ([]notes.Note, error) {
	var conditions []string
	var args []any

	if opts.Tag != "" {
		conditions = append(conditions, "n.id IN (SELECT note_id FROM tags WHERE tag = ?)")
		args = append(args, opts.Tag)
	}
	if opts.From != "" {
		if day, err := time.ParseInLocation("2006-01-02", opts.From, time.Local); err == nil {
			start, _ := utils.DayBounds(day)
			conditions = append(conditions, "n.created_at >= ?")
			args = append(args, start.Unix())
		}
	}
	if opts.To != "" {
		if day, err := time.ParseInLocation("2006-01-02", opts.To, time.Local); err == nil {
			conditions = append(conditions, "n.created_at <= ?")
			args = append(args, utils.EndOfDay(day).Unix())
		}
	}

	query := selectNoteColumns + " FROM notes n"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY n.created_at DESC"

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes for export: %w", err)
	}
	defer rows.Close()

	var results []notes.Note
	for rows.Next() {
		var note notes.Note
		var createdAt, updatedAt int64
		var category sql.NullString

		if err := rows.Scan(&note.ID, &note.Content, &createdAt, &updatedAt, &category, &note.IsDaily); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		note.CreatedAt = time.Unix(createdAt, 0)
		note.UpdatedAt = time.Unix(updatedAt, 0)
		note.Category = category.String
		results = append(results, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}
	rows.Close()

	for i := range results {
		tags, err := noteTags(ctx, conn, results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Tags = tags
	}
	return results, nil
}

func noteTags(ctx context.Context, conn *sql.DB, noteID int64) ([]string, error) {
	rows, err := conn.QueryContext(ctx, "SELECT tag FROM tags WHERE note_id = ?", noteID)
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
	return tags, rows.Err()
}

// Render serializes a note set in the given format: "markdown" (also "md",
// and the fallback for unrecognized formats), "json", or "html" (the
// Markdown rendering converted through goldmark).
func Render(noteSet []notes.Note, format string) (string, error) {
	switch format {
	case "json":
		return renderJSON(noteSet)
	case "html":
		return renderHTML(noteSet)
	default: // "markdown", "md" and anything unrecognized
		return renderMarkdown(noteSet), nil
	}
}

type exportNote struct {
	ID        int64    `json:"id"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags"`
}

func renderJSON(noteSet []notes.Note) (string, error) {
	out := make([]exportNote, 0, len(noteSet))
	for _, note := range noteSet {
		tags := note.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, exportNote{
			ID:        note.ID,
			Content:   note.Content,
			CreatedAt: note.CreatedAt.Format("2006-01-02 15:04:05"),
			UpdatedAt: note.UpdatedAt.Format("2006-01-02 15:04:05"),
			Category:  note.Category,
			Tags:      tags,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize notes to JSON: %w", err)
	}
	return string(data), nil
}

func renderMarkdown(noteSet []notes.Note) string {
	var md strings.Builder
	md.WriteString("# Notes Export\n\n")
	fmt.Fprintf(&md, "Exported: %s\n\n---\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for _, note := range noteSet {
		fmt.Fprintf(&md, "## Note #%d\n\n", note.ID)
		fmt.Fprintf(&md, "**Date**: %s\n\n", note.CreatedAt.Format("2006-01-02 15:04"))
		if note.Category != "" {
			fmt.Fprintf(&md, "**Category**: %s\n\n", note.Category)
		}
		if len(note.Tags) > 0 {
			fmt.Fprintf(&md, "**Tags**: %s\n\n", strings.Join(note.Tags, ", "))
		}
		md.WriteString(note.Content)
		md.WriteString("\n\n---\n\n")
	}

	return md.String()
}

func renderHTML(noteSet []notes.Note) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(renderMarkdown(noteSet)), &buf); err != nil {
		return "", fmt.Errorf("failed to render HTML export: %w", err)
	}
	return buf.String(), nil
}
