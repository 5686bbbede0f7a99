package notes

import (
	"context"
	"database/sql"
	"strings"
)

const (
	searchFTSStatement = selectNoteColumns + `
	FROM notes n
	JOIN notes_fts ON notes_fts.rowid = n.id
	WHERE notes_fts MATCH ?
	ORDER BY n.created_at DESC
	`

	searchByTagStatement = selectNoteColumns + `
	FROM notes n
	JOIN tags t ON t.note_id = n.id
	WHERE t.tag = ?
	ORDER BY n.created_at DESC
	`
)

// Search finds notes by full-text match. Every term must appear in the
// content (terms are quoted phrases joined with AND). When tag is non-empty
// the search degrades to an exact tag-membership lookup and terms are
// ignored. With no tag and no terms the result is empty, not all notes.
//
// FTS5 matching is case-insensitive; caseSensitive applies a literal
// substring post-filter over the matched set to restore exactness.
func Search(ctx context.Context, conn *sql.DB, terms []string, tag string, caseSensitive bool) ([]Note, error) {
	if tag != "" {
		return queryNotes(ctx, conn, searchByTagStatement, tag)
	}

	if len(terms) == 0 {
		return []Note{}, nil
	}

	results, err := queryNotes(ctx, conn, searchFTSStatement, buildMatchQuery(terms))
	if err != nil {
		return nil, err
	}

	if !caseSensitive {
		return results, nil
	}

	filtered := results[:0]
	for _, note := range results {
		if containsAll(note.Content, terms) {
			filtered = append(filtered, note)
		}
	}
	return filtered, nil
}

// buildMatchQuery turns search terms into an FTS5 MATCH expression: each term
// becomes a quoted phrase (embedded quotes doubled) and phrases are joined
// with AND.
func buildMatchQuery(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " AND ")
}

func containsAll(content string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(content, term) {
			return false
		}
	}
	return true
}
