//go:build sqlite_fts5

package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/notectl/pkg/db"
	"github.com/unowned-ai/notectl/pkg/notes"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenDBConnection(filepath.Join(t.TempDir(), "notes.db"), true, "NORMAL")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Initialize(conn))
	return conn
}

func backdate(t *testing.T, conn *sql.DB, id int64, at time.Time) {
	t.Helper()
	_, err := conn.Exec("UPDATE notes SET created_at = ? WHERE id = ?", at.Unix(), id)
	require.NoError(t, err)
}

func TestNotesTagFilter(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	tagged, err := notes.Add(ctx, conn, "work note", []string{"work"}, "", false)
	require.NoError(t, err)
	_, err = notes.Add(ctx, conn, "personal note", []string{"home"}, "", false)
	require.NoError(t, err)

	result, err := Notes(ctx, conn, Options{Tag: "work"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, tagged, result[0].ID)
	assert.Equal(t, []string{"work"}, result[0].Tags)
}

func TestNotesDateRange(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	old, err := notes.Add(ctx, conn, "old note", nil, "", false)
	require.NoError(t, err)
	backdate(t, conn, old, time.Now().AddDate(0, 0, -30))

	recent, err := notes.Add(ctx, conn, "recent note", nil, "", false)
	require.NoError(t, err)

	from := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	result, err := Notes(ctx, conn, Options{From: from})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, recent, result[0].ID)

	to := time.Now().AddDate(0, 0, -8).Format("2006-01-02")
	result, err = Notes(ctx, conn, Options{To: to})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, old, result[0].ID)

	// Unparsable bounds are ignored, not errors.
	result, err = Notes(ctx, conn, Options{From: "not-a-date"})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestRenderMarkdown(t *testing.T) {
	noteSet := []notes.Note{{
		ID:        7,
		Content:   "remember the milk",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Category:  "errands",
		Tags:      []string{"home", "shopping"},
	}}

	out, err := Render(noteSet, "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Notes Export")
	assert.Contains(t, out, "## Note #7")
	assert.Contains(t, out, "**Category**: errands")
	assert.Contains(t, out, "**Tags**: home, shopping")
	assert.Contains(t, out, "remember the milk")
}

func TestRenderJSONRoundTrips(t *testing.T) {
	noteSet := []notes.Note{{
		ID:        3,
		Content:   "json me",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}}

	out, err := Render(noteSet, "json")
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.EqualValues(t, 3, decoded[0]["id"])
	assert.Equal(t, "json me", decoded[0]["content"])
}

func TestRenderHTML(t *testing.T) {
	noteSet := []notes.Note{{
		ID:        1,
		Content:   "hypertext",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}}

	out, err := Render(noteSet, "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "hypertext")
}

func TestRenderUnknownFormatFallsBackToMarkdown(t *testing.T) {
	out, err := Render(nil, "docx")
	require.NoError(t, err)
	assert.Contains(t, out, "# Notes Export")
}
