//go:build sqlite_fts5

package notes

import (
	"context"
	"testing"
)

func TestListTagsCountsAndOrder(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	if _, err := Add(ctx, conn, "first", []string{"work", "ideas"}, "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := Add(ctx, conn, "second", []string{"work"}, "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := Add(ctx, conn, "third", []string{"work"}, "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	counts, err := ListTags(ctx, conn)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("Expected 2 distinct tags, got %d", len(counts))
	}
	if counts[0].Tag != "work" || counts[0].Count != 3 {
		t.Errorf("Expected work/3 first, got %s/%d", counts[0].Tag, counts[0].Count)
	}
	if counts[1].Tag != "ideas" || counts[1].Count != 1 {
		t.Errorf("Expected ideas/1 second, got %s/%d", counts[1].Tag, counts[1].Count)
	}
}

func TestRenameTag(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	if _, err := Add(ctx, conn, "first", []string{"work"}, "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := Add(ctx, conn, "second", []string{"work"}, "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	affected, err := RenameTag(ctx, conn, "work", "job")
	if err != nil {
		t.Fatalf("RenameTag failed: %v", err)
	}
	if affected != 2 {
		t.Errorf("Expected 2 rows renamed, got %d", affected)
	}

	counts, err := ListTags(ctx, conn)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	for _, tc := range counts {
		if tc.Tag == "work" {
			t.Error("Tag 'work' should no longer appear")
		}
	}
	if len(counts) != 1 || counts[0].Tag != "job" || counts[0].Count != 2 {
		t.Errorf("Expected job/2, got %v", counts)
	}
}

func TestRenameTagDoesNotMerge(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	// One note already carries the rename target.
	id, err := Add(ctx, conn, "doubly tagged", []string{"work", "job"}, "", false)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, err := RenameTag(ctx, conn, "work", "job"); err != nil {
		t.Fatalf("RenameTag failed: %v", err)
	}

	note, err := Get(ctx, conn, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	// Rename is a bulk string replace; the note ends up with "job" twice.
	if len(note.Tags) != 2 {
		t.Errorf("Expected duplicate tag rows to survive rename, got %v", note.Tags)
	}
	for _, tag := range note.Tags {
		if tag != "job" {
			t.Errorf("Expected every tag row to read 'job', got %q", tag)
		}
	}
}

func TestAddAndRemoveTag(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	id, err := Add(ctx, conn, "a note", nil, "", false)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := AddTag(ctx, conn, id, "later"); err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	note, err := Get(ctx, conn, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(note.Tags) != 1 || note.Tags[0] != "later" {
		t.Fatalf("Expected tags [later], got %v", note.Tags)
	}

	removed, err := RemoveTag(ctx, conn, id, "later")
	if err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 row removed, got %d", removed)
	}

	note, err = Get(ctx, conn, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(note.Tags) != 0 {
		t.Errorf("Expected no tags after removal, got %v", note.Tags)
	}
}
